package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"bullet/lib/codec"
	"bullet/lib/record"
	"bullet/lib/schema"
	"bullet/lib/utils/binary"
	"bullet/lib/utils/slice"

	"go.uber.org/zap"
)

const maxLineSize = 16 << 20

type summary struct {
	Read     int
	Written  int
	Corrupt  int
	Rejected int
	Bytes    int
}

func (s summary) String() string {
	return fmt.Sprintf("read %d records, wrote %d (%d bytes), %d corrupt, %d rejected by schema",
		s.Read, s.Written, s.Bytes, s.Corrupt, s.Rejected)
}

// convert reads one JSON object per line from in and writes every record
// that decodes and passes the schema to out, each prefixed by its length as
// a uvarint. A nil schema accepts every record; a nil out only counts.
func convert(in io.Reader, out io.Writer, s *schema.Schema, c record.Codec) (summary, error) {
	var ret summary
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64<<10), maxLineSize)
	var frame []byte
	line := 0
	for scanner.Scan() {
		line++
		data := bytes.TrimSpace(scanner.Bytes())
		if len(data) == 0 {
			continue
		}
		ret.Read++
		// the scanner reuses its buffer
		r := record.FromBytes(codec.JSON{}, append([]byte(nil), data...))
		if !r.Materialize() {
			ret.Corrupt++
			zap.L().Warn("skipping undecodable record", zap.Int("line", line), zap.Error(r.Err()))
			continue
		}
		if s != nil {
			if err := s.Check(r); err != nil {
				ret.Rejected++
				zap.L().Info("record does not match schema", zap.Int("line", line), zap.Error(err))
				continue
			}
		}
		converted, err := r.Convert(c)
		if err != nil {
			return ret, err
		}
		encoded, err := converted.ToBytes()
		if err != nil {
			return ret, fmt.Errorf("line %d: %w", line, err)
		}
		if out != nil {
			frame = slice.Grow(frame[:0], binary.MaxFrameOverhead+len(encoded))
			n, err := binary.PutBytes(frame[:cap(frame)], encoded)
			if err != nil {
				return ret, err
			}
			if _, err := out.Write(frame[:n]); err != nil {
				return ret, fmt.Errorf("failed to write record: %w", err)
			}
		}
		ret.Written++
		ret.Bytes += len(encoded)
	}
	if err := scanner.Err(); err != nil {
		return ret, fmt.Errorf("failed to read input: %w", err)
	}
	return ret, nil
}

// readFrames splits the output of convert back into encoded records. The
// frames share data's backing array.
func readFrames(data []byte) ([][]byte, error) {
	var ret [][]byte
	for len(data) > 0 {
		frame, n, err := binary.ReadBytes(data)
		if err != nil {
			return nil, fmt.Errorf("failed to read frame %d: %w", len(ret), err)
		}
		ret = append(ret, slice.Limit(frame))
		data = data[n:]
	}
	return ret, nil
}

// dump decodes the framed records in in with c and writes each one to out as
// a line of JSON, the inverse of convert.
func dump(in io.Reader, out io.Writer, c record.Codec) (summary, error) {
	var ret summary
	data, err := io.ReadAll(in)
	if err != nil {
		return ret, fmt.Errorf("failed to read input: %w", err)
	}
	frames, err := readFrames(data)
	if err != nil {
		return ret, err
	}
	w := bufio.NewWriter(out)
	for i, frame := range frames {
		ret.Read++
		ret.Bytes += len(frame)
		r := record.FromBytes(c, frame)
		if !r.Materialize() {
			ret.Corrupt++
			zap.L().Warn("skipping undecodable record", zap.Int("frame", i), zap.Error(r.Err()))
			continue
		}
		converted, err := r.Convert(codec.JSON{})
		if err != nil {
			return ret, err
		}
		line, err := converted.ToBytes()
		if err != nil {
			return ret, fmt.Errorf("frame %d: %w", i, err)
		}
		if _, err := w.Write(append(line, '\n')); err != nil {
			return ret, fmt.Errorf("failed to write record: %w", err)
		}
		ret.Written++
	}
	if err := w.Flush(); err != nil {
		return ret, fmt.Errorf("failed to write record: %w", err)
	}
	return ret, nil
}
