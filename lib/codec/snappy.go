package codec

import (
	"fmt"

	"bullet/lib/codex"
	"bullet/lib/compress"
)

// Snappy compresses the output of another codec.
type Snappy struct {
	Inner Codec
}

func (s Snappy) inner() Codec {
	if s.Inner == nil {
		return Binary{}
	}
	return s.Inner
}

func (s Snappy) Encode(fields map[string]any) ([]byte, error) {
	raw, err := s.inner().Encode(fields)
	if err != nil {
		return nil, err
	}
	compressed := compress.Encode(raw)
	ret := make([]byte, 1+len(compressed))
	n, err := codex.SnappyV1.Write(ret)
	if err != nil {
		return nil, err
	}
	copy(ret[n:], compressed)
	return ret, nil
}

func (s Snappy) Decode(data []byte) (map[string]any, error) {
	n, err := codex.Expect(data, codex.SnappyV1)
	if err != nil {
		return nil, err
	}
	raw, err := compress.Decode(data[n:])
	if err != nil {
		return nil, fmt.Errorf("snappy decode: %w", err)
	}
	return s.inner().Decode(raw)
}
