package codec

import (
	"fmt"
	"sort"

	"bullet/lib/codex"
	"bullet/lib/utils/binary"
	"bullet/lib/utils/slice"

	"github.com/samber/lo"
)

const (
	tagNil byte = iota
	tagBool
	tagInt32
	tagInt64
	tagFloat32
	tagFloat64
	tagString
	tagMap
	tagList
)

const (
	maxVarintLen = 10
	// records never nest deeper than lists of maps, anything past this is
	// corrupt input
	maxDepth = 32
)

// Binary is a self-describing tag-length-value encoding. Map keys are
// written in sorted order so logically equal maps encode to equal bytes.
type Binary struct{}

func (Binary) Encode(fields map[string]any) ([]byte, error) {
	e := encoder{buf: make([]byte, 0, 64)}
	if err := e.putCodex(codex.BinaryV1); err != nil {
		return nil, err
	}
	if err := e.putMap(fields, 0); err != nil {
		return nil, err
	}
	return e.buf, nil
}

func (Binary) Decode(data []byte) (map[string]any, error) {
	n, err := codex.Expect(data, codex.BinaryV1)
	if err != nil {
		return nil, err
	}
	d := decoder{buf: data, off: n}
	fields, err := d.readMap(0)
	if err != nil {
		return nil, err
	}
	if d.off != len(d.buf) {
		return nil, fmt.Errorf("binary decode: %d trailing bytes", len(d.buf)-d.off)
	}
	return fields, nil
}

type encoder struct {
	buf []byte
}

func (e *encoder) free(n int) []byte {
	e.buf = slice.Grow(e.buf, n)
	return e.buf[len(e.buf):cap(e.buf)]
}

func (e *encoder) advance(n int) {
	e.buf = e.buf[:len(e.buf)+n]
}

func (e *encoder) putCodex(c codex.Codex) error {
	n, err := c.Write(e.free(1))
	if err != nil {
		return err
	}
	e.advance(n)
	return nil
}

func (e *encoder) putTag(tag byte) {
	e.buf = append(e.buf, tag)
}

func (e *encoder) putUvarint(n uint64) error {
	sz, err := binary.PutUvarint(e.free(maxVarintLen), n)
	if err != nil {
		return err
	}
	e.advance(sz)
	return nil
}

func (e *encoder) putVarint(n int64) error {
	sz, err := binary.PutVarint(e.free(maxVarintLen), n)
	if err != nil {
		return err
	}
	e.advance(sz)
	return nil
}

func (e *encoder) putString(s string) error {
	sz, err := binary.PutString(e.free(maxVarintLen+len(s)), s)
	if err != nil {
		return err
	}
	e.advance(sz)
	return nil
}

func (e *encoder) putMap(m map[string]any, depth int) error {
	if err := e.putUvarint(uint64(len(m))); err != nil {
		return err
	}
	keys := lo.Keys(m)
	sort.Strings(keys)
	for _, k := range keys {
		if err := e.putString(k); err != nil {
			return fmt.Errorf("error encoding key (%s): %w", k, err)
		}
		if err := e.putValue(m[k], depth+1); err != nil {
			return fmt.Errorf("error encoding value of (%s): %w", k, err)
		}
	}
	return nil
}

func (e *encoder) putValue(v any, depth int) error {
	if depth > maxDepth {
		return fmt.Errorf("value nested deeper than %d", maxDepth)
	}
	switch t := v.(type) {
	case nil:
		e.putTag(tagNil)
	case bool:
		e.putTag(tagBool)
		if t {
			e.putTag(1)
		} else {
			e.putTag(0)
		}
	case int32:
		e.putTag(tagInt32)
		return e.putVarint(int64(t))
	case int64:
		e.putTag(tagInt64)
		return e.putVarint(t)
	case float32:
		e.putTag(tagFloat32)
		sz, err := binary.PutFloat32(e.free(4), t)
		if err != nil {
			return err
		}
		e.advance(sz)
	case float64:
		e.putTag(tagFloat64)
		sz, err := binary.PutFloat64(e.free(8), t)
		if err != nil {
			return err
		}
		e.advance(sz)
	case string:
		e.putTag(tagString)
		return e.putString(t)
	case map[string]any:
		e.putTag(tagMap)
		return e.putMap(t, depth)
	case []any:
		e.putTag(tagList)
		if err := e.putUvarint(uint64(len(t))); err != nil {
			return err
		}
		for i, elem := range t {
			if err := e.putValue(elem, depth+1); err != nil {
				return fmt.Errorf("error encoding element %d: %w", i, err)
			}
		}
	default:
		return fmt.Errorf("unsupported value type %T", v)
	}
	return nil
}

type decoder struct {
	buf []byte
	off int
}

func (d *decoder) rest() []byte {
	return d.buf[d.off:]
}

func (d *decoder) readByte() (byte, error) {
	if d.off >= len(d.buf) {
		return 0, fmt.Errorf("binary decode: unexpected end of input")
	}
	b := d.buf[d.off]
	d.off++
	return b, nil
}

// readLen reads a collection length; every element takes at least one byte
// so a length past the remaining input is corrupt.
func (d *decoder) readLen() (int, error) {
	n, sz, err := binary.ReadUvarint(d.rest())
	if err != nil {
		return 0, err
	}
	d.off += sz
	if n > uint64(len(d.buf)-d.off) {
		return 0, fmt.Errorf("binary decode: length %d exceeds input", n)
	}
	return int(n), nil
}

func (d *decoder) readMap(depth int) (map[string]any, error) {
	n, err := d.readLen()
	if err != nil {
		return nil, err
	}
	ret := make(map[string]any, n)
	for i := 0; i < n; i++ {
		k, sz, err := binary.ReadString(d.rest())
		if err != nil {
			return nil, fmt.Errorf("error decoding key: %w", err)
		}
		d.off += sz
		v, err := d.readValue(depth + 1)
		if err != nil {
			return nil, fmt.Errorf("error decoding value of (%s): %w", k, err)
		}
		ret[k] = v
	}
	return ret, nil
}

func (d *decoder) readValue(depth int) (any, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("binary decode: nested deeper than %d", maxDepth)
	}
	tag, err := d.readByte()
	if err != nil {
		return nil, err
	}
	switch tag {
	case tagNil:
		return nil, nil
	case tagBool:
		b, err := d.readByte()
		if err != nil {
			return nil, err
		}
		return b != 0, nil
	case tagInt32:
		n, sz, err := binary.ReadVarint(d.rest())
		if err != nil {
			return nil, err
		}
		d.off += sz
		return int32(n), nil
	case tagInt64:
		n, sz, err := binary.ReadVarint(d.rest())
		if err != nil {
			return nil, err
		}
		d.off += sz
		return n, nil
	case tagFloat32:
		f, sz, err := binary.ReadFloat32(d.rest())
		if err != nil {
			return nil, err
		}
		d.off += sz
		return f, nil
	case tagFloat64:
		f, sz, err := binary.ReadFloat64(d.rest())
		if err != nil {
			return nil, err
		}
		d.off += sz
		return f, nil
	case tagString:
		s, sz, err := binary.ReadString(d.rest())
		if err != nil {
			return nil, err
		}
		d.off += sz
		return s, nil
	case tagMap:
		return d.readMap(depth)
	case tagList:
		n, err := d.readLen()
		if err != nil {
			return nil, err
		}
		ret := make([]any, n)
		for i := range ret {
			if ret[i], err = d.readValue(depth + 1); err != nil {
				return nil, fmt.Errorf("error decoding element %d: %w", i, err)
			}
		}
		return ret, nil
	default:
		return nil, fmt.Errorf("binary decode: unknown tag %d", tag)
	}
}
