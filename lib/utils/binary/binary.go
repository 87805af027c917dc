package binary

import (
	"encoding/binary"
	"fmt"
	"math"
)

// MaxFrameOverhead is the most PutBytes and PutString add in front of their
// payload.
const MaxFrameOverhead = binary.MaxVarintLen64

// PutBytes writes in prefixed by its uvarint length.
func PutBytes(b []byte, in []byte) (int, error) {
	n, err := putLen(b, len(in))
	if err != nil {
		return 0, err
	}
	return n + copy(b[n:], in), nil
}

// putLen writes the uvarint prefix of a payload of size bytes, failing unless
// b also has room for the payload.
func putLen(b []byte, size int) (int, error) {
	lenbuf := [binary.MaxVarintLen64]byte{}
	n := binary.PutUvarint(lenbuf[:], uint64(size))
	if len(b) < n+size {
		return 0, fmt.Errorf("buffer too small: need %d bytes, have %d", n+size, len(b))
	}
	return copy(b, lenbuf[:n]), nil
}

// ReadBytes doesn't allocate the underlying data, but only creates the slice header
func ReadBytes(b []byte) ([]byte, int, error) {
	len_, n := binary.Uvarint(b)
	if n <= 0 {
		return nil, 0, fmt.Errorf("invalid length prefix")
	}
	if uint64(len(b)-n) < len_ {
		return nil, 0, fmt.Errorf("buffer too small")
	}
	return b[n : n+int(len_)], n + int(len_), nil
}

func PutString(b []byte, s string) (int, error) {
	n, err := putLen(b, len(s))
	if err != nil {
		return 0, err
	}
	return n + copy(b[n:], s), nil
}

// ReadString copies the string out of b, so b may be reused afterwards.
func ReadString(b []byte) (string, int, error) {
	bytes, n, err := ReadBytes(b)
	if err != nil {
		return "", n, err
	}
	return string(bytes), n, nil
}

func PutUvarint(b []byte, n uint64) (int, error) {
	lenbuf := [binary.MaxVarintLen64]byte{}
	sz := binary.PutUvarint(lenbuf[:], n)
	if len(b) < sz {
		return 0, fmt.Errorf("buffer too small")
	}
	copy(b, lenbuf[:sz])
	return sz, nil
}

func ReadUvarint(b []byte) (uint64, int, error) {
	n, sz := binary.Uvarint(b)
	if sz <= 0 {
		return 0, 0, fmt.Errorf("invalid uvarint")
	}
	return n, sz, nil
}

func ReadVarint(b []byte) (int64, int, error) {
	n, sz := binary.Varint(b)
	if sz <= 0 {
		return 0, 0, fmt.Errorf("invalid varint")
	}
	return n, sz, nil
}

func PutVarint(b []byte, n int64) (int, error) {
	lenbuf := [binary.MaxVarintLen64]byte{}
	sz := binary.PutVarint(lenbuf[:], n)
	if len(b) < sz {
		return 0, fmt.Errorf("buffer too small")
	}
	copy(b, lenbuf[:sz])
	return sz, nil
}

func PutUint32(b []byte, n uint32) (int, error) {
	if len(b) < 4 {
		return 0, fmt.Errorf("buffer too small")
	}
	binary.BigEndian.PutUint32(b, n)
	return 4, nil
}

func ReadUint32(b []byte) (uint32, int, error) {
	if len(b) < 4 {
		return 0, 0, fmt.Errorf("buffer too small")
	}
	return binary.BigEndian.Uint32(b), 4, nil
}

func PutUint64(b []byte, n uint64) (int, error) {
	if len(b) < 8 {
		return 0, fmt.Errorf("buffer too small")
	}
	binary.BigEndian.PutUint64(b, n)
	return 8, nil
}

func ReadUint64(b []byte) (uint64, int, error) {
	if len(b) < 8 {
		return 0, 0, fmt.Errorf("buffer too small")
	}
	return binary.BigEndian.Uint64(b), 8, nil
}

func PutFloat32(b []byte, f float32) (int, error) {
	return PutUint32(b, math.Float32bits(f))
}

func ReadFloat32(b []byte) (float32, int, error) {
	bits, n, err := ReadUint32(b)
	if err != nil {
		return 0, 0, err
	}
	return math.Float32frombits(bits), n, nil
}

func PutFloat64(b []byte, f float64) (int, error) {
	return PutUint64(b, math.Float64bits(f))
}

func ReadFloat64(b []byte) (float64, int, error) {
	bits, n, err := ReadUint64(b)
	if err != nil {
		return 0, 0, err
	}
	return math.Float64frombits(bits), n, nil
}
