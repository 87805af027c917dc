package compress

import (
	"fmt"

	"github.com/golang/snappy"
)

// MaxDecodedLen bounds what Decode will allocate for a single payload.
const MaxDecodedLen = 64 << 20

func Encode(b []byte) []byte {
	return snappy.Encode(nil, b)
}

func Decode(b []byte) ([]byte, error) {
	n, err := snappy.DecodedLen(b)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}
	if n > MaxDecodedLen {
		return nil, fmt.Errorf("failed to decompress: %d bytes exceeds limit of %d", n, MaxDecodedLen)
	}
	b, err = snappy.Decode(nil, b)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}
	return b, nil
}
