package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompress(t *testing.T) {
	val := bytes.Repeat([]byte("field=value;"), 100)
	b := Encode(val)
	assert.Less(t, len(b), len(val))
	found, err := Decode(b)
	assert.NoError(t, err)
	assert.Equal(t, val, found)
}

func TestDecompressGarbage(t *testing.T) {
	_, err := Decode([]byte{0xff, 0xff, 0xff, 0xff, 0xff})
	assert.Error(t, err)
}

func TestDecompressTooLarge(t *testing.T) {
	// header claims 1GiB of output
	_, err := Decode([]byte{0x80, 0x80, 0x80, 0x80, 0x04, 0x00})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds limit")
}
