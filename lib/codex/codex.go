package codex

import (
	"fmt"
)

// Codex identifies the wire format of an encoded record. Every payload
// starts with one codex byte so that decoders can reject bytes written by a
// different format (or a different version of the same format).
type Codex uint8

const (
	Invalid Codex = iota
	BinaryV1
	SnappyV1
)

func (c Codex) String() string {
	switch c {
	case BinaryV1:
		return "binary/v1"
	case SnappyV1:
		return "snappy/v1"
	default:
		return fmt.Sprintf("codex(%d)", uint8(c))
	}
}

// Write puts c in the first byte of buf.
func (c Codex) Write(buf []byte) (int, error) {
	if len(buf) < 1 {
		return 0, fmt.Errorf("codex.write: empty buffer")
	}
	buf[0] = byte(c)
	return 1, nil
}

// Read returns the codex at the start of buf. A zero byte is never a valid
// codex, so zeroed or truncated buffers are rejected here.
func Read(buf []byte) (Codex, int, error) {
	if len(buf) < 1 {
		return Invalid, 0, fmt.Errorf("codex.read: empty buffer")
	}
	c := Codex(buf[0])
	if c == Invalid {
		return Invalid, 0, fmt.Errorf("codex.read: invalid codex")
	}
	return c, 1, nil
}

// Expect reads the next codex and fails unless it is want.
func Expect(buf []byte, want Codex) (int, error) {
	c, n, err := Read(buf)
	if err != nil {
		return 0, err
	}
	if c != want {
		return 0, fmt.Errorf("codex.expect: found %s, want %s", c, want)
	}
	return n, nil
}
