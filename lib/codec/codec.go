// Package codec turns record field maps into bytes and back.
//
// Field values are restricted to the representation used by lib/value:
// nil, bool, int32, int64, float32, float64, string, map[string]any and
// []any (maps and lists may nest).
package codec

type Codec interface {
	Encode(fields map[string]any) ([]byte, error)
	Decode(data []byte) (map[string]any, error)
}

var (
	_ Codec = Binary{}
	_ Codec = Snappy{}
	_ Codec = JSON{}
)

// Default is the codec records use unless told otherwise.
var Default Codec = Binary{}
