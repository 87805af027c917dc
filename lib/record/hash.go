package record

import (
	"math"
	"sort"

	"bullet/lib/utils/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/samber/lo"
)

// Hash is consistent with Equal: it covers decoded fields in name order, so
// it does not depend on insertion or encoding order. A corrupt record hashes
// to 0.
func (r *Record) Hash() uint64 {
	if !r.Materialize() {
		return 0
	}
	d := xxhash.New()
	hashMap(d, r.fields)
	return d.Sum64()
}

func hashMap(d *xxhash.Digest, m map[string]any) {
	keys := lo.Keys(m)
	sort.Strings(keys)
	for _, k := range keys {
		d.WriteString(k)
		hashValue(d, m[k])
	}
}

func hashValue(d *xxhash.Digest, v any) {
	var buf [9]byte
	put := func(tag byte, bits uint64) {
		buf[0] = tag
		binary.PutUint64(buf[1:], bits)
		d.Write(buf[:])
	}
	switch t := v.(type) {
	case nil:
		d.Write([]byte{0})
	case bool:
		if t {
			put(1, 1)
		} else {
			put(1, 0)
		}
	case int32:
		put(2, uint64(t))
	case int64:
		put(3, uint64(t))
	case float32:
		// -0 and +0 are equal, so they must hash alike
		if t == 0 {
			t = 0
		}
		put(4, uint64(math.Float32bits(t)))
	case float64:
		if t == 0 {
			t = 0
		}
		put(5, math.Float64bits(t))
	case string:
		put(6, uint64(len(t)))
		d.WriteString(t)
	case map[string]any:
		put(7, uint64(len(t)))
		hashMap(d, t)
	case []any:
		put(8, uint64(len(t)))
		for _, e := range t {
			hashValue(d, e)
		}
	default:
		d.Write([]byte{0xff})
	}
}
