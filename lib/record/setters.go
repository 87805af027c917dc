package record

import (
	"github.com/samber/lo"
)

// Primitive is the set of Go types that map onto primitive field types.
type Primitive interface {
	bool | int32 | int64 | float32 | float64 | string
}

func (r *Record) SetBoolean(field string, v bool) error   { return r.Set(field, v) }
func (r *Record) SetInteger(field string, v int32) error  { return r.Set(field, v) }
func (r *Record) SetLong(field string, v int64) error     { return r.Set(field, v) }
func (r *Record) SetFloat(field string, v float32) error  { return r.Set(field, v) }
func (r *Record) SetDouble(field string, v float64) error { return r.Set(field, v) }
func (r *Record) SetString(field string, v string) error  { return r.Set(field, v) }

// SetMap stores m as a primitive map field.
func SetMap[T Primitive](r *Record, field string, m map[string]T) error {
	return r.Set(field, anyMap(m))
}

// SetMapOfMaps stores m as a map of maps field. Nil inner maps are kept as
// nil entries.
func SetMapOfMaps[T Primitive](r *Record, field string, m map[string]map[string]T) error {
	if m == nil {
		return r.Set(field, nil)
	}
	ret := make(map[string]any, len(m))
	for k, inner := range m {
		ret[k] = anyMap(inner)
	}
	return r.Set(field, ret)
}

// SetList stores l as a primitive list field.
func SetList[T Primitive](r *Record, field string, l []T) error {
	if l == nil {
		return r.Set(field, nil)
	}
	return r.Set(field, lo.Map(l, func(v T, _ int) any { return v }))
}

// SetListOfMaps stores l as a list of maps field.
func SetListOfMaps[T Primitive](r *Record, field string, l []map[string]T) error {
	if l == nil {
		return r.Set(field, nil)
	}
	return r.Set(field, lo.Map(l, func(m map[string]T, _ int) any { return anyMap(m) }))
}

// anyMap returns nil, not an empty map, for a nil m.
func anyMap[T Primitive](m map[string]T) any {
	if m == nil {
		return nil
	}
	ret := make(map[string]any, len(m))
	for k, v := range m {
		ret[k] = v
	}
	return ret
}
