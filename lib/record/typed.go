package record

import (
	"fmt"
	"strings"

	"bullet/lib/value"

	"github.com/samber/mo"
)

// TypedGet returns field as a TypedValue. A present hint is trusted as the
// type of the field instead of inferring it.
func (r *Record) TypedGet(field string, hint mo.Option[value.Type]) value.TypedValue {
	v := r.Get(field)
	if v == nil {
		return value.NullValue
	}
	if t, ok := hint.Get(); ok {
		return value.NewTypedValue(t, v)
	}
	return value.MakeTypedValue(v)
}

// TypedGetKey returns field[key] typed by the element type of the map.
func (r *Record) TypedGetKey(field, key string) (value.TypedValue, error) {
	parent := r.TypedGet(field, mo.None[value.Type]())
	v, err := atKey(parent.Value(), key)
	if err != nil {
		return value.NullValue, err
	}
	return child(parent.Type(), v), nil
}

// TypedGetIndex returns field[index] typed by the element type of the list.
func (r *Record) TypedGetIndex(field string, index int) (value.TypedValue, error) {
	parent := r.TypedGet(field, mo.None[value.Type]())
	v, err := atIndex(parent.Value(), index)
	if err != nil {
		return value.NullValue, err
	}
	return child(parent.Type(), v), nil
}

// TypedExtract is Extract returning a TypedValue; every level below the
// field is typed by its parent's subtype where that is known. Failures yield
// NullValue.
func (r *Record) TypedExtract(path string, hint mo.Option[value.Type]) value.TypedValue {
	tokens := strings.SplitN(path, PathDelimiter, maxPathTokens)
	tv := r.TypedGet(tokens[0], hint)
	for _, token := range tokens[1:] {
		var err error
		if tv, err = typedStep(tv, token); err != nil || tv.IsNull() {
			return value.NullValue
		}
	}
	return tv
}

func typedStep(parent value.TypedValue, token string) (value.TypedValue, error) {
	v, err := step(parent.Value(), token)
	if err != nil {
		return value.NullValue, err
	}
	return child(parent.Type(), v), nil
}

func child(parent value.Type, v any) value.TypedValue {
	if v == nil {
		return value.NullValue
	}
	// subtypes of UNKNOWN_MAP and friends carry no information
	if sub := parent.Subtype(); sub.IsPrimitive() || sub.IsPrimitiveMap() {
		return value.NewTypedValue(sub, v)
	}
	return value.MakeTypedValue(v)
}

// SetTyped sets field to the value of tv. NULL and UNKNOWN values are
// rejected; remove the field instead.
func (r *Record) SetTyped(field string, tv value.TypedValue) error {
	if tv.IsNull() || tv.IsUnknown() {
		return fmt.Errorf("%w: field %s", ErrInvalid, field)
	}
	return r.Set(field, tv.Value())
}
