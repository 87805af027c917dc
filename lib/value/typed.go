package value

import (
	"fmt"
	"unicode/utf8"
)

// TypedValue pairs a raw value with its Type. Construction does not verify
// that the value actually has the shape of the type; operations on an
// inconsistent pair return errors or meaningless results.
type TypedValue struct {
	typ   Type
	value any
}

var (
	NullValue    = TypedValue{typ: Null}
	UnknownValue = TypedValue{typ: Unknown}
)

func NewTypedValue(t Type, v any) TypedValue {
	if t == Null {
		return NullValue
	}
	return TypedValue{typ: t, value: v}
}

// MakeTypedValue infers the type of v.
func MakeTypedValue(v any) TypedValue {
	return NewTypedValue(InferType(v), v)
}

func (tv TypedValue) Type() Type { return tv.typ }
func (tv TypedValue) Value() any { return tv.value }

func (tv TypedValue) IsNull() bool          { return tv.typ.IsNull() }
func (tv TypedValue) IsUnknown() bool       { return tv.typ.IsUnknown() }
func (tv TypedValue) IsPrimitive() bool     { return tv.typ.IsPrimitive() }
func (tv TypedValue) IsPrimitiveMap() bool  { return tv.typ.IsPrimitiveMap() }
func (tv TypedValue) IsPrimitiveList() bool { return tv.typ.IsPrimitiveList() }
func (tv TypedValue) IsComplexMap() bool    { return tv.typ.IsComplexMap() }
func (tv TypedValue) IsComplexList() bool   { return tv.typ.IsComplexList() }
func (tv TypedValue) IsMap() bool           { return tv.typ.IsMap() }
func (tv TypedValue) IsList() bool          { return tv.typ.IsList() }

// Size is the number of entries of a map or list, or the number of
// characters of a string.
func (tv TypedValue) Size() (int, error) {
	switch {
	case tv.typ.IsMap():
		m, ok := tv.value.(map[string]any)
		if !ok && tv.value != nil {
			return 0, fmt.Errorf("%w: %s holds %T", ErrShape, tv.typ, tv.value)
		}
		return len(m), nil
	case tv.typ.IsList():
		l, ok := tv.value.([]any)
		if !ok && tv.value != nil {
			return 0, fmt.Errorf("%w: %s holds %T", ErrShape, tv.typ, tv.value)
		}
		return len(l), nil
	case tv.typ == String:
		s, ok := tv.value.(string)
		if !ok {
			return 0, fmt.Errorf("%w: %s holds %T", ErrShape, tv.typ, tv.value)
		}
		return utf8.RuneCountInString(s), nil
	}
	return 0, unsupported("size", tv.typ)
}

func (tv TypedValue) ForceCast(target Type) (TypedValue, error) {
	v, err := ForceCast(target, tv.typ, tv.value)
	if err != nil {
		return UnknownValue, err
	}
	return NewTypedValue(target, v), nil
}

func (tv TypedValue) SafeCast(target Type) (TypedValue, error) {
	v, err := SafeCast(target, tv.typ, tv.value)
	if err != nil {
		return UnknownValue, err
	}
	return NewTypedValue(target, v), nil
}

func (tv TypedValue) String() string {
	if tv.typ == Null {
		return "NULL"
	}
	return fmt.Sprintf("%s(%v)", tv.typ, tv.value)
}
