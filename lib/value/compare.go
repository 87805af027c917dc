package value

import (
	"fmt"
	"strings"

	"github.com/samber/mo"
)

// CompareTo orders tv against other. The result is absent when exactly one
// side is NULL and zero when both are. Numeric primitives compare after
// widening to float64; other primitives only compare with their own type.
// Maps, lists and UNKNOWN are never comparable.
func (tv TypedValue) CompareTo(other TypedValue) (mo.Option[int], error) {
	switch {
	case tv.typ == Null && other.typ == Null:
		return mo.Some(0), nil
	case tv.typ == Null || other.typ == Null:
		return mo.None[int](), nil
	}
	c, err := tv.compare(other)
	if err != nil {
		return mo.None[int](), err
	}
	return mo.Some(c), nil
}

// Compare is the strict form of CompareTo: NULL only compares with NULL.
func (tv TypedValue) Compare(other TypedValue) (int, error) {
	switch {
	case tv.typ == Null && other.typ == Null:
		return 0, nil
	case tv.typ == Null || other.typ == Null:
		return 0, fmt.Errorf("%w: compare %s with %s", ErrUnsupported, tv.typ, other.typ)
	}
	return tv.compare(other)
}

// EqualTo is CompareTo == 0, propagating the absent result as TernaryNull.
func (tv TypedValue) EqualTo(other TypedValue) (Ternary, error) {
	c, err := tv.CompareTo(other)
	if err != nil {
		return TernaryNull, err
	}
	if c.IsAbsent() {
		return TernaryNull, nil
	}
	return TernaryOf(c.MustGet() == 0), nil
}

func Comparable(a, b Type) bool {
	if a.IsNumeric() && b.IsNumeric() {
		return true
	}
	return a == b && a.IsPrimitive()
}

func (tv TypedValue) compare(other TypedValue) (int, error) {
	if !Comparable(tv.typ, other.typ) {
		return 0, fmt.Errorf("%w: compare %s with %s", ErrUnsupported, tv.typ, other.typ)
	}
	if tv.typ.IsNumeric() {
		l, err := numeric(tv)
		if err != nil {
			return 0, err
		}
		r, err := numeric(other)
		if err != nil {
			return 0, err
		}
		return compareFloats(l, r), nil
	}
	switch tv.typ {
	case Boolean:
		l, lok := tv.value.(bool)
		r, rok := other.value.(bool)
		if !lok || !rok {
			return 0, fmt.Errorf("%w: BOOLEAN holds %T and %T", ErrShape, tv.value, other.value)
		}
		switch {
		case l == r:
			return 0, nil
		case !l:
			return -1, nil
		}
		return 1, nil
	case String:
		l, lok := tv.value.(string)
		r, rok := other.value.(string)
		if !lok || !rok {
			return 0, fmt.Errorf("%w: STRING holds %T and %T", ErrShape, tv.value, other.value)
		}
		return strings.Compare(l, r), nil
	}
	return 0, unsupported("compare", tv.typ)
}

func numeric(tv TypedValue) (float64, error) {
	switch x := tv.value.(type) {
	case int32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case float32:
		return float64(x), nil
	case float64:
		return x, nil
	}
	return 0, fmt.Errorf("%w: %s holds %T", ErrShape, tv.typ, tv.value)
}

func compareFloats(l, r float64) int {
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	}
	return 0
}

// Comparator is a total order over TypedValues.
type Comparator func(a, b TypedValue) int

// NullsFirst orders NULL before everything else. Pairs that CompareTo cannot
// order fall back to ordering by type.
func NullsFirst(a, b TypedValue) int {
	return nullsOrder(a, b, -1)
}

// NullsLast orders NULL after everything else.
func NullsLast(a, b TypedValue) int {
	return nullsOrder(a, b, 1)
}

func nullsOrder(a, b TypedValue, nullSide int) int {
	switch {
	case a.typ == Null && b.typ == Null:
		return 0
	case a.typ == Null:
		return nullSide
	case b.typ == Null:
		return -nullSide
	}
	c, err := a.compare(b)
	if err != nil {
		return compareFloats(float64(a.typ), float64(b.typ))
	}
	return c
}

var (
	_ Comparator = NullsFirst
	_ Comparator = NullsLast
)
