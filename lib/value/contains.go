package value

import (
	"fmt"

	"github.com/samber/lo"
)

// ContainsKey reports whether a map, or any map nested in a map of maps or a
// list of maps, contains key. A nil nested map that leaves the search
// without a match makes the answer TernaryNull rather than TernaryFalse.
func (tv TypedValue) ContainsKey(key string) (Ternary, error) {
	switch tv.typ.info().shape {
	case shapeMap:
		m, err := asMap(tv.typ, tv.value)
		if err != nil {
			return TernaryNull, err
		}
		_, ok := m[key]
		return TernaryOf(ok), nil
	case shapeMapOfMaps:
		m, err := asMap(tv.typ, tv.value)
		if err != nil {
			return TernaryNull, err
		}
		if _, ok := m[key]; ok {
			return TernaryTrue, nil
		}
		sawNull := false
		for _, e := range m {
			found, err := nestedHasKey(tv.typ, e, key)
			if err != nil {
				return TernaryNull, err
			}
			if found.IsTrue() {
				return TernaryTrue, nil
			}
			sawNull = sawNull || found.IsNull()
		}
		return falseOrNull(sawNull), nil
	case shapeListOfMaps:
		l, err := asList(tv.typ, tv.value)
		if err != nil {
			return TernaryNull, err
		}
		sawNull := false
		for _, e := range l {
			found, err := nestedHasKey(tv.typ, e, key)
			if err != nil {
				return TernaryNull, err
			}
			if found.IsTrue() {
				return TernaryTrue, nil
			}
			sawNull = sawNull || found.IsNull()
		}
		return falseOrNull(sawNull), nil
	}
	return TernaryNull, unsupported("containsKey", tv.typ)
}

func nestedHasKey(t Type, e any, key string) (Ternary, error) {
	if e == nil {
		return TernaryNull, nil
	}
	m, err := asMap(t, e)
	if err != nil {
		return TernaryNull, err
	}
	_, ok := m[key]
	return TernaryOf(ok), nil
}

// ContainsValue reports whether target equals any value held by a list or
// map, looking inside nested maps for maps of maps and lists of maps. Nil
// entries and indeterminate comparisons downgrade a miss to TernaryNull.
func (tv TypedValue) ContainsValue(target TypedValue) (Ternary, error) {
	sub := tv.typ.Subtype()
	switch tv.typ.info().shape {
	case shapeList:
		l, err := asList(tv.typ, tv.value)
		if err != nil {
			return TernaryNull, err
		}
		return containsIn(l, sub, target), nil
	case shapeMap:
		m, err := asMap(tv.typ, tv.value)
		if err != nil {
			return TernaryNull, err
		}
		return containsIn(lo.Values(m), sub, target), nil
	case shapeMapOfMaps:
		m, err := asMap(tv.typ, tv.value)
		if err != nil {
			return TernaryNull, err
		}
		return containsInNested(tv.typ, lo.Values(m), sub.Subtype(), target)
	case shapeListOfMaps:
		l, err := asList(tv.typ, tv.value)
		if err != nil {
			return TernaryNull, err
		}
		return containsInNested(tv.typ, l, sub.Subtype(), target)
	}
	return TernaryNull, unsupported("containsValue", tv.typ)
}

func containsInNested(t Type, maps []any, sub Type, target TypedValue) (Ternary, error) {
	sawNull := false
	for _, e := range maps {
		if e == nil {
			sawNull = true
			continue
		}
		m, err := asMap(t, e)
		if err != nil {
			return TernaryNull, err
		}
		switch containsIn(lo.Values(m), sub, target) {
		case TernaryTrue:
			return TernaryTrue, nil
		case TernaryNull:
			sawNull = true
		}
	}
	return falseOrNull(sawNull), nil
}

func containsIn(values []any, sub Type, target TypedValue) Ternary {
	sawNull := false
	for _, e := range values {
		if e == nil {
			sawNull = true
			continue
		}
		// incomparable elements are not equal to target
		eq, err := element(sub, e).EqualTo(target)
		if err != nil {
			continue
		}
		switch eq {
		case TernaryTrue:
			return TernaryTrue
		case TernaryNull:
			sawNull = true
		}
	}
	return falseOrNull(sawNull)
}

func element(sub Type, e any) TypedValue {
	if sub.IsPrimitive() {
		return NewTypedValue(sub, e)
	}
	return MakeTypedValue(e)
}

func falseOrNull(sawNull bool) Ternary {
	if sawNull {
		return TernaryNull
	}
	return TernaryFalse
}

func asMap(t Type, v any) (map[string]any, error) {
	if v == nil {
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s holds %T", ErrShape, t, v)
	}
	return m, nil
}

func asList(t Type, v any) ([]any, error) {
	if v == nil {
		return nil, nil
	}
	l, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s holds %T", ErrShape, t, v)
	}
	return l, nil
}
