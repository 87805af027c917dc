package value

import (
	"math"
	"strconv"
)

// CanSafeCast reports whether any value of source can be cast to target
// without losing information. Besides identity, only INTEGER->LONG,
// FLOAT->DOUBLE and primitive->STRING widen, applied uniformly at every
// nesting tier.
func CanSafeCast(target, source Type) bool {
	if target == source {
		return true
	}
	ti, si := target.info().tier, source.info().tier
	if ti == tierNone || ti != si {
		return false
	}
	return widens(target.Primitive(), source.Primitive())
}

func widens(target, source Type) bool {
	switch {
	case target == source:
		return true
	case target == Long && source == Integer:
		return true
	case target == Double && source == Float:
		return true
	case target == String:
		return source.IsPrimitive()
	}
	return false
}

// CanForceCast reports whether source can be forced into target. Forced casts
// never cross nesting tiers.
func CanForceCast(target, source Type) bool {
	if target == source {
		return true
	}
	ti := target.info().tier
	return ti != tierNone && ti == source.info().tier
}

// ForceCast converts v, declared as source, to target. Composites are
// rebuilt element by element; the result never aliases v.
func ForceCast(target, source Type, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if !CanForceCast(target, source) {
		return nil, castError(target, source, "types are in different tiers")
	}
	switch target.info().tier {
	case tierPrimitive:
		return castPrimitive(target, v)
	case tierPrimitiveMap:
		return castMap(target, v, func(e any) (any, error) {
			return castPrimitive(target.Subtype(), e)
		})
	case tierComplexMap:
		sub := target.Subtype()
		return castMap(target, v, func(e any) (any, error) {
			return castMap(sub, e, func(ee any) (any, error) {
				return castPrimitive(sub.Subtype(), ee)
			})
		})
	case tierPrimitiveList:
		return castList(target, v, func(e any) (any, error) {
			return castPrimitive(target.Subtype(), e)
		})
	case tierComplexList:
		sub := target.Subtype()
		return castList(target, v, func(e any) (any, error) {
			return castMap(sub, e, func(ee any) (any, error) {
				return castPrimitive(sub.Subtype(), ee)
			})
		})
	default:
		// identical types outside the tiers, e.g. UNKNOWN_MAP
		return v, nil
	}
}

// SafeCast casts v, declared as source, to target only if the cast is
// lossless.
func SafeCast(target, source Type, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if !CanSafeCast(target, source) {
		return nil, castError(target, source, "not a widening cast")
	}
	return ForceCast(target, source, v)
}

// CastObject infers the type of an unverified value and safely casts it to
// target.
func CastObject(target Type, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	return SafeCast(target, InferType(v), v)
}

func castMap(target Type, v any, fn func(any) (any, error)) (any, error) {
	if v == nil {
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, castFailure(target, InferType(v), ErrShape)
	}
	ret := make(map[string]any, len(m))
	for k, e := range m {
		if e == nil {
			ret[k] = nil
			continue
		}
		c, err := fn(e)
		if err != nil {
			return nil, err
		}
		ret[k] = c
	}
	return ret, nil
}

func castList(target Type, v any, fn func(any) (any, error)) (any, error) {
	if v == nil {
		return nil, nil
	}
	l, ok := v.([]any)
	if !ok {
		return nil, castFailure(target, InferType(v), ErrShape)
	}
	ret := make([]any, len(l))
	for i, e := range l {
		if e == nil {
			continue
		}
		c, err := fn(e)
		if err != nil {
			return nil, err
		}
		ret[i] = c
	}
	return ret, nil
}

func castPrimitive(target Type, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	source := inferPrimitive(v)
	if source == Unknown {
		return nil, castError(target, InferType(v), "not a primitive")
	}
	var (
		ret any
		err error
	)
	switch target {
	case Boolean:
		ret, err = toBoolean(v)
	case Integer:
		var f float64
		if f, err = toNumber(v); err == nil {
			if i, ok := v.(int64); ok {
				ret = int32(i)
			} else {
				ret = truncInt32(f)
			}
		}
	case Long:
		var f float64
		if f, err = toNumber(v); err == nil {
			if i, ok := v.(int32); ok {
				ret = int64(i)
			} else if i, ok := v.(int64); ok {
				ret = i
			} else {
				ret = truncInt64(f)
			}
		}
	case Float:
		var f float64
		if f, err = toNumber(v); err == nil {
			ret = float32(f)
		}
	case Double:
		var f float64
		if f, err = toNumber(v); err == nil {
			ret = f
		}
	case String:
		ret = toString(v)
	default:
		return nil, castError(target, source, "not a primitive target")
	}
	if err != nil {
		return nil, castFailure(target, source, err)
	}
	return ret, nil
}

func toNumber(v any) (float64, error) {
	switch x := v.(type) {
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case int32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case float32:
		return float64(x), nil
	case float64:
		return x, nil
	case string:
		return strconv.ParseFloat(x, 64)
	}
	return 0, ErrShape
}

func toBoolean(v any) (bool, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case string:
		return strconv.ParseBool(x)
	}
	f, err := toNumber(v)
	if err != nil {
		return false, err
	}
	return f != 0, nil
}

func toString(v any) string {
	switch x := v.(type) {
	case bool:
		return strconv.FormatBool(x)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case string:
		return x
	}
	return ""
}

// truncInt32 narrows toward zero, saturating at the int32 range.
func truncInt32(f float64) int32 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	}
	return int32(f)
}

func truncInt64(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(f)
}
