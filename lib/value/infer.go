package value

import (
	"reflect"
)

// InferType classifies a raw value. Composites are classified by sampling a
// single non-nil element; for maps the sampled element depends on Go's map
// iteration order, so a map holding values of mixed types may classify
// differently across calls.
func InferType(v any) Type {
	switch t := v.(type) {
	case nil:
		return Null
	case map[string]any:
		return inferMap(t)
	case []any:
		return inferList(t)
	default:
		return inferPrimitive(v)
	}
}

func inferPrimitive(v any) Type {
	rt := reflect.TypeOf(v)
	for _, p := range Primitives {
		if types[p].goType == rt {
			return p
		}
	}
	return Unknown
}

func sampleMap(m map[string]any) any {
	for _, v := range m {
		if v != nil {
			return v
		}
	}
	return nil
}

func sampleList(l []any) any {
	for _, v := range l {
		if v != nil {
			return v
		}
	}
	return nil
}

// inferNested returns the primitive element type of a map nested inside a
// composite, or Unknown if it has none.
func inferNested(m map[string]any) Type {
	sample := sampleMap(m)
	if sample == nil {
		return Unknown
	}
	return inferPrimitive(sample)
}

func inferMap(m map[string]any) Type {
	sample := sampleMap(m)
	switch s := sample.(type) {
	case nil:
		return UnknownMap
	case map[string]any:
		p := inferNested(s)
		if p == Unknown && sampleMap(s) != nil {
			return Unknown
		}
		return mapOfMapsOf(p)
	case []any:
		return Unknown
	default:
		p := inferPrimitive(s)
		if p == Unknown {
			return Unknown
		}
		return mapOf(p)
	}
}

func inferList(l []any) Type {
	sample := sampleList(l)
	switch s := sample.(type) {
	case nil:
		return UnknownList
	case map[string]any:
		p := inferNested(s)
		if p == Unknown && sampleMap(s) != nil {
			return Unknown
		}
		return listOfMapsOf(p)
	case []any:
		return Unknown
	default:
		p := inferPrimitive(s)
		if p == Unknown {
			return Unknown
		}
		return listOf(p)
	}
}
