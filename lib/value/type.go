package value

import (
	"reflect"
)

// Type is a tag in the closed lattice of types a record field can carry.
type Type uint8

const (
	Null Type = iota
	Unknown

	Boolean
	Integer
	Long
	Float
	Double
	String

	BooleanMap
	IntegerMap
	LongMap
	FloatMap
	DoubleMap
	StringMap

	BooleanMapMap
	IntegerMapMap
	LongMapMap
	FloatMapMap
	DoubleMapMap
	StringMapMap

	BooleanList
	IntegerList
	LongList
	FloatList
	DoubleList
	StringList

	BooleanMapList
	IntegerMapList
	LongMapList
	FloatMapList
	DoubleMapList
	StringMapList

	// Composites whose shape is known but whose element type could not be
	// derived, e.g. empty maps or lists holding only nils.
	UnknownMap
	UnknownMapMap
	UnknownList
	UnknownMapList

	numTypes
)

// distance between a primitive and the same primitive one tier deeper
const tierStride = StringMap - String

type tier uint8

const (
	tierNone tier = iota
	tierPrimitive
	tierPrimitiveMap
	tierComplexMap
	tierPrimitiveList
	tierComplexList
)

type shape uint8

const (
	shapeNone shape = iota
	shapeScalar
	shapeMap
	shapeMapOfMaps
	shapeList
	shapeListOfMaps
)

type typeInfo struct {
	name    string
	subtype Type
	tier    tier
	shape   shape
	// only set for primitives
	goType reflect.Type
}

var (
	Primitives     = []Type{Boolean, Integer, Long, Float, Double, String}
	Numerics       = []Type{Integer, Long, Float, Double}
	PrimitiveMaps  = []Type{BooleanMap, IntegerMap, LongMap, FloatMap, DoubleMap, StringMap}
	ComplexMaps    = []Type{BooleanMapMap, IntegerMapMap, LongMapMap, FloatMapMap, DoubleMapMap, StringMapMap}
	PrimitiveLists = []Type{BooleanList, IntegerList, LongList, FloatList, DoubleList, StringList}
	ComplexLists   = []Type{BooleanMapList, IntegerMapList, LongMapList, FloatMapList, DoubleMapList, StringMapList}
	Maps           = append(append([]Type{}, PrimitiveMaps...), ComplexMaps...)
	Lists          = append(append([]Type{}, PrimitiveLists...), ComplexLists...)
)

var types = buildTypes()

func buildTypes() [numTypes]typeInfo {
	var ret [numTypes]typeInfo
	ret[Null] = typeInfo{name: "NULL", subtype: Unknown}
	ret[Unknown] = typeInfo{name: "UNKNOWN", subtype: Unknown}

	primitives := []struct {
		t      Type
		name   string
		goType reflect.Type
	}{
		{Boolean, "BOOLEAN", reflect.TypeOf(false)},
		{Integer, "INTEGER", reflect.TypeOf(int32(0))},
		{Long, "LONG", reflect.TypeOf(int64(0))},
		{Float, "FLOAT", reflect.TypeOf(float32(0))},
		{Double, "DOUBLE", reflect.TypeOf(float64(0))},
		{String, "STRING", reflect.TypeOf("")},
	}
	for _, p := range primitives {
		m, mm, l, ml := p.t+tierStride, p.t+2*tierStride, p.t+3*tierStride, p.t+4*tierStride
		ret[p.t] = typeInfo{name: p.name, subtype: Unknown, tier: tierPrimitive, shape: shapeScalar, goType: p.goType}
		ret[m] = typeInfo{name: p.name + "_MAP", subtype: p.t, tier: tierPrimitiveMap, shape: shapeMap}
		ret[mm] = typeInfo{name: p.name + "_MAP_MAP", subtype: m, tier: tierComplexMap, shape: shapeMapOfMaps}
		ret[l] = typeInfo{name: p.name + "_LIST", subtype: p.t, tier: tierPrimitiveList, shape: shapeList}
		ret[ml] = typeInfo{name: p.name + "_MAP_LIST", subtype: m, tier: tierComplexList, shape: shapeListOfMaps}
	}
	ret[UnknownMap] = typeInfo{name: "UNKNOWN_MAP", subtype: Unknown, shape: shapeMap}
	ret[UnknownMapMap] = typeInfo{name: "UNKNOWN_MAP_MAP", subtype: UnknownMap, shape: shapeMapOfMaps}
	ret[UnknownList] = typeInfo{name: "UNKNOWN_LIST", subtype: Unknown, shape: shapeList}
	ret[UnknownMapList] = typeInfo{name: "UNKNOWN_MAP_LIST", subtype: UnknownMap, shape: shapeListOfMaps}
	return ret
}

var typesByName = func() map[string]Type {
	ret := make(map[string]Type, numTypes)
	for t := Type(0); t < numTypes; t++ {
		ret[types[t].name] = t
	}
	return ret
}()

func (t Type) info() typeInfo {
	if t >= numTypes {
		return types[Unknown]
	}
	return types[t]
}

func (t Type) String() string {
	return t.info().name
}

// Subtype returns the element type of a composite. Primitives and sentinels
// have no subtype and return Unknown.
func (t Type) Subtype() Type {
	return t.info().subtype
}

// Primitive chases subtypes until it reaches a primitive. Types that never
// reach one return Unknown.
func (t Type) Primitive() Type {
	for i := 0; i < 3; i++ {
		if t.IsPrimitive() {
			return t
		}
		t = t.Subtype()
	}
	return Unknown
}

// ParseType looks a type up by its enum name, e.g. "INTEGER_MAP".
func ParseType(name string) (Type, bool) {
	t, ok := typesByName[name]
	return t, ok
}

func (t Type) IsNull() bool          { return t == Null }
func (t Type) IsUnknown() bool       { return t == Unknown }
func (t Type) IsPrimitive() bool     { return t.info().tier == tierPrimitive }
func (t Type) IsPrimitiveMap() bool  { return t.info().tier == tierPrimitiveMap }
func (t Type) IsComplexMap() bool    { return t.info().tier == tierComplexMap }
func (t Type) IsPrimitiveList() bool { return t.info().tier == tierPrimitiveList }
func (t Type) IsComplexList() bool   { return t.info().tier == tierComplexList }

func (t Type) IsNumeric() bool {
	switch t {
	case Integer, Long, Float, Double:
		return true
	}
	return false
}

// IsMap reports whether values of t are maps, including maps whose element
// type is unknown.
func (t Type) IsMap() bool {
	s := t.info().shape
	return s == shapeMap || s == shapeMapOfMaps
}

// IsList reports whether values of t are lists, including lists whose element
// type is unknown.
func (t Type) IsList() bool {
	s := t.info().shape
	return s == shapeList || s == shapeListOfMaps
}

func mapOf(p Type) Type {
	if !p.IsPrimitive() {
		return UnknownMap
	}
	return p + tierStride
}

func mapOfMapsOf(p Type) Type {
	if !p.IsPrimitive() {
		return UnknownMapMap
	}
	return p + 2*tierStride
}

func listOf(p Type) Type {
	if !p.IsPrimitive() {
		return UnknownList
	}
	return p + 3*tierStride
}

func listOfMapsOf(p Type) Type {
	if !p.IsPrimitive() {
		return UnknownMapList
	}
	return p + 4*tierStride
}
