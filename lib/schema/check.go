package schema

import (
	"errors"
	"fmt"

	"bullet/lib/value"

	"github.com/samber/mo"
	"go.uber.org/multierr"
)

var ErrMismatch = errors.New("field does not match schema")

// Getter is the typed read access Check needs, satisfied by *record.Record.
type Getter interface {
	TypedGet(field string, hint mo.Option[value.Type]) value.TypedValue
}

// Check verifies that every declared field present in r can be safely cast
// to its declared type. Absent and null fields are accepted. All mismatches
// are reported together.
func (s *Schema) Check(r Getter) error {
	var err error
	for _, spec := range s.specs {
		declared := spec.FieldType()
		found := r.TypedGet(spec.FieldName(), mo.None[value.Type]()).Type()
		if found.IsNull() || fits(declared, found) {
			continue
		}
		err = multierr.Append(err, fmt.Errorf("%w: %s is %s, declared %s", ErrMismatch, spec.FieldName(), found, declared))
	}
	return err
}

// fits also accepts composites whose element type could not be inferred,
// e.g. empty maps, when their shape matches the declaration.
func fits(declared, found value.Type) bool {
	if value.CanSafeCast(declared, found) {
		return true
	}
	switch found {
	case value.UnknownMap:
		return declared.IsPrimitiveMap() || declared.IsComplexMap()
	case value.UnknownMapMap:
		return declared.IsComplexMap()
	case value.UnknownList:
		return declared.IsPrimitiveList() || declared.IsComplexList()
	case value.UnknownMapList:
		return declared.IsComplexList()
	}
	return false
}
