package schema

import (
	"errors"
	"fmt"

	"bullet/lib/value"
)

var ErrValidation = errors.New("invalid field")

// Spec declares one field of a schema. The concrete variants are Field,
// DetailedField, DetailedMapField, DetailedMapOfMapsField and
// DetailedListOfMapsField.
type Spec interface {
	FieldName() string
	FieldType() value.Type
	Validate() error
	base() *Field
	clone() Spec
}

// SubField names and describes a key of a map field.
type SubField struct {
	Name        string
	Description string
}

type Field struct {
	Name string
	Type value.Type
}

var (
	_ Spec = &Field{}
	_ Spec = &DetailedField{}
	_ Spec = &DetailedMapField{}
	_ Spec = &DetailedMapOfMapsField{}
	_ Spec = &DetailedListOfMapsField{}
)

func (f *Field) FieldName() string     { return f.Name }
func (f *Field) FieldType() value.Type { return f.Type }
func (f *Field) base() *Field          { return f }

func (f *Field) clone() Spec {
	ret := *f
	return &ret
}

func (f *Field) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("%w: missing name", ErrValidation)
	}
	if f.Type.IsNull() || f.Type.IsUnknown() {
		return invalid(f.Name, "missing type")
	}
	return nil
}

type DetailedField struct {
	Field
	Description string
}

func (f *DetailedField) clone() Spec {
	ret := *f
	return &ret
}

func (f *DetailedField) Validate() error {
	if err := f.Field.Validate(); err != nil {
		return err
	}
	if f.Description == "" {
		return invalid(f.Name, "missing description")
	}
	return nil
}

// DetailedMapField describes the keys of a map or map of maps field.
type DetailedMapField struct {
	DetailedField
	SubFields []SubField
}

func (f *DetailedMapField) clone() Spec {
	ret := *f
	ret.SubFields = append([]SubField(nil), f.SubFields...)
	return &ret
}

func (f *DetailedMapField) Validate() error {
	if err := f.DetailedField.Validate(); err != nil {
		return err
	}
	if !f.Type.IsPrimitiveMap() && !f.Type.IsComplexMap() {
		return invalid(f.Name, "sub fields declared on %s", f.Type)
	}
	return validateSubFields(f.Name, "sub fields", f.SubFields)
}

// DetailedMapOfMapsField additionally describes the keys of the inner maps.
type DetailedMapOfMapsField struct {
	DetailedMapField
	SubSubFields []SubField
}

func (f *DetailedMapOfMapsField) clone() Spec {
	ret := *f
	ret.SubFields = append([]SubField(nil), f.SubFields...)
	ret.SubSubFields = append([]SubField(nil), f.SubSubFields...)
	return &ret
}

func (f *DetailedMapOfMapsField) Validate() error {
	if err := f.DetailedMapField.Validate(); err != nil {
		return err
	}
	if !f.Type.IsComplexMap() {
		return invalid(f.Name, "sub sub fields declared on %s", f.Type)
	}
	return validateSubFields(f.Name, "sub sub fields", f.SubSubFields)
}

// DetailedListOfMapsField describes the keys of every map in a list field.
type DetailedListOfMapsField struct {
	DetailedField
	SubListFields []SubField
}

func (f *DetailedListOfMapsField) clone() Spec {
	ret := *f
	ret.SubListFields = append([]SubField(nil), f.SubListFields...)
	return &ret
}

func (f *DetailedListOfMapsField) Validate() error {
	if err := f.DetailedField.Validate(); err != nil {
		return err
	}
	if !f.Type.IsComplexList() {
		return invalid(f.Name, "sub list fields declared on %s", f.Type)
	}
	return validateSubFields(f.Name, "sub list fields", f.SubListFields)
}

func validateSubFields(field, kind string, subs []SubField) error {
	if len(subs) == 0 {
		return invalid(field, "missing %s", kind)
	}
	for i, s := range subs {
		if s.Name == "" {
			return invalid(field, "%s[%d] has no name", kind, i)
		}
		if s.Description == "" {
			return invalid(field, "%s %s has no description", kind, s.Name)
		}
	}
	return nil
}

func invalid(field, format string, args ...any) error {
	return fmt.Errorf("%w %s: %s", ErrValidation, field, fmt.Sprintf(format, args...))
}
