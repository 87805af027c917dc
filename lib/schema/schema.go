// Package schema declares the fields a record is expected to carry.
//
// A Schema is an ordered set of field specs, each validated before it is
// admitted. Schemas hold no data; callers use them to type-check records.
package schema

import (
	"fmt"

	"bullet/lib/value"

	"github.com/samber/lo"
)

type Schema struct {
	specs []Spec
	index map[string]int
}

// New validates every spec and fails on the first invalid or duplicate one.
func New(specs ...Spec) (*Schema, error) {
	s := &Schema{index: make(map[string]int, len(specs))}
	for _, spec := range specs {
		if err := s.Add(spec); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Schema) Len() int {
	return len(s.specs)
}

// Names returns the declared field names in declaration order.
func (s *Schema) Names() []string {
	return lo.Map(s.specs, func(spec Spec, _ int) string { return spec.FieldName() })
}

// Specs returns copies of the declared specs in declaration order.
func (s *Schema) Specs() []Spec {
	return lo.Map(s.specs, func(spec Spec, _ int) Spec { return spec.clone() })
}

func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Get returns a copy of the spec of name. Changes to it do not affect the
// schema.
func (s *Schema) Get(name string) (Spec, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.specs[i].clone(), true
}

// TypeOf returns the declared type of name, or Null if it is not declared.
func (s *Schema) TypeOf(name string) value.Type {
	i, ok := s.index[name]
	if !ok {
		return value.Null
	}
	return s.specs[i].FieldType()
}

// Add appends spec after validating it.
func (s *Schema) Add(spec Spec) error {
	if spec == nil {
		return fmt.Errorf("%w: nil spec", ErrValidation)
	}
	if err := spec.Validate(); err != nil {
		return err
	}
	name := spec.FieldName()
	if s.Has(name) {
		return invalid(name, "declared twice")
	}
	s.index[name] = len(s.specs)
	s.specs = append(s.specs, spec.clone())
	return nil
}

// Remove drops name and reports whether it was declared.
func (s *Schema) Remove(name string) bool {
	i, ok := s.index[name]
	if !ok {
		return false
	}
	s.specs = append(s.specs[:i], s.specs[i+1:]...)
	delete(s.index, name)
	for j := i; j < len(s.specs); j++ {
		s.index[s.specs[j].FieldName()] = j
	}
	return true
}

func (s *Schema) ChangeFieldType(name string, t value.Type) error {
	return s.change(name, func(spec Spec) error {
		spec.base().Type = t
		return nil
	})
}

// ChangeFieldDescription fails for fields declared without a description.
func (s *Schema) ChangeFieldDescription(name, description string) error {
	return s.change(name, func(spec Spec) error {
		d := detail(spec)
		if d == nil {
			return invalid(name, "declared without a description")
		}
		d.Description = description
		return nil
	})
}

func (s *Schema) ChangeSubFields(name string, subs []SubField) error {
	return s.change(name, func(spec Spec) error {
		var m *DetailedMapField
		switch f := spec.(type) {
		case *DetailedMapField:
			m = f
		case *DetailedMapOfMapsField:
			m = &f.DetailedMapField
		default:
			return invalid(name, "not declared as a detailed map")
		}
		m.SubFields = append([]SubField(nil), subs...)
		return nil
	})
}

func (s *Schema) ChangeSubSubFields(name string, subs []SubField) error {
	return s.change(name, func(spec Spec) error {
		f, ok := spec.(*DetailedMapOfMapsField)
		if !ok {
			return invalid(name, "not declared as a detailed map of maps")
		}
		f.SubSubFields = append([]SubField(nil), subs...)
		return nil
	})
}

func (s *Schema) ChangeSubListFields(name string, subs []SubField) error {
	return s.change(name, func(spec Spec) error {
		f, ok := spec.(*DetailedListOfMapsField)
		if !ok {
			return invalid(name, "not declared as a detailed list of maps")
		}
		f.SubListFields = append([]SubField(nil), subs...)
		return nil
	})
}

// change applies fn to a copy of the spec of name and keeps the copy only if
// it still validates.
func (s *Schema) change(name string, fn func(Spec) error) error {
	i, ok := s.index[name]
	if !ok {
		return invalid(name, "not declared")
	}
	spec := s.specs[i].clone()
	if err := fn(spec); err != nil {
		return err
	}
	if err := spec.Validate(); err != nil {
		return err
	}
	s.specs[i] = spec
	return nil
}

func detail(spec Spec) *DetailedField {
	switch f := spec.(type) {
	case *DetailedField:
		return f
	case *DetailedMapField:
		return &f.DetailedField
	case *DetailedMapOfMapsField:
		return &f.DetailedField
	case *DetailedListOfMapsField:
		return &f.DetailedField
	}
	return nil
}
