package schema

import (
	"fmt"

	"bullet/lib/value"

	"github.com/buger/jsonparser"
)

// variants picks the spec type of a JSON field declaration. The first
// matching predicate wins, so more specific declarations come first.
var variants = []struct {
	match func(obj []byte) bool
	build func(obj []byte, d DetailedField) (Spec, error)
}{
	{
		match: hasKey("subListFields"),
		build: func(obj []byte, d DetailedField) (Spec, error) {
			subs, err := parseSubFields(obj, "subListFields")
			if err != nil {
				return nil, err
			}
			return &DetailedListOfMapsField{DetailedField: d, SubListFields: subs}, nil
		},
	},
	{
		match: hasKey("subSubFields"),
		build: func(obj []byte, d DetailedField) (Spec, error) {
			subs, err := parseSubFields(obj, "subFields")
			if err != nil {
				return nil, err
			}
			subSubs, err := parseSubFields(obj, "subSubFields")
			if err != nil {
				return nil, err
			}
			return &DetailedMapOfMapsField{
				DetailedMapField: DetailedMapField{DetailedField: d, SubFields: subs},
				SubSubFields:     subSubs,
			}, nil
		},
	},
	{
		match: hasKey("subFields"),
		build: func(obj []byte, d DetailedField) (Spec, error) {
			subs, err := parseSubFields(obj, "subFields")
			if err != nil {
				return nil, err
			}
			return &DetailedMapField{DetailedField: d, SubFields: subs}, nil
		},
	},
	{
		match: hasKey("description"),
		build: func(_ []byte, d DetailedField) (Spec, error) {
			return &d, nil
		},
	},
	{
		match: func([]byte) bool { return true },
		build: func(_ []byte, d DetailedField) (Spec, error) {
			return &d.Field, nil
		},
	},
}

// Parse reads a schema from a JSON array of field declarations such as
//
//	[{"name": "id", "type": "STRING", "description": "event id"},
//	 {"name": "tags", "type": "STRING_MAP", "description": "tags",
//	  "subFields": [{"name": "env", "description": "environment"}]}]
func Parse(data []byte) (*Schema, error) {
	_, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	if dataType != jsonparser.Array {
		return nil, fmt.Errorf("%w: schema must be a JSON array, found %s", ErrValidation, dataType)
	}
	var (
		specs    []Spec
		parseErr error
	)
	_, err = jsonparser.ArrayEach(data, func(obj []byte, dataType jsonparser.ValueType, _ int, err error) {
		if parseErr != nil {
			return
		}
		if err != nil {
			parseErr = err
			return
		}
		if dataType != jsonparser.Object {
			parseErr = fmt.Errorf("%w: field declaration must be an object, found %s", ErrValidation, dataType)
			return
		}
		spec, err := parseSpec(obj)
		if err != nil {
			parseErr = err
			return
		}
		specs = append(specs, spec)
	})
	if err == nil {
		err = parseErr
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	return New(specs...)
}

func parseSpec(obj []byte) (Spec, error) {
	var d DetailedField
	var err error
	if d.Name, err = optionalString(obj, "name"); err != nil {
		return nil, err
	}
	typeName, err := optionalString(obj, "type")
	if err != nil {
		return nil, err
	}
	if typeName != "" {
		t, ok := value.ParseType(typeName)
		if !ok {
			return nil, invalid(d.Name, "unknown type %q", typeName)
		}
		d.Type = t
	}
	if d.Description, err = optionalString(obj, "description"); err != nil {
		return nil, err
	}
	for _, v := range variants {
		if v.match(obj) {
			return v.build(obj, d)
		}
	}
	return &d.Field, nil
}

func hasKey(key string) func([]byte) bool {
	return func(obj []byte) bool {
		_, dataType, _, err := jsonparser.Get(obj, key)
		return err == nil && dataType != jsonparser.Null
	}
}

func optionalString(obj []byte, key string) (string, error) {
	_, dataType, _, err := jsonparser.Get(obj, key)
	if err == jsonparser.KeyPathNotFoundError || dataType == jsonparser.Null {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if dataType != jsonparser.String {
		return "", fmt.Errorf("%w: %s must be a string, found %s", ErrValidation, key, dataType)
	}
	return jsonparser.GetString(obj, key)
}

func parseSubFields(obj []byte, key string) ([]SubField, error) {
	_, dataType, _, err := jsonparser.Get(obj, key)
	if err == jsonparser.KeyPathNotFoundError || dataType == jsonparser.Null {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if dataType != jsonparser.Array {
		return nil, fmt.Errorf("%w: %s must be an array, found %s", ErrValidation, key, dataType)
	}
	var (
		subs     []SubField
		parseErr error
	)
	_, err = jsonparser.ArrayEach(obj, func(sub []byte, dataType jsonparser.ValueType, _ int, err error) {
		if parseErr != nil {
			return
		}
		if err == nil && dataType != jsonparser.Object {
			err = fmt.Errorf("%w: entries of %s must be objects, found %s", ErrValidation, key, dataType)
		}
		var s SubField
		if err == nil {
			s.Name, err = optionalString(sub, "name")
		}
		if err == nil {
			s.Description, err = optionalString(sub, "description")
		}
		if err != nil {
			parseErr = err
			return
		}
		subs = append(subs, s)
	}, key)
	if err == nil {
		err = parseErr
	}
	return subs, err
}
