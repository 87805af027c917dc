package record

import (
	"fmt"
	"strconv"
	"strings"

	"bullet/lib/value"
)

// PathDelimiter separates the tokens of a path given to Extract. Paths are
// split on every delimiter up to three tokens, so a map key that itself
// contains the delimiter cannot be addressed reliably.
const PathDelimiter = "."

const maxPathTokens = 3

// Get returns the value of field, or nil if it is absent or the record
// cannot be decoded.
func (r *Record) Get(field string) any {
	if !r.Materialize() {
		return nil
	}
	return r.fields[field]
}

// GetKey returns field[key] of a map field.
func (r *Record) GetKey(field, key string) (any, error) {
	return atKey(r.Get(field), key)
}

// GetIndex returns field[index] of a list field.
func (r *Record) GetIndex(field string, index int) (any, error) {
	return atIndex(r.Get(field), index)
}

// GetKeyKey returns field[key][subKey] of a map of maps field.
func (r *Record) GetKeyKey(field, key, subKey string) (any, error) {
	v, err := atKey(r.Get(field), key)
	if err != nil {
		return nil, err
	}
	return atKey(v, subKey)
}

// GetIndexKey returns field[index][subKey] of a list of maps field.
func (r *Record) GetIndexKey(field string, index int, subKey string) (any, error) {
	v, err := atIndex(r.Get(field), index)
	if err != nil {
		return nil, err
	}
	return atKey(v, subKey)
}

// Extract resolves a path such as "field", "field.key", "field.0",
// "field.key.subKey" or "field.0.subKey". Any failure, including a path that
// does not fit the shape of the record, yields nil.
func (r *Record) Extract(path string) any {
	tokens := strings.SplitN(path, PathDelimiter, maxPathTokens)
	v := r.Get(tokens[0])
	for _, token := range tokens[1:] {
		var err error
		if v, err = step(v, token); err != nil || v == nil {
			return nil
		}
	}
	return v
}

// step descends one level into a map by key or into a list by index.
func step(v any, token string) (any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case []any:
		index, err := strconv.Atoi(token)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a list index", value.ErrShape, token)
		}
		return atIndex(t, index)
	default:
		return atKey(v, token)
	}
}

func atKey(v any, key string) (any, error) {
	if v == nil {
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a map, found %T", value.ErrShape, v)
	}
	return m[key], nil
}

func atIndex(v any, index int) (any, error) {
	if v == nil {
		return nil, nil
	}
	l, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a list, found %T", value.ErrShape, v)
	}
	if index < 0 || index >= len(l) {
		return nil, fmt.Errorf("%w: index %d, length %d", value.ErrIndex, index, len(l))
	}
	return l[index], nil
}
