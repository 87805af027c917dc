// Package record holds named, typed event fields that are decoded from
// bytes lazily, on first access.
//
// A Record starts either materialized (fields in memory) or raw (encoded
// bytes). The first access that needs fields decodes the bytes exactly once;
// after that the bytes are dropped and all work happens on the field map.
// If decoding fails the record becomes corrupt: soft accessors report every
// field as absent, strict accessors and mutations return ErrCorrupt.
//
// Records are not safe for concurrent use, including concurrent reads of a
// raw record, since the first read mutates it.
package record

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"bullet/lib/codec"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

var (
	ErrCorrupt = errors.New("record bytes could not be decoded")
	ErrInvalid = errors.New("cannot set a NULL or UNKNOWN typed value")
)

type Codec interface {
	Encode(fields map[string]any) ([]byte, error)
	Decode(data []byte) (map[string]any, error)
}

type state uint8

const (
	materialized state = iota
	raw
	corrupt
)

type Record struct {
	codec Codec
	state state
	// set while raw or corrupt
	data []byte
	// set while materialized
	fields map[string]any
	err    error
}

func New(c Codec) *Record {
	return FromFields(c, nil)
}

// FromFields wraps fields without copying; the record owns the map from now
// on.
func FromFields(c Codec, fields map[string]any) *Record {
	if fields == nil {
		fields = make(map[string]any)
	}
	return &Record{codec: orDefault(c), state: materialized, fields: fields}
}

// FromBytes creates a record that decodes data with c on first access.
func FromBytes(c Codec, data []byte) *Record {
	return &Record{codec: orDefault(c), state: raw, data: data}
}

func orDefault(c Codec) Codec {
	if c == nil {
		return codec.Default
	}
	return c
}

// Materialize decodes the held bytes if that has not happened yet and
// reports whether the record has fields.
func (r *Record) Materialize() bool {
	switch r.state {
	case materialized:
		return true
	case corrupt:
		return false
	}
	fields, err := r.codec.Decode(r.data)
	if err != nil {
		r.state = corrupt
		r.err = err
		materializations.WithLabelValues("failure").Inc()
		zap.L().Warn("failed to materialize record", zap.Int("size", len(r.data)), zap.Error(err))
		return false
	}
	r.state = materialized
	r.fields = fields
	r.data = nil
	materializations.WithLabelValues("success").Inc()
	return true
}

// Load replaces the contents of the record with data, to be decoded on next
// access.
func (r *Record) Load(data []byte) {
	r.state = raw
	r.data = data
	r.fields = nil
	r.err = nil
}

// Err returns the decode error of a corrupt record.
func (r *Record) Err() error {
	return r.err
}

// ToBytes encodes the record. A record that was never materialized returns
// the bytes it was created from.
func (r *Record) ToBytes() ([]byte, error) {
	if r.state != materialized {
		return r.data, nil
	}
	data, err := r.codec.Encode(r.fields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	encodedBytes.Observe(float64(len(data)))
	return data, nil
}

func (r *Record) strict() error {
	if !r.Materialize() {
		return fmt.Errorf("%w: %v", ErrCorrupt, r.err)
	}
	return nil
}

// HasField fails if the record cannot be decoded.
func (r *Record) HasField(field string) (bool, error) {
	if err := r.strict(); err != nil {
		return false, err
	}
	_, ok := r.fields[field]
	return ok, nil
}

// FieldCount fails if the record cannot be decoded.
func (r *Record) FieldCount() (int, error) {
	if err := r.strict(); err != nil {
		return 0, err
	}
	return len(r.fields), nil
}

// Set overwrites field with v.
func (r *Record) Set(field string, v any) error {
	if err := r.strict(); err != nil {
		return err
	}
	r.fields[field] = v
	return nil
}

// Remove deletes field and returns its previous value.
func (r *Record) Remove(field string) (any, error) {
	if err := r.strict(); err != nil {
		return nil, err
	}
	v := r.fields[field]
	delete(r.fields, field)
	return v, nil
}

// Rename moves the value of from to to, overwriting to. Renaming an absent
// field does nothing.
func (r *Record) Rename(from, to string) error {
	if err := r.strict(); err != nil {
		return err
	}
	v, ok := r.fields[from]
	if !ok {
		return nil
	}
	delete(r.fields, from)
	r.fields[to] = v
	return nil
}

// Range calls fn for every field in name order until fn returns false.
func (r *Record) Range(fn func(field string, v any) bool) error {
	if err := r.strict(); err != nil {
		return err
	}
	for _, k := range r.names() {
		if !fn(k, r.fields[k]) {
			return nil
		}
	}
	return nil
}

func (r *Record) names() []string {
	keys := lo.Keys(r.fields)
	sort.Strings(keys)
	return keys
}

// Copy returns a record with the same fields. Nested maps and lists are
// shared with r, not copied.
func (r *Record) Copy() *Record {
	ret := &Record{codec: r.codec, state: r.state, data: r.data, err: r.err}
	if r.state == materialized {
		ret.fields = make(map[string]any, len(r.fields))
		for k, v := range r.fields {
			ret.fields[k] = v
		}
	}
	return ret
}

// Convert returns a shallow copy of r that encodes with c. It fails if r
// cannot be decoded.
func (r *Record) Convert(c Codec) (*Record, error) {
	if err := r.strict(); err != nil {
		return nil, err
	}
	ret := r.Copy()
	ret.codec = orDefault(c)
	return ret, nil
}

// Equal compares the decoded fields of both records, ignoring field order
// and encoding. Records that cannot be decoded are never equal.
func (r *Record) Equal(other *Record) bool {
	if other == nil || !r.Materialize() || !other.Materialize() {
		return false
	}
	if r == other {
		return true
	}
	if len(r.fields) != len(other.fields) {
		return false
	}
	for k, v := range r.fields {
		ov, ok := other.fields[k]
		if !ok || !reflect.DeepEqual(v, ov) {
			return false
		}
	}
	return true
}

func (r *Record) String() string {
	if !r.Materialize() {
		return "Record(corrupt)"
	}
	var sb strings.Builder
	sb.WriteString("Record{")
	for i, k := range r.names() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(fmt.Sprintf("%s: %v", k, r.fields[k]))
	}
	sb.WriteString("}")
	return sb.String()
}
