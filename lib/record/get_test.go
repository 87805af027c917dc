package record

import (
	"testing"

	"bullet/lib/value"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_Extract(t *testing.T) {
	t.Parallel()
	r := FromFields(nil, sample())
	require.NoError(t, r.Set("a", map[string]any{"a.1": "bar", "a": map[string]any{"1": "baz"}}))
	scenarios := []struct {
		path     string
		expected any
	}{
		{"s", "foo"},
		{"m.k", int32(5)},
		{"m.n", nil},
		{"m.missing", nil},
		{"mm.a.b", 1.5},
		{"l.1", "y"},
		{"l.2", nil},
		{"l.-1", nil},
		{"l.x", nil},
		{"lm.0.k", true},
		{"lm.1.k", nil},
		{"s.k", nil},
		{"missing.k.j", nil},
		// the third token keeps the rest of the path
		{"mm.a.b.c", nil},
		// keys containing the delimiter are not addressable
		{"a.a.1", "baz"},
		{"", nil},
	}
	for _, scenario := range scenarios {
		assert.Equal(t, scenario.expected, r.Extract(scenario.path), scenario.path)
	}

	r = FromFields(nil, map[string]any{"a": map[string]any{"a.1": "bar"}})
	assert.Nil(t, r.Extract("a.a.1"))
}

func TestRecord_StrictGetters(t *testing.T) {
	t.Parallel()
	r := FromFields(nil, sample())

	v, err := r.GetKey("m", "k")
	require.NoError(t, err)
	assert.Equal(t, int32(5), v)
	v, err = r.GetKey("missing", "k")
	require.NoError(t, err)
	assert.Nil(t, v)
	_, err = r.GetKey("l", "k")
	assert.ErrorIs(t, err, value.ErrShape)

	v, err = r.GetIndex("l", 0)
	require.NoError(t, err)
	assert.Equal(t, "x", v)
	_, err = r.GetIndex("l", 2)
	assert.ErrorIs(t, err, value.ErrIndex)
	_, err = r.GetIndex("m", 0)
	assert.ErrorIs(t, err, value.ErrShape)

	v, err = r.GetKeyKey("mm", "a", "b")
	require.NoError(t, err)
	assert.Equal(t, 1.5, v)
	_, err = r.GetKeyKey("m", "k", "b")
	assert.ErrorIs(t, err, value.ErrShape)

	v, err = r.GetIndexKey("lm", 0, "k")
	require.NoError(t, err)
	assert.Equal(t, true, v)
	v, err = r.GetIndexKey("lm", 1, "k")
	require.NoError(t, err)
	assert.Nil(t, v)
	_, err = r.GetIndexKey("lm", 5, "k")
	assert.ErrorIs(t, err, value.ErrIndex)
}

func TestRecord_TypedIntegerMap(t *testing.T) {
	t.Parallel()
	r := New(nil)
	require.NoError(t, r.Set("x", map[string]any{"k": int32(5)}))

	x := r.TypedGet("x", mo.None[value.Type]())
	assert.Equal(t, value.IntegerMap, x.Type())

	k, err := r.TypedGetKey("x", "k")
	require.NoError(t, err)
	assert.Equal(t, value.Integer, k.Type())
	assert.Equal(t, int32(5), k.Value())

	doubles, err := x.ForceCast(value.DoubleMap)
	require.NoError(t, err)
	assert.Equal(t, value.DoubleMap, doubles.Type())
	assert.Equal(t, map[string]any{"k": 5.0}, doubles.Value())
	// the record itself is untouched
	assert.Equal(t, map[string]any{"k": int32(5)}, r.Get("x"))
}

func TestRecord_TypedGet(t *testing.T) {
	t.Parallel()
	r := FromFields(nil, sample())
	none := mo.None[value.Type]()
	scenarios := []struct {
		field    string
		hint     mo.Option[value.Type]
		expected value.Type
	}{
		{"s", none, value.String},
		{"i", none, value.Integer},
		{"m", none, value.IntegerMap},
		{"mm", none, value.DoubleMapMap},
		{"l", none, value.StringList},
		{"lm", none, value.BooleanMapList},
		{"null", none, value.Null},
		{"missing", none, value.Null},
		// hints are trusted
		{"i", mo.Some(value.Long), value.Long},
		{"missing", mo.Some(value.Long), value.Null},
	}
	for _, scenario := range scenarios {
		assert.Equal(t, scenario.expected, r.TypedGet(scenario.field, scenario.hint).Type(), scenario.field)
	}
}

func TestRecord_TypedNested(t *testing.T) {
	t.Parallel()
	r := FromFields(nil, sample())

	v, err := r.TypedGetIndex("l", 1)
	require.NoError(t, err)
	assert.Equal(t, value.NewTypedValue(value.String, "y"), v)
	_, err = r.TypedGetIndex("l", 3)
	assert.ErrorIs(t, err, value.ErrIndex)

	v, err = r.TypedGetIndex("lm", 0)
	require.NoError(t, err)
	assert.Equal(t, value.BooleanMap, v.Type())
	v, err = r.TypedGetIndex("lm", 1)
	require.NoError(t, err)
	assert.True(t, v.IsNull())

	v, err = r.TypedGetKey("m", "n")
	require.NoError(t, err)
	assert.True(t, v.IsNull())
	_, err = r.TypedGetKey("l", "n")
	assert.ErrorIs(t, err, value.ErrShape)

	none := mo.None[value.Type]()
	assert.Equal(t, value.NewTypedValue(value.Double, 1.5), r.TypedExtract("mm.a.b", none))
	assert.Equal(t, value.NewTypedValue(value.Boolean, true), r.TypedExtract("lm.0.k", none))
	assert.Equal(t, value.DoubleMap, r.TypedExtract("mm.a", none).Type())
	assert.Equal(t, value.NullValue, r.TypedExtract("lm.4.k", none))
	assert.Equal(t, value.NullValue, r.TypedExtract("s.x", none))
	assert.Equal(t, value.Integer, r.TypedExtract("m.k", none).Type())
	// a hint on the field flows into its children
	assert.Equal(t, value.NewTypedValue(value.Long, int32(5)), r.TypedExtract("m.k", mo.Some(value.LongMap)))
}
