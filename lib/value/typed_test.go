package value

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTypedValue(t *testing.T) {
	t.Parallel()
	tv := NewTypedValue(Null, "dropped")
	assert.True(t, tv.IsNull())
	assert.Nil(t, tv.Value())
	assert.Equal(t, NullValue, tv)

	tv = MakeTypedValue(map[string]any{"k": int32(5)})
	assert.Equal(t, IntegerMap, tv.Type())
	assert.True(t, tv.IsMap())
	assert.True(t, tv.IsPrimitiveMap())
	assert.False(t, tv.IsComplexMap())
	assert.True(t, UnknownValue.IsUnknown())
}

func TestTypedValue_Size(t *testing.T) {
	t.Parallel()
	scenarios := []struct {
		tv   TypedValue
		size int
		err  bool
	}{
		{MakeTypedValue("héllo"), 5, false},
		{MakeTypedValue(""), 0, false},
		{MakeTypedValue([]any{int32(1), nil}), 2, false},
		{MakeTypedValue(map[string]any{}), 0, false},
		{MakeTypedValue(map[string]any{"a": map[string]any{"b": "c"}}), 1, false},
		{MakeTypedValue(int32(3)), 0, true},
		{NullValue, 0, true},
		{NewTypedValue(String, int32(3)), 0, true},
	}
	for _, scene := range scenarios {
		size, err := scene.tv.Size()
		if scene.err {
			assert.Error(t, err, scene.tv.String())
		} else {
			assert.NoError(t, err)
			assert.Equal(t, scene.size, size, scene.tv.String())
		}
	}
	_, err := MakeTypedValue(true).Size()
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestTypedValue_ContainsKey(t *testing.T) {
	t.Parallel()
	scenarios := []struct {
		tv       TypedValue
		key      string
		expected Ternary
	}{
		{MakeTypedValue([]any{map[string]any{}, nil}), "x", TernaryNull},
		{MakeTypedValue([]any{map[string]any{"x": int32(1)}}), "x", TernaryTrue},
		{MakeTypedValue([]any{map[string]any{}}), "x", TernaryFalse},
		{MakeTypedValue([]any{nil, map[string]any{"x": int32(1)}}), "x", TernaryTrue},
		{MakeTypedValue(map[string]any{"x": "a"}), "x", TernaryTrue},
		{MakeTypedValue(map[string]any{"x": "a"}), "y", TernaryFalse},
		{MakeTypedValue(map[string]any{}), "y", TernaryFalse},
		{MakeTypedValue(map[string]any{"a": map[string]any{"x": 1.0}}), "a", TernaryTrue},
		{MakeTypedValue(map[string]any{"a": map[string]any{"x": 1.0}}), "x", TernaryTrue},
		{MakeTypedValue(map[string]any{"a": map[string]any{"x": 1.0}}), "y", TernaryFalse},
		{NewTypedValue(DoubleMapMap, map[string]any{"a": map[string]any{"x": 1.0}, "b": nil}), "y", TernaryNull},
		{NewTypedValue(DoubleMapMap, map[string]any{"a": map[string]any{"x": 1.0}, "b": nil}), "x", TernaryTrue},
	}
	for _, scene := range scenarios {
		found, err := scene.tv.ContainsKey(scene.key)
		assert.NoError(t, err)
		assert.Equal(t, scene.expected, found, "%s contains %s", scene.tv, scene.key)
	}

	_, err := MakeTypedValue([]any{int32(1)}).ContainsKey("x")
	assert.ErrorIs(t, err, ErrUnsupported)
	_, err = MakeTypedValue("x").ContainsKey("x")
	assert.ErrorIs(t, err, ErrUnsupported)
	_, err = NewTypedValue(IntegerMapList, []any{"x"}).ContainsKey("x")
	assert.ErrorIs(t, err, ErrShape)
}

func TestTypedValue_ContainsValue(t *testing.T) {
	t.Parallel()
	five := MakeTypedValue(int32(5))
	scenarios := []struct {
		tv       TypedValue
		target   TypedValue
		expected Ternary
	}{
		{MakeTypedValue([]any{int32(1), int32(5)}), five, TernaryTrue},
		{MakeTypedValue([]any{int64(5)}), five, TernaryTrue},
		{MakeTypedValue([]any{5.0}), five, TernaryTrue},
		{MakeTypedValue([]any{int32(1)}), five, TernaryFalse},
		{MakeTypedValue([]any{int32(1), nil}), five, TernaryNull},
		{MakeTypedValue([]any{nil, int32(5)}), five, TernaryTrue},
		{MakeTypedValue([]any{"5"}), five, TernaryFalse},
		{MakeTypedValue(map[string]any{"a": int32(5)}), five, TernaryTrue},
		{MakeTypedValue(map[string]any{"a": int32(4), "b": nil}), five, TernaryNull},
		{MakeTypedValue(map[string]any{"a": map[string]any{"b": int32(5)}}), five, TernaryTrue},
		{NewTypedValue(IntegerMapMap, map[string]any{"a": map[string]any{"b": int32(4)}, "c": nil}), five, TernaryNull},
		{MakeTypedValue([]any{map[string]any{"b": int32(4)}, map[string]any{"b": int32(5)}}), five, TernaryTrue},
		{MakeTypedValue([]any{map[string]any{"b": int32(4)}}), five, TernaryFalse},
		{MakeTypedValue([]any{int32(1)}), NullValue, TernaryNull},
	}
	for _, scene := range scenarios {
		found, err := scene.tv.ContainsValue(scene.target)
		assert.NoError(t, err)
		assert.Equal(t, scene.expected, found, "%s contains %s", scene.tv, scene.target)
	}
	_, err := five.ContainsValue(five)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestTypedValue_CompareTo(t *testing.T) {
	t.Parallel()
	scenarios := []struct {
		a, b     TypedValue
		expected int
		absent   bool
		err      bool
	}{
		{NullValue, NullValue, 0, false, false},
		{NullValue, MakeTypedValue(int32(1)), 0, true, false},
		{MakeTypedValue("a"), NullValue, 0, true, false},
		{MakeTypedValue(int32(1)), MakeTypedValue(int64(2)), -1, false, false},
		{MakeTypedValue(2.5), MakeTypedValue(int32(2)), 1, false, false},
		{MakeTypedValue(float32(1)), MakeTypedValue(int64(1)), 0, false, false},
		{MakeTypedValue("b"), MakeTypedValue("a"), 1, false, false},
		{MakeTypedValue(false), MakeTypedValue(true), -1, false, false},
		{MakeTypedValue(true), MakeTypedValue(true), 0, false, false},
		{MakeTypedValue("1"), MakeTypedValue(int32(1)), 0, false, true},
		{MakeTypedValue(true), MakeTypedValue(int32(1)), 0, false, true},
		{MakeTypedValue([]any{"a"}), MakeTypedValue([]any{"a"}), 0, false, true},
		{UnknownValue, UnknownValue, 0, false, true},
	}
	for _, scene := range scenarios {
		found, err := scene.a.CompareTo(scene.b)
		if scene.err {
			assert.ErrorIs(t, err, ErrUnsupported, "%s vs %s", scene.a, scene.b)
			continue
		}
		require.NoError(t, err)
		if scene.absent {
			assert.True(t, found.IsAbsent(), "%s vs %s", scene.a, scene.b)
		} else {
			assert.Equal(t, scene.expected, found.MustGet(), "%s vs %s", scene.a, scene.b)
		}
	}
}

func TestTypedValue_Compare(t *testing.T) {
	t.Parallel()
	c, err := NullValue.Compare(NullValue)
	assert.NoError(t, err)
	assert.Equal(t, 0, c)
	_, err = NullValue.Compare(MakeTypedValue(int32(1)))
	assert.ErrorIs(t, err, ErrUnsupported)
	_, err = MakeTypedValue("x").Compare(NullValue)
	assert.ErrorIs(t, err, ErrUnsupported)
	c, err = MakeTypedValue(int32(3)).Compare(MakeTypedValue(int64(2)))
	assert.NoError(t, err)
	assert.Equal(t, 1, c)
}

func TestTypedValue_EqualTo(t *testing.T) {
	t.Parallel()
	eq, err := MakeTypedValue(int32(5)).EqualTo(MakeTypedValue(5.0))
	assert.NoError(t, err)
	assert.Equal(t, TernaryTrue, eq)
	eq, err = MakeTypedValue("a").EqualTo(MakeTypedValue("b"))
	assert.NoError(t, err)
	assert.Equal(t, TernaryFalse, eq)
	eq, err = MakeTypedValue("a").EqualTo(NullValue)
	assert.NoError(t, err)
	assert.Equal(t, TernaryNull, eq)
	_, err = MakeTypedValue("a").EqualTo(MakeTypedValue(int32(1)))
	assert.Error(t, err)
}

func TestNullsFirstAndLast(t *testing.T) {
	t.Parallel()
	values := []TypedValue{
		MakeTypedValue(int64(3)),
		NullValue,
		MakeTypedValue(int32(1)),
		MakeTypedValue(2.0),
		NullValue,
	}
	sorted := append([]TypedValue{}, values...)
	sort.SliceStable(sorted, func(i, j int) bool { return NullsFirst(sorted[i], sorted[j]) < 0 })
	assert.Equal(t, []TypedValue{NullValue, NullValue, values[2], values[3], values[0]}, sorted)

	sorted = append([]TypedValue{}, values...)
	sort.SliceStable(sorted, func(i, j int) bool { return NullsLast(sorted[i], sorted[j]) < 0 })
	assert.Equal(t, []TypedValue{values[2], values[3], values[0], NullValue, NullValue}, sorted)

	assert.Equal(t, 0, NullsFirst(NullValue, NullValue))
	assert.Equal(t, 0, NullsLast(NullValue, NullValue))
	// incomparable pairs still get a consistent order
	s, b := MakeTypedValue("a"), MakeTypedValue(true)
	assert.Equal(t, -NullsFirst(s, b), NullsFirst(b, s))
	assert.NotEqual(t, 0, NullsFirst(s, b))
}

func TestTypedValue_ForceCast(t *testing.T) {
	t.Parallel()
	tv := MakeTypedValue(map[string]any{"k": int32(5)})
	cast, err := tv.ForceCast(DoubleMap)
	require.NoError(t, err)
	assert.Equal(t, DoubleMap, cast.Type())
	assert.Equal(t, map[string]any{"k": 5.0}, cast.Value())

	_, err = tv.ForceCast(DoubleList)
	assert.ErrorIs(t, err, ErrCast)

	cast, err = MakeTypedValue(int32(5)).SafeCast(String)
	require.NoError(t, err)
	assert.Equal(t, NewTypedValue(String, "5"), cast)
	_, err = MakeTypedValue("5").SafeCast(Integer)
	assert.ErrorIs(t, err, ErrCast)
}

func TestTernary(t *testing.T) {
	t.Parallel()
	assert.Equal(t, TernaryNull, TernaryNull.Not())
	assert.Equal(t, TernaryFalse, TernaryTrue.Not())
	assert.Equal(t, TernaryFalse, TernaryNull.And(TernaryFalse))
	assert.Equal(t, TernaryNull, TernaryNull.And(TernaryTrue))
	assert.Equal(t, TernaryTrue, TernaryNull.Or(TernaryTrue))
	assert.Equal(t, TernaryNull, TernaryNull.Or(TernaryFalse))
	assert.Equal(t, "null", TernaryNull.String())
}
