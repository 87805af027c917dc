package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferType(t *testing.T) {
	t.Parallel()
	scenarios := []struct {
		v        any
		expected Type
	}{
		{nil, Null},
		{true, Boolean},
		{int32(1), Integer},
		{int64(1), Long},
		{float32(1.5), Float},
		{1.5, Double},
		{"hi", String},
		{1, Unknown},
		{[]byte("hi"), Unknown},
		{map[string]any{}, UnknownMap},
		{map[string]any{"a": nil}, UnknownMap},
		{map[string]any{"a": int64(4)}, LongMap},
		{map[string]any{"a": nil, "b": "x"}, StringMap},
		{map[string]any{"a": map[string]any{"b": 2.0}}, DoubleMapMap},
		{map[string]any{"a": map[string]any{}}, UnknownMapMap},
		{map[string]any{"a": map[string]any{"b": []any{}}}, Unknown},
		{map[string]any{"a": []any{int32(1)}}, Unknown},
		{map[string]any{"a": 1}, Unknown},
		{[]any{}, UnknownList},
		{[]any{nil, nil}, UnknownList},
		{[]any{nil, false}, BooleanList},
		{[]any{map[string]any{"a": int32(1)}}, IntegerMapList},
		{[]any{map[string]any{}, nil}, UnknownMapList},
		{[]any{[]any{}}, Unknown},
	}
	for _, scene := range scenarios {
		assert.Equal(t, scene.expected, InferType(scene.v), "%v", scene.v)
	}
}
