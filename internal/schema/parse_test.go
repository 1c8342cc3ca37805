package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docshape/internal/codec"
)

func TestFromValue_Kinds(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		kind Kind
	}{
		{"string", map[string]any{"type": "string"}, KindString},
		{"number", map[string]any{"type": "number"}, KindNumber},
		{"integer", map[string]any{"type": "integer"}, KindInteger},
		{"boolean", map[string]any{"type": "boolean"}, KindBoolean},
		{"array", map[string]any{"type": "array"}, KindArray},
		{"object", map[string]any{"type": "object"}, KindObject},
		{"enum", map[string]any{"enum": []any{"a", "b"}}, KindEnum},
		{"ref", map[string]any{"$ref": "https://example.com/other.json"}, KindRef},
		{"null", map[string]any{"type": "null"}, KindNull},
		{"any", map[string]any{}, KindAny},
		{"implicit object", map[string]any{"properties": map[string]any{}}, KindObject},
		{"implicit array", map[string]any{"items": map[string]any{"type": "string"}}, KindArray},
		{"nullable string", map[string]any{"type": []any{"string", "null"}}, KindString},
		{"union", map[string]any{"type": []any{"string", "number"}}, KindAny},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := FromValue(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, n.Kind())
		})
	}
}

func TestFromValue_Constraints(t *testing.T) {
	raw := map[string]any{
		"type":     "object",
		"title":    "Post",
		"required": []any{"title"},
		"properties": map[string]any{
			"title": map[string]any{
				"type":      "string",
				"pattern":   "^[A-Z]",
				"minLength": 2,
				"maxLength": int64(80),
				"format":    "email",
			},
			"score": map[string]any{"type": "number", "minimum": 0, "maximum": 10.5},
			"level": map[string]any{"type": "string", "enum": []any{"low", "high"}},
			"tags":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
	}

	n, err := FromValue(raw)
	require.NoError(t, err)

	obj, ok := n.(*Object)
	require.True(t, ok)
	assert.Equal(t, "Post", obj.Title)
	assert.Equal(t, []string{"title"}, obj.Required)
	assert.True(t, obj.IsRequired("title"))
	assert.False(t, obj.IsRequired("score"))

	names := make([]string, 0, len(obj.Properties))
	for _, p := range obj.Properties {
		names = append(names, p.Name)
	}

	assert.Equal(t, []string{"level", "score", "tags", "title"}, names)

	title, _ := obj.Property("title")
	str, ok := title.(*String)
	require.True(t, ok)
	assert.True(t, str.Pattern.MatchString("Hello"))
	assert.Equal(t, 2, *str.MinLength)
	assert.Equal(t, 80, *str.MaxLength)
	assert.Equal(t, "email", str.Format)

	score, _ := obj.Property("score")
	num, ok := score.(*Number)
	require.True(t, ok)
	assert.InDelta(t, 0, *num.Minimum, 0)
	assert.InDelta(t, 10.5, *num.Maximum, 0)

	level, _ := obj.Property("level")
	enum, ok := level.(*Enum)
	require.True(t, ok)
	assert.Equal(t, KindString, enum.BaseKind)
	assert.Equal(t, []any{"low", "high"}, enum.Values)

	tags, _ := obj.Property("tags")
	arr, ok := tags.(*Array)
	require.True(t, ok)
	assert.Equal(t, KindString, arr.Items.Kind())
}

func TestFromValue_EnumBaseKind(t *testing.T) {
	tests := []struct {
		values []any
		kind   Kind
	}{
		{[]any{"a", "b"}, KindString},
		{[]any{1, int64(2)}, KindInteger},
		{[]any{1, 2.5}, KindNumber},
		{[]any{true, false}, KindBoolean},
		{[]any{"a", 1}, KindAny},
	}

	for _, tt := range tests {
		n, err := FromValue(map[string]any{"enum": tt.values})
		require.NoError(t, err)
		assert.Equal(t, tt.kind, n.(*Enum).BaseKind, "values %v", tt.values)
	}
}

func TestFromValue_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  any
	}{
		{"not an object", "string"},
		{"false schema", false},
		{"unknown type", map[string]any{"type": "date"}},
		{"bad pattern", map[string]any{"type": "string", "pattern": "("}},
		{"negative length", map[string]any{"type": "string", "minLength": -1}},
		{"inverted length", map[string]any{"type": "string", "minLength": 5, "maxLength": 1}},
		{"inverted range", map[string]any{"type": "number", "minimum": 5, "maximum": 1}},
		{"empty enum", map[string]any{"enum": []any{}}},
		{"object enum base", map[string]any{"type": "object", "enum": []any{"a"}}},
		{"tuple items", map[string]any{"type": "array", "items": []any{map[string]any{}}}},
		{"bad required", map[string]any{"type": "object", "required": "x"}},
		{"bad child", map[string]any{"properties": map[string]any{"x": 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromValue(tt.raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidSchema))
		})
	}
}

func TestFromValue_ErrorPointer(t *testing.T) {
	_, err := FromValue(map[string]any{
		"properties": map[string]any{
			"a/b": map[string]any{"type": "wat"},
		},
	})

	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "/properties/a~1b", se.Pointer)
}

func TestLoad_ResolvesRefs(t *testing.T) {
	data := `{
  "type": "object",
  "definitions": {
    "tag": {"type": "string", "minLength": 1}
  },
  "properties": {
    "tags": {"type": "array", "items": {"$ref": "#/definitions/tag"}},
    "main": {"$ref": "#/definitions/tag", "x-derived-from": "tags[]"}
  }
}`

	n, err := Load([]byte(data), codec.FormatJSON)
	require.NoError(t, err)

	obj := n.(*Object)

	tags, _ := obj.Property("tags")
	assert.Equal(t, KindString, tags.(*Array).Items.Kind())

	primary, _ := obj.Property("main")
	require.Equal(t, KindString, primary.Kind())

	ext, ok := primary.Base().Extension("x-derived-from")
	require.True(t, ok)
	assert.Equal(t, "tags[]", ext)
}
