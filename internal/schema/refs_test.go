package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRefs_Recursive(t *testing.T) {
	root := map[string]any{
		"$defs": map[string]any{
			"node": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"children": map[string]any{
						"type":  "array",
						"items": map[string]any{"$ref": "#/$defs/node"},
					},
				},
			},
		},
		"$ref": "#/$defs/node",
	}

	resolved, err := ResolveRefs(root)
	require.NoError(t, err)

	n, err := FromValue(resolved)
	require.NoError(t, err)

	obj, ok := n.(*Object)
	require.True(t, ok)

	children, _ := obj.Property("children")
	items := children.(*Array).Items
	require.Equal(t, KindRef, items.Kind())
	assert.Equal(t, "#/$defs/node", items.(*Ref).Ref)
}

func TestResolveRefs_DoesNotMutateInput(t *testing.T) {
	root := map[string]any{
		"definitions": map[string]any{"s": map[string]any{"type": "string"}},
		"properties": map[string]any{
			"a": map[string]any{"$ref": "#/definitions/s"},
		},
	}

	_, err := ResolveRefs(root)
	require.NoError(t, err)

	props := root["properties"].(map[string]any)
	assert.Equal(t, map[string]any{"$ref": "#/definitions/s"}, props["a"])
}

func TestResolveRefs_Missing(t *testing.T) {
	_, err := ResolveRefs(map[string]any{"$ref": "#/definitions/nope"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSchema))
}

func TestResolveRefs_ExternalLeftAlone(t *testing.T) {
	root := map[string]any{"$ref": "other.json#/x"}

	resolved, err := ResolveRefs(root)
	require.NoError(t, err)
	assert.Equal(t, root, resolved)
}

func TestValueKind(t *testing.T) {
	assert.Equal(t, KindNull, ValueKind(nil))
	assert.Equal(t, KindBoolean, ValueKind(true))
	assert.Equal(t, KindString, ValueKind("s"))
	assert.Equal(t, KindInteger, ValueKind(3))
	assert.Equal(t, KindInteger, ValueKind(3.0))
	assert.Equal(t, KindNumber, ValueKind(3.5))
	assert.Equal(t, KindArray, ValueKind([]any{}))
	assert.Equal(t, KindObject, ValueKind(map[string]any{}))
	assert.Equal(t, KindAny, ValueKind(struct{}{}))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "string", KindString.String())
	assert.Equal(t, "any", KindAny.String())
	assert.Equal(t, "Kind(0)", Kind(0).String())
	assert.Equal(t, 11, KindTotal)
}
