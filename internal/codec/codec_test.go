package codec

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_JSON(t *testing.T) {
	v, err := Decode([]byte(`{"title":"x","count":3,"ratio":0.5,"tags":["a"],"none":null}`), FormatJSON)
	require.NoError(t, err)

	m, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "x", m["title"])
	assert.Equal(t, int64(3), m["count"])
	assert.Equal(t, 0.5, m["ratio"])
	assert.Equal(t, []any{"a"}, m["tags"])
	assert.Nil(t, m["none"])
}

func TestDecode_YAML(t *testing.T) {
	data := `
title: x
count: 3
nested:
  1: one
tags: [a, b]
`

	v, err := Decode([]byte(data), FormatYAML)
	require.NoError(t, err)

	m, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 3, m["count"])
	assert.Equal(t, map[string]any{"1": "one"}, m["nested"])
	assert.Equal(t, []any{"a", "b"}, m["tags"])
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode([]byte(`{"a":`), FormatJSON)
	require.Error(t, err)

	_, err = Decode([]byte("a: [b"), FormatYAML)
	require.Error(t, err)

	_, err = Decode([]byte("{}"), FormatUnknown)
	require.Error(t, err)
}

func TestEncode_JSONSortsKeys(t *testing.T) {
	out, err := Encode(map[string]any{"b": 1, "a": 2}, FormatJSON)
	require.NoError(t, err)

	s := string(out)
	assert.Less(t, strings.Index(s, `"a"`), strings.Index(s, `"b"`))
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"a":1}`), 0o644))

	v, err := DecodeFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": int64(1)}, v)

	yamlPath := filepath.Join(dir, "doc.md.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("a: 1\n"), 0o644))

	v, err = DecodeFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1}, v)

	_, err = DecodeFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("toml")
	require.Error(t, err)
}
