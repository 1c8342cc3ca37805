package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docshape/internal/schema"
)

func TestDefault(t *testing.T) {
	r := Default()
	require.Equal(t, 3, r.Len())

	e, ok := r.Lookup("x-frontmatter-part")
	require.True(t, ok)
	assert.True(t, e.Marker)
	assert.Equal(t, "x-frontmatter-part", e.Type)

	e, ok = r.Lookup("x-flatten-arrays")
	require.True(t, ok)
	assert.True(t, e.Flatten)

	_, ok = r.Lookup("x-template")
	assert.False(t, ok)
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
	}{
		{"missing prefix", []Entry{{Key: "derived"}}},
		{"empty key", []Entry{{Key: ""}}},
		{"duplicate", []Entry{{Key: "x-a"}, {Key: "x-a"}}},
		{"marker and flatten", []Entry{{Key: "x-a", Marker: true, Flatten: true}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.entries)
			require.ErrorIs(t, err, ErrInvalidEntry)
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	r, err := Parse([]byte(`
extensions:
  - key: x-records
    type: x-frontmatter-part
    marker: true
  - key: x-derived-from
`))
	require.NoError(t, err)

	assert.Equal(t, []Entry{
		{Key: "x-records", Type: "x-frontmatter-part", Marker: true},
		{Key: "x-derived-from", Type: "x-derived-from"},
	}, r.Entries())

	data, err := Marshal(r)
	require.NoError(t, err)

	again, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, r.Entries(), again.Entries())
}

func TestParse_BadYAML(t *testing.T) {
	_, err := Parse([]byte("extensions: {"))
	require.Error(t, err)
}

func TestCollect(t *testing.T) {
	n, err := schema.Build(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"records": map[string]any{
				"type":               "array",
				"x-frontmatter-part": true,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"tags": map[string]any{"type": "array", "x-flatten-arrays": "tagGroups[]"},
					},
				},
			},
			"names": map[string]any{
				"type":           "array",
				"x-derived-from": "records[].title",
			},
			"draft": map[string]any{"type": "boolean", "x-frontmatter-part": false},
			"title": map[string]any{"type": "string", "x-unregistered": "ignored"},
		},
	})
	require.NoError(t, err)

	ds, err := Default().Collect(n)
	require.NoError(t, err)

	got := make([]string, 0, len(ds))
	for _, d := range ds {
		got = append(got, d.String())
	}

	assert.Equal(t, []string{
		"x-derived-from: records[].title -> names",
		"x-frontmatter-part: records -> records",
		"x-flatten-arrays: tagGroups[] -> records[].tags",
	}, got)

	for _, d := range ds {
		assert.True(t, d.ArrayTarget(), d.String())
	}

	assert.False(t, ds[0].Flatten())
	assert.True(t, ds[2].Flatten())
}

func TestCollect_MarkerInsideArrayItems(t *testing.T) {
	n, err := schema.Build(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"items": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"tags": map[string]any{"type": "array", "x-frontmatter-part": true},
					},
				},
			},
		},
	})
	require.NoError(t, err)

	_, err = Default().Collect(n)
	require.ErrorIs(t, err, ErrInvalidEntry)
	assert.Contains(t, err.Error(), "at items[].tags")
}

func TestCollect_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		prop map[string]any
	}{
		{"marker not bool", map[string]any{"type": "array", "x-frontmatter-part": "yes"}},
		{"source not string", map[string]any{"type": "string", "x-derived-from": 3}},
		{"source syntax", map[string]any{"type": "string", "x-derived-from": "a..b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := schema.Build(map[string]any{
				"type":       "object",
				"properties": map[string]any{"p": tt.prop},
			})
			require.NoError(t, err)

			_, err = Default().Collect(n)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "at p")
		})
	}
}
