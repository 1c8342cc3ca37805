package docpath

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Segment
		expand   bool
	}{
		{
			name:     "simple field",
			input:    "title",
			expected: []Segment{{Name: "title"}},
		},
		{
			name:     "nested field",
			input:    "meta.author",
			expected: []Segment{{Name: "meta"}, {Name: "author"}},
		},
		{
			name:     "expanded field",
			input:    "tags[]",
			expected: []Segment{{Name: "tags", Expand: true}},
			expand:   true,
		},
		{
			name:     "field inside expansion",
			input:    "items[].name",
			expected: []Segment{{Name: "items", Expand: true}, {Name: "name"}},
			expand:   true,
		},
		{
			name:  "nested expansion",
			input: "sections[].items[].id",
			expected: []Segment{
				{Name: "sections", Expand: true},
				{Name: "items", Expand: true},
				{Name: "id"},
			},
			expand: true,
		},
		{
			name:     "underscore and digits",
			input:    "_x1.y_2",
			expected: []Segment{{Name: "_x1"}, {Name: "y_2"}},
		},
		{
			name:     "bare expansion",
			input:    "[]",
			expected: []Segment{{Expand: true}},
			expand:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p.Segments())
			assert.Equal(t, tt.input, p.String())
			assert.Equal(t, tt.expand, p.HasExpansion())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"consecutive separators", "a..b"},
		{"leading separator", ".a"},
		{"trailing separator", "a."},
		{"marker without name", "a.[]"},
		{"double marker", "a[][]"},
		{"digit start", "1a"},
		{"hyphen", "created-at"},
		{"marker in the middle", "a[]b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSyntax))

			var se *SyntaxError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.input, se.Input)
		})
	}
}

func TestPath_Split(t *testing.T) {
	p := MustParse("a.b[].c.d[].e")

	pre, post, ok := p.Split()
	require.True(t, ok)
	assert.Equal(t, []Segment{{Name: "a"}, {Name: "b", Expand: true}}, pre)
	assert.Equal(t, []Segment{{Name: "c"}, {Name: "d", Expand: true}, {Name: "e"}}, post)

	pre, post, ok = MustParse("a.b").Split()
	assert.False(t, ok)
	assert.Len(t, pre, 2)
	assert.Empty(t, post)
}

func TestPath_SegmentsAreCopies(t *testing.T) {
	p := MustParse("a.b")
	segs := p.Segments()
	segs[0].Name = "changed"

	assert.Equal(t, "a", p.Segments()[0].Name)
}

func TestFromSegments(t *testing.T) {
	p := FromSegments([]Segment{{Name: "items", Expand: true}, {Name: "id"}})
	assert.Equal(t, "items[].id", p.String())
	assert.Equal(t, []string{"items", "id"}, p.Names())
}

func TestCache_Parse(t *testing.T) {
	c, err := NewCache(cacheOptions())
	require.NoError(t, err)

	p1, err := c.Parse("items[].name")
	require.NoError(t, err)

	p2, err := c.Parse("items[].name")
	require.NoError(t, err)

	assert.Equal(t, p1, p2)
	assert.Equal(t, uint64(1), c.Stats().Hits)

	_, err = c.Parse("a..b")
	require.Error(t, err)
	assert.Equal(t, 1, c.Stats().Len)
}
