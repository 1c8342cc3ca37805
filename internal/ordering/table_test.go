package ordering

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable_Errors(t *testing.T) {
	_, err := NewTable(nil)
	require.Error(t, err)

	_, err = NewTable([]Dependency{{Type: ""}})
	require.Error(t, err)

	_, err = NewTable([]Dependency{{Type: "a"}, {Type: "a"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestTable_IsASnapshot(t *testing.T) {
	deps := []Dependency{
		{Type: "a", Stage: 1},
		{Type: "b", DependsOn: []string{"a"}, Stage: 2},
	}

	table, err := NewTable(deps)
	require.NoError(t, err)

	deps[1].DependsOn[0] = "mutated"

	entry, ok := table.Lookup("b")
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, entry.DependsOn)

	entry.DependsOn[0] = "mutated again"

	again, _ := table.Lookup("b")
	assert.Equal(t, []string{"a"}, again.DependsOn)
	assert.Equal(t, []string{"a", "b"}, table.Types())
}

func TestTable_Check(t *testing.T) {
	table := mustTable(t,
		Dependency{Type: "late", Stage: 5},
		Dependency{Type: "early", DependsOn: []string{"late", "ghost"}, Stage: 1},
	)

	diags := table.Check()
	assert.True(t, diags.IsValid())
	require.Len(t, diags.Warnings, 2)
	assert.Equal(t, "stage_inversion", diags.Warnings[0].Code)
	assert.Equal(t, "unknown_prerequisite", diags.Warnings[1].Code)

	assert.Empty(t, DefaultTable().Check().Warnings)
}

func TestParseTable(t *testing.T) {
	data := `
directives:
  - type: x-frontmatter-part
    stage: 1
    description: Select records
  - type: x-derived-from
    dependsOn: [x-frontmatter-part]
    stage: 2
`

	table, err := ParseTable([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, 2, table.Len())

	entry, ok := table.Lookup("x-derived-from")
	require.True(t, ok)
	assert.Equal(t, []string{"x-frontmatter-part"}, entry.DependsOn)
	assert.Equal(t, 2, entry.Stage)
	assert.Equal(t, "x-derived-from", entry.Description, "description defaults to the type")
}

func TestParseTable_Invalid(t *testing.T) {
	_, err := ParseTable([]byte("directives: [oops"))
	require.Error(t, err)

	_, err = ParseTable([]byte("directives: []"))
	require.Error(t, err)
}

func TestLoadTable_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deps.yaml")

	data, err := MarshalTable(DefaultTable())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	loaded, err := LoadTable(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultTable().Entries(), loaded.Entries())

	_, err = LoadTable(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}
