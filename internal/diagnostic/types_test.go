package diagnostic

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePolicy(t *testing.T) {
	for in, want := range map[string]Policy{
		"":            FailFast,
		"fail-fast":   FailFast,
		"Collect-All": CollectAll,
		"collectall":  CollectAll,
	} {
		got, err := ParsePolicy(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParsePolicy("sometimes")
	require.Error(t, err)
}

func TestDiagnostics_Err(t *testing.T) {
	d := &Diagnostics{}
	require.NoError(t, d.Err())
	assert.True(t, d.IsValid())

	cause := errors.New("boom")

	d.AddWarning("w", "just a warning", "", "")
	require.NoError(t, d.Err())

	d.AddCause("directive_failed", "x-derived-from", "names", cause)
	d.AddCause("other", "", "tags", errors.New("second"))

	err := d.Err()
	require.Error(t, err)
	require.ErrorIs(t, err, cause)
	assert.Equal(t, "[x-derived-from] names: [directive_failed] boom; tags: [other] second", err.Error())

	var diag Diagnostic
	require.ErrorAs(t, err, &diag)
	assert.Equal(t, "directive_failed", diag.Code)
}
