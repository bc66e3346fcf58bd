package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testProfiles = `
active: aggressive
profiles:
  balanced:
    relative_strength:
      threshold: 75
  aggressive:
    earnings:
      enabled: false
    relative_strength:
      threshold: 90
    daily:
      threshold: 1.0
`

func writeProfiles(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_LoadNamed(t *testing.T) {
	loader, err := NewLoader(writeProfiles(t, testProfiles), nil)
	require.NoError(t, err)

	prof, warnings, err := loader.Load("aggressive")
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, "aggressive", prof.Name)
	assert.False(t, prof.Earnings.Enabled)
	assert.Equal(t, 90.0, prof.RelStrength.Threshold)
	assert.Equal(t, 1.0, prof.Daily.Threshold)

	// Unspecified sections inherit balanced defaults
	assert.True(t, prof.Weekly.Enabled)
	assert.Equal(t, 1.05, prof.Weekly.HighStabilityFactor)
	assert.Equal(t, 0.05, prof.Risk.RiskUnit)
}

func TestLoader_LoadActive(t *testing.T) {
	loader, err := NewLoader(writeProfiles(t, testProfiles), nil)
	require.NoError(t, err)

	prof, warnings, err := loader.Load("")
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, "aggressive", prof.Name)
}

func TestLoader_FallbackToBalanced(t *testing.T) {
	loader, err := NewLoader(writeProfiles(t, testProfiles), nil)
	require.NoError(t, err)

	prof, warnings, err := loader.Load("nonexistent")
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "nonexistent")

	// Falls back to the file's balanced overrides, not just built-ins
	assert.Equal(t, DefaultName, prof.Name)
	assert.Equal(t, 75.0, prof.RelStrength.Threshold)
}

func TestLoader_FallbackToBuiltin(t *testing.T) {
	loader, err := NewLoader(writeProfiles(t, "profiles:\n  custom:\n    daily: {threshold: 0.7}\n"), nil)
	require.NoError(t, err)

	prof, warnings, err := loader.Load("missing")
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, Balanced(), prof)
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestLoader_Names(t *testing.T) {
	loader, err := NewLoader(writeProfiles(t, testProfiles), nil)
	require.NoError(t, err)

	names := loader.Names()
	assert.ElementsMatch(t, []string{"balanced", "aggressive"}, names)
}
