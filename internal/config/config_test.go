package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jfold/internal/fold"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeConfig(t, root, "[folding]\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, ok, err := Find(nested)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestLoadFileKeepsDefaultsForMissingKeys(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `[folding]
collapse_members_default = true
custom_region_begin_marker = "<editor-fold>"
`)
	prefs, err := LoadFile(path)
	require.NoError(t, err)

	want := fold.DefaultPreferences()
	want.CollapseMembers = true
	want.CustomRegionBegin = "<editor-fold>"
	assert.Equal(t, want, prefs)
}

func TestLoadFileRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[folding]\ncollapse_everything = true\n")
	_, err := LoadFile(path)
	assert.ErrorIs(t, err, ErrUnknownKey)
	assert.Contains(t, err.Error(), "folding.collapse_everything")
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvBegin, "")
	t.Setenv(EnvStructural, "false")
	prefs, path, err := Load(t.TempDir())
	require.NoError(t, err)
	if path == "" {
		want := fold.DefaultPreferences()
		want.CustomRegionBegin = ""
		want.UseStructuralExtraction = false
		assert.Equal(t, want, prefs)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{EnvEnd: "end", EnvStructural: "0"}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	prefs, err := ApplyEnv(fold.DefaultPreferences(), lookup)
	require.NoError(t, err)
	assert.Equal(t, "region", prefs.CustomRegionBegin)
	assert.Equal(t, "end", prefs.CustomRegionEnd)
	assert.False(t, prefs.UseStructuralExtraction)

	env[EnvStructural] = "maybe"
	_, err = ApplyEnv(fold.DefaultPreferences(), lookup)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestEncodeRoundTripsThroughLoadFile(t *testing.T) {
	prefs := fold.DefaultPreferences()
	prefs.CollapseJavadoc = true
	data, err := Encode(prefs)
	require.NoError(t, err)

	path := writeConfig(t, t.TempDir(), string(data))
	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, prefs, got)
}
