package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(LoadInput{WorkDir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Empty(t, cfg.Source)
}

func TestLoadProjectFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), `{
		// strict mode for CI
		"halt_on_unknown": true,
		"max_warnings": 0,
		"format": "json",
		"defs": "params/md.cue", // trailing comma is fine
	}`)

	cfg, err := Load(LoadInput{WorkDir: dir})
	require.NoError(t, err)
	assert.True(t, cfg.HaltOnUnknown)
	assert.Equal(t, 0, cfg.MaxWarnings)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, filepath.Join(dir, "params", "md.cue"), cfg.Defs)
	assert.Equal(t, filepath.Join(dir, FileName), cfg.Source)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), `{"halt_on_unknown": true}`)

	cfg, err := Load(LoadInput{WorkDir: dir})
	require.NoError(t, err)
	assert.True(t, cfg.HaltOnUnknown)
	assert.Equal(t, -1, cfg.MaxWarnings)
	assert.Equal(t, "text", cfg.Format)
	assert.Empty(t, cfg.Defs)
}

func TestLoadExplicitFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), `{"format": "json"}`)
	writeFile(t, filepath.Join(dir, "ci", "strict.json"), `{"max_warnings": 3, "defs": "/abs/md.cue"}`)

	cfg, err := Load(LoadInput{WorkDir: dir, ConfigPath: filepath.Join("ci", "strict.json")})
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.MaxWarnings)
	assert.Equal(t, "text", cfg.Format, "the project file is not read when --config is given")
	assert.Equal(t, "/abs/md.cue", cfg.Defs)
}

func TestLoadExplicitFileMissing(t *testing.T) {
	_, err := Load(LoadInput{WorkDir: t.TempDir(), ConfigPath: "nope.json"})
	assert.ErrorIs(t, err, ErrConfigFileNotFound)
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"syntax":        `{"format": }`,
		"unknown field": `{"halt_on_unknwon": true}`,
		"wrong type":    `{"max_warnings": "lots"}`,
		"bad format":    `{"format": "xml"}`,
		"bad limit":     `{"max_warnings": -2}`,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, FileName), content)

			_, err := Load(LoadInput{WorkDir: dir})
			assert.ErrorIs(t, err, ErrConfigInvalid)
		})
	}
}
