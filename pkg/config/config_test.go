package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Empty(t, cfg.TemplatesRoot)
	assert.False(t, cfg.SkipPrompts)
	assert.Empty(t, cfg.Variables)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
templates_root = "/my/templates"
skip_prompts = true

[variables]
license = "MIT"
`)

	cfg, err := load(path)
	require.NoError(t, err)
	assert.Equal(t, "/my/templates", cfg.TemplatesRoot)
	assert.True(t, cfg.SkipPrompts)
	assert.Equal(t, "MIT", cfg.Variables["license"])
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `templates_root = "/from/file"`)
	t.Setenv("STENCIL_TEMPLATES_ROOT", "/from/env")

	cfg, err := load(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.TemplatesRoot)
}

func TestLoadMalformedFile(t *testing.T) {
	path := writeConfig(t, `templates_root = [broken`)

	_, err := load(path)
	assert.Error(t, err)
}
