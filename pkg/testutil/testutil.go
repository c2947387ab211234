// Package testutil provides helpers for building template fixtures and
// asserting on rendered trees in tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/stencil/pkg/types"
)

// WriteFile writes content at path, creating parent directories.
func WriteFile(t *testing.T, fsys types.FS, path, content string) {
	t.Helper()
	require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, fsys.WriteFile(path, []byte(content), 0644))
}

// WriteTemplate lays out a template directory: the descriptor artifact
// plus source files keyed by template-relative path.
func WriteTemplate(t *testing.T, fsys types.FS, dir, descriptorName, descriptorContent string, files map[string]string) {
	t.Helper()
	WriteFile(t, fsys, filepath.Join(dir, descriptorName), descriptorContent)
	for name, content := range files {
		WriteFile(t, fsys, filepath.Join(dir, name), content)
	}
}

// ReadFile returns the content at path, failing the test if unreadable.
func ReadFile(t *testing.T, fsys types.FS, path string) string {
	t.Helper()
	data, err := fsys.ReadFile(path)
	require.NoError(t, err, "expected readable file at %s", path)
	return string(data)
}

// AssertFileContent asserts path holds exactly want.
func AssertFileContent(t *testing.T, fsys types.FS, path, want string) {
	t.Helper()
	assert.Equal(t, want, ReadFile(t, fsys, path), "content mismatch at %s", path)
}

// AssertFileExists asserts path exists.
func AssertFileExists(t *testing.T, fsys types.FS, path string) {
	t.Helper()
	_, err := fsys.Stat(path)
	assert.NoError(t, err, "expected file to exist at %s", path)
}

// AssertFileNotExists asserts path is absent.
func AssertFileNotExists(t *testing.T, fsys types.FS, path string) {
	t.Helper()
	_, err := fsys.Stat(path)
	assert.Error(t, err, "expected no file at %s", path)
}
