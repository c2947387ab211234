package hooks

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/arthur-debert/stencil/pkg/errors"
	"github.com/arthur-debert/stencil/pkg/types"
)

// Built-in patches. Each one rewrites generated sources to keep them
// compatible with the framework version the templates currently pin.

var workspaceDepRe = regexp.MustCompile(`(?m)^(\s*[A-Za-z0-9_-]+\s*=\s*\{[^}]*)workspace\s*=\s*true([^}]*\}\s*)$`)

// NormalizeWorkspaceManifest rewrites manifests copied out of an
// upstream workspace so they stand alone: workspace-inherited fields get
// explicit values.
func NormalizeWorkspaceManifest(fsys types.FS, targetDir string) error {
	path := filepath.Join(targetDir, "Cargo.toml")
	data, err := fsys.ReadFile(path)
	if err != nil {
		// Nothing to normalize without a manifest.
		return nil
	}

	content := string(data)
	content = strings.ReplaceAll(content, "edition.workspace = true", `edition = "2021"`)
	content = strings.ReplaceAll(content, "version.workspace = true", `version = "0.1.0"`)
	content = strings.ReplaceAll(content, "license.workspace = true", `license = "MIT"`)
	content = workspaceDepRe.ReplaceAllString(content, `${1}version = "1.0"${2}`)

	if content == string(data) {
		return nil
	}
	if err := fsys.WriteFile(path, []byte(content), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrHookFailed, "failed to rewrite %s", path)
	}
	return nil
}

var deviceInitRe = regexp.MustCompile(`\b([A-Za-z_][A-Za-z0-9_]*)::default_device\(\)`)

// FixDeprecatedDeviceInit rewrites the pre-0.16 device constructor in
// generated sources: `B::default_device()` becomes
// `B::Device::default()`.
func FixDeprecatedDeviceInit(fsys types.FS, targetDir string) error {
	return walkFiles(fsys, targetDir, func(path string) error {
		if filepath.Ext(path) != ".rs" {
			return nil
		}
		data, err := fsys.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrHookFailed, "cannot read %s", path)
		}
		content := deviceInitRe.ReplaceAllString(string(data), "${1}::Device::default()")
		if content == string(data) {
			return nil
		}
		if err := fsys.WriteFile(path, []byte(content), 0644); err != nil {
			return errors.Wrapf(err, errors.ErrHookFailed, "failed to rewrite %s", path)
		}
		return nil
	})
}

// walkFiles visits every regular file under dir, depth first.
func walkFiles(fsys types.FS, dir string, visit func(path string) error) error {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrHookFailed, "cannot read directory %s", dir)
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if err := walkFiles(fsys, path, visit); err != nil {
				return err
			}
			continue
		}
		if err := visit(path); err != nil {
			return err
		}
	}
	return nil
}
