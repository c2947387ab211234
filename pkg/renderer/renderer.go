// Package renderer materializes template sources into target files,
// substituting variables into contents and paths.
//
// Substitution uses the {{identifier}} placeholder syntax. An identifier
// absent from the environment is left as literal text: partially
// templated content must not corrupt placeholder-like text in generated
// code.
package renderer

import (
	"bytes"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/arthur-debert/stencil/pkg/descriptor"
	"github.com/arthur-debert/stencil/pkg/errors"
	"github.com/arthur-debert/stencil/pkg/logging"
	"github.com/arthur-debert/stencil/pkg/types"
	"github.com/arthur-debert/stencil/pkg/vars"
)

// TemplateMarker is the filename suffix that forces template processing
// and is stripped from the rendered target name.
const TemplateMarker = ".template"

var placeholderRe = regexp.MustCompile(`\{\{([A-Za-z_][A-Za-z0-9_]*)\}\}`)

// textLikeExtensions are processed for placeholders; anything else is
// copied verbatim, byte for byte.
var textLikeExtensions = map[string]bool{
	".rs": true, ".go": true, ".py": true, ".js": true, ".ts": true,
	".md": true, ".toml": true, ".yml": true, ".yaml": true, ".json": true,
	".html": true, ".css": true, ".xml": true, ".sql": true, ".sh": true,
	".txt": true,
}

// textLikeNames are extensionless files that still get processed.
var textLikeNames = map[string]bool{
	"Cargo.toml": true, "Cargo.lock": true, "Makefile": true,
	"Dockerfile": true, "Justfile": true, ".gitignore": true, ".env": true,
}

// skipDirs are never copied out of a template tree.
var skipDirs = map[string]bool{
	".git": true, ".github": true, "target": true, "node_modules": true,
}

// RenderString substitutes {{identifier}} placeholders in s from env.
// Unknown identifiers stay verbatim.
func RenderString(s string, env vars.Env) string {
	return placeholderRe.ReplaceAllStringFunc(s, func(match string) string {
		name := match[2 : len(match)-2]
		if value, ok := env.String(name); ok {
			return value
		}
		return match
	})
}

// IsTextLike reports whether a file with the given name gets template
// processing rather than a verbatim copy.
func IsTextLike(name string) bool {
	base := filepath.Base(name)
	if strings.HasSuffix(base, TemplateMarker) {
		return true
	}
	if textLikeNames[base] {
		return true
	}
	return textLikeExtensions[strings.ToLower(filepath.Ext(base))]
}

// TargetName renders placeholders in a target path and strips the
// template marker from the final filename.
func TargetName(target string, env vars.Env) string {
	rendered := RenderString(target, env)
	base := filepath.Base(rendered)
	if strings.HasSuffix(base, TemplateMarker) {
		rendered = filepath.Join(filepath.Dir(rendered), strings.TrimSuffix(base, TemplateMarker))
	}
	return rendered
}

// RenderFile materializes one source file at target. Text-like sources
// have conditional blocks resolved and placeholders substituted; other
// sources are byte-copied. Parent directories are created as needed and
// existing targets are overwritten, so re-applying is idempotent.
func RenderFile(fsys types.FS, source, target string, env vars.Env) error {
	logger := logging.GetLogger("renderer")

	info, err := fsys.Stat(source)
	if err != nil {
		return errors.Wrapf(err, errors.ErrSourceMissing, "source file does not exist: %s", source).
			WithDetail("source", source)
	}
	if info.IsDir() {
		return RenderTree(fsys, source, RenderString(target, env), env)
	}

	target = TargetName(target, env)
	if parent := filepath.Dir(target); parent != "." {
		if err := fsys.MkdirAll(parent, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", parent)
		}
	}

	data, err := fsys.ReadFile(source)
	if err != nil {
		return errors.Wrapf(err, errors.ErrRender, "failed to read source file %s", source)
	}

	if IsTextLike(source) {
		content := ProcessConditionalBlocks(string(data), env)
		content = RenderString(content, env)
		data = []byte(content)
	}

	if err := fsys.WriteFile(target, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", target)
	}

	if IsScript(target, data) {
		// Best effort: filesystems without a permission model make this
		// a no-op, not an error.
		if err := fsys.Chmod(target, 0755); err != nil {
			logger.Debug().Err(err).Str("path", target).Msg("could not set executable bit")
		}
	}

	logger.Trace().Str("source", source).Str("target", target).Msg("rendered file")
	return nil
}

// RenderTree materializes a whole directory tree, applying per-file
// rendering decisions. Descriptor artifacts and VCS/build directories are
// skipped.
func RenderTree(fsys types.FS, sourceDir, targetDir string, env vars.Env) error {
	entries, err := fsys.ReadDir(sourceDir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrSourceMissing, "cannot read template directory %s", sourceDir)
	}

	if err := fsys.MkdirAll(targetDir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", targetDir)
	}

	for _, entry := range entries {
		name := entry.Name()
		source := filepath.Join(sourceDir, name)
		if entry.IsDir() {
			if skipDirs[name] {
				continue
			}
			target := filepath.Join(targetDir, RenderString(name, env))
			if err := RenderTree(fsys, source, target, env); err != nil {
				return err
			}
			continue
		}
		if descriptor.IsDescriptorName(name) {
			continue
		}
		if err := RenderFile(fsys, source, filepath.Join(targetDir, name), env); err != nil {
			return err
		}
	}
	return nil
}

// IsScript reports whether a rendered file should carry the executable
// bit: script extension on the final name, or shebang content.
func IsScript(target string, content []byte) bool {
	if strings.HasSuffix(target, ".sh") {
		return true
	}
	return bytes.HasPrefix(content, []byte("#!"))
}

// Exists reports whether a path exists on fsys.
func Exists(fsys types.FS, path string) bool {
	_, err := fsys.Stat(path)
	return err == nil
}
