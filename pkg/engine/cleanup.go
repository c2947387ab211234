package engine

import (
	"path/filepath"

	"github.com/arthur-debert/stencil/pkg/descriptor"
	"github.com/arthur-debert/stencil/pkg/errors"
	"github.com/arthur-debert/stencil/pkg/renderer"
	"github.com/arthur-debert/stencil/pkg/types"
	"github.com/arthur-debert/stencil/pkg/vars"
)

// cleanupVariants removes artifacts of non-selected variants after
// rendering. Some template authors model mutually exclusive variants as
// sibling directories rather than per-file conditions; the declarative
// file list never reaches those, so leftover siblings would ship in the
// output without this pass.
func (e *Engine) cleanupVariants(desc *descriptor.Descriptor, targetDir string, env vars.Env) error {
	for _, variant := range desc.Variants {
		selected, ok := env.String(variant.Variable)
		if !ok {
			continue
		}
		if err := e.cleanupVariant(desc, variant, targetDir, selected, env); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) cleanupVariant(desc *descriptor.Descriptor, variant descriptor.Variant, targetDir, selected string, env vars.Env) error {
	logger := e.logger.With().Str("variable", variant.Variable).Str("selected", selected).Logger()

	if variant.Root != "" {
		rootDir := filepath.Join(targetDir, variant.Root)
		selectedDir := filepath.Join(rootDir, selected)
		if variant.Promote && isDir(e.fs, selectedDir) {
			if err := e.promoteTree(selectedDir, targetDir); err != nil {
				return err
			}
		}
		if renderer.Exists(e.fs, rootDir) {
			if err := e.fs.RemoveAll(rootDir); err != nil {
				return errors.Wrapf(err, errors.ErrCleanup, "failed to remove variant root %s", rootDir)
			}
		}
		logger.Debug().Str("root", variant.Root).Msg("variant subtree resolved")
	} else {
		for _, choice := range e.variantChoices(desc, variant) {
			if choice == selected {
				continue
			}
			dir := filepath.Join(targetDir, choice)
			if !isDir(e.fs, dir) {
				continue
			}
			if err := e.fs.RemoveAll(dir); err != nil {
				return errors.Wrapf(err, errors.ErrCleanup, "failed to remove variant directory %s", dir)
			}
		}
		if variant.Promote {
			selectedDir := filepath.Join(targetDir, selected)
			if isDir(e.fs, selectedDir) {
				if err := e.promoteTree(selectedDir, targetDir); err != nil {
					return err
				}
				if err := e.fs.RemoveAll(selectedDir); err != nil {
					return errors.Wrapf(err, errors.ErrCleanup, "failed to remove promoted directory %s", selectedDir)
				}
			}
		}
	}

	for _, stale := range variant.Stale {
		path := filepath.Join(targetDir, renderer.RenderString(stale, env))
		if renderer.Exists(e.fs, path) {
			if err := e.fs.Remove(path); err != nil {
				return errors.Wrapf(err, errors.ErrCleanup, "failed to remove stale file %s", path)
			}
		}
	}
	return nil
}

// variantChoices returns the variant's sibling directory names, falling
// back to the choices of the option that declares its variable.
func (e *Engine) variantChoices(desc *descriptor.Descriptor, variant descriptor.Variant) []string {
	if len(variant.Choices) > 0 {
		return variant.Choices
	}
	if opt, ok := desc.Option(variant.Variable); ok {
		return opt.Choices
	}
	return nil
}

// promoteTree copies the already-rendered contents of sourceDir over
// targetDir, overwriting whatever the superseded placeholders left there.
func (e *Engine) promoteTree(sourceDir, targetDir string) error {
	entries, err := e.fs.ReadDir(sourceDir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrCleanup, "cannot read variant directory %s", sourceDir)
	}
	if err := e.fs.MkdirAll(targetDir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", targetDir)
	}
	for _, entry := range entries {
		source := filepath.Join(sourceDir, entry.Name())
		target := filepath.Join(targetDir, entry.Name())
		if entry.IsDir() {
			if err := e.promoteTree(source, target); err != nil {
				return err
			}
			continue
		}
		data, err := e.fs.ReadFile(source)
		if err != nil {
			return errors.Wrapf(err, errors.ErrCleanup, "cannot read %s", source)
		}
		if err := e.fs.WriteFile(target, data, 0644); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", target)
		}
		if renderer.IsScript(target, data) {
			if err := e.fs.Chmod(target, 0755); err != nil {
				e.logger.Debug().Err(err).Str("path", target).Msg("could not set executable bit")
			}
		}
	}
	return nil
}

func isDir(fsys types.FS, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && info.IsDir()
}
