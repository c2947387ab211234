// Package locator resolves template names to template directories.
package locator

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/stencil/pkg/descriptor"
	"github.com/arthur-debert/stencil/pkg/errors"
	"github.com/arthur-debert/stencil/pkg/logging"
	"github.com/arthur-debert/stencil/pkg/types"
)

// Locate finds the directory for a template name under root. Resolution
// order, first match wins:
//
//  1. direct child of root matching name exactly
//  2. the nested path root/category/sub for namespaced names
//  3. for every immediate subdirectory D of root: D/name, then every
//     child of D whose basename equals the trailing segment of name
//
// A directory only counts if it contains a descriptor artifact; matching
// directories without one are skipped.
func Locate(fsys types.FS, root, name string) (string, error) {
	logger := logging.GetLogger("locator")

	if dir := filepath.Join(root, name); isTemplateDir(fsys, dir) {
		return dir, nil
	}

	// filepath.Join already normalizes namespaced names into nested
	// paths, so a separate nested check only matters when the name uses
	// a non-native separator.
	if strings.Contains(name, "/") {
		nested := filepath.Join(append([]string{root}, strings.Split(name, "/")...)...)
		if isTemplateDir(fsys, nested) {
			return nested, nil
		}
	}

	tail := name
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		tail = name[idx+1:]
	}

	entries, err := fsys.ReadDir(root)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrTemplateNotFound, "cannot read templates root %s", root)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		sub := filepath.Join(root, entry.Name())
		if dir := filepath.Join(sub, name); isTemplateDir(fsys, dir) {
			return dir, nil
		}
		children, err := fsys.ReadDir(sub)
		if err != nil {
			continue
		}
		for _, child := range children {
			if child.IsDir() && child.Name() == tail {
				if dir := filepath.Join(sub, child.Name()); isTemplateDir(fsys, dir) {
					return dir, nil
				}
			}
		}
	}

	logger.Debug().Str("template", name).Str("root", root).Msg("template not found")
	return "", errors.Newf(errors.ErrTemplateNotFound, "template %q not found", name).
		WithDetail("template", name).
		WithDetail("root", root)
}

// Info describes one available template for listings.
type Info struct {
	Name        string
	Description string
}

// List enumerates the valid templates under root, including one level of
// namespacing (e.g. server/axum). Results are sorted by name.
func List(fsys types.FS, root string) ([]Info, error) {
	entries, err := fsys.ReadDir(root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read templates root %s", root)
	}

	var infos []Info
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		if isTemplateDir(fsys, dir) {
			infos = append(infos, describe(fsys, dir, entry.Name()))
			continue
		}
		children, err := fsys.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, child := range children {
			if !child.IsDir() {
				continue
			}
			subdir := filepath.Join(dir, child.Name())
			if isTemplateDir(fsys, subdir) {
				infos = append(infos, describe(fsys, subdir, entry.Name()+"/"+child.Name()))
			}
		}
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

func describe(fsys types.FS, dir, name string) Info {
	info := Info{Name: name}
	if desc, err := descriptor.Load(fsys, dir); err == nil {
		info.Description = desc.Description
	}
	return info
}

func isTemplateDir(fsys types.FS, dir string) bool {
	info, err := fsys.Stat(dir)
	if err != nil || !info.IsDir() {
		return false
	}
	_, ok := descriptor.Find(fsys, dir)
	return ok
}
