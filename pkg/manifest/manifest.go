// Package manifest implements the manifest-editing collaborator: it
// receives dependency and workspace declarations from the engine and
// applies them to generated package manifests.
package manifest

import (
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/stencil/pkg/errors"
	"github.com/arthur-debert/stencil/pkg/logging"
	"github.com/arthur-debert/stencil/pkg/types"
)

// TOMLEditor edits TOML package manifests in place.
type TOMLEditor struct {
	fs types.FS
}

// NewTOML creates a TOML-backed manifest editor.
func NewTOML(fsys types.FS) *TOMLEditor {
	return &TOMLEditor{fs: fsys}
}

// AddDependency inserts name under [dependencies].
func (t *TOMLEditor) AddDependency(manifestPath, name, version string, features []string) error {
	return t.addDependency(manifestPath, "dependencies", name, version, features)
}

// AddDevDependency inserts name under [dev-dependencies].
func (t *TOMLEditor) AddDevDependency(manifestPath, name, version string, features []string) error {
	return t.addDependency(manifestPath, "dev-dependencies", name, version, features)
}

func (t *TOMLEditor) addDependency(manifestPath, section, name, version string, features []string) error {
	logger := logging.GetLogger("manifest")

	doc, err := t.load(manifestPath)
	if err != nil {
		return err
	}

	deps, ok := doc[section].(map[string]interface{})
	if !ok {
		deps = make(map[string]interface{})
		doc[section] = deps
	}

	if len(features) == 0 {
		deps[name] = version
	} else {
		deps[name] = map[string]interface{}{
			"version":  version,
			"features": features,
		}
	}

	logger.Debug().
		Str("manifest", manifestPath).
		Str("section", section).
		Str("dependency", name).
		Str("version", version).
		Msg("dependency declared")
	return t.store(manifestPath, doc)
}

// AddWorkspaceMember appends relPath to [workspace].members of the
// workspace root manifest, keeping the list sorted and deduplicated.
func (t *TOMLEditor) AddWorkspaceMember(workspaceRoot, relPath string) error {
	manifestPath := filepath.Join(workspaceRoot, "Cargo.toml")
	doc, err := t.load(manifestPath)
	if err != nil {
		return err
	}

	workspace, ok := doc["workspace"].(map[string]interface{})
	if !ok {
		workspace = make(map[string]interface{})
		doc["workspace"] = workspace
	}

	members := map[string]bool{relPath: true}
	if existing, ok := workspace["members"].([]interface{}); ok {
		for _, member := range existing {
			if s, ok := member.(string); ok {
				members[s] = true
			}
		}
	}

	sorted := make([]string, 0, len(members))
	for member := range members {
		sorted = append(sorted, member)
	}
	sort.Strings(sorted)
	workspace["members"] = sorted

	return t.store(manifestPath, doc)
}

func (t *TOMLEditor) load(manifestPath string) (map[string]interface{}, error) {
	data, err := t.fs.ReadFile(manifestPath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestEdit, "cannot read manifest %s", manifestPath)
	}
	var doc map[string]interface{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestEdit, "malformed manifest %s", manifestPath)
	}
	if doc == nil {
		doc = make(map[string]interface{})
	}
	return doc, nil
}

func (t *TOMLEditor) store(manifestPath string, doc map[string]interface{}) error {
	data, err := toml.Marshal(doc)
	if err != nil {
		return errors.Wrapf(err, errors.ErrManifestEdit, "cannot encode manifest %s", manifestPath)
	}
	if err := t.fs.WriteFile(manifestPath, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write manifest %s", manifestPath)
	}
	return nil
}

// Discard is a no-op editor for callers that only want files.
type Discard struct{}

// AddDependency implements types.ManifestEditor.
func (Discard) AddDependency(manifestPath, name, version string, features []string) error {
	return nil
}

// AddDevDependency implements types.ManifestEditor.
func (Discard) AddDevDependency(manifestPath, name, version string, features []string) error {
	return nil
}

// AddWorkspaceMember implements types.ManifestEditor.
func (Discard) AddWorkspaceMember(workspaceRoot, relPath string) error {
	return nil
}
