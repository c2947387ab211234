// Package hooks runs template-specific post-apply fixups.
//
// Template categories form a closed set of kinds dispatched through one
// registry, so the engine never branches on template names itself. The
// patches here are inherently version-pinned and fragile; keeping them
// behind this boundary means the core engine carries no knowledge of any
// generated framework's API surface.
package hooks

import (
	"strings"

	"github.com/arthur-debert/stencil/pkg/logging"
	"github.com/arthur-debert/stencil/pkg/types"
)

// Kind is a template category. The first segment of a namespaced
// template name selects the kind: "server/axum" is KindServer.
type Kind string

// The known template kinds.
const (
	KindServer      Kind = "server"
	KindClient      Kind = "client"
	KindEmbedded    Kind = "embedded"
	KindDataScience Kind = "data-science"
	KindGeneric     Kind = "generic"
)

// Patch is one ordered fixup applied to a generated tree.
type Patch func(fsys types.FS, targetDir string) error

// Registry maps template kinds to their ordered patch lists and
// implements types.HookRunner.
type Registry struct {
	fs      types.FS
	patches map[Kind][]Patch
}

// NewRegistry creates a registry with the built-in patches registered.
func NewRegistry(fsys types.FS) *Registry {
	r := &Registry{
		fs:      fsys,
		patches: make(map[Kind][]Patch),
	}
	r.Register(KindDataScience, NormalizeWorkspaceManifest, FixDeprecatedDeviceInit)
	r.Register(KindEmbedded, NormalizeWorkspaceManifest)
	return r
}

// Register appends patches to a kind's ordered list.
func (r *Registry) Register(kind Kind, patches ...Patch) {
	r.patches[kind] = append(r.patches[kind], patches...)
}

// Run implements types.HookRunner: it applies the patches registered for
// the template's kind, in order. Kinds with no patches are a no-op.
func (r *Registry) Run(templateName, targetDir string) error {
	logger := logging.GetLogger("hooks")
	kind := KindOf(templateName)
	patches := r.patches[kind]
	if len(patches) == 0 {
		return nil
	}
	logger.Debug().
		Str("template", templateName).
		Str("kind", string(kind)).
		Int("patches", len(patches)).
		Msg("running post-apply hooks")
	for _, patch := range patches {
		if err := patch(r.fs, targetDir); err != nil {
			return err
		}
	}
	return nil
}

// KindOf derives the template kind from the template name's first
// segment. Unknown categories map to KindGeneric.
func KindOf(templateName string) Kind {
	head := templateName
	if idx := strings.Index(templateName, "/"); idx >= 0 {
		head = templateName[:idx]
	}
	switch Kind(head) {
	case KindServer, KindClient, KindEmbedded, KindDataScience:
		return Kind(head)
	}
	return KindGeneric
}
