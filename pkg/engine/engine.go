// Package engine orchestrates the end-to-end apply of a template:
// locate, load descriptor, redirect, build environment, render entries,
// clean up non-selected variants, hand off dependencies, run hooks, and
// resolve next steps.
package engine

import (
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/stencil/pkg/condition"
	"github.com/arthur-debert/stencil/pkg/descriptor"
	"github.com/arthur-debert/stencil/pkg/errors"
	"github.com/arthur-debert/stencil/pkg/filesystem"
	"github.com/arthur-debert/stencil/pkg/locator"
	"github.com/arthur-debert/stencil/pkg/logging"
	"github.com/arthur-debert/stencil/pkg/renderer"
	"github.com/arthur-debert/stencil/pkg/types"
	"github.com/arthur-debert/stencil/pkg/vars"
)

// manifestFile is the package manifest of generated projects, handed to
// the manifest-editing collaborator for dependency declarations.
const manifestFile = "Cargo.toml"

// Config wires the engine's collaborators. Zero fields get defaults:
// the OS filesystem, the non-interactive option resolver, and no-op
// manifest/hook collaborators.
type Config struct {
	FS            types.FS
	TemplatesRoot string
	Manifests     types.ManifestEditor
	Hooks         types.HookRunner
	Resolver      OptionResolver
}

// Engine applies templates. One Apply call runs to completion before
// another should begin against the same target directory; the engine is
// synchronous and holds no locks.
type Engine struct {
	fs        types.FS
	root      string
	manifests types.ManifestEditor
	hooks     types.HookRunner
	resolver  OptionResolver
	logger    zerolog.Logger
}

// New creates an engine from cfg.
func New(cfg Config) *Engine {
	e := &Engine{
		fs:        cfg.FS,
		root:      cfg.TemplatesRoot,
		manifests: cfg.Manifests,
		hooks:     cfg.Hooks,
		resolver:  cfg.Resolver,
		logger:    logging.GetLogger("engine"),
	}
	if e.fs == nil {
		e.fs = filesystem.NewOS()
	}
	if e.resolver == nil {
		e.resolver = DefaultResolver{}
	}
	return e
}

// Request describes one apply.
type Request struct {
	Template    string
	TargetDir   string
	ProjectName string
	// Variables are caller-resolved values. They take precedence over
	// derived names and over anything a descriptor option would resolve.
	Variables map[string]interface{}
	// SkipPrompts forces descriptor options to resolve from their
	// declared defaults instead of the configured resolver.
	SkipPrompts bool
	// WorkspaceRoot, when set, registers the generated project as a
	// member of that workspace's manifest.
	WorkspaceRoot string
}

// Report is what an apply produced beyond the file tree.
type Report struct {
	Template  string
	NextSteps []string
}

// Apply materializes the named template into the target directory.
// Failures before any rendering leave the target untouched; failures
// mid-render leave partial output in place — a failed apply's target is
// potentially partial and should be discarded or re-applied.
func (e *Engine) Apply(req Request) (*Report, error) {
	return e.apply(req, map[string]bool{})
}

func (e *Engine) apply(req Request, visited map[string]bool) (*Report, error) {
	if visited[req.Template] {
		return nil, errors.Newf(errors.ErrRedirectLoop, "redirect loop through template %q", req.Template).
			WithDetail("template", req.Template)
	}
	visited[req.Template] = true

	templateDir, err := locator.Locate(e.fs, e.root, req.Template)
	if err != nil {
		return nil, err
	}

	desc, err := descriptor.Load(e.fs, templateDir)
	if err != nil {
		return nil, err
	}

	// Meta templates delegate entirely to a concrete one based on a
	// choice variable; the original template contributes nothing else.
	if target, ok := e.redirectTarget(desc, req); ok {
		e.logger.Debug().
			Str("from", req.Template).
			Str("to", target).
			Msg("template redirect")
		redirected := req
		redirected.Template = target
		return e.apply(redirected, visited)
	}

	env, err := e.buildEnvironment(desc, req)
	if err != nil {
		return nil, err
	}

	rendered, err := e.renderEntries(desc, templateDir, req.TargetDir, env)
	if err != nil {
		return nil, err
	}
	if !rendered {
		if err := renderer.RenderTree(e.fs, templateDir, req.TargetDir, env); err != nil {
			return nil, err
		}
	}

	if err := e.cleanupVariants(desc, req.TargetDir, env); err != nil {
		return nil, err
	}

	if err := e.declareDependencies(desc, req.TargetDir, env); err != nil {
		return nil, err
	}

	if req.WorkspaceRoot != "" && e.manifests != nil {
		rel, err := filepath.Rel(req.WorkspaceRoot, req.TargetDir)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrManifestEdit, "target %s is not under workspace %s", req.TargetDir, req.WorkspaceRoot)
		}
		if err := e.manifests.AddWorkspaceMember(req.WorkspaceRoot, rel); err != nil {
			return nil, errors.Wrapf(err, errors.ErrManifestEdit, "failed to register workspace member %s", rel)
		}
	}

	if e.hooks != nil {
		if err := e.hooks.Run(req.Template, req.TargetDir); err != nil {
			return nil, errors.Wrapf(err, errors.ErrHookFailed, "post-apply hook failed for %s", req.Template)
		}
	}

	report := &Report{
		Template:  req.Template,
		NextSteps: e.resolveNextSteps(desc, req.TargetDir, req.ProjectName, env),
	}
	e.logger.Info().
		Str("template", req.Template).
		Str("target", req.TargetDir).
		Msg("template applied")
	return report, nil
}

// redirectTarget checks the descriptor's redirect table against the
// caller-supplied variables. Variables are checked in sorted order so
// overlapping tables resolve deterministically.
func (e *Engine) redirectTarget(desc *descriptor.Descriptor, req Request) (string, bool) {
	if len(desc.Redirect) == 0 {
		return "", false
	}
	env := vars.Build(req.ProjectName, req.Variables)
	variables := make([]string, 0, len(desc.Redirect))
	for name := range desc.Redirect {
		variables = append(variables, name)
	}
	sort.Strings(variables)
	for _, name := range variables {
		value, ok := env.String(name)
		if !ok {
			continue
		}
		if target := desc.Redirect[name][value]; target != "" {
			return target, true
		}
	}
	return "", false
}

// buildEnvironment merges derived defaults, resolved descriptor options,
// and caller variables into the immutable environment for this apply.
// Caller variables always win.
func (e *Engine) buildEnvironment(desc *descriptor.Descriptor, req Request) (vars.Env, error) {
	merged := make(map[string]interface{})

	resolver := e.resolver
	if req.SkipPrompts {
		resolver = DefaultResolver{}
	}
	for _, opt := range desc.Options {
		if _, supplied := req.Variables[opt.Name]; supplied {
			continue
		}
		value, err := resolver.Resolve(opt)
		if err != nil {
			return vars.Env{}, errors.Wrapf(err, errors.ErrInvalidInput, "failed to resolve option %q", opt.Name)
		}
		merged[opt.Name] = value
	}
	for k, v := range req.Variables {
		merged[k] = v
	}
	return vars.Build(req.ProjectName, merged), nil
}

// renderEntries processes the descriptor's flat file list and conditional
// groups. It returns false when the descriptor declares neither, which
// triggers the whole-directory fallback.
func (e *Engine) renderEntries(desc *descriptor.Descriptor, templateDir, targetDir string, env vars.Env) (bool, error) {
	if len(desc.Files) == 0 && len(desc.ConditionalFiles) == 0 {
		return false, nil
	}

	seen := make(map[string]string)
	render := func(entry descriptor.FileEntry, origin string) error {
		if descriptor.IsDescriptorName(entry.Source) || descriptor.IsDescriptorName(entry.Target) {
			return nil
		}
		target := renderer.TargetName(entry.Target, env)
		if prev, dup := seen[target]; dup {
			// Overlapping groups for one target are last-applied-wins;
			// surface it rather than picking silently.
			e.logger.Warn().
				Str("target", target).
				Str("previous", prev).
				Str("current", origin).
				Msg("target rendered more than once; last applied wins")
		}
		seen[target] = origin
		return renderer.RenderFile(e.fs, filepath.Join(templateDir, entry.Source), filepath.Join(targetDir, entry.Target), env)
	}

	for _, entry := range desc.Files {
		if entry.Condition != "" && !condition.Evaluate(entry.Condition, env) {
			e.logger.Debug().
				Str("source", entry.Source).
				Str("condition", entry.Condition).
				Msg("condition not met, skipping entry")
			continue
		}
		if err := render(entry, entry.Source); err != nil {
			return true, err
		}
	}

	for _, group := range desc.ConditionalFiles {
		if !condition.Evaluate(group.When, env) {
			continue
		}
		for _, entry := range group.Files {
			if err := render(entry, entry.Source); err != nil {
				return true, err
			}
		}
	}
	return true, nil
}

// declareDependencies hands (name, version, features) tuples to the
// manifest-editing collaborator, honoring per-dependency conditions.
func (e *Engine) declareDependencies(desc *descriptor.Descriptor, targetDir string, env vars.Env) error {
	if e.manifests == nil {
		return nil
	}
	manifestPath := filepath.Join(targetDir, manifestFile)

	add := func(deps map[string]descriptor.Dependency, dev bool) error {
		names := make([]string, 0, len(deps))
		for name := range deps {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			dep := deps[name]
			if dep.When != "" && !condition.Evaluate(dep.When, env) {
				continue
			}
			version := dep.Version
			if version == "" {
				version = "latest"
			}
			var err error
			if dev {
				err = e.manifests.AddDevDependency(manifestPath, name, version, dep.Features)
			} else {
				err = e.manifests.AddDependency(manifestPath, name, version, dep.Features)
			}
			if err != nil {
				return errors.Wrapf(err, errors.ErrManifestEdit, "failed to declare dependency %q", name)
			}
		}
		return nil
	}

	if err := add(desc.Dependencies, false); err != nil {
		return err
	}
	return add(desc.DevDependencies, true)
}
