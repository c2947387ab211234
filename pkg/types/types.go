// Package types holds the interfaces shared across stencil packages.
// Keeping them here avoids import cycles between the engine and its
// collaborators.
package types

import "io/fs"

// FS abstracts filesystem operations so the engine can run against the
// real OS filesystem or an in-memory one in tests.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)
	Remove(name string) error
	RemoveAll(path string) error
	Rename(oldpath, newpath string) error
	Chmod(name string, mode fs.FileMode) error
}

// ManifestEditor receives dependency and workspace declarations produced
// by an apply. The engine hands off (name, version, features) tuples and
// never edits manifests itself.
type ManifestEditor interface {
	AddDependency(manifestPath, name, version string, features []string) error
	AddDevDependency(manifestPath, name, version string, features []string) error
	AddWorkspaceMember(workspaceRoot, relPath string) error
}

// HookRunner executes template-specific post-apply fixups. Implementations
// decide from the template name which patches, if any, apply.
type HookRunner interface {
	Run(templateName, targetDir string) error
}
