// Package paths resolves the filesystem locations stencil reads from.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// TemplatesRootEnvVar overrides the default templates root.
const TemplatesRootEnvVar = "STENCIL_TEMPLATES"

// TemplatesRoot returns the directory templates are searched under.
// Precedence: explicit override (CLI flag), STENCIL_TEMPLATES, then the
// XDG data directory.
func TemplatesRoot(override string) string {
	if override != "" {
		return override
	}
	if env := os.Getenv(TemplatesRootEnvVar); env != "" {
		return env
	}
	return filepath.Join(xdg.DataHome, "stencil", "templates")
}
