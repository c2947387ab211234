// Package descriptor loads and represents the declarative configuration
// of a template: its file list, conditional groups, option schema,
// dependency declarations, redirects, variant layout, and next steps.
package descriptor

// FileNames are the descriptor artifacts recognized inside a template
// directory, in lookup order. A directory without one of these is not a
// template.
var FileNames = []string{"template.json", "template.toml", "template.yaml"}

// OptionType enumerates the descriptor option kinds.
const (
	OptionSelect  = "select"
	OptionInput   = "input"
	OptionBoolean = "boolean"
)

// FileEntry maps one source artifact to one destination location, with an
// optional gating condition. Source is relative to the template root,
// Target relative to the destination root.
type FileEntry struct {
	Source    string `koanf:"source"`
	Target    string `koanf:"target"`
	Condition string `koanf:"condition"`
}

// ConditionalGroup bundles a guard expression with file entries that are
// only processed together. Group membership gates the entries; they carry
// no per-entry conditions of their own once the group matched.
type ConditionalGroup struct {
	When  string      `koanf:"when"`
	Files []FileEntry `koanf:"files"`
}

// Option declares a value the caller resolves before rendering begins.
type Option struct {
	Name        string      `koanf:"name"`
	Description string      `koanf:"description"`
	Type        string      `koanf:"type"`
	Default     interface{} `koanf:"default"`
	Choices     []string    `koanf:"choices"`
}

// Dependency declares a package the generated project needs. When is an
// optional condition expression gating the dependency on the active
// environment.
type Dependency struct {
	Version  string   `koanf:"version"`
	Features []string `koanf:"features"`
	When     string   `koanf:"when"`
}

// Variant describes a set of mutually exclusive sibling directories keyed
// by a selecting variable. After rendering, the selected subtree is
// promoted and the siblings are removed.
//
// Root names the directory holding one subdirectory per choice; an empty
// Root means the choice directories sit at the top of the target tree.
// Promote moves the selected subtree's contents to the destination root.
// Stale lists top-level files superseded by the promotion.
type Variant struct {
	Variable string   `koanf:"variable"`
	Root     string   `koanf:"root"`
	Promote  bool     `koanf:"promote"`
	Choices  []string `koanf:"choices"`
	Stale    []string `koanf:"stale"`
}

// ConditionalSteps gates a list of next-step messages on a condition.
type ConditionalSteps struct {
	When  string   `koanf:"when"`
	Steps []string `koanf:"steps"`
}

// NextSteps holds the descriptor's post-apply instructions. A descriptor
// may declare either a flat list or a {default, conditional} structure;
// exactly one of Flat or Default/Conditional is populated after load.
type NextSteps struct {
	Flat        []string
	Default     []string
	Conditional []ConditionalSteps
}

// IsZero reports whether no next steps were declared.
func (n NextSteps) IsZero() bool {
	return len(n.Flat) == 0 && len(n.Default) == 0 && len(n.Conditional) == 0
}

// Descriptor is the parsed configuration of one template. It is loaded
// fresh at the start of each apply and read-only after load.
type Descriptor struct {
	Name             string
	Description      string
	Kind             string
	Files            []FileEntry
	ConditionalFiles []ConditionalGroup
	Options          []Option
	Dependencies     map[string]Dependency
	DevDependencies  map[string]Dependency
	// Redirect is keyed by variable name, then by variable value; the
	// inner value is the template name to delegate to.
	Redirect  map[string]map[string]string
	Variants  []Variant
	NextSteps NextSteps
}

// Option returns the declared option with the given name, if any.
func (d *Descriptor) Option(name string) (Option, bool) {
	for _, opt := range d.Options {
		if opt.Name == name {
			return opt, true
		}
	}
	return Option{}, false
}
