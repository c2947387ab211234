package descriptor

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/stencil/pkg/errors"
	"github.com/arthur-debert/stencil/pkg/types"
)

// rawBytesProvider implements koanf provider for raw bytes, so the
// descriptor can be read through the types.FS abstraction instead of
// koanf's own file provider.
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrInternal, "not implemented")
}

// rawDescriptor mirrors Descriptor with the fields that need
// post-processing left in their wire shape.
type rawDescriptor struct {
	Name             string                       `koanf:"name"`
	Description      string                       `koanf:"description"`
	Kind             string                       `koanf:"kind"`
	Files            []FileEntry                  `koanf:"files"`
	ConditionalFiles []ConditionalGroup           `koanf:"conditional_files"`
	Options          []Option                     `koanf:"options"`
	Dependencies     map[string]Dependency        `koanf:"dependencies"`
	DevDependencies  map[string]Dependency        `koanf:"dev_dependencies"`
	Redirect         map[string]map[string]string `koanf:"redirect"`
	Variants         []Variant                    `koanf:"variants"`
	NextSteps        interface{}                  `koanf:"next_steps"`
}

// Find returns the path of the descriptor artifact inside templateDir,
// or false if the directory holds none.
func Find(fsys types.FS, templateDir string) (string, bool) {
	for _, name := range FileNames {
		path := filepath.Join(templateDir, name)
		if info, err := fsys.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// IsDescriptorName reports whether name is a descriptor artifact filename.
// Entries targeting these names are never copied into the output.
func IsDescriptorName(name string) bool {
	base := filepath.Base(name)
	for _, n := range FileNames {
		if base == n {
			return true
		}
	}
	return false
}

// Load parses the descriptor artifact of templateDir. The format follows
// the file extension: JSON, TOML, or YAML.
func Load(fsys types.FS, templateDir string) (*Descriptor, error) {
	path, ok := Find(fsys, templateDir)
	if !ok {
		return nil, errors.Newf(errors.ErrConfigLoad, "no descriptor artifact in %s", templateDir).
			WithDetail("dir", templateDir)
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read descriptor %s", path)
	}

	k := koanf.New(".")
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = k.Load(&rawBytesProvider{bytes: data}, toml.Parser())
	case ".yaml", ".yml":
		err = k.Load(&rawBytesProvider{bytes: data}, yaml.Parser())
	default:
		var m map[string]interface{}
		if err = json.Unmarshal(data, &m); err == nil {
			err = k.Load(confmap.Provider(m, "."), nil)
		}
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "malformed descriptor %s", path)
	}

	var raw rawDescriptor
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &raw,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &raw, unmarshalConf); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "malformed descriptor %s", path)
	}

	desc := &Descriptor{
		Name:             raw.Name,
		Description:      raw.Description,
		Kind:             raw.Kind,
		Files:            raw.Files,
		ConditionalFiles: raw.ConditionalFiles,
		Options:          raw.Options,
		Dependencies:     raw.Dependencies,
		DevDependencies:  raw.DevDependencies,
		Redirect:         raw.Redirect,
		Variants:         raw.Variants,
	}
	if desc.Name == "" {
		desc.Name = filepath.Base(templateDir)
	}

	steps, err := normalizeNextSteps(raw.NextSteps)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "malformed next_steps in %s", path)
	}
	desc.NextSteps = steps

	return desc, nil
}

// normalizeNextSteps accepts either a flat list of strings or a
// {default, conditional} object.
func normalizeNextSteps(raw interface{}) (NextSteps, error) {
	var steps NextSteps
	switch v := raw.(type) {
	case nil:
		return steps, nil
	case []interface{}:
		flat, err := toStringSlice(v)
		if err != nil {
			return steps, err
		}
		steps.Flat = flat
		return steps, nil
	case map[string]interface{}:
		var structured struct {
			Default     []string           `koanf:"default"`
			Conditional []ConditionalSteps `koanf:"conditional"`
		}
		cfg := &mapstructure.DecoderConfig{
			Result:           &structured,
			TagName:          "koanf",
			WeaklyTypedInput: true,
		}
		decoder, err := mapstructure.NewDecoder(cfg)
		if err != nil {
			return steps, err
		}
		if err := decoder.Decode(v); err != nil {
			return steps, err
		}
		steps.Default = structured.Default
		steps.Conditional = structured.Conditional
		return steps, nil
	default:
		return steps, errors.Newf(errors.ErrConfigParse, "next_steps must be a list or an object, got %T", raw)
	}
}

func toStringSlice(items []interface{}) ([]string, error) {
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, errors.Newf(errors.ErrConfigParse, "next_steps entries must be strings, got %T", item)
		}
		out = append(out, s)
	}
	return out, nil
}
