// Package config loads stencil's own configuration: layered defaults,
// an optional user config file, and STENCIL_* environment overrides.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/stencil/pkg/errors"
)

// envPrefix namespaces the environment override layer. STENCIL_TEMPLATES_ROOT
// maps to templates_root.
const envPrefix = "STENCIL_"

// Config is stencil's own settings, as opposed to per-template descriptors.
type Config struct {
	// TemplatesRoot overrides where templates are searched.
	TemplatesRoot string `koanf:"templates_root"`
	// SkipPrompts makes every apply resolve options from defaults.
	SkipPrompts bool `koanf:"skip_prompts"`
	// Variables are applied to every scaffold, below per-invocation ones.
	Variables map[string]interface{} `koanf:"variables"`
}

// Path returns the user config file location.
func Path() string {
	return filepath.Join(xdg.ConfigHome, "stencil", "config.toml")
}

// Load builds the effective configuration. Layers, later wins:
// built-in defaults, the user config file (if present), STENCIL_*
// environment variables.
func Load() (*Config, error) {
	return load(Path())
}

func load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load default config")
	}

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "malformed config file %s", path)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return &cfg, nil
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"templates_root": "",
		"skip_prompts":   false,
	}
}
