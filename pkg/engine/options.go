package engine

import (
	"github.com/arthur-debert/stencil/pkg/descriptor"
	"github.com/arthur-debert/stencil/pkg/errors"
	"github.com/arthur-debert/stencil/pkg/vars"
)

// OptionResolver turns a descriptor option into a concrete value. The
// CLI supplies an interactive implementation; the engine falls back to
// DefaultResolver, which never talks to a terminal.
type OptionResolver interface {
	Resolve(opt descriptor.Option) (interface{}, error)
}

// DefaultResolver resolves options from their declared defaults:
// select options take the default choice (or the first one), input
// options take the default string, boolean options the default flag.
type DefaultResolver struct{}

// Resolve implements OptionResolver.
func (DefaultResolver) Resolve(opt descriptor.Option) (interface{}, error) {
	switch opt.Type {
	case descriptor.OptionSelect:
		if s := vars.Format(opt.Default); s != "" {
			return s, nil
		}
		if len(opt.Choices) > 0 {
			return opt.Choices[0], nil
		}
		return "", nil
	case descriptor.OptionInput:
		return vars.Format(opt.Default), nil
	case descriptor.OptionBoolean:
		if b, ok := opt.Default.(bool); ok {
			return b, nil
		}
		return vars.Format(opt.Default) == "true", nil
	default:
		return nil, errors.Newf(errors.ErrConfigParse, "option %q has unknown type %q", opt.Name, opt.Type)
	}
}
