package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/stencil/pkg/descriptor"
)

func TestDefaultResolver(t *testing.T) {
	tests := []struct {
		name string
		opt  descriptor.Option
		want interface{}
	}{
		{
			name: "select takes default",
			opt:  descriptor.Option{Name: "db", Type: descriptor.OptionSelect, Default: "sqlite", Choices: []string{"sqlite", "postgres"}},
			want: "sqlite",
		},
		{
			name: "select without default takes first choice",
			opt:  descriptor.Option{Name: "db", Type: descriptor.OptionSelect, Choices: []string{"postgres", "sqlite"}},
			want: "postgres",
		},
		{
			name: "select with nothing declared",
			opt:  descriptor.Option{Name: "db", Type: descriptor.OptionSelect},
			want: "",
		},
		{
			name: "input takes default string",
			opt:  descriptor.Option{Name: "port", Type: descriptor.OptionInput, Default: "8080"},
			want: "8080",
		},
		{
			name: "boolean takes default flag",
			opt:  descriptor.Option{Name: "docker", Type: descriptor.OptionBoolean, Default: true},
			want: true,
		},
		{
			name: "boolean coerces string default",
			opt:  descriptor.Option{Name: "docker", Type: descriptor.OptionBoolean, Default: "true"},
			want: true,
		},
		{
			name: "boolean without default is false",
			opt:  descriptor.Option{Name: "docker", Type: descriptor.OptionBoolean},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DefaultResolver{}.Resolve(tt.opt)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultResolverUnknownType(t *testing.T) {
	_, err := DefaultResolver{}.Resolve(descriptor.Option{Name: "x", Type: "slider"})
	assert.Error(t, err)
}
