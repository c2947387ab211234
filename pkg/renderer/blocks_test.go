package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/stencil/pkg/vars"
)

func TestProcessConditionalBlocks(t *testing.T) {
	env := vars.Build("demo", map[string]interface{}{"db": "postgres"})

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "matching block kept without markers",
			in:   "before\n{{#if (eq db \"postgres\")}}use sqlx;\n{{/if}}after",
			want: "before\nuse sqlx;\nafter",
		},
		{
			name: "non-matching block removed",
			in:   "before\n{{#if (eq db \"mysql\")}}use mysql;\n{{/if}}after",
			want: "before\nafter",
		},
		{
			name: "single quoted literal",
			in:   "{{#if (eq db 'postgres')}}yes{{/if}}",
			want: "yes",
		},
		{
			name: "unset variable removes block",
			in:   "{{#if (eq cache \"redis\")}}use redis;{{/if}}done",
			want: "done",
		},
		{
			name: "several independent blocks",
			in:   "{{#if (eq db \"postgres\")}}A{{/if}}-{{#if (eq db \"mysql\")}}B{{/if}}-C",
			want: "A--C",
		},
		{
			name: "no markers passes through",
			in:   "plain {{db}} content",
			want: "plain {{db}} content",
		},
		{
			name: "missing end marker leaves remainder intact",
			in:   "head {{#if (eq db \"postgres\")}}dangling tail",
			want: "head {{#if (eq db \"postgres\")}}dangling tail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProcessConditionalBlocks(tt.in, env))
		})
	}
}

func TestRenderFileResolvesBlocksBeforePlaceholders(t *testing.T) {
	env := vars.Build("my-api", map[string]interface{}{"db": "postgres"})

	content := "{{#if (eq db \"postgres\")}}url = \"postgres://{{project_name}}\"\n{{/if}}name = \"{{project_name}}\""
	got := RenderString(ProcessConditionalBlocks(content, env), env)
	assert.Equal(t, "url = \"postgres://my-api\"\nname = \"my-api\"", got)
}
