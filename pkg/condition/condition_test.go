package condition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/stencil/pkg/vars"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want Expr
	}{
		{
			name: "single quoted literal",
			expr: "db == 'postgres'",
			want: Expr{LHS: "db", Op: OpEq, RHS: "postgres"},
		},
		{
			name: "double quoted literal",
			expr: `framework == "axum"`,
			want: Expr{LHS: "framework", Op: OpEq, RHS: "axum"},
		},
		{
			name: "unquoted literal",
			expr: "mode == release",
			want: Expr{LHS: "mode", Op: OpEq, RHS: "release"},
		},
		{
			name: "not equal",
			expr: "db != 'sqlite'",
			want: Expr{LHS: "db", Op: OpNe, RHS: "sqlite"},
		},
		{
			name: "no whitespace",
			expr: "db=='postgres'",
			want: Expr{LHS: "db", Op: OpEq, RHS: "postgres"},
		},
		{
			name: "extra whitespace",
			expr: "  db   ==   'postgres'  ",
			want: Expr{LHS: "db", Op: OpEq, RHS: "postgres"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, expr := range []string{"", "db", "== 'postgres'", "just some words"} {
		_, err := Parse(expr)
		assert.Error(t, err, "expected parse error for %q", expr)
	}
}

func TestEval(t *testing.T) {
	env := vars.Build("demo", map[string]interface{}{
		"db":      "postgres",
		"enabled": true,
	})

	tests := []struct {
		name string
		expr string
		want bool
	}{
		{"equal match", "db == 'postgres'", true},
		{"equal mismatch", "db == 'mysql'", false},
		{"not equal match", "db != 'mysql'", true},
		{"not equal mismatch", "db != 'postgres'", false},
		{"boolean compared as string", "enabled == 'true'", true},
		{"unset variable is false", "feature_x == 'on'", false},
		{"unset variable not-equal is still false", "feature_x != 'on'", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.expr, env))
		})
	}
}

func TestEvaluateMalformedIsFalse(t *testing.T) {
	env := vars.Build("demo", nil)
	// A bad condition excludes the gated content instead of failing the
	// apply.
	assert.False(t, Evaluate("not a condition", env))
	assert.False(t, Evaluate("", env))
}

func TestZeroExprIsFalse(t *testing.T) {
	env := vars.Build("demo", nil)
	assert.False(t, Expr{}.Eval(env))
}
