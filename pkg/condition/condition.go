// Package condition parses and evaluates the tiny expression dialect used
// in template descriptors.
//
// The grammar is a single comparison: `<ident> <op> <literal>` with
// op in {==, !=}. Literals may be single-quoted, double-quoted, or bare.
// Templates are data; anything richer than string equality would widen
// the surface template authors can reach into the engine.
package condition

import (
	"strings"

	"github.com/arthur-debert/stencil/pkg/errors"
	"github.com/arthur-debert/stencil/pkg/vars"
)

// Op is a comparison operator.
type Op int

const (
	// OpNone marks the zero Expr, which evaluates to false.
	OpNone Op = iota
	// OpEq is the `==` operator.
	OpEq
	// OpNe is the `!=` operator.
	OpNe
)

// Expr is a parsed condition. Parsing once and evaluating the struct
// guarantees the same trimming and quote-stripping everywhere a condition
// is checked.
type Expr struct {
	LHS string
	Op  Op
	RHS string
}

// Parse splits a condition of the form `variable == 'literal'` into an
// Expr. Quotes around the literal are stripped; whitespace around both
// sides is trimmed.
func Parse(expr string) (Expr, error) {
	op := OpNone
	opToken := ""
	switch {
	case strings.Contains(expr, "=="):
		op, opToken = OpEq, "=="
	case strings.Contains(expr, "!="):
		op, opToken = OpNe, "!="
	default:
		return Expr{}, errors.Newf(errors.ErrInvalidInput, "condition %q has no comparison operator", expr)
	}

	parts := strings.SplitN(expr, opToken, 2)
	lhs := strings.TrimSpace(parts[0])
	rhs := stripQuotes(strings.TrimSpace(parts[1]))
	if lhs == "" {
		return Expr{}, errors.Newf(errors.ErrInvalidInput, "condition %q has no variable name", expr)
	}
	return Expr{LHS: lhs, Op: op, RHS: rhs}, nil
}

// Eval evaluates the expression against env. A variable absent from the
// environment makes the whole expression false, never an error: an
// unresolvable condition must exclude the conditional content rather than
// block the apply.
func (e Expr) Eval(env vars.Env) bool {
	if e.Op == OpNone {
		return false
	}
	value, ok := env.String(e.LHS)
	if !ok {
		return false
	}
	if e.Op == OpEq {
		return value == e.RHS
	}
	return value != e.RHS
}

// Evaluate parses and evaluates expr in one step. A malformed expression
// evaluates to false for the same reason a lookup miss does.
func Evaluate(expr string, env vars.Env) bool {
	parsed, err := Parse(expr)
	if err != nil {
		return false
	}
	return parsed.Eval(env)
}

func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
