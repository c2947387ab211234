package renderer

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/stencil/pkg/vars"
)

// Conditional region markers. A start marker names a variable and a
// literal; the region runs to the next end marker.
const endMarker = "{{/if}}"

var startMarkerRe = regexp.MustCompile(`\{\{#if \(eq ([A-Za-z_][A-Za-z0-9_]*) (?:"([^"]*)"|'([^']*)')\)\}\}`)

// ProcessConditionalBlocks resolves conditional regions in content. A
// region whose variable matches the literal in the active environment is
// kept with its markers stripped; any other region is removed entirely.
// A start marker without a matching end marker leaves the remainder of
// the content untouched rather than corrupting it.
//
// Pairing is textual: each start marker closes at the next end marker,
// so regions must not overlap.
func ProcessConditionalBlocks(content string, env vars.Env) string {
	var b strings.Builder
	rest := content
	for {
		loc := startMarkerRe.FindStringSubmatchIndex(rest)
		if loc == nil {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:loc[0]])

		end := strings.Index(rest[loc[1]:], endMarker)
		if end < 0 {
			// No end marker: leave everything from the start marker on
			// as-is.
			b.WriteString(rest[loc[0]:])
			break
		}

		variable := rest[loc[2]:loc[3]]
		literal := ""
		if loc[4] >= 0 {
			literal = rest[loc[4]:loc[5]]
		} else if loc[6] >= 0 {
			literal = rest[loc[6]:loc[7]]
		}

		inner := rest[loc[1] : loc[1]+end]
		if value, ok := env.String(variable); ok && value == literal {
			b.WriteString(ProcessConditionalBlocks(inner, env))
		}
		rest = rest[loc[1]+end+len(endMarker):]
	}
	return b.String()
}
