package engine

import (
	"encoding/json"
	"path/filepath"

	"github.com/arthur-debert/stencil/pkg/condition"
	"github.com/arthur-debert/stencil/pkg/descriptor"
	"github.com/arthur-debert/stencil/pkg/renderer"
	"github.com/arthur-debert/stencil/pkg/vars"
)

// NextStepsFile is the transient side-channel artifact a post-apply hook
// may write into the target directory. It is consumed and deleted.
const NextStepsFile = ".stencil_next_steps.json"

type nextStepsPayload struct {
	NextSteps []string `json:"next_steps"`
}

// resolveNextSteps resolves the user-facing instructions for one apply.
// Precedence: side-channel file, descriptor next_steps, generic fallback.
// Every message has its placeholders substituted; absent identifiers stay
// literal.
func (e *Engine) resolveNextSteps(desc *descriptor.Descriptor, targetDir, projectName string, env vars.Env) []string {
	if steps := e.sideChannelSteps(targetDir, env); len(steps) > 0 {
		return steps
	}

	if !desc.NextSteps.IsZero() {
		if steps := descriptorSteps(desc.NextSteps, env); len(steps) > 0 {
			return steps
		}
	}

	return []string{
		"Navigate to your project: cd " + projectName,
		"Review the generated code",
		"Build the project: cargo build",
		"Run the project: cargo run",
	}
}

// sideChannelSteps reads, substitutes, and deletes the transient
// next-steps artifact. An unreadable or malformed file yields nothing;
// the descriptor path takes over.
func (e *Engine) sideChannelSteps(targetDir string, env vars.Env) []string {
	path := filepath.Join(targetDir, NextStepsFile)
	data, err := e.fs.ReadFile(path)
	if err != nil {
		return nil
	}
	defer func() {
		if err := e.fs.Remove(path); err != nil {
			e.logger.Debug().Err(err).Str("path", path).Msg("could not remove next-steps file")
		}
	}()

	var payload nextStepsPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		e.logger.Warn().Err(err).Str("path", path).Msg("malformed next-steps file")
		return nil
	}
	return substituteAll(payload.NextSteps, env)
}

// descriptorSteps resolves the descriptor's next_steps: a flat list is
// used directly; otherwise every conditional entry whose guard holds
// contributes its steps, and the default list is the fallback when none
// match.
func descriptorSteps(steps descriptor.NextSteps, env vars.Env) []string {
	if len(steps.Flat) > 0 {
		return substituteAll(steps.Flat, env)
	}

	var matched []string
	for _, cond := range steps.Conditional {
		if condition.Evaluate(cond.When, env) {
			matched = append(matched, cond.Steps...)
		}
	}
	if len(matched) > 0 {
		return substituteAll(matched, env)
	}
	return substituteAll(steps.Default, env)
}

func substituteAll(steps []string, env vars.Env) []string {
	out := make([]string, 0, len(steps))
	for _, step := range steps {
		out = append(out, renderer.RenderString(step, env))
	}
	return out
}
