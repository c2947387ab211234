package main

import (
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/stencil/pkg/engine"
	"github.com/arthur-debert/stencil/pkg/errors"
	"github.com/arthur-debert/stencil/pkg/filesystem"
	"github.com/arthur-debert/stencil/pkg/hooks"
	"github.com/arthur-debert/stencil/pkg/manifest"
)

var (
	newTargetDir   string
	newVariables   []string
	newSkipPrompts bool
	newWorkspace   string
)

var newCmd = &cobra.Command{
	Use:   "new <template> <project-name>",
	Short: "Scaffold a new project from a template",
	Long: `Scaffold a new project from a template. Variables are supplied with
--var name=value and take precedence over template option defaults:

  stencil new server/axum my-api --var db=postgres`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		templateName, projectName := args[0], args[1]

		targetDir := newTargetDir
		if targetDir == "" {
			targetDir = projectName
		}

		variables, err := parseVariables(newVariables)
		if err != nil {
			return err
		}
		// Config-file variables sit below per-invocation ones.
		if len(appConfig.Variables) > 0 {
			merged := make(map[string]interface{}, len(appConfig.Variables)+len(variables))
			for k, v := range appConfig.Variables {
				merged[k] = v
			}
			for k, v := range variables {
				merged[k] = v
			}
			variables = merged
		}

		fsys := filesystem.NewOS()
		eng := engine.New(engine.Config{
			FS:            fsys,
			TemplatesRoot: effectiveTemplatesRoot(),
			Manifests:     manifest.NewTOML(fsys),
			Hooks:         hooks.NewRegistry(fsys),
		})

		report, err := eng.Apply(engine.Request{
			Template:      templateName,
			TargetDir:     targetDir,
			ProjectName:   projectName,
			Variables:     variables,
			SkipPrompts:   newSkipPrompts || appConfig.SkipPrompts,
			WorkspaceRoot: newWorkspace,
		})
		if err != nil {
			pterm.Error.Printfln("Failed to apply template %s: %v", templateName, err)
			return err
		}

		pterm.Success.Printfln("%s project created at %s", projectName, filepath.Clean(targetDir))
		if len(report.NextSteps) > 0 {
			pterm.DefaultSection.Println("Next steps")
			for _, step := range report.NextSteps {
				pterm.Println("  - " + step)
			}
		}
		return nil
	},
}

func init() {
	newCmd.Flags().StringVar(&newTargetDir, "dir", "", "Target directory (defaults to the project name)")
	newCmd.Flags().StringArrayVar(&newVariables, "var", nil, "Template variable as name=value (repeatable)")
	newCmd.Flags().BoolVar(&newSkipPrompts, "skip-prompts", false, "Resolve template options from their defaults")
	newCmd.Flags().StringVar(&newWorkspace, "workspace", "", "Register the project as a member of this workspace")
}

// parseVariables turns --var name=value pairs into a variables map.
// Bare "true"/"false" values become booleans so boolean conditions and
// options behave as expected.
func parseVariables(pairs []string) (map[string]interface{}, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	variables := make(map[string]interface{}, len(pairs))
	for _, pair := range pairs {
		name, value, found := strings.Cut(pair, "=")
		if !found || name == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, "invalid --var %q, expected name=value", pair)
		}
		switch value {
		case "true":
			variables[name] = true
		case "false":
			variables[name] = false
		default:
			variables[name] = value
		}
	}
	return variables, nil
}
