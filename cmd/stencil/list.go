package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/stencil/pkg/filesystem"
	"github.com/arthur-debert/stencil/pkg/locator"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		infos, err := locator.List(filesystem.NewOS(), effectiveTemplatesRoot())
		if err != nil {
			return err
		}
		if len(infos) == 0 {
			pterm.Info.Println("No templates found")
			return nil
		}

		rows := pterm.TableData{{"Template", "Description"}}
		for _, info := range infos {
			rows = append(rows, []string{info.Name, info.Description})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	},
}
