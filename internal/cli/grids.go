package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridfit/pkg/grid"
)

// gridsCommand creates the grids command listing the built-in presets.
func (c *CLI) gridsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "grids",
		Short: "List the built-in grid presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			specs := grid.Presets()
			if asJSON {
				return writeJSON(out, specs)
			}

			rows := make([][]string, len(specs))
			for i, s := range specs {
				rows[i] = []string{
					s.Name,
					fmt.Sprintf("%dx%d", s.Columns, s.Rows),
					fmt.Sprintf("%gdp", s.IconSizeDp),
					fmt.Sprintf("%gsp", s.IconTextSizeSp),
					fmt.Sprint(s.HotseatIconCount),
					fmt.Sprintf("%dx%d", s.FolderColumns, s.FolderRows),
				}
			}
			fmt.Fprintln(out, renderTable([]string{"Name", "Grid", "Icon", "Label", "Dock", "Folder"}, rows))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the presets as JSON")
	return cmd
}
