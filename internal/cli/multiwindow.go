package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// multiWindowCommand creates the multiwindow command.
func (c *CLI) multiWindowCommand() *cobra.Command {
	var (
		flags   deviceFlags
		window  string
		asJSON  bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "multiwindow",
		Short: "Resolve the layout for a split-screen or freeform window",
		Long: `Resolve the layout for a window smaller than the display.

The full-screen profile of the device is resolved first. Labels are hidden
when the window is too short for them, and widgets are scaled by the ratio
of the window's cells to the full-screen cells.`,
		Example: `  gridfit multiwindow --window 1080x900
  gridfit multiwindow -W 1600 -H 2560 -d 2 --window 800x2560 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			out := cmd.OutOrStdout()

			size, err := parseSize(window)
			if err != nil {
				return err
			}
			opts, err := flags.options(logger)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			res, err := runner.MultiWindow(ctx, opts, size)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(out, res)
			}

			p := res.Profile
			fmt.Fprintln(out, renderProfile(p))
			if p.LabelsHidden {
				printWarning(out, "Labels hidden: a %s window is too short for them", size)
			}
			printDetail(out, "widget scale %s · %s", p.AppWidgetScale, cacheStatus(res.CacheInfo.Hit))
			return nil
		},
	}

	flags.register(cmd, true)
	cmd.Flags().StringVar(&window, "window", "", "window size as WIDTHxHEIGHT (required)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the profile as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the profile cache")
	_ = cmd.MarkFlagRequired("window")

	return cmd
}
