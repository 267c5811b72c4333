package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridfit/pkg/grid"
	"github.com/matzehuels/gridfit/pkg/pipeline"
)

// resolveCommand creates the resolve command.
func (c *CLI) resolveCommand() *cobra.Command {
	var (
		flags   deviceFlags
		asJSON  bool
		noCache bool
		all     bool
		jobs    int
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the layout profile for a device",
		Long: `Resolve the full-screen layout profile for a grid on a device.

The device is described by its density and window size; the window is
landscape when it is wider than tall. Preferences come from --prefs and
--set, for example --set dock_hidden=true --set home_label_rows=2.`,
		Example: `  gridfit resolve --grid 5x5 --density 2.625 -W 1080 -H 2340
  gridfit resolve --spec grid.toml --set dock_rows=2 --json
  gridfit resolve --all -W 1600 -H 2560 -d 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			out := cmd.OutOrStdout()

			opts, err := flags.options(logger)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			if all {
				return resolveAllPresets(cmd, runner, opts, jobs, asJSON)
			}

			prog := newProgress(logger)
			res, err := runner.ResolveWithCacheInfo(ctx, opts)
			if err != nil {
				return err
			}
			prog.done("Resolved " + opts.String())

			if asJSON {
				return writeJSON(out, res)
			}
			fmt.Fprintln(out, renderProfile(res.Profile))
			printDetail(out, "%s · %s", res.Key, cacheStatus(res.CacheInfo.Hit))
			return nil
		},
	}

	flags.register(cmd, true)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the profile as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the profile cache")
	cmd.Flags().BoolVar(&all, "all", false, "resolve every built-in grid preset for the device")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", pipeline.DefaultConcurrency, "concurrent resolutions with --all")

	return cmd
}

// resolveAllPresets resolves every preset for the device in opts and prints
// a comparison table.
func resolveAllPresets(cmd *cobra.Command, runner *pipeline.Runner, base pipeline.Options, jobs int, asJSON bool) error {
	ctx := cmd.Context()
	names := grid.PresetNames()
	batch := make([]pipeline.Options, len(names))
	for i, name := range names {
		o := base
		o.Preset = name
		o.Spec = nil
		batch[i] = o
	}

	spin := newSpinnerWithContext(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Resolving %d grids", len(batch)))
	spin.Start()
	results, err := runner.ResolveAll(ctx, batch, jobs)
	if err != nil {
		spin.StopWithError("Resolution failed")
		return err
	}
	spin.Stop()

	out := cmd.OutOrStdout()
	if asJSON {
		return writeJSON(out, results)
	}

	rows := make([][]string, len(results))
	for i, res := range results {
		p := res.Profile
		rows[i] = []string{
			names[i],
			p.Class.String(),
			px(p.IconSizePx),
			fmt.Sprintf("%dx%d", p.CellWidthPx, p.CellHeightPx),
			p.CellSize().String(),
			px(p.HotseatBarSizePx),
			yesNo(p.LabelsHidden),
			cacheStatus(res.CacheInfo.Hit),
		}
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Grid", "Class", "Icon", "Cell", "Slot", "Dock", "Labels hidden", "Cache"}, rows))
	printSuccess(out, "Resolved %d grids for %s", len(results), base.String())
	return nil
}
