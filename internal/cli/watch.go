package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridfit/pkg/prefs"
	"github.com/matzehuels/gridfit/pkg/profile"
)

// layoutPrinter prints a summary line for every new profile.
type layoutPrinter struct {
	mu   sync.Mutex
	w    io.Writer
	last *profile.Profile
}

func (l *layoutPrinter) OnLayoutChanged(p *profile.Profile) {
	l.mu.Lock()
	defer l.mu.Unlock()
	printInfo(l.w, "%s", summaryLine(p))
	if l.last != nil {
		for _, d := range profileDiff(l.last, p) {
			printDetail(l.w, "%s", d)
		}
	}
	l.last = p
}

// profileDiff lists the displayed fields that differ between a and b.
func profileDiff(a, b *profile.Profile) []string {
	var out []string
	as, bs := profileSections(a), profileSections(b)
	for i := range as {
		for j := range as[i].rows {
			before, after := as[i].rows[j], bs[i].rows[j]
			if before[1] != after[1] {
				out = append(out, fmt.Sprintf("%s %s: %s → %s", as[i].title, before[0], before[1], after[1]))
			}
		}
	}
	return out
}

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var flags deviceFlags

	cmd := &cobra.Command{
		Use:   "watch <prefs-file>",
		Short: "Re-resolve the layout whenever a preference file changes",
		Long: `Load layout preferences from a TOML or YAML file and keep a resolver
subscribed to them. Every saved change that affects the layout is resolved
and printed with the fields that changed. Stop with Ctrl-C.`,
		Example: `  gridfit watch prefs.toml
  gridfit watch prefs.yaml --grid 4x5 -W 1080 -H 2400 -d 2.75`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			out := cmd.OutOrStdout()

			opts, err := flags.options(logger)
			if err != nil {
				return err
			}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			spec, err := opts.GridSpec()
			if err != nil {
				return err
			}
			m, err := opts.Metrics()
			if err != nil {
				return err
			}

			store := prefs.NewStore(prefs.Default())
			src := prefs.NewFileSource(args[0], store, logger)
			if _, err := src.Load(); err != nil {
				return err
			}

			r, err := profile.New(spec, m, store,
				profile.WithLogger(logger),
				profile.WithInsets(opts.Insets))
			if err != nil {
				return err
			}
			defer r.Close()

			printer := &layoutPrinter{w: out}
			printer.OnLayoutChanged(r.Profile())
			r.AddListener(printer)

			printDetail(out, "watching %s (Ctrl-C to stop)", src.Path())
			return src.Watch(ctx)
		},
	}

	flags.register(cmd, false)
	return cmd
}
