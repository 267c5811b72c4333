package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridfit/pkg/geom"
	"github.com/matzehuels/gridfit/pkg/metrics"
	"github.com/matzehuels/gridfit/pkg/prefs"
	"github.com/matzehuels/gridfit/pkg/profile"
)

var (
	dockScaleSteps = []float64{1, 0.9, 0.8, 0.7}
	labelRowSteps  = []int{1, 2, 0}

	schematicIcon = lipgloss.NewStyle().Foreground(colorGray)
	schematicDock = lipgloss.NewStyle().Foreground(colorCyan)
)

// =============================================================================
// layoutFeed - Resolver listener feeding the UI
// =============================================================================

// layoutFeed forwards resolved profiles to the UI. Only the latest profile is
// kept when the UI falls behind.
type layoutFeed chan *profile.Profile

func (f layoutFeed) OnLayoutChanged(p *profile.Profile) {
	select {
	case <-f:
	default:
	}
	select {
	case f <- p:
	default:
	}
}

type layoutMsg struct{ profile *profile.Profile }

func waitForLayout(f layoutFeed) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-f
		if !ok {
			return nil
		}
		return layoutMsg{profile: p}
	}
}

// =============================================================================
// ExploreModel
// =============================================================================

// ExploreModel is the bubbletea model of the explore command. Keys edit the
// preferences and device state of a live resolver.
type ExploreModel struct {
	resolver *profile.Resolver
	store    *prefs.Store
	feed     layoutFeed

	profile *profile.Profile
	insets  geom.Rect
	status  string
	err     error
}

// newExploreModel wraps r. Profiles delivered to feed are picked up as they
// arrive.
func newExploreModel(r *profile.Resolver, store *prefs.Store, feed layoutFeed) ExploreModel {
	return ExploreModel{
		resolver: r,
		store:    store,
		feed:     feed,
		profile:  r.Profile(),
		insets:   r.Insets(),
	}
}

func (m ExploreModel) Init() tea.Cmd {
	return waitForLayout(m.feed)
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case layoutMsg:
		if msg.profile.Generation >= m.profile.Generation {
			m.profile = msg.profile
		}
		return m, waitForLayout(m.feed)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "d":
			m.set(prefs.KeyDockHidden, strconv.FormatBool(!m.cfg().DockHidden))
		case "+":
			m.set(prefs.KeyDockRows, strconv.Itoa(m.cfg().DockRows+1))
		case "-":
			m.set(prefs.KeyDockRows, strconv.Itoa(m.cfg().DockRows-1))
		case "s":
			next := nextFloat(dockScaleSteps, m.cfg().DockScale)
			m.set(prefs.KeyDockScale, strconv.FormatFloat(next, 'f', -1, 64))
		case "w":
			m.set(prefs.KeyFullWidthWidgets, strconv.FormatBool(!m.cfg().FullWidthWidgets))
		case "l":
			m.set(prefs.KeyHomeLabelRows, strconv.Itoa(nextInt(labelRowSteps, m.cfg().HomeLabelRows)))
		case "o":
			m.set(prefs.KeyUseCustomDockOpacity, strconv.FormatBool(!m.cfg().UseCustomDockOpacity))
		case "r":
			m.rotate()
		case "i":
			m.toggleInsets()
		}
		m.refresh()
	}
	return m, nil
}

func (m *ExploreModel) cfg() prefs.Config { return m.store.Snapshot() }

func (m *ExploreModel) set(k prefs.Key, raw string) {
	if err := m.store.Set(k, raw); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.status = fmt.Sprintf("%s = %v", k, m.store.Snapshot().Value(k))
}

func (m *ExploreModel) rotate() {
	cur := m.resolver.Metrics()
	next := metrics.Rotation((int(cur.Rotation) + 1) % 4)
	landscape := next == metrics.Rotation90 || next == metrics.Rotation270
	if err := m.resolver.UpdateMetrics(cur.ForOrientation(landscape).WithRotation(next)); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.status = "rotation " + next.String()
}

// toggleInsets switches between no insets and a status bar plus gesture
// navigation bar.
func (m *ExploreModel) toggleInsets() {
	if m.insets == (geom.Rect{}) {
		s := m.resolver.Metrics()
		m.insets = geom.R(0, s.PxFromDp(24), 0, s.PxFromDp(48))
	} else {
		m.insets = geom.Rect{}
	}
	m.resolver.UpdateInsets(m.insets)
	m.err = nil
	m.status = "insets " + m.insets.String()
}

func (m *ExploreModel) refresh() {
	if p := m.resolver.Profile(); p.Generation >= m.profile.Generation {
		m.profile = p
	}
}

func nextFloat(steps []float64, cur float64) float64 {
	for i, s := range steps {
		if s == cur {
			return steps[(i+1)%len(steps)]
		}
	}
	return steps[0]
}

func nextInt(steps []int, cur int) int {
	for i, s := range steps {
		if s == cur {
			return steps[(i+1)%len(steps)]
		}
	}
	return steps[0]
}

func (m ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Layout Explorer"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("generation %d  •  %s", m.profile.Generation, summaryLine(m.profile))))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		renderProfile(m.profile),
		"  ",
		schematic(m.profile),
	))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(styleIconError.Render("✗ " + m.err.Error()))
	case m.status != "":
		b.WriteString(StyleSuccess.Render("✓ " + m.status))
	}
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("d dock  +/- dock rows  s dock scale  w widgets  l labels  o opacity  r rotate  i insets  q quit"))
	b.WriteString("\n")

	return b.String()
}

// schematic draws the workspace grid with the dock below it, or beside it for
// a vertical dock bar.
func schematic(p *profile.Profile) string {
	var rows []string
	cell := "□"
	if !p.LabelsHidden {
		cell = "▣"
	}
	for range p.Rows {
		rows = append(rows, schematicIcon.Render(strings.TrimSpace(strings.Repeat(cell+" ", p.Columns))))
	}

	if p.HotseatBarSizePx == 0 {
		return strings.Join(rows, "\n")
	}
	if p.VerticalBar {
		dock := make([]string, len(rows))
		for i := range dock {
			if i < p.HotseatIconCount {
				dock[i] = schematicDock.Render("■")
			}
		}
		sep := strings.TrimSuffix(strings.Repeat("  \n", len(rows)), "\n")
		if p.Seascape {
			return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(dock, "\n"), sep, strings.Join(rows, "\n"))
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(rows, "\n"), sep, strings.Join(dock, "\n"))
	}
	rows = append(rows, "")
	rows = append(rows, schematicDock.Render(strings.TrimSpace(strings.Repeat("■ ", p.HotseatIconCount))))
	return strings.Join(rows, "\n")
}

// exploreCommand creates the explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	var flags deviceFlags

	cmd := &cobra.Command{
		Use:   "explore [prefs-file]",
		Short: "Interactively explore how preferences change the layout",
		Long: `Open an interactive view of a resolved profile. Keys toggle the dock,
label rows, widget width, rotation and system insets, and the profile is
re-resolved on every change.

When a preference file is given it is loaded first and watched, so edits
made in another editor show up live.`,
		Example: `  gridfit explore
  gridfit explore --grid 6x5 -W 1600 -H 2560 -d 2
  gridfit explore prefs.toml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			logger := loggerFromContext(ctx)

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
			snap, err := opts.Metrics()
			if err != nil {
				return err
			}

			store := prefs.NewStore(opts.Config())
			if len(args) == 1 {
				src := prefs.NewFileSource(args[0], store, logger)
				if _, err := src.Load(); err != nil {
					return err
				}
				go func() { _ = src.Watch(ctx) }()
			}

			r, err := profile.New(spec, snap, store,
				profile.WithLogger(logger),
				profile.WithInsets(opts.Insets))
			if err != nil {
				return err
			}
			defer r.Close()

			feed := make(layoutFeed, 1)
			r.AddListener(feed)
			defer r.RemoveListener(feed)

			p := tea.NewProgram(newExploreModel(r, store, feed),
				tea.WithContext(ctx),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()))
			if _, err := p.Run(); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}

	flags.register(cmd, true)
	return cmd
}
