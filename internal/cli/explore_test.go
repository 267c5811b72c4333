package cli

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/gridfit/pkg/geom"
	"github.com/matzehuels/gridfit/pkg/grid"
	"github.com/matzehuels/gridfit/pkg/metrics"
	"github.com/matzehuels/gridfit/pkg/prefs"
	"github.com/matzehuels/gridfit/pkg/profile"
)

func newTestResolver(t *testing.T) (*profile.Resolver, *prefs.Store) {
	t.Helper()
	spec, err := grid.Preset("5x5")
	if err != nil {
		t.Fatal(err)
	}
	m, err := metrics.New(2, metrics.Window{Width: 1080, Height: 1920}, metrics.Rotation0)
	if err != nil {
		t.Fatal(err)
	}
	store := prefs.NewStore(prefs.Default())
	r, err := profile.New(spec, m, store)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = r.Close() })
	return r, store
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m ExploreModel, keys ...string) ExploreModel {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(ExploreModel)
	}
	return m
}

func TestExploreModelKeys(t *testing.T) {
	tests := []struct {
		name  string
		keys  []string
		check func(t *testing.T, m ExploreModel)
	}{
		{"hide dock", []string{"d"}, func(t *testing.T, m ExploreModel) {
			if m.profile.HotseatBarSizePx != 0 {
				t.Errorf("hotseat = %d, want 0", m.profile.HotseatBarSizePx)
			}
			if m.status != "dock_hidden = true" {
				t.Errorf("status = %q", m.status)
			}
		}},
		{"hide and show dock", []string{"d", "d"}, func(t *testing.T, m ExploreModel) {
			if m.profile.HotseatBarSizePx != 148 {
				t.Errorf("hotseat = %d, want 148", m.profile.HotseatBarSizePx)
			}
		}},
		{"add dock row", []string{"+"}, func(t *testing.T, m ExploreModel) {
			if m.profile.HotseatBarSizePx != 260 {
				t.Errorf("hotseat = %d, want 260", m.profile.HotseatBarSizePx)
			}
		}},
		{"dock rows stay positive", []string{"-", "-"}, func(t *testing.T, m ExploreModel) {
			if got := m.store.Snapshot().DockRows; got != 1 {
				t.Errorf("dock rows = %d, want 1", got)
			}
		}},
		{"dock scale cycles", []string{"s"}, func(t *testing.T, m ExploreModel) {
			if got := m.store.Snapshot().DockScale; got != 0.9 {
				t.Errorf("dock scale = %g, want 0.9", got)
			}
		}},
		{"label rows cycle", []string{"l", "l"}, func(t *testing.T, m ExploreModel) {
			if got := m.store.Snapshot().HomeLabelRows; got != 0 {
				t.Errorf("home label rows = %d, want 0", got)
			}
		}},
		{"full width widgets", []string{"w"}, func(t *testing.T, m ExploreModel) {
			if !m.store.Snapshot().FullWidthWidgets {
				t.Error("full width widgets not set")
			}
		}},
		{"custom opacity", []string{"o"}, func(t *testing.T, m ExploreModel) {
			if !m.store.Snapshot().UseCustomDockOpacity {
				t.Error("custom dock opacity not set")
			}
		}},
		{"rotate", []string{"r"}, func(t *testing.T, m ExploreModel) {
			if !m.profile.Landscape {
				t.Error("profile not landscape after rotating")
			}
			if got := m.resolver.Metrics().Rotation; got != metrics.Rotation90 {
				t.Errorf("rotation = %v, want 90°", got)
			}
		}},
		{"rotate back", []string{"r", "r"}, func(t *testing.T, m ExploreModel) {
			if m.profile.Landscape {
				t.Error("profile landscape after two rotations")
			}
		}},
		{"insets", []string{"i"}, func(t *testing.T, m ExploreModel) {
			if m.insets != geom.R(0, 48, 0, 96) {
				t.Errorf("insets = %v", m.insets)
			}
			if got := m.profile.HotseatPadding.Bottom; got != 20+96 {
				t.Errorf("hotseat padding bottom = %d, want 116", got)
			}
		}},
		{"insets toggle off", []string{"i", "i"}, func(t *testing.T, m ExploreModel) {
			if m.insets != (geom.Rect{}) {
				t.Errorf("insets = %v, want none", m.insets)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, store := newTestResolver(t)
			m := press(newExploreModel(r, store, make(layoutFeed, 1)), tt.keys...)
			if m.err != nil {
				t.Fatalf("err = %v", m.err)
			}
			if m.profile.Generation != r.Generation() {
				t.Errorf("model generation %d, resolver %d", m.profile.Generation, r.Generation())
			}
			tt.check(t, m)
		})
	}
}

func TestExploreModelQuit(t *testing.T) {
	r, store := newTestResolver(t)
	m := newExploreModel(r, store, make(layoutFeed, 1))

	for _, msg := range []tea.KeyMsg{key("q"), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Fatalf("%s: no command", msg)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: command is not quit", msg)
		}
	}
}

func TestExploreModelLayoutFeed(t *testing.T) {
	r, store := newTestResolver(t)
	feed := make(layoutFeed, 1)
	r.AddListener(feed)
	m := newExploreModel(r, store, feed)

	if err := store.Set(prefs.KeyDockRows, "2"); err != nil {
		t.Fatal(err)
	}
	if err := store.Set(prefs.KeyDockHidden, "true"); err != nil {
		t.Fatal(err)
	}

	msg := m.Init()()
	lm, ok := msg.(layoutMsg)
	if !ok {
		t.Fatalf("Init command returned %T", msg)
	}
	if lm.profile.Generation != r.Generation() {
		t.Errorf("feed delivered generation %d, want latest %d", lm.profile.Generation, r.Generation())
	}

	next, cmd := m.Update(lm)
	m = next.(ExploreModel)
	if cmd == nil {
		t.Error("layout message should re-arm the feed")
	}
	if m.profile.HotseatBarSizePx != 0 {
		t.Errorf("hotseat = %d, want 0", m.profile.HotseatBarSizePx)
	}

	stale := &profile.Profile{Generation: 1}
	next, _ = m.Update(layoutMsg{profile: stale})
	if next.(ExploreModel).profile == stale {
		t.Error("stale profile replaced a newer one")
	}
}

func TestExploreModelView(t *testing.T) {
	r, store := newTestResolver(t)
	m := press(newExploreModel(r, store, make(layoutFeed, 1)), "d")

	view := m.View()
	for _, want := range []string{"Layout Explorer", "dock_hidden = true", "q quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSchematic(t *testing.T) {
	tests := []struct {
		name     string
		p        profile.Profile
		wantDock int
		wantRows int
	}{
		{"bottom dock", profile.Profile{Columns: 5, Rows: 5, HotseatIconCount: 5, HotseatBarSizePx: 148}, 5, 7},
		{"hidden dock", profile.Profile{Columns: 5, Rows: 5, HotseatIconCount: 5}, 0, 5},
		{"vertical bar", profile.Profile{Columns: 5, Rows: 5, HotseatIconCount: 5, HotseatBarSizePx: 148, VerticalBar: true}, 5, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := schematic(&tt.p)
			if n := strings.Count(got, "■"); n != tt.wantDock {
				t.Errorf("dock icons = %d, want %d\n%s", n, tt.wantDock, got)
			}
			if n := strings.Count(got, "\n") + 1; n != tt.wantRows {
				t.Errorf("lines = %d, want %d\n%s", n, tt.wantRows, got)
			}
		})
	}
}

func TestLayoutPrinter(t *testing.T) {
	r, store := newTestResolver(t)
	var buf bytes.Buffer
	printer := &layoutPrinter{w: &buf}
	printer.OnLayoutChanged(r.Profile())
	r.AddListener(printer)

	if err := store.Set(prefs.KeyDockRows, "2"); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.Contains(out, "gen 1") || !strings.Contains(out, "gen 2") {
		t.Errorf("output missing generations:\n%s", out)
	}
	if !strings.Contains(out, "Dock bar size: 148px → 260px") {
		t.Errorf("output missing dock diff:\n%s", out)
	}
}
