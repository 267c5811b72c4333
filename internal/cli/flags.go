package cli

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridfit/pkg/errors"
	"github.com/matzehuels/gridfit/pkg/geom"
	"github.com/matzehuels/gridfit/pkg/grid"
	"github.com/matzehuels/gridfit/pkg/pipeline"
	"github.com/matzehuels/gridfit/pkg/prefs"
)

// deviceFlags holds the flags shared by every command that resolves a
// profile: the grid, the display and the preferences.
type deviceFlags struct {
	preset   string
	specFile string
	density  float64
	width    int
	height   int
	rotation int
	insets   string

	prefsFile string
	set       []string
}

// register adds the device flags to cmd. withPrefs controls whether the
// preference flags (--prefs, --set) are offered.
func (f *deviceFlags) register(cmd *cobra.Command, withPrefs bool) {
	fl := cmd.Flags()
	fl.StringVarP(&f.preset, "grid", "g", pipeline.DefaultPreset, "built-in grid preset (see 'gridfit grids')")
	fl.StringVar(&f.specFile, "spec", "", "grid spec file (.toml, .yaml, .yml); overrides --grid")
	fl.Float64VarP(&f.density, "density", "d", pipeline.DefaultDensity, "pixels per dp")
	fl.IntVarP(&f.width, "width", "W", pipeline.DefaultWidth, "window width in pixels")
	fl.IntVarP(&f.height, "height", "H", pipeline.DefaultHeight, "window height in pixels")
	fl.IntVarP(&f.rotation, "rotation", "r", 0, "display rotation in degrees (0, 90, 180, 270)")
	fl.StringVar(&f.insets, "insets", "", "system insets in pixels as left,top,right,bottom")

	_ = cmd.RegisterFlagCompletionFunc("grid", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return grid.PresetNames(), cobra.ShellCompDirectiveNoFileComp
	})

	if withPrefs {
		fl.StringVarP(&f.prefsFile, "prefs", "p", "", "preference file (.toml, .yaml)")
		fl.StringArrayVarP(&f.set, "set", "s", nil, "override a preference as key=value (repeatable)")
	}
}

// options builds pipeline options from the flags.
func (f *deviceFlags) options(logger *log.Logger) (pipeline.Options, error) {
	opts := pipeline.Options{
		Preset:   f.preset,
		Density:  f.density,
		Width:    f.width,
		Height:   f.height,
		Rotation: f.rotation,
		Logger:   logger,
	}
	if f.specFile != "" {
		spec, err := grid.LoadFile(f.specFile)
		if err != nil {
			return opts, err
		}
		opts.Spec = &spec
		opts.Preset = ""
	}

	insets, err := parseInsets(f.insets)
	if err != nil {
		return opts, err
	}
	opts.Insets = insets

	cfg, err := f.config(logger)
	if err != nil {
		return opts, err
	}
	opts.Prefs = &cfg
	return opts, nil
}

// config reads the preference file, if any, and applies --set overrides.
func (f *deviceFlags) config(logger *log.Logger) (prefs.Config, error) {
	cfg := prefs.Default()
	if f.prefsFile != "" {
		var err error
		cfg, err = prefs.NewFileSource(f.prefsFile, prefs.NewStore(cfg), logger).Load()
		if err != nil {
			return cfg, err
		}
	}
	cfg, err := cfg.ParseAssignments(f.set)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "--set")
	}
	return cfg, nil
}

// parseInsets parses "left,top,right,bottom". An empty string is no insets.
func parseInsets(s string) (geom.Rect, error) {
	if strings.TrimSpace(s) == "" {
		return geom.Rect{}, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geom.Rect{}, errors.New(errors.ErrCodeInvalidInput, "insets %q: expected left,top,right,bottom", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return geom.Rect{}, errors.New(errors.ErrCodeInvalidInput, "insets %q: %q is not a non-negative integer", s, p)
		}
		v[i] = n
	}
	return geom.R(v[0], v[1], v[2], v[3]), nil
}

// parseSize parses "WIDTHxHEIGHT".
func parseSize(s string) (geom.Point, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return geom.Point{}, errors.New(errors.ErrCodeInvalidInput, "size %q: expected WIDTHxHEIGHT", s)
	}
	x, errX := strconv.Atoi(w)
	y, errY := strconv.Atoi(h)
	if errX != nil || errY != nil || x <= 0 || y <= 0 {
		return geom.Point{}, errors.New(errors.ErrCodeInvalidInput, "size %q: expected positive WIDTHxHEIGHT", s)
	}
	return geom.Pt(x, y), nil
}
