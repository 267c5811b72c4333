package prefs

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Key identifies one watched preference.
type Key int

const (
	KeyDockHidden Key = iota
	KeyDockRows
	KeyDockScale
	KeyFullWidthWidgets
	KeyHomeLabelRows
	KeyDrawerLabelRows
	KeyUseCustomDockOpacity
	KeyDrawerPaddingScale
)

var keyNames = [...]string{
	KeyDockHidden:           "dock_hidden",
	KeyDockRows:             "dock_rows",
	KeyDockScale:            "dock_scale",
	KeyFullWidthWidgets:     "full_width_widgets",
	KeyHomeLabelRows:        "home_label_rows",
	KeyDrawerLabelRows:      "drawer_label_rows",
	KeyUseCustomDockOpacity: "use_custom_dock_opacity",
	KeyDrawerPaddingScale:   "drawer_padding_scale",
}

// WatchedKeys returns every key that influences the layout, in a stable order.
func WatchedKeys() []Key {
	keys := make([]Key, len(keyNames))
	for i := range keyNames {
		keys[i] = Key(i)
	}
	return keys
}

// String returns the key's file and flag name, e.g. "dock_scale".
func (k Key) String() string {
	if k < 0 || int(k) >= len(keyNames) {
		return fmt.Sprintf("Key(%d)", int(k))
	}
	return keyNames[k]
}

// ParseKey resolves a key by name. Dashes are accepted in place of
// underscores.
func ParseKey(name string) (Key, bool) {
	name = strings.ReplaceAll(strings.ToLower(name), "-", "_")
	for i, n := range keyNames {
		if n == name {
			return Key(i), true
		}
	}
	return 0, false
}

// Config is one snapshot of the layout preferences.
type Config struct {
	DockHidden           bool    `mapstructure:"dock_hidden" json:"dock_hidden"`
	DockRows             int     `mapstructure:"dock_rows" json:"dock_rows"`
	DockScale            float64 `mapstructure:"dock_scale" json:"dock_scale"`
	FullWidthWidgets     bool    `mapstructure:"full_width_widgets" json:"full_width_widgets"`
	HomeLabelRows        int     `mapstructure:"home_label_rows" json:"home_label_rows"`
	DrawerLabelRows      int     `mapstructure:"drawer_label_rows" json:"drawer_label_rows"`
	UseCustomDockOpacity bool    `mapstructure:"use_custom_dock_opacity" json:"use_custom_dock_opacity"`
	DrawerPaddingScale   float64 `mapstructure:"drawer_padding_scale" json:"drawer_padding_scale"`
}

// Default returns the preferences of a fresh install: a visible single-row
// dock at full scale with one label row everywhere.
func Default() Config {
	return Config{
		DockRows:           1,
		DockScale:          1,
		HomeLabelRows:      1,
		DrawerLabelRows:    1,
		DrawerPaddingScale: 1,
	}
}

// Normalize clamps every field into its legal range: DockRows ≥ 1,
// DockScale in (0, 1], label rows ≥ 0 and DrawerPaddingScale ≥ 0. Values
// that are not finite fall back to their defaults.
func (c Config) Normalize() Config {
	d := Default()
	if c.DockRows < 1 {
		c.DockRows = d.DockRows
	}
	if math.IsNaN(c.DockScale) || math.IsInf(c.DockScale, 0) || c.DockScale <= 0 {
		c.DockScale = d.DockScale
	}
	c.DockScale = min(c.DockScale, 1)
	c.HomeLabelRows = max(c.HomeLabelRows, 0)
	c.DrawerLabelRows = max(c.DrawerLabelRows, 0)
	if math.IsNaN(c.DrawerPaddingScale) || math.IsInf(c.DrawerPaddingScale, 0) {
		c.DrawerPaddingScale = d.DrawerPaddingScale
	}
	c.DrawerPaddingScale = max(c.DrawerPaddingScale, 0)
	return c
}

// Diff returns the keys whose values differ between c and other, in
// WatchedKeys order.
func (c Config) Diff(other Config) []Key {
	var keys []Key
	for _, k := range WatchedKeys() {
		if c.Value(k) != other.Value(k) {
			keys = append(keys, k)
		}
	}
	return keys
}

// Value returns the value stored under k.
func (c Config) Value(k Key) any {
	switch k {
	case KeyDockHidden:
		return c.DockHidden
	case KeyDockRows:
		return c.DockRows
	case KeyDockScale:
		return c.DockScale
	case KeyFullWidthWidgets:
		return c.FullWidthWidgets
	case KeyHomeLabelRows:
		return c.HomeLabelRows
	case KeyDrawerLabelRows:
		return c.DrawerLabelRows
	case KeyUseCustomDockOpacity:
		return c.UseCustomDockOpacity
	case KeyDrawerPaddingScale:
		return c.DrawerPaddingScale
	default:
		return nil
	}
}

// With returns a copy of c with k set from its textual form. The result is
// not normalized.
func (c Config) With(k Key, raw string) (Config, error) {
	raw = strings.TrimSpace(raw)
	var err error
	switch k {
	case KeyDockHidden:
		c.DockHidden, err = strconv.ParseBool(raw)
	case KeyDockRows:
		c.DockRows, err = strconv.Atoi(raw)
	case KeyDockScale:
		c.DockScale, err = strconv.ParseFloat(raw, 64)
	case KeyFullWidthWidgets:
		c.FullWidthWidgets, err = strconv.ParseBool(raw)
	case KeyHomeLabelRows:
		c.HomeLabelRows, err = strconv.Atoi(raw)
	case KeyDrawerLabelRows:
		c.DrawerLabelRows, err = strconv.Atoi(raw)
	case KeyUseCustomDockOpacity:
		c.UseCustomDockOpacity, err = strconv.ParseBool(raw)
	case KeyDrawerPaddingScale:
		c.DrawerPaddingScale, err = strconv.ParseFloat(raw, 64)
	default:
		return c, fmt.Errorf("unknown preference %v", k)
	}
	if err != nil {
		return c, fmt.Errorf("%s: %w", k, err)
	}
	return c, nil
}

// ParseAssignments applies "key=value" pairs to c in order and normalizes the
// result.
func (c Config) ParseAssignments(pairs []string) (Config, error) {
	for _, p := range pairs {
		name, raw, ok := strings.Cut(p, "=")
		if !ok {
			return c, fmt.Errorf("invalid preference %q (expected key=value)", p)
		}
		k, ok := ParseKey(strings.TrimSpace(name))
		if !ok {
			return c, fmt.Errorf("unknown preference %q", name)
		}
		var err error
		if c, err = c.With(k, raw); err != nil {
			return c, err
		}
	}
	return c.Normalize(), nil
}
