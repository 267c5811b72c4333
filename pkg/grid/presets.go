package grid

import (
	"slices"

	"github.com/matzehuels/gridfit/pkg/errors"
)

// DefaultPreset is the preset used when no grid is specified.
const DefaultPreset = "5x5"

var presets = map[string]InvariantSpec{
	"4x4": {
		Name: "4x4", Columns: 4, Rows: 4,
		IconSizeDp: 60, LandscapeIconSizeDp: 60, IconTextSizeSp: 14, AllAppsIconSizeDp: 60,
		HotseatIconCount: 4, FolderRows: 3, FolderColumns: 3,
	},
	"4x5": {
		Name: "4x5", Columns: 4, Rows: 5,
		IconSizeDp: 56, LandscapeIconSizeDp: 56, IconTextSizeSp: 13, AllAppsIconSizeDp: 56,
		HotseatIconCount: 4, FolderRows: 4, FolderColumns: 4,
	},
	"5x5": {
		Name: "5x5", Columns: 5, Rows: 5,
		IconSizeDp: 48, LandscapeIconSizeDp: 48, IconTextSizeSp: 13, AllAppsIconSizeDp: 48,
		HotseatIconCount: 5, FolderRows: 4, FolderColumns: 4,
	},
	"5x6": {
		Name: "5x6", Columns: 5, Rows: 6,
		IconSizeDp: 48, LandscapeIconSizeDp: 48, IconTextSizeSp: 12, AllAppsIconSizeDp: 48,
		HotseatIconCount: 5, FolderRows: 4, FolderColumns: 4,
	},
	"6x6": {
		Name: "6x6", Columns: 6, Rows: 6,
		IconSizeDp: 64, LandscapeIconSizeDp: 64, IconTextSizeSp: 14, AllAppsIconSizeDp: 60,
		HotseatIconCount: 6, FolderRows: 4, FolderColumns: 5,
	},
}

// Preset returns a built-in spec by name.
func Preset(name string) (InvariantSpec, error) {
	s, ok := presets[name]
	if !ok {
		return InvariantSpec{}, errors.New(errors.ErrCodeNotFound, "unknown grid preset %q (available: %v)", name, PresetNames())
	}
	return s, nil
}

// PresetNames returns the names of all built-in specs in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Presets returns all built-in specs sorted by name.
func Presets() []InvariantSpec {
	names := PresetNames()
	out := make([]InvariantSpec, len(names))
	for i, name := range names {
		out[i] = presets[name]
	}
	return out
}
