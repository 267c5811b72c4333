package grid

import (
	"github.com/matzehuels/gridfit/pkg/errors"
)

// InvariantSpec is the fixed logical shape of the home-screen grid.
type InvariantSpec struct {
	Name string `json:"name,omitempty" toml:"name" yaml:"name"`

	Columns int `json:"columns" toml:"columns" yaml:"columns"`
	Rows    int `json:"rows" toml:"rows" yaml:"rows"`

	IconSizeDp          float64 `json:"icon_size_dp" toml:"icon_size_dp" yaml:"icon_size_dp"`
	LandscapeIconSizeDp float64 `json:"landscape_icon_size_dp" toml:"landscape_icon_size_dp" yaml:"landscape_icon_size_dp"`
	IconTextSizeSp      float64 `json:"icon_text_size_sp" toml:"icon_text_size_sp" yaml:"icon_text_size_sp"`
	AllAppsIconSizeDp   float64 `json:"all_apps_icon_size_dp" toml:"all_apps_icon_size_dp" yaml:"all_apps_icon_size_dp"`

	HotseatIconCount int `json:"hotseat_icon_count" toml:"hotseat_icon_count" yaml:"hotseat_icon_count"`
	FolderRows       int `json:"folder_rows" toml:"folder_rows" yaml:"folder_rows"`
	FolderColumns    int `json:"folder_columns" toml:"folder_columns" yaml:"folder_columns"`
}

// Validate checks every count and size. Counts must be > 0 and sizes must be
// finite and > 0.
func (s InvariantSpec) Validate() error {
	counts := []struct {
		field string
		n     int
	}{
		{"columns", s.Columns},
		{"rows", s.Rows},
		{"hotseat_icon_count", s.HotseatIconCount},
		{"folder_rows", s.FolderRows},
		{"folder_columns", s.FolderColumns},
	}
	for _, c := range counts {
		if err := errors.ValidateGridCount(c.field, c.n); err != nil {
			return err
		}
	}

	sizes := []struct {
		field string
		v     float64
	}{
		{"icon_size_dp", s.IconSizeDp},
		{"landscape_icon_size_dp", s.LandscapeIconSizeDp},
		{"icon_text_size_sp", s.IconTextSizeSp},
		{"all_apps_icon_size_dp", s.AllAppsIconSizeDp},
	}
	for _, sz := range sizes {
		if err := errors.ValidateDimension(sz.field, sz.v); err != nil {
			return err
		}
	}
	return nil
}

// WithDefaults fills optional sizes from their base counterparts: the
// landscape and all-apps icon sizes fall back to IconSizeDp. Counts are never
// defaulted, so a missing count still fails Validate.
func (s InvariantSpec) WithDefaults() InvariantSpec {
	if s.LandscapeIconSizeDp == 0 {
		s.LandscapeIconSizeDp = s.IconSizeDp
	}
	if s.AllAppsIconSizeDp == 0 {
		s.AllAppsIconSizeDp = s.IconSizeDp
	}
	return s
}
