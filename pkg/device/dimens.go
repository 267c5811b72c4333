package device

// Dimens holds the fixed, density-independent dimensions that shape the
// layout on a given class of device. Lengths are in dp unless the name says
// otherwise; text sizes are in sp.
type Dimens struct {
	EdgeMargin              float64 `json:"edge_margin"`
	CellLayoutPadding       float64 `json:"cell_layout_padding"`
	CellLayoutBottomPadding float64 `json:"cell_layout_bottom_padding"`
	WorkspaceTopPadding     float64 `json:"workspace_top_padding"`
	WorkspacePageSpacing    float64 `json:"workspace_page_spacing"`
	WorkspaceCellPaddingX   float64 `json:"workspace_cell_padding_x"`
	IconDrawablePadding     float64 `json:"icon_drawable_padding"`
	DropTargetBarSize       float64 `json:"drop_target_bar_size"`
	SpringLoadedBottomSpace float64 `json:"spring_loaded_bottom_space"`

	VerticalDragHandleSize    float64 `json:"vertical_drag_handle_size"`
	VerticalDragHandleOverlap float64 `json:"vertical_drag_handle_overlap"`

	HotseatSize                 float64 `json:"hotseat_size"`
	HotseatTopPadding           float64 `json:"hotseat_top_padding"`
	HotseatBottomPadding        float64 `json:"hotseat_bottom_padding"`
	HotseatBottomNonTallPadding float64 `json:"hotseat_bottom_non_tall_padding"`
	HotseatSidePadding          float64 `json:"hotseat_side_padding"`

	FolderLabelPaddingTop    float64 `json:"folder_label_padding_top"`
	FolderLabelPaddingBottom float64 `json:"folder_label_padding_bottom"`
	FolderLabelTextSizeSp    float64 `json:"folder_label_text_size_sp"`
	FolderChildTextSizeSp    float64 `json:"folder_child_text_size_sp"`
	FolderCellPaddingX       float64 `json:"folder_cell_padding_x"`
	FolderCellPaddingY       float64 `json:"folder_cell_padding_y"`

	AllAppsButtonScaleDown    float64 `json:"all_apps_button_scale_down"`
	AllAppsButtonPaddingPct   int     `json:"all_apps_button_padding_pct"`
	SpringLoadShrinkPct       int     `json:"spring_load_shrink_pct"`
	TransposeHotseatLandscape bool    `json:"transpose_hotseat_landscape"`
}

// DefaultDimens returns the dimension table for a device class.
func DefaultDimens(c Class) Dimens {
	d := Dimens{
		EdgeMargin:              8,
		CellLayoutPadding:       5.5,
		CellLayoutBottomPadding: 0,
		WorkspaceTopPadding:     8,
		WorkspacePageSpacing:    8,
		WorkspaceCellPaddingX:   8,
		IconDrawablePadding:     8,
		DropTargetBarSize:       48,
		SpringLoadedBottomSpace: 8,

		VerticalDragHandleSize:    24,
		VerticalDragHandleOverlap: 0,

		HotseatSize:                 56,
		HotseatTopPadding:           8,
		HotseatBottomPadding:        2,
		HotseatBottomNonTallPadding: 8,
		HotseatSidePadding:          0,

		FolderLabelPaddingTop:    12,
		FolderLabelPaddingBottom: 12,
		FolderLabelTextSizeSp:    16,
		FolderChildTextSizeSp:    13,
		FolderCellPaddingX:       9,
		FolderCellPaddingY:       6,

		AllAppsButtonScaleDown:    0,
		AllAppsButtonPaddingPct:   18,
		SpringLoadShrinkPct:       80,
		TransposeHotseatLandscape: true,
	}

	switch c {
	case Tablet:
		d.EdgeMargin = 14
		d.HotseatSize = 64
		d.WorkspaceTopPadding = 16
		d.SpringLoadShrinkPct = 90
		d.TransposeHotseatLandscape = false
	case LargeTablet:
		d.EdgeMargin = 24
		d.HotseatSize = 72
		d.WorkspaceTopPadding = 24
		d.FolderCellPaddingX = 12
		d.SpringLoadShrinkPct = 90
		d.TransposeHotseatLandscape = false
	}
	return d
}
