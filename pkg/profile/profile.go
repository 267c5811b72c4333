package profile

import (
	"github.com/matzehuels/gridfit/pkg/device"
	"github.com/matzehuels/gridfit/pkg/geom"
)

// Container selects the cell geometry a caller is laying out.
type Container int

const (
	Workspace Container = iota
	Folder
	Hotseat
)

// String returns the container name.
func (c Container) String() string {
	switch c {
	case Workspace:
		return "workspace"
	case Folder:
		return "folder"
	case Hotseat:
		return "hotseat"
	default:
		return "unknown"
	}
}

// ParseContainer maps a name to a Container.
func ParseContainer(name string) (Container, bool) {
	switch name {
	case "workspace":
		return Workspace, true
	case "folder":
		return Folder, true
	case "hotseat":
		return Hotseat, true
	default:
		return Workspace, false
	}
}

// Profile is one resolved layout. All sizes are in device pixels.
type Profile struct {
	// Generation is assigned by the owning Resolver and increases with every
	// recomputation. Profiles built outside a Resolver have generation 0.
	Generation uint64 `json:"generation"`

	Class            device.Class `json:"class"`
	Columns          int          `json:"columns"`
	Rows             int          `json:"rows"`
	HotseatIconCount int          `json:"hotseat_icon_count"`
	FolderRows       int          `json:"folder_rows"`
	FolderColumns    int          `json:"folder_columns"`

	Landscape   bool `json:"landscape"`
	MultiWindow bool `json:"multi_window"`
	VerticalBar bool `json:"vertical_bar"`
	Seascape    bool `json:"seascape"`
	Tall        bool `json:"tall"`

	WidthPx           int `json:"width_px"`
	HeightPx          int `json:"height_px"`
	AvailableWidthPx  int `json:"available_width_px"`
	AvailableHeightPx int `json:"available_height_px"`

	EdgeMarginPx              int `json:"edge_margin_px"`
	DesiredWorkspaceMarginPx  int `json:"desired_workspace_margin_px"`
	CellLayoutPaddingPx       int `json:"cell_layout_padding_px"`
	CellLayoutBottomPaddingPx int `json:"cell_layout_bottom_padding_px"`
	WorkspaceTopPaddingPx     int `json:"workspace_top_padding_px"`
	PageSpacingPx             int `json:"page_spacing_px"`
	WorkspaceCellPaddingXPx   int `json:"workspace_cell_padding_x_px"`
	DropTargetBarSizePx       int `json:"drop_target_bar_size_px"`
	SpringLoadedBottomSpacePx int `json:"spring_loaded_bottom_space_px"`

	VerticalDragHandleSizePx    int `json:"vertical_drag_handle_size_px"`
	VerticalDragHandleOverlapPx int `json:"vertical_drag_handle_overlap_px"`

	IconSizePx                    int  `json:"icon_size_px"`
	IconSizeOriginalPx            int  `json:"icon_size_original_px"`
	IconTextSizePx                int  `json:"icon_text_size_px"`
	IconDrawablePaddingPx         int  `json:"icon_drawable_padding_px"`
	IconDrawablePaddingOriginalPx int  `json:"icon_drawable_padding_original_px"`
	CellWidthPx                   int  `json:"cell_width_px"`
	CellHeightPx                  int  `json:"cell_height_px"`
	LabelsHidden                  bool `json:"labels_hidden"`

	// WorkspaceScale is the icon scale applied by the overflow check; 1 when
	// the grid fit at its natural size.
	WorkspaceScale float64 `json:"workspace_scale"`

	FolderIconSizePx             int `json:"folder_icon_size_px"`
	FolderIconOffsetYPx          int `json:"folder_icon_offset_y_px"`
	FolderCellWidthPx            int `json:"folder_cell_width_px"`
	FolderCellHeightPx           int `json:"folder_cell_height_px"`
	FolderChildIconSizePx        int `json:"folder_child_icon_size_px"`
	FolderChildTextSizePx        int `json:"folder_child_text_size_px"`
	FolderChildDrawablePaddingPx int `json:"folder_child_drawable_padding_px"`

	HotseatCellHeightPx       int `json:"hotseat_cell_height_px"`
	HotseatBarSizePx          int `json:"hotseat_bar_size_px"`
	HotseatSidePaddingStartPx int `json:"hotseat_side_padding_start_px"`
	HotseatSidePaddingEndPx   int `json:"hotseat_side_padding_end_px"`
	HotseatTopPaddingPx       int `json:"hotseat_top_padding_px"`
	HotseatBottomPaddingPx    int `json:"hotseat_bottom_padding_px"`

	AllAppsCellHeightPx          int `json:"all_apps_cell_height_px"`
	AllAppsIconSizePx            int `json:"all_apps_icon_size_px"`
	AllAppsIconDrawablePaddingPx int `json:"all_apps_icon_drawable_padding_px"`
	AllAppsIconTextSizePx        int `json:"all_apps_icon_text_size_px"`
	AllAppsButtonVisualSizePx    int `json:"all_apps_button_visual_size_px"`
	AllAppsNumCols               int `json:"all_apps_num_cols"`
	AllAppsNumPredictiveCols     int `json:"all_apps_num_predictive_cols"`

	AppWidgetScale                  geom.PointF `json:"app_widget_scale"`
	WorkspaceSpringLoadShrinkFactor float64     `json:"workspace_spring_load_shrink_factor"`
	FadeAdjacentScreens             bool        `json:"fade_adjacent_screens"`

	Insets           geom.Rect `json:"insets"`
	WorkspacePadding geom.Rect `json:"workspace_padding"`
	HotseatPadding   geom.Rect `json:"hotseat_padding"`
	OpenFolderBounds geom.Rect `json:"open_folder_bounds"`
}

// Available returns the usable area.
func (p *Profile) Available() geom.Point {
	return geom.Pt(p.AvailableWidthPx, p.AvailableHeightPx)
}

// TotalWorkspacePadding returns the combined horizontal and vertical
// workspace padding.
func (p *Profile) TotalWorkspacePadding() geom.Point {
	return p.WorkspacePadding.Total()
}

// CellSize returns the size of one workspace cell: the available area minus
// workspace and cell-layout padding, divided by the grid dimensions.
func (p *Profile) CellSize() geom.Point {
	return cellSize(p, p.WorkspacePadding.Total())
}

func cellSize(p *Profile, padding geom.Point) geom.Point {
	if p.Columns <= 0 || p.Rows <= 0 {
		return geom.Point{}
	}
	w := p.AvailableWidthPx - padding.X - 2*p.CellLayoutPaddingPx
	h := p.AvailableHeightPx - padding.Y - p.CellLayoutBottomPaddingPx
	return geom.Pt(w/p.Columns, h/p.Rows).Clamp0()
}

// CellSizeFor returns the cell size for a container.
func (p *Profile) CellSizeFor(c Container) geom.Point {
	switch c {
	case Folder:
		return geom.Pt(p.FolderCellWidthPx, p.FolderCellHeightPx)
	case Hotseat:
		return geom.Pt(p.CellSize().X, p.HotseatCellHeightPx)
	default:
		return p.CellSize()
	}
}

// CellHeight returns the content height of one cell in a container.
func (p *Profile) CellHeight(c Container) int {
	switch c {
	case Workspace:
		return p.CellHeightPx
	case Folder:
		return p.FolderCellHeightPx
	case Hotseat:
		return p.HotseatCellHeightPx
	default:
		return 0
	}
}

// HotseatLayoutPadding returns the padding inside the hotseat bar.
func (p *Profile) HotseatLayoutPadding() geom.Rect { return p.HotseatPadding }

// AbsoluteOpenFolderBounds returns the rectangle an open folder must stay
// within.
func (p *Profile) AbsoluteOpenFolderBounds() geom.Rect { return p.OpenFolderBounds }
