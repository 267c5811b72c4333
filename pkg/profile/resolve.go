package profile

import (
	"math"

	"github.com/matzehuels/gridfit/pkg/device"
	"github.com/matzehuels/gridfit/pkg/errors"
	"github.com/matzehuels/gridfit/pkg/geom"
	"github.com/matzehuels/gridfit/pkg/grid"
	"github.com/matzehuels/gridfit/pkg/metrics"
	"github.com/matzehuels/gridfit/pkg/prefs"
)

const (
	// maxHorizontalPaddingPercent caps the tablet left/right padding, summed
	// over both sides, as a fraction of the screen width.
	maxHorizontalPaddingPercent = 0.14

	// portraitTabletPaddingMultiplier widens the cell-layout padding of
	// tablets in portrait so icons spread evenly.
	portraitTabletPaddingMultiplier = 4

	// maxCircleAreaFactor is the area of the normalized folder circle
	// relative to its bounding icon square.
	maxCircleAreaFactor = 380.0 / 576.0

	// maxDockFloorRounds bounds how often a scaled dock is grown back to its
	// floor and the grid re-fitted around it.
	maxDockFloorRounds = 3
)

// Inputs is everything a single resolution depends on.
type Inputs struct {
	Spec    grid.InvariantSpec
	Metrics metrics.Snapshot
	Config  prefs.Config
	Insets  geom.Rect

	// Dimens overrides the class dimension table. Nil uses
	// device.DefaultDimens for the class of Metrics.
	Dimens *device.Dimens
}

func (in Inputs) normalize() (Inputs, error) {
	in.Spec = in.Spec.WithDefaults()
	if err := in.Spec.Validate(); err != nil {
		return in, err
	}
	if err := errors.ValidateDensity(in.Metrics.Density); err != nil {
		return in, err
	}
	if in.Metrics.AvailableWidthPx < 0 || in.Metrics.AvailableHeightPx < 0 {
		return in, errors.New(errors.ErrCodeInvalidMetrics, "available size must not be negative, got %v", in.Metrics.Available())
	}
	in.Config = in.Config.Normalize()
	return in, nil
}

// Resolve computes a Profile. It is deterministic: identical inputs yield
// identical profiles.
func Resolve(in Inputs) (*Profile, error) {
	b, err := newPass(in)
	if err != nil {
		return nil, err
	}
	b.compute()
	b.finish()
	return b.p, nil
}

// pass carries one resolution. Its profile is mutated step by step and
// handed out only once finish has run.
type pass struct {
	spec grid.InvariantSpec
	m    metrics.Snapshot
	cfg  prefs.Config
	d    device.Dimens
	p    *Profile
}

func newPass(in Inputs) (*pass, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}
	class := in.Metrics.Class()
	d := device.DefaultDimens(class)
	if in.Dimens != nil {
		d = *in.Dimens
	}

	m := in.Metrics
	p := &Profile{
		Class:             class,
		Columns:           in.Spec.Columns,
		Rows:              in.Spec.Rows,
		HotseatIconCount:  in.Spec.HotseatIconCount,
		FolderRows:        in.Spec.FolderRows,
		FolderColumns:     in.Spec.FolderColumns,
		Landscape:         m.Landscape,
		MultiWindow:       m.MultiWindow,
		WidthPx:           m.WidthPx,
		HeightPx:          m.HeightPx,
		AvailableWidthPx:  m.AvailableWidthPx,
		AvailableHeightPx: m.AvailableHeightPx,
		Insets:            in.Insets,
		AppWidgetScale:    geom.PointF{X: 1, Y: 1},
		WorkspaceScale:    1,
	}
	return &pass{spec: in.Spec, m: m, cfg: in.Config, d: d, p: p}, nil
}

func (b *pass) px(dp float64) int { return b.m.PxFromDp(dp) }

// compute runs the ordered passes. Derived geometry that depends on the final
// workspace padding is filled in by finish.
func (b *pass) compute() {
	p, d, m := b.p, b.d, b.m

	// Orientation.
	p.VerticalBar = m.Landscape && d.TransposeHotseatLandscape
	p.Seascape = p.VerticalBar && m.Rotation.IsSeascape()
	p.Tall = m.IsTall()

	// Base paddings.
	p.EdgeMarginPx = b.px(d.EdgeMargin)
	if !p.VerticalBar {
		p.DesiredWorkspaceMarginPx = p.EdgeMarginPx
	}
	mult := 1
	if p.Class.IsTablet() && !m.Landscape && !p.VerticalBar {
		mult = portraitTabletPaddingMultiplier
	}
	p.CellLayoutPaddingPx = mult * b.px(d.CellLayoutPadding)
	if !p.VerticalBar && b.cfg.FullWidthWidgets {
		p.CellLayoutPaddingPx = 0
	}
	p.CellLayoutBottomPaddingPx = b.px(d.CellLayoutBottomPadding)
	p.WorkspaceTopPaddingPx = b.px(d.WorkspaceTopPadding)
	p.PageSpacingPx = b.px(d.WorkspacePageSpacing)
	p.WorkspaceCellPaddingXPx = b.px(d.WorkspaceCellPaddingX)
	p.IconDrawablePaddingOriginalPx = b.px(d.IconDrawablePadding)
	p.DropTargetBarSizePx = b.px(d.DropTargetBarSize)
	p.SpringLoadedBottomSpacePx = b.px(d.SpringLoadedBottomSpace)
	p.VerticalDragHandleOverlapPx = b.px(d.VerticalDragHandleOverlap)

	// Hotseat base size.
	p.HotseatTopPaddingPx = b.px(d.HotseatTopPadding)
	p.HotseatBottomPaddingPx = b.px(d.HotseatBottomPadding)
	if !p.Tall {
		p.HotseatBottomPaddingPx += b.px(d.HotseatBottomNonTallPadding)
	}
	p.HotseatSidePaddingEndPx = b.px(d.HotseatSidePadding)
	if m.MultiWindow && p.VerticalBar {
		p.HotseatSidePaddingStartPx = p.EdgeMarginPx
	}
	if p.VerticalBar {
		p.HotseatBarSizePx = b.px(b.spec.LandscapeIconSizeDp)*b.cfg.DockRows +
			p.HotseatSidePaddingStartPx + p.HotseatSidePaddingEndPx
	} else {
		p.HotseatBarSizePx = b.px(d.HotseatSize)*b.cfg.DockRows +
			p.HotseatTopPaddingPx + p.HotseatBottomPaddingPx
	}
	p.VerticalDragHandleSizePx = b.px(d.VerticalDragHandleSize)

	b.updateAvailableDimensions()

	// Dock preferences.
	if b.cfg.DockHidden {
		p.HotseatBarSizePx = 0
		p.VerticalDragHandleSizePx = 0
		b.updateAvailableDimensions()
	} else if !p.VerticalBar {
		scale := b.cfg.DockScale
		p.VerticalDragHandleSizePx = int(float64(p.VerticalDragHandleSizePx) * scale)
		bottom := max(int(float64(p.HotseatBottomPaddingPx)*scale), 0)
		if b.cfg.UseCustomDockOpacity {
			p.HotseatTopPaddingPx = int(float64(p.HotseatTopPaddingPx) * scale)
		} else {
			// Keep the bottom edge pinned: whatever the bottom padding
			// loses moves to the top.
			p.HotseatTopPaddingPx += p.HotseatBottomPaddingPx - bottom
		}
		p.HotseatBottomPaddingPx = bottom

		p.HotseatBarSizePx = max(b.dockFloor(), int(float64(p.HotseatBarSizePx)*scale))
		b.updateAvailableDimensions()

		// A smaller dock leaves more room for the grid, so icons and with
		// them the hotseat cells may have grown past the floor just applied.
		for range maxDockFloorRounds {
			floor := b.dockFloor()
			if p.HotseatBarSizePx >= floor {
				break
			}
			p.HotseatBarSizePx = floor
			b.updateAvailableDimensions()
		}
		p.HotseatBarSizePx = max(p.HotseatBarSizePx, b.dockFloor())
	}

	b.updateWorkspacePadding()
}

// dockFloor is the smallest horizontal dock that still holds every dock row.
func (b *pass) dockFloor() int {
	p := b.p
	return p.HotseatCellHeightPx*b.cfg.DockRows + p.HotseatTopPaddingPx + p.HotseatBottomPaddingPx
}

// updateAvailableDimensions sizes icons and cells, applies the single
// overflow correction and sizes folder cells.
func (b *pass) updateAvailableDimensions() {
	p := b.p
	b.updateIconSize(1, 1)

	padding := b.totalWorkspacePadding()
	maxH := p.AvailableHeightPx - padding.Y
	maxW := p.AvailableWidthPx - padding.X
	usedH := p.CellHeightPx * p.Rows
	usedW := p.CellWidthPx * p.Columns
	if usedH > maxH || usedW > maxW {
		scale := 1.0
		if usedH > maxH && usedH > 0 {
			scale = min(scale, float64(maxH)/float64(usedH))
		}
		if usedW > maxW {
			// Measure against the unsqueezed cell: a smaller icon may leave
			// room for more of the drawable padding than the first pass did.
			natural := (p.IconSizeOriginalPx + p.IconDrawablePaddingOriginalPx) * p.Columns
			if natural > 0 {
				scale = min(scale, float64(maxW)/float64(natural))
			}
		}
		b.updateIconSize(max(scale, 0), 1)
	}

	b.updateAvailableFolderCellDimensions()
}

func (b *pass) updateIconSize(workspaceScale, allAppsScale float64) {
	p, d, m := b.p, b.d, b.m
	p.WorkspaceScale = workspaceScale

	iconDp := b.spec.IconSizeDp
	if p.VerticalBar {
		iconDp = b.spec.LandscapeIconSizeDp
	}
	p.IconSizeOriginalPx = b.px(iconDp)
	p.IconSizePx = int(float64(p.IconSizeOriginalPx) * workspaceScale)
	p.IconTextSizePx = int(float64(m.PxFromSp(b.spec.IconTextSizeSp)) * workspaceScale)
	p.IconDrawablePaddingPx = int(float64(p.IconDrawablePaddingOriginalPx) * workspaceScale)
	p.LabelsHidden = false

	textHeight := metrics.TextHeight(float64(p.IconTextSizePx)) * b.cfg.HomeLabelRows
	p.CellHeightPx = p.IconSizePx + p.IconDrawablePaddingPx + textHeight
	cellYPadding := (b.cellSize().Y - p.CellHeightPx) / 2
	if p.IconDrawablePaddingPx > cellYPadding && !p.VerticalBar && !p.MultiWindow {
		// Squeeze the label towards its icon instead of letting the cell
		// overflow.
		squeezed := max(cellYPadding, 0)
		p.CellHeightPx -= p.IconDrawablePaddingPx - squeezed
		p.IconDrawablePaddingPx = squeezed
	}
	p.CellWidthPx = p.IconSizePx + p.IconDrawablePaddingPx

	// All apps.
	p.AllAppsIconTextSizePx = p.IconTextSizePx
	p.AllAppsIconSizePx = int(float64(b.px(b.spec.AllAppsIconSizeDp)) * allAppsScale)
	p.AllAppsIconDrawablePaddingPx = int(float64(p.IconDrawablePaddingOriginalPx) * workspaceScale)
	// The drawer shares the workspace cell height; only hideLabels sizes it
	// on its own.
	p.AllAppsCellHeightPx = b.cellSize().Y

	if p.VerticalBar {
		b.hideLabels()
	}

	// Hotseat.
	if p.VerticalBar && !b.cfg.DockHidden {
		p.HotseatBarSizePx = p.IconSizePx*b.cfg.DockRows +
			p.HotseatSidePaddingStartPx + p.HotseatSidePaddingEndPx
	}
	p.HotseatCellHeightPx = p.IconSizePx

	shrink := float64(d.SpringLoadShrinkPct) / 100
	if !p.VerticalBar {
		dock := 0
		if !b.cfg.DockHidden {
			dock = p.HotseatBarSizePx
		}
		expected := p.AvailableHeightPx - dock - p.VerticalDragHandleSizePx - p.WorkspaceTopPaddingPx
		required := float64(p.DropTargetBarSizePx + p.SpringLoadedBottomSpacePx)
		if expected > 0 {
			shrink = min(shrink, 1-required/float64(expected))
		} else {
			shrink = 0
		}
	}
	p.WorkspaceSpringLoadShrinkFactor = max(shrink, 0)

	p.FolderIconSizePx = normalizedCircleSize(p.IconSizePx)
	p.FolderIconOffsetYPx = (p.IconSizePx - p.FolderIconSizePx) / 2
}

// hideLabels drops the workspace labels. The all-apps cell keeps its labels
// and is sized from its own icon, padding and text.
func (b *pass) hideLabels() {
	p := b.p
	p.IconTextSizePx = 0
	p.IconDrawablePaddingPx = 0
	p.CellHeightPx = p.IconSizePx
	p.LabelsHidden = true

	edge := p.AllAppsIconDrawablePaddingPx
	if p.VerticalBar {
		edge *= 2
	}
	p.AllAppsCellHeightPx = p.AllAppsIconSizePx + p.AllAppsIconDrawablePaddingPx +
		metrics.TextHeight(float64(p.AllAppsIconTextSizePx)) + 2*edge
}

func (b *pass) updateAvailableFolderCellDimensions() {
	p, d := b.p, b.d
	panel := b.px(d.FolderLabelPaddingTop) + b.px(d.FolderLabelPaddingBottom) +
		metrics.TextHeight(float64(b.m.PxFromSp(d.FolderLabelTextSizeSp)))

	b.updateFolderCellSize(1)

	padding := b.totalWorkspacePadding()
	usedH := float64(p.FolderCellHeightPx*p.FolderRows + panel)
	maxH := float64(p.AvailableHeightPx - padding.Y - p.EdgeMarginPx)
	usedW := float64(p.FolderCellWidthPx * p.FolderColumns)
	maxW := float64(p.AvailableWidthPx - padding.X - p.EdgeMarginPx)

	scale := 1.0
	if usedH > 0 {
		scale = min(scale, maxH/usedH)
	}
	if usedW > 0 {
		scale = min(scale, maxW/usedW)
	}
	if scale < 1 {
		b.updateFolderCellSize(max(scale, 0))
	}
}

func (b *pass) updateFolderCellSize(scale float64) {
	p, d := b.p, b.d
	p.FolderChildIconSizePx = int(float64(b.px(b.spec.IconSizeDp)) * scale)
	p.FolderChildTextSizePx = int(float64(b.m.PxFromSp(d.FolderChildTextSizeSp)) * scale)

	textHeight := metrics.TextHeight(float64(p.FolderChildTextSizePx))
	padX := int(float64(b.px(d.FolderCellPaddingX)) * scale)
	padY := int(float64(b.px(d.FolderCellPaddingY)) * scale)

	p.FolderCellWidthPx = p.FolderChildIconSizePx + 2*padX
	p.FolderCellHeightPx = p.FolderChildIconSizePx + 2*padY + textHeight
	p.FolderChildDrawablePaddingPx = max(0, (p.FolderCellHeightPx-p.FolderChildIconSizePx-textHeight)/3)
}

// totalWorkspacePadding refreshes the workspace padding from the current
// intermediate state and returns its totals.
func (b *pass) totalWorkspacePadding() geom.Point {
	b.updateWorkspacePadding()
	return b.p.WorkspacePadding.Total()
}

func (b *pass) cellSize() geom.Point {
	return cellSize(b.p, b.totalWorkspacePadding())
}

func (b *pass) updateWorkspacePadding() {
	p := b.p
	dock := 0
	if !b.cfg.DockHidden {
		dock = p.HotseatBarSizePx
	}

	var padding geom.Rect
	switch {
	case p.VerticalBar:
		padding.Bottom = p.EdgeMarginPx
		if p.Seascape {
			padding.Left, padding.Right = dock, p.VerticalDragHandleSizePx
		} else {
			padding.Left, padding.Right = p.VerticalDragHandleSizePx, dock
		}
	case p.Class.IsTablet():
		bottom := dock + p.VerticalDragHandleSizePx - p.VerticalDragHandleOverlapPx
		// Measured on the available size, not the raw display size, so the
		// leftover space excludes the system insets.
		w, h := p.AvailableWidthPx, p.AvailableHeightPx
		// Spread leftover horizontal space so the gaps between icons match
		// the gaps at the edges.
		freeX := max(0, w-(2*p.Columns-1)*p.CellWidthPx)
		freeX = min(freeX, int(float64(w)*maxHorizontalPaddingPercent))
		freeY := max(0, h-p.WorkspaceTopPaddingPx-bottom-2*p.Rows*p.CellHeightPx-
			p.HotseatTopPaddingPx-p.HotseatBottomPaddingPx)
		padding = geom.R(freeX/2, p.WorkspaceTopPaddingPx+freeY/2, freeX/2, bottom+freeY/2)
	default:
		bottom := dock + p.VerticalDragHandleSizePx - p.VerticalDragHandleOverlapPx
		padding = geom.R(p.DesiredWorkspaceMarginPx, p.WorkspaceTopPaddingPx, p.DesiredWorkspaceMarginPx, bottom)
	}
	p.WorkspacePadding = padding.Clamp0()
}

// finish fills the geometry that depends on the final workspace padding and
// insets.
func (b *pass) finish() {
	p, d := b.p, b.d
	b.updateWorkspacePadding()
	p.HotseatPadding = b.hotseatLayoutPadding()
	p.OpenFolderBounds = b.openFolderBounds()

	pad := float64(d.AllAppsButtonPaddingPct) / 100
	p.AllAppsButtonVisualSizePx = max(0, int(float64(p.IconSizePx)*(1-pad))-b.px(d.AllAppsButtonScaleDown))
	p.AllAppsNumCols = p.Columns
	p.AllAppsNumPredictiveCols = p.Columns
	p.FadeAdjacentScreens = p.VerticalBar || p.Class == device.LargeTablet
}

func (b *pass) hotseatLayoutPadding() geom.Rect {
	p := b.p
	in := p.Insets
	if p.VerticalBar {
		if p.Seascape {
			return geom.R(in.Left+p.HotseatSidePaddingStartPx, in.Top, p.HotseatSidePaddingEndPx, in.Bottom).Clamp0()
		}
		return geom.R(p.HotseatSidePaddingEndPx, in.Top, in.Right+p.HotseatSidePaddingStartPx, in.Bottom).Clamp0()
	}

	// Line the hotseat edges up with the workspace edges even though the
	// two rows hold a different number of cells.
	workspaceCell := float64(p.WidthPx) / float64(p.Columns)
	hotseatCell := float64(p.WidthPx) / float64(p.HotseatIconCount)
	adjust := int(math.Round((workspaceCell - hotseatCell) / 2))
	ws := p.WorkspacePadding
	return geom.R(
		adjust+ws.Left+p.CellLayoutPaddingPx,
		p.HotseatTopPaddingPx,
		adjust+ws.Right+p.CellLayoutPaddingPx,
		p.HotseatBottomPaddingPx+in.Bottom+p.CellLayoutBottomPaddingPx,
	).Clamp0()
}

func (b *pass) openFolderBounds() geom.Rect {
	p := b.p
	in := p.Insets
	var r geom.Rect
	if p.VerticalBar {
		// Right of the drop target bar and left of the hotseat.
		r = geom.R(
			in.Left+p.DropTargetBarSizePx+p.EdgeMarginPx,
			in.Top,
			in.Left+p.AvailableWidthPx-p.HotseatBarSizePx-p.EdgeMarginPx,
			in.Top+p.AvailableHeightPx,
		)
	} else {
		// Below the drop target bar and above the hotseat.
		r = geom.R(
			in.Left+p.EdgeMarginPx,
			in.Top+p.DropTargetBarSizePx+p.EdgeMarginPx,
			in.Left+p.AvailableWidthPx-p.EdgeMarginPx,
			in.Top+p.AvailableHeightPx-p.HotseatBarSizePx-p.VerticalDragHandleSizePx-p.EdgeMarginPx,
		)
	}
	r = r.Clamp0()
	r.Right = max(r.Right, r.Left)
	r.Bottom = max(r.Bottom, r.Top)
	return r
}

func normalizedCircleSize(size int) int {
	area := float64(size*size) * maxCircleAreaFactor
	return int(math.Round(math.Sqrt(4 * area / math.Pi)))
}
