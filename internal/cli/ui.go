package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/gridfit/pkg/profile"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleSection = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

// printError prints an error message.
func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

// printWarning prints a warning message.
func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printInfo prints an info/status message.
func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints a detail line (indented).
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// cacheStatus renders whether a result came from the cache.
func cacheStatus(hit bool) string {
	if hit {
		return styleCached.Render(iconCached)
	}
	return styleComputed.Render(iconFresh)
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// =============================================================================
// Profile Tables
// =============================================================================

// profileSection is a titled group of rows in the profile table.
type profileSection struct {
	title string
	rows  [][2]string
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func px(v int) string { return fmt.Sprintf("%dpx", v) }

// profileSections groups the fields of p for display.
func profileSections(p *profile.Profile) []profileSection {
	orientation := "portrait"
	switch {
	case p.VerticalBar && p.Seascape:
		orientation = "seascape (vertical bar)"
	case p.VerticalBar:
		orientation = "landscape (vertical bar)"
	case p.Landscape:
		orientation = "landscape"
	}

	return []profileSection{
		{"Device", [][2]string{
			{"class", p.Class.String()},
			{"window", fmt.Sprintf("%dx%d", p.WidthPx, p.HeightPx)},
			{"available", p.Available().String()},
			{"orientation", orientation},
			{"multi-window", yesNo(p.MultiWindow)},
			{"tall", yesNo(p.Tall)},
		}},
		{"Workspace", [][2]string{
			{"grid", fmt.Sprintf("%dx%d", p.Columns, p.Rows)},
			{"icon", px(p.IconSizePx)},
			{"label", fmt.Sprintf("%s (hidden: %s)", px(p.IconTextSizePx), yesNo(p.LabelsHidden))},
			{"drawable padding", px(p.IconDrawablePaddingPx)},
			{"cell", fmt.Sprintf("%dx%d", p.CellWidthPx, p.CellHeightPx)},
			{"cell slot", p.CellSize().String()},
			{"padding", p.WorkspacePadding.String()},
			{"spring-load shrink", fmt.Sprintf("%.3f", p.WorkspaceSpringLoadShrinkFactor)},
			{"widget scale", p.AppWidgetScale.String()},
		}},
		{"Dock", [][2]string{
			{"icons", fmt.Sprint(p.HotseatIconCount)},
			{"bar size", px(p.HotseatBarSizePx)},
			{"cell height", px(p.CellHeight(profile.Hotseat))},
			{"layout padding", p.HotseatLayoutPadding().String()},
			{"drag handle", px(p.VerticalDragHandleSizePx)},
		}},
		{"Folder", [][2]string{
			{"grid", fmt.Sprintf("%dx%d", p.FolderColumns, p.FolderRows)},
			{"icon", px(p.FolderIconSizePx)},
			{"cell", fmt.Sprintf("%dx%d", p.FolderCellWidthPx, p.CellHeight(profile.Folder))},
			{"child icon", px(p.FolderChildIconSizePx)},
			{"open bounds", p.AbsoluteOpenFolderBounds().String()},
		}},
		{"All apps", [][2]string{
			{"columns", fmt.Sprint(p.AllAppsNumCols)},
			{"icon", px(p.AllAppsIconSizePx)},
			{"cell height", px(p.AllAppsCellHeightPx)},
			{"button", px(p.AllAppsButtonVisualSizePx)},
		}},
	}
}

// renderProfile renders p as a two-column table.
func renderProfile(p *profile.Profile) string {
	var rows [][]string
	var sectionRows []int
	for _, s := range profileSections(p) {
		sectionRows = append(sectionRows, len(rows))
		rows = append(rows, []string{s.title, ""})
		for _, r := range s.rows {
			rows = append(rows, []string{"  " + r[0], r[1]})
		}
	}

	isSection := make(map[int]bool, len(sectionRows))
	for _, i := range sectionRows {
		isSection[i] = true
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case isSection[row]:
				return styleSection
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorGray)
			default:
				return StyleValue
			}
		})
	return t.Render()
}

// renderTable renders a header row plus data rows.
func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

// summaryLine is a one-line description of a profile.
func summaryLine(p *profile.Profile) string {
	parts := []string{
		fmt.Sprintf("gen %d", p.Generation),
		fmt.Sprintf("icon %s", px(p.IconSizePx)),
		fmt.Sprintf("cell %dx%d", p.CellWidthPx, p.CellHeightPx),
		fmt.Sprintf("dock %s", px(p.HotseatBarSizePx)),
	}
	if p.LabelsHidden {
		parts = append(parts, "labels hidden")
	}
	if p.VerticalBar {
		parts = append(parts, "vertical bar")
	}
	return strings.Join(parts, StyleDim.Render(" · "))
}
