package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - for titles, highlights
	ColorHighlight = "205" // Magenta - for focused panels, active separators
	ColorDanger    = "196" // Red - for errors
	ColorMuted     = "241" // Gray - for dimmed text, hints
	ColorText      = "252" // Light gray - for normal text
	ColorDim       = "238" // Darker gray - for disabled separators
	ColorWarning   = "208" // Orange - for reorder targets
)

// Styles contains shared style definitions used across views.
var Styles = struct {
	Title        lipgloss.Style // Panel title bar
	TitleFocused lipgloss.Style // Title bar of the focused panel
	TitleSource  lipgloss.Style // Title bar of the panel being dragged
	TitleTarget  lipgloss.Style // Title bar of the panel under a reorder drag
	Collapsed    lipgloss.Style // Collapsed panel strip

	Separator         lipgloss.Style
	SeparatorDragging lipgloss.Style // any separator while a drag is in progress
	SeparatorActive   lipgloss.Style // the separator being dragged
	SeparatorDisabled lipgloss.Style

	Spacer lipgloss.Style
	Status lipgloss.Style // Status line
	Hint   lipgloss.Style // Help/hint text
	Error  lipgloss.Style // Errors rendered inside panels
	Empty  lipgloss.Style // Empty state text

	Overlay lipgloss.Style // Box around overlays
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	TitleFocused: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorHighlight)).
		Underline(true),
	TitleSource: lipgloss.NewStyle().
		Bold(true).
		Reverse(true).
		Foreground(lipgloss.Color(ColorAccent)),
	TitleTarget: lipgloss.NewStyle().
		Bold(true).
		Reverse(true).
		Foreground(lipgloss.Color(ColorWarning)),
	Collapsed: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Separator: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	SeparatorDragging: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	SeparatorActive: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorHighlight)),
	SeparatorDisabled: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDim)),
	Spacer: lipgloss.NewStyle(),
	Status: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDanger)),
	Empty: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Italic(true),
	Overlay: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(1, 2),
}

// mockupPalette tints panels in mockup mode, by display position.
var mockupPalette = []lipgloss.Color{
	"#ffcccc", "#ccffff", "#ffe4cc", "#ccceff", "#fffbcc",
	"#ecccff", "#d6ffcc", "#ffccf2", "#f5ffcc", "#ccd6ff",
	"#ffdbcc", "#ccf0ff", "#ffe9cc", "#d8ccff", "#fffecc",
	"#f3ccff", "#ccffcd", "#ffcce9", "#eaffcc", "#dbccff",
}

// MockupStyle returns the tint for the panel at display position pos.
func MockupStyle(pos int) lipgloss.Style {
	c := mockupPalette[pos%len(mockupPalette)]
	return lipgloss.NewStyle().
		Background(c).
		Foreground(lipgloss.Color("#333333"))
}
