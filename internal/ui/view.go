package ui

import tea "github.com/charmbracelet/bubbletea"

// View is the content of a panel; implements Bubble Tea's Init/Update/View.
type View interface {
	Init() tea.Cmd
	Update(tea.Msg) (View, tea.Cmd)
	View() string
}

// Sizer is implemented by views that need to know the cells they get.
// SplitView calls SetSize whenever a panel's content area changes.
type Sizer interface {
	SetSize(width, height int) tea.Cmd
}

// Closer is implemented by views holding resources (processes, files).
type Closer interface {
	Close() error
}

// PanelMsg is implemented by messages addressed to one panel's view.
type PanelMsg interface {
	PanelID() string
}
