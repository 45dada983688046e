package ui

import (
	"flexpanes/internal/layout"

	tea "github.com/charmbracelet/bubbletea"
)

// MouseCapture implements layout.Capture for a terminal. While a separator
// session holds the capture the terminal reports every mouse motion, so the
// drag keeps tracking when the pointer leaves the separator; on release it
// goes back to cell-motion reporting.
//
// The engine calls Acquire and Release from inside Update, where no command
// can be returned, so the mode switches queue up until Flush.
type MouseCapture struct {
	pending []tea.Cmd
	held    bool
}

var _ layout.Capture = (*MouseCapture)(nil)

// NewMouseCapture returns a capture that is not held.
func NewMouseCapture() *MouseCapture {
	return &MouseCapture{}
}

// Acquire implements layout.Capture.
func (c *MouseCapture) Acquire(*layout.SeparatorSession) {
	c.held = true
	c.pending = append(c.pending, tea.EnableMouseAllMotion)
}

// Release implements layout.Capture.
func (c *MouseCapture) Release(*layout.SeparatorSession) {
	c.held = false
	c.pending = append(c.pending, tea.EnableMouseCellMotion)
}

// Held reports whether a session currently holds the capture.
func (c *MouseCapture) Held() bool { return c.held }

// Flush returns the queued mode switches in order, or nil.
func (c *MouseCapture) Flush() tea.Cmd {
	if len(c.pending) == 0 {
		return nil
	}
	cmds := c.pending
	c.pending = nil
	return tea.Sequence(cmds...)
}
