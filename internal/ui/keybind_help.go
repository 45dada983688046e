package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// RenderKeybindHelp produces the one-line hint bar shown after SPC.
// When the handler holds a longer sequence (e.g. "SPC x"), shows next-level hints.
func RenderKeybindHelp(keyHandler *KeyHandler, width int) string {
	if keyHandler == nil || !keyHandler.LeaderWaiting {
		return ""
	}
	bindings := NewKeyMap(keyHandler).ShortHelp()
	if len(bindings) == 0 {
		return ""
	}

	helpModel := help.New()
	helpModel.Width = max(width-lipgloss.Width(keyHandler.CurrentSeq())-1, 0)
	helpModel.Styles.ShortKey = lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true)
	helpModel.Styles.ShortDesc = Styles.Hint
	helpModel.Styles.ShortSeparator = Styles.Hint

	return Styles.Hint.Render(keyHandler.CurrentSeq()) + " " + helpModel.ShortHelpView(bindings)
}
