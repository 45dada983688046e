// Package textutil fits text into terminal cells.
package textutil

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// TruncateEllipsis is the unicode ellipsis character used for truncation.
const TruncateEllipsis = "…"

// VisualWidth returns the number of terminal columns s occupies, ignoring
// escape sequences.
func VisualWidth(s string) int {
	return ansi.StringWidth(s)
}

// Truncate shortens plain text to maxWidth columns, ending in an ellipsis
// when something was cut.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return runewidth.Truncate(s, maxWidth, TruncateEllipsis)
}

// PadRightVisual pads or truncates plain text to exactly width columns.
func PadRightVisual(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.FillRight(Truncate(s, width), width)
}

// FitLine cuts a possibly styled line at width columns and pads it with
// spaces up to width. Escape sequences are kept intact.
func FitLine(line string, width int) string {
	if width <= 0 {
		return ""
	}
	line = ansi.Truncate(line, width, "")
	if w := ansi.StringWidth(line); w < width {
		line += strings.Repeat(" ", width-w)
	}
	return line
}

// FitBlock turns s into exactly height lines of exactly width columns.
// Extra lines are dropped from the bottom.
func FitBlock(s string, width, height int) []string {
	if height <= 0 {
		return nil
	}
	var src []string
	if s != "" {
		src = strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	}
	out := make([]string, height)
	for i := range out {
		line := ""
		if i < len(src) {
			line = src[i]
		}
		out[i] = FitLine(line, width)
	}
	return out
}

// Tail returns the last n lines of s.
func Tail(s string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}

// CleanTerminalOutput strips escape sequences and carriage returns from raw
// program output so it can be shown as plain lines.
func CleanTerminalOutput(b []byte) string {
	s := ansi.Strip(string(b))
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "")
}
