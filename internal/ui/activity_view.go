package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"flexpanes/internal/trace"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// ActivityView lists the recent layout interactions a Recorder kept, as a
// tree of summaries and their attributes. Newest last.
type ActivityView struct {
	recorder *trace.Recorder
	viewport viewport.Model
	shown    int // summaries rendered at the last refresh
}

var (
	_ View  = (*ActivityView)(nil)
	_ Sizer = (*ActivityView)(nil)
)

// NewActivityView creates a view over rec. A nil rec shows a placeholder.
func NewActivityView(rec *trace.Recorder) *ActivityView {
	v := &ActivityView{recorder: rec, viewport: viewport.New(0, 0)}
	v.refreshContent()
	return v
}

// Init implements View
func (v *ActivityView) Init() tea.Cmd { return nil }

// Update implements View
func (v *ActivityView) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "j", "down":
			v.viewport.LineDown(1)
			return v, nil
		case "k", "up":
			v.viewport.LineUp(1)
			return v, nil
		case "g", "home":
			v.viewport.GotoTop()
			return v, nil
		case "G", "end":
			v.viewport.GotoBottom()
			return v, nil
		}
	}
	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// View implements View. New interactions are picked up on every render.
func (v *ActivityView) View() string {
	if v.recorder != nil && len(v.recorder.Recent()) != v.shown {
		v.refreshContent()
		v.viewport.GotoBottom()
	}
	return v.viewport.View()
}

// SetSize implements Sizer.
func (v *ActivityView) SetSize(width, height int) tea.Cmd {
	v.viewport.Width = width
	v.viewport.Height = height
	v.refreshContent()
	return nil
}

// refreshContent rebuilds the viewport content from the recorder
func (v *ActivityView) refreshContent() {
	if v.recorder == nil {
		v.viewport.SetContent(Styles.Empty.Render("telemetry disabled"))
		return
	}
	recent := v.recorder.Recent()
	v.shown = len(recent)
	if len(recent) == 0 {
		v.viewport.SetContent(Styles.Empty.Render("(no interactions yet)"))
		return
	}

	var lines []string
	for i, s := range recent {
		lines = append(lines, renderSummary(s, i == len(recent)-1)...)
	}
	v.viewport.SetContent(strings.Join(lines, "\n"))
}

// renderSummary renders one interaction and its attributes as a tree branch.
func renderSummary(s trace.Summary, isLast bool) []string {
	connector, childPrefix := "├─", "│  "
	if isLast {
		connector, childPrefix = "└─", "   "
	}
	line := connector + " " + Styles.Title.Render(s.String())
	if d := formatDuration(s.Duration); d != "" {
		line += " " + Styles.Hint.Render(d)
	}
	lines := []string{line}

	keys := make([]string, 0, len(s.Attributes))
	for k := range s.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for i, k := range keys {
		c := "├─"
		if i == len(keys)-1 {
			c = "└─"
		}
		lines = append(lines, childPrefix+c+" "+Styles.Hint.Render(k+"="+s.Attributes[k]))
	}
	return lines
}

// formatDuration formats a drag length; instant interactions render as "".
func formatDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return ""
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
}
