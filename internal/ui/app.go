package ui

import (
	"fmt"
	"log"
	"time"

	"flexpanes/internal/config"
	"flexpanes/internal/layout"
	"flexpanes/internal/pty"
	"flexpanes/internal/trace"
	"flexpanes/internal/ui/textutil"

	tea "github.com/charmbracelet/bubbletea"
)

// FocusMsg moves keyboard focus Delta panels along the focus order.
type FocusMsg struct{ Delta int }

// ToggleFocusedMsg collapses or expands the focused panel (SPC c).
type ToggleFocusedMsg struct{}

// MovePanelMsg moves the focused panel Delta slots on screen (SPC h / SPC l).
type MovePanelMsg struct{ Delta int }

// ResetSeparatorMsg double-clicks the separator next to the focused panel (SPC =).
type ResetSeparatorMsg struct{}

// ShowHelpMsg opens the key binding overlay (SPC ?).
type ShowHelpMsg struct{}

// NudgeSeparatorMsg drags the separator next to the focused panel by Delta cells.
type NudgeSeparatorMsg struct{ Delta int }

// ConfigReloadedMsg carries a configuration re-read after its file changed.
// Err is set when the new file could not be used; the running layout stays.
type ConfigReloadedMsg struct {
	Config config.Config
	Err    error
}

// AppDeps are the collaborators the app model is built with. Zero values
// select the defaults.
type AppDeps struct {
	PTY      pty.Runner      // defaults to CreackPTY
	Recorder *trace.Recorder // nil disables drag telemetry
	Now      func() time.Time
}

// AppModel is the root model: a SplitView over the configured panels, a
// status line and the leader-key hint bar.
type AppModel struct {
	Split      *SplitView
	KeyHandler *KeyHandler
	Overlays   OverlayStack
	Recorder   *trace.Recorder

	cfg       config.Config
	deps      AppDeps
	views     map[panelSource]View
	configErr error

	width, height int
}

// panelSource identifies what a panel shows. A reloaded panel with the same
// source keeps its running view.
type panelSource struct {
	ID, Text, File, Command string
	Activity                bool
}

func sourceOf(ch config.Child) panelSource {
	return panelSource{ID: ch.ID, Text: ch.Text, File: ch.File, Command: ch.Command, Activity: ch.Activity}
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel builds the root model from cfg.
func NewAppModel(cfg config.Config, deps AppDeps) (*AppModel, error) {
	axis, err := cfg.AxisValue()
	if err != nil {
		return nil, fmt.Errorf("layout axis: %w", err)
	}
	if deps.PTY == nil {
		deps.PTY = &pty.CreackPTY{}
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	capture := NewMouseCapture()
	opts := layout.Options{
		Axis:             axis,
		Reversed:         cfg.Layout.Reversed,
		ThrottleInterval: cfg.Throttle(),
		SeparatorSize:    cfg.Layout.SeparatorSize,
		OnResize: func(proportions []float64, collapsed []int) {
			log.Printf("layout: resize started from proportions=%v collapsed=%v", proportions, collapsed)
		},
		Capture: capture,
		Now:     deps.Now,
	}
	if deps.Recorder != nil {
		opts.Observer = deps.Recorder
	}
	descs := cfg.Descriptors()
	engine := layout.NewEngine(descs, opts)

	a := &AppModel{
		KeyHandler: NewKeyHandler(defaultKeybinds()),
		Recorder:   deps.Recorder,
		cfg:        cfg,
		deps:       deps,
	}
	a.Split = NewSplitView(engine, capture, a.panelViews(cfg), SplitOptions{
		DoubleClickPosition: cfg.Layout.DoubleClickPosition,
		Mockup:              cfg.Layout.Mockup,
		Now:                 deps.Now,
	})
	return a, nil
}

// panelViews returns one view per panel of cfg in declaration order, reusing
// the running view of any panel whose source is unchanged.
func (a *AppModel) panelViews(cfg config.Config) []View {
	cls := layout.Classify(cfg.Descriptors())
	views := make([]View, len(cls.Panels))
	next := make(map[panelSource]View, len(views))
	for decl, ci := range cls.PanelChild {
		src := sourceOf(cfg.Children[ci])
		v, ok := a.views[src]
		if ok {
			delete(a.views, src)
		} else {
			v = newPanelView(cfg.Children[ci], a.deps)
		}
		views[decl] = v
		next[src] = v
	}
	a.views = next
	return views
}

// reload applies a re-read configuration. Children take effect at once;
// engine options such as the axis need a restart.
func (a *AppModel) reload(msg ConfigReloadedMsg) tea.Cmd {
	if msg.Err != nil {
		log.Printf("config reload: %v", msg.Err)
		a.configErr = msg.Err
		return nil
	}
	a.configErr = nil
	if msg.Config.Layout != a.cfg.Layout {
		log.Printf("config reload: layout options change on restart")
	}
	a.cfg.Children = msg.Config.Children
	return a.Split.SetChildren(msg.Config.Descriptors(), a.panelViews(a.cfg))
}

// newPanelView picks the content view for a configured panel. The activity
// log wins over a command, a command over a file, a file over static text.
func newPanelView(ch config.Child, deps AppDeps) View {
	switch {
	case ch.Activity:
		return NewActivityView(deps.Recorder)
	case ch.Command != "":
		return NewCommandView(ch.ID, ch.Command, deps.PTY)
	case ch.File != "":
		return NewFileView(ch.ID, ch.File)
	default:
		return NewTextView(ch.Text)
	}
}

func defaultKeybinds() *KeybindRegistry {
	reg := NewKeybindRegistry()
	reg.BindWithDesc("ctrl+c", tea.Quit, "Quit")
	reg.BindWithDesc("SPC q", tea.Quit, "Quit")
	reg.BindWithDesc("SPC ?", msgCmd(ShowHelpMsg{}), "Key bindings")
	reg.BindWithDesc("tab", msgCmd(FocusMsg{Delta: 1}), "Next panel")
	reg.BindWithDesc("shift+tab", msgCmd(FocusMsg{Delta: -1}), "Previous panel")
	reg.BindWithDesc("SPC c", msgCmd(ToggleFocusedMsg{}), "Collapse")
	reg.BindWithDesc("SPC h", msgCmd(MovePanelMsg{Delta: -1}), "Move back")
	reg.BindWithDesc("SPC l", msgCmd(MovePanelMsg{Delta: 1}), "Move forward")
	reg.BindWithDesc("SPC =", msgCmd(ResetSeparatorMsg{}), "Reset separator")
	reg.BindWithDesc("ctrl+left", msgCmd(NudgeSeparatorMsg{Delta: -1}), "Shrink")
	reg.BindWithDesc("ctrl+right", msgCmd(NudgeSeparatorMsg{Delta: 1}), "Grow")
	reg.BindWithDesc("ctrl+up", msgCmd(NudgeSeparatorMsg{Delta: -1}), "Shrink")
	reg.BindWithDesc("ctrl+down", msgCmd(NudgeSeparatorMsg{Delta: 1}), "Grow")
	return reg
}

func msgCmd(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return a.Split.Init()
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, a.Split.SetSize(msg.Width, max(msg.Height-1, 0))
	case tea.KeyMsg:
		if msg.String() != "ctrl+c" {
			if cmd, handled := a.Overlays.HandleKey(msg); handled {
				return a, cmd
			}
		}
		if a.KeyHandler != nil {
			if consumed, keyCmd := a.KeyHandler.Handle(msg); consumed {
				return a, keyCmd
			}
		}
		return a, a.Split.Update(msg)
	case ConfigReloadedMsg:
		return a, a.reload(msg)
	case ShowHelpMsg:
		a.Overlays.Push(Overlay{
			Title:   "Key bindings",
			View:    NewTextView(bindingsHelp(a.KeyHandler.Registry)),
			Dismiss: "esc",
		})
		return a, nil
	case FocusMsg:
		if msg.Delta < 0 {
			a.Split.Focus().Prev()
		} else {
			a.Split.Focus().Next()
		}
		return a, nil
	case ToggleFocusedMsg:
		return a, a.Split.ToggleFocused()
	case MovePanelMsg:
		return a, a.Split.MoveFocused(msg.Delta)
	case ResetSeparatorMsg:
		return a, a.Split.ResetSeparator()
	case NudgeSeparatorMsg:
		return a, a.Split.NudgeSeparator(msg.Delta)
	}
	return a, a.Split.Update(msg)
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	if o, ok := a.Overlays.Render(a.width, max(a.height-1, 0)); ok {
		return o + "\n" + a.statusLine()
	}
	return a.Split.View() + "\n" + a.statusLine()
}

// statusLine is the bottom row: the leader hints while SPC is pending,
// otherwise focus, axis and the current interaction.
func (a *AppModel) statusLine() string {
	if hints := RenderKeybindHelp(a.KeyHandler, a.width); hints != "" {
		return textutil.FitLine(hints, a.width)
	}
	axis := a.Split.Engine().Options().Axis
	line := axis.String()
	if p, ok := a.Split.Panel(a.Split.Focus().Current); ok {
		line = p.Title + " · " + line
	}
	switch {
	case a.Split.Dragging():
		arrow := "↔"
		if axis == layout.Vertical {
			arrow = "↕"
		}
		line += " · " + arrow + " resizing"
	case a.Split.Reordering():
		line += " · reordering, release over a panel"
	case a.Recorder != nil:
		if last, ok := a.Recorder.Last(); ok {
			line += " · " + last.String()
		}
	}
	line += " · SPC for commands"
	if a.configErr != nil {
		line = "config: " + a.configErr.Error() + " · " + line
	}
	return Styles.Status.Render(textutil.FitLine(line, a.width))
}

// Close releases panel resources. Call after the program exits.
func (a *AppModel) Close() error {
	return a.Split.Close()
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}
