package ui

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"

	"flexpanes/internal/pty"
	"flexpanes/internal/ui/textutil"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// TextView shows static text.
type TextView struct {
	text string
}

var _ View = (*TextView)(nil)

// NewTextView returns a view showing text.
func NewTextView(text string) *TextView { return &TextView{text: text} }

func (t *TextView) Init() tea.Cmd                  { return nil }
func (t *TextView) Update(tea.Msg) (View, tea.Cmd) { return t, nil }
func (t *TextView) View() string                   { return t.text }

// highlightStyle is the chroma style for file panels.
const highlightStyle = "catppuccin-mocha"

// FileLoadedMsg carries a file panel's highlighted content.
type FileLoadedMsg struct {
	ID      string
	Content string
	Err     error
}

// PanelID implements PanelMsg.
func (m FileLoadedMsg) PanelID() string { return m.ID }

// FileView shows a syntax-highlighted file in a scrollable viewport.
type FileView struct {
	id       string
	path     string
	viewport viewport.Model
	err      error
}

var (
	_ View  = (*FileView)(nil)
	_ Sizer = (*FileView)(nil)
)

// NewFileView returns a view for path, addressed by panel id.
func NewFileView(id, path string) *FileView {
	return &FileView{id: id, path: path, viewport: viewport.New(0, 0)}
}

// Init implements View. The file is read and highlighted off the event loop.
func (f *FileView) Init() tea.Cmd {
	id, path := f.id, f.path
	return func() tea.Msg {
		content, err := highlightFile(path)
		return FileLoadedMsg{ID: id, Content: content, Err: err}
	}
}

// highlightFile renders path with 256-color escape sequences.
func highlightFile(path string) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	lexer := lexers.Match(filepath.Base(path))
	if lexer == nil {
		lexer = lexers.Analyse(string(src))
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)
	style := styles.Get(highlightStyle)
	it, err := lexer.Tokenise(nil, string(src))
	if err != nil {
		return "", fmt.Errorf("tokenise %s: %w", path, err)
	}
	var buf bytes.Buffer
	if err := formatters.TTY256.Format(&buf, style, it); err != nil {
		return "", fmt.Errorf("highlight %s: %w", path, err)
	}
	return buf.String(), nil
}

// SetSize implements Sizer.
func (f *FileView) SetSize(width, height int) tea.Cmd {
	f.viewport.Width, f.viewport.Height = width, height
	return nil
}

// Update implements View.
func (f *FileView) Update(msg tea.Msg) (View, tea.Cmd) {
	if m, ok := msg.(FileLoadedMsg); ok {
		f.err = m.Err
		if m.Err != nil {
			log.Printf("file panel %s: %v", f.id, m.Err)
			return f, nil
		}
		f.viewport.SetContent(m.Content)
		return f, nil
	}
	var cmd tea.Cmd
	f.viewport, cmd = f.viewport.Update(msg)
	return f, cmd
}

// View implements View.
func (f *FileView) View() string {
	if f.err != nil {
		return Styles.Error.Render(f.err.Error())
	}
	return f.viewport.View()
}

// CommandOutputMsg carries bytes read from a command panel's PTY.
type CommandOutputMsg struct {
	ID   string
	Data []byte
}

// PanelID implements PanelMsg.
func (m CommandOutputMsg) PanelID() string { return m.ID }

// CommandExitedMsg reports that a command panel's PTY closed.
type CommandExitedMsg struct {
	ID string
}

// PanelID implements PanelMsg.
func (m CommandExitedMsg) PanelID() string { return m.ID }

// maxCommandOutput bounds the bytes a command panel keeps.
const maxCommandOutput = 256 << 10

const (
	defaultCommandWidth  = 80
	defaultCommandHeight = 24
)

// CommandView runs a shell command in a PTY sized to its panel and shows the
// output, following the tail. Keys are passed through to the command.
type CommandView struct {
	id       string
	command  string
	runner   pty.Runner
	session  *pty.Session
	cancel   context.CancelFunc
	content  []byte
	viewport viewport.Model
	outputCh chan []byte
	exited   bool
	err      error
}

var (
	_ View   = (*CommandView)(nil)
	_ Sizer  = (*CommandView)(nil)
	_ Closer = (*CommandView)(nil)
)

// NewCommandView returns a view that runs command with "sh -c". The runner
// is injected so implementations can be swapped.
func NewCommandView(id, command string, runner pty.Runner) *CommandView {
	return &CommandView{
		id:       id,
		command:  command,
		runner:   runner,
		viewport: viewport.New(defaultCommandWidth, defaultCommandHeight),
		outputCh: make(chan []byte, 64),
	}
}

// Init implements View. Spawns the command and starts reading from the PTY.
func (c *CommandView) Init() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	cmd := exec.Command("sh", "-c", c.command)
	sess, err := pty.Open(ctx, c.runner, cmd, pty.SizeOf(c.viewport.Width, c.viewport.Height))
	if err != nil {
		cancel()
		c.err = err
		log.Printf("command panel %s: %v", c.id, err)
		return nil
	}
	c.session, c.cancel = sess, cancel

	go func() {
		buf := make([]byte, 4096)
		for {
			n, err := sess.Read(buf)
			if n > 0 {
				cp := make([]byte, n)
				copy(cp, buf[:n])
				select {
				case c.outputCh <- cp:
				default:
					// Channel full, drop (avoid blocking)
				}
			}
			if err != nil {
				close(c.outputCh)
				return
			}
		}
	}()

	return c.waitForOutput()
}

func (c *CommandView) waitForOutput() tea.Cmd {
	ch, id := c.outputCh, c.id
	return func() tea.Msg {
		data, ok := <-ch
		if !ok {
			return CommandExitedMsg{ID: id}
		}
		return CommandOutputMsg{ID: id, Data: data}
	}
}

// SetSize implements Sizer. The PTY follows the panel's content area.
func (c *CommandView) SetSize(width, height int) tea.Cmd {
	c.viewport.Width, c.viewport.Height = width, height
	if c.session != nil {
		if err := c.session.Resize(pty.SizeOf(width, height)); err != nil {
			log.Printf("command panel %s: %v", c.id, err)
		}
	}
	c.refreshViewport()
	return nil
}

// Update implements View.
func (c *CommandView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case CommandOutputMsg:
		c.content = append(c.content, msg.Data...)
		if over := len(c.content) - maxCommandOutput; over > 0 {
			c.content = c.content[over:]
		}
		c.refreshViewport()
		return c, c.waitForOutput()
	case CommandExitedMsg:
		c.exited = true
		return c, nil
	case tea.KeyMsg:
		if c.session != nil && !c.exited {
			if b := keyToPTYBytes(msg); len(b) > 0 {
				if _, err := c.session.Write(b); err != nil {
					log.Printf("command panel %s: write: %v", c.id, err)
				}
			}
			return c, nil
		}
	}
	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	return c, cmd
}

// View implements View.
func (c *CommandView) View() string {
	if c.err != nil {
		return Styles.Error.Render(c.err.Error())
	}
	v := c.viewport.View()
	if c.exited {
		v = textutil.Tail(v, max(c.viewport.Height-1, 0)) + "\n" + Styles.Empty.Render("[exited]")
	}
	return v
}

func (c *CommandView) refreshViewport() {
	c.viewport.SetContent(textutil.CleanTerminalOutput(c.content))
	c.viewport.GotoBottom()
}

// keyToPTYBytes converts a Bubble Tea KeyMsg to bytes the PTY expects.
func keyToPTYBytes(msg tea.KeyMsg) []byte {
	switch msg.Type {
	case tea.KeyEnter:
		return []byte{'\r'}
	case tea.KeyBackspace:
		return []byte{0x7f}
	case tea.KeySpace:
		return []byte{' '}
	case tea.KeyUp:
		return []byte{0x1b, '[', 'A'}
	case tea.KeyDown:
		return []byte{0x1b, '[', 'B'}
	case tea.KeyRight:
		return []byte{0x1b, '[', 'C'}
	case tea.KeyLeft:
		return []byte{0x1b, '[', 'D'}
	case tea.KeyCtrlD:
		return []byte{0x04}
	case tea.KeyEsc:
		return []byte{0x1b}
	case tea.KeyRunes:
		return []byte(string(msg.Runes))
	default:
		if len(msg.Runes) > 0 {
			return []byte(string(msg.Runes))
		}
		return nil
	}
}

// Close stops the command and releases the PTY.
func (c *CommandView) Close() error {
	if c.cancel != nil {
		c.cancel()
	}
	if c.session != nil {
		return c.session.Close()
	}
	return nil
}
