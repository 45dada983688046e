// Package pty runs panel commands inside pseudo-terminals sized to their panels.
package pty

import (
	"context"
	"io"
	"math"
	"os"
	"os/exec"

	"github.com/creack/pty"
)

// Size represents terminal dimensions in rows and columns.
type Size struct {
	Rows uint16
	Cols uint16
}

// SizeOf converts a panel's cell extent to a PTY size. Each dimension is
// clamped to at least one cell.
func SizeOf(width, height int) Size {
	return Size{Rows: clampDim(height), Cols: clampDim(width)}
}

func clampDim(n int) uint16 {
	if n < 1 {
		return 1
	}
	if n > math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(n)
}

// Runner is the interface for spawning and controlling a PTY.
// Implementations can be swapped (e.g. creack/pty, or a fake for tests).
type Runner interface {
	Start(ctx context.Context, cmd *exec.Cmd, size Size) (io.ReadWriteCloser, error)
	Resize(rwc io.ReadWriteCloser, size Size) error
}

// CreackPTY implements Runner using github.com/creack/pty.
type CreackPTY struct{}

var _ Runner = (*CreackPTY)(nil)

// Start implements Runner. The process is killed and the PTY closed when ctx
// is cancelled.
func (c *CreackPTY) Start(ctx context.Context, cmd *exec.Cmd, size Size) (io.ReadWriteCloser, error) {
	f, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: size.Rows, Cols: size.Cols})
	if err != nil {
		return nil, err
	}
	if ctx != nil && ctx.Done() != nil {
		go func() {
			<-ctx.Done()
			if cmd.Process != nil {
				_ = cmd.Process.Kill()
			}
			_ = f.Close()
		}()
	}
	return f, nil
}

// Resize implements Runner. Anything but the *os.File returned by Start is a no-op.
func (c *CreackPTY) Resize(rwc io.ReadWriteCloser, size Size) error {
	f, ok := rwc.(*os.File)
	if !ok {
		return nil
	}
	return pty.Setsize(f, &pty.Winsize{Rows: size.Rows, Cols: size.Cols})
}

// Session is one running command. It remembers the last size it was given so
// layout frames that do not change a panel's extent cost no syscall.
type Session struct {
	runner Runner
	rwc    io.ReadWriteCloser
	size   Size
}

// Open starts cmd under runner with the given size.
func Open(ctx context.Context, runner Runner, cmd *exec.Cmd, size Size) (*Session, error) {
	rwc, err := runner.Start(ctx, cmd, size)
	if err != nil {
		return nil, err
	}
	return &Session{runner: runner, rwc: rwc, size: size}, nil
}

// Size returns the size last applied.
func (s *Session) Size() Size { return s.size }

// Resize applies size if it differs from the current one.
func (s *Session) Resize(size Size) error {
	if size == s.size {
		return nil
	}
	if err := s.runner.Resize(s.rwc, size); err != nil {
		return err
	}
	s.size = size
	return nil
}

// Read reads command output.
func (s *Session) Read(p []byte) (int, error) { return s.rwc.Read(p) }

// Write sends input to the command.
func (s *Session) Write(p []byte) (int, error) { return s.rwc.Write(p) }

// Close releases the PTY.
func (s *Session) Close() error { return s.rwc.Close() }
