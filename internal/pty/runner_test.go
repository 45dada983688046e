package pty

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"testing"
)

type nopRWC struct{ bytes.Buffer }

func (n *nopRWC) Close() error { return nil }

type fakeRunner struct {
	started []Size
	resized []Size
	failOn  Size
}

func (f *fakeRunner) Start(_ context.Context, _ *exec.Cmd, size Size) (io.ReadWriteCloser, error) {
	f.started = append(f.started, size)
	return &nopRWC{}, nil
}

func (f *fakeRunner) Resize(_ io.ReadWriteCloser, size Size) error {
	if size == f.failOn {
		return errors.New("boom")
	}
	f.resized = append(f.resized, size)
	return nil
}

func TestSizeOf_Clamps(t *testing.T) {
	tests := []struct {
		w, h int
		want Size
	}{
		{80, 24, Size{Rows: 24, Cols: 80}},
		{0, -3, Size{Rows: 1, Cols: 1}},
		{1 << 20, 5, Size{Rows: 5, Cols: 65535}},
	}
	for _, tt := range tests {
		if got := SizeOf(tt.w, tt.h); got != tt.want {
			t.Errorf("SizeOf(%d, %d) = %+v, want %+v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestSession_ResizeSkipsUnchangedSize(t *testing.T) {
	r := &fakeRunner{failOn: Size{Rows: 9, Cols: 9}}
	s, err := Open(context.Background(), r, exec.Command("true"), Size{Rows: 10, Cols: 40})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	for _, sz := range []Size{{10, 40}, {12, 40}, {12, 40}, {12, 30}} {
		if err := s.Resize(sz); err != nil {
			t.Fatalf("Resize(%+v): %v", sz, err)
		}
	}
	if len(r.resized) != 2 {
		t.Errorf("expected 2 real resizes, got %v", r.resized)
	}
	if s.Size() != (Size{Rows: 12, Cols: 30}) {
		t.Errorf("Size() = %+v", s.Size())
	}

	if err := s.Resize(Size{Rows: 9, Cols: 9}); err == nil {
		t.Error("expected resize error")
	}
	if s.Size() != (Size{Rows: 12, Cols: 30}) {
		t.Errorf("failed resize must keep the old size, got %+v", s.Size())
	}
}

func TestSession_ReadWrite(t *testing.T) {
	s, err := Open(context.Background(), &fakeRunner{}, exec.Command("true"), Size{Rows: 1, Cols: 1})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := s.Write([]byte("hello")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	buf := make([]byte, 5)
	if _, err := io.ReadFull(s, buf); err != nil || string(buf) != "hello" {
		t.Errorf("Read: %q, %v", buf, err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
