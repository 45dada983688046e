package textutil

import (
	"strings"
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 6, "hello…"},
		{"hello", 0, ""},
		{"日本語テキスト", 5, "日本…"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestPadRightVisual(t *testing.T) {
	if got := PadRightVisual("ab", 4); got != "ab  " {
		t.Errorf("got %q", got)
	}
	if got := PadRightVisual("abcdef", 4); VisualWidth(got) != 4 {
		t.Errorf("expected width 4, got %q", got)
	}
}

func TestFitLine_KeepsEscapes(t *testing.T) {
	styled := "\x1b[31mred text\x1b[0m"

	got := FitLine(styled, 3)

	if VisualWidth(got) != 3 {
		t.Errorf("expected width 3, got %d (%q)", VisualWidth(got), got)
	}
	if !strings.HasPrefix(got, "\x1b[31m") {
		t.Errorf("expected escape sequence kept, got %q", got)
	}
	if got := FitLine("ab", 5); got != "ab   " {
		t.Errorf("expected padding, got %q", got)
	}
}

func TestFitBlock(t *testing.T) {
	got := FitBlock("one\r\ntwo\nthree", 4, 2)

	if len(got) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(got))
	}
	if got[0] != "one " || got[1] != "two " {
		t.Errorf("got %q", got)
	}
	if blank := FitBlock("", 2, 3); len(blank) != 3 || blank[2] != "  " {
		t.Errorf("blank block: %q", blank)
	}
	if FitBlock("x", 2, 0) != nil {
		t.Error("zero height must yield no lines")
	}
}

func TestTail(t *testing.T) {
	if got := Tail("a\nb\nc", 2); got != "b\nc" {
		t.Errorf("got %q", got)
	}
	if got := Tail("a", 5); got != "a" {
		t.Errorf("got %q", got)
	}
}

func TestCleanTerminalOutput(t *testing.T) {
	got := CleanTerminalOutput([]byte("\x1b[1mbold\x1b[0m\r\nnext\rline"))

	if got != "bold\nnextline" {
		t.Errorf("got %q", got)
	}
}
