package ui

import "testing"

func TestFocusManager_NextPrevWrap(t *testing.T) {
	f := &FocusManager{Current: "a", Order: []string{"a", "b", "c"}}

	if got := f.Next(); got != "b" {
		t.Errorf("Next = %q, want b", got)
	}
	f.Next()
	if got := f.Next(); got != "a" {
		t.Errorf("Next should wrap to a, got %q", got)
	}
	if got := f.Prev(); got != "c" {
		t.Errorf("Prev should wrap to c, got %q", got)
	}
}

func TestFocusManager_EmptyOrder(t *testing.T) {
	f := &FocusManager{}
	if got := f.Next(); got != "" {
		t.Errorf("Next on empty order = %q", got)
	}
}

func TestFocusManager_SetOrderKeepsCurrent(t *testing.T) {
	var changes []string
	f := &FocusManager{
		Current:  "b",
		Order:    []string{"a", "b"},
		OnChange: func(from, to string) { changes = append(changes, from+">"+to) },
	}

	f.SetOrder([]string{"b", "a"})
	if f.Current != "b" || len(changes) != 0 {
		t.Errorf("reorder moved focus: current=%q changes=%v", f.Current, changes)
	}

	f.SetOrder([]string{"x", "y"})
	if f.Current != "x" {
		t.Errorf("missing current should move to first, got %q", f.Current)
	}
	if len(changes) != 1 || changes[0] != "b>x" {
		t.Errorf("changes = %v", changes)
	}
}

func TestFocusManager_SetFocusUnknown(t *testing.T) {
	f := &FocusManager{Current: "a", Order: []string{"a"}}
	if f.SetFocus("zzz") {
		t.Error("SetFocus should reject IDs outside the order")
	}
	if f.Current != "a" {
		t.Errorf("focus changed to %q", f.Current)
	}
}
