package ui

import "slices"

// FocusManager tracks and rotates focus across panels.
type FocusManager struct {
	Current  string   // ID of the currently focused panel
	Order    []string // Tab order for focus rotation
	OnChange func(from, to string)
}

// Next advances focus to the next panel in order and returns its ID.
func (f *FocusManager) Next() string { return f.step(1) }

// Prev moves focus to the previous panel in order and returns its ID.
func (f *FocusManager) Prev() string { return f.step(-1) }

func (f *FocusManager) step(delta int) string {
	if len(f.Order) == 0 {
		return ""
	}
	idx := slices.Index(f.Order, f.Current)
	if idx < 0 && delta < 0 {
		idx = 0
	}
	n := len(f.Order)
	f.set(f.Order[((idx+delta)%n+n)%n])
	return f.Current
}

// SetFocus focuses the panel with the given ID.
// Returns false if the ID is not in Order.
func (f *FocusManager) SetFocus(id string) bool {
	if !slices.Contains(f.Order, id) {
		return false
	}
	f.set(id)
	return true
}

// SetOrder replaces the rotation order, e.g. after panels were reordered.
// Focus stays on the current panel when it is still present, otherwise it
// moves to the first one.
func (f *FocusManager) SetOrder(order []string) {
	f.Order = slices.Clone(order)
	if len(f.Order) == 0 {
		f.set("")
		return
	}
	if !slices.Contains(f.Order, f.Current) {
		f.set(f.Order[0])
	}
}

func (f *FocusManager) set(id string) {
	from := f.Current
	f.Current = id
	if f.OnChange != nil && from != id {
		f.OnChange(from, id)
	}
}
