package ui

// Layout arranges panels and defines focus order.
type Layout interface {
	Panels() []Panel     // display order
	FocusOrder() []string // panel IDs, display order
}
