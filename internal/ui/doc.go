// Package ui hosts the layout engine in a Bubble Tea program.
//
// Core abstractions:
//   - View: the content of a panel (Elm-style Init/Update/View)
//   - Panel: a declared panel, its View and its current cell bounds
//   - Layout: the panels in display order and the focus order
//   - SplitView: the engine host; mouse drags on separators resize, drags on
//     panel titles reorder, clicks on the collapse marker collapse
//   - FocusManager: keyboard focus across panels in display order
//   - KeyHandler: leader-key (SPC) bindings
package ui
