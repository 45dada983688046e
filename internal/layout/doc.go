// Package layout is the state engine behind a single-axis panel layout.
//
// A layout is declared as an ordered sequence of children: panels, separators,
// spacers and anything else the host wants to render. The engine derives:
//   - a proportion vector (one flex weight per panel, in declaration order)
//   - an Order permutation (display position -> declaration index)
//   - a CollapsedSet of declaration indices
//
// and mutates them only through its methods: separator drags
// (PressSeparator, SeparatorSession.Move/Release, DoubleClickSeparator),
// panel reordering (StartDrag, DragOver, EndDrag) and Toggle.
//
// Two index spaces are in play. Sizing math always uses declaration indices;
// what the user sees uses display positions. Order and Order.Position are the
// only mapping between them.
//
// Project turns engine state into per-child render attributes, and
// Projection.Segments turns those into integer cell spans for a terminal.
package layout
