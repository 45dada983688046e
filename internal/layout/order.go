package layout

import (
	"fmt"
	"slices"
)

// Order is the display order: Order[position] is the declaration index of the
// panel shown at that position. It is always a bijection on [0, len).
type Order []int

// Identity returns the order [0, 1, ..., n-1].
func Identity(n int) Order {
	o := make(Order, n)
	for i := range o {
		o[i] = i
	}
	return o
}

// Position maps a declaration index to its display position, -1 if absent.
func (o Order) Position(decl int) int {
	return slices.Index(o, decl)
}

// Swap returns a copy of o with the display positions of declaration indices
// a and b exchanged. Every other panel keeps its position.
func (o Order) Swap(a, b int) Order {
	pa, pb := o.Position(a), o.Position(b)
	if pa < 0 || pb < 0 {
		panic(fmt.Sprintf("layout: swap %d<->%d outside order %v", a, b, o))
	}
	out := slices.Clone(o)
	out[pa], out[pb] = out[pb], out[pa]
	return out
}

// Valid reports whether o is a bijection on [0, len(o)).
func (o Order) Valid() bool {
	seen := make([]bool, len(o))
	for _, d := range o {
		if d < 0 || d >= len(o) || seen[d] {
			return false
		}
		seen[d] = true
	}
	return true
}
