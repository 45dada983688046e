package ui

// Bounds is a rectangle of terminal cells.
type Bounds struct {
	X, Y, W, H int
}

// Contains reports whether cell (x, y) is inside b.
func (b Bounds) Contains(x, y int) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

// Panel hosts a View for one declared panel and knows its current bounds.
type Panel struct {
	ID     string
	Title  string
	Decl   int // declaration index in the layout engine
	View   View
	Bounds Bounds
}

// ContentBounds is Bounds minus the title row.
func (p Panel) ContentBounds() Bounds {
	if p.Bounds.H <= 1 {
		return Bounds{X: p.Bounds.X, Y: p.Bounds.Y + p.Bounds.H, W: p.Bounds.W}
	}
	return Bounds{X: p.Bounds.X, Y: p.Bounds.Y + 1, W: p.Bounds.W, H: p.Bounds.H - 1}
}
