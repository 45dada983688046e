package layout

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownAxis is returned by ParseAxis for anything but a known axis name.
var ErrUnknownAxis = errors.New("unknown axis")

// Axis is the direction panels are laid out along.
type Axis int

const (
	Horizontal Axis = iota // panels side by side, separators drag along x
	Vertical               // panels stacked, separators drag along y
)

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// ParseAxis accepts "horizontal"/"row" and "vertical"/"column".
// The empty string is the default, Horizontal.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "horizontal", "row":
		return Horizontal, nil
	case "vertical", "column":
		return Vertical, nil
	}
	return Horizontal, fmt.Errorf("%w: %q", ErrUnknownAxis, s)
}

// Point is a pointer position in the host's coordinate space.
type Point struct {
	X, Y float64
}

// Along returns the coordinate on the given axis.
func (p Point) Along(a Axis) float64 {
	if a == Vertical {
		return p.Y
	}
	return p.X
}

// Rect is the container's measured bounds. The zero Rect means "not mounted".
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Origin returns the container's start on the given axis.
func (r Rect) Origin(a Axis) float64 {
	if a == Vertical {
		return r.Y
	}
	return r.X
}

// Extent returns the container's size on the given axis.
func (r Rect) Extent(a Axis) float64 {
	if a == Vertical {
		return r.Height
	}
	return r.Width
}
