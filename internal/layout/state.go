package layout

// State is what the layout calculator derives from a children set: the
// totals used by the resize math, the proportion vector and the display order.
type State struct {
	Classification
	Proportions []float64
	Order       Order
}

// Initialize computes the initial state: declared proportions, identity order.
func Initialize(children []ChildDescriptor) State {
	c := Classify(children)
	return State{
		Classification: c,
		Proportions:    c.Proportions(),
		Order:          Identity(len(c.Panels)),
	}
}

// PanelCount returns the number of panels the state was computed for.
func (s State) PanelCount() int {
	return len(s.Proportions)
}
