package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func panel(p float64) ChildDescriptor { return ChildDescriptor{Role: RolePanel, Proportion: p} }
func separator() ChildDescriptor       { return ChildDescriptor{Role: RoleSeparator} }
func spacer(size float64) ChildDescriptor {
	return ChildDescriptor{Role: RoleSpacer, Size: size}
}
func fixedWidth(w float64) ChildDescriptor {
	return ChildDescriptor{Role: RolePanel, Fixed: true, FixedWidth: w}
}

func TestClassify_CountsPanelsAndZeroesFixed(t *testing.T) {
	children := []ChildDescriptor{
		fixedWidth(100),
		separator(),
		panel(2),
		{Role: "header", Size: 3},
		separator(),
		{Role: RolePanel, Fixed: true, FixedHeight: 7},
		spacer(12),
		panel(1),
		spacer(3),
	}

	c := Classify(children)

	require.Len(t, c.Panels, 4)
	assert.Equal(t, []float64{0, 2, 0, 1}, c.Proportions())
	assert.Equal(t, 100.0, c.TotalFixedWidth)
	assert.Equal(t, 7.0, c.TotalFixedHeight)
	assert.Equal(t, 15.0, c.TotalSpacerSize)
	assert.Equal(t, 100.0, c.TotalFixedExtent(Horizontal))
	assert.Equal(t, 7.0, c.TotalFixedExtent(Vertical))
	assert.Equal(t, []int{0, -1, 1, -1, -1, 2, -1, 3, -1}, c.PanelIndex)
	assert.Equal(t, []int{0, 2, 5, 7}, c.PanelChild)
	assert.Equal(t, []int{-1, 0, -1, -1, 1, -1, -1, -1, -1}, c.SeparatorIndex)
}

func TestClassify_FixedWidthWinsOverHeight(t *testing.T) {
	c := Classify([]ChildDescriptor{{Role: RolePanel, Fixed: true, FixedWidth: 5, FixedHeight: 9}})

	assert.Equal(t, 5.0, c.TotalFixedWidth)
	assert.Zero(t, c.TotalFixedHeight)
	assert.Zero(t, c.Panels[0].FixedExtent(Vertical))
}

func TestClassify_ToleratesMalformedChildren(t *testing.T) {
	c := Classify([]ChildDescriptor{
		{Role: RolePanel, Fixed: true}, // no extent at all
		{Role: RolePanel},              // no proportion
		separator(),
	})

	require.Len(t, c.Panels, 2)
	assert.Equal(t, []float64{0, 0}, c.Proportions())
	assert.Zero(t, c.TotalFixedWidth)
	assert.Zero(t, c.TotalFixedHeight)
}

func TestClassify_Empty(t *testing.T) {
	c := Classify(nil)

	assert.Empty(t, c.Panels)
	assert.Empty(t, c.Proportions())
}

func TestInitialize_IdentityOrder(t *testing.T) {
	s := Initialize([]ChildDescriptor{panel(1), separator(), panel(3), separator(), panel(2)})

	assert.Equal(t, 3, s.PanelCount())
	assert.Equal(t, []float64{1, 3, 2}, s.Proportions)
	assert.Equal(t, Order{0, 1, 2}, s.Order)
}

func TestParseAxis(t *testing.T) {
	for in, want := range map[string]Axis{
		"":           Horizontal,
		"horizontal": Horizontal,
		"Row":        Horizontal,
		"vertical":   Vertical,
		" column ":   Vertical,
	} {
		got, err := ParseAxis(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseAxis("diagonal")
	assert.ErrorIs(t, err, ErrUnknownAxis)
}
