package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSolveWidthsFixedColumnsHonored(t *testing.T) {
	widths := SolveWidths([]Column{{Width: 20}, {Width: 30}}, 100)
	assert.Equal(t, []int{20, 30}, widths)
}

func TestSolveWidthsFixedColumnClampedToMinWidth(t *testing.T) {
	widths := SolveWidths([]Column{{Width: 5, MinWidth: 15}}, 100)
	assert.Equal(t, []int{15}, widths)
}

func TestSolveWidthsFlexSplitsProportionally(t *testing.T) {
	widths := SolveWidths([]Column{{Flex: 1}, {Flex: 2}}, 90)
	assert.Equal(t, []int{30, 60}, widths)
}

func TestSolveWidthsAutoSplitsEvenlyWithRemainderOnLast(t *testing.T) {
	widths := SolveWidths([]Column{{}, {}, {}}, 10)
	assert.Equal(t, 10, widths[0]+widths[1]+widths[2])
	assert.Equal(t, widths[0], widths[1])
}

func TestSolveWidthsMixedFixedFlexAuto(t *testing.T) {
	widths := SolveWidths([]Column{
		{Width: 20},
		{Flex: 1},
		{},
	}, 100)
	// fixed=20, remaining=80 all goes to the one flex column, auto gets 0
	assert.Equal(t, 20, widths[0])
	assert.Equal(t, 80, widths[1])
	assert.Equal(t, 0, widths[2])
}

func TestSolveWidthsNegativeRemainingClampsToZero(t *testing.T) {
	widths := SolveWidths([]Column{{Width: 200}, {}}, 50)
	assert.Equal(t, 200, widths[0])
	assert.Equal(t, 0, widths[1])
}
