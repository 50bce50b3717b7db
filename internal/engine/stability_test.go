package engine

import (
	"math"
	"testing"

	"github.com/Obstacleee/OptiPallet/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestScore_EmptyUpperIsNegativeInfinity(t *testing.T) {
	base := model.Layer{{ID: 0, X: 0, Y: 0, Width: 100, Height: 100}}
	assert.Equal(t, math.Inf(-1), Score(base, model.Layer{}))
}

func TestScore_MoreUpperBoxesScoresHigher(t *testing.T) {
	base := model.Layer{
		{ID: 0, X: 0, Y: 0, Width: 50, Height: 50},
		{ID: 1, X: 50, Y: 0, Width: 50, Height: 50},
		{ID: 2, X: 0, Y: 50, Width: 50, Height: 50},
		{ID: 3, X: 50, Y: 50, Width: 50, Height: 50},
	}
	oneBox := model.Layer{{ID: 10, X: 0, Y: 0, Width: 50, Height: 50}}
	twoBoxes := model.Layer{
		{ID: 10, X: 0, Y: 0, Width: 50, Height: 50},
		{ID: 11, X: 50, Y: 0, Width: 50, Height: 50},
	}
	assert.Greater(t, Score(base, twoBoxes), Score(base, oneBox))
}

func TestScore_UnsupportedColumnPenalized(t *testing.T) {
	// A single upper box fully over one base box, with no same-layer
	// neighbors, is an unstable column and should score lower than the same
	// upper footprint split across four boxes. Each quarter is also a column
	// over the one base box and has only two edge neighbors, so all four are
	// penalized too, but the density term still outweighs the penalties.
	base := model.Layer{{ID: 0, X: 0, Y: 0, Width: 100, Height: 100}}

	column := model.Layer{{ID: 10, X: 0, Y: 0, Width: 100, Height: 100}}
	columnScore := Score(base, column)

	quartered := model.Layer{
		{ID: 10, X: 0, Y: 0, Width: 50, Height: 50},
		{ID: 11, X: 50, Y: 0, Width: 50, Height: 50},
		{ID: 12, X: 0, Y: 50, Width: 50, Height: 50},
		{ID: 13, X: 50, Y: 50, Width: 50, Height: 50},
	}
	quarteredScore := Score(base, quartered)

	// columnScore = 1000 - 500 + 100 = 600; quarteredScore = 4000 - 2000 + 100.
	assert.Less(t, columnScore, 1000.0+100.0, "a lone unsupported column should be penalized below its density term plus full support bonus")
	assert.Greater(t, quarteredScore, columnScore)
}

func TestScore_LaterallySupportedColumnNotPenalized(t *testing.T) {
	// Five upper boxes each fully over a distinct base box, packed in a
	// cross so the center box has four neighbors: the center box is a
	// column (100% covered by its base box) but laterally supported, so it
	// should not trigger the unstable-column penalty the way an isolated
	// column does.
	base := model.Layer{
		{ID: 0, X: 50, Y: 50, Width: 50, Height: 50},
		{ID: 1, X: 0, Y: 50, Width: 50, Height: 50},
		{ID: 2, X: 100, Y: 50, Width: 50, Height: 50},
		{ID: 3, X: 50, Y: 0, Width: 50, Height: 50},
		{ID: 4, X: 50, Y: 100, Width: 50, Height: 50},
	}
	upper := model.Layer{
		{ID: 10, X: 50, Y: 50, Width: 50, Height: 50},
		{ID: 11, X: 0, Y: 50, Width: 50, Height: 50},
		{ID: 12, X: 100, Y: 50, Width: 50, Height: 50},
		{ID: 13, X: 50, Y: 0, Width: 50, Height: 50},
		{ID: 14, X: 50, Y: 100, Width: 50, Height: 50},
	}
	isolatedBase := model.Layer{{ID: 0, X: 50, Y: 50, Width: 50, Height: 50}}
	isolatedUpper := model.Layer{{ID: 10, X: 50, Y: 50, Width: 50, Height: 50}}

	supportedScore := Score(base, upper)
	isolatedScore := Score(isolatedBase, isolatedUpper)

	// The four arms of the cross each have one neighbor and are penalized;
	// the center has four and is not: 5000 - 4*500 + 100. The isolated
	// column has no neighbors and is penalized: 1000 - 500 + 100.
	assert.Equal(t, 5000.0-4*500.0+100.0, supportedScore)
	assert.Greater(t, supportedScore, isolatedScore)
}

func TestOverlapArea(t *testing.T) {
	u := model.Placement{X: 0, Y: 0, Width: 10, Height: 10}
	b := model.Placement{X: 5, Y: 5, Width: 10, Height: 10}
	assert.Equal(t, 25, overlapArea(u, b))

	disjoint := model.Placement{X: 100, Y: 100, Width: 10, Height: 10}
	assert.Equal(t, 0, overlapArea(u, disjoint))
}

func TestIsLaterallySupported_CountsEdgeTouchingNeighbors(t *testing.T) {
	center := model.Placement{ID: 0, X: 50, Y: 50, Width: 50, Height: 50}
	layer := model.Layer{
		center,
		{ID: 1, X: 0, Y: 50, Width: 50, Height: 50},
		{ID: 2, X: 100, Y: 50, Width: 50, Height: 50},
	}
	assert.False(t, isLaterallySupported(center, layer), "only 2 neighbors present, below minLateralNeighbors")

	layer = append(layer, model.Placement{ID: 3, X: 50, Y: 0, Width: 50, Height: 50})
	assert.True(t, isLaterallySupported(center, layer), "3rd neighbor reaches minLateralNeighbors")
}
