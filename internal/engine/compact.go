package engine

import (
	"sort"

	"github.com/Obstacleee/OptiPallet/internal/model"
)

// Compact translates every placement in layer toward the y=0 edge, then
// toward the x=0 edge, so each box rests against another box or a wall.
// It returns a new layer; the input is not mutated. An empty layer returns
// empty; a single box moves to (0, 0). Boxes are never rotated or resized.
func Compact(layer model.Layer) model.Layer {
	if len(layer) == 0 {
		return model.Layer{}
	}

	working := layer.Clone()
	compactAxis(working, true)
	compactAxis(working, false)
	return working
}

// compactAxis performs one gravity sweep. vertical=true sweeps y toward 0
// (sorting by ascending y, supporting on x-overlap); vertical=false sweeps
// x toward 0 with the axes transposed. Sorting by the coordinate being
// reduced guarantees every placement's supporters are processed first, so
// each placement moves at most once and no overlap is introduced.
func compactAxis(layer model.Layer, vertical bool) {
	order := make([]int, len(layer))
	for i := range order {
		order[i] = i
	}

	if vertical {
		sort.SliceStable(order, func(i, j int) bool { return layer[order[i]].Y < layer[order[j]].Y })
	} else {
		sort.SliceStable(order, func(i, j int) bool { return layer[order[i]].X < layer[order[j]].X })
	}

	for pos, idx := range order {
		box := &layer[idx]
		support := 0
		for k := 0; k < pos; k++ {
			other := layer[order[k]]
			if vertical {
				if box.X < other.Right() && box.Right() > other.X {
					support = max(support, other.Top())
				}
			} else {
				if box.Y < other.Top() && box.Top() > other.Y {
					support = max(support, other.Right())
				}
			}
		}
		if vertical {
			box.Y = support
		} else {
			box.X = support
		}
	}
}
