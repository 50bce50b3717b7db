package engine

import (
	"sort"

	"github.com/Obstacleee/OptiPallet/internal/model"
	"github.com/google/uuid"
)

// Label faces, numbered the way downstream labeling equipment expects:
// bottom (toward y=0), right (toward x=L), top, left.
const (
	FaceBottom = 1
	FaceRight  = 2
	FaceTop    = 3
	FaceLeft   = 4
)

// formatLayer derives placement order and label face for every box in a
// layer and returns the wire-shape placements, already sorted by
// placement order.
func formatLayer(layer model.Layer, pallet model.Pallet) []model.PlacementOut {
	ordered := make(model.Layer, len(layer))
	copy(ordered, layer)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Y != ordered[j].Y {
			return ordered[i].Y < ordered[j].Y
		}
		return ordered[i].X < ordered[j].X
	})

	out := make([]model.PlacementOut, len(ordered))
	for i, box := range ordered {
		out[i] = model.PlacementOut{
			PlacementOrder: i + 1,
			X:              box.X,
			Y:              box.Y,
			Width:          box.Width,
			Height:         box.Height,
			Rotation:       int(box.Rotation),
			LabelFace:      labelFace(box, layer, pallet),
		}
	}
	return out
}

// labelFace determines which of the four side faces of box is accessible —
// neither touching another box in the same layer nor the pallet's outer
// boundary — and returns the lowest-numbered accessible face. If all four
// are blocked it falls back to face 1, the documented open question in the
// originating specification: downstream labeling equipment applies the
// label to the first accessible face, preferring the front by convention.
func labelFace(box model.Placement, layer model.Layer, pallet model.Pallet) int {
	blocked := [5]bool{} // index 1..4 used

	for _, other := range layer {
		if other.ID == box.ID {
			continue
		}
		xOverlap := max(box.X, other.X) < min(box.Right(), other.Right())
		yOverlap := max(box.Y, other.Y) < min(box.Top(), other.Top())

		if absInt(other.Top()-box.Y) < lateralTolerance && xOverlap {
			blocked[FaceBottom] = true
		}
		if absInt(other.X-box.Right()) < lateralTolerance && yOverlap {
			blocked[FaceRight] = true
		}
		if absInt(other.Y-box.Top()) < lateralTolerance && xOverlap {
			blocked[FaceTop] = true
		}
		if absInt(other.Right()-box.X) < lateralTolerance && yOverlap {
			blocked[FaceLeft] = true
		}
	}

	if box.Y < lateralTolerance {
		blocked[FaceBottom] = true
	}
	if absInt(box.Right()-pallet.L) < lateralTolerance {
		blocked[FaceRight] = true
	}
	if absInt(box.Top()-pallet.W) < lateralTolerance {
		blocked[FaceTop] = true
	}
	if box.X < lateralTolerance {
		blocked[FaceLeft] = true
	}

	for face := FaceBottom; face <= FaceLeft; face++ {
		if !blocked[face] {
			return face
		}
	}
	return FaceBottom
}

// buildTemplate formats a (base, upper) layer pair into a transmittable
// template record, assigning it a fresh ID.
func buildTemplate(pallet model.Pallet, base, upper model.Layer, score float64) model.Template {
	return model.Template{
		ID:             uuid.New().String()[:8],
		Score:          score,
		Layer1BoxCount: len(base),
		Layer2BoxCount: len(upper),
		Layer1:         formatLayer(base, pallet),
		Layer2:         formatLayer(upper, pallet),
	}
}
