package engine

import (
	"math"

	"github.com/Obstacleee/OptiPallet/internal/model"
)

// lateralTolerance is the absolute edge-touch tolerance used for lateral
// support and label-face detection, in the same units as the dimensions.
const lateralTolerance = 1

// minLateralNeighbors is the number of same-layer neighbors an upper box
// needs to be considered laterally supported.
const minLateralNeighbors = 3

// columnOverlapThreshold is the fraction of an upper box's footprint a
// single base box must cover for the upper box to be classified a column.
const columnOverlapThreshold = 0.90

// Score computes the stability score of an upper layer resting on a base
// layer: higher is better, and an empty upper layer scores negative
// infinity. The dominant term rewards density; the penalty term discourages
// unsupported single-column stacks, which can pivot off their one base box;
// the lateral-support bonus offsets that penalty because columns flanked by
// neighbors in the same upper layer tie together and do not pivot.
func Score(base, upper model.Layer) float64 {
	if len(upper) == 0 {
		return math.Inf(-1)
	}

	score := 1000.0 * float64(len(upper))
	unstableColumns := 0
	supportRatioSum := 0.0

	for _, u := range upper {
		area := u.Width * u.Height
		if area == 0 {
			continue
		}

		supportedArea := 0
		isColumn := false
		for _, b := range base {
			overlap := overlapArea(u, b)
			if float64(overlap)/float64(area) > columnOverlapThreshold {
				isColumn = true
			}
			supportedArea += overlap
		}

		if isColumn && !isLaterallySupported(u, upper) {
			unstableColumns++
		}

		supportRatioSum += float64(supportedArea) / float64(area)
	}

	score -= 500.0 * float64(unstableColumns)
	score += 100.0 * (supportRatioSum / float64(len(upper)))
	return score
}

// overlapArea returns the overlap area between an upper box and a base box.
func overlapArea(u, b model.Placement) int {
	ox := min(u.Right(), b.Right()) - max(u.X, b.X)
	oy := min(u.Top(), b.Top()) - max(u.Y, b.Y)
	if ox < 0 {
		ox = 0
	}
	if oy < 0 {
		oy = 0
	}
	return ox * oy
}

// isLaterallySupported reports whether box has at least minLateralNeighbors
// other boxes in the same layer touching one of its edges with overlapping
// extent on the other axis.
func isLaterallySupported(box model.Placement, layer model.Layer) bool {
	neighbors := 0
	for _, other := range layer {
		if other.ID == box.ID {
			continue
		}

		verticalNeighbor := absInt(box.Top()-other.Y) < lateralTolerance || absInt(box.Y-other.Top()) < lateralTolerance
		if verticalNeighbor && box.X < other.Right() && box.Right() > other.X {
			neighbors++
			continue
		}

		horizontalNeighbor := absInt(box.X-other.Right()) < lateralTolerance || absInt(box.Right()-other.X) < lateralTolerance
		if horizontalNeighbor && box.Y < other.Top() && box.Top() > other.Y {
			neighbors++
		}
	}
	return neighbors >= minLateralNeighbors
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
