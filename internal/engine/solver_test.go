package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/Obstacleee/OptiPallet/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveLayer_ExactFit(t *testing.T) {
	pallet := model.Pallet{L: 100, W: 100}
	box := model.BoxDims{L: 100, W: 100, H: 50}

	layer, err := SolveLayer(pallet, box, 200*time.Millisecond, 2, 1, nil)
	require.NoError(t, err)
	require.Len(t, layer, 1)
	assert.Equal(t, 0, layer[0].X)
	assert.Equal(t, 0, layer[0].Y)
	assert.Equal(t, 100, layer[0].Width)
	assert.Equal(t, 100, layer[0].Height)
}

func TestSolveLayer_GridPacking(t *testing.T) {
	pallet := model.Pallet{L: 300, W: 200}
	box := model.BoxDims{L: 100, W: 100, H: 50}

	layer, err := SolveLayer(pallet, box, 300*time.Millisecond, 4, 7, nil)
	require.NoError(t, err)
	assert.Equal(t, 6, len(layer))
	assertNoOverlaps(t, layer)
	assertWithinPallet(t, layer, pallet)
}

func TestSolveLayer_RotationUsedWhenItHelps(t *testing.T) {
	// 200x100 pallet, 50x40 box: rotation should appear somewhere across a
	// handful of seeded runs, and every placement must respect the pallet.
	pallet := model.Pallet{L: 200, W: 100}
	box := model.BoxDims{L: 50, W: 40, H: 10}

	sawRotated := false
	for seed := int64(1); seed <= 5; seed++ {
		layer, err := SolveLayer(pallet, box, 200*time.Millisecond, 2, seed, nil)
		require.NoError(t, err)
		assertNoOverlaps(t, layer)
		assertWithinPallet(t, layer, pallet)
		for _, p := range layer {
			if p.Rotation == model.Rotation90 {
				sawRotated = true
			}
		}
	}
	// Only rotated 40x50 placements reach the area bound of 10 boxes (5x2);
	// unrotated 50x40 placements stop at 8, so the search keeps going until
	// a rotated packing is found.
	assert.True(t, sawRotated, "rotation should appear when it fits more boxes")
}

func TestSolveLayer_ObstacleIsRespected(t *testing.T) {
	pallet := model.Pallet{L: 300, W: 200}
	box := model.BoxDims{L: 100, W: 100, H: 50}
	obstacle := model.Obstacle{X: 140, Y: 90, W: 1, H: 1}

	layer, err := SolveLayer(pallet, box, 300*time.Millisecond, 4, 3, &obstacle)
	require.NoError(t, err)
	for _, p := range layer {
		assert.False(t, rectsOverlap(rect{p.X, p.Y, p.Width, p.Height}, rect{obstacle.X, obstacle.Y, obstacle.W, obstacle.H}),
			"placement %+v must not cover the obstacle", p)
	}
}

func TestSolveLayer_EmptyWhenNothingFits(t *testing.T) {
	pallet := model.Pallet{L: 10, W: 10}
	box := model.BoxDims{L: 10, W: 10, H: 5}
	obstacle := model.Obstacle{X: 0, Y: 0, W: 1, H: 1}

	layer, err := SolveLayer(pallet, box, 50*time.Millisecond, 1, 1, &obstacle)
	require.NoError(t, err)
	assert.Empty(t, layer)
}

func TestSolveLayer_InvalidInput(t *testing.T) {
	cases := []struct {
		name   string
		pallet model.Pallet
		box    model.BoxDims
		limit  time.Duration
		worker int
	}{
		{"box wider than pallet", model.Pallet{L: 100, W: 100}, model.BoxDims{L: 150, W: 100, H: 10}, time.Second, 1},
		{"zero time limit", model.Pallet{L: 100, W: 100}, model.BoxDims{L: 10, W: 10, H: 10}, 0, 1},
		{"zero workers", model.Pallet{L: 100, W: 100}, model.BoxDims{L: 10, W: 10, H: 10}, time.Second, 0},
		{"non-positive pallet", model.Pallet{L: 0, W: 100}, model.BoxDims{L: 10, W: 10, H: 10}, time.Second, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := SolveLayer(tc.pallet, tc.box, tc.limit, tc.worker, 1, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, model.ErrInvalidInput))
		})
	}
}

func assertNoOverlaps(t *testing.T, layer model.Layer) {
	t.Helper()
	for i := range layer {
		for j := i + 1; j < len(layer); j++ {
			assert.False(t, layer[i].Overlaps(layer[j]), "placements %+v and %+v overlap", layer[i], layer[j])
		}
	}
}

func assertWithinPallet(t *testing.T, layer model.Layer, pallet model.Pallet) {
	t.Helper()
	for _, p := range layer {
		assert.GreaterOrEqual(t, p.X, 0)
		assert.GreaterOrEqual(t, p.Y, 0)
		assert.LessOrEqual(t, p.Right(), pallet.L)
		assert.LessOrEqual(t, p.Top(), pallet.W)
	}
}
