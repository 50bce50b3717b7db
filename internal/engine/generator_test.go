package engine

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/Obstacleee/OptiPallet/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings() model.EngineSettings {
	return model.EngineSettings{
		NumSolutions:      3,
		Workers:           2,
		BaseTimeLimit:     150 * time.Millisecond,
		UpperTimeLimit:    100 * time.Millisecond,
		AttemptMultiplier: 4,
		Seed:              42,
	}
}

func TestGenerate_ProducesRankedTemplates(t *testing.T) {
	pallet := model.Pallet{L: 300, W: 200}
	box := model.BoxDims{L: 100, W: 100, H: 50}

	bundle, err := Generate(pallet, box, testSettings())
	require.NoError(t, err)
	require.NotEmpty(t, bundle.Templates)
	assert.LessOrEqual(t, len(bundle.Templates), testSettings().NumSolutions)

	for i := 1; i < len(bundle.Templates); i++ {
		assert.GreaterOrEqual(t, bundle.Templates[i-1].Score, bundle.Templates[i].Score, "templates must be sorted by descending score")
	}
	assert.Equal(t, len(bundle.Templates), bundle.GenerationInfo.NumSolutionsFound)
	assert.GreaterOrEqual(t, bundle.GenerationInfo.DurationSeconds, 0.0)
}

func TestGenerate_DeduplicatesIdenticalUpperLayers(t *testing.T) {
	pallet := model.Pallet{L: 300, W: 200}
	box := model.BoxDims{L: 100, W: 100, H: 50}

	bundle, err := Generate(pallet, box, testSettings())
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, tmpl := range bundle.Templates {
		sig := signatureOf(tmpl.Layer2)
		assert.False(t, seen[sig], "two templates share an identical upper-layer geometry")
		seen[sig] = true
	}
}

func signatureOf(out []model.PlacementOut) string {
	layer := make(model.Layer, len(out))
	for i, p := range out {
		layer[i] = model.Placement{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height}
	}
	return layer.Signature()
}

func TestGenerate_ExactFitSingleBoxPerLayer(t *testing.T) {
	// Box equal to the pallet: the base layer places exactly one box. An
	// upper-layer attempt finds room only when its obstacle is drawn at
	// x=50 or y=50, i.e. just outside the pallet; with seed 42 one such draw
	// occurs, and every such layer has the same single box at (0,0), so
	// dedup leaves exactly one template with one box per layer.
	pallet := model.Pallet{L: 50, W: 50}
	box := model.BoxDims{L: 50, W: 50, H: 20}
	settings := testSettings()
	settings.BaseTimeLimit = 50 * time.Millisecond
	settings.UpperTimeLimit = 30 * time.Millisecond

	bundle, err := Generate(pallet, box, settings)
	require.NoError(t, err)
	require.Len(t, bundle.Templates, 1)
	assert.Equal(t, 1, bundle.GenerationInfo.NumSolutionsFound)
	assert.Equal(t, 1, bundle.Templates[0].Layer1BoxCount)
	assert.Equal(t, 1, bundle.Templates[0].Layer2BoxCount)
}

func TestGenerate_InvalidInput(t *testing.T) {
	pallet := model.Pallet{L: 300, W: 200}
	box := model.BoxDims{L: 100, W: 100, H: 50}

	settings := testSettings()
	settings.NumSolutions = 0
	_, err := Generate(pallet, box, settings)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidInput))
}

func TestRandomObstacle_WithinExpectedRange(t *testing.T) {
	box := model.BoxDims{L: 40, W: 20, H: 10}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		o := randomObstacle(box, rng)
		assert.GreaterOrEqual(t, o.X, box.L/4)
		assert.LessOrEqual(t, o.X, box.L)
		assert.GreaterOrEqual(t, o.Y, box.W/4)
		assert.LessOrEqual(t, o.Y, box.W)
		assert.Equal(t, 1, o.W)
		assert.Equal(t, 1, o.H)
	}
}
