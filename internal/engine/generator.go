package engine

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/Obstacleee/OptiPallet/internal/model"
)

// Generate orchestrates C1-C5: it computes a canonical base layer once,
// then explores diversified upper layers by perturbing the solver with a
// random keep-out obstacle, deduplicating and ranking the results. It
// produces up to settings.NumSolutions distinct templates; it may return
// fewer. Generate is a single blocking call: it returns when the
// diversification budget is exhausted or num_solutions templates have been
// found, whichever comes first.
func Generate(pallet model.Pallet, box model.BoxDims, settings model.EngineSettings) (model.Bundle, error) {
	if err := validateGenerateInputs(pallet, box, settings); err != nil {
		return model.Bundle{}, err
	}

	start := time.Now()
	masterSeed := settings.Seed
	if masterSeed == 0 {
		masterSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(masterSeed))

	layer1raw, err := SolveLayer(pallet, box, settings.BaseTimeLimit, settings.Workers, rng.Int63(), nil)
	if err != nil {
		return model.Bundle{}, fmt.Errorf("%w: %v", model.ErrSolver, err)
	}
	layer1 := Compact(layer1raw)
	if len(layer1) == 0 {
		return model.Bundle{
			PalletDimensions: pallet,
			BoxDimensions:    box,
			Error:            "base layer infeasible",
		}, model.ErrBaseInfeasible
	}

	attempts := settings.AttemptMultiplier * settings.NumSolutions
	seen := make(map[string]bool)
	var templates []model.Template

	for i := 0; i < attempts && len(templates) < settings.NumSolutions; i++ {
		obstacle := randomObstacle(box, rng)
		layer2raw, err := SolveLayer(pallet, box, settings.UpperTimeLimit, settings.Workers, rng.Int63(), &obstacle)
		if err != nil {
			return model.Bundle{}, fmt.Errorf("%w: %v", model.ErrSolver, err)
		}

		layer2 := Compact(layer2raw)
		if len(layer2) == 0 {
			continue // UpperInfeasible: transient, skip this attempt
		}

		signature := layer2.Signature()
		if seen[signature] {
			continue // SignatureCollision: already have this geometry
		}
		seen[signature] = true

		score := Score(layer1, layer2)
		templates = append(templates, buildTemplate(pallet, layer1, layer2, score))
	}

	sort.SliceStable(templates, func(i, j int) bool {
		return templates[i].Score > templates[j].Score
	})

	return model.Bundle{
		GenerationInfo: model.GenerationInfo{
			DurationSeconds:   time.Since(start).Seconds(),
			NumSolutionsFound: len(templates),
		},
		PalletDimensions: pallet,
		BoxDimensions:    box,
		Templates:        templates,
	}, nil
}

// randomObstacle draws a keep-out point near one corner of the box
// footprint: ox in [l/4, l], oy in [w/4, w], a 1x1 rectangle. This is by
// observation, not proof — it biases the perturbation toward a narrow
// region, which is enough to nudge the solver off its preferred optimum
// without measurably reducing the achievable count.
func randomObstacle(box model.BoxDims, rng *rand.Rand) model.Obstacle {
	loL, loW := box.L/4, box.W/4
	ox := loL + rng.Intn(box.L-loL+1)
	oy := loW + rng.Intn(box.W-loW+1)
	return model.Obstacle{X: ox, Y: oy, W: 1, H: 1}
}

func validateGenerateInputs(pallet model.Pallet, box model.BoxDims, settings model.EngineSettings) error {
	if pallet.L <= 0 || pallet.W <= 0 {
		return fmt.Errorf("%w: pallet dimensions must be positive", model.ErrInvalidInput)
	}
	if box.L <= 0 || box.W <= 0 || box.H <= 0 {
		return fmt.Errorf("%w: box dimensions must be positive", model.ErrInvalidInput)
	}
	if box.L > pallet.L || box.W > pallet.W {
		return fmt.Errorf("%w: box does not fit on pallet", model.ErrInvalidInput)
	}
	if settings.NumSolutions <= 0 {
		return fmt.Errorf("%w: num_solutions must be positive", model.ErrInvalidInput)
	}
	if settings.Workers <= 0 {
		return fmt.Errorf("%w: workers must be positive", model.ErrInvalidInput)
	}
	if settings.BaseTimeLimit <= 0 || settings.UpperTimeLimit <= 0 {
		return fmt.Errorf("%w: time limits must be positive", model.ErrInvalidInput)
	}
	if settings.AttemptMultiplier <= 0 {
		return fmt.Errorf("%w: attempt multiplier must be positive", model.ErrInvalidInput)
	}
	return nil
}
