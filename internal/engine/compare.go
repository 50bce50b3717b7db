package engine

import (
	"fmt"

	"github.com/Obstacleee/OptiPallet/internal/model"
)

// ComparisonScenario names a settings variant to run side by side with
// others, e.g. to show the effect of more workers or a larger
// diversification budget.
type ComparisonScenario struct {
	Name     string
	Settings model.EngineSettings
}

// ComparisonResult holds one scenario's bundle plus a few derived stats.
type ComparisonResult struct {
	Scenario    ComparisonScenario
	Bundle      model.Bundle
	Err         error
	BestScore   float64
	NumFound    int
	DurationSec float64
}

// CompareScenarios runs Generate once per scenario and returns the results
// in scenario order, for side-by-side comparison of different generation
// parameters.
func CompareScenarios(pallet model.Pallet, box model.BoxDims, scenarios []ComparisonScenario) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		bundle, err := Generate(pallet, box, scenario.Settings)

		result := ComparisonResult{
			Scenario:    scenario,
			Bundle:      bundle,
			Err:         err,
			NumFound:    bundle.GenerationInfo.NumSolutionsFound,
			DurationSec: bundle.GenerationInfo.DurationSeconds,
		}
		if len(bundle.Templates) > 0 {
			result.BestScore = bundle.Templates[0].Score
		}
		results = append(results, result)
	}

	return results
}

// BuildDefaultScenarios generates a set of comparison scenarios varying the
// worker count and the diversification budget against a base settings
// value, for a quick what-if comparison.
func BuildDefaultScenarios(base model.EngineSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{Name: "Current Settings", Settings: base},
	}

	moreWorkers := base
	moreWorkers.Workers = base.Workers * 2
	scenarios = append(scenarios, ComparisonScenario{
		Name:     fmt.Sprintf("%d Workers", moreWorkers.Workers),
		Settings: moreWorkers,
	})

	widerSearch := base
	widerSearch.AttemptMultiplier = base.AttemptMultiplier * 2
	scenarios = append(scenarios, ComparisonScenario{
		Name:     fmt.Sprintf("Attempt Multiplier %d", widerSearch.AttemptMultiplier),
		Settings: widerSearch,
	})

	return scenarios
}
