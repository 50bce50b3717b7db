package model

import "time"

// EngineSettings holds the tunables of a single Generate call, the engine
// analog of the teacher's flat CutSettings struct.
type EngineSettings struct {
	// NumSolutions is the upper bound on distinct templates returned.
	NumSolutions int

	// Workers is the worker-count hint threaded through to each solve.
	Workers int

	// BaseTimeLimit bounds the layer-1 (base) solve. It must be positive;
	// Generate rejects zero or negative values with ErrInvalidInput.
	BaseTimeLimit time.Duration

	// UpperTimeLimit bounds each layer-2 (upper) solve attempt.
	UpperTimeLimit time.Duration

	// AttemptMultiplier controls the diversification budget:
	// attempts = AttemptMultiplier * NumSolutions.
	AttemptMultiplier int

	// Seed, if non-zero, fixes the generation's random draws (obstacle
	// positions and each solve's worker seeds); zero seeds from the clock.
	// Results can still differ between runs, since each solve keeps the
	// best layer its racing workers find within a wall-clock time limit.
	Seed int64
}

// DefaultSettings returns the spec's defaults: a 10s base solve, a 5s
// upper-layer solve per attempt, and a 5x diversification budget.
func DefaultSettings() EngineSettings {
	return EngineSettings{
		NumSolutions:      1,
		Workers:           4,
		BaseTimeLimit:     10 * time.Second,
		UpperTimeLimit:    5 * time.Second,
		AttemptMultiplier: 5,
		Seed:              0,
	}
}
