package model

import "errors"

// Sentinel errors for the engine's failure taxonomy. Callers distinguish
// them with errors.Is; UpperInfeasible and SignatureCollision never escape
// Generate — they are handled locally by skipping the attempt.
var (
	// ErrInvalidInput is returned immediately, before any solve attempt,
	// when dimension constraints are violated (l > L, non-positive values,
	// num_solutions <= 0, non-positive time limit or worker count).
	ErrInvalidInput = errors.New("invalid input")

	// ErrBaseInfeasible is returned when the base layer (layer 1) solve
	// produced an empty layer; Generate aborts and reports an error bundle.
	ErrBaseInfeasible = errors.New("base layer infeasible")

	// ErrSolver signals a non-recoverable fault in the solving process
	// itself, as opposed to an ordinary empty-result outcome.
	ErrSolver = errors.New("solver error")
)
