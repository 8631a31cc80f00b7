package cluster

import "github.com/rotisserie/eris"

// Error categories. Every failure from this package wraps one of these, so
// callers can classify with errors.Is and decide whether to adjust the team
// count (ErrInput) or the capacity bound (ErrCapacity) before retrying the
// whole request. The package never retries internally and never returns a
// partial result alongside an error.
var (
	// ErrInput marks a request that is invalid as given.
	ErrInput = eris.New("cluster: invalid input")

	// ErrCapacity marks a redistribution that cannot satisfy the capacity
	// bound by moving addresses between teams.
	ErrCapacity = eris.New("cluster: capacity unsatisfiable")
)
