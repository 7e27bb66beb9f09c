package navgraph

import "errors"

var (
	// ErrInvalidConfig indicates a Config that cannot produce a lattice.
	ErrInvalidConfig = errors.New("navgraph: invalid config")
	// ErrNilProvider indicates a Graph was constructed without a collision provider.
	ErrNilProvider = errors.New("navgraph: collision provider must not be nil")
)
