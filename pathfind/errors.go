package pathfind

import "errors"

var (
	// ErrNoReachableNode indicates no lattice node qualifies as the start or
	// the goal: the graph is empty or the goal is fully enclosed.
	ErrNoReachableNode = errors.New("pathfind: no reachable node near start or goal")
	// ErrNoPathFound indicates both endpoints resolved but no chain of
	// traversable links joins them.
	ErrNoPathFound = errors.New("pathfind: no path between start and goal")
	// ErrInconsistentGraph indicates a predecessor cycle during path
	// reconstruction.
	ErrInconsistentGraph = errors.New("pathfind: predecessor cycle in search result")
)
