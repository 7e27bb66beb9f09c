// Package pathfind answers route queries against a navgraph.Graph.
//
// A query resolves the nearest lattice node to each endpoint, runs A* over
// the lattice links and compresses the node path into a short corner list.
// Failing to find a route is an ordinary outcome: callers check the
// returned error with errors.Is against ErrNoReachableNode and
// ErrNoPathFound and fall back to idling or retrying on a later tick.
package pathfind

import "nav-lattice/navgraph"

// Route is the unsimplified result of a search.
type Route struct {
	Nodes    []int            // Lattice indices, start first
	Points   []navgraph.Point // Positions of Nodes
	Corners  []navgraph.Point // Simplified waypoints
	Explored int              // Nodes expanded by the search
}

// Pathfinder runs searches against one graph.
type Pathfinder struct {
	graph *navgraph.Graph
}

// New binds a Pathfinder to graph.
func New(graph *navgraph.Graph) *Pathfinder {
	return &Pathfinder{graph: graph}
}

// FindPath returns the corner waypoints from start to goal.
//
// The start node is the closest node to start regardless of validity; the
// goal node is the closest valid node to goal, or one occupied by exempt.
// Nodes occupied by exempt are traversable. Pass navgraph.NoObject when the
// caller occupies nothing.
func (pf *Pathfinder) FindPath(start, goal navgraph.Point, exempt navgraph.ObjectID) ([]navgraph.Point, error) {
	route, err := pf.FindRoute(start, goal, exempt)
	if err != nil {
		return nil, err
	}
	return route.Corners, nil
}

// FindRoute is FindPath but also returns the raw node path.
func (pf *Pathfinder) FindRoute(start, goal navgraph.Point, exempt navgraph.ObjectID) (Route, error) {
	var (
		route Route
		err   error
	)
	pf.graph.Search(func(l *navgraph.Lattice) {
		route, err = findRoute(l, start, goal, exempt)
	})
	return route, err
}

func findRoute(l *navgraph.Lattice, start, goal navgraph.Point, exempt navgraph.ObjectID) (Route, error) {
	startNode := l.Nearest(start, false, exempt)
	goalNode := l.Nearest(goal, true, exempt)
	if startNode == navgraph.NoNode || goalNode == navgraph.NoNode {
		return Route{}, ErrNoReachableNode
	}

	path, explored, err := search(l, startNode, goalNode, exempt)
	if err != nil {
		return Route{Explored: explored}, err
	}

	points := make([]navgraph.Point, len(path))
	for i, node := range path {
		points[i] = l.Nodes[node].Position
	}
	return Route{
		Nodes:    path,
		Points:   points,
		Corners:  Corners(l, path),
		Explored: explored,
	}, nil
}
