package pathfind

import "nav-lattice/navgraph"

// Corners reduces a raw node path to the waypoints an agent should steer
// through: the first node, every interior node that sits next to an empty
// slot or an invalid neighbour, and the last node.
//
// This is an adjacency test, not a line-of-sight check. Interior nodes in
// open space are dropped even when the straight segment between the
// surrounding corners would clip an obstacle diagonal; movement code is
// tuned for the resulting corner density.
func Corners(l *navgraph.Lattice, path []int) []navgraph.Point {
	// If we have small amount of points, dont bother
	if len(path) < 2 {
		points := make([]navgraph.Point, len(path))
		for i, node := range path {
			points[i] = l.Nodes[node].Position
		}
		return points
	}

	corners := []navgraph.Point{l.Nodes[path[0]].Position}
	for _, node := range path[1 : len(path)-1] {
		if l.NearBoundary(node) {
			corners = append(corners, l.Nodes[node].Position)
		}
	}
	return append(corners, l.Nodes[path[len(path)-1]].Position)
}
