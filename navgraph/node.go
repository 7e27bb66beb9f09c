package navgraph

// NoNode marks an empty connection slot or a missing parent.
const NoNode = -1

// Node is a single lattice point.
type Node struct {
	Position Point
	Valid    bool
	// Connections holds the arena index of the neighbour in each Direction,
	// or NoNode. Links are not guaranteed to be symmetric once points have
	// been stripped.
	Connections [NumDirections]int
	// Occupant is the object blocking this point, set only by the obstacle scan.
	Occupant ObjectID

	// Search scratch used by the pathfinder.
	G      float64 // Cost from start to this node
	H      float64 // Heuristic cost from this node to the goal
	Parent int
}

func newNode(p Point) Node {
	n := Node{Position: p}
	for d := range n.Connections {
		n.Connections[d] = NoNode
	}
	n.Reset()
	return n
}

// F is the total estimated cost through this node.
func (n *Node) F() float64 {
	return n.G + n.H
}

// Reset restores validity, occupant and search scratch to their defaults.
func (n *Node) Reset() {
	n.Valid = true
	n.Occupant = NoObject
	n.ResetSearch()
}

// ResetSearch clears only the search scratch.
func (n *Node) ResetSearch() {
	n.G = 0
	n.H = 0
	n.Parent = NoNode
}

// HasEmptyConnection reports whether any neighbour slot is empty.
func (n *Node) HasEmptyConnection() bool {
	for _, c := range n.Connections {
		if c == NoNode {
			return true
		}
	}
	return false
}

// Neighbor returns the index linked in direction d.
func (n *Node) Neighbor(d Direction) (int, bool) {
	c := n.Connections[d]
	return c, c != NoNode
}
