package navgraph

// NodeView is a read-only copy of a node for visualisers and tools.
type NodeView struct {
	Index       int                `json:"index"`
	Position    Point              `json:"position"`
	Valid       bool               `json:"valid"`
	Occupant    ObjectID           `json:"occupant,omitempty"`
	Connections [NumDirections]int `json:"connections"`
}

// Segment is an undirected lattice edge.
type Segment struct {
	From  Point `json:"from"`
	To    Point `json:"to"`
	Valid bool  `json:"valid"` // both endpoints are valid
}

// Snapshot copies the position, validity, occupant and links of every node.
func (g *Graph) Snapshot() []NodeView {
	g.ensureBuilt()
	g.mu.RLock()
	defer g.mu.RUnlock()

	views := make([]NodeView, len(g.lattice.Nodes))
	for i := range g.lattice.Nodes {
		n := &g.lattice.Nodes[i]
		views[i] = NodeView{
			Index:       i,
			Position:    n.Position,
			Valid:       n.Valid,
			Occupant:    n.Occupant,
			Connections: n.Connections,
		}
	}
	return views
}

// Lines returns the lattice edges as segments for visualization
func (g *Graph) Lines() []Segment {
	g.ensureBuilt()
	g.mu.RLock()
	defer g.mu.RUnlock()

	nodes := g.lattice.Nodes
	lines := make([]Segment, 0, len(nodes)*NumDirections/2)

	// Links may be one-sided after stripping, so dedupe on the unordered pair
	type edge struct{ a, b int }
	seen := make(map[edge]bool)

	for i := range nodes {
		for _, j := range nodes[i].Connections {
			if j == NoNode {
				continue
			}
			key := edge{i, j}
			if j < i {
				key = edge{j, i}
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			lines = append(lines, Segment{
				From:  nodes[i].Position,
				To:    nodes[j].Position,
				Valid: nodes[i].Valid && nodes[j].Valid,
			})
		}
	}
	return lines
}
