package navgraph

import "math"

// Lattice owns every node of a navigation graph. Nodes reference each other
// by index into Nodes, which is kept in row-major order.
type Lattice struct {
	Nodes []Node
	// RowLength and Rows describe the lattice as tiled. After Strip removes
	// points the stride no longer maps indices to rows.
	RowLength int
	Rows      int
}

// Len returns the number of nodes.
func (l *Lattice) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Nodes)
}

// Tile lays a staggered point lattice over region and wires each point to its
// neighbours in all eight directions.
//
// Rows are spacing apart and points within a row 2*spacing apart. The first
// row starts one spacing in from the top-left corner; following rows
// alternate between no offset and a one-spacing offset, which produces the
// brick pattern. Every row holds exactly RowLength points so that neighbour
// lookups can use a fixed stride.
func Tile(region Region, spacing float64) *Lattice {
	l := &Lattice{}
	if !finite(spacing, region.Center.X, region.Center.Y, region.Width, region.Height) ||
		spacing <= 0 || region.Width <= 0 || region.Height <= 0 {
		return l
	}

	left, right, top, bottom := region.Left(), region.Right(), region.Top(), region.Bottom()
	step := spacing * 2
	y := top - spacing
	offset := spacing

	for {
		placed := 0
		var overflow float64
		for {
			x := left + offset + float64(placed)*step
			l.Nodes = append(l.Nodes, newNode(Point{X: x, Y: y}))
			placed++
			overflow = left + offset + float64(placed)*step
			if overflow > right {
				break
			}
		}

		if l.RowLength == 0 {
			// The first row closes with one trailing point past the edge and
			// fixes the stride for the rest of the lattice.
			l.Nodes = append(l.Nodes, newNode(Point{X: overflow, Y: y}))
			l.RowLength = placed + 1
		} else {
			// A row never places more regular points than RowLength, since
			// the first row's trailing point already counts the one extra
			// point an unshifted row can fit.
			for ; placed < l.RowLength; placed++ {
				l.Nodes = append(l.Nodes, newNode(Point{X: overflow, Y: y}))
			}
		}
		l.Rows++

		if l.Rows%2 == 1 {
			offset = 0
		} else {
			offset = spacing
		}
		y = top - spacing*float64(l.Rows+1)
		if y < bottom {
			break
		}
	}

	for i := range l.Nodes {
		for d := Direction(0); d < NumDirections; d++ {
			l.Nodes[i].Connections[d] = l.indexInDirection(i, d)
		}
	}
	return l
}

// indexInDirection computes the neighbour of node i from its row-major
// position. Rows with an even index are the ones shifted right by one
// spacing, so their diagonal neighbours sit one column further right in the
// adjacent rows.
func (l *Lattice) indexInDirection(i int, d Direction) int {
	length := l.RowLength
	startOfRow := (i+1)%length == 1
	endOfRow := (i+1)%length == 0
	shifted := (i/length)%2 == 0

	var index int
	switch d {
	case East:
		if endOfRow {
			return NoNode
		}
		index = i + 1
	case SouthEast:
		if endOfRow && shifted {
			return NoNode
		}
		index = i + length
		if shifted {
			index++
		}
	case South:
		index = i + length*2
	case SouthWest:
		if startOfRow && !shifted {
			return NoNode
		}
		index = i + length
		if !shifted {
			index--
		}
	case West:
		if startOfRow {
			return NoNode
		}
		index = i - 1
	case NorthWest:
		if startOfRow && !shifted {
			return NoNode
		}
		index = i - length
		if !shifted {
			index--
		}
	case North:
		index = i - length*2
	case NorthEast:
		if endOfRow && shifted {
			return NoNode
		}
		index = i - length
		if shifted {
			index++
		}
	default:
		return NoNode
	}

	if index < 0 || index >= len(l.Nodes) {
		return NoNode
	}
	return index
}

// Strip removes every node whose position collides with mask and clears all
// links that pointed at a removed node. Surviving nodes keep their relative
// order and are re-indexed. It returns the number of nodes removed.
func (l *Lattice) Strip(provider CollisionProvider, mask Mask, radius float64) int {
	if l.Len() == 0 || provider == nil {
		return 0
	}

	// Processed last to first.
	removed := make([]bool, len(l.Nodes))
	count := 0
	for i := len(l.Nodes) - 1; i >= 0; i-- {
		if _, hit := provider.Overlaps(l.Nodes[i].Position, radius, mask); hit {
			removed[i] = true
			count++
		}
	}
	if count == 0 {
		return 0
	}

	remap := make([]int, len(l.Nodes))
	kept := l.Nodes[:0]
	for i := range l.Nodes {
		if removed[i] {
			remap[i] = NoNode
			continue
		}
		remap[i] = len(kept)
		kept = append(kept, l.Nodes[i])
	}
	for i := range kept {
		for d, c := range kept[i].Connections {
			if c != NoNode {
				kept[i].Connections[d] = remap[c]
			}
		}
	}
	l.Nodes = kept
	return count
}

// Nearest returns the index of the node closest to p, or NoNode.
//
// When mustBeValid is set, only valid nodes and nodes occupied by exempt are
// candidates. Ties keep the first node in row-major order.
func (l *Lattice) Nearest(p Point, mustBeValid bool, exempt ObjectID) int {
	if l == nil {
		return NoNode
	}
	closest := NoNode
	best := math.MaxFloat64
	for i := range l.Nodes {
		n := &l.Nodes[i]
		if mustBeValid && !n.Valid && n.Occupant != exempt {
			continue
		}
		if dist := n.Position.Distance(p); dist < best {
			best = dist
			closest = i
		}
	}
	return closest
}

// Admissible reports whether node i may be traversed by the agent exempt:
// it is valid, or the object blocking it is the agent itself.
func (l *Lattice) Admissible(i int, exempt ObjectID) bool {
	n := &l.Nodes[i]
	return n.Valid || n.Occupant == exempt
}

// NearBoundary reports whether node i has an empty slot or a neighbour that
// is currently invalid.
func (l *Lattice) NearBoundary(i int) bool {
	for _, c := range l.Nodes[i].Connections {
		if c == NoNode || !l.Nodes[c].Valid {
			return true
		}
	}
	return false
}

// ResetSearch clears the search scratch of every node.
func (l *Lattice) ResetSearch() {
	for i := range l.Nodes {
		l.Nodes[i].ResetSearch()
	}
}
