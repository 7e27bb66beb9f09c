package navgraph

// ScanStats summarises one validity scan.
type ScanStats struct {
	Total   int `json:"total"`
	Valid   int `json:"valid"`
	Buffer  int `json:"buffer"`  // invalid because of an empty connection slot
	Blocked int `json:"blocked"` // invalid because an obstacle overlaps the point
}

// Scan reclassifies every node against the live obstacle layer.
//
// All nodes are reset first. A node with an empty connection slot is
// invalid without consulting the world, which keeps agents a point away from
// lattice edges and holes. Any other node that overlaps mask is invalid and
// records the overlapping object as its occupant. Scanning twice against an
// unchanged world gives the same result.
func (l *Lattice) Scan(provider CollisionProvider, mask Mask, radius float64) ScanStats {
	stats := ScanStats{Total: l.Len()}
	if stats.Total == 0 {
		return stats
	}

	for i := range l.Nodes {
		l.Nodes[i].Reset()
	}

	for i := range l.Nodes {
		n := &l.Nodes[i]
		if n.HasEmptyConnection() {
			n.Valid = false
			stats.Buffer++
			continue
		}
		if provider == nil {
			continue
		}
		if id, hit := provider.Overlaps(n.Position, radius, mask); hit {
			n.Valid = false
			n.Occupant = id
			stats.Blocked++
		}
	}

	stats.Valid = stats.Total - stats.Buffer - stats.Blocked
	return stats
}
