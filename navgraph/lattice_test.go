package navgraph_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nav-lattice/navgraph"
)

// box reports hits for points inside [min,max] on layer.
func box(id navgraph.ObjectID, layer navgraph.Mask, min, max navgraph.Point) navgraph.ProviderFunc {
	return func(p navgraph.Point, radius float64, mask navgraph.Mask) (navgraph.ObjectID, bool) {
		if !layer.Has(mask) {
			return navgraph.NoObject, false
		}
		if p.X+radius < min.X || p.X-radius > max.X || p.Y+radius < min.Y || p.Y-radius > max.Y {
			return navgraph.NoObject, false
		}
		return id, true
	}
}

// disc reports hits for points within r of center on layer.
func disc(id navgraph.ObjectID, layer navgraph.Mask, center navgraph.Point, r float64) navgraph.ProviderFunc {
	return func(p navgraph.Point, radius float64, mask navgraph.Mask) (navgraph.ObjectID, bool) {
		if layer.Has(mask) && p.Distance(center) <= r+radius {
			return id, true
		}
		return navgraph.NoObject, false
	}
}

var empty = navgraph.ProviderFunc(func(navgraph.Point, float64, navgraph.Mask) (navgraph.ObjectID, bool) {
	return navgraph.NoObject, false
})

func defaultLattice() *navgraph.Lattice {
	return navgraph.Tile(navgraph.DefaultConfig().Region, navgraph.DefaultSpacing)
}

func TestTileDefaultRegion(t *testing.T) {
	l := defaultLattice()

	require.Equal(t, 20, l.Rows)
	require.Equal(t, 11, l.RowLength)
	require.Equal(t, 220, l.Len())

	// First row is shifted in by one spacing and closes past the right edge.
	assert.Equal(t, navgraph.Point{X: -4.5, Y: 4.5}, l.Nodes[0].Position)
	assert.Equal(t, navgraph.Point{X: 5.5, Y: 4.5}, l.Nodes[10].Position)
	// Second row starts on the left edge.
	assert.Equal(t, navgraph.Point{X: -5, Y: 4}, l.Nodes[11].Position)
	assert.Equal(t, navgraph.Point{X: 5, Y: 4}, l.Nodes[21].Position)
	// Last row sits on the bottom edge.
	assert.Equal(t, -5.0, l.Nodes[219].Position.Y)
}

func TestTileIsDeterministic(t *testing.T) {
	a := defaultLattice()
	b := defaultLattice()
	require.Equal(t, a.Nodes, b.Nodes)
}

func TestTileDegenerate(t *testing.T) {
	tests := []struct {
		name    string
		region  navgraph.Region
		spacing float64
	}{
		{"zero spacing", navgraph.Region{Width: 10, Height: 10}, 0},
		{"negative spacing", navgraph.Region{Width: 10, Height: 10}, -1},
		{"zero width", navgraph.Region{Width: 0, Height: 10}, 0.5},
		{"infinite height", navgraph.Region{Width: 10, Height: math.Inf(1)}, 0.5},
		{"nan spacing", navgraph.Region{Width: 10, Height: 10}, math.NaN()},
		{"nan width", navgraph.Region{Width: math.NaN(), Height: 10}, 0.5},
		{"nan center", navgraph.Region{Center: navgraph.Point{X: math.NaN()}, Width: 10, Height: 10}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := navgraph.Tile(tt.region, tt.spacing)
			assert.Zero(t, l.Len())
			assert.Equal(t, navgraph.NoNode, l.Nearest(navgraph.Point{}, false, navgraph.NoObject))
		})
	}
}

func TestTileNeighboursAreSymmetric(t *testing.T) {
	l := defaultLattice()
	for i := range l.Nodes {
		for d := navgraph.Direction(0); d < navgraph.NumDirections; d++ {
			j, ok := l.Nodes[i].Neighbor(d)
			if !ok {
				continue
			}
			require.Equal(t, i, l.Nodes[j].Connections[d.Opposite()],
				"node %d links %s to %d but not back", i, d, j)
		}
	}
}

func TestTileNeighbourGeometry(t *testing.T) {
	const s = navgraph.DefaultSpacing
	offsets := map[navgraph.Direction]navgraph.Point{
		navgraph.East:      {X: 2 * s},
		navgraph.SouthEast: {X: s, Y: -s},
		navgraph.South:     {Y: -2 * s},
		navgraph.SouthWest: {X: -s, Y: -s},
		navgraph.West:      {X: -2 * s},
		navgraph.NorthWest: {X: -s, Y: s},
		navgraph.North:     {Y: 2 * s},
		navgraph.NorthEast: {X: s, Y: s},
	}

	l := defaultLattice()
	for i := range l.Nodes {
		from := l.Nodes[i].Position
		for d, off := range offsets {
			j, ok := l.Nodes[i].Neighbor(d)
			if !ok {
				continue
			}
			to := l.Nodes[j].Position
			assert.InDelta(t, off.X, to.X-from.X, 1e-9, "node %d %s", i, d)
			assert.InDelta(t, off.Y, to.Y-from.Y, 1e-9, "node %d %s", i, d)
		}
	}
}

func TestTileBorderSlotsAreEmpty(t *testing.T) {
	l := defaultLattice()

	first := l.Nodes[0]
	for _, d := range []navgraph.Direction{navgraph.West, navgraph.North, navgraph.NorthEast, navgraph.NorthWest} {
		_, ok := first.Neighbor(d)
		assert.False(t, ok, "first node should have no %s neighbour", d)
	}

	last := l.Nodes[l.Len()-1]
	for _, d := range []navgraph.Direction{navgraph.East, navgraph.South} {
		_, ok := last.Neighbor(d)
		assert.False(t, ok, "last node should have no %s neighbour", d)
	}
}

func TestStripRemovesNodesAndLinks(t *testing.T) {
	l := defaultLattice()
	min, max := navgraph.Point{X: -1, Y: -1}, navgraph.Point{X: 1, Y: 1}
	wall := box(1, navgraph.DefaultDestroyMask, min, max)

	inside := 0
	for _, n := range l.Nodes {
		if _, hit := wall.Overlaps(n.Position, 0, navgraph.DefaultDestroyMask); hit {
			inside++
		}
	}
	require.NotZero(t, inside)

	removed := l.Strip(wall, navgraph.DefaultDestroyMask, 0)
	require.Equal(t, inside, removed)
	require.Equal(t, 220-inside, l.Len())

	for i, n := range l.Nodes {
		_, hit := wall.Overlaps(n.Position, 0, navgraph.DefaultDestroyMask)
		assert.False(t, hit, "node %d survived inside the wall", i)
		for _, c := range n.Connections {
			if c == navgraph.NoNode {
				continue
			}
			require.True(t, c >= 0 && c < l.Len(), "node %d links out of range: %d", i, c)
			_, hit := wall.Overlaps(l.Nodes[c].Position, 0, navgraph.DefaultDestroyMask)
			assert.False(t, hit, "node %d still links into the wall", i)
		}
	}
}

func TestStripIgnoresOtherLayers(t *testing.T) {
	l := defaultLattice()
	obstacle := box(1, navgraph.DefaultObstacleMask, navgraph.Point{X: -1, Y: -1}, navgraph.Point{X: 1, Y: 1})
	assert.Zero(t, l.Strip(obstacle, navgraph.DefaultDestroyMask, 0))
	assert.Equal(t, 220, l.Len())
}

func TestScanMarksBorderAsBuffer(t *testing.T) {
	l := defaultLattice()
	stats := l.Scan(empty, navgraph.DefaultObstacleMask, navgraph.DefaultObstacleRadius)

	// Two rows at the top and bottom lack a north or south link, and every
	// other row loses its first and last column.
	assert.Equal(t, navgraph.ScanStats{Total: 220, Valid: 144, Buffer: 76}, stats)

	for i, n := range l.Nodes {
		if n.HasEmptyConnection() {
			assert.False(t, n.Valid, "node %d has an empty slot but is valid", i)
			assert.Equal(t, navgraph.NoObject, n.Occupant)
		} else {
			assert.True(t, n.Valid, "node %d is interior but invalid", i)
		}
	}
}

func TestScanRecordsOccupant(t *testing.T) {
	l := defaultLattice()
	rock := disc(7, navgraph.DefaultObstacleMask, navgraph.Point{X: 0, Y: 0}, 1)
	stats := l.Scan(rock, navgraph.DefaultObstacleMask, navgraph.DefaultObstacleRadius)
	require.NotZero(t, stats.Blocked)

	for _, n := range l.Nodes {
		if n.HasEmptyConnection() {
			continue
		}
		blocked := n.Position.Distance(navgraph.Point{}) <= 1+navgraph.DefaultObstacleRadius
		assert.Equal(t, !blocked, n.Valid)
		if blocked {
			assert.Equal(t, navgraph.ObjectID(7), n.Occupant)
		}
	}
}

func TestScanIsIdempotent(t *testing.T) {
	l := defaultLattice()
	rock := disc(3, navgraph.DefaultObstacleMask, navgraph.Point{X: 2, Y: -1}, 1.5)

	first := l.Scan(rock, navgraph.DefaultObstacleMask, navgraph.DefaultObstacleRadius)
	before := append([]navgraph.Node(nil), l.Nodes...)
	second := l.Scan(rock, navgraph.DefaultObstacleMask, navgraph.DefaultObstacleRadius)

	assert.Equal(t, first, second)
	assert.Equal(t, before, l.Nodes)
}

func TestScanClearsStaleState(t *testing.T) {
	l := defaultLattice()
	rock := disc(3, navgraph.DefaultObstacleMask, navgraph.Point{X: 0, Y: 0}, 1)
	l.Scan(rock, navgraph.DefaultObstacleMask, 0)

	stats := l.Scan(empty, navgraph.DefaultObstacleMask, 0)
	assert.Zero(t, stats.Blocked)
	for _, n := range l.Nodes {
		assert.Equal(t, navgraph.NoObject, n.Occupant)
	}
}

func TestNearest(t *testing.T) {
	l := defaultLattice()
	target := navgraph.Point{X: 2, Y: 2}
	// Blocks only the node sitting on target.
	l.Scan(disc(7, navgraph.DefaultObstacleMask, target, 0.3), navgraph.DefaultObstacleMask, navgraph.DefaultObstacleRadius)

	t.Run("any node", func(t *testing.T) {
		i := l.Nearest(target, false, 9)
		require.NotEqual(t, navgraph.NoNode, i)
		assert.Equal(t, target, l.Nodes[i].Position)
		assert.False(t, l.Nodes[i].Valid)
	})

	t.Run("valid only", func(t *testing.T) {
		i := l.Nearest(target, true, 9)
		require.NotEqual(t, navgraph.NoNode, i)
		// Four diagonal neighbours tie; the first in row-major order wins.
		assert.Equal(t, navgraph.Point{X: 1.5, Y: 2.5}, l.Nodes[i].Position)
	})

	t.Run("exempt occupant", func(t *testing.T) {
		i := l.Nearest(target, true, 7)
		require.NotEqual(t, navgraph.NoNode, i)
		assert.Equal(t, target, l.Nodes[i].Position)
	})
}

func TestAdmissible(t *testing.T) {
	l := defaultLattice()
	l.Scan(disc(7, navgraph.DefaultObstacleMask, navgraph.Point{X: 2, Y: 2}, 0.3), navgraph.DefaultObstacleMask, 0)
	blocked := l.Nearest(navgraph.Point{X: 2, Y: 2}, false, navgraph.NoObject)

	assert.False(t, l.Admissible(blocked, 8))
	assert.True(t, l.Admissible(blocked, 7))
	assert.True(t, l.Admissible(l.Nearest(navgraph.Point{}, false, navgraph.NoObject), 8))
}

func TestNearBoundary(t *testing.T) {
	l := defaultLattice()
	l.Scan(empty, navgraph.DefaultObstacleMask, 0)

	center := l.Nearest(navgraph.Point{}, false, navgraph.NoObject)
	assert.False(t, l.NearBoundary(center))
	assert.True(t, l.NearBoundary(0))

	// Second row from the top links north into the buffer row.
	inner := l.Nearest(navgraph.Point{X: 0.5, Y: 3.5}, false, navgraph.NoObject)
	require.True(t, l.Nodes[inner].Valid)
	assert.True(t, l.NearBoundary(inner))
}

func TestResetSearch(t *testing.T) {
	l := defaultLattice()
	l.Nodes[5].G, l.Nodes[5].H, l.Nodes[5].Parent = 1, 2, 3
	l.ResetSearch()
	assert.Zero(t, l.Nodes[5].G)
	assert.Zero(t, l.Nodes[5].H)
	assert.Equal(t, navgraph.NoNode, l.Nodes[5].Parent)
}
