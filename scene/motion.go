package scene

import (
	"time"

	"nav-lattice/collision"
	"nav-lattice/navgraph"
)

// Motion moves the scene's movers through a world, bouncing them off the
// region edges.
type Motion struct {
	world  *collision.World
	region navgraph.Region
	movers []Mover
}

// NewMotion binds the movers of sc to world.
func NewMotion(world *collision.World, sc *Scene) *Motion {
	movers := make([]Mover, len(sc.Movers))
	copy(movers, sc.Movers)
	return &Motion{world: world, region: sc.Region, movers: movers}
}

// Step advances every mover by dt. Movers whose obstacle has left the world
// are skipped.
func (m *Motion) Step(dt time.Duration) {
	seconds := dt.Seconds()
	for i := range m.movers {
		mv := &m.movers[i]
		c, ok := m.world.Get(mv.ID)
		if !ok {
			continue
		}

		center := c.Center()
		next := navgraph.Point{
			X: center.X + mv.Velocity.X*seconds,
			Y: center.Y + mv.Velocity.Y*seconds,
		}
		if next.X < m.region.Left() || next.X > m.region.Right() {
			mv.Velocity.X = -mv.Velocity.X
			next.X = center.X + mv.Velocity.X*seconds
		}
		if next.Y < m.region.Bottom() || next.Y > m.region.Top() {
			mv.Velocity.Y = -mv.Velocity.Y
			next.Y = center.Y + mv.Velocity.Y*seconds
		}

		// Get just succeeded, so Move can only fail on a racing Remove
		_ = m.world.Move(mv.ID, next.X-center.X, next.Y-center.Y)
	}
}
