package collision

import (
	"sync"

	"github.com/jakecoffman/cp"
	"github.com/paulmach/orb"

	"nav-lattice/navgraph"
)

// Space answers occupancy queries from a Chipmunk2D space. Shape filter
// categories act as layers: a shape is on every layer whose bit is set in
// its filter's Categories. Shapes must carry their navgraph.ObjectID in
// UserData (see Tag); untagged shapes and sensors are ignored.
//
// Queries and Sync are serialised. Callers that step the wrapped space on
// another goroutine must serialise that themselves.
type Space struct {
	mu     sync.Mutex
	space  *cp.Space
	shapes []*cp.Shape
}

// NewSpace wraps space.
func NewSpace(space *cp.Space) *Space {
	return &Space{space: space}
}

// NewSpaceFrom builds a space holding one static shape per collider part.
// Polygons are stored as their convex hull, so a concave collider blocks
// at least the area it covers.
func NewSpaceFrom(colliders []Collider) *Space {
	s := NewSpace(cp.NewSpace())
	s.Sync(colliders)
	return s
}

// Sync replaces the shapes added by NewSpaceFrom or an earlier Sync with
// shapes for colliders. Shapes added to the wrapped space by other means are
// left alone.
func (s *Space) Sync(colliders []Collider) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, shape := range s.shapes {
		s.space.RemoveShape(shape)
	}
	s.shapes = s.shapes[:0]
	for _, c := range colliders {
		for _, shape := range shapesFor(s.space.StaticBody, c) {
			s.shapes = append(s.shapes, s.space.AddShape(Tag(shape, c.ID, c.Layer)))
		}
	}
}

func shapesFor(body *cp.Body, c Collider) []*cp.Shape {
	switch g := c.Geometry.(type) {
	case orb.Point:
		return []*cp.Shape{cp.NewCircle(body, c.Radius, cp.Vector{X: g[0], Y: g[1]})}
	case orb.Bound:
		bb := cp.BB{L: g.Min[0], B: g.Min[1], R: g.Max[0], T: g.Max[1]}
		return []*cp.Shape{cp.NewBox2(body, bb, c.Radius)}
	case orb.Polygon:
		return []*cp.Shape{hullShape(body, g, c.Radius)}
	case orb.MultiPolygon:
		shapes := make([]*cp.Shape, 0, len(g))
		for _, poly := range g {
			shapes = append(shapes, hullShape(body, poly, c.Radius))
		}
		return shapes
	}
	return nil
}

// hullShape covers the outer ring of poly. Holes are not represented.
func hullShape(body *cp.Body, poly orb.Polygon, radius float64) *cp.Shape {
	ring := poly[0]
	if ring.Closed() {
		ring = ring[:len(ring)-1]
	}
	verts := make([]cp.Vector, len(ring))
	for i, p := range ring {
		verts[i] = cp.Vector{X: p[0], Y: p[1]}
	}
	return cp.NewPolyShape(body, len(verts), verts, cp.NewTransformIdentity(), radius)
}

// Tag assigns id and layer to shape.
func Tag(shape *cp.Shape, id navgraph.ObjectID, layer navgraph.Mask) *cp.Shape {
	shape.UserData = id
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(layer), cp.ALL_CATEGORIES))
	return shape
}

// Overlaps implements navgraph.CollisionProvider. Among overlapping shapes
// the lowest id wins.
func (s *Space) Overlaps(p navgraph.Point, radius float64, mask navgraph.Mask) (navgraph.ObjectID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	point := cp.Vector{X: p.X, Y: p.Y}
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, uint(mask))

	found := navgraph.NoObject
	s.space.BBQuery(cp.NewBBForCircle(point, radius), filter, func(shape *cp.Shape, _ interface{}) {
		if shape.Sensor() {
			return
		}
		id, ok := shape.UserData.(navgraph.ObjectID)
		if !ok || id == navgraph.NoObject {
			return
		}
		if found != navgraph.NoObject && id >= found {
			return
		}
		// Distance is negative inside the shape
		if shape.PointQuery(point).Distance <= radius {
			found = id
		}
	}, nil)
	return found, found != navgraph.NoObject
}
