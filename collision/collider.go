package collision

import (
	"fmt"
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"nav-lattice/navgraph"
)

// Collider is one obstacle in a World.
//
// Geometry is an orb.Point (a circle when Radius > 0), an orb.Bound, an
// orb.Polygon or an orb.MultiPolygon. Radius inflates the geometry
// outward.
type Collider struct {
	ID       navgraph.ObjectID
	Layer    navgraph.Mask
	Geometry orb.Geometry
	Radius   float64
}

// Circle returns a circular collider.
func Circle(id navgraph.ObjectID, layer navgraph.Mask, center navgraph.Point, radius float64) Collider {
	return Collider{ID: id, Layer: layer, Geometry: toOrb(center), Radius: radius}
}

// Box returns an axis-aligned rectangular collider.
func Box(id navgraph.ObjectID, layer navgraph.Mask, min, max navgraph.Point) Collider {
	b := orb.Bound{Min: toOrb(min), Max: toOrb(min)}.Extend(toOrb(max))
	return Collider{ID: id, Layer: layer, Geometry: b}
}

// Polygon returns a collider for a simple polygon. The ring is closed if the
// last vertex does not repeat the first.
func Polygon(id navgraph.ObjectID, layer navgraph.Mask, vertices []navgraph.Point) Collider {
	ring := make(orb.Ring, 0, len(vertices)+1)
	for _, v := range vertices {
		ring = append(ring, toOrb(v))
	}
	if len(ring) > 0 && !ring.Closed() {
		ring = append(ring, ring[0])
	}
	return Collider{ID: id, Layer: layer, Geometry: orb.Polygon{ring}}
}

// Validate checks that the collider can be indexed.
func (c Collider) Validate() error {
	if c.ID == navgraph.NoObject {
		return fmt.Errorf("%w: missing id", ErrInvalidCollider)
	}
	if c.Radius < 0 {
		return fmt.Errorf("%w: %d has negative radius %g", ErrInvalidCollider, c.ID, c.Radius)
	}
	switch g := c.Geometry.(type) {
	case orb.Point, orb.Bound:
	case orb.Polygon:
		if len(g) == 0 || len(g[0]) < 4 {
			return fmt.Errorf("%w: %d polygon needs at least 3 vertices", ErrInvalidCollider, c.ID)
		}
	case orb.MultiPolygon:
		if len(g) == 0 {
			return fmt.Errorf("%w: %d has an empty multipolygon", ErrInvalidCollider, c.ID)
		}
	default:
		return fmt.Errorf("%w: %d has unsupported geometry %T", ErrInvalidCollider, c.ID, c.Geometry)
	}
	return nil
}

// Bound returns the collider's bounding box including its radius.
func (c Collider) Bound() orb.Bound {
	return c.Geometry.Bound().Pad(c.Radius)
}

// Center returns the centre of the collider's bounding box.
func (c Collider) Center() navgraph.Point {
	return fromOrb(c.Geometry.Bound().Center())
}

// Overlaps reports whether the collider lies within radius of p.
func (c Collider) Overlaps(p navgraph.Point, radius float64) bool {
	point := toOrb(p)
	if c.contains(point) {
		return true
	}
	return planar.DistanceFrom(c.Geometry, point) <= c.Radius+radius
}

func (c Collider) contains(p orb.Point) bool {
	switch g := c.Geometry.(type) {
	case orb.Bound:
		return g.Contains(p)
	case orb.Polygon:
		return planar.PolygonContains(g, p)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(g, p)
	}
	return false
}

// Translate returns the collider shifted by (dx, dy).
func (c Collider) Translate(dx, dy float64) Collider {
	shift := func(p orb.Point) orb.Point { return orb.Point{p[0] + dx, p[1] + dy} }
	shiftRing := func(r orb.Ring) orb.Ring {
		out := make(orb.Ring, len(r))
		for i, p := range r {
			out[i] = shift(p)
		}
		return out
	}
	shiftPolygon := func(poly orb.Polygon) orb.Polygon {
		out := make(orb.Polygon, len(poly))
		for i, r := range poly {
			out[i] = shiftRing(r)
		}
		return out
	}

	switch g := c.Geometry.(type) {
	case orb.Point:
		c.Geometry = shift(g)
	case orb.Bound:
		c.Geometry = orb.Bound{Min: shift(g.Min), Max: shift(g.Max)}
	case orb.Polygon:
		c.Geometry = shiftPolygon(g)
	case orb.MultiPolygon:
		out := make(orb.MultiPolygon, len(g))
		for i, poly := range g {
			out[i] = shiftPolygon(poly)
		}
		c.Geometry = out
	}
	return c
}

// entry wraps a collider for R-tree storage
type entry struct {
	Collider
	bbox rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (e *entry) Bounds() rtreego.Rect {
	return e.bbox
}

func newEntry(c Collider) (*entry, error) {
	bbox, err := boundingRect(c.Bound())
	if err != nil {
		return nil, err
	}
	return &entry{Collider: c, bbox: bbox}, nil
}

// minExtent keeps degenerate bounds (a bare point) queryable, since R-tree
// intersection treats touching edges as disjoint.
const minExtent = 1e-9

// boundingRect converts an orb bound to an rtreego rect
func boundingRect(b orb.Bound) (rtreego.Rect, error) {
	b = b.Pad(minExtent)
	return rtreego.NewRectFromPoints(
		rtreego.Point{b.Min[0], b.Min[1]},
		rtreego.Point{b.Max[0], b.Max[1]},
	)
}

func toOrb(p navgraph.Point) orb.Point {
	return orb.Point{p.X, p.Y}
}

func fromOrb(p orb.Point) navgraph.Point {
	return navgraph.Point{X: p[0], Y: p[1]}
}

func queryRect(p navgraph.Point, radius float64) rtreego.Rect {
	return rtreego.Point{p.X, p.Y}.ToRect(math.Max(radius, minExtent))
}
