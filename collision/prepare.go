package collision

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/simplify"
)

// SimplifyPolygon reduces polygon complexity using Douglas-Peucker.
// Rings that would collapse below a triangle keep their original vertices.
func SimplifyPolygon(polygon orb.Polygon, epsilon float64) orb.Polygon {
	if epsilon <= 0 || len(polygon) == 0 {
		return polygon
	}

	dp := simplify.DouglasPeucker(epsilon)
	out := make(orb.Polygon, 0, len(polygon))
	for i, ring := range polygon {
		// A closed triangle has 4 points
		if len(ring) <= 4 {
			out = append(out, ring)
			continue
		}
		simplified := dp.Ring(ring.Clone())
		if len(simplified) < 4 {
			if i == 0 {
				// Failed to simplify the outer boundary adequately
				return polygon
			}
			continue
		}
		out = append(out, simplified)
	}
	return out
}

// RemoveContained drops polygon colliders fully contained within another
// polygon collider on the same layer. Other geometries pass through.
func RemoveContained(colliders []Collider) []Collider {
	if len(colliders) <= 1 {
		return colliders
	}

	contained := make([]bool, len(colliders))
	for i := range colliders {
		if contained[i] {
			continue
		}
		for j := range colliders {
			if i == j || contained[j] || colliders[i].Layer != colliders[j].Layer {
				continue
			}

			// Check if collider i is contained in collider j
			if polygonContainedIn(colliders[i], colliders[j]) {
				contained[i] = true
				break
			}
		}
	}

	result := make([]Collider, 0, len(colliders))
	for i, c := range colliders {
		if !contained[i] {
			result = append(result, c)
		}
	}
	return result
}

// polygonContainedIn checks if every outer vertex of a lies inside b.
func polygonContainedIn(a, b Collider) bool {
	pa, ok := a.Geometry.(orb.Polygon)
	if !ok || len(pa) == 0 {
		return false
	}
	pb, ok := b.Geometry.(orb.Polygon)
	if !ok || len(pb) == 0 {
		return false
	}

	// Quick bounding box check first
	ba, bb := pa.Bound(), pb.Bound()
	if ba.Min[0] < bb.Min[0] || ba.Max[0] > bb.Max[0] || ba.Min[1] < bb.Min[1] || ba.Max[1] > bb.Max[1] {
		return false
	}

	for _, vertex := range pa[0] {
		if !planar.PolygonContains(pb, vertex) {
			return false
		}
	}
	return true
}
