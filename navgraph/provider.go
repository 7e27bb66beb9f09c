package navgraph

// CollisionProvider answers occupancy queries against world geometry.
//
// Overlaps reports whether anything on a layer selected by mask lies within
// radius of p, and if so which object. It is called once per lattice point
// on every scan, so implementations should be cheap.
type CollisionProvider interface {
	Overlaps(p Point, radius float64, mask Mask) (ObjectID, bool)
}

// ProviderFunc adapts a plain function to CollisionProvider.
type ProviderFunc func(p Point, radius float64, mask Mask) (ObjectID, bool)

func (f ProviderFunc) Overlaps(p Point, radius float64, mask Mask) (ObjectID, bool) {
	return f(p, radius, mask)
}
