// Package navgraph maintains a navigation lattice over a rectangular 2D
// region.
//
// The lattice is a staggered point grid: each row is offset by one spacing
// from its neighbours, so every point links to up to eight others (east and
// west two spacings away, north and south two rows away, and four diagonals
// one spacing away on each axis). Points inside permanent "destroy" geometry
// are removed when the lattice is built. The remaining points are
// reclassified on a fixed interval against transient obstacles; points on
// the lattice edge or next to a removed point are always blocked.
//
// A Graph wraps one lattice and a CollisionProvider. Hosts drive it with
// Tick once per frame and hand it to a pathfind.Pathfinder for route queries.
package navgraph
