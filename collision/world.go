// Package collision provides occupancy queries for navgraph: an R-tree
// backed obstacle World, GeoJSON obstacle loading, and an adapter for
// Chipmunk2D spaces.
package collision

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dhconnelly/rtreego"

	"nav-lattice/navgraph"
)

// World is a set of colliders indexed by an R-tree. It implements
// navgraph.CollisionProvider and is safe for concurrent use, so obstacles
// can move while a graph scans.
type World struct {
	mu      sync.RWMutex
	tree    *rtreego.Rtree
	entries map[navgraph.ObjectID]*entry
}

// NewWorld creates a world holding colliders.
func NewWorld(colliders ...Collider) (*World, error) {
	w := &World{
		tree:    rtreego.NewTree(2, 25, 50), // 2D, min 25, max 50 entries per node
		entries: make(map[navgraph.ObjectID]*entry),
	}
	for _, c := range colliders {
		if err := w.Add(c); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Add inserts a collider. Ids must be unique.
func (w *World) Add(c Collider) error {
	if err := c.Validate(); err != nil {
		return err
	}
	e, err := newEntry(c)
	if err != nil {
		return fmt.Errorf("failed to index collider %d: %w", c.ID, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, exists := w.entries[c.ID]; exists {
		return fmt.Errorf("%w: %d", ErrDuplicateID, c.ID)
	}
	w.tree.Insert(e)
	w.entries[c.ID] = e
	return nil
}

// Remove deletes the collider with id. It reports whether one was present.
func (w *World) Remove(id navgraph.ObjectID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	e, ok := w.entries[id]
	if !ok {
		return false
	}
	w.tree.Delete(e)
	delete(w.entries, id)
	return true
}

// Get returns the collider with id.
func (w *World) Get(id navgraph.ObjectID) (Collider, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	e, ok := w.entries[id]
	if !ok {
		return Collider{}, false
	}
	return e.Collider, true
}

// Move shifts the collider with id by (dx, dy) and reindexes it.
func (w *World) Move(id navgraph.ObjectID, dx, dy float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	e, ok := w.entries[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownID, id)
	}

	moved, err := newEntry(e.Collider.Translate(dx, dy))
	if err != nil {
		return fmt.Errorf("failed to index collider %d: %w", id, err)
	}
	// The tree locates entries by their old bounds, so delete before replacing
	w.tree.Delete(e)
	w.tree.Insert(moved)
	w.entries[id] = moved
	return nil
}

// Len returns the number of colliders.
func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.entries)
}

// Colliders returns every collider ordered by id.
func (w *World) Colliders() []Collider {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]Collider, 0, len(w.entries))
	for _, e := range w.entries {
		out = append(out, e.Collider)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Overlaps implements navgraph.CollisionProvider. When several colliders
// overlap the query, the one with the lowest id is reported so results do
// not depend on tree layout.
func (w *World) Overlaps(p navgraph.Point, radius float64, mask navgraph.Mask) (navgraph.ObjectID, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	results := w.tree.SearchIntersect(queryRect(p, radius))
	found := navgraph.NoObject
	for _, item := range results {
		e := item.(*entry)
		if !e.Layer.Has(mask) {
			continue
		}
		if found != navgraph.NoObject && e.ID >= found {
			continue
		}
		if e.Overlaps(p, radius) {
			found = e.ID
		}
	}
	return found, found != navgraph.NoObject
}

// QueryRegion returns colliders on mask whose bounds intersect the given box.
func (w *World) QueryRegion(min, max navgraph.Point, mask navgraph.Mask) []Collider {
	bbox, err := rtreego.NewRectFromPoints(
		rtreego.Point{min.X, min.Y},
		rtreego.Point{max.X, max.Y},
	)
	if err != nil {
		return []Collider{}
	}

	w.mu.RLock()
	defer w.mu.RUnlock()
	results := w.tree.SearchIntersect(bbox)
	colliders := make([]Collider, 0, len(results))
	for _, item := range results {
		e := item.(*entry)
		if e.Layer.Has(mask) {
			colliders = append(colliders, e.Collider)
		}
	}
	sort.Slice(colliders, func(i, j int) bool { return colliders[i].ID < colliders[j].ID })
	return colliders
}
