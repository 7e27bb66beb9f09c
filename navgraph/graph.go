package navgraph

import (
	"log"
	"sync"
	"time"
)

// Graph is the navigation graph of one region. It owns the lattice, keeps
// it in sync with the world through periodic scans and answers nearest-node
// queries. A Graph is safe for concurrent use: rebuilds, scans and searches
// take the write lock, lookups and snapshots the read lock.
type Graph struct {
	mu       sync.RWMutex
	cfg      Config
	provider CollisionProvider
	logger   *log.Logger

	lattice   *Lattice // nil until first built
	countdown time.Duration
}

// Option configures a Graph.
type Option func(*Graph)

// WithLogger routes build progress to logger instead of log.Default().
func WithLogger(logger *log.Logger) Option {
	return func(g *Graph) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New creates a Graph for cfg. The lattice is built lazily on first use or
// by an explicit Rebuild.
func New(cfg Config, provider CollisionProvider, opts ...Option) (*Graph, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, ErrNilProvider
	}
	g := &Graph{
		cfg:      cfg,
		provider: provider,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Config returns the active configuration.
func (g *Graph) Config() Config {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.cfg
}

// Reconfigure validates cfg, adopts it and rebuilds the lattice.
func (g *Graph) Reconfigure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cfg = cfg
	g.rebuildLocked()
	return nil
}

// Rebuild discards the current lattice and tiles the region again: tile,
// strip points inside destroy geometry, then scan for obstacles. Readers
// never observe a partially built lattice.
func (g *Graph) Rebuild() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rebuildLocked()
}

func (g *Graph) rebuildLocked() {
	startTime := time.Now()
	g.logger.Printf("🗺️  Building navigation lattice (%.2fx%.2f, spacing %.2f)...\n",
		g.cfg.Region.Width, g.cfg.Region.Height, g.cfg.Spacing)

	l := Tile(g.cfg.Region, g.cfg.Spacing)
	tiled := l.Len()
	stripped := l.Strip(g.provider, g.cfg.DestroyMask, g.cfg.DestroyRadius)
	stats := l.Scan(g.provider, g.cfg.ObstacleMask, g.cfg.ObstacleRadius)

	g.lattice = l
	g.countdown = g.cfg.UpdateInterval

	g.logger.Printf("   ✅ Lattice built: %d rows x %d, %d nodes\n", l.Rows, l.RowLength, tiled)
	if stripped > 0 {
		g.logger.Printf("   ℹ️  Removed %d nodes inside destroy geometry\n", stripped)
	}
	g.logger.Printf("   Valid: %d, buffer: %d, blocked: %d\n", stats.Valid, stats.Buffer, stats.Blocked)
	g.logger.Printf("   ⏱️  Build time: %s\n", time.Since(startTime))
}

// ensureBuilt builds the lattice if it has never been built.
func (g *Graph) ensureBuilt() {
	g.mu.RLock()
	built := g.lattice != nil
	g.mu.RUnlock()
	if built {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.lattice == nil {
		g.rebuildLocked()
	}
}

// Clear empties the graph without rebuilding it. Queries against a cleared
// graph find nothing until the next Rebuild.
func (g *Graph) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lattice = &Lattice{}
}

// Rescan re-runs the validity scan immediately.
func (g *Graph) Rescan() ScanStats {
	g.ensureBuilt()
	g.mu.Lock()
	defer g.mu.Unlock()
	g.countdown = g.cfg.UpdateInterval
	return g.lattice.Scan(g.provider, g.cfg.ObstacleMask, g.cfg.ObstacleRadius)
}

// Tick advances the maintenance timer by dt and rescans when the update
// interval has elapsed. It reports whether a scan ran. Hosts call it once
// per frame.
func (g *Graph) Tick(dt time.Duration) bool {
	g.ensureBuilt()
	g.mu.Lock()
	defer g.mu.Unlock()

	g.countdown -= dt
	if g.countdown > 0 {
		return false
	}
	g.countdown = g.cfg.UpdateInterval
	g.lattice.Scan(g.provider, g.cfg.ObstacleMask, g.cfg.ObstacleRadius)
	return true
}

// NearestNode returns a copy of the node closest to p.
//
// With mustBeValid set, invalid nodes are skipped unless their occupant is
// exempt, which lets an agent standing inside its own footprint still
// resolve a node. The result is false when the graph is empty or nothing
// qualifies.
func (g *Graph) NearestNode(p Point, mustBeValid bool, exempt ObjectID) (Node, bool) {
	g.ensureBuilt()
	g.mu.RLock()
	defer g.mu.RUnlock()

	i := g.lattice.Nearest(p, mustBeValid, exempt)
	if i == NoNode {
		return Node{}, false
	}
	return g.lattice.Nodes[i], true
}

// Search runs fn with exclusive access to the lattice. fn may write search
// scratch but must not keep the lattice after returning.
func (g *Graph) Search(fn func(l *Lattice)) {
	g.ensureBuilt()
	g.mu.Lock()
	defer g.mu.Unlock()
	fn(g.lattice)
}

// Len returns the number of nodes in the lattice.
func (g *Graph) Len() int {
	g.ensureBuilt()
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.lattice.Len()
}
