package main

import (
	"fmt"
	"log"
	"sync"
	"time"

	"nav-lattice/collision"
	"nav-lattice/navgraph"
	"nav-lattice/pathfind"
	"nav-lattice/scene"
)

// Collision backends selectable with -backend.
const (
	backendRTree    = "rtree"
	backendChipmunk = "chipmunk"
)

// server holds the loaded scene. A reload swaps every field at once.
type server struct {
	logger  *log.Logger
	backend string

	mu         sync.RWMutex
	world      *collision.World
	space      *collision.Space
	graph      *navgraph.Graph
	pathfinder *pathfind.Pathfinder
	motion     *scene.Motion
}

// load builds the world and graph for the scene at path. An empty path
// serves an obstacle-free default region.
func (s *server) load(path string) error {
	sc := &scene.Scene{Config: navgraph.DefaultConfig()}
	if path != "" {
		s.logger.Printf("📂 Loading scene %s\n", path)
		loaded, err := scene.Load(path)
		if err != nil {
			return err
		}
		sc = loaded
	} else {
		s.logger.Println("ℹ️  No scene given, serving an empty default region")
	}

	world, err := sc.World(s.logger)
	if err != nil {
		return err
	}
	var provider navgraph.CollisionProvider = world
	var space *collision.Space
	switch s.backend {
	case "", backendRTree:
	case backendChipmunk:
		space = collision.NewSpaceFrom(world.Colliders())
		provider = space
	default:
		return fmt.Errorf("unknown collision backend %q", s.backend)
	}

	graph, err := navgraph.New(sc.Config, provider, navgraph.WithLogger(s.logger))
	if err != nil {
		return err
	}
	graph.Rebuild()

	s.logger.Printf("   Obstacles: %d, movers: %d\n", world.Len(), len(sc.Movers))

	s.mu.Lock()
	s.world = world
	s.space = space
	s.graph = graph
	s.pathfinder = pathfind.New(graph)
	s.motion = scene.NewMotion(world, sc)
	s.mu.Unlock()
	return nil
}

func (s *server) current() (*navgraph.Graph, *pathfind.Pathfinder, *scene.Motion) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graph, s.pathfinder, s.motion
}

// run advances the simulation every step until the process exits.
func (s *server) run(step time.Duration) {
	ticker := time.NewTicker(step)
	defer ticker.Stop()
	for range ticker.C {
		s.advance(step)
	}
}

// advance steps movers, mirrors them into the chipmunk space when that
// backend is active, and ticks the graph.
func (s *server) advance(step time.Duration) {
	s.mu.RLock()
	world, space, graph, motion := s.world, s.space, s.graph, s.motion
	s.mu.RUnlock()

	motion.Step(step)
	if space != nil {
		space.Sync(world.Colliders())
	}
	graph.Tick(step)
}

// watch reloads the scene whenever the watcher reports a change. A scene
// that fails to load leaves the previous one in place.
func (s *server) watch(w *scene.Watcher, path string) {
	for {
		select {
		case _, ok := <-w.Events:
			if !ok {
				return
			}
			s.logger.Println("========================================")
			s.logger.Printf("🔄 Scene changed, reloading %s\n", path)
			if err := s.load(path); err != nil {
				s.logger.Printf("⚠️  Reload failed, keeping previous scene: %v\n", err)
			} else {
				s.logger.Println("✅ Scene reloaded")
			}
			s.logger.Println("========================================")
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			s.logger.Printf("⚠️  Watcher error: %v\n", err)
		}
	}
}
