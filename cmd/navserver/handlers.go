package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"nav-lattice/navgraph"
	"nav-lattice/pathfind"
)

type RouteRequest struct {
	Start navgraph.Point    `json:"start"`
	End   navgraph.Point    `json:"end"`
	Agent navgraph.ObjectID `json:"agent,omitempty"` // Obstacle the agent occupies, if any
}

type RouteResponse struct {
	Path     []navgraph.Point `json:"path"`
	Success  bool             `json:"success"`
	Message  string           `json:"message,omitempty"`
	Distance float64          `json:"distance,omitempty"`
	Explored int              `json:"explored,omitempty"`
}

func (s *server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Printf("⚠️  Failed to write response: %v\n", err)
	}
}

// POST /route - Compute a route between two points
func (s *server) routeHandler(w http.ResponseWriter, r *http.Request) {
	s.logger.Println("========================================")
	s.logger.Println("📍 Route request received")
	defer s.logger.Println("========================================")

	if r.Method != http.MethodPost {
		s.logger.Printf("❌ Method not allowed: %s\n", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s.logger.Printf("   Start: (%.3f, %.3f)\n", req.Start.X, req.Start.Y)
	s.logger.Printf("   End:   (%.3f, %.3f)\n", req.End.X, req.End.Y)
	if req.Agent != navgraph.NoObject {
		s.logger.Printf("   Agent: %d\n", req.Agent)
	}

	_, pf, _ := s.current()

	s.logger.Println("🔍 Running A* on lattice...")
	route, err := pf.FindRoute(req.Start, req.End, req.Agent)
	if err != nil {
		response := RouteResponse{Success: false, Message: err.Error()}
		switch {
		case errors.Is(err, pathfind.ErrNoReachableNode):
			s.logger.Println("❌ No reachable node near start or end")
		case errors.Is(err, pathfind.ErrNoPathFound):
			s.logger.Printf("❌ No path found (%d nodes explored)\n", route.Explored)
			response.Explored = route.Explored
		default:
			s.logger.Printf("❌ Search failed: %v\n", err)
			s.writeJSON(w, http.StatusInternalServerError, response)
			return
		}
		s.writeJSON(w, http.StatusOK, response)
		return
	}

	var distance float64
	for i := 1; i < len(route.Corners); i++ {
		distance += route.Corners[i-1].Distance(route.Corners[i])
	}

	s.logger.Printf("✅ Path found: %d nodes, %d corners\n", len(route.Nodes), len(route.Corners))
	s.logger.Printf("   Distance: %.2f, explored: %d\n", distance, route.Explored)

	s.writeJSON(w, http.StatusOK, RouteResponse{
		Path:     route.Corners,
		Success:  true,
		Distance: distance,
		Explored: route.Explored,
	})
}

// POST /rebuild - Tile the region again and rescan
func (s *server) rebuildHandler(w http.ResponseWriter, r *http.Request) {
	s.logger.Println("========================================")
	s.logger.Println("🗺️  Rebuild request received")
	defer s.logger.Println("========================================")

	if r.Method != http.MethodPost {
		s.logger.Printf("❌ Method not allowed: %s\n", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	graph, _, _ := s.current()
	graph.Rebuild()

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"numNodes": graph.Len(),
	})
}

// POST /clear - Drop the lattice; it stays empty until the next rebuild
func (s *server) clearHandler(w http.ResponseWriter, r *http.Request) {
	s.logger.Println("🧹 Clear request received")

	if r.Method != http.MethodPost {
		s.logger.Printf("❌ Method not allowed: %s\n", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	graph, _, _ := s.current()
	graph.Clear()

	s.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// GET /graph - Get lattice edges and nodes for visualization
func (s *server) graphHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.logger.Printf("❌ Method not allowed: %s\n", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	graph, _, _ := s.current()
	lines := graph.Lines()
	nodes := graph.Snapshot()

	valid := 0
	for _, n := range nodes {
		if n.Valid {
			valid++
		}
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"lines":      lines,
		"nodes":      nodes,
		"numNodes":   len(nodes),
		"validNodes": valid,
		"numEdges":   len(lines),
	})
}

// GET /health - Health check endpoint
func (s *server) healthHandler(w http.ResponseWriter, r *http.Request) {
	graph, _, _ := s.current()
	cfg := graph.Config()
	numNodes := graph.Len()

	status := "ready"
	if numNodes == 0 {
		status = "empty graph"
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   status,
		"numNodes": numNodes,
		"spacing":  cfg.Spacing,
		"region":   cfg.Region,
	})
}
