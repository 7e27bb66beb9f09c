package main

import (
	"flag"
	"log"
	"net/http"
	"time"

	"nav-lattice/scene"
)

// frameStep is the simulation step of the tick loop. The graph rescans on
// its own, longer, update interval.
const frameStep = 20 * time.Millisecond

func main() {
	scenePath := flag.String("scene", "", "scene YAML file, e.g. cmd/navserver/demo.yaml (default: empty 10x10 region)")
	addr := flag.String("addr", ":8080", "listen address")
	watch := flag.Bool("watch", false, "reload the scene when its file changes")
	backend := flag.String("backend", backendRTree, "collision backend: rtree or chipmunk")
	flag.Parse()

	log.Println("========================================")
	log.Println("🚀 Navigation Lattice Server")
	log.Println("========================================")

	srv := &server{logger: log.Default(), backend: *backend}
	if err := srv.load(*scenePath); err != nil {
		log.Fatalf("❌ Failed to load scene: %v\n", err)
	}
	log.Printf("   Collision backend: %s\n", *backend)
	log.Println("")

	go srv.run(frameStep)

	if *watch && *scenePath != "" {
		watcher, err := scene.NewWatcher(*scenePath)
		if err != nil {
			log.Fatalf("❌ Failed to watch %s: %v\n", *scenePath, err)
		}
		defer watcher.Close()
		go srv.watch(watcher, *scenePath)
		log.Printf("👀 Watching %s for changes\n", *scenePath)
	}

	http.HandleFunc("/route", corsMiddleware(srv.routeHandler))
	http.HandleFunc("/rebuild", corsMiddleware(srv.rebuildHandler))
	http.HandleFunc("/clear", corsMiddleware(srv.clearHandler))
	http.HandleFunc("/graph", corsMiddleware(srv.graphHandler))
	http.HandleFunc("/health", corsMiddleware(srv.healthHandler))

	log.Printf("Server starting on %s\n", *addr)
	log.Println("")
	log.Println("Endpoints:")
	log.Println("  POST /route    - Compute route with start and end points")
	log.Println("  POST /rebuild  - Rebuild the lattice from scratch")
	log.Println("  POST /clear    - Discard the lattice until next use")
	log.Println("  GET  /graph    - Get lattice links for visualization")
	log.Println("  GET  /health   - Check server status")
	log.Println("")
	log.Println("CORS enabled for all origins")
	log.Println("========================================")
	log.Println("")

	if err := http.ListenAndServe(*addr, nil); err != nil {
		log.Fatal(err)
	}
}

// corsMiddleware adds CORS headers to allow frontend requests
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}
