// Package scene loads navigation scenes from YAML: the region and lattice
// settings for a navgraph.Graph plus the obstacles to populate a
// collision.World with.
package scene

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"nav-lattice/collision"
	"nav-lattice/navgraph"
)

// Scene is the decoded form of a scene file.
type Scene struct {
	navgraph.Config `yaml:",inline"`

	// GeoJSON names an obstacle FeatureCollection, relative to the scene file.
	GeoJSON         string        `yaml:"geojson"`
	GeoJSONLayer    navgraph.Mask `yaml:"geojson_layer"`
	SimplifyEpsilon float64       `yaml:"simplify_epsilon"`

	Obstacles []Obstacle `yaml:"obstacles"`
	Movers    []Mover    `yaml:"movers"`

	dir string
}

// Obstacle describes one collider. Exactly one of Circle, Box and Polygon
// is set.
type Obstacle struct {
	ID      navgraph.ObjectID `yaml:"id"`
	Layer   navgraph.Mask     `yaml:"layer"`
	Circle  *CircleSpec       `yaml:"circle"`
	Box     *BoxSpec          `yaml:"box"`
	Polygon []navgraph.Point  `yaml:"polygon"`
}

type CircleSpec struct {
	Center navgraph.Point `yaml:"center"`
	Radius float64        `yaml:"radius"`
}

type BoxSpec struct {
	Min navgraph.Point `yaml:"min"`
	Max navgraph.Point `yaml:"max"`
}

// Mover gives an obstacle a constant velocity in units per second.
type Mover struct {
	ID       navgraph.ObjectID `yaml:"id"`
	Velocity navgraph.Point    `yaml:"velocity"`
}

// ErrInvalidScene indicates a scene file with inconsistent contents.
var ErrInvalidScene = errors.New("scene: invalid scene")

// Load reads and validates a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: load %s: %w", path, err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scene: parse %s: %w", path, err)
	}
	sc.dir = filepath.Dir(path)
	return sc, nil
}

// Parse decodes and validates a scene document. Masks left out of the
// document take the navgraph defaults. Relative GeoJSON paths are resolved
// against the working directory.
func Parse(data []byte) (*Scene, error) {
	var sc Scene
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	// An explicit 0 mask means no layers, so only absent masks are defaulted.
	var masks struct {
		Destroy  *navgraph.Mask `yaml:"destroy_mask"`
		Obstacle *navgraph.Mask `yaml:"obstacle_mask"`
	}
	if err := yaml.Unmarshal(data, &masks); err != nil {
		return nil, err
	}
	if masks.Destroy == nil {
		sc.DestroyMask = navgraph.DefaultDestroyMask
	}
	if masks.Obstacle == nil {
		sc.ObstacleMask = navgraph.DefaultObstacleMask
	}
	sc.Config = sc.Config.WithDefaults()
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks the lattice config, obstacle shapes, id uniqueness and
// mover references.
func (sc *Scene) Validate() error {
	if err := sc.Config.Validate(); err != nil {
		return err
	}

	ids := make(map[navgraph.ObjectID]bool, len(sc.Obstacles))
	for i, o := range sc.Obstacles {
		if o.ID == navgraph.NoObject {
			return fmt.Errorf("%w: obstacle %d has no id", ErrInvalidScene, i)
		}
		if ids[o.ID] {
			return fmt.Errorf("%w: duplicate obstacle id %d", ErrInvalidScene, o.ID)
		}
		ids[o.ID] = true

		shapes := 0
		if o.Circle != nil {
			shapes++
		}
		if o.Box != nil {
			shapes++
		}
		if len(o.Polygon) > 0 {
			shapes++
		}
		if shapes != 1 {
			return fmt.Errorf("%w: obstacle %d must have exactly one of circle, box, polygon", ErrInvalidScene, o.ID)
		}
	}

	for _, m := range sc.Movers {
		if !ids[m.ID] {
			return fmt.Errorf("%w: mover references unknown obstacle %d", ErrInvalidScene, m.ID)
		}
	}
	return nil
}

// Collider converts the obstacle to a collision.Collider.
func (o Obstacle) Collider() collision.Collider {
	switch {
	case o.Circle != nil:
		return collision.Circle(o.ID, o.Layer, o.Circle.Center, o.Circle.Radius)
	case o.Box != nil:
		return collision.Box(o.ID, o.Layer, o.Box.Min, o.Box.Max)
	default:
		return collision.Polygon(o.ID, o.Layer, o.Polygon)
	}
}

// World builds a collision world from the scene's obstacles and, if set,
// its GeoJSON file. GeoJSON features without ids are numbered after the
// highest obstacle id.
func (sc *Scene) World(logger *log.Logger) (*collision.World, error) {
	if logger == nil {
		logger = log.Default()
	}

	colliders := make([]collision.Collider, 0, len(sc.Obstacles))
	var maxID navgraph.ObjectID
	for _, o := range sc.Obstacles {
		colliders = append(colliders, o.Collider())
		if o.ID > maxID {
			maxID = o.ID
		}
	}

	if sc.GeoJSON != "" {
		path := sc.GeoJSON
		if !filepath.IsAbs(path) && sc.dir != "" {
			path = filepath.Join(sc.dir, path)
		}
		layer := sc.GeoJSONLayer
		if layer == 0 {
			layer = sc.DestroyMask
		}
		loaded, err := collision.LoadGeoJSON(path, collision.GeoJSONOptions{
			Layer:           layer,
			FirstID:         maxID + 1,
			SimplifyEpsilon: sc.SimplifyEpsilon,
			Logger:          logger,
		})
		if err != nil {
			return nil, fmt.Errorf("scene: %w", err)
		}
		logger.Printf("   ✅ Loaded %d colliders from %s\n", len(loaded), filepath.Base(path))
		colliders = append(colliders, loaded...)
	}

	world, err := collision.NewWorld(colliders...)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	return world, nil
}
