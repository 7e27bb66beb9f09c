package collision

import (
	"fmt"
	"log"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"nav-lattice/navgraph"
)

// GeoJSONOptions controls how features become colliders.
type GeoJSONOptions struct {
	// Layer is used for features without a numeric "layer" property.
	Layer navgraph.Mask
	// FirstID numbers features without a numeric "id" property, counting up.
	FirstID navgraph.ObjectID
	// SimplifyEpsilon, when positive, runs polygon rings through
	// Douglas-Peucker before indexing.
	SimplifyEpsilon float64
	// Logger receives warnings about skipped features. Defaults to log.Default().
	Logger *log.Logger
}

// LoadGeoJSON reads a FeatureCollection file and converts its Polygon,
// MultiPolygon and Point features to colliders. Points need a positive
// "radius" property. Polygons fully contained in another polygon on the
// same layer are dropped.
func LoadGeoJSON(path string, opts GeoJSONOptions) ([]Collider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	colliders, err := ParseGeoJSON(data, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return colliders, nil
}

// ParseGeoJSON is LoadGeoJSON on an in-memory document.
func ParseGeoJSON(data []byte, opts GeoJSONOptions) ([]Collider, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, err
	}

	nextID := opts.FirstID
	if nextID == navgraph.NoObject {
		nextID = 1
	}

	colliders := make([]Collider, 0, len(fc.Features))
	for i, feature := range fc.Features {
		id := navgraph.ObjectID(numberProperty(feature.Properties, "id", 0))
		if id == navgraph.NoObject {
			id = nextID
			nextID++
		}
		c := Collider{
			ID:     id,
			Layer:  navgraph.Mask(numberProperty(feature.Properties, "layer", float64(opts.Layer))),
			Radius: numberProperty(feature.Properties, "radius", 0),
		}

		switch g := feature.Geometry.(type) {
		case orb.Polygon:
			c.Geometry = SimplifyPolygon(g, opts.SimplifyEpsilon)
		case orb.MultiPolygon:
			mp := make(orb.MultiPolygon, len(g))
			for j, poly := range g {
				mp[j] = SimplifyPolygon(poly, opts.SimplifyEpsilon)
			}
			c.Geometry = mp
		case orb.Point:
			if c.Radius <= 0 {
				logger.Printf("⚠️  Skipping feature %d: point without radius\n", i)
				continue
			}
			c.Geometry = g
		default:
			logger.Printf("⚠️  Skipping feature %d: unsupported geometry %T\n", i, feature.Geometry)
			continue
		}

		if err := c.Validate(); err != nil {
			logger.Printf("⚠️  Skipping feature %d: %v\n", i, err)
			continue
		}
		colliders = append(colliders, c)
	}

	pruned := RemoveContained(colliders)
	if dropped := len(colliders) - len(pruned); dropped > 0 {
		logger.Printf("   Colliders after removing contained: %d (removed %d)\n", len(pruned), dropped)
	}
	return pruned, nil
}

// numberProperty reads a numeric feature property, falling back to def
// when the key is missing or not a number.
func numberProperty(props geojson.Properties, key string, def float64) float64 {
	switch v := props[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return def
}
