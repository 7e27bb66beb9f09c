package navgraph

import (
	"fmt"
	"math"
	"time"
)

// Default lattice parameters.
const (
	DefaultSpacing        = 0.5
	DefaultUpdateInterval = 100 * time.Millisecond
	DefaultDestroyRadius  = 0.01
	DefaultObstacleRadius = 0.05
)

// Default collision layers.
const (
	DefaultDestroyMask  Mask = 1 << 0
	DefaultObstacleMask Mask = 1 << 1
)

// Config describes the region a Graph covers and how it is maintained.
type Config struct {
	Region Region `json:"region" yaml:"region"`
	// Spacing is the lattice step d: horizontal neighbours sit 2d apart,
	// rows d apart.
	Spacing        float64       `json:"spacing" yaml:"spacing"`
	UpdateInterval time.Duration `json:"updateInterval" yaml:"update_interval"`
	// DestroyMask selects permanent geometry; lattice points inside it are
	// removed at build time.
	DestroyMask Mask `json:"destroyMask" yaml:"destroy_mask"`
	// ObstacleMask selects transient geometry re-checked on every scan.
	ObstacleMask   Mask    `json:"obstacleMask" yaml:"obstacle_mask"`
	DestroyRadius  float64 `json:"destroyRadius" yaml:"destroy_radius"`
	ObstacleRadius float64 `json:"obstacleRadius" yaml:"obstacle_radius"`
}

// DefaultConfig returns a config for a 10x10 region centered on the origin.
func DefaultConfig() Config {
	return Config{
		Region:         Region{Width: 10, Height: 10},
		Spacing:        DefaultSpacing,
		UpdateInterval: DefaultUpdateInterval,
		DestroyMask:    DefaultDestroyMask,
		ObstacleMask:   DefaultObstacleMask,
		DestroyRadius:  DefaultDestroyRadius,
		ObstacleRadius: DefaultObstacleRadius,
	}
}

// WithDefaults fills zero-valued fields from DefaultConfig. Masks are left
// alone since zero is a meaningful "no layers" value.
func (c Config) WithDefaults() Config {
	def := DefaultConfig()
	if c.Spacing == 0 {
		c.Spacing = def.Spacing
	}
	if c.UpdateInterval == 0 {
		c.UpdateInterval = def.UpdateInterval
	}
	if c.DestroyRadius == 0 {
		c.DestroyRadius = def.DestroyRadius
	}
	if c.ObstacleRadius == 0 {
		c.ObstacleRadius = def.ObstacleRadius
	}
	return c
}

// Validate checks that the config describes a finite, non-empty lattice.
func (c Config) Validate() error {
	switch {
	case !finite(c.Region.Center.X, c.Region.Center.Y, c.Region.Width, c.Region.Height):
		return fmt.Errorf("%w: region must be finite, got %gx%g at (%g, %g)", ErrInvalidConfig,
			c.Region.Width, c.Region.Height, c.Region.Center.X, c.Region.Center.Y)
	case !finite(c.Spacing, c.DestroyRadius, c.ObstacleRadius):
		return fmt.Errorf("%w: spacing and query radii must be finite", ErrInvalidConfig)
	case c.Region.Width <= 0 || c.Region.Height <= 0:
		return fmt.Errorf("%w: region must have positive size, got %gx%g", ErrInvalidConfig, c.Region.Width, c.Region.Height)
	case c.Spacing <= 0:
		return fmt.Errorf("%w: spacing must be positive, got %g", ErrInvalidConfig, c.Spacing)
	case c.UpdateInterval <= 0:
		return fmt.Errorf("%w: update interval must be positive, got %s", ErrInvalidConfig, c.UpdateInterval)
	case c.DestroyRadius < 0 || c.ObstacleRadius < 0:
		return fmt.Errorf("%w: query radii must not be negative", ErrInvalidConfig)
	}
	return nil
}

// AvoidanceMask returns every layer the lattice steers around.
func (c Config) AvoidanceMask() Mask {
	return c.DestroyMask | c.ObstacleMask
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
