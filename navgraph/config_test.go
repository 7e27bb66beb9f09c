package navgraph_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nav-lattice/navgraph"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := navgraph.DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 0.5, cfg.Spacing)
	assert.Equal(t, 100*time.Millisecond, cfg.UpdateInterval)
	assert.Equal(t, navgraph.Mask(3), cfg.AvoidanceMask())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*navgraph.Config)
	}{
		{"zero width", func(c *navgraph.Config) { c.Region.Width = 0 }},
		{"negative height", func(c *navgraph.Config) { c.Region.Height = -2 }},
		{"zero spacing", func(c *navgraph.Config) { c.Spacing = 0 }},
		{"zero interval", func(c *navgraph.Config) { c.UpdateInterval = 0 }},
		{"negative radius", func(c *navgraph.Config) { c.ObstacleRadius = -0.1 }},
		{"nan spacing", func(c *navgraph.Config) { c.Spacing = math.NaN() }},
		{"infinite width", func(c *navgraph.Config) { c.Region.Width = math.Inf(1) }},
		{"nan center", func(c *navgraph.Config) { c.Region.Center.Y = math.NaN() }},
		{"nan radius", func(c *navgraph.Config) { c.DestroyRadius = math.NaN() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := navgraph.DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), navgraph.ErrInvalidConfig)
		})
	}
}

func TestConfigWithDefaults(t *testing.T) {
	cfg := navgraph.Config{
		Region:      navgraph.Region{Width: 4, Height: 4},
		Spacing:     0.25,
		DestroyMask: 8,
	}.WithDefaults()

	assert.Equal(t, 0.25, cfg.Spacing)
	assert.Equal(t, navgraph.DefaultUpdateInterval, cfg.UpdateInterval)
	assert.Equal(t, navgraph.DefaultDestroyRadius, cfg.DestroyRadius)
	assert.Equal(t, navgraph.DefaultObstacleRadius, cfg.ObstacleRadius)
	assert.Equal(t, navgraph.Mask(8), cfg.DestroyMask)
	assert.Zero(t, cfg.ObstacleMask)
	require.NoError(t, cfg.Validate())
}

func TestDirectionOpposite(t *testing.T) {
	pairs := map[navgraph.Direction]navgraph.Direction{
		navgraph.East:      navgraph.West,
		navgraph.SouthEast: navgraph.NorthWest,
		navgraph.South:     navgraph.North,
		navgraph.SouthWest: navgraph.NorthEast,
	}
	for d, opp := range pairs {
		assert.Equal(t, opp, d.Opposite(), d.String())
		assert.Equal(t, d, opp.Opposite(), opp.String())
	}
}

func TestRegionBounds(t *testing.T) {
	r := navgraph.Region{Center: navgraph.Point{X: 1, Y: -1}, Width: 4, Height: 2}
	assert.Equal(t, -1.0, r.Left())
	assert.Equal(t, 3.0, r.Right())
	assert.Equal(t, 0.0, r.Top())
	assert.Equal(t, -2.0, r.Bottom())
	assert.True(t, r.Contains(navgraph.Point{X: 3, Y: 0}))
	assert.False(t, r.Contains(navgraph.Point{X: 3.1, Y: 0}))
}
