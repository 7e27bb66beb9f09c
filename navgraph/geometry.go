package navgraph

import "math"

// Point is a position in region space. Y grows upward.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Distance calculates Euclidean distance between two points
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Region is the rectangle covered by the lattice, described by its center
// and full extents.
type Region struct {
	Center Point   `json:"center" yaml:"center"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

func (r Region) Left() float64   { return r.Center.X - r.Width/2 }
func (r Region) Right() float64  { return r.Center.X + r.Width/2 }
func (r Region) Top() float64    { return r.Center.Y + r.Height/2 }
func (r Region) Bottom() float64 { return r.Center.Y - r.Height/2 }

// Contains reports whether p lies inside the region, edges included.
func (r Region) Contains(p Point) bool {
	return p.X >= r.Left() && p.X <= r.Right() && p.Y >= r.Bottom() && p.Y <= r.Top()
}

// Direction indexes the connection slots of a Node.
type Direction int

const (
	East Direction = iota
	SouthEast
	South
	SouthWest
	West
	NorthWest
	North
	NorthEast
)

// NumDirections is the number of connection slots per node.
const NumDirections = 8

var directionNames = [NumDirections]string{"E", "SE", "S", "SW", "W", "NW", "N", "NE"}

// Opposite returns the direction pointing back the way d came.
func (d Direction) Opposite() Direction {
	return (d + NumDirections/2) % NumDirections
}

func (d Direction) String() string {
	if d < 0 || d >= NumDirections {
		return "invalid"
	}
	return directionNames[d]
}

// Mask is a bit set of collision layers.
type Mask uint32

// Has reports whether any bit of other is set in m.
func (m Mask) Has(other Mask) bool {
	return m&other != 0
}

// ObjectID identifies an external object that can occupy lattice points.
type ObjectID uint64

// NoObject is the zero ObjectID. Nodes that are free, or blocked only by the
// edge buffer, carry it as their occupant.
const NoObject ObjectID = 0
