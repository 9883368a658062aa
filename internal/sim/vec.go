package sim

import "math"

// Vec2 is a 2D vector in world pixels. The y axis points up and angle 0
// points east, increasing counter-clockwise.
type Vec2 struct {
	X float64
	Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v Vec2) DistSq(o Vec2) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return dx*dx + dy*dy
}

// Angle returns the direction of v in radians.
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Direction enumerates the eight movement directions.
type Direction int

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest

	directionCount = 8
)

var sqrt2Over2 = math.Sqrt(2) / 2

// directionVectors holds the unit vector for each Direction.
var directionVectors = [directionCount]Vec2{
	North:     {X: 0, Y: 1},
	NorthEast: {X: sqrt2Over2, Y: sqrt2Over2},
	East:      {X: 1, Y: 0},
	SouthEast: {X: sqrt2Over2, Y: -sqrt2Over2},
	South:     {X: 0, Y: -1},
	SouthWest: {X: -sqrt2Over2, Y: -sqrt2Over2},
	West:      {X: -1, Y: 0},
	NorthWest: {X: -sqrt2Over2, Y: sqrt2Over2},
}

// Vector returns the unit vector for the direction.
func (d Direction) Vector() Vec2 {
	if d < 0 || d >= directionCount {
		return Vec2{}
	}
	return directionVectors[d]
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case NorthEast:
		return "northeast"
	case East:
		return "east"
	case SouthEast:
		return "southeast"
	case South:
		return "south"
	case SouthWest:
		return "southwest"
	case West:
		return "west"
	case NorthWest:
		return "northwest"
	default:
		return "unknown"
	}
}

// Directions returns all eight directions, useful for random picks.
func Directions() [directionCount]Direction {
	return [directionCount]Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}
}

// DirectionFromAngle maps an angle in radians to the nearest of the eight
// directions.
func DirectionFromAngle(angle float64) Direction {
	normalized := math.Mod(angle, 2*math.Pi)
	if normalized < 0 {
		normalized += 2 * math.Pi
	}
	section := int((normalized+math.Pi/8)/(math.Pi/4)) % directionCount
	ordered := [directionCount]Direction{East, NorthEast, North, NorthWest, West, SouthWest, South, SouthEast}
	return ordered[section]
}

// NormalizeAngle wraps an angle to [-pi, pi].
func NormalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
