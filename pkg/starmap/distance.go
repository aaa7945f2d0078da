package starmap

import "math"

// LightYearMeters converts dataset coordinates (meters) to light-years.
const LightYearMeters = 9.461e15

// Meters returns the Euclidean distance between two positions in the
// dataset's native units.
func (p Position) Meters(o Position) float64 {
	dx := p.X - o.X
	dy := p.Y - o.Y
	dz := p.Z - o.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Distance returns the distance between a and b in light-years.
// It is symmetric and returns 0 for coincident points.
func Distance(a, b Position) float64 {
	return a.Meters(b) / LightYearMeters
}
