package hohmann

import (
	"math"
)

const (
	deg2rad = math.Pi / 180
)

// Point is a position in the ecliptic plane, in meters.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Norm returns the distance of this point to the origin.
func (p Point) Norm() float64 {
	return math.Hypot(p.X, p.Y)
}

// Angle returns the polar angle of this point in [0; 2π).
func (p Point) Angle() float64 {
	θ := math.Atan2(p.Y, p.X)
	if θ < 0 {
		θ += 2 * math.Pi
	}
	return θ
}

// polar returns the Cartesian point at radius r and angle θ.
func polar(r, θ float64) Point {
	s, c := math.Sincos(θ)
	return Point{r * c, r * s}
}

// Deg2rad converts degrees to radians, and enforced only positive numbers.
func Deg2rad(a float64) float64 {
	if a < 0 {
		a += 360
	}
	return math.Mod(a*deg2rad, 2*math.Pi)
}

// Rad2deg converts radians to degrees, and enforced only positive numbers.
func Rad2deg(a float64) float64 {
	if a < 0 {
		a += 2 * math.Pi
	}
	return math.Mod(a/deg2rad, 360)
}
