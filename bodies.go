package hohmann

import (
	"fmt"
	"strings"
	"time"
)

const (
	// AU is one astronomical unit in meters.
	AU  = 1.496e11
	day = 24 * time.Hour
)

// CelestialObject defines a celestial object on a circular heliocentric orbit.
type CelestialObject struct {
	Name   string
	Radius float64       // Body radius (m)
	a      float64       // Orbit radius (m)
	μ      float64       // Gravitational parameter (m^3/s^2)
	Period time.Duration // Sidereal period
	Color  string
}

// GM returns μ (which is unexported because it's a lowercase letter)
func (c CelestialObject) GM() float64 {
	return c.μ
}

// OrbitRadius returns the radius of the circular heliocentric orbit of this body.
func (c CelestialObject) OrbitRadius() float64 {
	return c.a
}

// WithOrbit returns a copy of this body on another circular orbit.
func (c CelestialObject) WithOrbit(radius float64, period time.Duration) CelestialObject {
	c.a = radius
	c.Period = period
	return c
}

// String implements the Stringer interface.
func (c CelestialObject) String() string {
	return c.Name + " body"
}

// Equals returns whether the provided celestial object is the same.
func (c CelestialObject) Equals(b CelestialObject) bool {
	return c.Name == b.Name && c.Radius == b.Radius && c.a == b.a && c.μ == b.μ && c.Period == b.Period
}

// CelestialObjectFromString returns the object from its name
func CelestialObjectFromString(name string) (CelestialObject, error) {
	switch strings.ToLower(name) {
	case "sun":
		return Sun, nil
	case "earth", "gateway":
		return Earth, nil
	case "mars":
		return Mars, nil
	default:
		return CelestialObject{}, fmt.Errorf("undefined body '%s'", name)
	}
}

// PeriodFromDays converts a period in days to a duration.
func PeriodFromDays(days float64) time.Duration {
	return time.Duration(days * float64(day))
}

/* Definitions */

// Sun is our closest star.
var Sun = CelestialObject{"Sun", 6.957e8, 0, 1.327e20, 0, "yellow"}

// Earth is home, and the Gateway orbits with it.
var Earth = CelestialObject{"Earth", 6.3781363e6, 1.496e11, 3.98600433e14, PeriodFromDays(365.25), "blue"}

// Mars is the vacation place.
var Mars = CelestialObject{"Mars", 3.39619e6, 2.272e11, 4.28283100e13, PeriodFromDays(687), "red"}
