package hohmann

import (
	"fmt"
	"math"
)

// TransferOrbit is the half-ellipse connecting two coplanar circular orbits.
type TransferOrbit struct {
	R1, R2 float64 // Radii of the departure and arrival orbits (m)
	A      float64 // Semi-major axis (m)
	V1, V2 float64 // Velocities on the transfer orbit at R1 and R2 (m/s)
	μ      float64
}

// Eccentricity returns the eccentricity of the transfer ellipse.
func (o TransferOrbit) Eccentricity() float64 {
	return math.Abs(o.R2-o.R1) / (o.R1 + o.R2)
}

// SemiMinorAxis returns b = sqrt(r1*r2).
func (o TransferOrbit) SemiMinorAxis() float64 {
	return math.Sqrt(o.R1 * o.R2)
}

// Periapsis returns the periapsis radius.
func (o TransferOrbit) Periapsis() float64 {
	return math.Min(o.R1, o.R2)
}

// Apoapsis returns the apoapsis radius.
func (o TransferOrbit) Apoapsis() float64 {
	return math.Max(o.R1, o.R2)
}

// Period returns the period of the full ellipse in seconds.
func (o TransferOrbit) Period() float64 {
	return 2 * math.Pi * math.Sqrt(math.Pow(o.A, 3)/o.μ)
}

// String implements the Stringer interface.
func (o TransferOrbit) String() string {
	return fmt.Sprintf("a=%.3e e=%.4f v1=%.2f v2=%.2f", o.A, o.Eccentricity(), o.V1, o.V2)
}

// OrbitalParameters returns the semi-major axis and the transfer velocities at r1 and r2
// of the Hohmann transfer between the two heliocentric radii.
func (c Calculator) OrbitalParameters(r1, r2 float64) (TransferOrbit, error) {
	if err := positive("r1", r1); err != nil {
		return TransferOrbit{}, err
	}
	if err := positive("r2", r2); err != nil {
		return TransferOrbit{}, err
	}
	μ := c.c.MuSun
	a := (r1 + r2) / 2
	v1 := math.Sqrt(μ * (2/r1 - 1/a))
	v2 := math.Sqrt(μ * (2/r2 - 1/a))
	return TransferOrbit{R1: r1, R2: r2, A: a, V1: v1, V2: v2, μ: μ}, nil
}

// TransferTime returns the Hohmann time of flight in seconds, i.e. half the
// period of the transfer ellipse.
func (c Calculator) TransferTime(r1, r2 float64) (float64, error) {
	orbit, err := c.OrbitalParameters(r1, r2)
	if err != nil {
		return 0, err
	}
	return orbit.Period() / 2, nil
}

// CircularVelocity returns the velocity of a circular orbit of radius r around the Sun.
func (c Calculator) CircularVelocity(r float64) (float64, error) {
	if err := positive("r", r); err != nil {
		return 0, err
	}
	return math.Sqrt(c.c.MuSun / r), nil
}

// HohmannΔv returns the departure and arrival burns.
// ΔvInit = vDeparture - vI
// ΔvFinal = vF - vArrival
func (c Calculator) HohmannΔv(r1, r2 float64) (ΔvInit, ΔvFinal float64, err error) {
	orbit, err := c.OrbitalParameters(r1, r2)
	if err != nil {
		return 0, 0, err
	}
	vI, _ := c.CircularVelocity(r1)
	vF, _ := c.CircularVelocity(r2)
	return orbit.V1 - vI, vF - orbit.V2, nil
}

// PhaseAngle returns the angle (radians) by which the arrival body must lead the
// departure body at departure for both to meet at the end of the transfer.
func (c Calculator) PhaseAngle(r1, r2 float64) (float64, error) {
	tof, err := c.TransferTime(r1, r2)
	if err != nil {
		return 0, err
	}
	n2 := math.Sqrt(c.c.MuSun / math.Pow(r2, 3))
	return math.Pi - n2*tof, nil
}
