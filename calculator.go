package hohmann

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter is returned (wrapped) whenever a precondition on a physical input fails.
var ErrInvalidParameter = errors.New("invalid parameter")

// Constants holds the physical constants used by a Calculator.
type Constants struct {
	G0            float64 // Standard gravity in m/s^2
	MuSun         float64 // Gravitational parameter of the Sun in m^3/s^2
	SecondsPerDay float64
}

// DefaultConstants are the constants of the reference Gateway to Mars scenario.
var DefaultConstants = Constants{G0: 9.81, MuSun: 1.327e20, SecondsPerDay: 86400}

// Validate returns an error if any constant is not strictly positive.
func (c Constants) Validate() error {
	if err := positive("g0", c.G0); err != nil {
		return err
	}
	if err := positive("mu_sun", c.MuSun); err != nil {
		return err
	}
	return positive("seconds_per_day", c.SecondsPerDay)
}

// Calculator evaluates the closed-form transfer and propulsion formulas.
// It holds no mutable state: every method is deterministic given its inputs.
type Calculator struct {
	c Constants
}

// NewCalculator returns a calculator bound to the provided constants.
func NewCalculator(c Constants) (Calculator, error) {
	if err := c.Validate(); err != nil {
		return Calculator{}, err
	}
	return Calculator{c}, nil
}

// Constants returns the constants this calculator was built with.
func (c Calculator) Constants() Constants {
	return c.c
}

// Days converts seconds to days.
func (c Calculator) Days(seconds float64) float64 {
	return seconds / c.c.SecondsPerDay
}

// EffectiveExhaustVelocity returns ve = Isp * g0 in m/s.
func (c Calculator) EffectiveExhaustVelocity(isp float64) (float64, error) {
	ve := isp * c.c.G0
	if !(ve > 0) {
		return 0, fmt.Errorf("%w: effective exhaust velocity must be greater than zero (isp=%g s)", ErrInvalidParameter, isp)
	}
	return ve, nil
}

// MassFlowRate returns ṁ = F / ve in kg/s.
func (c Calculator) MassFlowRate(thrust, isp float64) (float64, error) {
	ve, err := c.EffectiveExhaustVelocity(isp)
	if err != nil {
		return 0, err
	}
	return thrust / ve, nil
}

// FinalMass returns the mass left after a Δv maneuver.
// NOTE: this is m0 / 10^(Δv/ve), not the natural exponential of the Tsiolkovsky
// equation. The reference numbers were produced with the base-10 form so it is kept.
func (c Calculator) FinalMass(Δv, isp, m0 float64) (float64, error) {
	ve, err := c.EffectiveExhaustVelocity(isp)
	if err != nil {
		return 0, err
	}
	return m0 / math.Pow(10, Δv/ve), nil
}

// TimeOfFlight returns the burn time in seconds needed to expel the propellant
// of a Δv maneuver at a constant thrust.
func (c Calculator) TimeOfFlight(Δv, isp, m0, thrust float64) (float64, error) {
	ṁ, err := c.MassFlowRate(thrust, isp)
	if err != nil {
		return 0, err
	}
	if !(ṁ > 0) {
		return 0, fmt.Errorf("%w: mass flow rate must be greater than zero (thrust=%g N)", ErrInvalidParameter, thrust)
	}
	mFinal, err := c.FinalMass(Δv, isp, m0)
	if err != nil {
		return 0, err
	}
	return (m0 - mFinal) / ṁ, nil
}

// FuelMassNeeded returns m0 - mFinal. It is negative if mFinal > m0.
func FuelMassNeeded(m0, mFinal float64) float64 {
	return m0 - mFinal
}

func positive(name string, v float64) error {
	if !(v > 0) {
		return fmt.Errorf("%w: %s must be greater than zero (got %g)", ErrInvalidParameter, name, v)
	}
	return nil
}
