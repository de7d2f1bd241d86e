package main

import (
	"fmt"
	"io"

	"github.com/gateway-mars/hohmann"
)

// Report stores everything printed for a scenario.
type Report struct {
	Propulsion   hohmann.PropulsionReport
	Transfer     hohmann.TransferOrbit
	TransferTime float64 // s
	flightDays   float64
	transferDays float64
}

// NewReport evaluates the scenario once.
func NewReport(calc hohmann.Calculator, s hohmann.Scenario) (r Report, err error) {
	if r.Propulsion, err = calc.Propulsion(s.Propulsion()); err != nil {
		return
	}
	if r.Transfer, err = calc.OrbitalParameters(s.R1, s.R2); err != nil {
		return
	}
	if r.TransferTime, err = calc.TransferTime(s.R1, s.R2); err != nil {
		return
	}
	r.flightDays = calc.Days(r.Propulsion.FlightTime)
	r.transferDays = calc.Days(r.TransferTime)
	return
}

// Write prints the report.
func (r Report) Write(w io.Writer) error {
	_, err := fmt.Fprintf(w, `Spacecraft Performance:
Effective Exhaust Velocity: %.2f m/s
Time of Flight: %.2f days
Mass of Fuel Needed: %.2f kg
Mass Flow Rate: %.4f kg/s

Hohmann Transfer Orbit:
Semi-major axis of the transfer orbit: %.2e m
Velocity at initial orbit (r1): %.2f m/s
Velocity at final orbit (r2): %.2f m/s
Transfer time: %.2f days
`, r.Propulsion.Ve, r.flightDays, r.Propulsion.FuelMass, r.Propulsion.MassFlow,
		r.Transfer.A, r.Transfer.V1, r.Transfer.V2, r.transferDays)
	return err
}
