package hohmann

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestPropulsionReport(t *testing.T) {
	calc := defaultCalculator(t)
	p := NewPropulsion(9000, 90000, Cluster{NewGenericEP(15, 10000), 8})
	if p.Thrust != 120 || p.Isp != 10000 {
		t.Fatalf("invalid propulsion inputs %+v", p)
	}
	r, err := calc.Propulsion(p)
	if err != nil {
		t.Fatalf("err %s", err)
	}
	if r.Ve != 98100 {
		t.Fatalf("ve=%f", r.Ve)
	}
	if !scalar.EqualWithinAbs(r.MassFlow, 0.0012232415902140672, 1e-15) {
		t.Fatalf("ṁ=%f", r.MassFlow)
	}
	if !scalar.EqualWithinAbs(r.FuelMass, 17138.284859562, 1e-6) {
		t.Fatalf("fuel=%f", r.FuelMass)
	}
	if r.FinalMass+r.FuelMass != p.InitialMass {
		t.Fatal("final mass and fuel do not add up")
	}
	if !scalar.EqualWithinAbs(calc.Days(r.FlightTime), 162.159, 1e-3) {
		t.Fatalf("flight time=%f days", calc.Days(r.FlightTime))
	}
}

func TestPropulsionErrors(t *testing.T) {
	calc := defaultCalculator(t)
	for _, p := range []Propulsion{
		{Δv: 9000, Isp: 0, InitialMass: 90000, Thrust: 120},
		{Δv: 9000, Isp: 10000, InitialMass: 0, Thrust: 120},
		{Δv: 9000, Isp: 10000, InitialMass: 90000, Thrust: -1},
	} {
		if _, err := calc.Propulsion(p); !errors.Is(err, ErrInvalidParameter) {
			t.Fatalf("%+v: expected ErrInvalidParameter, got %v", p, err)
		}
	}
}
