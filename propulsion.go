package hohmann

import "fmt"

// Propulsion gathers the spacecraft inputs of a maneuver.
type Propulsion struct {
	Δv          float64 // m/s
	Isp         float64 // s
	InitialMass float64 // kg
	Thrust      float64 // N
}

// NewPropulsion returns the propulsion inputs of a spacecraft fitted with the provided cluster.
func NewPropulsion(Δv, initialMass float64, cluster Cluster) Propulsion {
	thrust, isp := cluster.Thrust()
	return Propulsion{Δv: Δv, Isp: isp, InitialMass: initialMass, Thrust: thrust}
}

// PropulsionReport stores the derived propulsion performance.
type PropulsionReport struct {
	Ve         float64 // Effective exhaust velocity (m/s)
	MassFlow   float64 // kg/s
	FinalMass  float64 // kg
	FuelMass   float64 // kg
	FlightTime float64 // s
}

func (r PropulsionReport) String() string {
	return fmt.Sprintf("ve=%.2f m/s ṁ=%.4f kg/s fuel=%.2f kg burn=%.0f s", r.Ve, r.MassFlow, r.FuelMass, r.FlightTime)
}

// Propulsion evaluates the full propulsion chain once.
func (c Calculator) Propulsion(p Propulsion) (r PropulsionReport, err error) {
	if err = positive("initial mass", p.InitialMass); err != nil {
		return
	}
	if r.Ve, err = c.EffectiveExhaustVelocity(p.Isp); err != nil {
		return
	}
	if r.MassFlow, err = c.MassFlowRate(p.Thrust, p.Isp); err != nil {
		return
	}
	if r.FinalMass, err = c.FinalMass(p.Δv, p.Isp, p.InitialMass); err != nil {
		return
	}
	if r.FlightTime, err = c.TimeOfFlight(p.Δv, p.Isp, p.InitialMass, p.Thrust); err != nil {
		return
	}
	r.FuelMass = FuelMassNeeded(p.InitialMass, r.FinalMass)
	return
}
