package hohmann

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/spf13/viper"
)

const (
	envPrefix      = "hohmann"
	dateTimeFormat = "2006-01-02 15:04:05"
	// PhaseHohmann places the arrival body so that it meets the spacecraft at the end of the transfer.
	PhaseHohmann = "hohmann"
	// PhaseAligned starts both bodies on the same heliocentric longitude.
	PhaseAligned = "aligned"
)

// Scenario is a full Gateway to Mars run: constants, spacecraft, transfer and outputs.
type Scenario struct {
	Constants   Constants
	Δv          float64 // m/s
	InitialMass float64 // kg
	Cluster     Cluster
	R1, R2      float64 // m
	Departure   CelestialObject
	Arrival     CelestialObject
	Epoch       time.Time
	Step        time.Duration
	Duration    time.Duration // Zero means the transfer time
	Phase       string        // PhaseHohmann, PhaseAligned or an angle in degrees
	Export      ExportConfig
	SVG         string // SVG output file, empty to skip
	ServerAddr  string // Animation server address, empty to skip
	FPS         float64
}

// Propulsion returns the propulsion inputs of this scenario.
func (s Scenario) Propulsion() Propulsion {
	return NewPropulsion(s.Δv, s.InitialMass, s.Cluster)
}

// PhaseAngle returns the phase angle in radians. The Hohmann phase uses the period of
// the arrival body so that it meets the spacecraft on the animation grid.
func (s Scenario) PhaseAngle(calc Calculator) (float64, error) {
	switch strings.ToLower(s.Phase) {
	case "", PhaseHohmann:
		transfer, err := calc.OrbitalParameters(s.R1, s.R2)
		if err != nil {
			return 0, err
		}
		return RendezvousPhase(transfer, s.Arrival)
	case PhaseAligned:
		return 0, nil
	}
	deg, err := strconv.ParseFloat(s.Phase, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: could not understand phase `%s`", ErrInvalidParameter, s.Phase)
	}
	return Deg2rad(deg), nil
}

// Trajectory returns the animation grid of this scenario.
func (s Scenario) Trajectory(calc Calculator) (*Trajectory, error) {
	transfer, err := calc.OrbitalParameters(s.R1, s.R2)
	if err != nil {
		return nil, err
	}
	φ, err := s.PhaseAngle(calc)
	if err != nil {
		return nil, err
	}
	return NewTrajectory(transfer, s.Departure, s.Arrival, φ, s.Epoch, s.Step, s.Duration)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("constants.g0", DefaultConstants.G0)
	v.SetDefault("constants.mu_sun", DefaultConstants.MuSun)
	v.SetDefault("constants.seconds_per_day", DefaultConstants.SecondsPerDay)
	v.SetDefault("spacecraft.delta_v", 9000.)
	v.SetDefault("spacecraft.initial_mass", 90000.)
	v.SetDefault("spacecraft.thruster", "generic")
	v.SetDefault("spacecraft.thrust_per_thruster", 15.)
	v.SetDefault("spacecraft.isp", 10000.)
	v.SetDefault("spacecraft.thruster_count", 8)
	v.SetDefault("transfer.departure", Earth.Name)
	v.SetDefault("transfer.arrival", Mars.Name)
	v.SetDefault("transfer.r1", 1.496e11)
	v.SetDefault("transfer.r2", 2.272e11)
	v.SetDefault("transfer.epoch", "2000-01-01 12:00:00")
	v.SetDefault("trajectory.step", DefaultStep)
	v.SetDefault("trajectory.duration_days", 0.)
	v.SetDefault("trajectory.departure_period_days", 365.25)
	v.SetDefault("trajectory.arrival_period_days", 687.)
	v.SetDefault("trajectory.phase", PhaseHohmann)
	v.SetDefault("export.output_dir", "./")
	v.SetDefault("export.filename", "gateway-mars")
	v.SetDefault("export.csv", false)
	v.SetDefault("export.xyzv", false)
	v.SetDefault("export.timestamp", false)
	v.SetDefault("export.svg", "")
	v.SetDefault("server.addr", "")
	v.SetDefault("server.fps", 100.)
}

// LoadScenario reads the scenario from the provided TOML file. Without a file, the
// reference Gateway to Mars scenario is returned. Every key may be overridden by an
// environment variable, e.g. HOHMANN_SPACECRAFT_ISP.
func LoadScenario(path string) (Scenario, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Scenario{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	return readScenario(v)
}

func readScenario(v *viper.Viper) (s Scenario, err error) {
	s.Constants = Constants{
		G0:            v.GetFloat64("constants.g0"),
		MuSun:         v.GetFloat64("constants.mu_sun"),
		SecondsPerDay: v.GetFloat64("constants.seconds_per_day"),
	}
	if err = s.Constants.Validate(); err != nil {
		return
	}

	s.Δv = v.GetFloat64("spacecraft.delta_v")
	s.InitialMass = v.GetFloat64("spacecraft.initial_mass")
	thruster, err := ThrusterFromString(v.GetString("spacecraft.thruster"), v.GetFloat64("spacecraft.thrust_per_thruster"), v.GetFloat64("spacecraft.isp"))
	if err != nil {
		return
	}
	count := v.GetInt("spacecraft.thruster_count")
	if count <= 0 {
		err = fmt.Errorf("%w: thruster_count must be greater than zero (got %d)", ErrInvalidParameter, count)
		return
	}
	s.Cluster = Cluster{thruster, uint(count)}

	s.R1 = v.GetFloat64("transfer.r1")
	s.R2 = v.GetFloat64("transfer.r2")
	if s.Epoch, err = readJDEorTime(v, "transfer.epoch"); err != nil {
		return
	}
	departure, err := CelestialObjectFromString(v.GetString("transfer.departure"))
	if err != nil {
		return
	}
	arrival, err := CelestialObjectFromString(v.GetString("transfer.arrival"))
	if err != nil {
		return
	}
	s.Departure = departure.WithOrbit(s.R1, PeriodFromDays(v.GetFloat64("trajectory.departure_period_days")))
	s.Arrival = arrival.WithOrbit(s.R2, PeriodFromDays(v.GetFloat64("trajectory.arrival_period_days")))

	s.Step = v.GetDuration("trajectory.step")
	if s.Step <= 0 {
		err = fmt.Errorf("%w: trajectory step must be greater than zero (got %s)", ErrInvalidParameter, s.Step)
		return
	}
	s.Duration = PeriodFromDays(v.GetFloat64("trajectory.duration_days"))
	s.Phase = v.GetString("trajectory.phase")

	s.Export = ExportConfig{
		OutputDir: v.GetString("export.output_dir"),
		Filename:  v.GetString("export.filename"),
		AsCSV:     v.GetBool("export.csv"),
		Cosmo:     v.GetBool("export.xyzv"),
		Timestamp: v.GetBool("export.timestamp"),
	}
	s.SVG = v.GetString("export.svg")
	s.ServerAddr = v.GetString("server.addr")
	s.FPS = v.GetFloat64("server.fps")
	if !(s.FPS > 0) {
		err = fmt.Errorf("%w: server fps must be greater than zero (got %g)", ErrInvalidParameter, s.FPS)
	}
	return
}

// readJDEorTime reads either a Julian date or a date time string.
func readJDEorTime(v *viper.Viper, key string) (dt time.Time, err error) {
	if t, ok := v.Get(key).(time.Time); ok {
		return t.UTC(), nil
	}
	raw := strings.TrimSpace(v.GetString(key))
	if jde, perr := strconv.ParseFloat(raw, 64); perr == nil {
		return julian.JDToTime(jde), nil
	}
	dt, err = time.Parse(dateTimeFormat, raw)
	if err != nil {
		if dt, err = time.Parse(time.RFC3339, raw); err != nil {
			err = fmt.Errorf("could not understand `%s`: %s", key, err)
		}
	}
	return dt.UTC(), err
}
