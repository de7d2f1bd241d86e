package hohmann

import (
	"fmt"
	"math"
	"time"
)

const (
	// DefaultStep is the time step of the animation grid.
	DefaultStep = time.Hour
	// MaxFrames bounds the number of frames of a grid.
	MaxFrames   = 1 << 20
)

// State is the position and velocity of a body in the ecliptic plane.
type State struct {
	R Point `json:"r"` // m
	V Point `json:"v"` // m/s
}

// Frame holds the states of every body at one instant of the transfer.
type Frame struct {
	Elapsed    time.Duration `json:"-"`
	DT         time.Time     `json:"dt"`
	Departure  State         `json:"departure"`
	Arrival    State         `json:"arrival"`
	Spacecraft State         `json:"spacecraft"`
}

// Days returns the elapsed time in days.
func (f Frame) Days() float64 {
	return f.Elapsed.Hours() / 24
}

// String implements the Stringer interface.
func (f Frame) String() string {
	return fmt.Sprintf("t=%.2fd sc=(%.3e, %.3e) r=%.3e", f.Days(), f.Spacecraft.R.X, f.Spacecraft.R.Y, f.Spacecraft.R.Norm())
}

// Trajectory evaluates the transfer on a fixed time grid for display purposes.
// The planets move on circles at constant angular rate and the spacecraft follows
// the parametric transfer ellipse, with one focus on the Sun.
type Trajectory struct {
	Transfer  TransferOrbit
	Departure CelestialObject
	Arrival   CelestialObject
	Phase     float64 // Lead angle of the arrival body at departure (rad)
	Epoch     time.Time
	Step      time.Duration
	Duration  time.Duration
}

// NewTrajectory returns a trajectory over the provided duration. The departure and arrival
// bodies are placed on the transfer radii. A zero step defaults to DefaultStep and a zero
// duration to the transfer time of flight.
func NewTrajectory(transfer TransferOrbit, departure, arrival CelestialObject, phase float64, epoch time.Time, step, duration time.Duration) (*Trajectory, error) {
	if step == 0 {
		step = DefaultStep
	}
	if duration == 0 {
		duration = time.Duration(transfer.Period() / 2 * float64(time.Second))
	}
	if step < 0 {
		return nil, fmt.Errorf("%w: step must be greater than zero (got %s)", ErrInvalidParameter, step)
	}
	if duration < 0 {
		return nil, fmt.Errorf("%w: duration must be greater than zero (got %s)", ErrInvalidParameter, duration)
	}
	if departure.Period <= 0 || arrival.Period <= 0 {
		return nil, fmt.Errorf("%w: %s and %s must have a positive period", ErrInvalidParameter, departure.Name, arrival.Name)
	}
	if !(transfer.A > 0) {
		return nil, fmt.Errorf("%w: undefined transfer orbit", ErrInvalidParameter)
	}
	if n := math.Ceil(float64(duration) / float64(step)); n > MaxFrames {
		return nil, fmt.Errorf("%w: step %s over %s yields %.0f frames (max %d)", ErrInvalidParameter, step, duration, n, MaxFrames)
	}
	return &Trajectory{
		Transfer:  transfer,
		Departure: departure.WithOrbit(transfer.R1, departure.Period),
		Arrival:   arrival.WithOrbit(transfer.R2, arrival.Period),
		Phase:     phase,
		Epoch:     epoch,
		Step:      step,
		Duration:  duration,
	}, nil
}

// Len returns the number of frames on the grid.
func (t Trajectory) Len() int {
	return int(math.Ceil(float64(t.Duration) / float64(t.Step)))
}

// Frames returns the frames at k*Step for every k such that k*Step < Duration.
func (t Trajectory) Frames() []Frame {
	n := t.Len()
	if n == 0 {
		return nil
	}
	frames := make([]Frame, n)
	for k := range frames {
		frames[k] = t.At(time.Duration(k) * t.Step)
	}
	return frames
}

// Final returns the last frame of the grid.
func (t Trajectory) Final() Frame {
	n := t.Len()
	if n == 0 {
		return t.At(0)
	}
	return t.At(time.Duration(n-1) * t.Step)
}

// At returns the frame at the provided elapsed time since departure.
func (t Trajectory) At(elapsed time.Duration) Frame {
	sec := elapsed.Seconds()
	return Frame{
		Elapsed:    elapsed,
		DT:         t.Epoch.Add(elapsed),
		Departure:  circular(t.Departure, 0, sec),
		Arrival:    circular(t.Arrival, t.Phase, sec),
		Spacecraft: t.spacecraft(sec),
	}
}

// RendezvousPhase returns the lead angle (rad) of the arrival body at departure such
// that it reaches the aphelion of the transfer together with the spacecraft, given
// the sidereal period the body moves with on the grid.
func RendezvousPhase(transfer TransferOrbit, arrival CelestialObject) (float64, error) {
	if arrival.Period <= 0 {
		return 0, fmt.Errorf("%w: %s must have a positive period", ErrInvalidParameter, arrival.Name)
	}
	tof := transfer.Period() / 2
	return math.Pi - 2*math.Pi*tof/arrival.Period.Seconds(), nil
}

func (t Trajectory) spacecraft(sec float64) State {
	a := t.Transfer.A
	b := t.Transfer.SemiMinorAxis()
	n := 2 * math.Pi / t.Transfer.Period()
	θ := n * sec
	s, c := math.Sincos(θ)
	// Center offset so that θ=0 is on R1 and θ=π on R2.
	offset := t.Transfer.R1 - a
	return State{
		R: Point{a*c + offset, b * s},
		V: Point{-a * s * n, b * c * n},
	}
}

func circular(body CelestialObject, θ0, sec float64) State {
	n := 2 * math.Pi / body.Period.Seconds()
	θ := θ0 + n*sec
	r := body.OrbitRadius()
	return State{R: polar(r, θ), V: polar(r*n, θ+math.Pi/2)}
}
