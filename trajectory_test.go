package hohmann

import (
	"errors"
	"math"
	"testing"
	"time"

	"gonum.org/v1/gonum/floats/scalar"
)

func earthMarsTrajectory(t *testing.T, step, duration time.Duration) *Trajectory {
	calc := defaultCalculator(t)
	transfer, err := calc.OrbitalParameters(earthMarsR1, earthMarsR2)
	if err != nil {
		t.Fatalf("err %s", err)
	}
	φ, err := RendezvousPhase(transfer, Mars)
	if err != nil {
		t.Fatalf("err %s", err)
	}
	epoch := time.Date(2035, 1, 1, 0, 0, 0, 0, time.UTC)
	traj, err := NewTrajectory(transfer, Earth, Mars, φ, epoch, step, duration)
	if err != nil {
		t.Fatalf("err %s", err)
	}
	return traj
}

func TestTrajectoryDefaults(t *testing.T) {
	traj := earthMarsTrajectory(t, 0, 0)
	if traj.Step != time.Hour {
		t.Fatalf("step=%s", traj.Step)
	}
	if days := traj.Duration.Hours() / 24; !scalar.EqualWithinAbs(days, 258.12, 1e-2) {
		t.Fatalf("duration=%f days", days)
	}
	if traj.Len() != 6195 {
		t.Fatalf("len=%d", traj.Len())
	}
	if traj.Departure.OrbitRadius() != earthMarsR1 || traj.Arrival.OrbitRadius() != earthMarsR2 {
		t.Fatal("bodies were not placed on the transfer radii")
	}
}

func TestTrajectoryDeparture(t *testing.T) {
	traj := earthMarsTrajectory(t, 0, 0)
	f := traj.At(0)
	if !f.DT.Equal(traj.Epoch) {
		t.Fatalf("dt=%s", f.DT)
	}
	if !scalar.EqualWithinRel(f.Spacecraft.R.X, earthMarsR1, 1e-12) || !scalar.EqualWithinAbs(f.Spacecraft.R.Y, 0, 1e-3) {
		t.Fatalf("spacecraft not on Earth orbit at departure: %+v", f.Spacecraft.R)
	}
	if !scalar.EqualWithinAbs(f.Departure.R.X, f.Spacecraft.R.X, 1e-3) || !scalar.EqualWithinAbs(f.Departure.R.Y, f.Spacecraft.R.Y, 1e-3) {
		t.Fatalf("spacecraft %+v and Earth %+v differ at departure", f.Spacecraft.R, f.Departure.R)
	}
	if !scalar.EqualWithinAbs(f.Arrival.R.Angle(), traj.Phase, 1e-12) {
		t.Fatalf("Mars angle=%f != %f", f.Arrival.R.Angle(), traj.Phase)
	}
	// Circular velocity of Earth.
	vExp := 2 * math.Pi * earthMarsR1 / Earth.Period.Seconds()
	if !scalar.EqualWithinRel(f.Departure.V.Norm(), vExp, 1e-12) {
		t.Fatalf("|v|=%f != %f", f.Departure.V.Norm(), vExp)
	}
}

func TestTrajectoryArrival(t *testing.T) {
	traj := earthMarsTrajectory(t, 0, 0)
	f := traj.At(traj.Duration)
	if !scalar.EqualWithinRel(f.Spacecraft.R.Norm(), earthMarsR2, 1e-9) {
		t.Fatalf("spacecraft not at aphelion: r=%e", f.Spacecraft.R.Norm())
	}
	gap := math.Hypot(f.Spacecraft.R.X-f.Arrival.R.X, f.Spacecraft.R.Y-f.Arrival.R.Y)
	if gap > 1e-6*earthMarsR2 {
		t.Fatalf("spacecraft is %e m away from Mars at arrival", gap)
	}
}

func TestTrajectoryFrames(t *testing.T) {
	traj := earthMarsTrajectory(t, 24*time.Hour, 0)
	frames := traj.Frames()
	if len(frames) != traj.Len() || len(frames) != 259 {
		t.Fatalf("got %d frames", len(frames))
	}
	for k, f := range frames {
		if f.Elapsed != time.Duration(k)*traj.Step {
			t.Fatalf("frame %d at %s", k, f.Elapsed)
		}
		if f.Elapsed >= traj.Duration {
			t.Fatalf("frame %d after the end of the transfer", k)
		}
		r := f.Spacecraft.R.Norm()
		if r < earthMarsR1*(1-1e-12) || r > earthMarsR2*(1+1e-12) {
			t.Fatalf("frame %d: r=%e out of the transfer bounds", k, r)
		}
		if !scalar.EqualWithinRel(f.Arrival.R.Norm(), earthMarsR2, 1e-12) {
			t.Fatalf("frame %d: Mars left its orbit", k)
		}
	}
	final := traj.Final()
	if final.Elapsed != frames[len(frames)-1].Elapsed || final.Spacecraft != frames[len(frames)-1].Spacecraft {
		t.Fatalf("final frame %s != %s", final, frames[len(frames)-1])
	}
	// Monotonic outbound leg.
	for k := 1; k < len(frames); k++ {
		if frames[k].Spacecraft.R.Norm() < frames[k-1].Spacecraft.R.Norm() {
			t.Fatalf("frame %d: spacecraft moving inwards", k)
		}
	}
}

func TestTrajectoryShort(t *testing.T) {
	traj := earthMarsTrajectory(t, time.Hour, 30*time.Minute)
	if frames := traj.Frames(); len(frames) != 1 || frames[0].Elapsed != 0 {
		t.Fatalf("expected a single frame, got %d", len(frames))
	}
	traj = earthMarsTrajectory(t, time.Hour, 3*time.Hour)
	if frames := traj.Frames(); len(frames) != 3 {
		t.Fatalf("expected three frames, got %d", len(frames))
	}
}

func TestTrajectoryErrors(t *testing.T) {
	calc := defaultCalculator(t)
	transfer, _ := calc.OrbitalParameters(earthMarsR1, earthMarsR2)
	epoch := time.Now()
	if _, err := NewTrajectory(transfer, Earth, Mars, 0, epoch, -time.Hour, 0); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter for a negative step, got %v", err)
	}
	if _, err := NewTrajectory(transfer, Earth, Sun, 0, epoch, 0, 0); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter for a body without period, got %v", err)
	}
	if _, err := NewTrajectory(TransferOrbit{}, Earth, Mars, 0, epoch, 0, time.Hour); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter for an empty transfer, got %v", err)
	}
	for _, step := range []time.Duration{time.Nanosecond, time.Second} {
		if _, err := NewTrajectory(transfer, Earth, Mars, 0, epoch, step, 0); !errors.Is(err, ErrInvalidParameter) {
			t.Fatalf("expected ErrInvalidParameter for a %s step, got %v", step, err)
		}
	}
	// Largest grid still accepted.
	traj, err := NewTrajectory(transfer, Earth, Mars, 0, epoch, time.Second, MaxFrames*time.Second)
	if err != nil {
		t.Fatalf("err %s", err)
	}
	if traj.Len() != MaxFrames {
		t.Fatalf("len=%d", traj.Len())
	}
}

func TestRendezvousPhase(t *testing.T) {
	calc := defaultCalculator(t)
	transfer, _ := calc.OrbitalParameters(earthMarsR1, earthMarsR2)
	φ, err := RendezvousPhase(transfer, Mars)
	if err != nil {
		t.Fatalf("err %s", err)
	}
	if !scalar.EqualWithinAbs(Rad2deg(φ), 44.7405, 1e-3) {
		t.Fatalf("phase=%f deg", Rad2deg(φ))
	}
	if _, err := RendezvousPhase(transfer, Sun); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter for a body without period, got %v", err)
	}
}
