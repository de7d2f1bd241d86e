package hohmann

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	kitlog "github.com/go-kit/kit/log"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestWriteInterpolatedStates(t *testing.T) {
	traj := earthMarsTrajectory(t, 24*time.Hour, 0)
	frames := traj.Frames()
	var buf bytes.Buffer
	if err := WriteInterpolatedStates(&buf, frames, func(f Frame) State { return f.Spacecraft }); err != nil {
		t.Fatalf("err %s", err)
	}
	states, err := ParseInterpolatedStates(&buf)
	if err != nil {
		t.Fatalf("err %s", err)
	}
	if len(states) != len(frames) {
		t.Fatalf("read %d states, wrote %d", len(states), len(frames))
	}
	if !scalar.EqualWithinAbs(states[0].JD, 2464328.5, 1e-6) {
		t.Fatalf("JD=%f", states[0].JD)
	}
	if !scalar.EqualWithinAbs(states[1].JD-states[0].JD, 1, 1e-6) {
		t.Fatalf("ΔJD=%f", states[1].JD-states[0].JD)
	}
	if !scalar.EqualWithinAbs(states[0].Position[0], earthMarsR1/1e3, 1e-3) {
		t.Fatalf("x=%f km", states[0].Position[0])
	}
	if err := WriteInterpolatedStates(&buf, nil, nil); err == nil {
		t.Fatal("expected an error without frames")
	}
}

func TestParseInterpolatedStatesErrors(t *testing.T) {
	for _, in := range []string{
		"# comment\n2451545.0 1 2 3 4 5 x\n",
		"2451545.0 1 2 3 4 5\n",
	} {
		if _, err := ParseInterpolatedStates(strings.NewReader(in)); err == nil {
			t.Fatalf("expected an error for %q", in)
		}
	}
}

func TestWriteCSV(t *testing.T) {
	traj := earthMarsTrajectory(t, 24*time.Hour, 0)
	frames := traj.Frames()
	var buf bytes.Buffer
	if err := WriteCSV(&buf, frames); err != nil {
		t.Fatalf("err %s", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("err %s", err)
	}
	if len(records) != len(frames)+1 {
		t.Fatalf("got %d records", len(records))
	}
	if records[0][0] != "time" || len(records[0]) != 9 {
		t.Fatalf("invalid header %v", records[0])
	}
	if records[1][0] != "2035-01-01 00:00:00" || records[2][1] != "1.0000" {
		t.Fatalf("invalid records %v %v", records[1], records[2])
	}
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	traj := earthMarsTrajectory(t, 24*time.Hour, 0)
	conf := ExportConfig{OutputDir: dir, Filename: "mars", Cosmo: true, AsCSV: true}
	if err := Export(conf, *traj, kitlog.NewNopLogger()); err != nil {
		t.Fatalf("err %s", err)
	}
	for _, name := range []string{"frames-mars.csv", "prop-mars-spacecraft.xyzv", "prop-mars-earth.xyzv", "prop-mars-mars.xyzv", "catalog-mars.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("%s: %s", name, err)
		}
	}
	data, err := os.ReadFile(filepath.Join(dir, "catalog-mars.json"))
	if err != nil {
		t.Fatalf("err %s", err)
	}
	var c CgCatalog
	if err := json.Unmarshal(data, &c); err != nil {
		t.Fatalf("err %s", err)
	}
	if len(c.Items) != 3 {
		t.Fatalf("got %d catalog items", len(c.Items))
	}
	for _, item := range c.Items {
		if err := item.Trajectory.Validate(); err != nil {
			t.Fatalf("%s: %s", item.Name, err)
		}
		if _, err := os.Stat(filepath.Join(dir, item.Trajectory.Source)); err != nil {
			t.Fatalf("%s: %s", item.Name, err)
		}
		if item.StartTime != "2035-01-01 00:00:00 +0000 UTC" {
			t.Fatalf("%s: start time %s", item.Name, item.StartTime)
		}
	}
}

func TestExportUseless(t *testing.T) {
	traj := earthMarsTrajectory(t, 24*time.Hour, 0)
	conf := ExportConfig{OutputDir: filepath.Join(t.TempDir(), "unused")}
	if !conf.IsUseless() {
		t.Fatal("config should be useless")
	}
	if err := Export(conf, *traj, kitlog.NewNopLogger()); err != nil {
		t.Fatalf("err %s", err)
	}
	if _, err := os.Stat(conf.OutputDir); !os.IsNotExist(err) {
		t.Fatal("useless export created the output directory")
	}
}
