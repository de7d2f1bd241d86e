package hohmann

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	kitlog "github.com/go-kit/kit/log"
	"github.com/soniakeys/meeus/v3/julian"
)

// CgCatalog definition.
type CgCatalog struct {
	Version string     `json:"version"`
	Name    string     `json:"name"`
	Items   []*CgItems `json:"items"`
	Require []string   `json:"require,omitempty"`
}

func (c *CgCatalog) String() string {
	return c.Name + "(" + c.Version + ")"
}

// CgItems definition.
type CgItems struct {
	Class           string            `json:"class"`
	Name            string            `json:"name"`
	StartTime       string            `json:"startTime"`
	EndTime         string            `json:"endTime"`
	Center          string            `json:"center"`
	TrajectoryFrame string            `json:"trajectoryFrame"`
	Trajectory      *CgTrajectory     `json:"trajectory,omitempty"`
	Label           *CgLabel          `json:"label,omitempty"`
	TrajectoryPlot  *CgTrajectoryPlot `json:"trajectoryPlot,omitempty"`
}

// CgTrajectory definition.
type CgTrajectory struct {
	Type   string `json:"type,omitempty"`
	Source string `json:"source,omitempty"`
}

// Validate validates a CgTrajectory.
func (t *CgTrajectory) Validate() error {
	if t.Type != "InterpolatedStates" || !strings.HasSuffix(t.Source, "xyzv") {
		return errors.New("only InterpolatedStates are currently supported in Cosmographia trajectory types")
	}
	return nil
}

func (t *CgTrajectory) String() string {
	return t.Source + " as " + t.Type
}

// CgLabel definition.
type CgLabel struct {
	Color    []float64 `json:"color,omitempty"`
	FadeSize int       `json:"fadeSize,omitempty"`
	ShowText bool      `json:"showText,omitempty"`
}

// CgTrajectoryPlot definition.
type CgTrajectoryPlot struct {
	Color       []float64 `json:"color,omitempty"`
	LineWidth   int       `json:"lineWidth,omitempty"`
	Duration    string    `json:"duration,omitempty"`
	Lead        string    `json:"lead,omitempty"`
	Fade        int       `json:"fade,omitempty"`
	SampleCount int       `json:"sampleCount,omitempty"`
}

// CgInterpolatedState definition.
type CgInterpolatedState struct {
	JD       float64
	Position []float64 // km
	Velocity []float64 // km/s
}

// NewCgInterpolatedState converts a state in SI units at the provided time.
func NewCgInterpolatedState(dt time.Time, st State) CgInterpolatedState {
	return CgInterpolatedState{
		JD:       julian.TimeToJD(dt),
		Position: []float64{st.R.X / 1e3, st.R.Y / 1e3, 0},
		Velocity: []float64{st.V.X / 1e3, st.V.Y / 1e3, 0},
	}
}

// FromText initializes from text.
// The `record` parameter must be an array of seven items.
func (i *CgInterpolatedState) FromText(record []string) error {
	if len(record) != 7 {
		return fmt.Errorf("expected 7 fields, got %d", len(record))
	}
	vals := make([]float64, 7)
	for j, field := range record {
		val, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return err
		}
		vals[j] = val
	}
	i.JD = vals[0]
	i.Position = vals[1:4]
	i.Velocity = vals[4:7]
	return nil
}

// ToText converts to text for written output.
func (i *CgInterpolatedState) ToText() string {
	return fmt.Sprintf("%f %f %f %f %f %f %f", i.JD, i.Position[0], i.Position[1], i.Position[2], i.Velocity[0], i.Velocity[1], i.Velocity[2])
}

// ParseInterpolatedStates reads the states of an xyzv file.
func ParseInterpolatedStates(r io.Reader) ([]*CgInterpolatedState, error) {
	var states = []*CgInterpolatedState{}
	cr := csv.NewReader(r)
	cr.Comma = ' '
	cr.Comment = '#'
	for {
		record, err := cr.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		state := CgInterpolatedState{}
		if err := state.FromText(record); err != nil {
			return nil, err
		}
		states = append(states, &state)
	}
	return states, nil
}

// ExportConfig configures the exporting of a trajectory.
type ExportConfig struct {
	OutputDir string
	Filename  string
	Cosmo     bool
	AsCSV     bool
	Timestamp bool
}

// IsUseless returns whether this config doesn't actually do anything.
func (c ExportConfig) IsUseless() bool {
	return !c.Cosmo && !c.AsCSV
}

// stamped returns a copy of this config with the creation time appended to the file name.
func (c ExportConfig) stamped() ExportConfig {
	if c.Timestamp {
		t := time.Now()
		c.Filename = fmt.Sprintf("%s-%d-%02d-%02dT%02d.%02d.%02d", c.Filename, t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second())
		c.Timestamp = false
	}
	return c
}

func (c ExportConfig) path(prefix, suffix, ext string) string {
	name := c.Filename
	if suffix != "" {
		name += "-" + suffix
	}
	return filepath.Join(c.OutputDir, fmt.Sprintf("%s-%s.%s", prefix, name, ext))
}

// WriteInterpolatedStates writes the xyzv records of one body.
func WriteInterpolatedStates(w io.Writer, frames []Frame, body func(Frame) State) error {
	if len(frames) == 0 {
		return errors.New("no frames to export")
	}
	hdr := fmt.Sprintf(`# Creation date (UTC): %s
# Records are <jd> <x> <y> <z> <vel x> <vel y> <vel z>
#   Time is a TDB Julian date
#   Position in km
#   Velocity in km/sec
#   Simulation time start (UTC): %s`, time.Now().UTC(), frames[0].DT.UTC())
	if _, err := io.WriteString(w, hdr); err != nil {
		return err
	}
	for _, f := range frames {
		asTxt := NewCgInterpolatedState(f.DT, body(f))
		if _, err := io.WriteString(w, "\n"+asTxt.ToText()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\n# Simulation time end (UTC): %s\n", frames[len(frames)-1].DT.UTC())
	return err
}

// WriteCSV writes one line per frame with the elapsed time and the position of every body.
func WriteCSV(w io.Writer, frames []Frame) error {
	cw := csv.NewWriter(w)
	hdr := []string{"time", "days", "departureX", "departureY", "arrivalX", "arrivalY", "spacecraftX", "spacecraftY", "spacecraftR"}
	if err := cw.Write(hdr); err != nil {
		return err
	}
	for _, f := range frames {
		rec := []string{
			f.DT.UTC().Format("2006-01-02 15:04:05"),
			strconv.FormatFloat(f.Days(), 'f', 4, 64),
			formatMeters(f.Departure.R.X), formatMeters(f.Departure.R.Y),
			formatMeters(f.Arrival.R.X), formatMeters(f.Arrival.R.Y),
			formatMeters(f.Spacecraft.R.X), formatMeters(f.Spacecraft.R.Y),
			formatMeters(f.Spacecraft.R.Norm()),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatMeters(v float64) string {
	return strconv.FormatFloat(v, 'e', 6, 64)
}

// Catalog returns the Cosmographia catalog of the trajectory exported with the provided config.
// The config must not be timestamped.
func Catalog(conf ExportConfig, traj Trajectory) CgCatalog {
	final := traj.Final()
	longerEnd := final.DT.Add(24 * time.Hour)
	duration := fmt.Sprintf("%d d", int(longerEnd.Sub(traj.Epoch).Hours()/24+1))
	items := []*CgItems{}
	for _, item := range []struct {
		name, class string
		color       []float64
	}{
		{"spacecraft", "spacecraft", []float64{0.6, 1, 1}},
		{traj.Departure.Name, "planet", []float64{0.2, 0.4, 1}},
		{traj.Arrival.Name, "planet", []float64{1, 0.3, 0.2}},
	} {
		cgTraj := CgTrajectory{Type: "InterpolatedStates", Source: filepath.Base(conf.path("prop", strings.ToLower(item.name), "xyzv"))}
		label := CgLabel{Color: item.color, FadeSize: 1000000, ShowText: true}
		plot := CgTrajectoryPlot{Color: item.color, LineWidth: 1, Duration: duration, Lead: "0 d", Fade: 0, SampleCount: 10}
		items = append(items, &CgItems{Class: item.class, Name: conf.Filename + "-" + item.name, StartTime: traj.Epoch.UTC().String(), EndTime: longerEnd.UTC().String(), Center: "Sun", TrajectoryFrame: "EclipticJ2000", Trajectory: &cgTraj, Label: &label, TrajectoryPlot: &plot})
	}
	return CgCatalog{Version: "1.0", Name: conf.Filename, Items: items}
}

// Export writes the trajectory to the files requested by the config.
func Export(conf ExportConfig, traj Trajectory, logger kitlog.Logger) error {
	if conf.IsUseless() {
		return nil
	}
	conf = conf.stamped()
	if err := os.MkdirAll(conf.OutputDir, 0755); err != nil {
		return err
	}
	frames := traj.Frames()
	if conf.AsCSV {
		fname := conf.path("frames", "", "csv")
		if err := writeFile(fname, func(w io.Writer) error { return WriteCSV(w, frames) }); err != nil {
			return err
		}
		logger.Log("level", "info", "subsys", "export", "file", fname, "frames", len(frames))
	}
	if conf.Cosmo {
		bodies := map[string]func(Frame) State{
			"spacecraft":                         func(f Frame) State { return f.Spacecraft },
			strings.ToLower(traj.Departure.Name): func(f Frame) State { return f.Departure },
			strings.ToLower(traj.Arrival.Name):   func(f Frame) State { return f.Arrival },
		}
		for name, body := range bodies {
			fname := conf.path("prop", name, "xyzv")
			if err := writeFile(fname, func(w io.Writer) error { return WriteInterpolatedStates(w, frames, body) }); err != nil {
				return err
			}
			logger.Log("level", "info", "subsys", "export", "file", fname, "body", name)
		}
		c := Catalog(conf, traj)
		fname := filepath.Join(conf.OutputDir, fmt.Sprintf("catalog-%s.json", conf.Filename))
		if err := writeFile(fname, func(w io.Writer) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(c)
		}); err != nil {
			return err
		}
		logger.Log("level", "info", "subsys", "export", "file", fname, "catalog", c.String())
	}
	return nil
}

func writeFile(fname string, write func(io.Writer) error) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
