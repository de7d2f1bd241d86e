package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	kitlog "github.com/go-kit/kit/log"

	"github.com/gateway-mars/hohmann"
	"github.com/gateway-mars/hohmann/animate"
)

var (
	scenario string
	export   string
	svgFile  string
	serve    string
	debug    bool
)

func init() {
	flag.StringVar(&scenario, "scenario", "", "scenario TOML file (defaults to the Gateway to Mars reference scenario)")
	flag.StringVar(&export, "export", "", "export the trajectory as CSV and xyzv files with this name")
	flag.StringVar(&svgFile, "svg", "", "write the trajectory plot to this SVG file")
	flag.StringVar(&serve, "serve", "", "stream the animation over websocket on this address (e.g. :8080)")
	flag.BoolVar(&debug, "debug", false, "log the scenario")
}

func main() {
	flag.Parse()
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))
	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC)
	if err := run(logger, os.Stdout); err != nil {
		logger.Log("level", "critical", "err", err)
		os.Exit(1)
	}
}

func run(logger kitlog.Logger, stdout io.Writer) error {
	s, err := hohmann.LoadScenario(scenario)
	if err != nil {
		return err
	}
	if export != "" {
		s.Export.Filename = export
		s.Export.AsCSV = true
		s.Export.Cosmo = true
	}
	if svgFile != "" {
		s.SVG = svgFile
	}
	if serve != "" {
		s.ServerAddr = serve
	}
	if debug {
		logger.Log("level", "debug", "subsys", "conf", "constants", fmt.Sprintf("%+v", s.Constants))
		logger.Log("level", "debug", "subsys", "conf", "thrusters", s.Cluster, "Δv(m/s)", s.Δv, "mass(kg)", s.InitialMass)
		logger.Log("level", "debug", "subsys", "conf", "departure", s.Departure.Name, "r1", s.R1, "arrival", s.Arrival.Name, "r2", s.R2, "epoch", s.Epoch)
	}

	calc, err := hohmann.NewCalculator(s.Constants)
	if err != nil {
		return err
	}
	report, err := NewReport(calc, s)
	if err != nil {
		return err
	}
	if err := report.Write(stdout); err != nil {
		return err
	}

	if s.Export.IsUseless() && s.SVG == "" && s.ServerAddr == "" {
		return nil
	}
	traj, err := s.Trajectory(calc)
	if err != nil {
		return err
	}
	logger.Log("level", "info", "subsys", "astro", "transfer", report.Transfer, "frames", traj.Len(), "phase(deg)", hohmann.Rad2deg(traj.Phase))
	if err := hohmann.Export(s.Export, *traj, logger); err != nil {
		return err
	}
	if s.SVG != "" {
		if err := os.WriteFile(s.SVG, []byte(traj.GenerateSVG()), 0644); err != nil {
			return err
		}
		logger.Log("level", "info", "subsys", "export", "file", s.SVG)
	}
	if s.ServerAddr != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return animate.NewServer(traj, s.FPS, logger).ListenAndServe(ctx, s.ServerAddr)
	}
	return nil
}
