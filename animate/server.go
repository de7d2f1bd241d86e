// Package animate streams the frames of a transfer trajectory to websocket clients
// at a fixed frame rate, so that a browser can replay the transfer.
//
// Message format (JSON text messages):
//
//	{"type":"metadata","departure":"Earth","arrival":"Mars","frames":6195,...}
//	{"type":"frame","index":0,"days":0,"departure":{...},"arrival":{...},"spacecraft":{...}}
//	{"type":"end","index":6194,"days":258.08}
package animate

import (
	"context"
	"errors"
	"net/http"
	"time"

	kitlog "github.com/go-kit/kit/log"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/gateway-mars/hohmann"
)

const writeWait = 10 * time.Second

// Metadata is the first message of every stream.
type Metadata struct {
	Type          string  `json:"type"`
	Departure     string  `json:"departure"`
	Arrival       string  `json:"arrival"`
	Frames        int     `json:"frames"`
	StepSeconds   float64 `json:"step"`
	SemiMajorAxis float64 `json:"a"`
	SemiMinorAxis float64 `json:"b"`
	R1            float64 `json:"r1"`
	R2            float64 `json:"r2"`
	Phase         float64 `json:"phase"`
}

// FrameMessage carries one frame of the trajectory.
type FrameMessage struct {
	Type       string        `json:"type"`
	Index      int           `json:"index"`
	Days       float64       `json:"days"`
	DT         time.Time     `json:"dt"`
	Departure  hohmann.State `json:"departure"`
	Arrival    hohmann.State `json:"arrival"`
	Spacecraft hohmann.State `json:"spacecraft"`
}

// Server serves a precomputed trajectory.
type Server struct {
	traj     *hohmann.Trajectory
	frames   []hohmann.Frame
	fps      float64
	logger   kitlog.Logger
	upgrader websocket.Upgrader
}

// NewServer returns a server replaying the trajectory at fps frames per second.
func NewServer(traj *hohmann.Trajectory, fps float64, logger kitlog.Logger) *Server {
	return &Server{
		traj:   traj,
		frames: traj.Frames(),
		fps:    fps,
		logger: kitlog.With(logger, "subsys", "anim"),
	}
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/frames", s.handleFrames)
	mux.HandleFunc("/plot.svg", s.handlePlot)
	mux.Handle("/metrics", MetricsHandler())
	return mux
}

// ListenAndServe serves until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	s.logger.Log("level", "info", "status", "listening", "addr", addr, "frames", len(s.frames), "fps", s.fps)
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Log("level", "notice", "status", "shutdown")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handlePlot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write([]byte(s.traj.GenerateSVG()))
}

func (s *Server) metadata() Metadata {
	return Metadata{
		Type:          "metadata",
		Departure:     s.traj.Departure.Name,
		Arrival:       s.traj.Arrival.Name,
		Frames:        len(s.frames),
		StepSeconds:   s.traj.Step.Seconds(),
		SemiMajorAxis: s.traj.Transfer.A,
		SemiMinorAxis: s.traj.Transfer.SemiMinorAxis(),
		R1:            s.traj.Transfer.R1,
		R2:            s.traj.Transfer.R2,
		Phase:         s.traj.Phase,
	}
}

func (s *Server) handleFrames(w http.ResponseWriter, r *http.Request) {
	c, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Log("level", "error", "status", "upgrade", "err", err)
		return
	}
	defer c.Close()
	clientsConnected.Inc()
	defer clientsConnected.Dec()

	logger := kitlog.With(s.logger, "remote", r.RemoteAddr)
	logger.Log("level", "info", "status", "connected")

	// Drain control frames so that close messages from the client are noticed.
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go func() {
		for {
			if _, _, err := c.NextReader(); err != nil {
				cancel()
				return
			}
		}
	}()

	if err := s.write(c, s.metadata()); err != nil {
		streamsTotal.WithLabelValues("aborted").Inc()
		logger.Log("level", "warning", "status", "aborted", "err", err)
		return
	}
	limiter := rate.NewLimiter(rate.Limit(s.fps), 1)
	for i, f := range s.frames {
		if err := limiter.Wait(ctx); err != nil {
			streamsTotal.WithLabelValues("aborted").Inc()
			logger.Log("level", "info", "status", "aborted", "frame", i)
			return
		}
		msg := FrameMessage{"frame", i, f.Days(), f.DT, f.Departure, f.Arrival, f.Spacecraft}
		if err := s.write(c, msg); err != nil {
			streamsTotal.WithLabelValues("aborted").Inc()
			logger.Log("level", "warning", "status", "aborted", "frame", i, "err", err)
			return
		}
		framesSent.Inc()
	}
	last := len(s.frames) - 1
	end := FrameMessage{Type: "end", Index: last}
	if last >= 0 {
		end.Days = s.frames[last].Days()
		end.DT = s.frames[last].DT
	}
	if err := s.write(c, end); err == nil {
		c.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "transfer complete"), time.Now().Add(writeWait))
	}
	streamsTotal.WithLabelValues("completed").Inc()
	logger.Log("level", "info", "status", "completed", "frames", len(s.frames))
}

func (s *Server) write(c *websocket.Conn, v interface{}) error {
	c.SetWriteDeadline(time.Now().Add(writeWait))
	return c.WriteJSON(v)
}
