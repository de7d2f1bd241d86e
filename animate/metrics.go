package animate

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	clientsConnected = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "hohmann_anim_clients",
			Help: "Number of clients currently receiving the animation.",
		},
	)

	framesSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hohmann_anim_frames_sent_total",
			Help: "Total number of trajectory frames sent to clients.",
		},
	)

	streamsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hohmann_anim_streams_total",
			Help: "Total number of animation streams by outcome.",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(clientsConnected)
	prometheus.MustRegister(framesSent)
	prometheus.MustRegister(streamsTotal)
}

// MetricsHandler returns the Prometheus metrics HTTP handler.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
