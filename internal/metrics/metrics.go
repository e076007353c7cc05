// Package metrics exposes Prometheus counters for map rendering.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	rendersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skyproj_renders_total",
			Help: "Total number of rendered views.",
		},
		[]string{"projection", "status"},
	)

	renderDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skyproj_render_duration_seconds",
			Help:    "Time spent resampling, coloring and encoding one view.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"projection"},
	)

	planePixelsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skyproj_plane_pixels_total",
			Help: "Projection plane pixels, by whether the projection covers them.",
		},
		[]string{"projection", "kind"},
	)

	mapsLoaded = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "skyproj_maps_loaded",
			Help: "Number of sky maps held in the map cache.",
		},
	)
)

func init() {
	prometheus.MustRegister(rendersTotal)
	prometheus.MustRegister(renderDurationSeconds)
	prometheus.MustRegister(planePixelsTotal)
	prometheus.MustRegister(mapsLoaded)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveRender records one finished view.
func ObserveRender(projection string, ok bool, d time.Duration) {
	status := "ok"
	if !ok {
		status = "error"
	}
	rendersTotal.WithLabelValues(projection, status).Inc()
	renderDurationSeconds.WithLabelValues(projection).Observe(d.Seconds())
}

// AddPlanePixels records how many plane pixels were rendered and masked.
func AddPlanePixels(projection string, rendered, masked int) {
	planePixelsTotal.WithLabelValues(projection, "valid").Add(float64(rendered))
	planePixelsTotal.WithLabelValues(projection, "masked").Add(float64(masked))
}

// SetMapsLoaded sets the map cache size.
func SetMapsLoaded(n int) {
	mapsLoaded.Set(float64(n))
}
