// Package metrics exports simulation statistics to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/phanxgames/fireworks"
)

// Collector records frame statistics and shell events. Register it with a
// Simulation through both SetObserver and SetEventSink. Labels are bounded:
// shell names come from the fixed catalog.
type Collector struct {
	registry *prometheus.Registry

	updateDuration prometheus.Histogram
	simTime        prometheus.Gauge
	speed          prometheus.Gauge
	stars          prometheus.Gauge
	sparks         prometheus.Gauge
	pending        prometheus.Gauge
	sounds         *prometheus.CounterVec
	shells         *prometheus.CounterVec
	burstStars     prometheus.Histogram
}

// New registers the fireworks metrics on a fresh registry.
func New() *Collector {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Collector{
		registry: reg,
		updateDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "fireworks_update_duration_seconds",
			Help:    "Time spent integrating one frame",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.002, 0.005, 0.01, 0.02},
		}),
		simTime: f.NewGauge(prometheus.GaugeOpts{
			Name: "fireworks_sim_time_seconds",
			Help: "Simulation clock",
		}),
		speed: f.NewGauge(prometheus.GaugeOpts{
			Name: "fireworks_speed",
			Help: "Simulation speed multiplier",
		}),
		stars: f.NewGauge(prometheus.GaugeOpts{
			Name: "fireworks_stars",
			Help: "Live stars",
		}),
		sparks: f.NewGauge(prometheus.GaugeOpts{
			Name: "fireworks_sparks",
			Help: "Live sparks",
		}),
		pending: f.NewGauge(prometheus.GaugeOpts{
			Name: "fireworks_pending_events",
			Help: "Scheduled events waiting on the simulation clock",
		}),
		sounds: f.NewCounterVec(prometheus.CounterOpts{
			Name: "fireworks_sounds_total",
			Help: "Sound requests by outcome",
		}, []string{"outcome"}), // "played", "dropped"
		shells: f.NewCounterVec(prometheus.CounterOpts{
			Name: "fireworks_shells_total",
			Help: "Shell launches and bursts",
		}, []string{"event", "shell"}),
		burstStars: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "fireworks_burst_stars",
			Help:    "Stars added per burst",
			Buckets: prometheus.ExponentialBuckets(8, 2, 8),
		}),
	}
}

// ObserveFrame implements fireworks.Observer.
func (c *Collector) ObserveFrame(st fireworks.FrameStats) {
	c.updateDuration.Observe(st.Duration.Seconds())
	c.simTime.Set(st.SimTime / 1000)
	c.speed.Set(st.Speed)
	c.stars.Set(float64(st.Stars))
	c.sparks.Set(float64(st.Sparks))
	c.pending.Set(float64(st.Pending))
	c.sounds.WithLabelValues("played").Add(float64(st.SoundsPlayed))
	c.sounds.WithLabelValues("dropped").Add(float64(st.SoundsDropped))
}

// EmitEvent implements fireworks.EventSink.
func (c *Collector) EmitEvent(e fireworks.ShellEvent) {
	c.shells.WithLabelValues(e.Type.String(), e.Shell).Inc()
	if e.Type == fireworks.EventBurst {
		c.burstStars.Observe(float64(e.Stars))
	}
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Registry returns the registry the metrics live on.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

var (
	_ fireworks.Observer  = (*Collector)(nil)
	_ fireworks.EventSink = (*Collector)(nil)
)
