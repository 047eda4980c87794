// Package metrics declares the Prometheus collectors exported by the
// timekeeper server. Collectors register with the default registry on
// package initialization and are served by promhttp.Handler.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── HTTP ───────────────────────────────────────────────────────────────────

var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "timekeeper",
	Subsystem: "http",
	Name:      "requests_total",
	Help:      "Total HTTP requests by method, route pattern and status code.",
}, []string{"method", "route", "status"})

var HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "timekeeper",
	Subsystem: "http",
	Name:      "request_duration_seconds",
	Help:      "HTTP request latency in seconds.",
	Buckets:   prometheus.DefBuckets,
}, []string{"method", "route"})

// ─── Domain ─────────────────────────────────────────────────────────────────

var EntitiesCreated = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "timekeeper",
	Subsystem: "store",
	Name:      "entities_created_total",
	Help:      "Total entities created by kind.",
}, []string{"kind"})

var TimerRunning = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "timekeeper",
	Subsystem: "timer",
	Name:      "running",
	Help:      "Whether a timer is currently running (1) or not (0).",
})

var TimerStops = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "timekeeper",
	Subsystem: "timer",
	Name:      "stops_total",
	Help:      "Total timers stopped into time entries.",
})

var ExportArchives = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "timekeeper",
	Subsystem: "export",
	Name:      "archives_total",
	Help:      "Total export archive attempts by result.",
}, []string{"result"})

// Entity kinds used as EntitiesCreated labels.
const (
	KindClient    = "client"
	KindProject   = "project"
	KindTimeEntry = "time_entry"
	KindInvoice   = "invoice"
	KindTimer     = "timer"
)
