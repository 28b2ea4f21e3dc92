package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	EventsPublished = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "events_published_total",
		Help: "Domain events fanned out by the broadcast hub.",
	})

	LiveSubscribers = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "live_subscribers",
		Help: "Currently connected live-update subscribers.",
	})

	AuditWriteFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "audit_write_failures_total",
		Help: "Audit records dropped because the store rejected them.",
	})
)

// Init registers collectors in the default registry. Call once per process.
func Init() {
	prometheus.MustRegister(HTTPRequestsTotal, EventsPublished, LiveSubscribers, AuditWriteFailures)
}

// Handler serves the Prometheus exposition endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
