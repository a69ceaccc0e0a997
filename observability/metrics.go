package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "chat_session"

// Collector exposes a SessionMonitor through a private Prometheus registry.
type Collector struct {
	registry *prometheus.Registry
}

func NewCollector(monitor *SessionMonitor) *Collector {
	registry := prometheus.NewRegistry()
	counter := func(subsystem, name, help string, value func() uint64) prometheus.Collector {
		return prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		}, func() float64 { return float64(value()) })
	}

	registry.MustRegister(
		counter("transport", "frames_received_total", "Inbound frames read from the socket.", monitor.framesIn.Load),
		counter("transport", "frames_sent_total", "Outbound frames written to the socket.", monitor.framesOut.Load),
		counter("transport", "sends_dropped_total", "Sends dropped because the socket was not open.", monitor.droppedSends.Load),
		counter("transport", "frames_malformed_total", "Inbound frames that could not be decoded.", monitor.malformedFrames.Load),
		counter("transport", "reconnect_attempts_total", "Automatic reconnect attempts scheduled.", monitor.reconnectAttempts.Load),
		counter("auth", "refresh_success_total", "Successful token refreshes.", monitor.refreshSuccess.Load),
		counter("auth", "refresh_failure_total", "Failed token refreshes.", monitor.refreshFailure.Load),
		counter("auth", "session_cleared_total", "Times the stored session was wiped.", monitor.sessionCleared.Load),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "transport",
			Name:      "connected",
			Help:      "1 while the socket is open.",
		}, func() float64 {
			if monitor.connected.Load() {
				return 1
			}
			return 0
		}),
	)
	return &Collector{registry: registry}
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
