package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Result labels for CommandsTotal.
const (
	ResultOK       = "ok"
	ResultInvalid  = "invalid"
	ResultUpstream = "upstream"
	ResultInternal = "internal"
)

// Metrics holds the collectors of the execution service.
type Metrics struct {
	CommandsTotal    *prometheus.CounterVec
	ProviderDuration *prometheus.HistogramVec
	HistoryAppendErr prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CommandsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webterm_commands_total",
				Help: "Total number of remote commands executed",
			},
			[]string{"command", "result"},
		),
		ProviderDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webterm_provider_duration_seconds",
				Help:    "Duration of external provider calls",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider", "cached"},
		),
		HistoryAppendErr: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "webterm_history_append_errors_total",
				Help: "Server history appends that failed and were dropped",
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.CommandsTotal, m.ProviderDuration, m.HistoryAppendErr)
	}
	return m
}

// ObserveCommand counts one executed command. Nil receivers are no-ops.
func (m *Metrics) ObserveCommand(command, result string) {
	if m == nil {
		return
	}
	m.CommandsTotal.WithLabelValues(command, result).Inc()
}

// ObserveProvider records the duration of a provider lookup.
func (m *Metrics) ObserveProvider(provider string, cached bool, d time.Duration) {
	if m == nil {
		return
	}
	c := "false"
	if cached {
		c = "true"
	}
	m.ProviderDuration.WithLabelValues(provider, c).Observe(d.Seconds())
}

// ObserveAppendError counts a dropped history append.
func (m *Metrics) ObserveAppendError() {
	if m == nil {
		return
	}
	m.HistoryAppendErr.Inc()
}
