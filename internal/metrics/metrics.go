// Package metrics exposes Prometheus collectors for email delivery and the
// RPC endpoint, registered on a private registry.
package metrics

import (
	"context"
	"net/http"

	"github.com/MKhiriev/t4-api/internal/authconfig"
	"github.com/MKhiriev/t4-api/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "t4"

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Metrics owns the registry and every collector the server reports.
type Metrics struct {
	registry *prometheus.Registry

	EmailsSent   *prometheus.CounterVec
	RPCCalls     *prometheus.CounterVec
	RPCBatchSize prometheus.Histogram
}

// New creates the collectors and registers them, together with the Go and
// process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		EmailsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "emails_sent_total",
			Help:      "Transactional emails handed to the email delivery, by type and outcome.",
		}, []string{"type", "outcome"}),
		RPCCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "calls_total",
			Help:      "RPC procedure calls, by path, operation type and result code.",
		}, []string{"path", "type", "code"}),
		RPCBatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "batch_size",
			Help:      "Number of procedure calls carried by one batched HTTP request.",
			Buckets:   []float64{1, 2, 4, 8, 16, 32, 64},
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.EmailsSent,
		m.RPCCalls,
		m.RPCBatchSize,
	)

	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRPCCall counts one procedure call.
func (m *Metrics) ObserveRPCCall(path, opType, code string) {
	m.RPCCalls.WithLabelValues(path, opType, code).Inc()
}

// ObserveRPCBatch records the size of one batched request.
func (m *Metrics) ObserveRPCBatch(size int) {
	m.RPCBatchSize.Observe(float64(size))
}

// InstrumentEmailDelivery returns an override that counts every email sent
// through the delivery it wraps.
func (m *Metrics) InstrumentEmailDelivery() authconfig.EmailDeliveryOverride {
	return func(original authconfig.EmailDelivery) authconfig.EmailDelivery {
		return &countingEmailDelivery{EmailDelivery: original, sent: m.EmailsSent}
	}
}

type countingEmailDelivery struct {
	authconfig.EmailDelivery
	sent *prometheus.CounterVec
}

func (d *countingEmailDelivery) SendEmail(ctx context.Context, input models.EmailInput) error {
	err := d.EmailDelivery.SendEmail(ctx, input)

	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	d.sent.WithLabelValues(string(input.Type), outcome).Inc()

	return err
}
