// Package metrics exposes replication and request counters of the primary in
// Prometheus format.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	multicastDuration *prometheus.HistogramVec
	memberFailures    *prometheus.CounterVec
	members           prometheus.Gauge
	requests          *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		multicastDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "auction",
			Name:      "multicast_duration_seconds",
			Help:      "Time from submitting a mutation until every member acknowledged or the wait timed out.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		memberFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "auction",
			Name:      "multicast_member_failures_total",
			Help:      "Members that failed or timed out on a multicast.",
		}, []string{"op"}),
		members: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "auction",
			Name:      "replication_members",
			Help:      "Replicas currently in the group.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "auction",
			Name:      "requests_total",
			Help:      "Client requests by method and gRPC code.",
		}, []string{"method", "code"}),
	}

	m.registry.MustRegister(
		m.multicastDuration,
		m.memberFailures,
		m.members,
		m.requests,
		prometheus.NewGoCollector(),
	)
	return m
}

func (m *Metrics) ObserveMulticast(op string, d time.Duration, failed int) {
	m.multicastDuration.WithLabelValues(op).Observe(d.Seconds())
	if failed > 0 {
		m.memberFailures.WithLabelValues(op).Add(float64(failed))
	}
}

func (m *Metrics) SetMembers(n int) {
	m.members.Set(float64(n))
}

func (m *Metrics) ObserveRequest(method, code string) {
	m.requests.WithLabelValues(method, code).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve runs the /metrics endpoint on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
