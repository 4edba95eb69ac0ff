package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

const unmatched = "unmatched"

type metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	routes   prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mockerino_http_requests_total",
			Help: "Total HTTP requests answered by the mock app",
		}, []string{"route", "code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mockerino_http_request_duration_seconds",
			Help:    "HTTP request latency, including configured sleeps",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		routes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mockerino_routes",
			Help: "Number of compiled routes",
		}),
	}
	reg.MustRegister(m.requests, m.latency, m.routes)

	return m
}
