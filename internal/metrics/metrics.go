// Package metrics exposes prometheus counters for the auth flows.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records auth events and HTTP statuses.
type Collector struct {
	codesIssued      *prometheus.CounterVec
	codesRejected    *prometheus.CounterVec
	deliveryFailures *prometheus.CounterVec
	logins           *prometheus.CounterVec
	httpStatus       *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics in reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		codesIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_codes_issued_total",
			Help: "One-time codes stored, by kind.",
		}, []string{"kind"}),
		codesRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_codes_rejected_total",
			Help: "Submitted codes that were wrong or expired, by kind.",
		}, []string{"kind"}),
		deliveryFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_code_delivery_failures_total",
			Help: "Codes the notifier failed to deliver, by kind.",
		}, []string{"kind"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_logins_total",
			Help: "Login attempts, by outcome.",
		}, []string{"outcome"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_http_responses_total",
			Help: "HTTP responses, by status code.",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.codesIssued,
		c.codesRejected,
		c.deliveryFailures,
		c.logins,
		c.httpStatus,
	)

	return c
}

func (c *Collector) RecordCodeIssued(kind string) {
	c.codesIssued.WithLabelValues(kind).Inc()
}

func (c *Collector) RecordCodeRejected(kind string) {
	c.codesRejected.WithLabelValues(kind).Inc()
}

func (c *Collector) RecordDeliveryFailure(kind string) {
	c.deliveryFailures.WithLabelValues(kind).Inc()
}

func (c *Collector) RecordLogin(outcome string) {
	c.logins.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
