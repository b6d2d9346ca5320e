package telemetry

import (
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const (
	meterName = "github.com/wolfeidau/userhub"
)

// Metrics holds all the OpenTelemetry metric instruments
type Metrics struct {
	// Auth metrics
	LoginsTotal        metric.Int64Counter
	LoginFailuresTotal metric.Int64Counter
	RegistrationsTotal metric.Int64Counter

	// HTTP metrics
	RequestsTotal   metric.Int64Counter
	RequestDuration metric.Float64Histogram
}

var (
	once    sync.Once
	metrics *Metrics
)

// GetMetrics returns the singleton Metrics instance, initializing it if necessary
func GetMetrics() *Metrics {
	once.Do(func() {
		metrics = initMetrics()
	})
	return metrics
}

// initMetrics creates and registers all metric instruments
func initMetrics() *Metrics {
	meter := otel.GetMeterProvider().Meter(meterName)

	m := &Metrics{}

	m.LoginsTotal, _ = meter.Int64Counter(
		"userhub.logins.total",
		metric.WithDescription("Total number of successful logins"),
		metric.WithUnit("{login}"),
	)

	m.LoginFailuresTotal, _ = meter.Int64Counter(
		"userhub.logins.failures.total",
		metric.WithDescription("Total number of rejected login attempts"),
		metric.WithUnit("{login}"),
	)

	m.RegistrationsTotal, _ = meter.Int64Counter(
		"userhub.registrations.total",
		metric.WithDescription("Total number of accounts created"),
		metric.WithUnit("{account}"),
	)

	m.RequestsTotal, _ = meter.Int64Counter(
		"userhub.http.requests.total",
		metric.WithDescription("Total number of HTTP requests served"),
		metric.WithUnit("{request}"),
	)

	m.RequestDuration, _ = meter.Float64Histogram(
		"userhub.http.request.duration",
		metric.WithDescription("Duration of HTTP requests"),
		metric.WithUnit("ms"),
	)

	return m
}
