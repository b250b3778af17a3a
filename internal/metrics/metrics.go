// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package metrics exposes the Prometheus collectors for course submissions
// and outbound course API calls.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Config configures collector registration.
type Config struct {
	Namespace string
	Buckets   []float64
	Registry  prometheus.Registerer
}

// Option configures the metrics collectors.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithBuckets sets the histogram buckets for API call durations.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "tutorhub",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the application collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	submissions     *prometheus.CounterVec
	validationFails *prometheus.CounterVec
	apiDuration     *prometheus.HistogramVec
}

// New registers the collectors with the configured registry.
func New(opts ...Option) *Metrics {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	factory := promauto.With(cfg.Registry)

	return &Metrics{
		submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "course_submissions_total",
			Help:      "Create-course submissions by status",
		}, []string{"status"}),

		validationFails: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "course_validation_errors_total",
			Help:      "Draft validation failures by form field",
		}, []string{"field"}),

		apiDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "course_api_duration_seconds",
			Help:      "Course API call duration in seconds",
			Buckets:   cfg.Buckets,
		}, []string{"operation", "outcome"}),
	}
}

// Submission counts one submission attempt with the given status.
func (m *Metrics) Submission(status string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(status).Inc()
}

// ValidationFailed counts one failing field of a rejected draft.
func (m *Metrics) ValidationFailed(field string) {
	if m == nil {
		return
	}
	m.validationFails.WithLabelValues(field).Inc()
}

// ObserveAPI records the duration of a course API call.
func (m *Metrics) ObserveAPI(operation string, d time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.apiDuration.WithLabelValues(operation, outcome).Observe(d.Seconds())
}
