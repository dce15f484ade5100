// Package metrics holds the Prometheus collectors of the translation engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "translations"

var (
	// Upserts counts translation rows written, by table and result
	// (created, updated, skipped, conflict).
	Upserts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upserts_total",
		Help:      "Translation upserts by table and result.",
	}, []string{"table", "result"})

	SlugCollisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "slug_collisions_total",
		Help:      "Slug candidates rejected because they were already taken.",
	}, []string{"table"})

	SlugRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "slug_retries_total",
		Help:      "Upserts retried after a slug conflict raised by storage.",
	}, []string{"table"})

	PayloadEntriesSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payload_entries_skipped_total",
		Help:      "Translation payload entries ignored, by reason.",
	}, []string{"reason"})

	LanguageCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "language_cache_lookups_total",
		Help:      "Language registry cache lookups by result (hit, miss).",
	}, []string{"result"})
)
