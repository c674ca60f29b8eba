// Package metrics defines and registers the custom Prometheus metrics of the
// clan dashboard. Metrics are registered on the default registry at package
// init through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "clan_dashboard"

// ── Roster store ──────────────────────────────────────────────────────────────

// RosterWritesTotal counts roster saves and deletes on the server.
// Labels:
//   - backend: "file", "mongo" or "sqlite"
//   - result: "ok" or "error"
var RosterWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "roster_writes_total",
		Help:      "Total number of roster writes, by backend and result.",
	},
	[]string{"backend", "result"},
)

// RosterConflicts is the number of players found on more than one roster at
// the last full listing.
var RosterConflicts = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "roster_conflicts",
		Help:      "Players booked on more than one team at the last listing.",
	},
)

// RosterFallbackTotal counts roster client calls served by the local fallback.
// Label:
//   - op: "get", "get_all" or "set"
var RosterFallbackTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "roster_fallback_total",
		Help:      "Roster client calls that degraded to the local cache.",
	},
	[]string{"op"},
)

// ── Stats provider ────────────────────────────────────────────────────────────

// StatsRequestsTotal counts calls to the stats provider.
// Labels:
//   - endpoint: provider path (e.g. "clans/info")
//   - result: "ok", "api_error" or "transport_error"
var StatsRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stats_requests_total",
		Help:      "Total number of stats provider requests, by endpoint and result.",
	},
	[]string{"endpoint", "result"},
)

// StatsRequestDuration measures stats provider round trips.
var StatsRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "stats_request_duration_seconds",
		Help:      "Duration of stats provider requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint"},
)

// StatsCacheTotal counts stats cache lookups.
// Label:
//   - result: "hit", "miss" or "error"
var StatsCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stats_cache_total",
		Help:      "Stats cache lookups, by result.",
	},
	[]string{"result"},
)
