// Package metrics defines and registers all custom Prometheus metrics for
// the horarios API. It is the single source of truth for metric names,
// labels, and help strings. promauto registers everything with the default
// registry at package init; the /metrics route exposes it.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "horarios"

// LoginsTotal counts login attempts by outcome ("success" or "failure").
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by outcome.",
	},
	[]string{"outcome"},
)

// RegistrationsTotal counts successful account registrations by role.
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered, by role.",
	},
	[]string{"role"},
)

// TokensRevokedTotal counts tokens revoked through logout.
var TokensRevokedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_revoked_total",
		Help:      "Total number of tokens revoked via logout.",
	},
)

// EntriesMutatedTotal counts schedule entry writes.
// Labels:
//   - op: "create", "update", or "delete"
var EntriesMutatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entries_mutated_total",
		Help:      "Total number of schedule entry mutations, by operation.",
	},
	[]string{"op"},
)

// OverlapConflictsTotal counts create/update attempts rejected by the
// overlap check.
var OverlapConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "overlap_conflicts_total",
		Help:      "Total number of schedule mutations rejected as overlapping.",
	},
)
