// Package metrics defines all custom Prometheus metrics for the identity API.
// It is the single source of truth for metric names, labels, and help strings.
//
// Metrics are registered with the default registry via promauto at package
// init; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "identity"

// SignupsTotal counts created accounts.
// Label:
//   - role: "user" (public signup) or "admin" (admin-gated creation)
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of accounts created, by role.",
	},
	[]string{"role"},
)

// SigninsTotal counts signin attempts.
// Label:
//   - result: "ok" or "rejected" (one bucket for all credential failures)
var SigninsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signins_total",
		Help:      "Total number of signin attempts, by result.",
	},
	[]string{"result"},
)

// AuthzDenialsTotal counts rejected requests after authentication succeeded.
// Label:
//   - reason: "role" (route role requirement) or "ownership" (owner-or-admin rule)
var AuthzDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_denials_total",
		Help:      "Total number of authorization denials, by reason.",
	},
	[]string{"reason"},
)

// AuthnFailuresTotal counts requests rejected before an identity was
// established (missing header, bad token, vanished user).
var AuthnFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authn_failures_total",
		Help:      "Total number of requests rejected during authentication.",
	},
)

// CacheLookupsTotal counts read-side user cache checks.
// Label:
//   - result: "hit" or "miss"
var CacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total number of user cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)
