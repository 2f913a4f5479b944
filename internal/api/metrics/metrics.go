// Package metrics defines and registers the custom Prometheus metrics of the
// property request service. It is the single source of truth for metric
// names, labels and help strings.
//
// Metrics are registered with the default registry through promauto when the
// package is imported.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "property"

// ── Auth metrics ─────────────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "created", "exists", "invalid" or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "not_found", "invalid_password" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenRejectionsTotal counts calls to protected routes that failed
// authentication.
// Label:
//   - reason: "missing" or "invalid"
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of rejected session tokens, by reason.",
	},
	[]string{"reason"},
)

// ── Request metrics ──────────────────────────────────────────────────────────

// RequestsCreatedTotal counts newly created property requests.
// Label:
//   - type: the property type sent by the client (e.g. "apartment")
var RequestsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_created_total",
		Help:      "Total number of property requests created, by property type.",
	},
	[]string{"type"},
)

// IdempotentReplaysTotal counts create calls answered from an earlier claim of
// the same Idempotency-Key.
var IdempotentReplaysTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "idempotent_replays_total",
		Help:      "Total number of create calls short-circuited by an Idempotency-Key replay.",
	},
)
