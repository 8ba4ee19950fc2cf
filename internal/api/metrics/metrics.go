// Package metrics defines and registers all custom Prometheus metrics for the
// IAM service. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry at init; the
// router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "iam"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", "throttled", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts self-service registration attempts.
// Label:
//   - result: "success", "duplicate_email", or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, labelled by result.",
	},
	[]string{"result"},
)

// TokenResolutionsTotal counts bearer-token resolutions by the auth middleware.
// Label:
//   - result: "authenticated" or "rejected"
var TokenResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_resolutions_total",
		Help:      "Total number of bearer token resolutions, labelled by result.",
	},
	[]string{"result"},
)

// RoleChecksTotal counts role-gate decisions.
// Label:
//   - result: "allowed" or "forbidden"
var RoleChecksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_checks_total",
		Help:      "Total number of role-gate decisions, labelled by result.",
	},
	[]string{"result"},
)
