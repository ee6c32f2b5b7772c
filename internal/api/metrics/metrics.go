// Package metrics defines the domain Prometheus metrics of the recipe API.
// All collectors register with the default registry on package init and are
// exposed at /metrics next to the per-router HTTP metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every metric the service exports.
const Namespace = "recipe_api"

// ── Accounts ─────────────────────────────────────────────────────────────────

// UsersRegisteredTotal counts accounts created through the API.
// Label:
//   - source: "self" for public registration, "admin" for the admin endpoint
var UsersRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "users_registered_total",
		Help:      "Total number of user accounts created.",
	},
	[]string{"source"},
)

// AuthAttemptsTotal counts token requests.
// Label:
//   - result: "success", "invalid_credentials" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of token requests, by result.",
	},
	[]string{"result"},
)

// ── Recipes ──────────────────────────────────────────────────────────────────

// RecipeOperationsTotal counts successful recipe writes.
// Label:
//   - operation: "create", "update" or "delete"
var RecipeOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "recipe_operations_total",
		Help:      "Total number of recipe write operations, by operation.",
	},
	[]string{"operation"},
)
