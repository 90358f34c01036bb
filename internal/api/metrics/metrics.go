// Package metrics defines and registers the custom Prometheus metrics of the
// exam console. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default registry on package init through
// promauto; the HTTP layer exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "examconsole"

// ── Backend metrics ───────────────────────────────────────────────────────────

// BackendRequestsTotal counts calls made to the REST backend.
// Labels:
//   - method: HTTP method (GET, POST, PUT, DELETE)
//   - status: response status code, or "error" on transport failure
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of requests sent to the REST backend.",
	},
	[]string{"method", "status"},
)

// BackendRequestDuration measures backend round-trip time.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of REST backend calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Labels:
//   - result: "success", "fallback" (identity decoded from the token) or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// GuardRedirectsTotal counts silent redirects issued by route guards.
// Label:
//   - guard: "auth", "anonymous" or "role"
var GuardRedirectsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_redirects_total",
		Help:      "Total number of route guard redirects.",
	},
	[]string{"guard"},
)

// ── Mutation metrics ──────────────────────────────────────────────────────────

// MutationsTotal counts create/update/delete calls issued from pages.
// Labels:
//   - resource: "rooms", "streams", "subjects", "users", "exams"
//   - action: "create", "update", "delete"
//   - result: "ok" or "error"
var MutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mutations_total",
		Help:      "Total number of resource mutations, by resource, action and result.",
	},
	[]string{"resource", "action", "result"},
)

// AuditDropped counts audit entries discarded because the queue was full.
var AuditDropped = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_dropped_total",
		Help:      "Total number of audit entries dropped on a full queue.",
	},
)
