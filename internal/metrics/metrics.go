// Package metrics defines the Prometheus collectors exported by the API.
// Collectors register with the default registry on package init through
// promauto and are served by promhttp at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hospital"

// HTTPRequestsTotal counts served requests.
// Labels:
//   - method: HTTP method
//   - route: matched route pattern (e.g. "/v1/patients/:id"), "unmatched" otherwise
//   - status: response status code
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests, by method, route and status.",
	},
	[]string{"method", "route", "status"},
)

// HTTPRequestDuration measures request latency per route.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests from first middleware to response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// AuthRejectionsTotal counts requests turned away by the auth gate.
// Label:
//   - reason: "missing", "malformed", "invalid" or "unknown_subject"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by the auth gate, by reason.",
	},
	[]string{"reason"},
)

// PolicyDenialsTotal counts authenticated requests refused by the role policy.
// Label:
//   - rule: "admin" or "self_or_admin"
var PolicyDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "policy_denials_total",
		Help:      "Total number of requests denied by the role policy, by rule.",
	},
	[]string{"rule"},
)

// RoleStripsTotal counts role changes dropped from non-admin user updates.
var RoleStripsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_strips_total",
		Help:      "Total number of role fields silently dropped from non-admin updates.",
	},
)

// Auth gate rejection reasons.
const (
	ReasonMissing        = "missing"
	ReasonMalformed      = "malformed"
	ReasonInvalid        = "invalid"
	ReasonUnknownSubject = "unknown_subject"
)

// Policy rules.
const (
	RuleAdmin       = "admin"
	RuleSelfOrAdmin = "self_or_admin"
)
