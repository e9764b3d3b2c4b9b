// Package metrics defines and registers the custom Prometheus metrics of the
// registration API. HTTP request metrics come from the echoprometheus
// middleware; this package only holds domain counters.
//
// All metrics are registered with the default registry at init time through
// promauto, so /metrics exposes them without further wiring.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const Namespace = "registry"

// Registration outcomes.
const (
	OutcomeCreated         = "created"
	OutcomeMissingField    = "missing_field"
	OutcomeDuplicate       = "duplicate"
	OutcomePasswordTooLong = "password_too_long"
	OutcomeError           = "error"
)

// Cache lookup results.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// RegistrationsTotal counts decoded registration attempts.
// Label:
//   - outcome: created, missing_field, duplicate, password_too_long or error.
//     Only error is a server-side failure; the others are client rejections.
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by outcome.",
	},
	[]string{"outcome"},
)

// UserViewCacheTotal counts user view cache lookups.
// Label:
//   - result: hit, miss or error
var UserViewCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "user_view_cache_total",
		Help:      "Total number of user view cache lookups, labelled by result.",
	},
	[]string{"result"},
)
