// Package metrics defines the custom Prometheus metrics for the auth
// backend. It is the single source of truth for metric names, labels, and
// help strings; the metrics register with the default registry at import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "auth"

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "success", "duplicate", or "invalid"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// SessionsEstablishedTotal counts sessions created on successful login.
var SessionsEstablishedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_established_total",
		Help:      "Total number of sessions established.",
	},
)

// SessionsTerminatedTotal counts sessions destroyed by explicit logout.
var SessionsTerminatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_terminated_total",
		Help:      "Total number of sessions terminated by logout.",
	},
)
