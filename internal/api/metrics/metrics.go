// Package metrics defines and registers all custom Prometheus metrics for
// the coaching admin API. It is the single source of truth for metric names,
// labels, and help strings. Metrics self-register with the default registry
// via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "coaching"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts successful logins by role.
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of successful logins, by role.",
	},
	[]string{"role"},
)

// SessionsExpiredTotal counts sessions removed by the background expiry check.
var SessionsExpiredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_expired_total",
		Help:      "Total number of sessions expired by the background sweep.",
	},
)

// ActiveSessions tracks the current in-memory session count.
var ActiveSessions = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "Current number of live sessions held in memory.",
	},
)

// ── Record metrics ────────────────────────────────────────────────────────────

// ChallansMarkedTotal counts challan state flips.
// Label:
//   - action: "given" or "received"
var ChallansMarkedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "challans_marked_total",
		Help:      "Total number of challans marked given or received.",
	},
	[]string{"action"},
)

// StudentsRegisteredTotal counts new student registrations.
var StudentsRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "students_registered_total",
		Help:      "Total number of students registered.",
	},
)

// ── Document metrics ──────────────────────────────────────────────────────────

// DocumentsRenderedTotal counts PDF renders.
// Label:
//   - kind: "receipt" or "hall_ticket"
var DocumentsRenderedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "documents_rendered_total",
		Help:      "Total number of PDF documents rendered, by kind.",
	},
	[]string{"kind"},
)
