// Package metrics defines and registers all custom Prometheus metrics for the
// employee API. It is the single source of truth for metric names, labels and
// help strings. Metrics register with the default registry on package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "employee_api"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthSignupsTotal counts signup attempts.
// Label:
//   - result: "created", "invalid", "duplicate" or "error"
var AuthSignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_signups_total",
		Help:      "Total number of signup attempts, by result.",
	},
	[]string{"result"},
)

// AuthLoginsTotal counts login attempts.
// Label:
//   - result: "success", "not_found", "invalid_credentials", "throttled" or "error"
var AuthLoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthRejectionsTotal counts protected requests turned away by the middleware.
// Label:
//   - reason: "missing_token", "invalid_token", "unknown_user" or "forbidden"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of protected requests rejected, by reason.",
	},
	[]string{"reason"},
)

// ── Employee metrics ──────────────────────────────────────────────────────────

// EmployeeMutationsTotal counts successful employee writes.
// Label:
//   - action: audit action name (e.g. "employee.created")
var EmployeeMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "employee_mutations_total",
		Help:      "Total number of employee records created, updated or deleted.",
	},
	[]string{"action"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditQueueDepth tracks the number of entries waiting in each worker channel.
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit entries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditDroppedTotal counts entries discarded because a worker channel was full.
var AuditDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_dropped_total",
		Help:      "Total number of audit entries dropped on a full queue.",
	},
)

// AuditRecordDuration measures how long persisting one audit entry takes.
// Label:
//   - result: "ok" or "error"
var AuditRecordDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "audit_record_duration_seconds",
		Help:      "Duration of audit entry persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)
