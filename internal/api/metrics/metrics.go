// Package metrics defines and registers all custom Prometheus metrics for the
// LMS platform API. It is the single source of truth for metric names,
// labels, and help strings.
//
// All metrics are registered with the default Prometheus registry through
// promauto when the package is imported, and exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "lms"

// ── Signup workflow metrics ───────────────────────────────────────────────────

// SignupOutcomesTotal counts signup attempts by terminal workflow state.
// Labels:
//   - role: "student" or "instructor"
//   - state: terminal state (e.g. "completed", "blocked", "profile_failed")
//   - kind: classified failure kind, empty on success
var SignupOutcomesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signup_outcomes_total",
		Help:      "Total number of signup attempts, by role, terminal state and failure kind.",
	},
	[]string{"role", "state", "kind"},
)

// SignupDuration measures a signup attempt from request to terminal state.
// Label:
//   - state: terminal workflow state
var SignupDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "signup_duration_seconds",
		Help:      "Duration of a signup attempt from submission to terminal state.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"state"},
)

// ProfileStepsTotal counts profile cascade and verification steps.
// Labels:
//   - step: "upsert", "insert", "lookup" or "verify"
//   - result: "succeeded", "failed" or "missing"
var ProfileStepsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_steps_total",
		Help:      "Total number of profile reconciliation steps, by step and result.",
	},
	[]string{"step", "result"},
)

// GuardBlocksTotal counts submissions rejected by an active cooldown.
var GuardBlocksTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_blocks_total",
		Help:      "Total number of signup submissions blocked by an active cooldown.",
	},
)

// ── Instructor application metrics ────────────────────────────────────────────

// ApplicationsReviewedTotal counts admin decisions.
// Label:
//   - status: "approved" or "rejected"
var ApplicationsReviewedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_reviewed_total",
		Help:      "Total number of instructor applications reviewed, by decision.",
	},
	[]string{"status"},
)

// ── Orphan reconciliation metrics ─────────────────────────────────────────────

// OrphansRecordedTotal counts accounts left without a profile at signup.
var OrphansRecordedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orphans_recorded_total",
		Help:      "Total number of provider accounts recorded as orphaned during signup.",
	},
)

// OrphanReconcileTotal counts background reconciliation attempts.
// Label:
//   - result: "resolved" or "failed"
var OrphanReconcileTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orphan_reconcile_total",
		Help:      "Total number of orphan reconciliation attempts, by result.",
	},
	[]string{"result"},
)

// OrphanQueueDepth tracks the current number of orphans waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var OrphanQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "orphan_queue_depth",
		Help:      "Current number of orphans pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
