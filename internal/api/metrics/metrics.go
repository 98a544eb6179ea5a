// Package metrics defines all custom Prometheus metrics for the taskboard
// service. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry at import time
// via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskboard"

// ── Task lifecycle metrics ────────────────────────────────────────────────────

// TasksCreatedTotal counts newly created tasks.
// Label:
//   - area: the task's development area (e.g. "script", "mlo")
var TasksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created, by area.",
	},
	[]string{"area"},
)

// TaskTransitionsTotal counts committed status transitions.
// Label:
//   - status: the new status applied ("progress", "completed", "rejected")
var TaskTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "task_transitions_total",
		Help:      "Total number of committed task status transitions, by new status.",
	},
	[]string{"status"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsSentTotal counts successful notification deliveries.
// Labels:
//   - event:  the notification event kind ("created", "assigned", "status_changed")
//   - target: "channel" or "dm"
var NotificationsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_sent_total",
		Help:      "Total number of notification messages delivered.",
	},
	[]string{"event", "target"},
)

// NotificationsFailedTotal counts notification deliveries that failed. These
// are logged and dropped, never retried.
// Labels:
//   - event:  the notification event kind
//   - target: "channel" or "dm"
var NotificationsFailedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_failed_total",
		Help:      "Total number of notification delivery attempts that failed.",
	},
	[]string{"event", "target"},
)

// NotificationQueueDepth tracks the number of notifications waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// NotificationDeliveryDuration measures one notification's full fan-out
// (channel message plus optional direct message).
// Label:
//   - event: the notification event kind
var NotificationDeliveryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_delivery_duration_seconds",
		Help:      "Duration of notification fan-out from dequeue to last delivery attempt.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"event"},
)
