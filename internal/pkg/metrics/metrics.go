// Package metrics defines and registers all custom Prometheus metrics for the
// storefront. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics register with the default Prometheus registry on package init via
// promauto; the HTTP layer exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Data layer metrics ────────────────────────────────────────────────────────

// EventsEmittedTotal counts events pushed onto the data layer.
// Label:
//   - event: the event discriminator (e.g. "cart", "view_item", "buy")
var EventsEmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_emitted_total",
		Help:      "Total number of analytics events pushed onto the data layer.",
	},
	[]string{"event"},
)

// EventsDroppedTotal counts events evicted because the data layer was full.
var EventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_dropped_total",
		Help:      "Total number of data layer events evicted before being drained.",
	},
)

// EventsForwardedTotal counts events delivered to an out-of-process collector.
// Label:
//   - collector: "log", "kafka" or "amqp"
var EventsForwardedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_forwarded_total",
		Help:      "Total number of events delivered to the configured collector.",
	},
	[]string{"collector"},
)

// EventsForwardErrorsTotal counts failed deliveries.
var EventsForwardErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_forward_errors_total",
		Help:      "Total number of events the collector rejected.",
	},
	[]string{"collector"},
)

// ForwardQueueDepth tracks events waiting in each forwarding worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ForwardQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "forward_queue_depth",
		Help:      "Current number of events pending in each forwarding worker channel.",
	},
	[]string{"worker_id"},
)

// ForwardDuration measures a single collector delivery.
var ForwardDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "forward_duration_seconds",
		Help:      "Duration of a single event delivery to the collector.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"collector"},
)

// ── Store metrics ─────────────────────────────────────────────────────────────

// StoreActionsTotal counts state-changing store actions.
// Label:
//   - action: "cart_add", "cart_remove", "cart_update", "cart_clear",
//     "favorite_add", "favorite_remove", "checkout"
var StoreActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_actions_total",
		Help:      "Total number of state-changing store actions, by action.",
	},
	[]string{"action"},
)

// CheckoutRevenueYen sums checkout totals.
var CheckoutRevenueYen = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkout_revenue_yen_total",
		Help:      "Sum of all checkout totals in yen.",
	},
)

// AuthAttemptsTotal counts register and login attempts.
// Labels:
//   - action: "register" or "login"
//   - result: "ok" or the failure reason
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of register and login attempts, by outcome.",
	},
	[]string{"action", "result"},
)
