// Package metrics defines and registers all custom Prometheus metrics for the
// storefront. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Cart metrics ──────────────────────────────────────────────────────────────

// CartOperationsTotal counts cart mutations.
// Labels:
//   - op: "add", "remove" or "update"
//   - result: "ok", "not_found", "invalid" or "error"
var CartOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_operations_total",
		Help:      "Total number of cart operations, by operation and result.",
	},
	[]string{"op", "result"},
)

// ── Checkout metrics ──────────────────────────────────────────────────────────

// CheckoutAttemptsTotal counts checkout gate decisions.
// Label:
//   - outcome: "approved" or "unauthenticated"
var CheckoutAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkout_attempts_total",
		Help:      "Total number of checkout attempts, by outcome.",
	},
	[]string{"outcome"},
)

// ReceiptsTotal counts receipt persistence results from the dispatcher workers.
// Label:
//   - result: "stored", "duplicate", "error" or "dropped"
var ReceiptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkout_receipts_total",
		Help:      "Total number of checkout receipts handled by the dispatcher.",
	},
	[]string{"result"},
)

// ReceiptQueueDepth tracks the number of receipts waiting in each worker channel.
var ReceiptQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "checkout_receipt_queue_depth",
		Help:      "Current number of receipts pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthEventsTotal counts registration, login and logout outcomes.
// Labels:
//   - event: "register", "login" or "logout"
//   - result: "ok", "duplicate", "not_found", "invalid" or "error"
var AuthEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_events_total",
		Help:      "Total number of authentication events, by event and result.",
	},
	[]string{"event", "result"},
)
