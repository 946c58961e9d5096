// Package metrics defines and registers all custom Prometheus metrics for
// the storefront API. It is the single source of truth for metric names,
// labels, and help strings. Registration happens at import time via
// promauto; the HTTP layer exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// OrdersCreatedTotal counts orders produced by checkout.
var OrdersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders created by checkout.",
	},
)

// OrderStatusTotal counts admin status transitions.
// Label:
//   - status: the status the order transitioned into ("done", "cancelled")
var OrderStatusTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_status_transitions_total",
		Help:      "Total number of order status transitions, by target status.",
	},
	[]string{"status"},
)

// CartMutationsTotal counts cart write operations.
// Label:
//   - op: "add", "set_quantity", "remove", "clear"
var CartMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_mutations_total",
		Help:      "Total number of cart mutations, by operation.",
	},
	[]string{"op"},
)

// ProductWritesTotal counts admin catalog writes.
// Label:
//   - op: "create", "update", "delete"
var ProductWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_writes_total",
		Help:      "Total number of admin catalog writes, by operation.",
	},
	[]string{"op"},
)

// CatalogCacheTotal counts catalog cache lookups.
// Label:
//   - result: "hit" or "miss"
var CatalogCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_cache_total",
		Help:      "Total number of catalog cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)
