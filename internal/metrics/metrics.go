package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "laundry_orders_created_total",
		Help: "Total number of orders successfully created.",
	})

	OrdersCancelledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "laundry_orders_cancelled_total",
		Help: "Total number of orders successfully cancelled.",
	})

	StatusTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "laundry_order_status_transitions_total",
		Help: "Total number of scheduler-driven order status transitions.",
	},
		[]string{"status"},
	)

	NotificationsSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "laundry_notifications_sent_total",
		Help: "Total number of order update notifications emitted.",
	})

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "laundry_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)

	ActiveOrders = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "laundry_active_orders",
		Help: "Current number of orders in a non-terminal status.",
	})
)
