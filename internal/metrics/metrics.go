package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DiscountsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "loyalty_discounts_created_total",
		Help: "Total number of pending discounts created",
	})

	DiscountsAppliedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "loyalty_discounts_applied_total",
		Help: "Total number of discounts confirmed as applied",
	})

	DiscountsForcedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "loyalty_discounts_forced_total",
		Help: "Total number of discounts force-confirmed without 1C acknowledgment",
	})

	DiscountsFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "loyalty_discounts_failed_total",
		Help: "Total number of discounts resolved as failed",
	}, []string{"reason"})

	DiscountsExpiredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "loyalty_discounts_expired_total",
		Help: "Total number of discounts expired by the reaper",
	})

	ConfirmLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "loyalty_confirm_latency_seconds",
		Help:    "Latency of discount confirmation processing",
		Buckets: prometheus.DefBuckets,
	})

	AgentPushFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "loyalty_agent_push_failed_total",
		Help: "Total number of failed pushes to store 1C agents",
	})
)
