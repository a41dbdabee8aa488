package handler

import (
	"errors"

	"github.com/SergeyBogomolovv/shop-order-service/internal/entities"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	callbacksProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shop_order_service",
			Subsystem: "kafka_consumer",
			Name:      "callbacks_processed_total",
			Help:      "Total number of successfully processed payment callbacks",
		},
	)

	callbacksFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shop_order_service",
			Subsystem: "kafka_consumer",
			Name:      "callbacks_failed_total",
			Help:      "Total number of failed payment callback processing attempts",
		},
	)

	callbacksDLQ = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shop_order_service",
			Subsystem: "kafka_consumer",
			Name:      "callbacks_dlq_total",
			Help:      "Total number of payment callbacks written to DLQ",
		},
	)

	commitErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shop_order_service",
			Subsystem: "kafka_consumer",
			Name:      "commit_errors_total",
			Help:      "Total number of Kafka commit errors",
		},
	)

	callbackProcessingDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "shop_order_service",
			Subsystem: "kafka_consumer",
			Name:      "callback_processing_duration_seconds",
			Help:      "Histogram of payment callback processing durations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	callbacksInProgress = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "shop_order_service",
			Subsystem: "kafka_consumer",
			Name:      "callbacks_in_progress",
			Help:      "Number of payment callbacks currently being processed",
		},
	)
)

var (
	paymentIntentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shop_order_service",
			Subsystem: "payment",
			Name:      "intents_total",
			Help:      "Total number of payment intent requests by result",
		},
		[]string{"result"},
	)

	paymentVerificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shop_order_service",
			Subsystem: "payment",
			Name:      "verifications_total",
			Help:      "Total number of payment verifications by source and result",
		},
		[]string{"source", "result"},
	)

	gatewayRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "shop_order_service",
			Subsystem: "payment",
			Name:      "intent_request_duration_seconds",
			Help:      "Histogram of payment intent request durations including the gateway call",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

func RegisterMetrics() {
	prometheus.MustRegister(
		callbacksProcessed,
		callbacksFailed,
		callbacksDLQ,
		commitErrors,
		callbackProcessingDuration,
		callbacksInProgress,

		paymentIntentsTotal,
		paymentVerificationsTotal,
		gatewayRequestDuration,
	)
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, entities.ErrValidation):
		return "invalid"
	case errors.Is(err, entities.ErrAuthentication):
		return "unauthenticated"
	case errors.Is(err, entities.ErrForbidden):
		return "forbidden"
	case errors.Is(err, entities.ErrOrderNotFound):
		return "not_found"
	case errors.Is(err, entities.ErrAlreadyPaid):
		return "already_paid"
	case errors.Is(err, entities.ErrGateway):
		return "gateway_error"
	default:
		return "error"
	}
}
