package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OrderMetrics holds the order pipeline instruments. Register one instance
// per process; promauto panics on duplicate registration.
type OrderMetrics struct {
	CheckoutsTotal      *prometheus.CounterVec
	OrdersCreatedTotal  *prometheus.CounterVec
	OrdersCreatedAmount prometheus.Counter
	PaymentWebhooks     *prometheus.CounterVec
	WebhookDuration     prometheus.Histogram
	QuoteErrorsTotal    prometheus.Counter
}

func NewOrderMetrics() *OrderMetrics {
	return &OrderMetrics{
		CheckoutsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "checkouts_total",
			Help: "Checkout attempts by result.",
		}, []string{"result"}),
		OrdersCreatedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Orders created by payment method.",
		}, []string{"payment_method"}),
		OrdersCreatedAmount: promauto.NewCounter(prometheus.CounterOpts{
			Name: "orders_created_amount_total",
			Help: "Sum of grand totals of created orders.",
		}),
		PaymentWebhooks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "payment_webhooks_total",
			Help: "Payment webhook deliveries by outcome.",
		}, []string{"outcome"}),
		WebhookDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "webhook_processing_duration_seconds",
			Help:    "Wall time spent settling a payment webhook.",
			Buckets: prometheus.DefBuckets,
		}),
		QuoteErrorsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "shipping_quote_errors_total",
			Help: "Failed shipping rate lookups.",
		}),
	}
}

func (m *OrderMetrics) RecordCheckout(result string) {
	m.CheckoutsTotal.WithLabelValues(result).Inc()
}

func (m *OrderMetrics) RecordOrderCreated(paymentMethod string, grandTotal int) {
	m.OrdersCreatedTotal.WithLabelValues(paymentMethod).Inc()
	m.OrdersCreatedAmount.Add(float64(grandTotal))
}

func (m *OrderMetrics) RecordWebhook(outcome string, seconds float64) {
	m.PaymentWebhooks.WithLabelValues(outcome).Inc()
	m.WebhookDuration.Observe(seconds)
}

func (m *OrderMetrics) RecordQuoteError() {
	m.QuoteErrorsTotal.Inc()
}
