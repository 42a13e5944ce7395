package metrics

import (
	"Coin-Loyalty-Backend/entities"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors used across the service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Purchases          *prometheus.CounterVec
	CoinsAwarded       prometheus.Counter
	Redemptions        *prometheus.CounterVec
	CoinsRedeemed      prometheus.Counter
	ResolveConflicts   prometheus.Counter
	HTTPRequests       *prometheus.CounterVec
	HTTPRequestLatency *prometheus.HistogramVec
}

var (
	regOnce         sync.Once
	metricsInstance *Metrics
)

// Registry builds and registers the metrics singleton with optional namespace.
func Registry(namespace string) *Metrics {
	regOnce.Do(func() {
		metricsInstance = &Metrics{
			Purchases: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "purchases_total",
				Help:      "Purchases recorded, by payment mode and whether the customer was auto-registered.",
			}, []string{"payment_mode", "auto_registered"}),
			CoinsAwarded: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "coins_awarded_total",
				Help:      "Coins credited by purchases.",
			}),
			Redemptions: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "redemptions_total",
				Help:      "Redemption state transitions by resulting status.",
			}, []string{"status"}),
			CoinsRedeemed: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "coins_redeemed_total",
				Help:      "Coins kept by approved redemptions.",
			}),
			ResolveConflicts: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "redemption_resolve_misses_total",
				Help:      "Resolve attempts for codes that were unknown or already resolved.",
			}),
			HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by method, route and status code.",
			}, []string{"method", "route", "status"}),
			HTTPRequestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Latency distribution for HTTP requests.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"method", "route"}),
		}

		prometheus.MustRegister(
			metricsInstance.Purchases,
			metricsInstance.CoinsAwarded,
			metricsInstance.Redemptions,
			metricsInstance.CoinsRedeemed,
			metricsInstance.ResolveConflicts,
			metricsInstance.HTTPRequests,
			metricsInstance.HTTPRequestLatency,
		)
	})
	return metricsInstance
}

func (m *Metrics) PurchaseRecorded(paymentMode string, autoRegistered bool, coins int64) {
	if m == nil {
		return
	}
	registered := "false"
	if autoRegistered {
		registered = "true"
	}
	m.Purchases.WithLabelValues(paymentMode, registered).Inc()
	m.CoinsAwarded.Add(float64(coins))
}

func (m *Metrics) RedemptionTransition(status string, coins int64) {
	if m == nil {
		return
	}
	m.Redemptions.WithLabelValues(status).Inc()
	if status == entities.RedemptionStatusApproved {
		m.CoinsRedeemed.Add(float64(coins))
	}
}

func (m *Metrics) ResolveMiss() {
	if m == nil {
		return
	}
	m.ResolveConflicts.Inc()
}
