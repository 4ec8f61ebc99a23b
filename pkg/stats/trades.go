package stats

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tradedesk"

var (
	tradeTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "trade_transitions_total",
		Help:      "Number of trades entering a status, by status.",
	}, []string{"status"})

	tradeFairness = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "trade_fairness_score",
		Help:      "Fairness score of proposed trades.",
		Buckets:   prometheus.LinearBuckets(0, 10, 11),
	})

	rosterFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "roster_mutation_failures_total",
		Help:      "Number of accepts aborted by the roster mutation, by reason.",
	}, []string{"reason"})

	sweptTrades = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "swept_trades_total",
		Help:      "Number of trades expired by sweeps.",
	})

	webhookDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webhook_deliveries_total",
		Help:      "Number of webhook deliveries, by topic and outcome.",
	}, []string{"topic", "outcome"})
)

// RecordTradeTransition counts a trade entering the given status.
func RecordTradeTransition(status string) {
	tradeTransitions.WithLabelValues(status).Inc()
}

// RecordTradeFairness observes the fairness score of a new trade.
func RecordTradeFairness(score float64) {
	tradeFairness.Observe(score)
}

// RecordRosterFailure counts an accept aborted by the roster mutation.
func RecordRosterFailure(reason string) {
	rosterFailures.WithLabelValues(reason).Inc()
}

// RecordSweptTrades ...
func RecordSweptTrades(count int) {
	sweptTrades.Add(float64(count))
}

// RecordWebhookDelivery counts a webhook delivery attempt.
func RecordWebhookDelivery(topic string, ok bool) {
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	webhookDeliveries.WithLabelValues(topic, outcome).Inc()
}
