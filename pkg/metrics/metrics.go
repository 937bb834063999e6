package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pipeline counters. Registered on the default registry; exposed via
// Handler on /metrics.
var (
	TransactionsSynced = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wallet_sentinel",
		Name:      "transactions_synced_total",
		Help:      "Transactions persisted by sync, per chain.",
	}, []string{"chain"})

	DuplicatesSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wallet_sentinel",
		Name:      "transactions_duplicate_total",
		Help:      "Transactions skipped as already stored, per chain.",
	}, []string{"chain"})

	AlertsFired = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wallet_sentinel",
		Name:      "alerts_fired_total",
		Help:      "Alerts persisted after rule evaluation, per alert type.",
	}, []string{"alert_type"})

	SyncErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wallet_sentinel",
		Name:      "sync_errors_total",
		Help:      "Per-transaction failures skipped during sync, per chain.",
	}, []string{"chain"})
)

// Handler returns the HTTP handler serving the metrics endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}
