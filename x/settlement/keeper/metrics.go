package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the settlement ledger.
type Metrics struct {
	MintsTotal     prometheus.Counter
	BurnsTotal     prometheus.Counter
	TransfersTotal prometheus.Counter
	TotalSupply    prometheus.Gauge
}

var (
	metricsOnce sync.Once
	metrics     *Metrics
)

// NewMetrics creates and registers settlement metrics (singleton pattern).
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = &Metrics{
			MintsTotal: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "osool",
				Subsystem: "settlement",
				Name:      "mints_total",
				Help:      "Total number of accepted mints",
			}),
			BurnsTotal: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "osool",
				Subsystem: "settlement",
				Name:      "burns_total",
				Help:      "Total number of burns",
			}),
			TransfersTotal: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "osool",
				Subsystem: "settlement",
				Name:      "transfers_total",
				Help:      "Total number of transfers",
			}),
			TotalSupply: promauto.NewGauge(prometheus.GaugeOpts{
				Namespace: "osool",
				Subsystem: "settlement",
				Name:      "total_supply",
				Help:      "Current settlement token total supply",
			}),
		}
	})
	return metrics
}
