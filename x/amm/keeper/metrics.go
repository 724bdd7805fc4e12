package keeper

import (
	"sync"

	"cosmossdk.io/math"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Mustafa6066/Osool-sub002/x/amm/types"
)

// Metrics holds Prometheus metrics for the pool ledger
type Metrics struct {
	SwapsTotal          *prometheus.CounterVec
	SwapVolume          *prometheus.CounterVec
	SwapLatency         prometheus.Histogram
	LiquidityAdds       *prometheus.CounterVec
	LiquidityRemovals   *prometheus.CounterVec
	PlatformFeesAccrued *prometheus.CounterVec
	PoolsTotal          prometheus.Gauge
	TokenReserve        *prometheus.GaugeVec
	SettlementReserve   *prometheus.GaugeVec
	TwapValue           *prometheus.GaugeVec
}

var (
	ammMetricsInstance *Metrics
	ammMetricsOnce     sync.Once
)

// NewMetrics creates and registers pool ledger metrics. Uses a singleton
// to avoid duplicate registration when multiple keepers are created.
func NewMetrics() *Metrics {
	ammMetricsOnce.Do(func() {
		ammMetricsInstance = &Metrics{
			SwapsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: "osool",
				Subsystem: "amm",
				Name:      "swaps_total",
				Help:      "Total number of swap attempts by asset, direction, and status",
			}, []string{"asset", "direction", "status"}),
			SwapVolume: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: "osool",
				Subsystem: "amm",
				Name:      "swap_volume",
				Help:      "Cumulative swap input volume by asset and input leg",
			}, []string{"asset", "leg"}),
			SwapLatency: promauto.NewHistogram(prometheus.HistogramOpts{
				Namespace: "osool",
				Subsystem: "amm",
				Name:      "swap_latency_seconds",
				Help:      "Swap execution latency in seconds",
				Buckets:   prometheus.DefBuckets,
			}),
			LiquidityAdds: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: "osool",
				Subsystem: "amm",
				Name:      "liquidity_adds_total",
				Help:      "Total number of liquidity deposits by asset",
			}, []string{"asset"}),
			LiquidityRemovals: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: "osool",
				Subsystem: "amm",
				Name:      "liquidity_removals_total",
				Help:      "Total number of liquidity withdrawals by asset",
			}, []string{"asset"}),
			PlatformFeesAccrued: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: "osool",
				Subsystem: "amm",
				Name:      "platform_fees_accrued",
				Help:      "Cumulative platform fees accrued by asset and leg",
			}, []string{"asset", "leg"}),
			PoolsTotal: promauto.NewGauge(prometheus.GaugeOpts{
				Namespace: "osool",
				Subsystem: "amm",
				Name:      "pools_total",
				Help:      "Number of initialized pools",
			}),
			TokenReserve: promauto.NewGaugeVec(prometheus.GaugeOpts{
				Namespace: "osool",
				Subsystem: "amm",
				Name:      "pool_token_reserve",
				Help:      "Current asset-token reserve by pool",
			}, []string{"asset"}),
			SettlementReserve: promauto.NewGaugeVec(prometheus.GaugeOpts{
				Namespace: "osool",
				Subsystem: "amm",
				Name:      "pool_settlement_reserve",
				Help:      "Current settlement-token reserve by pool",
			}, []string{"asset"}),
			TwapValue: promauto.NewGaugeVec(prometheus.GaugeOpts{
				Namespace: "osool",
				Subsystem: "amm",
				Name:      "twap_value",
				Help:      "Last computed time-weighted average price by pool",
			}, []string{"asset"}),
		}
	})
	return ammMetricsInstance
}

func (k *Keeper) setReserveGauges(pool types.Pool) {
	k.metrics.TokenReserve.WithLabelValues(pool.AssetID).Set(intToFloat(pool.TokenReserve))
	k.metrics.SettlementReserve.WithLabelValues(pool.AssetID).Set(intToFloat(pool.SettlementReserve))
}

// intToFloat converts for gauge export only; precision loss above 2^53 is
// acceptable for monitoring.
func intToFloat(v math.Int) float64 {
	f, _ := math.LegacyNewDecFromInt(v).Float64()
	return f
}

func decToFloat(v math.LegacyDec) float64 {
	f, _ := v.Float64()
	return f
}
