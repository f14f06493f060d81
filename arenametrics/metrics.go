// Package arenametrics exports arena statistics as Prometheus metrics.
//
// Arenas are not safe for concurrent use, so the collector never reads an
// arena itself. The goroutine owning the arena calls Observe with a fresh
// arena.Stats snapshot, and scrapes only read the recorded values.
package arenametrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pavanmanishd/arena/v2"
)

// Metrics holds the Prometheus collectors for one arena and the last
// snapshot passed to Observe.
type Metrics struct {
	bytesUsed     prometheus.Gauge
	bytesReserved prometheus.Gauge
	blocks        prometheus.Gauge
	utilization   prometheus.Gauge

	blocksAllocated prometheus.Counter
	blocksFreed     prometheus.Counter
	resets          prometheus.Counter
	releases        prometheus.Counter

	last arena.Stats
}

// NewMetrics registers the arena metrics with reg. The name ends up in the
// "arena" label so several arenas can share a registry.
func NewMetrics(reg prometheus.Registerer, name string) *Metrics {
	labels := prometheus.Labels{"arena": name}
	return &Metrics{
		bytesUsed: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name:        "arena_bytes_used",
			Help:        "Bytes handed out across all live blocks.",
			ConstLabels: labels,
		}),
		bytesReserved: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name:        "arena_bytes_reserved",
			Help:        "Total capacity of all live blocks.",
			ConstLabels: labels,
		}),
		blocks: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name:        "arena_blocks",
			Help:        "Number of live blocks.",
			ConstLabels: labels,
		}),
		utilization: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name:        "arena_utilization_ratio",
			Help:        "Bytes used divided by bytes reserved.",
			ConstLabels: labels,
		}),
		blocksAllocated: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name:        "arena_blocks_allocated_total",
			Help:        "Blocks obtained from the block source.",
			ConstLabels: labels,
		}),
		blocksFreed: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name:        "arena_blocks_freed_total",
			Help:        "Blocks returned to the block source.",
			ConstLabels: labels,
		}),
		resets: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name:        "arena_resets_total",
			Help:        "Calls to Reset.",
			ConstLabels: labels,
		}),
		releases: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name:        "arena_releases_total",
			Help:        "Successful calls to Release.",
			ConstLabels: labels,
		}),
	}
}

// Observe records a snapshot taken with (*arena.Arena).Stats.
func (m *Metrics) Observe(s arena.Stats) {
	m.bytesUsed.Set(float64(s.BytesUsed))
	m.bytesReserved.Set(float64(s.BytesReserved))
	m.blocks.Set(float64(s.NumBlocks))
	m.utilization.Set(s.Utilization)

	m.blocksAllocated.Add(delta(m.last.BlocksAllocated, s.BlocksAllocated))
	m.blocksFreed.Add(delta(m.last.BlocksFreed, s.BlocksFreed))
	m.resets.Add(delta(m.last.Resets, s.Resets))
	m.releases.Add(delta(m.last.Releases, s.Releases))
	m.last = s
}

// delta returns how much a counter grew. Arena counters are monotonic; a
// smaller value means Observe was handed a different arena, whose whole
// count is new.
func delta(prev, cur uint64) float64 {
	if cur < prev {
		return float64(cur)
	}
	return float64(cur - prev)
}
