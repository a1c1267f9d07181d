package octree

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	octreeDrawables = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "octree_drawables",
		Help: "The number of drawables currently indexed.",
	})

	octreeUpdates = promauto.NewCounter(prometheus.CounterOpts{
		Name: "octree_updates",
		Help: "The number of update cycles that drained a non-empty pending queue.",
	})

	octreeReinsertions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "octree_reinsertions",
		Help: "The number of drawable reinsertions performed by update cycles.",
	})

	octreeRaycasts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "octree_raycasts",
		Help: "The number of ray queries.",
	})

	octreeUpdateLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "octree_update_latency",
		Help: "The time to drain the pending drawable updates.",
	})
)
