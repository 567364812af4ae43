package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sarchlab/pcmcache/cache"
)

// A Collector is a cache hook that exports the activity of one cache as
// Prometheus counters. Prometheus metric types are goroutine-safe, so the
// hook can run on the simulation goroutine while the server scrapes.
type Collector struct {
	fills      prometheus.Counter
	hits       prometheus.Counter
	evictions  prometheus.Counter
	writeBacks prometheus.Counter
}

// NewCollector constructs a Collector and registers its metrics with reg. A
// nil reg falls back to the default registerer. The cache name becomes a
// constant label so several caches can share one registry.
func NewCollector(reg prometheus.Registerer, cacheName string) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	constLabels := prometheus.Labels{"cache": cacheName}
	c := &Collector{
		fills: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "pcmcache",
			Name:        "fills_total",
			Help:        "Lines filled after a miss",
			ConstLabels: constLabels,
		}),
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "pcmcache",
			Name:        "hits_total",
			Help:        "Accesses that hit a resident line",
			ConstLabels: constLabels,
		}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "pcmcache",
			Name:        "evictions_total",
			Help:        "Lines evicted to make room for a fill",
			ConstLabels: constLabels,
		}),
		writeBacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "pcmcache",
			Name:        "write_backs_total",
			Help:        "Dirty lines written back to memory",
			ConstLabels: constLabels,
		}),
	}

	reg.MustRegister(c.fills, c.hits, c.evictions, c.writeBacks)

	return c
}

// Func counts the event that triggered the hook.
func (c *Collector) Func(ctx cache.HookCtx) {
	switch ctx.Pos {
	case cache.HookPosFill:
		c.fills.Inc()
	case cache.HookPosHit:
		c.hits.Inc()
	case cache.HookPosEviction:
		c.evictions.Inc()
	case cache.HookPosWriteBack:
		c.writeBacks.Inc()
	}
}
