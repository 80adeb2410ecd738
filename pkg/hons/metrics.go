package hons

// metrics.go contains a thin abstraction over Prometheus so that honspace
// can be used with or without metrics. When the caller passes a
// *prometheus.Registry via WithMetrics, labeled counters/gauges are
// created and registered; otherwise a no-op sink is used and the hot path
// does not pay for metric updates.
//
// © 2025 honspace authors. MIT License.

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metricsSink is the internal interface abstracting away the concrete
// backend (Prometheus vs noop). Not exposed outside the package.
type metricsSink interface {
	incNormHit()
	incNormMiss()
	incCacheFlush()
	incFastAlistRegistration()
	incClear()
	incWash()
	incSbitsGrowth()
}

type noopMetrics struct{}

func (noopMetrics) incNormHit()               {}
func (noopMetrics) incNormMiss()              {}
func (noopMetrics) incCacheFlush()            {}
func (noopMetrics) incFastAlistRegistration() {}
func (noopMetrics) incClear()                 {}
func (noopMetrics) incWash()                  {}
func (noopMetrics) incSbitsGrowth()           {}

type promMetrics struct {
	normHits          prometheus.Counter
	normMisses        prometheus.Counter
	cacheFlushes      prometheus.Counter
	fastAlistRegs     prometheus.Counter
	clears            prometheus.Counter
	washes            prometheus.Counter
	sbitsGrowthEvents prometheus.Counter
}

func newPromMetrics(reg *prometheus.Registry) *promMetrics {
	pm := &promMetrics{
		normHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "honspace", Name: "norm_hits_total",
			Help: "Number of Norm calls whose argument was already a normed pair.",
		}),
		normMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "honspace", Name: "norm_misses_total",
			Help: "Number of Norm calls whose argument was not already a normed pair.",
		}),
		cacheFlushes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "honspace", Name: "norm_cache_flushes_total",
			Help: "Number of times the norm cache self-flushed at its cutoff.",
		}),
		fastAlistRegs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "honspace", Name: "fast_alist_registrations_total",
			Help: "Number of fast-alist handles registered with a shadow map.",
		}),
		clears: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "honspace", Name: "clear_total",
			Help: "Number of clear invocations.",
		}),
		washes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "honspace", Name: "wash_total",
			Help: "Number of wash invocations.",
		}),
		sbitsGrowthEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "honspace", Name: "sbits_growth_total",
			Help: "Number of times the addressed back end's sbits bitset grew.",
		}),
	}
	reg.MustRegister(pm.normHits, pm.normMisses, pm.cacheFlushes,
		pm.fastAlistRegs, pm.clears, pm.washes, pm.sbitsGrowthEvents)
	return pm
}

func (m *promMetrics) incNormHit()               { m.normHits.Inc() }
func (m *promMetrics) incNormMiss()              { m.normMisses.Inc() }
func (m *promMetrics) incCacheFlush()            { m.cacheFlushes.Inc() }
func (m *promMetrics) incFastAlistRegistration() { m.fastAlistRegs.Inc() }
func (m *promMetrics) incClear()                 { m.clears.Inc() }
func (m *promMetrics) incWash()                  { m.washes.Inc() }
func (m *promMetrics) incSbitsGrowth()           { m.sbitsGrowthEvents.Inc() }

// newMetricsSink decides which implementation to use.
func newMetricsSink(reg *prometheus.Registry) metricsSink {
	if reg == nil {
		return noopMetrics{}
	}
	return newPromMetrics(reg)
}
