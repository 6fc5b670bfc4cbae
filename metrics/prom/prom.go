// Package prom exports cache statistics to Prometheus.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/polycache/polycache/policy"
)

// StatsSource is anything exposing cache tallies: a sharded cache.Cache or
// any standalone policy engine.
type StatsSource interface {
	Stats() policy.Stats
	Len() int
}

// Collector implements prometheus.Collector over a StatsSource. The
// engines count hits/misses/evictions under their own locks; the collector
// pulls snapshots at scrape time, so no per-operation metric calls sit on
// the cache hot path.
type Collector struct {
	src StatsSource

	hits    *prometheus.Desc
	misses  *prometheus.Desc
	evicts  *prometheus.Desc
	sizeEnt *prometheus.Desc
}

// NewCollector builds a collector for src.
//   - ns, sub:     Prometheus namespace and subsystem
//   - constLabels: static labels applied to all metrics (may be nil)
//
// Register it with prometheus.MustRegister (or a custom registry).
func NewCollector(src StatsSource, ns, sub string, constLabels prometheus.Labels) *Collector {
	fqName := func(name string) string {
		return prometheus.BuildFQName(ns, sub, name)
	}
	return &Collector{
		src: src,
		hits: prometheus.NewDesc(fqName("hits_total"),
			"Cache hits", nil, constLabels),
		misses: prometheus.NewDesc(fqName("misses_total"),
			"Cache misses", nil, constLabels),
		evicts: prometheus.NewDesc(fqName("evictions_total"),
			"Entries evicted by the replacement policy", nil, constLabels),
		sizeEnt: prometheus.NewDesc(fqName("size_entries"),
			"Number of resident entries", nil, constLabels),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.hits
	ch <- c.misses
	ch <- c.evicts
	ch <- c.sizeEnt
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.src.Stats()
	ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(s.Hits))
	ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(s.Misses))
	ch <- prometheus.MustNewConstMetric(c.evicts, prometheus.CounterValue, float64(s.Evictions))
	ch <- prometheus.MustNewConstMetric(c.sizeEnt, prometheus.GaugeValue, float64(c.src.Len()))
}

var _ prometheus.Collector = (*Collector)(nil)
