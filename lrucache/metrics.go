package lrucache

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

func WithPrometheus[V any](reg *prometheus.Registry, namespace, subsystem string) Option[V] {
	if reg == nil {
		return nil
	}
	if subsystem == "" {
		subsystem = "cache"
	}
	namespace = strings.ReplaceAll(namespace, ".", "_")
	subsystem = strings.ReplaceAll(subsystem, ".", "_")

	return func(c *LruCache[V]) {
		c.metrics = &metrics{
			hit: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "hit",
				Help:      "cache hit count",
			}),
			miss: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "miss",
				Help:      "cache miss count",
			}),
			evicted: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "evicted",
				Help:      "lru evicted count",
			}),
			size: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "size",
				Help:      "cache size",
			}, func() float64 {
				return float64(c.Len())
			}),
		}
		reg.MustRegister(
			c.metrics.hit,
			c.metrics.miss,
			c.metrics.evicted,
			c.metrics.size,
		)
	}
}

type metrics struct {
	hit     prometheus.Counter
	miss    prometheus.Counter
	evicted prometheus.Counter
	size    prometheus.GaugeFunc
}
