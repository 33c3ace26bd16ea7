package keylock

import (
	"github.com/prometheus/client_golang/prometheus"
)

type registryProvider interface {
	Registry() *prometheus.Registry
}

type metrics struct {
	acquired  prometheus.Counter
	contended prometheus.Counter
	timeout   prometheus.Counter
	keys      prometheus.GaugeFunc
}

func (k *keyLock) registerMetrics(reg *prometheus.Registry) {
	if reg == nil {
		return
	}
	k.metrics = &metrics{
		acquired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "admission",
			Subsystem: "keylock",
			Name:      "acquired",
			Help:      "successful acquisitions",
		}),
		contended: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "admission",
			Subsystem: "keylock",
			Name:      "contended",
			Help:      "acquisitions that had to wait",
		}),
		timeout: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "admission",
			Subsystem: "keylock",
			Name:      "timeout",
			Help:      "abandoned acquisitions",
		}),
		keys: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "admission",
			Subsystem: "keylock",
			Name:      "keys",
			Help:      "currently contended keys",
		}, func() float64 {
			return float64(k.Len())
		}),
	}
	reg.MustRegister(
		k.metrics.acquired,
		k.metrics.contended,
		k.metrics.timeout,
		k.metrics.keys,
	)
}

func (k *keyLock) metricsAcquired(waited bool) {
	if k.metrics == nil {
		return
	}
	k.metrics.acquired.Inc()
	if waited {
		k.metrics.contended.Inc()
	}
}

func (k *keyLock) metricsTimeout() {
	if k.metrics == nil {
		return
	}
	k.metrics.timeout.Inc()
}
