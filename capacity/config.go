package capacity

import (
	"github.com/prometheus/client_golang/prometheus"
)

type configGetter interface {
	GetCapacity() Config
}

type registryProvider interface {
	Registry() *prometheus.Registry
}

type Config struct {
	CacheMaxSize  int `yaml:"cacheMaxSize"`
	CacheTTLMs    int `yaml:"cacheTtlMs"`
	NegativeTTLMs int `yaml:"negativeTtlMs"`
}
