package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/eventry/admission/app"
	"github.com/eventry/admission/app/logger"
	"github.com/eventry/admission/capacity"
	"github.com/eventry/admission/keylock"
	"github.com/eventry/admission/metric"
)

const CName = "config"

func NewFromFile(path string) (c *Config, err error) {
	c = &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return nil, err
	}
	return
}

type Config struct {
	Logger   logger.Config   `yaml:"logger"`
	Metric   metric.Config   `yaml:"metric"`
	KeyLock  keylock.Config  `yaml:"keyLock"`
	Capacity capacity.Config `yaml:"capacity"`
}

func (c *Config) Init(a *app.App) (err error) {
	c.Logger.ApplyGlobal()
	return
}

func (c *Config) Name() (name string) {
	return CName
}

func (c *Config) GetMetric() metric.Config {
	return c.Metric
}

func (c *Config) GetKeyLock() keylock.Config {
	return c.KeyLock
}

func (c *Config) GetCapacity() capacity.Config {
	return c.Capacity
}
