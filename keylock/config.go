package keylock

type configGetter interface {
	GetKeyLock() Config
}

type Config struct {
	AcquireTimeoutMs int `yaml:"acquireTimeoutMs"`
}
