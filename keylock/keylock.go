package keylock

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/eventry/admission/app"
	"github.com/eventry/admission/app/logger"
)

const CName = "admission.keylock"

var log = logger.NewNamed(CName)

var (
	// ErrLockTimeout is returned when a key can't be acquired within the
	// acquire timeout. It signals contention, not resource exhaustion.
	ErrLockTimeout = errors.New("lock acquire timeout")
)

var defaultAcquireTimeout = 5 * time.Second

type AcquireOption func(*acquireOpts)

// WithTimeout overrides the acquire timeout for a single call
func WithTimeout(timeout time.Duration) AcquireOption {
	return func(o *acquireOpts) {
		o.timeout = timeout
	}
}

type acquireOpts struct {
	timeout time.Duration
}

func New() KeyLock {
	return &keyLock{
		entries: make(map[string]*lockEntry),
		timeout: defaultAcquireTimeout,
	}
}

// KeyLock provides scoped per-key mutual exclusion with FIFO fairness
// and an acquisition timeout.
//
// Locks are not reentrant: a holder that acquires the same key again
// queues behind itself and, absent an external release, times out.
type KeyLock interface {
	// WithLock runs fn with exclusive ownership of key. fn's error
	// propagates to the caller unchanged, after the key is released.
	// The key is released on every exit path, fn panics included.
	// When the key is not granted within the timeout fn is never run
	// and ErrLockTimeout is returned.
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error, opts ...AcquireOption) error
	// Acquire waits for exclusive ownership of key and returns a Guard
	// whose Release gives it up. Waiters for the same key are granted
	// in strict FIFO order, no ordering exists across keys.
	Acquire(ctx context.Context, key string, opts ...AcquireOption) (*Guard, error)
	// TryAcquire grants key only when nobody holds it, without waiting
	TryAcquire(key string) (*Guard, bool)
	// Len returns the number of currently contended keys
	Len() int
	app.Component
}

// lockEntry exists only while its key is held: it is created on first
// acquisition and removed the moment the holder releases with an empty
// waiter queue, so the registry is bounded by currently contended keys
type lockEntry struct {
	grantedAt time.Time
	waiters   []*waiter // FIFO, head is granted next
}

type waiter struct {
	grant chan struct{}
}

type keyLock struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
	timeout time.Duration
	metrics *metrics
}

func (k *keyLock) Init(a *app.App) (err error) {
	cfg := a.MustComponent("config").(configGetter).GetKeyLock()
	if cfg.AcquireTimeoutMs > 0 {
		k.timeout = time.Duration(cfg.AcquireTimeoutMs) * time.Millisecond
	}
	if m, ok := a.Component("common.metric").(registryProvider); ok {
		k.registerMetrics(m.Registry())
	}
	return nil
}

func (k *keyLock) Name() string {
	return CName
}

func (k *keyLock) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error, opts ...AcquireOption) error {
	g, err := k.Acquire(ctx, key, opts...)
	if err != nil {
		return err
	}
	defer g.Release()
	return fn(ctx)
}

func (k *keyLock) Acquire(ctx context.Context, key string, opts ...AcquireOption) (*Guard, error) {
	o := acquireOpts{timeout: k.timeout}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		k.entries[key] = &lockEntry{grantedAt: time.Now()}
		k.mu.Unlock()
		k.metricsAcquired(false)
		return &Guard{k: k, key: key}, nil
	}
	w := &waiter{grant: make(chan struct{})}
	e.waiters = append(e.waiters, w)
	k.mu.Unlock()

	timer := time.NewTimer(o.timeout)
	defer timer.Stop()
	select {
	case <-w.grant:
		k.metricsAcquired(true)
		return &Guard{k: k, key: key}, nil
	case <-timer.C:
		return nil, k.abandon(key, w, ErrLockTimeout)
	case <-ctx.Done():
		return nil, k.abandon(key, w, ctx.Err())
	}
}

// abandon removes w from the queue. When the grant raced the timer the
// lock is already ours and must be passed on, the next waiter is
// unaffected either way.
func (k *keyLock) abandon(key string, w *waiter, cause error) error {
	k.mu.Lock()
	e, ok := k.entries[key]
	if ok {
		for i, qw := range e.waiters {
			if qw == w {
				e.waiters = append(e.waiters[:i], e.waiters[i+1:]...)
				k.mu.Unlock()
				k.metricsTimeout()
				return cause
			}
		}
	}
	k.mu.Unlock()
	<-w.grant
	k.release(key)
	k.metricsTimeout()
	return cause
}

func (k *keyLock) TryAcquire(key string) (*Guard, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if _, ok := k.entries[key]; ok {
		return nil, false
	}
	k.entries[key] = &lockEntry{grantedAt: time.Now()}
	k.metricsAcquired(false)
	return &Guard{k: k, key: key}, true
}

func (k *keyLock) release(key string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	e, ok := k.entries[key]
	if !ok {
		log.Warn("release of a key that is not held", zap.String("key", key))
		return
	}
	if held := time.Since(e.grantedAt); held > defaultAcquireTimeout {
		log.Debug("key released after a long hold", zap.String("key", key), zap.Duration("held", held))
	}
	if len(e.waiters) == 0 {
		delete(k.entries, key)
		return
	}
	next := e.waiters[0]
	e.waiters = e.waiters[1:]
	e.grantedAt = time.Now()
	close(next.grant)
}

func (k *keyLock) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.entries)
}

// Guard represents one successful acquisition, Release is idempotent
type Guard struct {
	k    *keyLock
	key  string
	once sync.Once
}

func (g *Guard) Release() {
	g.once.Do(func() {
		g.k.release(g.key)
	})
}

func (g *Guard) Key() string {
	return g.key
}
