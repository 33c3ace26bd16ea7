package periodiccall

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestPeriodicCall(t *testing.T) {
	t.Run("calls immediately and then on period", func(t *testing.T) {
		var calls atomic.Int32
		p := New(10*time.Millisecond, 0, func(ctx context.Context) error {
			calls.Add(1)
			return nil
		}, zap.NewNop())
		p.Run()
		assert.Eventually(t, func() bool {
			return calls.Load() >= 2
		}, time.Second, 5*time.Millisecond)
		p.Close()
	})
	t.Run("close before run is a no-op", func(t *testing.T) {
		p := New(time.Second, 0, func(ctx context.Context) error {
			return nil
		}, zap.NewNop())
		p.Close()
	})
	t.Run("close stops the loop", func(t *testing.T) {
		var calls atomic.Int32
		p := New(5*time.Millisecond, 0, func(ctx context.Context) error {
			calls.Add(1)
			return nil
		}, zap.NewNop())
		p.Run()
		time.Sleep(20 * time.Millisecond)
		p.Close()
		n := calls.Load()
		time.Sleep(20 * time.Millisecond)
		assert.Equal(t, n, calls.Load())
	})
}
