package periodiccall

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

type PeriodicCall interface {
	Run()
	Close()
}

type CallFunc func(ctx context.Context) error

func New(period, timeout time.Duration, caller CallFunc, l *zap.Logger) PeriodicCall {
	ctx, cancel := context.WithCancel(context.Background())
	return &periodicCall{
		caller:     caller,
		log:        l,
		loopCtx:    ctx,
		loopCancel: cancel,
		loopDone:   make(chan struct{}),
		period:     period,
		timeout:    timeout,
	}
}

type periodicCall struct {
	log        *zap.Logger
	caller     CallFunc
	loopCtx    context.Context
	loopCancel context.CancelFunc
	loopDone   chan struct{}
	period     time.Duration
	timeout    time.Duration
	isRunning  atomic.Bool
}

func (p *periodicCall) Run() {
	p.isRunning.Store(true)
	go p.loop(p.period)
}

func (p *periodicCall) loop(period time.Duration) {
	defer close(p.loopDone)
	doCall := func() {
		ctx := p.loopCtx
		if p.timeout != 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(p.loopCtx, p.timeout)
			defer cancel()
		}
		if err := p.caller(ctx); err != nil {
			p.log.Warn("periodic call error", zap.Error(err))
		}
	}
	doCall()
	if period > 0 {
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		for {
			select {
			case <-p.loopCtx.Done():
				return
			case <-ticker.C:
				doCall()
			}
		}
	}
}

func (p *periodicCall) Close() {
	if !p.isRunning.Load() {
		return
	}
	p.loopCancel()
	<-p.loopDone
}
