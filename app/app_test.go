package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testComponent struct {
	name    string
	initErr error
	runErr  error
	events  *[]string
}

func (t *testComponent) Init(a *App) error {
	*t.events = append(*t.events, "init:"+t.name)
	return t.initErr
}

func (t *testComponent) Name() string { return t.name }

type testRunnable struct {
	testComponent
}

func (t *testRunnable) Run(ctx context.Context) error {
	*t.events = append(*t.events, "run:"+t.name)
	return t.runErr
}

func (t *testRunnable) Close(ctx context.Context) error {
	*t.events = append(*t.events, "close:"+t.name)
	return nil
}

func TestApp_Start(t *testing.T) {
	t.Run("order", func(t *testing.T) {
		var events []string
		a := new(App)
		a.Register(&testRunnable{testComponent{name: "a", events: &events}}).
			Register(&testRunnable{testComponent{name: "b", events: &events}})
		require.NoError(t, a.Start(context.Background()))
		assert.Equal(t, []string{"init:a", "init:b", "run:a", "run:b"}, events)
		require.NoError(t, a.Close(context.Background()))
		assert.Equal(t, []string{"init:a", "init:b", "run:a", "run:b", "close:b", "close:a"}, events)
	})
	t.Run("init error aborts start", func(t *testing.T) {
		var events []string
		a := new(App)
		a.Register(&testRunnable{testComponent{name: "a", events: &events}}).
			Register(&testComponent{name: "b", events: &events, initErr: errors.New("boom")})
		require.Error(t, a.Start(context.Background()))
		// already initialized runnables are closed
		assert.Contains(t, events, "close:a")
	})
	t.Run("duplicate name panics", func(t *testing.T) {
		var events []string
		a := new(App)
		a.Register(&testComponent{name: "a", events: &events})
		assert.Panics(t, func() {
			a.Register(&testComponent{name: "a", events: &events})
		})
	})
}

func TestApp_Component(t *testing.T) {
	var events []string
	a := new(App)
	c := &testComponent{name: "a", events: &events}
	a.Register(c)
	assert.Equal(t, c, a.Component("a"))
	assert.Nil(t, a.Component("missing"))
	assert.Panics(t, func() {
		a.MustComponent("missing")
	})
	assert.Equal(t, []string{"a"}, a.ComponentNames())
}
