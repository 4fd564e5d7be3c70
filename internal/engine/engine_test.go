package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/neuralfocus/internal/audio"
	"github.com/balkashynov/neuralfocus/internal/mixer"
	"github.com/balkashynov/neuralfocus/internal/ramp"
	"github.com/balkashynov/neuralfocus/internal/timer"
	"github.com/balkashynov/neuralfocus/internal/volsync"
)

type fakeTicker struct {
	d       time.Duration
	c       chan time.Time
	mu      sync.Mutex
	stopped bool
}

func (f *fakeTicker) C() <-chan time.Time { return f.c }

func (f *fakeTicker) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
}

func (f *fakeTicker) isStopped() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopped
}

type tickerFactory struct {
	mu      sync.Mutex
	tickers []*fakeTicker
	made    chan *fakeTicker
}

func newTickerFactory() *tickerFactory {
	return &tickerFactory{made: make(chan *fakeTicker, 64)}
}

func (tf *tickerFactory) New(d time.Duration) Ticker {
	ft := &fakeTicker{d: d, c: make(chan time.Time)}
	tf.mu.Lock()
	tf.tickers = append(tf.tickers, ft)
	tf.mu.Unlock()
	tf.made <- ft
	return ft
}

func (tf *tickerFactory) next(t *testing.T) *fakeTicker {
	t.Helper()
	select {
	case ft := <-tf.made:
		return ft
	case <-time.After(2 * time.Second):
		t.Fatal("no ticker created")
		return nil
	}
}

func setup(t *testing.T, preset ramp.Preset) (*timer.Timer, *mixer.Mixer, *audio.Level) {
	t.Helper()
	bus := volsync.NewBus()
	level := &audio.Level{}
	m := mixer.New(mixer.Options{Volume: 57, Output: level, Bus: bus})
	tm, err := timer.New(timer.Options{Preset: preset, Policy: ramp.Step, Bus: bus})
	require.NoError(t, err)
	t.Cleanup(func() {
		tm.Close()
		m.Close()
	})
	return tm, m, level
}

func TestNewRequiresTimer(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestRun_AnimatesThenStopsStepTicker(t *testing.T) {
	tm, m, level := setup(t, ramp.Pomodoro)
	tf := newTickerFactory()

	e, err := New(Options{Timer: tm, Mixer: m, NewTicker: tf.New, TickEvery: time.Second, StepEvery: 50 * time.Millisecond})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.Run(ctx) }()

	tick := tf.next(t)
	assert.Equal(t, time.Second, tick.d)

	// Start publishes 60 and the mixer begins moving from 57.
	step := tf.next(t)
	assert.Equal(t, 50*time.Millisecond, step.d)
	for i := 0; i < 10; i++ {
		step.c <- time.Now()
	}
	tick.c <- time.Now()

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	assert.Equal(t, 60, m.State().Display)
	assert.Equal(t, 60, level.Percent())
	assert.True(t, step.isStopped())
	assert.True(t, tick.isStopped())
	assert.Equal(t, 1, tm.Elapsed())
}

func TestRun_StopsAfterSessions(t *testing.T) {
	tm, _, _ := setup(t, ramp.Pomodoro)
	tf := newTickerFactory()

	var snaps []timer.Snapshot
	e, err := New(Options{Timer: tm, Sessions: 1, NewTicker: tf.New, OnTick: func(s timer.Snapshot) {
		snaps = append(snaps, s)
	}})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- e.Run(context.Background()) }()

	tick := tf.next(t)
	for i := 0; i < ramp.Pomodoro.Seconds(); i++ {
		tick.c <- time.Now()
	}

	require.NoError(t, <-done)
	require.Len(t, snaps, ramp.Pomodoro.Seconds())
	last := snaps[len(snaps)-1]
	assert.Equal(t, 1, last.SessionsCompleted)
	assert.Equal(t, timer.BreakRunning, last.State)
}

func TestRun_StartFailsInBreak(t *testing.T) {
	tm, _, _ := setup(t, ramp.Pomodoro)
	require.NoError(t, tm.Start())
	for i := 0; i < ramp.Pomodoro.Seconds(); i++ {
		tm.Tick()
	}
	tm.Pause()
	require.Equal(t, timer.BreakPaused, tm.State())

	e, err := New(Options{Timer: tm, NewTicker: newTickerFactory().New})
	require.NoError(t, err)
	assert.ErrorIs(t, e.Run(context.Background()), timer.ErrInBreak)
}
