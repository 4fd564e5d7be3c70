// Package engine drives a timer and mixer without a terminal UI.
package engine

import (
	"context"
	"errors"
	"time"

	"github.com/balkashynov/neuralfocus/internal/config"
	"github.com/balkashynov/neuralfocus/internal/mixer"
	"github.com/balkashynov/neuralfocus/internal/timer"
)

// Ticker is the part of time.Ticker the loop needs.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type realTicker struct{ t *time.Ticker }

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// NewTicker wraps time.NewTicker.
func NewTicker(d time.Duration) Ticker { return realTicker{time.NewTicker(d)} }

type Options struct {
	Timer *timer.Timer
	Mixer *mixer.Mixer

	// Sessions stops the loop after that many completed focus sessions.
	// Zero runs until the context ends.
	Sessions int

	TickEvery time.Duration
	StepEvery time.Duration

	// NewTicker defaults to NewTicker.
	NewTicker func(time.Duration) Ticker

	// OnTick sees the timer after every second.
	OnTick func(timer.Snapshot)
}

type Engine struct {
	opts Options
}

func New(opts Options) (*Engine, error) {
	if opts.Timer == nil {
		return nil, errors.New("engine needs a timer")
	}
	if opts.TickEvery <= 0 {
		opts.TickEvery = config.TickInterval
	}
	if opts.StepEvery <= 0 {
		opts.StepEvery = config.TransitionInterval
	}
	if opts.NewTicker == nil {
		opts.NewTicker = NewTicker
	}
	return &Engine{opts: opts}, nil
}

// Run starts the timer and owns it until ctx is done or the session quota
// is reached. The animation ticker only exists while the mixer is moving.
func (e *Engine) Run(ctx context.Context) error {
	t, m := e.opts.Timer, e.opts.Mixer

	if err := t.Start(); err != nil {
		return err
	}

	tick := e.opts.NewTicker(e.opts.TickEvery)
	defer tick.Stop()

	var step Ticker
	defer func() {
		if step != nil {
			step.Stop()
		}
	}()

	for {
		var stepC <-chan time.Time
		if m != nil && m.Transitioning() {
			if step == nil {
				step = e.opts.NewTicker(e.opts.StepEvery)
			}
			stepC = step.C()
		} else if step != nil {
			step.Stop()
			step = nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-tick.C():
			t.Tick()
			snap := t.Snapshot()
			if e.opts.OnTick != nil {
				e.opts.OnTick(snap)
			}
			if e.opts.Sessions > 0 && snap.SessionsCompleted >= e.opts.Sessions {
				return nil
			}

		case <-stepC:
			m.Step()
		}
	}
}
