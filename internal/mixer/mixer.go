// Package mixer owns the user-facing volume: automatic ramp tracking with
// short animated transitions, manual override and mute.
//
// A Mixer never schedules anything itself. While Transitioning reports
// true, its owner calls Step every config.TransitionInterval; Generation
// changes whenever a transition is replaced or cancelled so that stale
// scheduler ticks can be recognised and dropped.
package mixer

import (
	"math"
	"sync"

	"github.com/balkashynov/neuralfocus/internal/audio"
	"github.com/balkashynov/neuralfocus/internal/config"
	"github.com/balkashynov/neuralfocus/internal/volsync"
)

const maxSteps = 20

// State is a copy of the mixer's volume state.
type State struct {
	Display  int
	Previous int
	Target   int
	Auto     bool
	Muted    bool
}

// Options configure a Mixer.
type Options struct {
	// Volume is the initial display volume, usually the saved preference.
	Volume int

	// Steps per transition, 1..20. Zero means config.TransitionSteps.
	Steps int

	Output audio.Output
	Bus    *volsync.Bus
}

type transition struct {
	start int
	diff  int
	step  int
}

// Mixer is safe for use from several goroutines, but is designed to be
// driven from one event loop.
type Mixer struct {
	mu sync.Mutex

	display  int
	previous int
	target   int
	auto     bool
	muted    bool

	steps int
	tr    *transition
	gen   int

	out audio.Output
	bus *volsync.Bus
	sub *volsync.Subscription
}

// New returns a mixer in auto mode, subscribed to opts.Bus.
func New(opts Options) *Mixer {
	steps := opts.Steps
	if steps <= 0 {
		steps = config.TransitionSteps
	}
	steps = min(steps, maxSteps)

	v := clamp(opts.Volume)
	m := &Mixer{
		display:  v,
		previous: v,
		target:   v,
		auto:     true,
		steps:    steps,
		out:      opts.Output,
		bus:      opts.Bus,
	}
	if m.bus != nil {
		m.sub = m.bus.Subscribe(m.handle)
	}
	return m
}

func (m *Mixer) handle(msg volsync.Message) {
	switch msg := msg.(type) {
	case volsync.VolumeRampUpdate:
		m.Apply(msg.Volume)
	case volsync.RestoreVolumeResponse:
		m.Apply(msg.Volume)
	}
}

// Apply starts a transition towards target when auto volume is on and the
// mixer is not muted. It replaces any transition in flight.
func (m *Mixer) Apply(target int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.auto || m.muted {
		return false
	}
	target = clamp(target)
	m.target = target
	m.gen++
	m.tr = nil
	if target == m.display {
		return false
	}
	m.tr = &transition{start: m.display, diff: target - m.display}
	return true
}

// Step advances the transition by one step, pushing the new volume to the
// output. It reports whether more steps remain.
func (m *Mixer) Step() bool {
	m.mu.Lock()
	if m.tr == nil {
		m.mu.Unlock()
		return false
	}
	m.tr.step++
	progress := float64(m.tr.step) / float64(m.steps)
	v := m.tr.start + int(math.Round(float64(m.tr.diff)*progress))
	m.display = clamp(v)
	if m.tr.step >= m.steps {
		m.tr = nil
	}
	more := m.tr != nil
	display := m.display
	m.mu.Unlock()

	m.emit(display)
	return more
}

// Transitioning reports whether Step has work to do.
func (m *Mixer) Transitioning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tr != nil
}

// Generation identifies the current transition.
func (m *Mixer) Generation() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gen
}

// Cancel stops the transition in flight, leaving the volume where the
// last step put it.
func (m *Mixer) Cancel() {
	m.mu.Lock()
	m.cancel()
	m.mu.Unlock()
}

// SetVolume is a manual slider change: it switches auto volume off and
// jumps without animation. A positive volume also unmutes.
func (m *Mixer) SetVolume(v int) {
	m.mu.Lock()
	v = clamp(v)
	m.cancel()
	m.auto = false
	m.display = v
	m.target = v
	if v > 0 && m.muted {
		m.muted = false
	}
	m.mu.Unlock()

	m.emit(v)
}

// Nudge changes the volume by delta like a manual slider move.
func (m *Mixer) Nudge(delta int) {
	m.SetVolume(m.State().Display + delta)
}

// ToggleMute mutes to zero remembering the volume, or restores it.
func (m *Mixer) ToggleMute() {
	m.mu.Lock()
	m.cancel()
	if m.muted {
		m.muted = false
		m.display = m.previous
	} else {
		m.previous = m.display
		m.muted = true
		m.display = 0
	}
	v := m.display
	m.mu.Unlock()

	m.emit(v)
}

// ToggleAutoVolume flips auto mode. Turning it on asks the timer for the
// ramp volume of the current elapsed time.
func (m *Mixer) ToggleAutoVolume() {
	m.mu.Lock()
	m.auto = !m.auto
	enabled := m.auto
	if !enabled {
		m.cancel()
	}
	m.mu.Unlock()

	if enabled {
		m.requestRestore()
	}
}

// EnableAutoVolume turns auto mode on (if needed) and requests the current
// ramp volume.
func (m *Mixer) EnableAutoVolume() {
	m.mu.Lock()
	m.auto = true
	m.mu.Unlock()
	m.requestRestore()
}

func (m *Mixer) requestRestore() {
	if m.bus != nil {
		m.bus.Publish(volsync.RestoreVolumeRequest{})
	}
}

// State returns a copy of the volume state.
func (m *Mixer) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return State{
		Display:  m.display,
		Previous: m.previous,
		Target:   m.target,
		Auto:     m.auto,
		Muted:    m.muted,
	}
}

// Close cancels any transition and unsubscribes from the bus.
func (m *Mixer) Close() {
	m.mu.Lock()
	m.cancel()
	sub := m.sub
	m.sub = nil
	m.mu.Unlock()
	sub.Close()
}

// cancel drops the transition in flight. Callers hold mu.
func (m *Mixer) cancel() {
	if m.tr != nil {
		m.tr = nil
		m.gen++
	}
}

func (m *Mixer) emit(v int) {
	if m.out != nil {
		m.out.SetVolume(v)
	}
}

func clamp(v int) int {
	return max(0, min(v, 100))
}
