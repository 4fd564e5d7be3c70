// Package timer is the focus/break session state machine.
//
// A Timer does no scheduling of its own: the owner calls Tick once per
// elapsed second while the session runs. Ramp volume changes are published
// on a volsync.Bus; the timer also answers RestoreVolumeRequest messages
// from that bus.
package timer

import (
	"errors"
	"fmt"
	"log"

	"github.com/balkashynov/neuralfocus/internal/audio"
	"github.com/balkashynov/neuralfocus/internal/config"
	"github.com/balkashynov/neuralfocus/internal/ramp"
	"github.com/balkashynov/neuralfocus/internal/volsync"
)

var (
	ErrBreakRunning = errors.New("break duration cannot change while the break is running")
	ErrInvalidBreak = fmt.Errorf("break must be between %d and %d seconds", config.MinBreakSeconds, config.MaxBreakSeconds)
	ErrInBreak      = errors.New("not available during a break")
	ErrNotInBreak   = errors.New("no break in progress")
)

// State of the session.
type State int

const (
	Idle State = iota
	FocusRunning
	FocusPaused
	BreakRunning
	BreakPaused
)

func (s State) String() string {
	switch s {
	case FocusRunning:
		return "focus"
	case FocusPaused:
		return "focus (paused)"
	case BreakRunning:
		return "break"
	case BreakPaused:
		return "break (paused)"
	}
	return "idle"
}

// Running reports whether the countdown advances on Tick.
func (s State) Running() bool { return s == FocusRunning || s == BreakRunning }

// Mode is the phase kind derived from the state.
type Mode int

const (
	Focus Mode = iota
	Break
)

func (m Mode) String() string {
	if m == Break {
		return "break"
	}
	return "focus"
}

// Options configure a Timer.
type Options struct {
	Preset ramp.Preset
	Policy ramp.Policy

	// Bus receives ramp updates. Optional.
	Bus *volsync.Bus

	// Cues plays the end-of-focus and end-of-break sounds. Optional.
	Cues audio.Player

	// OnFocusComplete runs after every natural focus expiry.
	OnFocusComplete func(Snapshot)
}

// Timer owns the countdown state of one focus session and its breaks.
type Timer struct {
	schedule ramp.Schedule
	state    State

	remaining         int
	breakDuration     int
	breakRemaining    int
	sessionsCompleted int

	phase  int
	volume int

	// last published ramp target
	emitted    bool
	lastPhase  int
	lastVolume int

	bus             *volsync.Bus
	sub             *volsync.Subscription
	cues            audio.Player
	onFocusComplete func(Snapshot)
}

// New builds an idle timer for opts.Preset.
func New(opts Options) (*Timer, error) {
	if !opts.Preset.Valid() {
		return nil, fmt.Errorf("%w: %d seconds", ramp.ErrUnknownPreset, opts.Preset)
	}

	t := &Timer{
		schedule:        ramp.Schedule{Preset: opts.Preset, Policy: opts.Policy},
		state:           Idle,
		breakDuration:   opts.Preset.BreakSeconds(),
		bus:             opts.Bus,
		cues:            opts.Cues,
		onFocusComplete: opts.OnFocusComplete,
	}
	t.resetFocus()
	t.breakRemaining = t.breakDuration

	if t.bus != nil {
		t.sub = t.bus.Subscribe(t.handle)
	}
	return t, nil
}

func (t *Timer) handle(msg volsync.Message) {
	if _, ok := msg.(volsync.RestoreVolumeRequest); ok {
		t.RestoreFocusVolume()
	}
}

// Close detaches the timer from its bus.
func (t *Timer) Close() {
	t.sub.Close()
	t.sub = nil
}

// State returns the current state.
func (t *Timer) State() State { return t.state }

// Mode is Break in either break state and Focus otherwise.
func (t *Timer) Mode() Mode {
	if t.state == BreakRunning || t.state == BreakPaused {
		return Break
	}
	return Focus
}

// Elapsed is always Duration minus Remaining.
func (t *Timer) Elapsed() int { return t.schedule.Preset.Seconds() - t.remaining }

// Start enters FocusRunning from Idle or FocusPaused and publishes the ramp
// volume for the current position (phase 1 on a fresh session).
func (t *Timer) Start() error {
	switch t.state {
	case FocusRunning:
		return nil
	case BreakRunning, BreakPaused:
		return ErrInBreak
	}
	t.state = FocusRunning
	t.updateRamp(true)
	return nil
}

// Pause freezes the running countdown of either mode.
func (t *Timer) Pause() {
	switch t.state {
	case FocusRunning:
		t.state = FocusPaused
	case BreakRunning:
		t.state = BreakPaused
	}
}

// Resume continues a paused countdown. Resuming an idle timer starts it.
func (t *Timer) Resume() {
	switch t.state {
	case Idle:
		_ = t.Start()
	case FocusPaused:
		t.state = FocusRunning
	case BreakPaused:
		t.state = BreakRunning
	}
}

// Toggle is the play/pause button.
func (t *Timer) Toggle() {
	switch t.state {
	case FocusRunning, BreakRunning:
		t.Pause()
	case Idle, FocusPaused:
		_ = t.Start()
	default:
		t.Resume()
	}
}

// Tick advances the running countdown by one second.
func (t *Timer) Tick() {
	switch t.state {
	case FocusRunning:
		if t.remaining > 0 {
			t.remaining--
		}
		t.updateRamp(false)
		if t.remaining == 0 {
			t.finishFocus()
		}
	case BreakRunning:
		if t.breakRemaining > 0 {
			t.breakRemaining--
		}
		if t.breakRemaining == 0 {
			t.finishBreak()
		}
	}
}

func (t *Timer) finishFocus() {
	t.state = BreakRunning
	t.sessionsCompleted++
	t.breakRemaining = t.breakDuration

	t.playCue(audio.FocusEnd)
	if t.onFocusComplete != nil {
		t.onFocusComplete(t.Snapshot())
	}
}

func (t *Timer) finishBreak() {
	t.playCue(audio.BreakEnd)
	t.beginFocus()
}

// beginFocus starts a fresh focus countdown after a break.
func (t *Timer) beginFocus() {
	t.state = FocusRunning
	t.breakRemaining = t.breakDuration
	t.resetFocus()
	t.updateRamp(true)
}

func (t *Timer) playCue(c audio.Cue) {
	if t.cues == nil {
		return
	}
	if err := t.cues.Play(c); err != nil {
		log.Printf("audio cue %s: %v", c, err)
	}
}

// Reset stops the session and rewinds the focus countdown to the full
// duration. The mixer is sent back to the phase 1 volume.
func (t *Timer) Reset() {
	if t.state != Idle {
		t.state = FocusPaused
	}
	t.breakRemaining = t.breakDuration
	t.resetFocus()
	t.updateRamp(true)
}

// ChangeDuration switches preset. A running focus session is stopped and
// the break length follows the preset.
func (t *Timer) ChangeDuration(p ramp.Preset) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %d seconds", ramp.ErrUnknownPreset, p)
	}
	if t.Mode() == Break {
		return ErrInBreak
	}
	if t.state == FocusRunning {
		t.state = FocusPaused
	}
	t.schedule.Preset = p
	t.breakDuration = p.BreakSeconds()
	t.breakRemaining = t.breakDuration
	t.resetFocus()
	return nil
}

// SetBreakDuration changes the break length unless the break is running.
func (t *Timer) SetBreakDuration(seconds int) error {
	if t.state == BreakRunning {
		return ErrBreakRunning
	}
	if seconds < config.MinBreakSeconds || seconds > config.MaxBreakSeconds {
		return ErrInvalidBreak
	}
	t.breakDuration = seconds
	t.breakRemaining = seconds
	return nil
}

// SkipBreak ends the break immediately and starts the next focus countdown.
func (t *Timer) SkipBreak() error {
	if t.Mode() != Break {
		return ErrNotInBreak
	}
	t.beginFocus()
	return nil
}

// RestoreFocusVolume recomputes the ramp for the current elapsed time and
// publishes it as a RestoreVolumeResponse.
func (t *Timer) RestoreFocusVolume() (phase, volume int) {
	t.phase, t.volume = t.schedule.VolumeFor(t.Elapsed())
	if t.bus != nil {
		t.bus.Publish(volsync.RestoreVolumeResponse{Volume: t.volume, Phase: t.phase})
	}
	return t.phase, t.volume
}

func (t *Timer) resetFocus() {
	t.remaining = t.schedule.Preset.Seconds()
	t.phase, t.volume = t.schedule.VolumeFor(0)
	t.emitted = false
}

// updateRamp publishes a VolumeRampUpdate when the phase or the target
// volume differs from the last one published, or when force is set.
func (t *Timer) updateRamp(force bool) {
	elapsed := t.Elapsed()
	t.phase, t.volume = t.schedule.VolumeFor(elapsed)

	if !force && t.emitted && t.phase == t.lastPhase && t.volume == t.lastVolume {
		return
	}
	t.emitted = true
	t.lastPhase, t.lastVolume = t.phase, t.volume

	if t.bus != nil {
		t.bus.Publish(volsync.VolumeRampUpdate{
			Volume:         t.volume,
			Phase:          t.phase,
			ElapsedSeconds: elapsed,
			TotalSeconds:   t.schedule.Preset.Seconds(),
		})
	}
}
