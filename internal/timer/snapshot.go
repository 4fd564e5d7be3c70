package timer

import "github.com/balkashynov/neuralfocus/internal/ramp"

// Snapshot is a read-only copy of the timer for rendering and hooks.
type Snapshot struct {
	State             State
	Mode              Mode
	Preset            ramp.Preset
	Policy            ramp.Policy
	Duration          int
	Remaining         int
	Elapsed           int
	BreakDuration     int
	BreakRemaining    int
	SessionsCompleted int
	Phase             int
	PhaseCount        int
	Volume            int
}

// Snapshot captures the current state.
func (t *Timer) Snapshot() Snapshot {
	return Snapshot{
		State:             t.state,
		Mode:              t.Mode(),
		Preset:            t.schedule.Preset,
		Policy:            t.schedule.Policy,
		Duration:          t.schedule.Preset.Seconds(),
		Remaining:         t.remaining,
		Elapsed:           t.Elapsed(),
		BreakDuration:     t.breakDuration,
		BreakRemaining:    t.breakRemaining,
		SessionsCompleted: t.sessionsCompleted,
		Phase:             t.phase,
		PhaseCount:        len(t.schedule.Preset.Phases()),
		Volume:            t.volume,
	}
}

// Progress is the completed fraction of the current countdown.
func (s Snapshot) Progress() float64 {
	if s.Mode == Break {
		if s.BreakDuration == 0 {
			return 0
		}
		return float64(s.BreakDuration-s.BreakRemaining) / float64(s.BreakDuration)
	}
	if s.Duration == 0 {
		return 0
	}
	return float64(s.Elapsed) / float64(s.Duration)
}
