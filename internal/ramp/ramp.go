// Package ramp maps elapsed focus time to a target volume.
//
// Every preset carries a phase table of (threshold, volume) rows. The row
// whose threshold is the first one at or past the elapsed time is the
// current phase. Two policies turn that row into a volume: Step returns the
// row's volume, Linear interpolates from the end of the previous row.
package ramp

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownPreset is returned for duration selectors outside the fixed set.
var ErrUnknownPreset = errors.New("unknown session duration")

// Preset is a focus session length in seconds.
type Preset int

const (
	Pomodoro Preset = 25 * 60  // 1500
	Cycle    Preset = 90 * 60  // 5400
	DeepWork Preset = 180 * 60 // 10800
	Extended Preset = 360 * 60 // 21600
)

// Presets lists every valid preset in display order.
var Presets = []Preset{Pomodoro, Cycle, DeepWork, Extended}

// Phase is one row of a ramp table.
type Phase struct {
	Until  int // threshold in elapsed seconds, inclusive
	Volume int // percent
}

var tables = map[Preset][]Phase{
	Pomodoro: {
		{Until: 5 * 60, Volume: 60},
		{Until: 15 * 60, Volume: 50},
		{Until: 24 * 60, Volume: 40},
		{Until: 25 * 60, Volume: 60},
	},
	Cycle: {
		{Until: 10 * 60, Volume: 60},
		{Until: 45 * 60, Volume: 50},
		{Until: 80 * 60, Volume: 40},
		{Until: 90 * 60, Volume: 60},
	},
	DeepWork: {
		{Until: 20 * 60, Volume: 60},
		{Until: 90 * 60, Volume: 50},
		{Until: 170 * 60, Volume: 40},
		{Until: 180 * 60, Volume: 60},
	},
	Extended: {
		{Until: 20 * 60, Volume: 60},
		{Until: 90 * 60, Volume: 50},
		{Until: 180 * 60, Volume: 40},
		{Until: 360 * 60, Volume: 60},
	},
}

// Seconds returns the preset length in seconds.
func (p Preset) Seconds() int { return int(p) }

// Valid reports whether p is one of the fixed presets.
func (p Preset) Valid() bool {
	_, ok := tables[p]
	return ok
}

// Selector is the short form used on the command line and in storage.
func (p Preset) Selector() string {
	return fmt.Sprintf("%d", int(p)/60)
}

// Label is a human readable length ("25m", "3h").
func (p Preset) Label() string {
	switch p {
	case DeepWork:
		return "3h"
	case Extended:
		return "6h"
	default:
		return fmt.Sprintf("%dm", int(p)/60)
	}
}

// Description matches the session style of each preset.
func (p Preset) Description() string {
	switch p {
	case Pomodoro:
		return "Pomodoro focus (25 min)"
	case Cycle:
		return "Basic sleep cycle (90 min)"
	case DeepWork:
		return "Deep work session (3 hours)"
	case Extended:
		return "Extended flow state (6 hours)"
	}
	return ""
}

// Phases returns a copy of the preset's ramp table.
func (p Preset) Phases() []Phase {
	return append([]Phase(nil), tables[p]...)
}

// BreakSeconds is the default break following a preset.
func (p Preset) BreakSeconds() int {
	switch p {
	case Pomodoro:
		return 5 * 60
	case Cycle:
		return 15 * 60
	default:
		return 30 * 60
	}
}

// ParsePreset accepts "25", "90", "180", "360" and the labels "25m", "90m",
// "3h", "6h".
func ParsePreset(selector string) (Preset, error) {
	s := strings.ToLower(strings.TrimSpace(selector))
	switch s {
	case "25", "25m":
		return Pomodoro, nil
	case "90", "90m":
		return Cycle, nil
	case "180", "180m", "3h":
		return DeepWork, nil
	case "360", "360m", "6h":
		return Extended, nil
	}
	return 0, fmt.Errorf("%w %q: use 25, 90, 180 or 360", ErrUnknownPreset, selector)
}

// Policy selects how a phase row becomes a volume.
type Policy int

const (
	Linear Policy = iota
	Step
)

func (p Policy) String() string {
	if p == Step {
		return "step"
	}
	return "linear"
}

// ParsePolicy accepts "linear" and "step".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "linear", "interpolate":
		return Linear, nil
	case "step":
		return Step, nil
	}
	return Linear, fmt.Errorf("unknown ramp policy %q: use linear or step", s)
}

// Schedule binds a policy to a preset.
type Schedule struct {
	Preset Preset
	Policy Policy
}

// VolumeFor returns the 1-based phase index and the target volume for the
// given elapsed seconds.
func (s Schedule) VolumeFor(elapsed int) (phase, volume int) {
	return VolumeFor(s.Preset, s.Policy, elapsed)
}

// VolumeFor is the pure ramp lookup. elapsed is clamped to [0, duration].
// An invalid preset yields phase 1 at volume 0.
func VolumeFor(p Preset, policy Policy, elapsed int) (phase, volume int) {
	rows := tables[p]
	if len(rows) == 0 {
		return 1, 0
	}

	elapsed = max(0, min(elapsed, p.Seconds()))

	i := 0
	for i < len(rows)-1 && elapsed > rows[i].Until {
		i++
	}
	cur := rows[i]

	if policy == Step {
		return i + 1, cur.Volume
	}

	prevEnd, prevVol := 0, rows[0].Volume
	if i > 0 {
		prevEnd, prevVol = rows[i-1].Until, rows[i-1].Volume
	}
	span := cur.Until - prevEnd
	if span <= 0 {
		return i + 1, cur.Volume
	}
	frac := float64(elapsed-prevEnd) / float64(span)
	v := float64(prevVol) + float64(cur.Volume-prevVol)*frac
	return i + 1, clampPercent(int(math.Round(v)))
}

func clampPercent(v int) int {
	return max(0, min(v, 100))
}
