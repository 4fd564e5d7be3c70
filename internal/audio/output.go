// Package audio is the playback side of the mixer: volume outputs and the
// end-of-phase cue players.
package audio

import (
	"math"
	"sync"
)

// Output receives the mixer's display volume (0..100) on every change.
type Output interface {
	SetVolume(percent int)
}

// OutputFunc adapts a function to Output.
type OutputFunc func(percent int)

func (f OutputFunc) SetVolume(percent int) { f(percent) }

// Scale converts a percentage to the 0.0..1.0 gain used by players.
func Scale(percent int) float64 {
	p := math.Max(0, math.Min(float64(percent), 100))
	return p / 100
}

// Level keeps the last gain written to it.
type Level struct {
	mu      sync.Mutex
	percent int
	writes  int
}

func (l *Level) SetVolume(percent int) {
	l.mu.Lock()
	l.percent = percent
	l.writes++
	l.mu.Unlock()
}

// Percent is the last volume received.
func (l *Level) Percent() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.percent
}

// Gain is Percent scaled to 0.0..1.0.
func (l *Level) Gain() float64 {
	return Scale(l.Percent())
}

// Writes counts SetVolume calls.
func (l *Level) Writes() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.writes
}

// Fanout forwards each volume to every output in order.
type Fanout []Output

func (f Fanout) SetVolume(percent int) {
	for _, o := range f {
		if o != nil {
			o.SetVolume(percent)
		}
	}
}
