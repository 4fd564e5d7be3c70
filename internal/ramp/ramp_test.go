package ramp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVolumeFor_BoundsForEveryElapsedSecond(t *testing.T) {
	for _, p := range Presets {
		for _, policy := range []Policy{Step, Linear} {
			phases := p.Phases()
			for elapsed := 0; elapsed <= p.Seconds(); elapsed++ {
				phase, vol := VolumeFor(p, policy, elapsed)
				if phase < 1 || phase > len(phases) {
					t.Fatalf("%s/%s elapsed=%d: phase %d out of range", p.Label(), policy, elapsed, phase)
				}
				if vol < 0 || vol > 100 {
					t.Fatalf("%s/%s elapsed=%d: volume %d out of range", p.Label(), policy, elapsed, vol)
				}
			}
		}
	}
}

func TestVolumeFor_ZeroElapsedIsFirstPhase(t *testing.T) {
	for _, p := range Presets {
		first := p.Phases()[0].Volume
		for _, policy := range []Policy{Step, Linear} {
			phase, vol := VolumeFor(p, policy, 0)
			assert.Equal(t, 1, phase)
			assert.Equal(t, first, vol, "%s/%s", p.Label(), policy)
		}
	}
}

func TestVolumeFor_Step(t *testing.T) {
	tests := []struct {
		elapsed   int
		wantPhase int
		wantVol   int
	}{
		{0, 1, 60},
		{300, 1, 60},
		{301, 2, 50},
		{900, 2, 50},
		{901, 3, 40},
		{1440, 3, 40},
		{1441, 4, 60},
		{1500, 4, 60},
	}

	for _, tt := range tests {
		phase, vol := VolumeFor(Pomodoro, Step, tt.elapsed)
		assert.Equal(t, tt.wantPhase, phase, "elapsed=%d", tt.elapsed)
		assert.Equal(t, tt.wantVol, vol, "elapsed=%d", tt.elapsed)
	}
}

func TestVolumeFor_Linear(t *testing.T) {
	tests := []struct {
		name      string
		elapsed   int
		wantPhase int
		wantVol   int
	}{
		{"Phase one is flat", 150, 1, 60},
		{"Phase one end", 300, 1, 60},
		{"Midway through phase two", 600, 2, 55},
		{"Phase two end", 900, 2, 50},
		{"Midway through phase three", 1170, 3, 45},
		{"Midway through phase four", 1470, 4, 50},
		{"Session end", 1500, 4, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			phase, vol := VolumeFor(Pomodoro, Linear, tt.elapsed)
			assert.Equal(t, tt.wantPhase, phase)
			assert.Equal(t, tt.wantVol, vol)
		})
	}
}

func TestVolumeFor_ClampsElapsed(t *testing.T) {
	phase, vol := VolumeFor(Cycle, Step, -50)
	assert.Equal(t, 1, phase)
	assert.Equal(t, 60, vol)

	phase, vol = VolumeFor(Cycle, Linear, 99999)
	assert.Equal(t, 4, phase)
	assert.Equal(t, 60, vol)
}

func TestVolumeFor_UnknownPreset(t *testing.T) {
	phase, vol := VolumeFor(Preset(42), Step, 10)
	assert.Equal(t, 1, phase)
	assert.Equal(t, 0, vol)
}

func TestTablesAreWellFormed(t *testing.T) {
	for _, p := range Presets {
		rows := p.Phases()
		require.NotEmpty(t, rows)
		for i := 1; i < len(rows); i++ {
			assert.Greater(t, rows[i].Until, rows[i-1].Until, "%s thresholds must increase", p.Label())
		}
		assert.Equal(t, p.Seconds(), rows[len(rows)-1].Until, "%s last threshold must equal duration", p.Label())
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    Preset
		wantErr bool
	}{
		{"25", Pomodoro, false},
		{"90m", Cycle, false},
		{"3h", DeepWork, false},
		{" 360 ", Extended, false},
		{"6H", Extended, false},
		{"45", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParsePreset(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrUnknownPreset, "input %q", tt.in)
			continue
		}
		assert.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestBreakSeconds(t *testing.T) {
	assert.Equal(t, 300, Pomodoro.BreakSeconds())
	assert.Equal(t, 900, Cycle.BreakSeconds())
	assert.Equal(t, 1800, DeepWork.BreakSeconds())
	assert.Equal(t, 1800, Extended.BreakSeconds())
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("STEP")
	assert.NoError(t, err)
	assert.Equal(t, Step, p)

	p, err = ParsePolicy("")
	assert.NoError(t, err)
	assert.Equal(t, Linear, p)

	_, err = ParsePolicy("cubic")
	assert.Error(t, err)
}

func TestPresetLabels(t *testing.T) {
	assert.Equal(t, "25m", Pomodoro.Label())
	assert.Equal(t, "90m", Cycle.Label())
	assert.Equal(t, "3h", DeepWork.Label())
	assert.Equal(t, "180", DeepWork.Selector())
	assert.True(t, Extended.Valid())
	assert.False(t, Preset(60).Valid())
}
