package mixer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/neuralfocus/internal/ramp"
	"github.com/balkashynov/neuralfocus/internal/timer"
	"github.com/balkashynov/neuralfocus/internal/volsync"
)

type recordingOutput struct {
	values []int
}

func (r *recordingOutput) SetVolume(v int) { r.values = append(r.values, v) }

func drain(m *Mixer) int {
	n := 0
	for m.Transitioning() {
		m.Step()
		n++
	}
	return n
}

func TestRampUpdate_AnimatesInTenSteps(t *testing.T) {
	bus := volsync.NewBus()
	out := &recordingOutput{}
	m := New(Options{Volume: 60, Output: out, Bus: bus})
	defer m.Close()

	bus.Publish(volsync.VolumeRampUpdate{Volume: 50, Phase: 2})

	require.True(t, m.Transitioning())
	assert.Equal(t, 10, drain(m))
	assert.Equal(t, []int{59, 58, 57, 56, 55, 54, 53, 52, 51, 50}, out.values)
	assert.Equal(t, 50, m.State().Display)
	assert.False(t, m.Step(), "no work left")
}

func TestApply_SameVolumeIsNoop(t *testing.T) {
	m := New(Options{Volume: 60})
	assert.False(t, m.Apply(60))
	assert.False(t, m.Transitioning())
}

func TestApply_ReplacesInFlightTransition(t *testing.T) {
	out := &recordingOutput{}
	m := New(Options{Volume: 60, Output: out})

	require.True(t, m.Apply(40))
	gen := m.Generation()
	m.Step()
	m.Step()
	assert.Equal(t, 56, m.State().Display)

	require.True(t, m.Apply(66))
	assert.NotEqual(t, gen, m.Generation())
	assert.Equal(t, 10, drain(m), "replacement restarts the step count")
	assert.Equal(t, 66, m.State().Display)
}

func TestManualOverride_DisablesAuto(t *testing.T) {
	bus := volsync.NewBus()
	out := &recordingOutput{}
	m := New(Options{Volume: 60, Output: out, Bus: bus})
	defer m.Close()

	bus.Publish(volsync.VolumeRampUpdate{Volume: 40, Phase: 3})
	m.Step()
	m.SetVolume(75)

	s := m.State()
	assert.False(t, s.Auto)
	assert.Equal(t, 75, s.Display)
	assert.False(t, m.Transitioning(), "manual change cancels the animation")

	bus.Publish(volsync.VolumeRampUpdate{Volume: 50, Phase: 2})
	drain(m)
	assert.Equal(t, 75, m.State().Display, "ramp must not move a manual volume")
	assert.Equal(t, 75, out.values[len(out.values)-1])
}

func TestSetVolume_Clamps(t *testing.T) {
	m := New(Options{Volume: 50})
	m.SetVolume(140)
	assert.Equal(t, 100, m.State().Display)
	m.Nudge(-200)
	assert.Equal(t, 0, m.State().Display)
}

func TestToggleMute_RoundTrip(t *testing.T) {
	for _, v := range []int{0, 1, 37, 57, 100} {
		out := &recordingOutput{}
		m := New(Options{Volume: v, Output: out})

		m.ToggleMute()
		assert.True(t, m.State().Muted)
		assert.Equal(t, 0, m.State().Display)

		m.ToggleMute()
		assert.False(t, m.State().Muted)
		assert.Equal(t, v, m.State().Display)
		assert.Equal(t, []int{0, v}, out.values)
	}
}

func TestMuted_IgnoresRampAndUnmutesOnManualVolume(t *testing.T) {
	m := New(Options{Volume: 60})
	m.ToggleMute()

	assert.False(t, m.Apply(40))
	assert.Equal(t, 0, m.State().Display)

	m.SetVolume(30)
	assert.False(t, m.State().Muted)
	assert.Equal(t, 30, m.State().Display)
}

func TestToggleAutoVolume_RestoresTimerVolume(t *testing.T) {
	bus := volsync.NewBus()
	tm, err := timer.New(timer.Options{Preset: ramp.Pomodoro, Policy: ramp.Step, Bus: bus})
	require.NoError(t, err)
	defer tm.Close()

	m := New(Options{Volume: 57, Bus: bus})
	defer m.Close()

	require.NoError(t, tm.Start())
	drain(m)
	assert.Equal(t, 60, m.State().Display)

	for i := 0; i < 1000; i++ {
		tm.Tick()
		drain(m)
	}
	m.SetVolume(90)

	m.ToggleAutoVolume()
	require.True(t, m.State().Auto)
	drain(m)

	assert.Equal(t, 40, m.State().Display, "phase 3 volume for 1000s elapsed")
	assert.Equal(t, 1000, tm.Snapshot().Elapsed, "restore leaves the countdown alone")
}

func TestToggleAutoVolume_OffCancelsTransition(t *testing.T) {
	m := New(Options{Volume: 60})
	require.True(t, m.Apply(20))
	gen := m.Generation()

	m.ToggleAutoVolume()

	assert.False(t, m.State().Auto)
	assert.False(t, m.Transitioning())
	assert.NotEqual(t, gen, m.Generation())
}

func TestCancel_HoldsCurrentVolume(t *testing.T) {
	out := &recordingOutput{}
	m := New(Options{Volume: 60, Output: out})
	require.True(t, m.Apply(50))
	gen := m.Generation()
	m.Step()
	m.Step()

	m.Cancel()

	assert.False(t, m.Transitioning())
	assert.NotEqual(t, gen, m.Generation())
	assert.False(t, m.Step())
	assert.Equal(t, 58, m.State().Display)
	assert.Equal(t, []int{59, 58}, out.values)

	// nothing in flight: the generation stays put
	gen = m.Generation()
	m.Cancel()
	assert.Equal(t, gen, m.Generation())
}

func TestEnableAutoVolume(t *testing.T) {
	bus := volsync.NewBus()
	requests := 0
	bus.Subscribe(func(msg volsync.Message) {
		if _, ok := msg.(volsync.RestoreVolumeRequest); ok {
			requests++
			bus.Publish(volsync.RestoreVolumeResponse{Volume: 45, Phase: 2})
		}
	})

	m := New(Options{Volume: 60, Bus: bus})
	m.SetVolume(10)
	m.EnableAutoVolume()
	drain(m)

	assert.Equal(t, 1, requests)
	assert.Equal(t, 45, m.State().Display)
}

func TestClose_StopsListening(t *testing.T) {
	bus := volsync.NewBus()
	m := New(Options{Volume: 60, Bus: bus})
	m.Close()

	bus.Publish(volsync.VolumeRampUpdate{Volume: 10})
	assert.False(t, m.Transitioning())
	assert.Equal(t, 0, bus.Len())
}

func TestStepsAreBounded(t *testing.T) {
	m := New(Options{Volume: 0, Steps: 500})
	require.True(t, m.Apply(100))
	assert.Equal(t, maxSteps, drain(m))
}
