package audio

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScale(t *testing.T) {
	assert.Equal(t, 0.0, Scale(-5))
	assert.Equal(t, 0.57, Scale(57))
	assert.Equal(t, 1.0, Scale(140))
}

func TestLevelAndFanout(t *testing.T) {
	var a, b Level
	var seen []int
	out := Fanout{&a, nil, &b, OutputFunc(func(p int) { seen = append(seen, p) })}

	out.SetVolume(40)
	out.SetVolume(45)

	assert.Equal(t, 45, a.Percent())
	assert.Equal(t, 45, b.Percent())
	assert.Equal(t, 2, a.Writes())
	assert.InDelta(t, 0.45, b.Gain(), 1e-9)
	assert.Equal(t, []int{40, 45}, seen)
}

func TestBellPlayer(t *testing.T) {
	var buf bytes.Buffer
	p := BellPlayer{W: &buf}

	require.NoError(t, p.Play(FocusEnd))
	require.NoError(t, p.Play(BreakEnd))
	assert.Equal(t, "\a\a", buf.String())
	assert.NoError(t, BellPlayer{}.Play(FocusEnd))
}

func TestCommandPlayer_Errors(t *testing.T) {
	dir := t.TempDir()
	cue := filepath.Join(dir, "notification.mp3")
	require.NoError(t, os.WriteFile(cue, []byte("x"), 0o644))

	t.Run("Missing file", func(t *testing.T) {
		p := NewCommandPlayer("true", map[Cue]string{FocusEnd: filepath.Join(dir, "nope.mp3")})
		assert.Error(t, p.Play(FocusEnd))
	})

	t.Run("Unconfigured cue", func(t *testing.T) {
		p := NewCommandPlayer("true", map[Cue]string{FocusEnd: cue})
		assert.Error(t, p.Play(BreakEnd))
	})

	t.Run("Empty command", func(t *testing.T) {
		p := NewCommandPlayer("  ", map[Cue]string{FocusEnd: cue})
		assert.Error(t, p.Play(FocusEnd))
	})

	t.Run("Unknown binary", func(t *testing.T) {
		p := NewCommandPlayer("definitely-not-a-player-binary", map[Cue]string{FocusEnd: cue})
		assert.Error(t, p.Play(FocusEnd))
	})

	t.Run("Closed", func(t *testing.T) {
		p := NewCommandPlayer("true", map[Cue]string{FocusEnd: cue})
		require.NoError(t, p.Close())
		assert.ErrorIs(t, p.Play(FocusEnd), ErrClosed)
	})
}

func TestOpen(t *testing.T) {
	var buf bytes.Buffer
	_, isBell := Open("", "a", "b", &buf).(BellPlayer)
	assert.True(t, isBell)

	p, isCmd := Open("paplay", "a", "b", &buf).(*CommandPlayer)
	require.True(t, isCmd)
	assert.Equal(t, "a", p.Files[FocusEnd])
	assert.Equal(t, "b", p.Files[BreakEnd])
}
