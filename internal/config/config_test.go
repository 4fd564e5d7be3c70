package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, "25", cfg.Duration)
	assert.Equal(t, "linear", cfg.RampPolicy)
	assert.Equal(t, filepath.Join(dir, FocusEndCueFile), cfg.FocusCue)
	assert.Equal(t, filepath.Join(dir, BreakEndCueFile), cfg.BreakCue)
	assert.Equal(t, AuthDelay, cfg.AuthDelay)
	assert.Equal(t, TransitionSteps, cfg.Steps)
	assert.Equal(t, TransitionInterval, cfg.StepEvery)
	assert.Equal(t, filepath.Join(dir, DBFileName), cfg.DBPath())
}

func TestLoadFrom_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	file := `duration = "90"
ramp_policy = "step"
cue_command = "paplay"
auth_delay = "200ms"
transition_steps = 5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte(file), 0o644))

	t.Setenv("NEURALFOCUS_DURATION", "360")

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, "360", cfg.Duration, "environment should win over the file")
	assert.Equal(t, "step", cfg.RampPolicy)
	assert.Equal(t, "paplay", cfg.CueCommand)
	assert.Equal(t, 200*time.Millisecond, cfg.AuthDelay)
	assert.Equal(t, 5, cfg.Steps)
	assert.Equal(t, TransitionInterval, cfg.StepEvery)
}

func TestLoadFrom_InvalidFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"Broken TOML", "duration = "},
		{"Bad auth delay", `auth_delay = "soon"`},
		{"Bad interval", `transition_interval = "fast"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte(tt.content), 0o644))

			_, err := LoadFrom(dir)
			assert.Error(t, err)
		})
	}
}

func TestSetDefault(t *testing.T) {
	cfg := Config{DataDir: "/tmp/nf", Steps: -1, AuthDelay: -time.Second}
	cfg.SetDefault()

	assert.Equal(t, "25", cfg.Duration)
	assert.Equal(t, "linear", cfg.RampPolicy)
	assert.Equal(t, TransitionSteps, cfg.Steps)
	assert.Equal(t, AuthDelay, cfg.AuthDelay)
	assert.Equal(t, filepath.Join("/tmp/nf", FocusEndCueFile), cfg.FocusCue)
}

func TestDataDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", AppName), DataDir(AppName))
}
