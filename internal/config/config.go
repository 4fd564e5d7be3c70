// Package config loads runtime settings from defaults, an optional TOML
// file in the data directory and NEURALFOCUS_* environment variables, in
// that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

// Config holds every tunable of the application.
type Config struct {
	DataDir    string        `env:"NEURALFOCUS_DATA_DIR"`
	Duration   string        `env:"NEURALFOCUS_DURATION"`
	RampPolicy string        `env:"NEURALFOCUS_RAMP_POLICY"`
	CueCommand string        `env:"NEURALFOCUS_CUE_COMMAND"`
	FocusCue   string        `env:"NEURALFOCUS_FOCUS_CUE"`
	BreakCue   string        `env:"NEURALFOCUS_BREAK_CUE"`
	AuthDelay  time.Duration `env:"NEURALFOCUS_AUTH_DELAY"`
	Steps      int           `env:"NEURALFOCUS_TRANSITION_STEPS"`
	StepEvery  time.Duration `env:"NEURALFOCUS_TRANSITION_INTERVAL"`
}

// fileConfig mirrors Config as written in config.toml. Durations are
// strings ("1.5s", "50ms").
type fileConfig struct {
	Duration   string `toml:"duration"`
	RampPolicy string `toml:"ramp_policy"`
	CueCommand string `toml:"cue_command"`
	FocusCue   string `toml:"focus_cue"`
	BreakCue   string `toml:"break_cue"`
	AuthDelay  string `toml:"auth_delay"`
	Steps      int    `toml:"transition_steps"`
	StepEvery  string `toml:"transition_interval"`
}

// Default returns the built-in configuration rooted at dataDir.
func Default(dataDir string) Config {
	return Config{
		DataDir:    dataDir,
		Duration:   "25",
		RampPolicy: "linear",
		FocusCue:   filepath.Join(dataDir, FocusEndCueFile),
		BreakCue:   filepath.Join(dataDir, BreakEndCueFile),
		AuthDelay:  AuthDelay,
		Steps:      TransitionSteps,
		StepEvery:  TransitionInterval,
	}
}

// Load resolves the data directory, then layers the config file and the
// environment on top of the defaults.
func Load() (Config, error) {
	dataDir := os.Getenv("NEURALFOCUS_DATA_DIR")
	if strings.TrimSpace(dataDir) == "" {
		dataDir = DataDir(AppName)
	}
	return LoadFrom(dataDir)
}

// LoadFrom is Load with an explicit data directory.
func LoadFrom(dataDir string) (Config, error) {
	cfg := Default(dataDir)

	if err := cfg.mergeFile(filepath.Join(dataDir, ConfigFile)); err != nil {
		return cfg, err
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	cfg.SetDefault()
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.Duration != "" {
		c.Duration = fc.Duration
	}
	if fc.RampPolicy != "" {
		c.RampPolicy = fc.RampPolicy
	}
	if fc.CueCommand != "" {
		c.CueCommand = fc.CueCommand
	}
	if fc.FocusCue != "" {
		c.FocusCue = fc.FocusCue
	}
	if fc.BreakCue != "" {
		c.BreakCue = fc.BreakCue
	}
	if fc.Steps != 0 {
		c.Steps = fc.Steps
	}
	if fc.AuthDelay != "" {
		d, err := time.ParseDuration(fc.AuthDelay)
		if err != nil {
			return fmt.Errorf("invalid auth_delay %q: %w", fc.AuthDelay, err)
		}
		c.AuthDelay = d
	}
	if fc.StepEvery != "" {
		d, err := time.ParseDuration(fc.StepEvery)
		if err != nil {
			return fmt.Errorf("invalid transition_interval %q: %w", fc.StepEvery, err)
		}
		c.StepEvery = d
	}
	return nil
}

// SetDefault refills fields that a file or environment blanked out.
func (c *Config) SetDefault() {
	def := Default(c.DataDir)
	if c.Duration == "" {
		c.Duration = def.Duration
	}
	if c.RampPolicy == "" {
		c.RampPolicy = def.RampPolicy
	}
	if c.FocusCue == "" {
		c.FocusCue = def.FocusCue
	}
	if c.BreakCue == "" {
		c.BreakCue = def.BreakCue
	}
	if c.AuthDelay < 0 {
		c.AuthDelay = def.AuthDelay
	}
	if c.Steps <= 0 {
		c.Steps = def.Steps
	}
	if c.StepEvery <= 0 {
		c.StepEvery = def.StepEvery
	}
}

// DBPath is the SQLite file inside the data directory.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, DBFileName)
}

// LogPath is where TUI sessions write their log.
func (c Config) LogPath() string {
	return filepath.Join(c.DataDir, LogFile)
}

// DataDir follows XDG_DATA_HOME, falling back to ~/.local/share/<app>.
func DataDir(app string) string {
	if base := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); base != "" {
		return filepath.Join(base, app)
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".", app)
	}
	return filepath.Join(home, ".local", "share", app)
}
