package config

import "time"

// Application identity.
const (
	AppName    = "neuralfocus"
	DBFileName = "neuralfocus.db"
	LogFile    = "neuralfocus.log"
	ConfigFile = "config.toml"
)

// Break length bounds in seconds.
const (
	MinBreakSeconds = 60
	MaxBreakSeconds = 1800
)

// Mixer animation.
const (
	// TransitionSteps is the number of discrete steps of one volume transition.
	TransitionSteps = 10

	// TransitionInterval is the delay between two transition steps.
	TransitionInterval = 50 * time.Millisecond
)

// TickInterval drives the session countdown.
const TickInterval = time.Second

// Auth stub.
const AuthDelay = 1500 * time.Millisecond

// Cue file names looked up in the data directory.
const (
	FocusEndCueFile = "notification.mp3"
	BreakEndCueFile = "break-end.mp3"
)
