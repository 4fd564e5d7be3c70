package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/balkashynov/neuralfocus/internal/config"
	"github.com/balkashynov/neuralfocus/internal/ramp"
)

var breakRegex = regexp.MustCompile(`^(\d+)\s*(s|sec|secs|seconds?|m|min|mins|minutes?)?$`)

// ParseDuration parses a focus duration selector
// Supported formats: "25", "90", "180", "360" and "25m", "90m", "3h", "6h"
func ParseDuration(input string) (ramp.Preset, error) {
	return ramp.ParsePreset(input)
}

// ParseBreakDuration parses a break length into seconds
// Supported formats:
// - X (minutes, e.g. "5")
// - Xm / X min (e.g. "15m")
// - Xs / X sec (e.g. "300s")
// The result must lie within the allowed break range
func ParseBreakDuration(input string) (int, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	matches := breakRegex.FindStringSubmatch(input)
	if len(matches) != 3 {
		return 0, fmt.Errorf("invalid break format. Use: X, Xm or Xs")
	}

	n, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, fmt.Errorf("invalid number")
	}

	seconds := n * 60
	if strings.HasPrefix(matches[2], "s") {
		seconds = n
	}

	if seconds < config.MinBreakSeconds || seconds > config.MaxBreakSeconds {
		return 0, fmt.Errorf("break must be between %d and %d minutes", config.MinBreakSeconds/60, config.MaxBreakSeconds/60)
	}
	return seconds, nil
}
