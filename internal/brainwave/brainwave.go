// Package brainwave is the static catalog behind the mode selector and the
// tips panel.
package brainwave

import "strings"

// Mode is one selectable brainwave band.
type Mode struct {
	ID          string
	Name        string
	Range       string
	Summary     string
	Description string
	Tips        []string
}

// Default is used for unknown or empty mode ids.
const Default = "alpha"

var modes = []Mode{
	{
		ID:          "delta",
		Name:        "Delta",
		Range:       "0.5-4 Hz",
		Summary:     "Deep sleep, healing",
		Description: "Associated with deep, dreamless sleep and healing. Essential for physical recovery and immune function.",
		Tips: []string{
			"Limit blue light exposure before deep rest sessions",
			"Maintain a cool room temperature (65-68°F/18-20°C) for optimal recovery",
			"Practice progressive muscle relaxation to enhance delta wave production",
		},
	},
	{
		ID:          "theta",
		Name:        "Theta",
		Range:       "4-8 Hz",
		Summary:     "Meditation, creativity",
		Description: "Present during meditation, daydreaming, and REM sleep. Enhances creativity and emotional processing.",
		Tips: []string{
			"Try open monitoring meditation to enhance theta waves",
			"Engage in creative visualization before problem-solving",
			"Schedule creative work during your natural energy dips",
		},
	},
	{
		ID:          "alpha",
		Name:        "Alpha",
		Range:       "8-13 Hz",
		Summary:     "Relaxed focus, learning",
		Description: "The bridge between conscious and subconscious. Optimal for learning, relaxed focus, and flow states.",
		Tips: []string{
			"Take short breaks every 25 minutes to maintain alpha state",
			"Use peripheral vision exercises to induce alpha waves",
			"Practice mindful breathing for 2 minutes before starting work",
		},
	},
	{
		ID:          "beta",
		Name:        "Beta",
		Range:       "13-30 Hz",
		Summary:     "Active thinking, problem solving",
		Description: "Dominant during active thinking, problem-solving, and focused tasks requiring alertness.",
		Tips: []string{
			"Consume 200-400mg of caffeine for enhanced beta wave activity",
			"Use active recall techniques when learning new information",
			"Alternate between standing and sitting to maintain alertness",
		},
	},
	{
		ID:          "gamma",
		Name:        "Gamma",
		Range:       "30-100 Hz",
		Summary:     "Peak concentration, cognitive enhancement",
		Description: "Associated with peak concentration, cognitive enhancement, and simultaneous processing of information.",
		Tips: []string{
			"Practice loving-kindness meditation to boost gamma waves",
			"Engage in cross-lateral movements to enhance whole-brain synchronization",
			"Challenge yourself with novel, complex tasks to stimulate gamma activity",
		},
	},
}

// All returns the modes from slowest to fastest band.
func All() []Mode {
	return append([]Mode(nil), modes...)
}

// Valid reports whether id names a mode.
func Valid(id string) bool {
	_, ok := find(id)
	return ok
}

// Lookup returns the mode for id, falling back to alpha.
func Lookup(id string) Mode {
	if m, ok := find(id); ok {
		return m
	}
	m, _ := find(Default)
	return m
}

func find(id string) (Mode, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, m := range modes {
		if m.ID == id {
			return m, true
		}
	}
	return Mode{}, false
}

// Tip picks one of the mode's tips, cycling with n.
func (m Mode) Tip(n int) string {
	if len(m.Tips) == 0 {
		return ""
	}
	if n < 0 {
		n = -n
	}
	return m.Tips[n%len(m.Tips)]
}

// Title is the heading used in the tips panel.
func (m Mode) Title() string {
	return m.Name + " Waves (" + m.Range + ")"
}
