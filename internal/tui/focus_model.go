package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/balkashynov/neuralfocus/internal/brainwave"
	"github.com/balkashynov/neuralfocus/internal/config"
	"github.com/balkashynov/neuralfocus/internal/mixer"
	"github.com/balkashynov/neuralfocus/internal/prefs"
	"github.com/balkashynov/neuralfocus/internal/ramp"
	"github.com/balkashynov/neuralfocus/internal/timer"
)

const (
	volumeStep = 5
	breakStep  = 60
)

// FocusOptions wire a FocusModel to its collaborators
type FocusOptions struct {
	Timer *timer.Timer
	Mixer *mixer.Mixer
	Prefs *prefs.Manager // optional

	Task      string
	Brainwave brainwave.Mode
	AutoStart bool

	TickEvery time.Duration
	StepEvery time.Duration
}

// FocusModel is the focus session screen
type FocusModel struct {
	width  int
	height int

	timer *timer.Timer
	mixer *mixer.Mixer
	prefs *prefs.Manager

	task string
	wave brainwave.Mode

	tickEvery time.Duration
	stepEvery time.Duration

	// Second ticks carry tickGen; bumping it drops the tick in flight
	tickGen int
	ticking bool

	// Mixer generation the step chain in flight belongs to
	stepGen int

	timerAnimation int
	status         string
	statusIsError  bool
	quitting       bool

	sessionBar progress.Model
	volumeBar  progress.Model
}

// focusTickMsg advances the countdown by one second
type focusTickMsg struct{ gen int }

// mixerStepMsg advances a volume transition by one step
type mixerStepMsg struct{ gen int }

// animationTickMsg is sent for the header animation
type animationTickMsg struct{}

// NewFocusModel creates the focus screen; with AutoStart the countdown is
// already running when the program starts
func NewFocusModel(opts FocusOptions) FocusModel {
	if opts.TickEvery <= 0 {
		opts.TickEvery = config.TickInterval
	}
	if opts.StepEvery <= 0 {
		opts.StepEvery = config.TransitionInterval
	}
	if opts.Brainwave.ID == "" {
		opts.Brainwave = brainwave.Lookup(brainwave.Default)
	}

	m := FocusModel{
		timer:      opts.Timer,
		mixer:      opts.Mixer,
		prefs:      opts.Prefs,
		task:       opts.Task,
		wave:       opts.Brainwave,
		tickEvery:  opts.TickEvery,
		stepEvery:  opts.StepEvery,
		sessionBar: progress.New(progress.WithDefaultGradient()),
		volumeBar:  progress.New(progress.WithSolidFill(ColorAccentMain), progress.WithoutPercentage()),
	}
	m.sessionBar.Width = 40
	m.volumeBar.Width = 20

	if opts.AutoStart {
		if err := m.timer.Start(); err != nil {
			m.setError(err)
		}
		m.persistActive()
	}
	m.ticking = m.timer.State().Running()
	if m.mixer != nil && m.mixer.Transitioning() {
		m.stepGen = m.mixer.Generation()
	}
	return m
}

// Init starts the header animation and, when the timer already runs, the
// countdown and any pending volume transition
func (m FocusModel) Init() tea.Cmd {
	cmds := []tea.Cmd{animationTick()}
	if m.ticking {
		cmds = append(cmds, m.tick(m.tickGen))
	}
	if m.mixer != nil && m.mixer.Transitioning() {
		cmds = append(cmds, m.step(m.stepGen))
	}
	return tea.Batch(cmds...)
}

func animationTick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
		return animationTickMsg{}
	})
}

func (m FocusModel) tick(gen int) tea.Cmd {
	return tea.Tick(m.tickEvery, func(time.Time) tea.Msg {
		return focusTickMsg{gen: gen}
	})
}

func (m FocusModel) step(gen int) tea.Cmd {
	return tea.Tick(m.stepEvery, func(time.Time) tea.Msg {
		return mixerStepMsg{gen: gen}
	})
}

// Update handles messages
func (m FocusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case focusTickMsg:
		if m.quitting || !m.ticking || msg.gen != m.tickGen {
			return m, nil
		}
		m.timer.Tick()
		cmd := m.sync()
		return m, tea.Batch(cmd, m.continueTick())

	case mixerStepMsg:
		if m.quitting || m.mixer == nil || msg.gen != m.mixer.Generation() {
			return m, nil
		}
		if m.mixer.Step() {
			return m, m.step(msg.gen)
		}
		return m, nil

	case animationTickMsg:
		if m.quitting {
			return m, nil
		}
		m.timerAnimation = (m.timerAnimation + 1) % 4
		return m, animationTick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.sessionBar.Width = max(10, min(60, msg.Width-20))
		m.volumeBar.Width = max(10, min(30, msg.Width/4))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m FocusModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	m.statusIsError = false

	switch msg.String() {
	case "ctrl+c", "esc", "q":
		m.quitting = true
		m.ticking = false
		m.tickGen++
		return m, tea.Quit

	case " ", "p":
		m.timer.Toggle()
		m.persistActive()

	case "r":
		m.timer.Reset()
		m.persistActive()
		m.setInfo("Session reset")

	case "1", "2", "3", "4":
		p := ramp.Presets[int(msg.Runes[0]-'1')]
		if err := m.timer.ChangeDuration(p); err != nil {
			m.setError(err)
		} else {
			m.persistActive()
			m.setInfo(p.Description())
		}

	case "s":
		if err := m.timer.SkipBreak(); err != nil {
			m.setError(err)
		} else {
			m.setInfo("Break skipped")
		}

	case "[", "]":
		delta := breakStep
		if msg.String() == "[" {
			delta = -breakStep
		}
		next := m.timer.Snapshot().BreakDuration + delta
		if err := m.timer.SetBreakDuration(next); err != nil {
			m.setError(err)
		} else {
			m.setInfo(fmt.Sprintf("Break set to %d min", next/60))
		}

	case "f":
		if m.mixer != nil {
			m.mixer.EnableAutoVolume()
			m.setInfo("Focus volume restored")
		}

	case "a":
		if m.mixer != nil {
			m.mixer.ToggleAutoVolume()
		}

	case "m":
		if m.mixer != nil {
			m.mixer.ToggleMute()
		}

	case "+", "=":
		if m.mixer != nil {
			m.mixer.Nudge(volumeStep)
		}

	case "-", "_":
		if m.mixer != nil {
			m.mixer.Nudge(-volumeStep)
		}

	default:
		return m, nil
	}

	cmd := m.sync()
	return m, cmd
}

// sync starts or cancels the tick and step chains to match the timer and
// mixer after a state change
func (m *FocusModel) sync() tea.Cmd {
	var cmds []tea.Cmd

	running := m.timer.State().Running()
	switch {
	case running && !m.ticking:
		m.tickGen++
		m.ticking = true
		cmds = append(cmds, m.tick(m.tickGen))
	case !running && m.ticking:
		m.tickGen++
		m.ticking = false
		// a fade still on the chain started while running stops with the
		// countdown; one the action itself started (reset) carries on
		if m.mixer != nil && m.mixer.Generation() == m.stepGen {
			m.mixer.Cancel()
		}
	}

	if m.mixer != nil && m.mixer.Transitioning() {
		if gen := m.mixer.Generation(); gen != m.stepGen {
			m.stepGen = gen
			cmds = append(cmds, m.step(gen))
		}
	}

	return tea.Batch(cmds...)
}

// continueTick schedules the next second of an uninterrupted chain
func (m FocusModel) continueTick() tea.Cmd {
	if !m.ticking || !m.timer.State().Running() {
		return nil
	}
	return m.tick(m.tickGen)
}

func (m *FocusModel) persistActive() {
	if m.prefs == nil {
		return
	}
	if err := m.prefs.SetTimerActive(m.timer.State() == timer.FocusRunning); err != nil {
		m.setError(err)
	}
}

func (m *FocusModel) setInfo(s string) {
	m.status = s
	m.statusIsError = false
}

func (m *FocusModel) setError(err error) {
	switch {
	case errors.Is(err, timer.ErrInBreak):
		m.status = "Finish or skip the break first"
	case errors.Is(err, timer.ErrBreakRunning):
		m.status = "Pause the break to change its length"
	case errors.Is(err, timer.ErrInvalidBreak):
		m.status = fmt.Sprintf("Break must be %d-%d minutes", config.MinBreakSeconds/60, config.MaxBreakSeconds/60)
	case errors.Is(err, timer.ErrNotInBreak):
		m.status = "No break to skip"
	default:
		m.status = err.Error()
	}
	m.statusIsError = true
}

// View renders the focus screen
func (m FocusModel) View() string {
	if m.quitting {
		return ""
	}

	width := m.width
	if width == 0 {
		width = 80
	}
	snap := m.timer.Snapshot()

	var components []string

	// Animated header
	animChars := []string{"◐", "◓", "◑", "◒"}
	animChar := animChars[m.timerAnimation]
	if !snap.State.Running() {
		animChar = "◯"
	}
	header := fmt.Sprintf("%s  %s  %s", animChar, strings.ToUpper(headerFor(snap)), animChar)
	components = append(components, centered(width).
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true).
		Render(header))

	if m.task != "" {
		title := fitTitle(m.task, width)
		components = append(components, centered(width).
			Foreground(lipgloss.Color(ColorPrimaryText)).
			Bold(true).
			Render(title))
	}

	// Big clock display
	clockColor := ColorAccentMain
	seconds := snap.Remaining
	if snap.Mode == timer.Break {
		clockColor = ColorSuccess
		seconds = snap.BreakRemaining
	}
	if !snap.State.Running() {
		clockColor = ColorDisabledText
	}
	clockLines := strings.Split(renderBigClock(seconds, clockColor), "\n")
	for i, line := range clockLines {
		clockLines[i] = centered(width).Render(line)
	}
	components = append(components, strings.Join(clockLines, "\n"))

	components = append(components, centered(width).Render(m.sessionBar.ViewAs(snap.Progress())))
	components = append(components, m.renderDetails(snap, width))
	components = append(components, m.renderMixer(width))

	if m.status != "" {
		color := ColorSecondaryText
		if m.statusIsError {
			color = ColorError
		}
		components = append(components, centered(width).
			Foreground(lipgloss.Color(color)).
			Render(m.status))
	}

	components = append(components, m.renderTip(snap, width))

	content := strings.Join(components, "\n\n")

	helpBar := m.renderHelpBar(width)
	if m.height == 0 {
		return content + "\n\n" + helpBar
	}

	panel := lipgloss.NewStyle().
		Width(width).
		Height(max(m.height-2, 1)).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, panel, helpBar)
}

// fitTitle cuts the task title to the screen width in terminal cells
func fitTitle(title string, width int) string {
	if width <= 10 || runewidth.StringWidth(title) <= width-4 {
		return title
	}
	return runewidth.Truncate(title, width-4, "...")
}

func centered(width int) lipgloss.Style {
	return lipgloss.NewStyle().Align(lipgloss.Center).Width(width)
}

func headerFor(s timer.Snapshot) string {
	switch s.State {
	case timer.Idle:
		return "ready to focus"
	case timer.FocusRunning:
		return "focusing"
	case timer.FocusPaused:
		return "paused"
	case timer.BreakRunning:
		return "break time"
	default:
		return "break paused"
	}
}

// renderDetails shows preset, ramp phase and break information
func (m FocusModel) renderDetails(s timer.Snapshot, width int) string {
	secondary := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)

	var lines []string
	lines = append(lines, fmt.Sprintf("%s %s  %s",
		accent.Render(s.Preset.Label()),
		secondary.Render(s.Preset.Description()),
		secondary.Render("· "+s.Policy.String()+" ramp")))

	if s.Mode == timer.Focus {
		lines = append(lines, fmt.Sprintf("%s %s",
			secondary.Render(fmt.Sprintf("Phase %d/%d", s.Phase, s.PhaseCount)),
			accent.Render(fmt.Sprintf("target %d%%", s.Volume))))
	}

	lines = append(lines, secondary.Render(fmt.Sprintf("Break %s · Sessions %d",
		FormatClock(s.BreakDuration), s.SessionsCompleted)))

	for i, l := range lines {
		lines[i] = centered(width).Render(l)
	}
	return strings.Join(lines, "\n")
}

// renderMixer renders the volume gauge
func (m FocusModel) renderMixer(width int) string {
	if m.mixer == nil {
		return ""
	}
	st := m.mixer.State()

	mode := "auto"
	modeColor := ColorAccentBright
	if !st.Auto {
		mode = "manual"
		modeColor = ColorSecondaryText
	}
	if st.Muted {
		mode = "muted"
		modeColor = ColorWarning
	}

	line := fmt.Sprintf("🔊 %s %3d%% %s",
		m.volumeBar.ViewAs(float64(st.Display)/100),
		st.Display,
		lipgloss.NewStyle().Foreground(lipgloss.Color(modeColor)).Render(mode))
	return centered(width).Render(line)
}

// renderTip shows one tip for the selected brainwave mode
func (m FocusModel) renderTip(s timer.Snapshot, width int) string {
	tip := m.wave.Tip(s.SessionsCompleted)
	if tip == "" {
		return ""
	}
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Italic(true).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Width(min(width-4, 70)).
		Padding(0, 1)
	return centered(width).Render(style.Render(m.wave.Title() + "\n" + tip))
}

// renderHelpBar renders the help bar at the bottom
func (m FocusModel) renderHelpBar(width int) string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(width)

	helpText := "space start/pause · r reset · 1-4 length · s skip break · [ ] break · f focus vol · a auto · m mute · +/- vol · q quit"

	return helpStyle.Render(helpText)
}
