package commands

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/neuralfocus/internal/audio"
	"github.com/balkashynov/neuralfocus/internal/brainwave"
	"github.com/balkashynov/neuralfocus/internal/db"
	"github.com/balkashynov/neuralfocus/internal/engine"
	"github.com/balkashynov/neuralfocus/internal/mixer"
	"github.com/balkashynov/neuralfocus/internal/models"
	"github.com/balkashynov/neuralfocus/internal/parser"
	"github.com/balkashynov/neuralfocus/internal/prefs"
	"github.com/balkashynov/neuralfocus/internal/ramp"
	"github.com/balkashynov/neuralfocus/internal/timer"
	"github.com/balkashynov/neuralfocus/internal/tui"
	"github.com/balkashynov/neuralfocus/internal/volsync"
)

var focusCmd = &cobra.Command{
	Use:   "focus [task]",
	Short: "Start a focus session",
	Long: `Start a focus session. Opens the interactive timer by default, use --no-ui to
run headless and print progress instead.

The background volume follows the ramp of the selected duration; completed
sessions are recorded for 'neuralfocus stats'.

Examples:
  neuralfocus focus "Write chapter 3"          # 25 minute session with UI
  neuralfocus focus -d 90 --policy step        # 90 minutes, stepped ramp
  neuralfocus focus --no-ui --sessions 2       # two headless sessions`,
	Run: withDB(runFocus),
}

func runFocus(cmd *cobra.Command, args []string) {
	flags := cmd.Flags()

	selector, _ := flags.GetString("duration")
	if selector == "" {
		selector = cfg.Duration
	}
	preset, err := parser.ParseDuration(selector)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	policyName, _ := flags.GetString("policy")
	if policyName == "" {
		policyName = cfg.RampPolicy
	}
	policy, err := ramp.ParsePolicy(policyName)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	pm, err := prefs.NewManager(db.PreferenceStore{})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	task := strings.TrimSpace(strings.Join(args, " "))
	if task != "" {
		if err := pm.SetFocusTask(task); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
	} else {
		task = pm.Current().FocusTask
	}

	session, err := newFocusSession(pm, preset, policy, task)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer session.close()

	if breakFlag, _ := flags.GetString("break"); breakFlag != "" {
		seconds, err := parser.ParseBreakDuration(breakFlag)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := session.timer.SetBreakDuration(seconds); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
	}

	noUI, _ := flags.GetBool("no-ui")
	sessions, _ := flags.GetInt("sessions")

	var final timer.Snapshot
	if noUI {
		final, err = session.runHeadless(cmd.Context(), sessions)
	} else {
		final, err = tui.RunFocusTUI(tui.FocusOptions{
			Timer:     session.timer,
			Mixer:     session.mixer,
			Prefs:     pm,
			Task:      task,
			Brainwave: brainwave.Lookup(pm.Current().BrainwaveMode),
			AutoStart: true,
			StepEvery: cfg.StepEvery,
		}, cfg.LogPath())
	}
	if err := pm.SetTimerActive(false); err != nil {
		log.Printf("persist timer state: %v", err)
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("⏹️  Focus session ended after %s\n", formatDuration(time.Duration(final.Elapsed)*time.Second))
	fmt.Printf("📊 Sessions completed: %d\n", final.SessionsCompleted)
}

// focusSession holds the collaborators of one run; the cue player is only
// open while the session lives
type focusSession struct {
	bus   *volsync.Bus
	cues  audio.Player
	level *audio.Level
	mixer *mixer.Mixer
	timer *timer.Timer
}

func newFocusSession(pm *prefs.Manager, preset ramp.Preset, policy ramp.Policy, task string) (*focusSession, error) {
	s := &focusSession{
		bus:   volsync.NewBus(),
		cues:  audio.Open(cfg.CueCommand, cfg.FocusCue, cfg.BreakCue, os.Stdout),
		level: &audio.Level{},
	}

	s.mixer = mixer.New(mixer.Options{
		Volume: pm.Current().Volume,
		Steps:  cfg.Steps,
		Output: audio.Fanout{s.level, pm},
		Bus:    s.bus,
	})

	t, err := timer.New(timer.Options{
		Preset:          preset,
		Policy:          policy,
		Bus:             s.bus,
		Cues:            s.cues,
		OnFocusComplete: recordFocusSession(task),
	})
	if err != nil {
		s.mixer.Close()
		s.cues.Close()
		return nil, err
	}
	s.timer = t
	return s, nil
}

func (s *focusSession) close() {
	s.timer.Close()
	s.mixer.Close()
	if err := s.cues.Close(); err != nil {
		log.Printf("close audio cues: %v", err)
	}
}

// runHeadless drives the session from the engine loop and prints a line
// on every phase or mode change and once a minute
func (s *focusSession) runHeadless(ctx context.Context, sessions int) (timer.Snapshot, error) {
	var last timer.Snapshot
	report := func(snap timer.Snapshot) {
		if shouldReport(last, snap) {
			fmt.Println(formatProgress(snap, s.level.Percent()))
		}
		last = snap
	}

	e, err := engine.New(engine.Options{
		Timer:     s.timer,
		Mixer:     s.mixer,
		Sessions:  sessions,
		StepEvery: cfg.StepEvery,
		OnTick:    report,
	})
	if err != nil {
		return timer.Snapshot{}, err
	}

	snap := s.timer.Snapshot()
	fmt.Printf("⏱️  %s · %s ramp · Ctrl+C to stop\n", snap.Preset.Description(), snap.Policy)

	err = e.Run(ctx)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	return s.timer.Snapshot(), err
}

// shouldReport is true on a phase or mode change and on every whole minute
// of the countdown in progress
func shouldReport(last, snap timer.Snapshot) bool {
	if snap.Mode != last.Mode || snap.Phase != last.Phase {
		return true
	}
	if snap.Mode == timer.Break {
		return snap.BreakRemaining%60 == 0
	}
	return snap.Elapsed%60 == 0
}

func formatProgress(s timer.Snapshot, volume int) string {
	if s.Mode == timer.Break {
		return fmt.Sprintf("[break %s left] sessions %d · volume %d%%",
			tui.FormatClock(s.BreakRemaining), s.SessionsCompleted, volume)
	}
	return fmt.Sprintf("[focus %s left] phase %d/%d · target %d%% · volume %d%%",
		tui.FormatClock(s.Remaining), s.Phase, s.PhaseCount, s.Volume, volume)
}

// recordFocusSession stores every naturally completed focus period
func recordFocusSession(task string) func(timer.Snapshot) {
	return func(s timer.Snapshot) {
		err := db.RecordFocusSession(&models.FocusSession{
			Task:          task,
			PresetSeconds: s.Duration,
			Policy:        s.Policy.String(),
		})
		if err != nil {
			log.Printf("record focus session: %v", err)
		}
	}
}

// formatDuration formats a duration in a human-readable way
func formatDuration(d time.Duration) string {
	if d.Hours() >= 1 {
		return fmt.Sprintf("%.1fh", d.Hours())
	} else if d.Minutes() >= 1 {
		return fmt.Sprintf("%.0fm", d.Minutes())
	} else {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
}

func init() {
	focusCmd.Flags().Bool("no-ui", false, "Run without the interactive timer")
	focusCmd.Flags().StringP("duration", "d", "", "Session length: 25, 90, 180, 360 (or 25m, 90m, 3h, 6h)")
	focusCmd.Flags().String("policy", "", "Volume ramp policy: linear or step")
	focusCmd.Flags().StringP("break", "b", "", "Break length: X, Xm or Xs (1-30 minutes)")
	focusCmd.Flags().IntP("sessions", "n", 0, "Stop after this many completed sessions (--no-ui only)")
}
