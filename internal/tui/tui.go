package tui

import (
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/neuralfocus/internal/timer"
)

// RunFocusTUI runs the focus screen until the user quits and returns the
// final timer state. While the screen is up, log output goes to logPath.
func RunFocusTUI(opts FocusOptions, logPath string) (timer.Snapshot, error) {
	if logPath != "" {
		f, err := tea.LogToFile(logPath, "neuralfocus")
		if err != nil {
			return timer.Snapshot{}, err
		}
		defer func() {
			log.SetOutput(os.Stderr)
			f.Close()
		}()
	}

	model := NewFocusModel(opts)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return timer.Snapshot{}, err
	}

	return opts.Timer.Snapshot(), nil
}
