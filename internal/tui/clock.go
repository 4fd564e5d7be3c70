package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ASCII art for digits (5x5 characters each)
var bigDigits = map[rune][5]string{
	'0': {" ███ ", "█   █", "█   █", "█   █", " ███ "},
	'1': {"  █  ", " ██  ", "  █  ", "  █  ", "█████"},
	'2': {" ███ ", "█   █", "   █ ", "  █  ", "█████"},
	'3': {" ███ ", "█   █", "  ██ ", "█   █", " ███ "},
	'4': {"█   █", "█   █", "█████", "    █", "    █"},
	'5': {"█████", "█    ", "████ ", "    █", "████ "},
	'6': {" ███ ", "█    ", "████ ", "█   █", " ███ "},
	'7': {"█████", "    █", "   █ ", "  █  ", " █   "},
	'8': {" ███ ", "█   █", " ███ ", "█   █", " ███ "},
	'9': {" ███ ", "█   █", " ████", "    █", " ███ "},
	':': {"     ", "  █  ", "     ", "  █  ", "     "},
}

// FormatClock renders seconds as MM:SS, or H:MM:SS past the hour
func FormatClock(seconds int) string {
	seconds = max(seconds, 0)
	hours := seconds / 3600
	minutes := seconds / 60 % 60
	secs := seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

// renderBigClock renders the countdown as ASCII art
func renderBigClock(seconds int, color string) string {
	var lines [5]strings.Builder

	for _, char := range FormatClock(seconds) {
		if art, ok := bigDigits[char]; ok {
			for i := range art {
				lines[i].WriteString(art[i])
				lines[i].WriteString(" ") // Space between digits
			}
		}
	}

	clockStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Bold(true)

	rendered := make([]string, len(lines))
	for i := range lines {
		rendered[i] = clockStyle.Render(lines[i].String())
	}
	return strings.Join(rendered, "\n")
}
