package tui

// Color constants for the neuralfocus TUI theme
const (
	// Base Colors
	ColorCardBackground = "#111827" // Deep slate
	ColorBorder         = "#334155" // Slate

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Clock digits, task title
	ColorSecondaryText = "#94A3B8" // Phase and break details
	ColorDisabledText  = "#64748B" // Muted / paused
	ColorHelpText      = "240"     // Dark grey for help text

	// Accent Colors (Indigo theme)
	ColorAccentMain   = "#6366F1" // Logo, focus clock
	ColorAccentBright = "#A5B4FC" // Highlights, active phase

	// State Colors
	ColorError   = "#EF4444" // Rejected actions
	ColorSuccess = "#22C55E" // Break clock, completed sessions
	ColorWarning = "#F59E0B" // Muted volume
)
