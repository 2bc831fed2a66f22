package styles

import "github.com/charmbracelet/lipgloss"

// Lazygit-inspired color palette
var (
	// Core colors
	ColorCyan    = lipgloss.Color("#00ffff")
	ColorGreen   = lipgloss.Color("#00ff00")
	ColorYellow  = lipgloss.Color("#ffff00")
	ColorRed     = lipgloss.Color("#ff0000")
	ColorMagenta = lipgloss.Color("#ff00ff")
	ColorWhite   = lipgloss.Color("#ffffff")
	ColorGray    = lipgloss.Color("#808080")
	ColorDimGray = lipgloss.Color("#4a4a4a")

	// Status colors
	ColorSuccess = ColorGreen
	ColorRunning = ColorYellow
	ColorFailed  = ColorRed
	ColorPending = ColorGray
)

var (
	// Screen title
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorCyan).
		Padding(0, 1)

	// Column header line
	Header = lipgloss.NewStyle().
		Foreground(ColorGray).
		Underline(true)

	// Detail summary line (build run screen)
	Detail = lipgloss.NewStyle().
		Foreground(ColorMagenta)

	// Selected row in a list
	SelectedItem = lipgloss.NewStyle().
			Foreground(ColorCyan).
			Bold(true)

	// Normal row
	NormalItem = lipgloss.NewStyle().
			Foreground(ColorWhite)

	// Dimmed/secondary text
	DimmedText = lipgloss.NewStyle().
			Foreground(ColorGray)

	// Status bar at bottom
	StatusBar = lipgloss.NewStyle().
			Foreground(ColorGray).
			Background(lipgloss.Color("#1a1a1a")).
			Padding(0, 1)

	// Status bar keys
	StatusBarKey = lipgloss.NewStyle().
			Foreground(ColorCyan).
			Bold(true)

	// Status bar description
	StatusBarDesc = lipgloss.NewStyle().
			Foreground(ColorGray)

	// Persistent mock-mode warning
	Warning = lipgloss.NewStyle().
		Foreground(ColorYellow).
		Bold(true)

	// Transient error text
	ErrorText = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)
)

// BuildStatus returns the style for a build run or action status
func BuildStatus(status, completion string) lipgloss.Style {
	switch completion {
	case "succeeded", "SUCCEEDED":
		return lipgloss.NewStyle().Foreground(ColorSuccess)
	case "failed", "FAILED", "errored", "ERRORED":
		return lipgloss.NewStyle().Foreground(ColorFailed)
	case "canceled", "CANCELED":
		return lipgloss.NewStyle().Foreground(ColorGray)
	}
	switch status {
	case "running", "RUNNING":
		return lipgloss.NewStyle().Foreground(ColorRunning)
	case "created", "pending", "PENDING":
		return lipgloss.NewStyle().Foreground(ColorPending)
	default:
		return lipgloss.NewStyle().Foreground(ColorWhite)
	}
}

// StatusIcon returns a one-cell icon for a build status
func StatusIcon(status, completion string) string {
	switch completion {
	case "succeeded", "SUCCEEDED":
		return "✓"
	case "failed", "FAILED", "errored", "ERRORED":
		return "✗"
	case "canceled", "CANCELED":
		return "⊘"
	}
	switch status {
	case "running", "RUNNING":
		return "●"
	case "created", "pending", "PENDING":
		return "○"
	default:
		return "·"
	}
}
