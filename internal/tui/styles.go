package tui

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	// Severity colors for log lines
	levelColorList = []lipgloss.Color{
		lipgloss.Color("7"),   // verbose: white
		lipgloss.Color("14"),  // debug: cyan
		lipgloss.Color("10"),  // info: green
		lipgloss.Color("11"),  // warning: yellow
		lipgloss.Color("9"),   // error: red
		lipgloss.Color("201"), // fatal: magenta
		lipgloss.Color("8"),   // silent: gray
	}

	// Connection state colors
	streamingColor    = lipgloss.Color("10") // Green
	disconnectedColor = lipgloss.Color("9")  // Red
	idleColor         = lipgloss.Color("8")  // Gray
	startingColor     = lipgloss.Color("11") // Yellow

	// UI colors
	headerBg   = lipgloss.Color("235")
	statusBg   = lipgloss.Color("236")
	helpBg     = lipgloss.Color("234")
	errorColor = lipgloss.Color("9")
	dimColor   = lipgloss.Color("8")
)

// Styles
var (
	headerStyle = lipgloss.NewStyle().
			Background(headerBg).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Background(statusBg).
			Padding(0, 1)

	overlayStyle = lipgloss.NewStyle().
			Background(helpBg).
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(errorColor).
			Bold(true)

	pausedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("11")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	streamingStyle    = lipgloss.NewStyle().Foreground(streamingColor).Bold(true)
	disconnectedStyle = lipgloss.NewStyle().Foreground(disconnectedColor).Bold(true)
	idleStyle         = lipgloss.NewStyle().Foreground(idleColor)
	startingStyle     = lipgloss.NewStyle().Foreground(startingColor)

	levelStyles []lipgloss.Style
)

func init() {
	for _, color := range levelColorList {
		levelStyles = append(levelStyles, lipgloss.NewStyle().Foreground(color))
	}
}
