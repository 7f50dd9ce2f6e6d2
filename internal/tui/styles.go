package tui

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette — true-color hex values
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorBase     lipgloss.Color = "#1e1e2e"
	colorCrust    lipgloss.Color = "#11111b"
)

// Semantic aliases keep call sites readable.
const (
	colorAccent  = colorMauve
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorYellow
	colorInfo    = colorTeal
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	headerStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorSurface0).
			Padding(0, 1)

	dirtyStyle = lipgloss.NewStyle().Bold(true).Foreground(colorWarning)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Padding(0, 1)

	paneFocusedStyle = paneStyle.
				BorderForeground(colorFocus)

	paneTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(colorCrust).
				Background(colorFocus).
				Bold(true)

	rowStyle = lipgloss.NewStyle().Foreground(colorText)

	mutedStyle = lipgloss.NewStyle().Foreground(colorOverlay0)

	fieldValueStyle = lipgloss.NewStyle().Foreground(colorPeach)

	statusStyle = lipgloss.NewStyle().Foreground(colorSubtext0)

	statusErrStyle = lipgloss.NewStyle().Foreground(colorError)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Background(colorSurface0).
			Padding(0, 1)

	editPromptStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Background(colorBase).
			Padding(1, 2)

	remoteBadgeStyle = lipgloss.NewStyle().
				Foreground(colorCrust).
				Background(colorTeal).
				Padding(0, 1).
				Bold(true)

	localBadgeStyle = lipgloss.NewStyle().
			Foreground(colorCrust).
			Background(colorBlue).
			Padding(0, 1).
			Bold(true)

	tipStyle = lipgloss.NewStyle().Foreground(colorInfo).Italic(true)
)
