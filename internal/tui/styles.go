package tui

import "github.com/charmbracelet/lipgloss"

const appName = "Online Checkers"

const (
	colorRed     lipgloss.Color = "#f38ba8"
	colorText    lipgloss.Color = "#cdd6f4"
	colorOverlay lipgloss.Color = "#7f849c"
	colorSurface lipgloss.Color = "#313244"
	colorAccent  lipgloss.Color = "#f5c2e7"
	colorWarning lipgloss.Color = "#f9e2af"
)

var (
	titleStyle      = lipgloss.NewStyle().Bold(true)
	dimStyle        = lipgloss.NewStyle().Foreground(colorOverlay)
	cursorStyle     = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	navStyle        = lipgloss.NewStyle().Foreground(colorText).Background(colorSurface).Padding(0, 2)
	brandStyle      = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	footerStyle     = lipgloss.NewStyle().Foreground(colorOverlay).Padding(0, 1)
	statusStyle     = lipgloss.NewStyle().Foreground(colorWarning)
	modalStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent).Padding(1, 2)
	alertStyle      = modalStyle.BorderForeground(colorWarning)
	redPieceStyle   = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	blackPieceStyle = lipgloss.NewStyle().Foreground(colorText).Bold(true)
)
