package tui

import "github.com/charmbracelet/lipgloss"

var HelpStyle = lipgloss.NewStyle().Padding(0, 0, 0, 2)

const (
	activeMarker   = "► "
	inactiveMarker = "  "
	leftArrow      = "‹"
	rightArrow     = "›"
	flashOK        = "✓"
	flashFailed    = "✗"
)
