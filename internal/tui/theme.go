package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mynades/mynades/internal/config"
)

type palette struct {
	accent     lipgloss.Color
	text       lipgloss.Color
	muted      lipgloss.Color
	subtitle   lipgloss.Color
	border     lipgloss.Color
	background lipgloss.Color
	success    lipgloss.Color
	failure    lipgloss.Color
	warning    lipgloss.Color
	info       lipgloss.Color
	selected   lipgloss.Color
}

var palettes = map[config.Theme]palette{
	config.DarkTheme: {
		accent:     lipgloss.Color("62"),
		text:       lipgloss.Color("255"),
		muted:      lipgloss.Color("243"),
		subtitle:   lipgloss.Color("180"),
		border:     lipgloss.Color("240"),
		background: lipgloss.Color("235"),
		success:    lipgloss.Color("42"),
		failure:    lipgloss.Color("196"),
		warning:    lipgloss.Color("214"),
		info:       lipgloss.Color("39"),
		selected:   lipgloss.Color("212"),
	},
	config.LightTheme: {
		accent:     lipgloss.Color("25"),
		text:       lipgloss.Color("235"),
		muted:      lipgloss.Color("245"),
		subtitle:   lipgloss.Color("94"),
		border:     lipgloss.Color("250"),
		background: lipgloss.Color("254"),
		success:    lipgloss.Color("28"),
		failure:    lipgloss.Color("160"),
		warning:    lipgloss.Color("130"),
		info:       lipgloss.Color("26"),
		selected:   lipgloss.Color("125"),
	},
}

// ColorsManager hands out styles for the current theme, widgets must not cache them.
type ColorsManager struct {
	theme config.Theme
}

func NewColorsManager(cfg *config.Config) *ColorsManager {
	return &ColorsManager{theme: *cfg.Get().UI.Theme}
}

func (c *ColorsManager) Theme() config.Theme {
	return c.theme
}

func (c *ColorsManager) SetTheme(theme config.Theme) {
	c.theme = theme
}

func (c *ColorsManager) Toggle() config.Theme {
	c.theme = c.theme.Toggle()
	return c.theme
}

func (c *ColorsManager) p() palette {
	return palettes[c.theme]
}

func (c *ColorsManager) ActiveBorder() lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(c.p().accent)
}

func (c *ColorsManager) InactiveBorder() lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(c.p().border)
}

func (c *ColorsManager) HeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(c.p().text).
		Background(c.p().accent).
		Padding(0, 1)
}

func (c *ColorsManager) HeaderIndicatorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(c.p().info).
		Bold(true).
		Padding(0, 1)
}

func (c *ColorsManager) TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(c.p().accent)
}

func (c *ColorsManager) SubtitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(c.p().subtitle).
		Italic(true)
}

func (c *ColorsManager) MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c.p().muted)
}

func (c *ColorsManager) InfoStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c.p().info)
}

func (c *ColorsManager) ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c.p().failure).Bold(true)
}

func (c *ColorsManager) SuccessStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c.p().success).Bold(true)
}

func (c *ColorsManager) WarningStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c.p().warning)
}

func (c *ColorsManager) ListItemSelected() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c.p().selected).Bold(true)
}

func (c *ColorsManager) ListItemUnselected() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c.p().text)
}

func (c *ColorsManager) ChordStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(c.p().text).
		Background(c.p().background).
		Padding(0, 1)
}

func (c *ColorsManager) CardStyle(active bool) lipgloss.Style {
	border := c.p().border
	if active {
		border = c.p().selected
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Align(lipgloss.Center)
}

// FlashStyle colors the description of an entry after a save completed.
func (c *ColorsManager) FlashStyle(ok bool) lipgloss.Style {
	if ok {
		return lipgloss.NewStyle().Foreground(c.p().success)
	}
	return lipgloss.NewStyle().Foreground(c.p().failure)
}

func (c *ColorsManager) HelpKeyStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c.p().muted).Bold(true)
}

func (c *ColorsManager) HelpDescriptionStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c.p().border)
}

func (c *ColorsManager) HelpSeparatorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c.p().border)
}
