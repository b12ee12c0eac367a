package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
)

type confirmKeyMap struct {
	Accept key.Binding
	Reject key.Binding
	Back   key.Binding
}

func (c *confirmKeyMap) Help() []key.Binding {
	return []key.Binding{
		c.Accept,
		c.Reject,
		c.Back,
	}
}

// ConfirmationPrompt asks a yes/no question, the answer is delivered as one of two commands.
type ConfirmationPrompt struct {
	accepted tea.Cmd
	rejected tea.Cmd
	keys     confirmKeyMap
	title    string
	colors   *ColorsManager
	help     *CustomHelp
	width    int
	height   int
}

func NewConfirmationPrompt(title string, colors *ColorsManager, accepted, rejected tea.Cmd) *ConfirmationPrompt {
	return &ConfirmationPrompt{
		title:    title,
		accepted: accepted,
		rejected: rejected,
		colors:   colors,
		keys: confirmKeyMap{
			Accept: key.NewBinding(
				key.WithKeys("y", "Y"),
				key.WithHelp("y/Y", "yes"),
			),
			Reject: key.NewBinding(
				key.WithKeys("n", "N"),
				key.WithHelp("n/N", "no"),
			),
			Back: key.NewBinding(
				key.WithKeys("esc"),
				key.WithHelp("esc", "back"),
			),
		},
		help: NewCustomHelp(colors),
	}
}

func (c *ConfirmationPrompt) Update(msg tea.Msg) tea.Cmd {
	cmds := []tea.Cmd{}
	// nolint:gocritic
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, c.keys.Accept):
			logrus.Debug("Confirmation prompt accepted")
			cmds = append(cmds, c.accepted)

		case key.Matches(msg, c.keys.Reject):
			logrus.Debug("Confirmation prompt rejected")
			cmds = append(cmds, c.rejected)

		case key.Matches(msg, c.keys.Back):
			logrus.Debug("Confirmation prompt back")
			cmds = append(cmds, c.rejected)
		}
	}
	return tea.Batch(cmds...)
}

func (c *ConfirmationPrompt) SetHeight(height int) {
	c.height = height
}

func (c *ConfirmationPrompt) SetWidth(width int) {
	c.width = width
}

func (c *ConfirmationPrompt) View() string {
	title := c.colors.WarningStyle().Margin(0, 0, 1, 0).Render(c.title)
	help := c.help.ShortHelpView(c.keys.Help())
	view := lipgloss.JoinVertical(lipgloss.Center, title, help)

	return lipgloss.Place(c.width, c.height, lipgloss.Center, lipgloss.Center, view)
}
