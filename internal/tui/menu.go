package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
)

type MenuItem struct {
	title  string
	action Action
}

func (m MenuItem) FilterValue() string {
	return m.title
}

type MenuDelegate struct {
	colors *ColorsManager
}

func (d MenuDelegate) Height() int {
	return 1
}

func (d MenuDelegate) Spacing() int {
	return 0
}

func (d MenuDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	item, ok := m.SelectedItem().(MenuItem)
	if !ok {
		logrus.Warning("Menu delegate called with an item that is not a MenuItem")
		return nil
	}
	// nolint:gocritic
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, rootKeyMap.Enter) {
			logrus.Debugf("Menu item selected: %s", item.title)
			return tea.Batch(ActionCmd(ActionToggleMenu), ActionCmd(item.action))
		}
	}
	return nil
}

func (d MenuDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	menuItem, ok := item.(MenuItem)
	if !ok {
		return
	}

	style := d.colors.ListItemUnselected()
	prefix := inactiveMarker
	if index == m.Index() {
		style = d.colors.ListItemSelected()
		prefix = activeMarker
	}
	fmt.Fprintf(w, "%s", style.Render(prefix+menuItem.title))
}

// Menu is the side menu with the application level actions.
type Menu struct {
	L      list.Model
	colors *ColorsManager
	help   *CustomHelp
}

func NewMenu(colors *ColorsManager) *Menu {
	items := []list.Item{
		MenuItem{title: "Toggle theme", action: ActionToggleTheme},
		MenuItem{title: "Reload maps", action: ActionReloadMaps},
		MenuItem{title: "Help", action: ActionToggleHelp},
		MenuItem{title: "Quit", action: ActionQuit},
	}
	l := list.New(items, MenuDelegate{colors: colors}, menuWidth-panelBorder, len(items))
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowPagination(false)

	return &Menu{
		L:      l,
		colors: colors,
		help:   NewCustomHelp(colors),
	}
}

// ClickAt runs the item drawn on row, rows start below the menu title.
func (m *Menu) ClickAt(row int) tea.Cmd {
	index := row - m.titleLines()
	items := m.L.Items()
	if index < 0 || index >= len(items) {
		return nil
	}
	m.L.Select(index)
	item, ok := items[index].(MenuItem)
	if !ok {
		return nil
	}
	return tea.Batch(ActionCmd(ActionToggleMenu), ActionCmd(item.action))
}

func (m *Menu) Update(msg tea.Msg) tea.Cmd {
	// nolint:gocritic
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, rootKeyMap.Back) || key.Matches(msg, rootKeyMap.Menu) {
			logrus.Debug("Closing the menu")
			return ActionCmd(ActionToggleMenu)
		}
	}
	var cmd tea.Cmd
	m.L, cmd = m.L.Update(msg)
	return cmd
}

func (m *Menu) titleLines() int {
	return 2
}

func (m *Menu) SetHeight(height int) {
	m.L.SetHeight(max(len(m.L.Items()), height-m.titleLines()-1))
}

func (m *Menu) View() string {
	title := m.colors.TitleStyle().Margin(0, 0, 1, 0).Render("Menu")
	help := m.help.ShortHelpView([]key.Binding{rootKeyMap.Enter, rootKeyMap.Back})
	content := lipgloss.NewStyle().Height(m.L.Height()).Render(m.L.View())
	return lipgloss.JoinVertical(lipgloss.Left, title, content, help)
}
