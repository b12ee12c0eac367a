package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Tab           key.Binding
	Enter         key.Binding
	Quit          key.Binding
	ForceQuit     key.Binding
	Up            key.Binding
	Down          key.Binding
	Left          key.Binding
	Right         key.Binding
	PageLeft      key.Binding
	PageRight     key.Binding
	ShowFullHelp  key.Binding
	CloseFullHelp key.Binding
	Back          key.Binding
	Add           key.Binding
	EditKey       key.Binding
	EditDesc      key.Binding
	Delete        key.Binding
	ToggleTheme   key.Binding
	Menu          key.Binding
	Reload        key.Binding
}

var rootKeyMap = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch focus"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "previous map"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next map"),
	),
	PageLeft: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "page left"),
	),
	PageRight: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "page right"),
	),
	ShowFullHelp: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "more"),
	),
	CloseFullHelp: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "close help"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add shortcut"),
	),
	EditKey: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit key"),
	),
	EditDesc: key.NewBinding(
		key.WithKeys("enter", "i"),
		key.WithHelp("enter/i", "edit description"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "remove"),
	),
	ToggleTheme: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "toggle theme"),
	),
	Menu: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "menu"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload maps"),
	),
}

func (k keyMap) ShortcutsHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.EditDesc, k.Add, k.EditKey, k.Delete}
}

func (k keyMap) CarouselHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.PageLeft, k.PageRight}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.ShortcutsHelp(),
		k.CarouselHelp(),
		{k.Tab, k.ToggleTheme, k.Menu, k.Reload},
		{k.CloseFullHelp, k.Quit},
	}
}
