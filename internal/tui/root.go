// Package tui provides the terminal interface to browse maps and manage their keyboard shortcuts
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mynades/mynades/internal/config"
	"github.com/mynades/mynades/internal/host"
	"github.com/mynades/mynades/internal/store"
	"github.com/sirupsen/logrus"
)

const applicationTitle = "mynades"

type Model struct {
	config    *config.Config
	keys      keyMap
	layout    *Layout
	rootState *RootState
	colors    *ColorsManager
	host      *HostCommands

	// universal components
	confirmationPrompt *ConfirmationPrompt
	header             *Header
	help               *CustomHelp
	menu               *Menu

	// map and shortcut management
	carousel  *Carousel
	shortcuts *ShortcutList
	popup     *CapturePopup
}

func NewModel(cfg *config.Config, bridge host.Bridge, version string) Model {
	colors := NewColorsManager(cfg)
	hostCommands := NewHostCommands(bridge, cfg)
	carousel := NewCarousel(cfg, colors)
	shortcuts := NewShortcutList(cfg, colors, hostCommands)

	return Model{
		config:             cfg,
		keys:               rootKeyMap,
		layout:             NewLayout(),
		rootState:          NewState(),
		colors:             colors,
		host:               hostCommands,
		confirmationPrompt: nil,
		header:             NewHeader(applicationTitle, version, cfg, colors),
		help:               NewCustomHelp(colors),
		menu:               NewMenu(colors),
		carousel:           carousel,
		shortcuts:          shortcuts,
		popup:              NewCapturePopup(cfg, colors, hostCommands, shortcuts, carousel),
	}
}

// Init fetches the maps once, the first map gets selected when they arrive.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.host.GetMaps(), StateChangedCmd(m.rootState.State))
}

type actionHandler func(m *Model, msg actionMsg) tea.Cmd

var actionHandlers = map[Action]actionHandler{
	ActionNone:           func(*Model, actionMsg) tea.Cmd { return nil },
	ActionAddShortcut:    (*Model).addShortcut,
	ActionEditShortcut:   (*Model).editShortcut,
	ActionDeleteShortcut: (*Model).deleteShortcut,
	ActionConfirmDelete:  (*Model).confirmDelete,
	ActionClosePrompt:    (*Model).closePrompt,
	ActionToggleTheme:    (*Model).toggleTheme,
	ActionReloadMaps:     (*Model).reloadMaps,
	ActionToggleHelp:     (*Model).toggleHelp,
	ActionToggleMenu:     (*Model).toggleMenu,
	ActionQuit:           (*Model).quitAction,
}

func (m *Model) addShortcut(actionMsg) tea.Cmd {
	m.popup.Open(nil)
	return nil
}

func (m *Model) editShortcut(msg actionMsg) tea.Cmd {
	req, ok := msg.(EditShortcutRequested)
	if !ok {
		return nil
	}
	for _, entry := range m.shortcuts.Entries() {
		if entry.ID == req.ShortcutID {
			m.popup.Open(&entry)
			return nil
		}
	}
	logrus.Warningf("Shortcut %d is not rendered, cant edit it", req.ShortcutID)
	return nil
}

func (m *Model) deleteShortcut(actionMsg) tea.Cmd {
	active := m.shortcuts.Active()
	if active == nil {
		return nil
	}
	if !*m.config.Get().UI.ConfirmDelete {
		return m.shortcuts.RemoveActive()
	}
	m.confirmationPrompt = NewConfirmationPrompt(
		fmt.Sprintf("Remove shortcut %s?", active.Shortcut),
		m.colors,
		ActionCmd(ActionConfirmDelete),
		ActionCmd(ActionClosePrompt))
	m.rootState.State.ShowConfirmationPrompt = true
	return nil
}

func (m *Model) confirmDelete(actionMsg) tea.Cmd {
	m.rootState.State.ShowConfirmationPrompt = false
	return m.shortcuts.RemoveActive()
}

func (m *Model) closePrompt(actionMsg) tea.Cmd {
	m.rootState.State.ShowConfirmationPrompt = false
	return nil
}

func (m *Model) toggleTheme(actionMsg) tea.Cmd {
	theme := m.colors.Toggle()
	logrus.Debugf("Theme switched to %s", theme.Value())
	return OperationStatusCmd(OperationNameToggleTheme, nil)
}

func (m *Model) reloadMaps(actionMsg) tea.Cmd {
	return m.host.GetMaps()
}

func (m *Model) toggleHelp(actionMsg) tea.Cmd {
	m.rootState.ToggleFullHelp()
	return nil
}

func (m *Model) toggleMenu(actionMsg) tea.Cmd {
	m.rootState.ToggleMenu()
	m.layout.SetMenuOpen(m.rootState.State.MenuOpen)
	return nil
}

func (m *Model) quitAction(actionMsg) tea.Cmd {
	return m.quit()
}

// quit persists the description being edited before the program exits.
func (m *Model) quit() tea.Cmd {
	return tea.Sequence(m.shortcuts.FlushPending(), tea.Quit)
}

func (m *Model) handleMapsLoaded(msg MapsLoaded) tea.Cmd {
	if msg.Err != nil {
		logrus.WithError(msg.Err).Error("Cant load maps")
		flush := m.shortcuts.Clear()
		m.carousel.SetMaps(nil)
		return tea.Batch(
			flush,
			OperationStatusCmd(OperationNameLoadMaps, msg.Err),
			m.host.Log(fmt.Sprintf("failed to load maps: %v", msg.Err)),
		)
	}

	logrus.Debugf("Loaded %d maps", len(msg.Maps))
	if len(msg.Maps) == 0 {
		flush := m.shortcuts.Clear()
		return tea.Batch(flush, m.carousel.SetMaps(nil))
	}
	return m.carousel.SetMaps(msg.Maps)
}

func (m *Model) handleMapSelected(msg MapSelected) tea.Cmd {
	id, ok := m.carousel.ActiveMapID()
	if !ok || id != msg.MapID {
		logrus.Debugf("Dropping stale selection of map %d", msg.MapID)
		return nil
	}
	return m.shortcuts.LoadForMap(msg.MapID, m.carousel.ActiveMapName())
}

// handleCaptureSaved applies a host confirmed save to the list, the popup only
// reacts to the result of its current session.
func (m *Model) handleCaptureSaved(msg CaptureSaved) tea.Cmd {
	current := msg.Session == m.popup.Session() && m.popup.State() == CaptureSubmitting
	cmds := []tea.Cmd{m.popup.Update(msg)}
	if msg.Err != nil || msg.Request.MapID != m.shortcuts.MapID() {
		return tea.Batch(cmds...)
	}

	if msg.Request.ID != nil {
		m.shortcuts.UpdateShortcut(*msg.Request.ID, msg.Request.Shortcut)
		return tea.Batch(cmds...)
	}

	entry := store.Shortcut{
		ID:          msg.ID,
		MapID:       msg.Request.MapID,
		Shortcut:    msg.Request.Shortcut,
		Description: msg.Request.Description,
	}
	if current {
		m.rootState.SetFocus(FocusShortcuts)
	}
	cmds = append(cmds, m.shortcuts.AddEntry(entry, current))
	return tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m.quit()
	}

	switch {
	case m.popup.IsOpen():
		return m.popup.Update(msg)
	case m.rootState.State.ShowConfirmationPrompt:
		return m.confirmationPrompt.Update(msg)
	case m.rootState.State.MenuOpen:
		return m.menu.Update(msg)
	case m.shortcuts.Editing():
		return m.shortcuts.Update(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Tab):
		m.rootState.ToggleFocus()
		return nil
	case key.Matches(msg, m.keys.ToggleTheme):
		return ActionCmd(ActionToggleTheme)
	case key.Matches(msg, m.keys.Menu):
		return ActionCmd(ActionToggleMenu)
	case key.Matches(msg, m.keys.Reload):
		return ReloadMapsCmd()
	case key.Matches(msg, m.keys.ShowFullHelp):
		return ActionCmd(ActionToggleHelp)
	case key.Matches(msg, m.keys.Back) && m.rootState.State.ShowFullHelp:
		return ActionCmd(ActionToggleHelp)
	case key.Matches(msg, m.keys.Add):
		return AddShortcutCmd()
	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Right),
		key.Matches(msg, m.keys.PageLeft), key.Matches(msg, m.keys.PageRight):
		return m.carousel.Update(msg)
	}

	if m.rootState.State.Focus == FocusCarousel {
		if key.Matches(msg, m.keys.Enter) || key.Matches(msg, m.keys.Down) {
			m.rootState.SetFocus(FocusShortcuts)
		}
		return nil
	}
	return m.shortcuts.Update(msg)
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.popup.IsOpen() || m.rootState.State.ShowConfirmationPrompt {
		return nil
	}

	if m.carousel.Dragging() {
		lx, ly, _ := m.layout.InCarousel(msg.X, msg.Y)
		local := msg
		local.X, local.Y = lx, ly
		return m.carousel.HandleMouse(local)
	}

	pressed := msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft
	if row, ok := m.layout.InMenu(msg.X, msg.Y); ok {
		if pressed {
			return m.menu.ClickAt(row)
		}
		return nil
	}

	if lx, ly, ok := m.layout.InCarousel(msg.X, msg.Y); ok {
		if pressed {
			m.rootState.SetFocus(FocusCarousel)
		}
		local := msg
		local.X, local.Y = lx, ly
		return m.carousel.HandleMouse(local)
	}

	if lx, ly, ok := m.layout.InList(msg.X, msg.Y); ok {
		if pressed {
			m.rootState.SetFocus(FocusShortcuts)
		}
		local := msg
		local.X, local.Y = lx, ly
		return m.shortcuts.Update(local)
	}

	return nil
}

// syncState mirrors widget owned modes into the root state.
func (m *Model) syncState() {
	m.rootState.State.Capturing = m.popup.IsOpen()
	m.rootState.State.EditingDescription = m.shortcuts.Editing()
	m.layout.SetMenuOpen(m.rootState.State.MenuOpen)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	logrus.Debugf("Received a message in root: %T", msg)
	var cmds []tea.Cmd
	before := m.rootState.State

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout.SetHeight(msg.Height)
		m.layout.SetWidth(msg.Width)
	case ConfigReloaded:
		logrus.Debug("Received config reloaded event in root")
		m.colors.SetTheme(*m.config.Get().UI.Theme)
		cmds = append(cmds, OperationStatusCmd(OperationNameReloadConfig, nil))
	case ReloadMapsRequested:
		logrus.Debug("Reloading maps")
		cmds = append(cmds, m.host.GetMaps())
	case MapsLoaded:
		cmds = append(cmds, m.handleMapsLoaded(msg))
	case MapSelected:
		cmds = append(cmds, m.handleMapSelected(msg))
	case ShortcutsLoaded, ShortcutDeleted, DescriptionSaved, descriptionSaveTick, flashExpired:
		cmds = append(cmds, m.shortcuts.Update(msg))
	case CaptureSaved:
		cmds = append(cmds, m.handleCaptureSaved(msg))
	case carouselTick:
		cmds = append(cmds, m.carousel.Update(msg))
	case actionMsg:
		handler, ok := actionHandlers[msg.action()]
		if !ok {
			logrus.Warningf("No handler for action %d", msg.action())
			break
		}
		cmds = append(cmds, handler(&m, msg))
	case tea.MouseMsg:
		cmds = append(cmds, m.handleMouse(msg))
	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))
	}

	m.syncState()
	if m.rootState.State != before {
		cmds = append(cmds, StateChangedCmd(m.rootState.State))
	}

	cmds = append(cmds, m.header.Update(msg))

	return m, tea.Batch(cmds...)
}

func (m Model) overlay() (string, bool) {
	width, height := m.layout.PromptWidth()-panelBorder, m.layout.PromptHeight()-panelBorder
	var content string
	switch {
	case m.popup.IsOpen():
		m.popup.SetWidth(width)
		m.popup.SetHeight(height)
		content = m.popup.View()
	case m.rootState.State.ShowConfirmationPrompt && m.confirmationPrompt != nil:
		m.confirmationPrompt.SetWidth(width)
		m.confirmationPrompt.SetHeight(height)
		content = m.confirmationPrompt.View()
	default:
		return "", false
	}
	box := m.colors.ActiveBorder().Width(width).Height(height).Render(content)
	return lipgloss.Place(m.layout.AvailableWidth(), m.layout.AvailableHeight(),
		lipgloss.Center, lipgloss.Center, box), true
}

func (m Model) mainPanels() string {
	inner := m.layout.MainInnerWidth()
	top := m.layout.reservedTop

	carouselStyle, listStyle := m.colors.InactiveBorder(), m.colors.ActiveBorder()
	if m.rootState.State.Focus == FocusCarousel {
		carouselStyle, listStyle = listStyle, carouselStyle
	}

	m.carousel.SetWidth(inner)
	carouselPanel := carouselStyle.Width(inner).Render(m.carousel.View())

	listHeight := m.layout.ListInnerHeight(m.carousel.Height())
	m.shortcuts.SetWidth(inner)
	m.shortcuts.SetHeight(listHeight)
	listPanel := listStyle.Width(inner).Height(listHeight).Render(m.shortcuts.View())

	carouselTop := top + 1
	listTop := carouselTop + m.carousel.Height() + panelBorder
	m.layout.RecordPanels(carouselTop, m.carousel.Height(), listTop, listHeight)

	main := lipgloss.JoinVertical(lipgloss.Left, carouselPanel, listPanel)
	if !m.rootState.State.MenuOpen {
		return main
	}

	menuHeight := max(0, lipgloss.Height(main)-panelBorder)
	m.menu.SetHeight(menuHeight)
	menuPanel := m.colors.ActiveBorder().Width(menuWidth - panelBorder).Height(menuHeight).Render(m.menu.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, menuPanel, main)
}

func (m Model) View() string {
	logrus.Debug("Rendering the root model")

	m.header.SetWidth(m.layout.AvailableWidth())
	header := m.header.View()

	helpView := m.help.ShortHelpView(m.GlobalHelp())
	if m.rootState.State.ShowFullHelp {
		helpView = m.help.FullHelpView(m.keys.FullHelp())
	}
	globalHelp := HelpStyle.Width(m.layout.AvailableWidth()).Render(helpView)

	m.layout.SetReservedTop(lipgloss.Height(header))
	m.layout.SetReservedBelow(lipgloss.Height(globalHelp))

	body, ok := m.overlay()
	if !ok {
		body = m.mainPanels()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, globalHelp)
}

func (m *Model) GlobalHelp() []key.Binding {
	switch {
	case m.popup.IsOpen():
		return []key.Binding{m.keys.ForceQuit}
	case m.rootState.State.ShowConfirmationPrompt:
		return []key.Binding{m.keys.ForceQuit}
	case m.rootState.State.MenuOpen:
		return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter, m.keys.Back}
	case m.shortcuts.Editing():
		return []key.Binding{m.keys.Back, m.keys.ForceQuit}
	}

	bindings := []key.Binding{m.keys.Tab}
	if m.rootState.State.Focus == FocusShortcuts {
		bindings = append(bindings, m.keys.ShortcutsHelp()...)
	} else {
		bindings = append(bindings, m.keys.CarouselHelp()...)
	}
	return append(bindings, m.keys.Menu, m.keys.ShowFullHelp, m.keys.Quit)
}

// Popup exposes the capture popup for inspection.
func (m Model) Popup() *CapturePopup {
	return m.popup
}

func (m Model) Shortcuts() *ShortcutList {
	return m.shortcuts
}

func (m Model) Carousel() *Carousel {
	return m.carousel
}

func (m Model) State() AppState {
	return m.rootState.State
}
