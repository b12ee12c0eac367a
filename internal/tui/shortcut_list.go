package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mynades/mynades/internal/config"
	"github.com/mynades/mynades/internal/store"
	"github.com/mynades/mynades/internal/utils"
	"github.com/sirupsen/logrus"
)

const chordColumnWidth = 26

type flashState int

const (
	flashNone flashState = iota
	flashSuccess
	flashFailure
)

type ShortcutItem struct {
	ID       int64
	MapID    int
	Shortcut string

	input    textinput.Model
	saveGen  int
	flash    flashState
	flashGen int
}

func (s *ShortcutItem) Description() string {
	return s.input.Value()
}

func (s *ShortcutItem) entry() store.Shortcut {
	return store.Shortcut{ID: s.ID, MapID: s.MapID, Shortcut: s.Shortcut, Description: s.Description()}
}

// ShortcutList renders the shortcuts of the selected map and keeps at most one of them active.
type ShortcutList struct {
	cfg    *config.Config
	colors *ColorsManager
	host   *HostCommands
	help   *CustomHelp

	mapID   int
	mapName string
	loading bool
	loadGen int
	items   []*ShortcutItem
	active  int
	editing bool

	// shortcut ids with a delete request in flight
	deleting map[int64]bool

	scroll int
	width  int
	height int
}

func NewShortcutList(cfg *config.Config, colors *ColorsManager, host *HostCommands) *ShortcutList {
	return &ShortcutList{
		cfg:      cfg,
		colors:   colors,
		host:     host,
		help:     NewCustomHelp(colors),
		active:   -1,
		deleting: map[int64]bool{},
	}
}

// LoadForMap drops the rendered entries and fetches the shortcuts of mapID.
func (l *ShortcutList) LoadForMap(mapID int, mapName string) tea.Cmd {
	logrus.Debugf("Loading shortcuts for map %d", mapID)
	flush := l.FlushPending()
	l.items = nil
	l.active = -1
	l.editing = false
	l.scroll = 0
	l.mapID = mapID
	l.mapName = mapName
	l.loading = true
	l.loadGen++
	return tea.Batch(flush, l.host.ListShortcuts(mapID, l.loadGen))
}

// Clear empties the list without fetching, used when no map is selected.
func (l *ShortcutList) Clear() tea.Cmd {
	flush := l.FlushPending()
	l.items = nil
	l.active = -1
	l.editing = false
	l.mapID = 0
	l.mapName = ""
	l.loading = false
	l.loadGen++
	return flush
}

func (l *ShortcutList) MapID() int {
	return l.mapID
}

func (l *ShortcutList) Items() []*ShortcutItem {
	return l.items
}

// Entries returns a snapshot of the rendered entries.
func (l *ShortcutList) Entries() []store.Shortcut {
	entries := make([]store.Shortcut, 0, len(l.items))
	for _, item := range l.items {
		entries = append(entries, item.entry())
	}
	return entries
}

func (l *ShortcutList) ActiveIndex() int {
	return l.active
}

func (l *ShortcutList) Active() *ShortcutItem {
	if l.active < 0 || l.active >= len(l.items) {
		return nil
	}
	return l.items[l.active]
}

func (l *ShortcutList) Editing() bool {
	return l.editing
}

// RemoveEnabled reports whether the remove control is usable.
func (l *ShortcutList) RemoveEnabled() bool {
	return len(l.items) > 0
}

func (l *ShortcutList) indexOf(id int64) int {
	return slices.IndexFunc(l.items, func(item *ShortcutItem) bool { return item.ID == id })
}

func (l *ShortcutList) newInput(description string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "add a description"
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.Width = max(1, l.width-chordColumnWidth-lipgloss.Width(activeMarker)-3)
	ti.SetValue(description)
	ti.Blur()
	return ti
}

// AddEntry appends an entry, optionally making it active with its description focused.
func (l *ShortcutList) AddEntry(entry store.Shortcut, makeActive bool) tea.Cmd {
	l.items = append(l.items, &ShortcutItem{
		ID:       entry.ID,
		MapID:    entry.MapID,
		Shortcut: entry.Shortcut,
		input:    l.newInput(entry.Description),
	})
	if !makeActive {
		return nil
	}
	cmd := l.SetActive(len(l.items) - 1)
	return tea.Batch(cmd, l.focusDescription())
}

// SetActive clears the active marker from every entry and sets it on index.
func (l *ShortcutList) SetActive(index int) tea.Cmd {
	if index < 0 || index >= len(l.items) {
		return nil
	}
	var cmd tea.Cmd
	if l.editing && index != l.active {
		cmd = l.blurDescription()
	}
	l.active = index
	l.ensureVisible()
	return cmd
}

// RemoveActive asks the host to delete the active entry, the entry is only removed
// once the host confirms.
func (l *ShortcutList) RemoveActive() tea.Cmd {
	item := l.Active()
	if item == nil {
		return nil
	}
	if l.deleting[item.ID] {
		logrus.Debugf("Delete of shortcut %d already in flight", item.ID)
		return nil
	}
	logrus.Debugf("Requesting delete of shortcut %d", item.ID)
	l.deleting[item.ID] = true
	return l.host.DeleteShortcut(item.MapID, item.ID)
}

// UpdateShortcut replaces the chord of an entry after a confirmed re-capture.
func (l *ShortcutList) UpdateShortcut(id int64, shortcut string) {
	if idx := l.indexOf(id); idx >= 0 {
		l.items[idx].Shortcut = shortcut
	}
}

func (l *ShortcutList) focusDescription() tea.Cmd {
	item := l.Active()
	if item == nil {
		return nil
	}
	l.editing = true
	return item.input.Focus()
}

// blurDescription leaves the editor and persists the description right away.
func (l *ShortcutList) blurDescription() tea.Cmd {
	item := l.Active()
	l.editing = false
	if item == nil {
		return nil
	}
	item.input.Blur()
	item.saveGen++
	return l.saveDescription(item)
}

// FlushPending persists the description being edited, if any.
func (l *ShortcutList) FlushPending() tea.Cmd {
	if !l.editing {
		return nil
	}
	return l.blurDescription()
}

func (l *ShortcutList) saveDescription(item *ShortcutItem) tea.Cmd {
	return l.host.SaveDescription(store.SaveShortcutRequest{
		MapID:       item.MapID,
		Shortcut:    item.Shortcut,
		Description: item.Description(),
		ID:          utils.JustPtr(item.ID),
	})
}

func (l *ShortcutList) scheduleSave(item *ShortcutItem) tea.Cmd {
	item.saveGen++
	id, gen := item.ID, item.saveGen
	delay := time.Duration(*l.cfg.Get().UI.AutosaveDebounceMs) * time.Millisecond
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return descriptionSaveTick{shortcutID: id, gen: gen}
	})
}

func (l *ShortcutList) startFlash(item *ShortcutItem, state flashState) tea.Cmd {
	item.flash = state
	item.flashGen++
	id, gen := item.ID, item.flashGen
	delay := time.Duration(*l.cfg.Get().UI.FlashDurationMs) * time.Millisecond
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return flashExpired{shortcutID: id, gen: gen}
	})
}

func (l *ShortcutList) handleLoaded(msg ShortcutsLoaded) tea.Cmd {
	if msg.MapID != l.mapID || msg.LoadGen != l.loadGen {
		logrus.Debugf("Dropping stale shortcuts for map %d (load %d, current %d)", msg.MapID, msg.LoadGen, l.loadGen)
		return nil
	}
	l.loading = false
	l.items = nil
	l.active = -1
	l.editing = false
	if msg.Err != nil {
		logrus.WithError(msg.Err).Error("Cant load shortcuts")
		return l.host.Log(fmt.Sprintf("failed to load shortcuts for map %d: %v", msg.MapID, msg.Err))
	}

	for _, entry := range msg.Shortcuts {
		l.AddEntry(entry, false)
	}
	return l.SetActive(0)
}

func (l *ShortcutList) handleDeleted(msg ShortcutDeleted) tea.Cmd {
	delete(l.deleting, msg.ShortcutID)
	if msg.Err != nil {
		logrus.WithError(msg.Err).Error("Cant delete shortcut")
		return tea.Batch(
			OperationStatusCmd(OperationNameDeleteShortcut, msg.Err),
			l.host.Log(fmt.Sprintf("failed to delete shortcut %d: %v", msg.ShortcutID, msg.Err)),
		)
	}
	if msg.MapID != l.mapID {
		return OperationStatusCmd(OperationNameDeleteShortcut, nil)
	}

	idx := l.indexOf(msg.ShortcutID)
	if idx < 0 {
		return OperationStatusCmd(OperationNameDeleteShortcut, nil)
	}
	if idx == l.active {
		l.editing = false
	}
	l.items = slices.Delete(l.items, idx, idx+1)

	switch {
	case len(l.items) == 0:
		l.active = -1
	case idx < l.active:
		l.active--
	case idx == l.active && l.active >= len(l.items):
		l.active = len(l.items) - 1
	}
	l.ensureVisible()

	return OperationStatusCmd(OperationNameDeleteShortcut, nil)
}

func (l *ShortcutList) handleSaved(msg DescriptionSaved) tea.Cmd {
	idx := l.indexOf(msg.ShortcutID)
	if msg.Err != nil {
		logrus.WithError(msg.Err).Error("Cant save description")
		cmds := []tea.Cmd{OperationStatusCmd(OperationNameSaveDescription, msg.Err)}
		if idx >= 0 {
			cmds = append(cmds, l.startFlash(l.items[idx], flashFailure))
		}
		return tea.Batch(cmds...)
	}
	if idx < 0 {
		return nil
	}
	return l.startFlash(l.items[idx], flashSuccess)
}

// ClickAt activates the entry under the row, clicking the description column also focuses it.
func (l *ShortcutList) ClickAt(x, row int) tea.Cmd {
	index := l.scroll + row - l.headerLines()
	if row < l.headerLines() || index < 0 || index >= len(l.items) {
		return nil
	}
	cmd := l.SetActive(index)
	if x >= lipgloss.Width(activeMarker)+chordColumnWidth && !l.editing {
		return tea.Batch(cmd, l.focusDescription())
	}
	return cmd
}

func (l *ShortcutList) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ShortcutsLoaded:
		return l.handleLoaded(msg)
	case ShortcutDeleted:
		return l.handleDeleted(msg)
	case DescriptionSaved:
		return l.handleSaved(msg)
	case descriptionSaveTick:
		idx := l.indexOf(msg.shortcutID)
		if idx < 0 || l.items[idx].saveGen != msg.gen {
			return nil
		}
		return l.saveDescription(l.items[idx])
	case flashExpired:
		if idx := l.indexOf(msg.shortcutID); idx >= 0 && l.items[idx].flashGen == msg.gen {
			l.items[idx].flash = flashNone
		}
		return nil
	case tea.MouseMsg:
		switch {
		case msg.Action != tea.MouseActionPress:
		case msg.Button == tea.MouseButtonWheelUp:
			return l.SetActive(l.active - 1)
		case msg.Button == tea.MouseButtonWheelDown:
			return l.SetActive(l.active + 1)
		case msg.Button == tea.MouseButtonLeft:
			return l.ClickAt(msg.X, msg.Y)
		}
		return nil
	case tea.KeyMsg:
		if l.editing {
			return l.updateEditing(msg)
		}
		switch {
		case key.Matches(msg, rootKeyMap.Up):
			return l.SetActive(l.active - 1)
		case key.Matches(msg, rootKeyMap.Down):
			return l.SetActive(l.active + 1)
		case key.Matches(msg, rootKeyMap.EditDesc):
			return l.focusDescription()
		case key.Matches(msg, rootKeyMap.Add):
			return AddShortcutCmd()
		case key.Matches(msg, rootKeyMap.EditKey):
			if item := l.Active(); item != nil {
				return EditShortcutCmd(item.ID)
			}
		case key.Matches(msg, rootKeyMap.Delete):
			if l.RemoveEnabled() {
				return deleteShortcutCmd()
			}
		}
	}
	return nil
}

func (l *ShortcutList) updateEditing(msg tea.KeyMsg) tea.Cmd {
	item := l.Active()
	if item == nil {
		l.editing = false
		return nil
	}
	if msg.Type == tea.KeyEsc || msg.Type == tea.KeyEnter {
		return l.blurDescription()
	}

	before := item.input.Value()
	var cmd tea.Cmd
	item.input, cmd = item.input.Update(msg)
	if item.input.Value() == before {
		return cmd
	}
	return tea.Batch(cmd, l.scheduleSave(item))
}

func (l *ShortcutList) SetWidth(width int) {
	l.width = width
	for _, item := range l.items {
		item.input.Width = max(1, width-chordColumnWidth-lipgloss.Width(activeMarker)-3)
	}
}

func (l *ShortcutList) SetHeight(height int) {
	l.height = height
	l.ensureVisible()
}

func (l *ShortcutList) headerLines() int {
	return 2
}

func (l *ShortcutList) visibleRows() int {
	return max(1, l.height-l.headerLines()-1)
}

func (l *ShortcutList) ensureVisible() {
	if l.active < 0 {
		l.scroll = 0
		return
	}
	rows := l.visibleRows()
	if l.active < l.scroll {
		l.scroll = l.active
	}
	if l.active >= l.scroll+rows {
		l.scroll = l.active - rows + 1
	}
}

func (l *ShortcutList) renderItem(index int, item *ShortcutItem) string {
	marker := inactiveMarker
	chordStyle := l.colors.ListItemUnselected()
	if index == l.active {
		marker = activeMarker
		chordStyle = l.colors.ListItemSelected()
	}
	chord := chordStyle.Render(ansi.Truncate(item.Shortcut, chordColumnWidth-1, "…"))
	chord += strings.Repeat(" ", max(0, chordColumnWidth-lipgloss.Width(chord)))

	var description string
	switch {
	case index == l.active && l.editing:
		description = item.input.View()
	case item.Description() == "":
		description = l.colors.MutedStyle().Render(item.input.Placeholder)
	default:
		width := max(1, l.width-chordColumnWidth-lipgloss.Width(activeMarker)-3)
		description = ansi.Truncate(item.Description(), width, "…")
	}

	switch item.flash {
	case flashSuccess:
		description = l.colors.FlashStyle(true).Render(description + " " + flashOK)
	case flashFailure:
		description = l.colors.FlashStyle(false).Render(description + " " + flashFailed)
	case flashNone:
	}

	return marker + chord + description
}

func (l *ShortcutList) View() string {
	sections := []string{}
	availableSpace := l.height

	title := "Shortcuts"
	if l.mapName != "" {
		title = fmt.Sprintf("Shortcuts · %s (%d)", l.mapName, len(l.items))
	}
	titleView := l.colors.TitleStyle().Margin(0, 0, 1, 0).Render(title)
	sections = append(sections, titleView)
	availableSpace -= lipgloss.Height(titleView)

	rows := []string{}
	switch {
	case l.loading:
		rows = append(rows, l.colors.MutedStyle().Render("Loading..."))
	case len(l.items) == 0 && l.mapID != 0:
		rows = append(rows, l.colors.MutedStyle().Render("No shortcuts yet, press a to add one"))
	case len(l.items) == 0:
		rows = append(rows, l.colors.MutedStyle().Render("Select a map to see its shortcuts"))
	default:
		end := min(len(l.items), l.scroll+l.visibleRows())
		for i := l.scroll; i < end; i++ {
			rows = append(rows, l.renderItem(i, l.items[i]))
		}
	}

	bindings := []key.Binding{rootKeyMap.Add}
	if l.editing {
		bindings = []key.Binding{rootKeyMap.Back}
	}
	help := l.help.ShortHelpView(bindings)
	remove := l.colors.MutedStyle().Strikethrough(true).Render("d remove")
	if l.RemoveEnabled() {
		remove = l.colors.ErrorStyle().Render("d remove")
	}
	footer := help + "  " + remove
	availableSpace -= lipgloss.Height(footer)

	content := lipgloss.NewStyle().Height(max(0, availableSpace)).Render(strings.Join(rows, "\n"))
	sections = append(sections, content, footer)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
