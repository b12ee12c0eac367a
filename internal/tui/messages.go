package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/mynades/mynades/internal/store"
)

type ConfigReloaded struct{}

type ReloadMapsRequested struct{}

func ReloadMapsCmd() tea.Cmd {
	return func() tea.Msg {
		return ReloadMapsRequested{}
	}
}

type MapsLoaded struct {
	Maps []store.Map
	Err  error
}

type MapSelected struct {
	MapID int
	Index int
}

func mapSelectedCmd(mapID, index int) tea.Cmd {
	return func() tea.Msg {
		return MapSelected{MapID: mapID, Index: index}
	}
}

type ShortcutsLoaded struct {
	MapID     int
	LoadGen   int
	Shortcuts []store.Shortcut
	Err       error
}

type CaptureSaved struct {
	Session uuid.UUID
	Request store.SaveShortcutRequest
	ID      int64
	Err     error
}

type DescriptionSaved struct {
	ShortcutID  int64
	Description string
	Err         error
}

type ShortcutDeleted struct {
	MapID      int
	ShortcutID int64
	Err        error
}

type descriptionSaveTick struct {
	shortcutID int64
	gen        int
}

type flashExpired struct {
	shortcutID int64
	gen        int
}

type carouselTick struct {
	gen int
}

type toastExpired struct {
	gen int
}

type Action int

const (
	ActionNone Action = iota
	ActionAddShortcut
	ActionEditShortcut
	ActionDeleteShortcut
	ActionConfirmDelete
	ActionClosePrompt
	ActionToggleTheme
	ActionReloadMaps
	ActionToggleHelp
	ActionToggleMenu
	ActionQuit
)

// actionMsg is implemented by every message routed through the root action table.
type actionMsg interface {
	action() Action
}

type AddShortcutRequested struct{}

func (AddShortcutRequested) action() Action { return ActionAddShortcut }

type EditShortcutRequested struct {
	ShortcutID int64
}

func (EditShortcutRequested) action() Action { return ActionEditShortcut }

type DeleteShortcutRequested struct{}

func (DeleteShortcutRequested) action() Action { return ActionDeleteShortcut }

type ActionRequested struct {
	Action Action
}

func (a ActionRequested) action() Action { return a.Action }

func AddShortcutCmd() tea.Cmd {
	return func() tea.Msg {
		return AddShortcutRequested{}
	}
}

func EditShortcutCmd(shortcutID int64) tea.Cmd {
	return func() tea.Msg {
		return EditShortcutRequested{ShortcutID: shortcutID}
	}
}

func deleteShortcutCmd() tea.Cmd {
	return func() tea.Msg {
		return DeleteShortcutRequested{}
	}
}

func ActionCmd(action Action) tea.Cmd {
	return func() tea.Msg {
		return ActionRequested{Action: action}
	}
}

type OperationName int

const (
	OperationNameNone OperationName = iota
	OperationNameLoadMaps
	OperationNameLoadShortcuts
	OperationNameSaveShortcut
	OperationNameSaveDescription
	OperationNameDeleteShortcut
	OperationNameReloadConfig
	OperationNameToggleTheme
)

func (o OperationName) String() string {
	switch o {
	case OperationNameNone:
		return "None"
	case OperationNameLoadMaps:
		return "Load Maps"
	case OperationNameLoadShortcuts:
		return "Load Shortcuts"
	case OperationNameSaveShortcut:
		return "Save Shortcut"
	case OperationNameSaveDescription:
		return "Save Description"
	case OperationNameDeleteShortcut:
		return "Delete Shortcut"
	case OperationNameReloadConfig:
		return "Reload Config"
	case OperationNameToggleTheme:
		return "Toggle Theme"
	}
	return fmt.Sprintf("Unknown (%d)", int(o))
}

// showSuccessToUser lists the operations whose success is worth a toast.
func (o OperationName) showSuccessToUser() bool {
	switch o {
	case OperationNameSaveShortcut, OperationNameDeleteShortcut, OperationNameReloadConfig:
		return true
	default:
		return false
	}
}

type OperationStatus struct {
	name OperationName
	err  error
}

func (o OperationStatus) IsError() bool {
	return o.err != nil
}

func (o OperationStatus) String() string {
	if o.err != nil {
		return fmt.Sprintf("%s: %v", o.name, o.err)
	}
	return o.name.String() + ": success"
}

func OperationStatusCmd(name OperationName, err error) tea.Cmd {
	return func() tea.Msg {
		return OperationStatus{name: name, err: err}
	}
}

type StateChanged struct {
	State AppState
}

func StateChangedCmd(state AppState) tea.Cmd {
	return func() tea.Msg {
		return StateChanged{State: state}
	}
}
