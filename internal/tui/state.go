package tui

import "fmt"

type FocusZone int

const (
	FocusShortcuts FocusZone = iota
	FocusCarousel
)

func (f FocusZone) String() string {
	switch f {
	case FocusShortcuts:
		return "Shortcuts"
	case FocusCarousel:
		return "Maps"
	default:
		return fmt.Sprintf("Unknown (%d)", int(f))
	}
}

type AppState struct {
	Focus                  FocusZone
	MenuOpen               bool
	Capturing              bool
	EditingDescription     bool
	ShowConfirmationPrompt bool
	ShowFullHelp           bool
}

func (s AppState) String() string {
	switch {
	case s.Capturing:
		return "CAPTURING"
	case s.ShowConfirmationPrompt:
		return "CONFIRM"
	case s.MenuOpen:
		return "MENU"
	case s.EditingDescription:
		return "EDITING"
	default:
		return s.Focus.String()
	}
}

type RootState struct {
	State AppState
}

func NewState() *RootState {
	return &RootState{
		State: AppState{Focus: FocusShortcuts},
	}
}

func (r *RootState) ToggleFocus() {
	if r.State.Focus == FocusShortcuts {
		r.State.Focus = FocusCarousel
		return
	}
	r.State.Focus = FocusShortcuts
}

func (r *RootState) SetFocus(focus FocusZone) bool {
	changed := r.State.Focus != focus
	r.State.Focus = focus
	return changed
}

func (r *RootState) ToggleMenu() {
	r.State.MenuOpen = !r.State.MenuOpen
}

func (r *RootState) ToggleConfirmationPrompt() {
	r.State.ShowConfirmationPrompt = !r.State.ShowConfirmationPrompt
}

func (r *RootState) ToggleFullHelp() {
	r.State.ShowFullHelp = !r.State.ShowFullHelp
}

// Modal reports whether keys are owned by an overlay instead of the focused widget.
func (r *RootState) Modal() bool {
	return r.State.Capturing || r.State.ShowConfirmationPrompt || r.State.MenuOpen
}
