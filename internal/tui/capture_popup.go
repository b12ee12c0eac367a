package tui

import (
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/mynades/mynades/internal/config"
	"github.com/mynades/mynades/internal/errs"
	"github.com/mynades/mynades/internal/keychord"
	"github.com/mynades/mynades/internal/store"
	"github.com/mynades/mynades/internal/utils"
	"github.com/sirupsen/logrus"
)

type CaptureState int

const (
	CaptureClosed CaptureState = iota
	CaptureListening
	CaptureDuplicate
	CaptureSubmitting
)

func (c CaptureState) String() string {
	switch c {
	case CaptureClosed:
		return "Closed"
	case CaptureListening:
		return "Listening"
	case CaptureDuplicate:
		return "Duplicate"
	case CaptureSubmitting:
		return "Submitting"
	}
	return fmt.Sprintf("Unknown (%d)", int(c))
}

type shortcutSource interface {
	Entries() []store.Shortcut
}

type activeMapSource interface {
	ActiveMapID() (int, bool)
}

// CapturePopup owns the single key capture session: the entry being re-bound (if any)
// and the last chord typed while it is open.
type CapturePopup struct {
	cfg    *config.Config
	colors *ColorsManager
	host   *HostCommands
	help   *CustomHelp

	shortcuts shortcutSource
	maps      activeMapSource

	state    CaptureState
	session  uuid.UUID
	target   *store.Shortcut
	captured string
	message  string

	width  int
	height int
}

func NewCapturePopup(cfg *config.Config, colors *ColorsManager, host *HostCommands,
	shortcuts shortcutSource, maps activeMapSource,
) *CapturePopup {
	return &CapturePopup{
		cfg:       cfg,
		colors:    colors,
		host:      host,
		help:      NewCustomHelp(colors),
		shortcuts: shortcuts,
		maps:      maps,
	}
}

func (p *CapturePopup) State() CaptureState {
	return p.state
}

func (p *CapturePopup) IsOpen() bool {
	return p.state != CaptureClosed
}

func (p *CapturePopup) Captured() string {
	return p.captured
}

func (p *CapturePopup) Message() string {
	return p.message
}

func (p *CapturePopup) Session() uuid.UUID {
	return p.session
}

func (p *CapturePopup) logger() *logrus.Entry {
	return logrus.WithField("session", p.session.String())
}

// Open starts a new session, replacing the one in progress. A nil target creates a new entry.
func (p *CapturePopup) Open(target *store.Shortcut) {
	if p.IsOpen() {
		p.logger().Debug("Replacing the open capture session")
	}
	p.session = uuid.New()
	p.state = CaptureListening
	p.captured = ""
	p.message = ""
	p.target = nil
	if target != nil {
		t := *target
		p.target = &t
	}
	p.logger().WithField("editing", p.target != nil).Debug("Capture session opened")
}

func (p *CapturePopup) Close() {
	if p.IsOpen() {
		p.logger().Debug("Capture session closed")
	}
	p.state = CaptureClosed
	p.captured = ""
	p.message = ""
	p.target = nil
}

// CanConfirm reports whether the confirm control is enabled.
func (p *CapturePopup) CanConfirm() bool {
	return p.state == CaptureListening && p.captured != ""
}

func (p *CapturePopup) bindings() (key.Binding, key.Binding) {
	capture := p.cfg.Get().Capture
	confirm := key.NewBinding(
		key.WithKeys(capture.ConfirmKeys...),
		key.WithHelp(capture.ConfirmKeys[0], "confirm"),
	)
	cancel := key.NewBinding(
		key.WithKeys(capture.CancelKeys...),
		key.WithHelp(capture.CancelKeys[0], "cancel"),
	)
	return confirm, cancel
}

// isDuplicate scans the rendered entries, the entry being edited never collides with itself.
func (p *CapturePopup) isDuplicate(chord string) bool {
	return slices.ContainsFunc(p.shortcuts.Entries(), func(entry store.Shortcut) bool {
		if p.target != nil && entry.ID == p.target.ID {
			return false
		}
		return entry.Shortcut == chord
	})
}

// Capture records a formatted chord and re-validates it.
func (p *CapturePopup) Capture(chord string) {
	if p.state != CaptureListening && p.state != CaptureDuplicate {
		return
	}
	if chord == "" {
		return
	}
	p.captured = chord
	p.message = ""
	if p.isDuplicate(chord) {
		p.state = CaptureDuplicate
		return
	}
	p.state = CaptureListening
}

// Confirm validates the session and issues the save.
func (p *CapturePopup) Confirm() tea.Cmd {
	if p.state != CaptureListening {
		return nil
	}

	var validationErr error
	mapID, ok := p.maps.ActiveMapID()
	switch {
	case p.captured == "":
		validationErr = errs.ErrNoKeyCaptured
		p.message = "Press a key combination first"
	case !ok:
		validationErr = errs.ErrNoActiveMap
		p.message = "Select a map first"
	}
	if validationErr != nil {
		p.logger().WithError(validationErr).Debug("Capture confirm rejected")
		return p.host.Log("capture rejected: " + validationErr.Error())
	}

	req := store.SaveShortcutRequest{MapID: mapID, Shortcut: p.captured}
	if p.target != nil {
		req.ID = utils.JustPtr(p.target.ID)
		req.Description = p.target.Description
	}
	p.state = CaptureSubmitting
	p.message = ""
	p.logger().WithField("shortcut", req.Shortcut).Debug("Submitting captured shortcut")
	return p.host.SaveCaptured(p.session, req)
}

func (p *CapturePopup) handleSaved(msg CaptureSaved) tea.Cmd {
	if msg.Session != p.session || p.state != CaptureSubmitting {
		logrus.WithField("session", msg.Session.String()).Debug("Dropping result of a replaced capture session")
		return nil
	}
	if msg.Err != nil {
		p.logger().WithError(msg.Err).Error("Cant save captured shortcut")
		p.state = CaptureListening
		p.message = "Saving failed: " + rootCause(msg.Err).Error()
		return OperationStatusCmd(OperationNameSaveShortcut, msg.Err)
	}
	p.Close()
	return OperationStatusCmd(OperationNameSaveShortcut, nil)
}

func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

func (p *CapturePopup) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case CaptureSaved:
		return p.handleSaved(msg)
	case tea.KeyMsg:
		if !p.IsOpen() || p.state == CaptureSubmitting {
			return nil
		}
		confirm, cancel := p.bindings()
		switch {
		case key.Matches(msg, cancel):
			p.Close()
			return nil
		case key.Matches(msg, confirm):
			return p.Confirm()
		}
		p.Capture(keychord.FromKeyMsgString(msg))
	}
	return nil
}

func (p *CapturePopup) SetWidth(width int) {
	p.width = width
}

func (p *CapturePopup) SetHeight(height int) {
	p.height = height
}

func (p *CapturePopup) View() string {
	sections := []string{}

	title := "Add shortcut"
	if p.target != nil {
		title = "Edit shortcut " + p.target.Shortcut
	}
	sections = append(sections, p.colors.TitleStyle().Margin(0, 0, 1, 0).Render(title))

	captured := p.colors.MutedStyle().Render("Press a key combination...")
	if p.captured != "" {
		captured = p.colors.ChordStyle().Render(p.captured)
	}
	sections = append(sections, captured, "")

	switch {
	case p.state == CaptureDuplicate:
		sections = append(sections, p.colors.WarningStyle().Render("Shortcut already in use"))
	case p.state == CaptureSubmitting:
		sections = append(sections, p.colors.InfoStyle().Render("Saving..."))
	case p.message != "":
		sections = append(sections, p.colors.ErrorStyle().Render(p.message))
	default:
		sections = append(sections, "")
	}

	confirm, cancel := p.bindings()
	if !p.CanConfirm() {
		confirm.SetEnabled(false)
	}
	help := p.help.ShortHelpView([]key.Binding{confirm, cancel})
	if !p.CanConfirm() {
		help = p.colors.MutedStyle().Render(confirm.Help().Key+" confirm (disabled)") + "  " + help
	}
	sections = append(sections, "", help)

	view := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.Place(p.width, p.height, lipgloss.Center, lipgloss.Center, view)
}
