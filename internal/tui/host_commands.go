package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/mynades/mynades/internal/config"
	"github.com/mynades/mynades/internal/host"
	"github.com/mynades/mynades/internal/store"
	"github.com/sirupsen/logrus"
)

// HostCommands wraps bridge calls into commands, results come back as messages.
type HostCommands struct {
	bridge host.Bridge
	cfg    *config.Config
}

func NewHostCommands(bridge host.Bridge, cfg *config.Config) *HostCommands {
	return &HostCommands{
		bridge: bridge,
		cfg:    cfg,
	}
}

func (h *HostCommands) callContext() (context.Context, context.CancelFunc) {
	timeout := time.Duration(*h.cfg.Get().General.HostTimeoutMs) * time.Millisecond
	return context.WithTimeout(context.Background(), timeout)
}

func (h *HostCommands) GetMaps() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := h.callContext()
		defer cancel()
		maps, err := h.bridge.GetMaps(ctx)
		return MapsLoaded{Maps: maps, Err: err}
	}
}

// ListShortcuts fetches the shortcuts of mapID, loadGen identifies the request.
func (h *HostCommands) ListShortcuts(mapID, loadGen int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := h.callContext()
		defer cancel()
		shortcuts, err := h.bridge.ListShortcutsByMap(ctx, mapID)
		return ShortcutsLoaded{MapID: mapID, LoadGen: loadGen, Shortcuts: shortcuts, Err: err}
	}
}

func (h *HostCommands) SaveCaptured(session uuid.UUID, req store.SaveShortcutRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := h.callContext()
		defer cancel()
		id, err := h.bridge.SaveShortcut(ctx, req)
		return CaptureSaved{Session: session, Request: req, ID: id, Err: err}
	}
}

func (h *HostCommands) SaveDescription(req store.SaveShortcutRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := h.callContext()
		defer cancel()
		_, err := h.bridge.SaveShortcut(ctx, req)
		var id int64
		if req.ID != nil {
			id = *req.ID
		}
		return DescriptionSaved{ShortcutID: id, Description: req.Description, Err: err}
	}
}

func (h *HostCommands) DeleteShortcut(mapID int, shortcutID int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := h.callContext()
		defer cancel()
		err := h.bridge.DeleteShortcut(ctx, mapID, shortcutID)
		return ShortcutDeleted{MapID: mapID, ShortcutID: shortcutID, Err: err}
	}
}

// Log forwards a diagnostic to the host, it never produces a message.
func (h *HostCommands) Log(message string) tea.Cmd {
	return func() tea.Msg {
		logrus.WithField("message", message).Debug("Forwarding diagnostic to host")
		ctx, cancel := h.callContext()
		defer cancel()
		h.bridge.LogMessage(ctx, message)
		return nil
	}
}
