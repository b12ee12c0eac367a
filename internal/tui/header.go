package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mynades/mynades/internal/config"
	"github.com/sirupsen/logrus"
)

// Header shows the title, the current mode and short lived toasts.
type Header struct {
	cfg     *config.Config
	colors  *ColorsManager
	title   string
	version string
	mode    string
	width   int

	err      string
	success  string
	toastGen int
}

func NewHeader(title, version string, cfg *config.Config, colors *ColorsManager) *Header {
	return &Header{
		cfg:     cfg,
		colors:  colors,
		title:   title,
		version: version,
	}
}

func (h *Header) GetMode() string {
	return h.mode
}

func (h *Header) GetError() string {
	return h.err
}

func (h *Header) GetSuccess() string {
	return h.success
}

func (h *Header) toastExpiry() tea.Cmd {
	h.toastGen++
	gen := h.toastGen
	delay := time.Duration(*h.cfg.Get().UI.ToastDurationMs) * time.Millisecond
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return toastExpired{gen: gen}
	})
}

func (h *Header) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case StateChanged:
		h.mode = msg.State.String()
	case OperationStatus:
		logrus.Debugf("Header received operation status: %s", msg.String())
		switch {
		case msg.IsError():
			h.err = msg.String()
			h.success = ""
			return h.toastExpiry()
		case msg.name.showSuccessToUser():
			h.err = ""
			h.success = msg.String()
			return h.toastExpiry()
		}
	case toastExpired:
		if msg.gen == h.toastGen {
			h.err = ""
			h.success = ""
		}
	}
	return nil
}

func (h *Header) View() string {
	sections := []string{}
	availableSpace := h.width

	header := h.colors.HeaderStyle().Render(h.title)
	availableSpace -= lipgloss.Width(header)
	sections = append(sections, header)

	version := ""
	if h.version != "" {
		version = h.colors.MutedStyle().Render(" " + h.version)
		availableSpace -= lipgloss.Width(version)
		sections = append(sections, version)
	}

	var status string
	switch {
	case h.err != "":
		status = h.colors.ErrorStyle().Render(h.err)
	case h.success != "":
		status = h.colors.SuccessStyle().Render(h.success)
	}
	availableSpace -= lipgloss.Width(status)

	mode := h.colors.HeaderIndicatorStyle().Render(h.mode + " · " + h.colors.Theme().Value())
	availableSpace -= lipgloss.Width(mode)

	spacer := lipgloss.NewStyle().Width(max(0, availableSpace)).Render("")
	sections = append(sections, spacer, status, mode)

	return lipgloss.JoinHorizontal(lipgloss.Left, sections...)
}

func (h *Header) SetWidth(width int) {
	h.width = width
}
