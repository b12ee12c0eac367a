package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mynades/mynades/internal/config"
	"github.com/mynades/mynades/internal/store"
	"github.com/mynades/mynades/internal/testutils"
	"github.com/mynades/mynades/internal/utils"
)

// fastConfig keeps every timer short so tick commands can be executed inline.
func fastConfig(t *testing.T) *config.Config {
	t.Helper()
	return testutils.NewTestConfig(t).WithUI(&config.UISection{
		AutosaveDebounceMs: utils.IntPtr(5),
		FlashDurationMs:    utils.IntPtr(5),
		ToastDurationMs:    utils.IntPtr(5),
	}).Get()
}

// runCmd executes cmd and every command nested in batches, returning the produced messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var msgs []tea.Msg
		for _, c := range msg {
			msgs = append(msgs, runCmd(c)...)
		}
		return msgs
	default:
		return []tea.Msg{msg}
	}
}

func findMsg[T any](msgs []tea.Msg) (T, bool) {
	for _, msg := range msgs {
		if typed, ok := msg.(T); ok {
			return typed, true
		}
	}
	var zero T
	return zero, false
}

func keyRunes(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

// loadedList returns a list showing the shortcuts the bridge holds for mapID.
func loadedList(t *testing.T, cfg *config.Config, bridge *testutils.FakeBridge, mapID int) *ShortcutList {
	t.Helper()
	l := NewShortcutList(cfg, NewColorsManager(cfg), NewHostCommands(bridge, cfg))
	l.SetWidth(80)
	l.SetHeight(12)
	msgs := runCmd(l.LoadForMap(mapID, "Mirage"))
	loaded, ok := findMsg[ShortcutsLoaded](msgs)
	if !ok {
		t.Fatalf("expected shortcuts to be loaded, got %v", msgs)
	}
	l.Update(loaded)
	return l
}

func shortcut(id int64, chord, description string) store.Shortcut {
	return store.Shortcut{ID: id, Shortcut: chord, Description: description}
}
