package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mynades/mynades/internal/store"
	"github.com/mynades/mynades/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeShortcuts() *testutils.FakeBridge {
	return testutils.NewFakeBridge(store.Map{ID: 1, Name: "Mirage"}).WithShortcuts(1,
		shortcut(5, "Ctrl + K", "kill"),
		shortcut(6, "Alt + F", "find"),
		shortcut(7, "Shift + Tab", ""),
	)
}

func TestShortcutList_LoadForMap(t *testing.T) {
	cfg := fastConfig(t)
	bridge := threeShortcuts()
	l := loadedList(t, cfg, bridge, 1)

	assert.Equal(t, []int{1}, bridge.ListCalls())
	assert.Equal(t, 1, l.MapID())
	assert.Equal(t, 0, l.ActiveIndex())
	assert.True(t, l.RemoveEnabled())

	entries := l.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, store.Shortcut{ID: 5, MapID: 1, Shortcut: "Ctrl + K", Description: "kill"}, entries[0])
	assert.Equal(t, "Shift + Tab", entries[2].Shortcut)

	view := l.View()
	assert.Contains(t, view, "Shortcuts · Mirage (3)")
	assert.Contains(t, view, "► Ctrl + K")
}

func TestShortcutList_StaleLoadIsDropped(t *testing.T) {
	cfg := fastConfig(t)
	bridge := threeShortcuts()
	l := NewShortcutList(cfg, NewColorsManager(cfg), NewHostCommands(bridge, cfg))

	first := runCmd(l.LoadForMap(1, "Mirage"))
	l.LoadForMap(2, "Dust2")
	loaded, ok := findMsg[ShortcutsLoaded](first)
	require.True(t, ok)

	l.Update(loaded)
	assert.Empty(t, l.Items())
	assert.Equal(t, 2, l.MapID())
	assert.Equal(t, -1, l.ActiveIndex())
}

func TestShortcutList_OverlappingLoadsOfSameMap(t *testing.T) {
	cfg := fastConfig(t)
	bridge := threeShortcuts()
	l := NewShortcutList(cfg, NewColorsManager(cfg), NewHostCommands(bridge, cfg))

	first, ok := findMsg[ShortcutsLoaded](runCmd(l.LoadForMap(1, "Mirage")))
	require.True(t, ok)
	second, ok := findMsg[ShortcutsLoaded](runCmd(l.LoadForMap(1, "Mirage")))
	require.True(t, ok)

	tests := []struct {
		name  string
		order []ShortcutsLoaded
	}{
		{name: "in order", order: []ShortcutsLoaded{first, second}},
		{name: "latest arrives first", order: []ShortcutsLoaded{second, first}},
		{name: "latest delivered twice", order: []ShortcutsLoaded{second, second}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, msg := range tt.order {
				l.Update(msg)
			}
			entries := l.Entries()
			require.Len(t, entries, 3)
			assert.Equal(t, "Ctrl + K", entries[0].Shortcut)
			assert.Equal(t, "Shift + Tab", entries[2].Shortcut)
			assert.Equal(t, 0, l.ActiveIndex())
			assert.Contains(t, l.View(), "Shortcuts · Mirage (3)")
		})
	}
}

func TestShortcutList_LoadDroppedAfterClear(t *testing.T) {
	cfg := fastConfig(t)
	bridge := threeShortcuts()
	l := NewShortcutList(cfg, NewColorsManager(cfg), NewHostCommands(bridge, cfg))

	loaded, ok := findMsg[ShortcutsLoaded](runCmd(l.LoadForMap(1, "Mirage")))
	require.True(t, ok)
	l.Clear()
	l.Update(loaded)

	assert.Empty(t, l.Items())
	assert.Equal(t, 0, l.MapID())
}

func TestShortcutList_LoadFailureLogs(t *testing.T) {
	cfg := fastConfig(t)
	bridge := threeShortcuts().FailList(errors.New("db gone"))
	l := NewShortcutList(cfg, NewColorsManager(cfg), NewHostCommands(bridge, cfg))

	loaded, ok := findMsg[ShortcutsLoaded](runCmd(l.LoadForMap(1, "Mirage")))
	require.True(t, ok)
	runCmd(l.Update(loaded))

	assert.Empty(t, l.Items())
	assert.False(t, l.RemoveEnabled())
	require.Len(t, bridge.Messages(), 1)
	assert.Contains(t, bridge.Messages()[0], "db gone")
}

func TestShortcutList_SetActive(t *testing.T) {
	cfg := fastConfig(t)
	l := loadedList(t, cfg, threeShortcuts(), 1)

	l.SetActive(2)
	assert.Equal(t, 2, l.ActiveIndex())
	assert.Equal(t, int64(7), l.Active().ID)

	l.SetActive(5)
	assert.Equal(t, 2, l.ActiveIndex(), "out of range index is ignored")

	l.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, l.ActiveIndex())
	l.Update(keyRunes("j"))
	assert.Equal(t, 2, l.ActiveIndex())
}

func TestShortcutList_AddEntry(t *testing.T) {
	cfg := fastConfig(t)
	l := loadedList(t, cfg, threeShortcuts(), 1)

	l.AddEntry(store.Shortcut{ID: 9, MapID: 1, Shortcut: "F5"}, false)
	assert.Equal(t, 0, l.ActiveIndex())
	assert.False(t, l.Editing())

	l.AddEntry(store.Shortcut{ID: 10, MapID: 1, Shortcut: "F6"}, true)
	assert.Equal(t, 4, l.ActiveIndex())
	assert.True(t, l.Editing(), "a new entry gets its description focused")
}

func TestShortcutList_RemoveActive(t *testing.T) {
	tests := []struct {
		name         string
		shortcuts    []store.Shortcut
		active       int
		expectIDs    []int64
		expectActive int
	}{
		{
			name:         "only entry leaves an empty list",
			shortcuts:    []store.Shortcut{shortcut(5, "Ctrl + K", "")},
			active:       0,
			expectIDs:    []int64{},
			expectActive: -1,
		},
		{
			name: "middle entry activates the next one",
			shortcuts: []store.Shortcut{
				shortcut(5, "Ctrl + K", ""), shortcut(6, "Alt + F", ""), shortcut(7, "F5", ""),
			},
			active:       1,
			expectIDs:    []int64{5, 7},
			expectActive: 1,
		},
		{
			name: "last entry activates the previous one",
			shortcuts: []store.Shortcut{
				shortcut(5, "Ctrl + K", ""), shortcut(6, "Alt + F", ""),
			},
			active:       1,
			expectIDs:    []int64{5},
			expectActive: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := fastConfig(t)
			bridge := testutils.NewFakeBridge(store.Map{ID: 1}).WithShortcuts(1, tt.shortcuts...)
			l := loadedList(t, cfg, bridge, 1)
			l.SetActive(tt.active)
			removed := l.Active().ID

			msgs := runCmd(l.RemoveActive())
			assert.Len(t, l.Items(), len(tt.shortcuts), "entries are kept until the host confirms")

			deleted, ok := findMsg[ShortcutDeleted](msgs)
			require.True(t, ok)
			status, ok := findMsg[OperationStatus](runCmd(l.Update(deleted)))
			require.True(t, ok)
			assert.False(t, status.IsError())

			ids := []int64{}
			for _, entry := range l.Entries() {
				ids = append(ids, entry.ID)
			}
			assert.Equal(t, tt.expectIDs, ids)
			assert.Equal(t, tt.expectActive, l.ActiveIndex())
			assert.Equal(t, []int64{removed}, bridge.DeleteCalls())
			assert.Equal(t, len(tt.expectIDs) > 0, l.RemoveEnabled())
		})
	}
}

func TestShortcutList_RemoveFailureKeepsEntry(t *testing.T) {
	cfg := fastConfig(t)
	bridge := threeShortcuts().FailDelete(errors.New("locked"))
	l := loadedList(t, cfg, bridge, 1)

	deleted, ok := findMsg[ShortcutDeleted](runCmd(l.RemoveActive()))
	require.True(t, ok)
	status, ok := findMsg[OperationStatus](runCmd(l.Update(deleted)))
	require.True(t, ok)

	assert.True(t, status.IsError())
	assert.Len(t, l.Items(), 3)
	assert.Equal(t, 0, l.ActiveIndex())
	assert.Len(t, bridge.Messages(), 1)
}

func TestShortcutList_RemoveWhileDeleteInFlight(t *testing.T) {
	cfg := fastConfig(t)
	bridge := threeShortcuts()
	l := loadedList(t, cfg, bridge, 1)

	inFlight := l.RemoveActive()
	require.NotNil(t, inFlight)
	assert.Nil(t, l.RemoveActive(), "a second delete of the same entry is ignored")

	deleted, ok := findMsg[ShortcutDeleted](runCmd(inFlight))
	require.True(t, ok)
	status, ok := findMsg[OperationStatus](runCmd(l.Update(deleted)))
	require.True(t, ok)
	assert.False(t, status.IsError())
	assert.Equal(t, []int64{5}, bridge.DeleteCalls())
	require.Len(t, l.Items(), 2)

	next, ok := findMsg[ShortcutDeleted](runCmd(l.RemoveActive()))
	require.True(t, ok, "the next entry can be removed once the first delete settled")
	assert.Equal(t, int64(6), next.ShortcutID)
	assert.Equal(t, []int64{5, 6}, bridge.DeleteCalls())
}

func TestShortcutList_RemoveRetryAfterFailure(t *testing.T) {
	cfg := fastConfig(t)
	bridge := threeShortcuts().FailDelete(errors.New("locked"))
	l := loadedList(t, cfg, bridge, 1)

	deleted, ok := findMsg[ShortcutDeleted](runCmd(l.RemoveActive()))
	require.True(t, ok)
	runCmd(l.Update(deleted))

	assert.NotNil(t, l.RemoveActive(), "a failed delete can be retried")
}

func TestShortcutList_RemoveOnEmptyListIsNoop(t *testing.T) {
	cfg := fastConfig(t)
	bridge := testutils.NewFakeBridge(store.Map{ID: 1})
	l := loadedList(t, cfg, bridge, 1)

	assert.False(t, l.RemoveEnabled())
	assert.Nil(t, l.RemoveActive())
	assert.Nil(t, l.Update(keyRunes("d")))
	assert.Contains(t, l.View(), "No shortcuts yet")
	assert.Empty(t, bridge.DeleteCalls())
}

func TestShortcutList_DescriptionDebounce(t *testing.T) {
	cfg := fastConfig(t)
	bridge := threeShortcuts()
	l := loadedList(t, cfg, bridge, 1)
	l.SetActive(2)

	l.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, l.Editing())

	l.Update(keyRunes("a"))
	l.Update(keyRunes("b"))
	item := l.Active()
	assert.Equal(t, "ab", item.Description())
	assert.Empty(t, bridge.SaveCalls(), "typing alone does not save")

	assert.Nil(t, l.Update(descriptionSaveTick{shortcutID: 7, gen: item.saveGen - 1}),
		"a timer replaced by later typing is ignored")

	saved, ok := findMsg[DescriptionSaved](runCmd(l.Update(descriptionSaveTick{shortcutID: 7, gen: item.saveGen})))
	require.True(t, ok)
	require.Len(t, bridge.SaveCalls(), 1)
	req := bridge.SaveCalls()[0]
	assert.Equal(t, 1, req.MapID)
	assert.Equal(t, "Shift + Tab", req.Shortcut)
	assert.Equal(t, "ab", req.Description)
	require.NotNil(t, req.ID)
	assert.Equal(t, int64(7), *req.ID)

	l.Update(saved)
	assert.Equal(t, flashSuccess, item.flash)
	l.Update(flashExpired{shortcutID: 7, gen: item.flashGen})
	assert.Equal(t, flashNone, item.flash)
}

func TestShortcutList_BlurSavesImmediately(t *testing.T) {
	cfg := fastConfig(t)
	bridge := threeShortcuts()
	l := loadedList(t, cfg, bridge, 1)

	l.Update(keyRunes("i"))
	l.Update(keyRunes("!"))
	pending := l.Active().saveGen

	msgs := runCmd(l.Update(tea.KeyMsg{Type: tea.KeyEsc}))
	assert.False(t, l.Editing())
	_, ok := findMsg[DescriptionSaved](msgs)
	require.True(t, ok)
	require.Len(t, bridge.SaveCalls(), 1)
	assert.Equal(t, "kill!", bridge.SaveCalls()[0].Description)

	assert.Nil(t, l.Update(descriptionSaveTick{shortcutID: 5, gen: pending}),
		"blur cancels the pending save")
}

func TestShortcutList_ActivatingAnotherEntryBlurs(t *testing.T) {
	cfg := fastConfig(t)
	bridge := threeShortcuts()
	l := loadedList(t, cfg, bridge, 1)

	l.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, l.Editing())

	runCmd(l.SetActive(1))
	assert.False(t, l.Editing())
	assert.Equal(t, 1, l.ActiveIndex())
	require.Len(t, bridge.SaveCalls(), 1)
	assert.Equal(t, int64(5), *bridge.SaveCalls()[0].ID)
}

func TestShortcutList_SaveFailureFlashes(t *testing.T) {
	cfg := fastConfig(t)
	l := loadedList(t, cfg, threeShortcuts(), 1)

	msgs := runCmd(l.Update(DescriptionSaved{ShortcutID: 6, Err: errors.New("readonly")}))
	status, ok := findMsg[OperationStatus](msgs)
	require.True(t, ok)
	assert.True(t, status.IsError())
	assert.Equal(t, flashFailure, l.Items()[1].flash)
}

func TestShortcutList_ClickAt(t *testing.T) {
	cfg := fastConfig(t)
	l := loadedList(t, cfg, threeShortcuts(), 1)

	assert.Nil(t, l.ClickAt(0, 0), "title rows are not entries")

	l.ClickAt(0, l.headerLines()+2)
	assert.Equal(t, 2, l.ActiveIndex())
	assert.False(t, l.Editing())

	l.ClickAt(40, l.headerLines()+1)
	assert.Equal(t, 1, l.ActiveIndex())
	assert.True(t, l.Editing(), "clicking the description focuses it")
}

func TestShortcutList_UpdateShortcut(t *testing.T) {
	cfg := fastConfig(t)
	l := loadedList(t, cfg, threeShortcuts(), 1)

	l.UpdateShortcut(6, "Ctrl + Alt + F")
	assert.Equal(t, "Ctrl + Alt + F", l.Entries()[1].Shortcut)
	assert.Equal(t, "find", l.Entries()[1].Description)
}

func TestShortcutList_FlushOnMapChange(t *testing.T) {
	cfg := fastConfig(t)
	bridge := threeShortcuts()
	l := loadedList(t, cfg, bridge, 1)

	l.Update(tea.KeyMsg{Type: tea.KeyEnter})
	l.Update(keyRunes("?"))

	runCmd(l.LoadForMap(2, "Dust2"))
	require.Len(t, bridge.SaveCalls(), 1)
	assert.Equal(t, "kill?", bridge.SaveCalls()[0].Description)
	assert.Equal(t, []int{1, 2}, bridge.ListCalls())
}
