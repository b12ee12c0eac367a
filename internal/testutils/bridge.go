package testutils

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/mynades/mynades/internal/errs"
	"github.com/mynades/mynades/internal/store"
)

// FakeBridge is an in-memory host bridge recording every call it receives.
type FakeBridge struct {
	mu        sync.Mutex
	maps      []store.Map
	shortcuts map[int][]store.Shortcut
	nextID    int64

	getMapsErr error
	listErr    error
	saveErr    error
	deleteErr  error

	listCalls   []int
	saveCalls   []store.SaveShortcutRequest
	deleteCalls []int64
	messages    []string
}

func NewFakeBridge(maps ...store.Map) *FakeBridge {
	return &FakeBridge{
		maps:      maps,
		shortcuts: map[int][]store.Shortcut{},
		nextID:    1,
	}
}

func (f *FakeBridge) WithShortcuts(mapID int, shortcuts ...store.Shortcut) *FakeBridge {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, sc := range shortcuts {
		sc.MapID = mapID
		f.shortcuts[mapID] = append(f.shortcuts[mapID], sc)
		if sc.ID >= f.nextID {
			f.nextID = sc.ID + 1
		}
	}
	return f
}

// WithNextID sets the id assigned to the next created shortcut.
func (f *FakeBridge) WithNextID(id int64) *FakeBridge {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID = id
	return f
}

func (f *FakeBridge) FailGetMaps(err error) *FakeBridge {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getMapsErr = err
	return f
}

func (f *FakeBridge) FailList(err error) *FakeBridge {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listErr = err
	return f
}

func (f *FakeBridge) FailSave(err error) *FakeBridge {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saveErr = err
	return f
}

func (f *FakeBridge) FailDelete(err error) *FakeBridge {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteErr = err
	return f
}

func (f *FakeBridge) GetMaps(_ context.Context) ([]store.Map, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getMapsErr != nil {
		return nil, f.getMapsErr
	}
	return slices.Clone(f.maps), nil
}

func (f *FakeBridge) ListShortcutsByMap(_ context.Context, mapID int) ([]store.Shortcut, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls = append(f.listCalls, mapID)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return slices.Clone(f.shortcuts[mapID]), nil
}

func (f *FakeBridge) SaveShortcut(_ context.Context, req store.SaveShortcutRequest) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saveCalls = append(f.saveCalls, req)
	if f.saveErr != nil {
		return 0, f.saveErr
	}

	if req.ID == nil {
		id := f.nextID
		f.nextID++
		f.shortcuts[req.MapID] = append(f.shortcuts[req.MapID], store.Shortcut{
			ID: id, MapID: req.MapID, Shortcut: req.Shortcut, Description: req.Description,
		})
		return id, nil
	}

	for i, sc := range f.shortcuts[req.MapID] {
		if sc.ID == *req.ID {
			f.shortcuts[req.MapID][i].Shortcut = req.Shortcut
			f.shortcuts[req.MapID][i].Description = req.Description
			return sc.ID, nil
		}
	}
	return 0, fmt.Errorf("shortcut %d: %w", *req.ID, errs.ErrShortcutNotFound)
}

func (f *FakeBridge) DeleteShortcut(_ context.Context, mapID int, shortcutID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls = append(f.deleteCalls, shortcutID)
	if f.deleteErr != nil {
		return f.deleteErr
	}

	shortcuts := f.shortcuts[mapID]
	idx := slices.IndexFunc(shortcuts, func(sc store.Shortcut) bool { return sc.ID == shortcutID })
	if idx < 0 {
		return fmt.Errorf("shortcut %d: %w", shortcutID, errs.ErrShortcutNotFound)
	}
	f.shortcuts[mapID] = slices.Delete(shortcuts, idx, idx+1)
	return nil
}

func (f *FakeBridge) LogMessage(_ context.Context, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, message)
}

func (f *FakeBridge) ListCalls() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.listCalls)
}

func (f *FakeBridge) SaveCalls() []store.SaveShortcutRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.saveCalls)
}

func (f *FakeBridge) DeleteCalls() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.deleteCalls)
}

func (f *FakeBridge) Messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.messages)
}

func (f *FakeBridge) Shortcuts(mapID int) []store.Shortcut {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.shortcuts[mapID])
}
