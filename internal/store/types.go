package store

// Map is a user selectable category owning its own set of shortcuts.
type Map struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ImagePath string `json:"imagePath"`
}

// Shortcut is a key chord bound to a description, scoped to one map.
// ID is zero until the shortcut is persisted.
type Shortcut struct {
	ID          int64  `json:"id"`
	MapID       int    `json:"mapId"`
	Shortcut    string `json:"shortcut"`
	Description string `json:"description"`
}

// Saved reports whether the host assigned an id to the shortcut.
func (s Shortcut) Saved() bool {
	return s.ID != 0
}

// SaveShortcutRequest creates a shortcut when ID is nil and updates it otherwise.
type SaveShortcutRequest struct {
	MapID       int    `json:"mapId"`
	Shortcut    string `json:"shortcut"`
	Description string `json:"description"`
	ID          *int64 `json:"id"`
}
