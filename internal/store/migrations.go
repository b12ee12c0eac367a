package store

import (
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Migration is a single versioned schema change applied after the base schema.
type Migration struct {
	Version int
	Name    string
	Up      string
}

var migrations = []Migration{
	{
		Version: 1,
		Name:    "Add lookup indexes for shortcuts",
		Up: `
			CREATE INDEX IF NOT EXISTS idx_shortcuts_map_id ON shortcuts(map_id);
			CREATE INDEX IF NOT EXISTS idx_medias_shortcut_id ON medias(shortcut_id);
		`,
	},
	{
		Version: 2,
		Name:    "Unique map names",
		Up: `
			CREATE UNIQUE INDEX IF NOT EXISTS idx_maps_name ON maps(name);
		`,
	},
}

const baseSchema = `
	CREATE TABLE IF NOT EXISTS maps (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		image_path TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS shortcuts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		map_id INTEGER NOT NULL,
		description TEXT NOT NULL,
		shortcut TEXT NOT NULL,
		FOREIGN KEY (map_id) REFERENCES maps (id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS medias (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		shortcut_id INTEGER NOT NULL,
		type TEXT NOT NULL,
		path TEXT NOT NULL,
		FOREIGN KEY (shortcut_id) REFERENCES shortcuts (id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

func initSchema(db *sql.DB) error {
	if _, err := db.Exec(baseSchema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

func runMigrations(db *sql.DB) error {
	for _, m := range migrations {
		var applied int
		if err := db.QueryRow(
			"SELECT COUNT(*) FROM schema_migrations WHERE version = ?", m.Version,
		).Scan(&applied); err != nil {
			return fmt.Errorf("cant check migration %d: %w", m.Version, err)
		}
		if applied > 0 {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("cant start migration %d: %w", m.Version, err)
		}
		if _, err := tx.Exec(m.Up); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}
		if _, err := tx.Exec(
			"INSERT INTO schema_migrations (version, name) VALUES (?, ?)", m.Version, m.Name,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("cant record migration %d: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("cant commit migration %d: %w", m.Version, err)
		}
		logrus.WithFields(logrus.Fields{"version": m.Version, "name": m.Name}).Debug("Migration applied")
	}
	return nil
}
