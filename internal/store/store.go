// Package store provides the SQLite backed repository for maps and their shortcuts.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mynades/mynades/internal/errs"
	"github.com/mynades/mynades/internal/utils"
	"github.com/sirupsen/logrus"
)

const memoryPath = ":memory:"

type Store struct {
	db *sql.DB
}

// Open opens (creating when needed) the database at dbPath and brings the schema up to date.
func Open(dbPath string) (*Store, error) {
	dsn := "file::memory:?_foreign_keys=on"
	if dbPath != memoryPath {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", dbPath)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// a single connection keeps the in-memory database alive and serialises writers
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logrus.WithField("path", dbPath).Debug("Database ready")
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SeedMaps inserts every map whose name is not present yet and returns how many were added.
func (s *Store) SeedMaps(ctx context.Context, maps []Map) (int, error) {
	inserted := 0
	for _, m := range maps {
		res, err := s.db.ExecContext(ctx, `
			INSERT INTO maps (name, image_path)
			SELECT ?1, ?2
			WHERE NOT EXISTS (SELECT 1 FROM maps WHERE name = ?1)`,
			m.Name, m.ImagePath)
		if err != nil {
			return inserted, fmt.Errorf("cant seed map %s: %w", m.Name, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return inserted, fmt.Errorf("cant seed map %s: %w", m.Name, err)
		}
		inserted += int(n)
	}

	if inserted > 0 {
		logrus.WithFields(utils.NewLogrusCustomFields(logrus.Fields{"inserted": inserted}).
			WithLogID(utils.MapsSeededLogID)).Info("Seeded maps")
	}
	return inserted, nil
}

func (s *Store) ListMaps(ctx context.Context) ([]Map, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, image_path FROM maps ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query maps: %w", err)
	}
	defer rows.Close()

	maps := []Map{}
	for rows.Next() {
		var m Map
		if err := rows.Scan(&m.ID, &m.Name, &m.ImagePath); err != nil {
			return nil, fmt.Errorf("failed to scan map: %w", err)
		}
		maps = append(maps, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate maps: %w", err)
	}
	return maps, nil
}

func (s *Store) GetMap(ctx context.Context, id int) (Map, error) {
	var m Map
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, image_path FROM maps WHERE id = ?", id).Scan(&m.ID, &m.Name, &m.ImagePath)
	if errors.Is(err, sql.ErrNoRows) {
		return Map{}, fmt.Errorf("map %d: %w", id, errs.ErrMapNotFound)
	}
	if err != nil {
		return Map{}, fmt.Errorf("failed to query map %d: %w", id, err)
	}
	return m, nil
}

func (s *Store) ListShortcutsByMap(ctx context.Context, mapID int) ([]Shortcut, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, map_id, shortcut, description
		FROM shortcuts
		WHERE map_id = ?
		ORDER BY id`, mapID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shortcuts for map %d: %w", mapID, err)
	}
	defer rows.Close()

	shortcuts := []Shortcut{}
	for rows.Next() {
		var sc Shortcut
		if err := rows.Scan(&sc.ID, &sc.MapID, &sc.Shortcut, &sc.Description); err != nil {
			return nil, fmt.Errorf("failed to scan shortcut: %w", err)
		}
		shortcuts = append(shortcuts, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shortcuts: %w", err)
	}
	return shortcuts, nil
}

// SaveShortcut inserts the shortcut when req.ID is nil, otherwise updates it in place.
// The id of the stored shortcut is returned in both cases.
func (s *Store) SaveShortcut(ctx context.Context, req SaveShortcutRequest) (int64, error) {
	if req.ID == nil {
		res, err := s.db.ExecContext(ctx,
			"INSERT INTO shortcuts (map_id, description, shortcut) VALUES (?, ?, ?)",
			req.MapID, req.Description, req.Shortcut)
		if err != nil {
			return 0, fmt.Errorf("failed to insert shortcut: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to read inserted shortcut id: %w", err)
		}
		return id, nil
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE shortcuts SET description = ?, shortcut = ? WHERE id = ? AND map_id = ?",
		req.Description, req.Shortcut, *req.ID, req.MapID)
	if err != nil {
		return 0, fmt.Errorf("failed to update shortcut %d: %w", *req.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to update shortcut %d: %w", *req.ID, err)
	}
	if n == 0 {
		return 0, fmt.Errorf("shortcut %d on map %d: %w", *req.ID, req.MapID, errs.ErrShortcutNotFound)
	}
	return *req.ID, nil
}

func (s *Store) DeleteShortcut(ctx context.Context, mapID int, shortcutID int64) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM shortcuts WHERE id = ? AND map_id = ?", shortcutID, mapID)
	if err != nil {
		return fmt.Errorf("failed to delete shortcut %d: %w", shortcutID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete shortcut %d: %w", shortcutID, err)
	}
	if n == 0 {
		return fmt.Errorf("shortcut %d on map %d: %w", shortcutID, mapID, errs.ErrShortcutNotFound)
	}
	return nil
}
