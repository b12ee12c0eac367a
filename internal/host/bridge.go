// Package host exposes the commands the UI uses to read and persist maps and shortcuts.
package host

import (
	"context"
	"fmt"

	"github.com/mynades/mynades/internal/store"
	"github.com/mynades/mynades/internal/utils"
	"github.com/sirupsen/logrus"
)

// Bridge is the command surface consumed by the UI. Every call is a single request/response.
type Bridge interface {
	GetMaps(ctx context.Context) ([]store.Map, error)
	ListShortcutsByMap(ctx context.Context, mapID int) ([]store.Shortcut, error)
	SaveShortcut(ctx context.Context, req store.SaveShortcutRequest) (int64, error)
	DeleteShortcut(ctx context.Context, mapID int, shortcutID int64) error
	// LogMessage is fire-and-forget, it never fails.
	LogMessage(ctx context.Context, message string)
}

type Repository interface {
	ListMaps(ctx context.Context) ([]store.Map, error)
	ListShortcutsByMap(ctx context.Context, mapID int) ([]store.Shortcut, error)
	SaveShortcut(ctx context.Context, req store.SaveShortcutRequest) (int64, error)
	DeleteShortcut(ctx context.Context, mapID int, shortcutID int64) error
}

// Notifier surfaces persistence failures outside of the terminal.
type Notifier interface {
	NotifyError(summary string, err error) error
}

type Service struct {
	repo     Repository
	notifier Notifier
}

func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

func (s *Service) GetMaps(ctx context.Context) ([]store.Map, error) {
	maps, err := s.repo.ListMaps(ctx)
	if err != nil {
		return nil, fmt.Errorf("cant get maps: %w", err)
	}
	return maps, nil
}

func (s *Service) ListShortcutsByMap(ctx context.Context, mapID int) ([]store.Shortcut, error) {
	shortcuts, err := s.repo.ListShortcutsByMap(ctx, mapID)
	if err != nil {
		return nil, fmt.Errorf("cant list shortcuts for map %d: %w", mapID, err)
	}
	return shortcuts, nil
}

func (s *Service) SaveShortcut(ctx context.Context, req store.SaveShortcutRequest) (int64, error) {
	id, err := s.repo.SaveShortcut(ctx, req)
	if err != nil {
		err = fmt.Errorf("cant save shortcut %q: %w", req.Shortcut, err)
		s.notify("Saving shortcut failed", err)
		return 0, err
	}

	logrus.WithFields(utils.NewLogrusCustomFields(logrus.Fields{
		"id":       id,
		"map_id":   req.MapID,
		"shortcut": req.Shortcut,
		"created":  req.ID == nil,
	}).WithLogID(utils.ShortcutSavedLogID)).Debug("Shortcut saved")
	return id, nil
}

func (s *Service) DeleteShortcut(ctx context.Context, mapID int, shortcutID int64) error {
	if err := s.repo.DeleteShortcut(ctx, mapID, shortcutID); err != nil {
		err = fmt.Errorf("cant delete shortcut %d: %w", shortcutID, err)
		s.notify("Deleting shortcut failed", err)
		return err
	}

	logrus.WithFields(utils.NewLogrusCustomFields(logrus.Fields{
		"id":     shortcutID,
		"map_id": mapID,
	}).WithLogID(utils.ShortcutDeletedLogID)).Debug("Shortcut deleted")
	return nil
}

func (s *Service) LogMessage(_ context.Context, message string) {
	logrus.WithFields(utils.NewLogrusCustomFields(logrus.Fields{"source": "ui"}).
		WithLogID(utils.UIMessageLogID)).Info(message)
}

func (s *Service) notify(summary string, err error) {
	if s.notifier == nil {
		return
	}
	if nerr := s.notifier.NotifyError(summary, err); nerr != nil {
		logrus.WithError(nerr).Debug("Cant send desktop notification")
	}
}
