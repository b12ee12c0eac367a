// Package app wires configuration, storage and the host bridge into runnable applications.
package app

import (
	"context"
	"fmt"

	"github.com/mynades/mynades/internal/config"
	"github.com/mynades/mynades/internal/host"
	"github.com/mynades/mynades/internal/notifications"
	"github.com/mynades/mynades/internal/store"
	"github.com/sirupsen/logrus"
)

// Host owns the database and the bridge service built on top of it.
type Host struct {
	cfg           *config.Config
	store         *store.Store
	notifications *notifications.Service
	service       *host.Service
}

func NewHost(ctx context.Context, configPath string) (*Host, error) {
	cfg, err := config.NewConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return NewHostFromConfig(ctx, cfg)
}

// NewHostFromConfig opens the configured database and seeds the configured maps.
func NewHostFromConfig(ctx context.Context, cfg *config.Config) (*Host, error) {
	st, err := store.Open(*cfg.Get().General.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open the database: %w", err)
	}

	if _, err := st.SeedMaps(ctx, seedMaps(cfg)); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to seed maps: %w", err)
	}

	notifier := notifications.NewService(cfg)
	return &Host{
		cfg:           cfg,
		store:         st,
		notifications: notifier,
		service:       host.NewService(st, notifier),
	}, nil
}

func seedMaps(cfg *config.Config) []store.Map {
	maps := make([]store.Map, 0, len(cfg.Get().Maps))
	for _, m := range cfg.Get().Maps {
		maps = append(maps, store.Map{Name: m.Name, ImagePath: m.ImagePath})
	}
	return maps
}

func (h *Host) Config() *config.Config {
	return h.cfg
}

func (h *Host) Bridge() host.Bridge {
	return h.service
}

func (h *Host) Dispatcher() *host.Dispatcher {
	return host.NewDispatcher(h.service)
}

func (h *Host) Close() error {
	logrus.Debug("Closing the database")
	if err := h.store.Close(); err != nil {
		return fmt.Errorf("cant close the database: %w", err)
	}
	return nil
}
