// Package filewatcher provides a service that watches the config file and issues
// a debounced event when it changes
package filewatcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mynades/mynades/internal/config"
	"github.com/mynades/mynades/internal/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type Service struct {
	cfg                  *config.Config
	stateMu              sync.Mutex
	watchedDir           string
	events               chan struct{}
	watcher              *fsnotify.Watcher
	disableAutoHotReload *bool
	debouncer            *utils.Debouncer
}

func NewService(cfg *config.Config, disableAutoHotReload *bool) *Service {
	return &Service{
		cfg:                  cfg,
		events:               make(chan struct{}, 1),
		disableAutoHotReload: disableAutoHotReload,
		debouncer:            utils.NewDebouncer(),
	}
}

func (s *Service) disabled() bool {
	return s.disableAutoHotReload != nil && *s.disableAutoHotReload
}

// Update makes sure the directory holding the config file is watched.
func (s *Service) Update() error {
	logrus.Debug("Updating watcher")

	if s.disabled() {
		logrus.Info("Hot reload disabled, not updating filewatcher")
		return nil
	}

	if s.watcher == nil {
		return errors.New("no watcher assigned")
	}

	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	dir := filepath.Dir(s.cfg.Get().ConfigPath)
	if s.watchedDir == dir {
		logrus.Debug("Config dir is tracked already, no update needed")
		return nil
	}

	if s.watchedDir != "" {
		if err := s.watcher.Remove(s.watchedDir); err != nil &&
			!errors.Is(err, fsnotify.ErrNonExistentWatch) {
			return fmt.Errorf("cant remove %s from watcher: %w", s.watchedDir, err)
		}
	}

	if err := s.watcher.Add(dir); err != nil {
		return fmt.Errorf("cant watch config dir %s: %w", dir, err)
	}
	s.watchedDir = dir
	logrus.WithFields(logrus.Fields{
		"config_dir": dir,
		"config":     s.cfg.Get().ConfigPath,
	}).Debug("Added config path to watchlist")

	return nil
}

func (s *Service) Listen() <-chan struct{} {
	return s.events
}

func (s *Service) Run(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		<-ctx.Done()
		logrus.Debug("Context cancelled for filewatcher, shutting down")
		return context.Cause(ctx)
	})

	if s.disabled() {
		logrus.Info("Disabling filewatcher")
		if err := eg.Wait(); err != nil {
			return fmt.Errorf("bg tasks failed in filewatcher: %w", err)
		}
		return nil
	}

	logrus.Debug("starting watcher")
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("cant create watcher: %w", err)
	}
	s.watcher = watcher

	eg.Go(func() error {
		return s.debouncer.Run(ctx)
	})

	eg.Go(func() error {
		<-ctx.Done()
		s.debouncer.Cancel()
		logrus.Debug("Context cancelled, shutting watcher down")
		if err := watcher.Close(); err != nil {
			logrus.WithError(err).Error("Cant close watcher on exit")
		}
		return context.Cause(ctx)
	})

	eg.Go(func() error {
		logrus.Debug("Initialized watcher")
		if err := s.runServiceLoop(ctx, watcher); err != nil {
			return fmt.Errorf("cant run service loop: %w", err)
		}
		logrus.Debug("Exiting watcher")
		return nil
	})

	if err := s.Update(); err != nil {
		return fmt.Errorf("cant initialize watcher: %w", err)
	}

	return eg.Wait()
}

func (s *Service) runServiceLoop(ctx context.Context, watcher *fsnotify.Watcher) error {
	logrus.Debug("Starting filewatcher goroutine")
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("watcher channel is closed")
			}

			logrus.WithFields(logrus.Fields{
				"name":      event.Name,
				"operation": event.Op,
			}).Debug("Received filewatcher event")

			if filepath.Clean(event.Name) != filepath.Clean(s.cfg.Get().ConfigPath) {
				continue
			}

			s.debouncer.Do(ctx, time.Duration(*s.cfg.Get().HotReload.UpdateDebounceTimer)*time.Millisecond, s.updateProcessor)
			logrus.Debug("Scheduled debounced config update")
		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("watcher error channel is closed")
			}
			if err != nil {
				return fmt.Errorf("watcher error received: %w", err)
			}
		case <-ctx.Done():
			logrus.Debug("Context cancelled, shutting fswatcher down")
			return context.Cause(ctx)
		}
	}
}

func (s *Service) updateProcessor(ctx context.Context) error {
	select {
	case <-ctx.Done():
		logrus.Debug("Config update processor context cancelled, shutting down")
		return context.Cause(ctx)
	case s.events <- struct{}{}:
		logrus.Debug("Sent config update event")
		return nil
	}
}
