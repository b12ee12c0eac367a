package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mynades/mynades/internal/config"
	"github.com/mynades/mynades/internal/filewatcher"
	"github.com/mynades/mynades/internal/signal"
	"github.com/mynades/mynades/internal/tui"
	"github.com/mynades/mynades/internal/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type TUI struct {
	program   *tea.Program
	fswatcher *filewatcher.Service
	cfg       *config.Config
	host      *Host
	signal    *signal.Handler
	logFile   *os.File
}

// mapsReloader asks the running program to fetch the maps again.
type mapsReloader struct {
	program *tea.Program
}

func (r mapsReloader) Reload(context.Context) error {
	r.program.Send(tui.ReloadMapsRequested{})
	return nil
}

func NewTUI(ctx context.Context, cancel context.CancelCauseFunc, configPath, version string,
	disableAutoHotReload bool,
) (*TUI, error) {
	cfg, err := config.NewConfig(configPath)
	if err != nil {
		logrus.WithError(err).Error("cant create/read config")
		return nil, fmt.Errorf("cant create/read config: %w", err)
	}

	logFile, err := openLogFile(cfg)
	if err != nil {
		return nil, err
	}

	h, err := NewHostFromConfig(ctx, cfg)
	if err != nil {
		if logFile != nil {
			_ = logFile.Close()
		}
		return nil, err
	}

	model := tui.NewModel(cfg, h.Bridge(), version)
	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	return &TUI{
		program:   program,
		fswatcher: filewatcher.NewService(cfg, utils.BoolPtr(disableAutoHotReload)),
		cfg:       cfg,
		host:      h,
		signal:    signal.NewHandler(ctx, cancel),
		logFile:   logFile,
	}, nil
}

// openLogFile sends logrus to general.log_file when one is configured. The terminal UI
// silences logrus by default, a configured file gets at least info level entries.
func openLogFile(cfg *config.Config) (*os.File, error) {
	path := cfg.Get().General.LogFile
	if path == nil {
		return nil, nil
	}
	f, err := tea.LogToFile(*path, config.ApplicationName)
	if err != nil {
		return nil, fmt.Errorf("cant open log file %s: %w", *path, err)
	}
	logrus.SetOutput(f)
	if !logrus.IsLevelEnabled(logrus.InfoLevel) {
		logrus.SetLevel(logrus.InfoLevel)
	}
	logrus.WithField("path", *path).Debug("Logging to file")
	return f, nil
}

func (t *TUI) Run(ctx context.Context, cancel context.CancelCauseFunc) error {
	defer t.Close()
	eg, ctx := errgroup.WithContext(ctx)

	t.signal.Start(mapsReloader{program: t.program})
	defer t.signal.Stop()

	eg.Go(func() error {
		return t.fswatcher.Run(ctx)
	})

	eg.Go(func() error {
		c := t.fswatcher.Listen()
		for {
			select {
			case _, ok := <-c:
				if !ok {
					return errors.New("watcher event channel closed")
				}
				logrus.Debug("Watcher event received")
				if err := t.cfg.Reload(); err != nil {
					logrus.WithError(err).Error("Cant reload user configuration, keeping the previous one")
					continue
				}
				t.program.Send(tui.ConfigReloaded{})

			case <-ctx.Done():
				logrus.Debug("Reloader event processor context cancelled, shutting down")
				return context.Cause(ctx)
			}
		}
	})

	eg.Go(func() error {
		if _, err := t.program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("failed to run TUI: %w", err)
		}
		cancel(context.Canceled)
		logrus.Debug("Exiting tea")
		return nil
	})

	eg.Go(func() error {
		<-ctx.Done()
		logrus.Debug("Context cancelled, shutting down")
		return context.Cause(ctx)
	})

	if err := eg.Wait(); err != nil {
		return fmt.Errorf("main eg failed: %w", err)
	}

	logrus.Info("Shutdown complete")
	return nil
}

// Close releases the database and the log file.
func (t *TUI) Close() {
	if err := t.host.Close(); err != nil {
		logrus.WithError(err).Error("Cant close the host")
	}
	if t.logFile != nil {
		logrus.SetOutput(os.Stderr)
		_ = t.logFile.Close()
	}
}
