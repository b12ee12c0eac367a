// Package signal provides signal handling functionality.
package signal

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

type Handler struct {
	sigChan     chan os.Signal
	ctx         context.Context
	cancelCause context.CancelCauseFunc
}

// Reloader is triggered on SIGUSR1.
type Reloader interface {
	Reload(context.Context) error
}

func NewHandler(ctx context.Context, cancelCause context.CancelCauseFunc) *Handler {
	return &Handler{
		sigChan:     make(chan os.Signal, 1),
		ctx:         ctx,
		cancelCause: cancelCause,
	}
}

func (h *Handler) Start(reloader Reloader) {
	signal.Notify(h.sigChan, syscall.SIGUSR1, syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP)
	logrus.Debug("Signal notifications registered for SIGUSR1, SIGTERM, SIGINT, SIGHUP")

	go h.handleSignals(reloader)
}

func (h *Handler) Stop() {
	h.cancelCause(context.Canceled)
	signal.Stop(h.sigChan)
}

func (h *Handler) handleSignals(reloader Reloader) {
	logrus.Debug("Signal handler goroutine started")
	for {
		select {
		case sig := <-h.sigChan:
			logrus.WithField("signal", sig).Debug("Signal received")
			h.handle(sig, reloader)
			if sig != syscall.SIGUSR1 {
				return
			}
		case <-h.ctx.Done():
			logrus.Debug("Signal handler context done, exiting")
			return
		}
	}
}

func (h *Handler) handle(sig os.Signal, reloader Reloader) {
	switch sig {
	case syscall.SIGUSR1:
		logrus.Info("Received SIGUSR1, reloading maps")
		if err := reloader.Reload(h.ctx); err != nil {
			logrus.WithError(err).Error("Reloading maps failed, app will keep running")
		}
	case syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP:
		logrus.WithField("signal", sig).Info("Received termination signal, shutting down gracefully")
		h.cancelCause(context.Canceled)
	}
}
