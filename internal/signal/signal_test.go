package signal

import (
	"context"
	"errors"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingReloader struct {
	calls chan struct{}
	err   error
}

func (c *countingReloader) Reload(context.Context) error {
	c.calls <- struct{}{}
	return c.err
}

func TestHandler_ReloadKeepsRunning(t *testing.T) {
	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	reloader := &countingReloader{calls: make(chan struct{}, 2), err: errors.New("db locked")}
	h := NewHandler(ctx, cancel)
	go h.handleSignals(reloader)

	h.sigChan <- syscall.SIGUSR1
	h.sigChan <- syscall.SIGUSR1

	for range 2 {
		select {
		case <-reloader.calls:
		case <-time.After(time.Second):
			t.Fatal("reload was not triggered")
		}
	}
	assert.NoError(t, ctx.Err(), "a failed reload must not stop the app")
}

func TestHandler_TerminationCancels(t *testing.T) {
	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	h := NewHandler(ctx, cancel)
	go h.handleSignals(&countingReloader{calls: make(chan struct{}, 1)})

	h.sigChan <- syscall.SIGTERM

	select {
	case <-ctx.Done():
		require.ErrorIs(t, context.Cause(ctx), context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("context was not cancelled")
	}
}
