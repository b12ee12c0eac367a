package utils

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Debouncer delays a call until no newer call was scheduled for the given delay.
// Scheduled functions are executed on the goroutine running Run.
type Debouncer struct {
	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
	calls chan func()
}

func NewDebouncer() *Debouncer {
	return &Debouncer{
		calls: make(chan func(), 1),
	}
}

func (d *Debouncer) Run(ctx context.Context) error {
	for {
		select {
		case fn := <-d.calls:
			fn()
		case <-ctx.Done():
			d.Cancel()
			logrus.Debug("Debouncer context cancelled, shutting down")
			return context.Cause(ctx)
		}
	}
}

// Do (re)schedules fn to run after delay, dropping any call scheduled earlier.
func (d *Debouncer) Do(ctx context.Context, delay time.Duration, fn func(context.Context) error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen

	d.timer = time.AfterFunc(delay, func() {
		call := func() {
			if !d.current(gen) {
				return
			}
			if err := fn(ctx); err != nil {
				logrus.WithError(err).Error("Debounced function failed")
			}
		}
		select {
		case d.calls <- call:
		case <-ctx.Done():
		}
	})
}

// Cancel drops the pending call, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

func (d *Debouncer) current(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gen == gen
}
