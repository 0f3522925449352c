package app

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Runtime owns an Application and serializes every access to it. Callers
// submit closures through Do; a single goroutine inside Run executes them
// one at a time in arrival order, interleaved with ticks. With a tick
// period configured the runtime drives the clock itself and external ticks
// are rejected; with no period, time advances only through Tick.
type Runtime struct {
	app      *Application
	period   time.Duration
	requests chan func()
	log      logrus.FieldLogger
}

func NewRuntime(app *Application, tickPeriod time.Duration, log logrus.FieldLogger) *Runtime {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Runtime{
		app:      app,
		period:   tickPeriod,
		requests: make(chan func()),
		log:      log,
	}
}

func (r *Runtime) Periodic() bool { return r.period > 0 }

// Run executes the strand until ctx is cancelled. It never returns nil.
func (r *Runtime) Run(ctx context.Context) error {
	var tick <-chan time.Time
	if r.period > 0 {
		ticker := time.NewTicker(r.period)
		defer ticker.Stop()
		tick = ticker.C
	}

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-r.requests:
			fn()
		case now := <-tick:
			delta := now.Sub(last)
			last = now
			if err := r.app.Tick(delta); err != nil {
				r.log.WithError(err).Error("tick failed")
			}
		}
	}
}

// Do runs fn on the strand and waits for it to finish. The closure
// receives the Application and may touch any of its state; it must not
// block. ctx bounds only the wait for a strand slot and for completion.
func (r *Runtime) Do(ctx context.Context, fn func(*Application)) error {
	done := make(chan struct{})
	wrapped := func() {
		defer close(done)
		fn(r.app)
	}
	select {
	case r.requests <- wrapped:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Tick advances the simulation by delta from outside the runtime. It is
// only available when no tick period is configured.
func (r *Runtime) Tick(ctx context.Context, delta time.Duration) error {
	if r.Periodic() {
		return ErrTickForbidden
	}
	var tickErr error
	if err := r.Do(ctx, func(a *Application) {
		tickErr = a.Tick(delta)
	}); err != nil {
		return err
	}
	return tickErr
}
