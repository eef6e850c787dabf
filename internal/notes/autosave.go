package notes

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const DefaultDebounce = 500 * time.Millisecond

// Timer is the part of *time.Timer the Autosaver needs.
type Timer interface {
	Stop() bool
}

// Clock schedules debounce callbacks.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SaveFunc persists notes. Its result is not read back; the sent value becomes
// the baseline on success.
type SaveFunc func(ctx context.Context, notes string) error

// Autosaver drives a Controller: every edit restarts the debounce timer, and
// when the timer fires with the edit still current the draft is saved.
type Autosaver struct {
	ctrl     *Controller
	save     SaveFunc
	clock    Clock
	debounce time.Duration
	timeout  time.Duration
	onError  func(error)

	mu     sync.Mutex
	timer  Timer
	closed bool
	wg     sync.WaitGroup
}

type Option func(*Autosaver)

func WithClock(c Clock) Option {
	return func(a *Autosaver) { a.clock = c }
}

func WithDebounce(d time.Duration) Option {
	return func(a *Autosaver) { a.debounce = d }
}

// WithErrorHandler is called after a failed save, once the controller has
// returned to Dirty.
func WithErrorHandler(f func(error)) Option {
	return func(a *Autosaver) { a.onError = f }
}

func NewAutosaver(ctrl *Controller, save SaveFunc, opts ...Option) *Autosaver {
	a := &Autosaver{
		ctrl:     ctrl,
		save:     save,
		clock:    systemClock{},
		debounce: DefaultDebounce,
		timeout:  10 * time.Second,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

func (a *Autosaver) Controller() *Controller {
	return a.ctrl
}

// Edit records text and restarts the debounce window.
func (a *Autosaver) Edit(text string) {
	gen := a.ctrl.Edit(text)

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return
	}

	if a.timer != nil {
		a.timer.Stop()
	}

	a.timer = a.clock.AfterFunc(a.debounce, func() { a.fire(gen) })
}

// Observe forwards a server read to the controller.
func (a *Autosaver) Observe(server string) {
	a.ctrl.Observe(server)
}

// Flush saves the draft now if it is Dirty, without waiting for the timer.
func (a *Autosaver) Flush() {
	if !a.enter(true) {
		return
	}
	defer a.wg.Done()

	a.run()
}

// Close stops the pending timer and waits for saves in flight. Unsaved edits
// are dropped; call Flush first to keep them. Edits, timers and flushes after
// Close do nothing.
func (a *Autosaver) Close() {
	a.mu.Lock()
	a.closed = true
	a.stopTimerLocked()
	a.mu.Unlock()

	a.wg.Wait()
}

// enter registers a save attempt with wg unless the Autosaver is closed.
func (a *Autosaver) enter(stop bool) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return false
	}

	if stop {
		a.stopTimerLocked()
	}

	a.wg.Add(1)

	return true
}

func (a *Autosaver) stopTimerLocked() {
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

func (a *Autosaver) fire(gen uint64) {
	if !a.enter(false) {
		return
	}
	defer a.wg.Done()

	if !a.ctrl.Due(gen) {
		return
	}

	a.run()
}

func (a *Autosaver) run() {
	value, seq, ok := a.ctrl.Begin()
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	err := a.save(ctx, value)
	a.ctrl.Complete(seq, err)

	if err != nil {
		slog.Error("failed to save notes", "error", err)

		if a.onError != nil {
			a.onError(err)
		}
	}
}
