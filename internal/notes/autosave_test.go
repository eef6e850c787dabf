package notes_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/dealboard/internal/notes"
)

// fakeClock fires timers synchronously from Advance.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Duration
	f       func()
	stopped bool
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) notes.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := &fakeTimer{clock: c, at: c.now + d, f: f}
	c.timers = append(c.timers, t)

	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	was := !t.stopped
	t.stopped = true

	return was
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d

	var due []*fakeTimer

	pending := c.timers[:0]

	for _, t := range c.timers {
		switch {
		case t.stopped:
		case t.at <= c.now:
			t.stopped = true
			due = append(due, t)
		default:
			pending = append(pending, t)
		}
	}

	c.timers = pending
	c.mu.Unlock()

	sort.Slice(due, func(i, j int) bool { return due[i].at < due[j].at })

	for _, t := range due {
		t.f()
	}
}

type recorder struct {
	mu    sync.Mutex
	saved []string
	err   error
}

func (r *recorder) save(_ context.Context, v string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.saved = append(r.saved, v)

	return r.err
}

func (r *recorder) calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.saved...)
}

func TestAutosaver_Debounces(t *testing.T) {
	clock := &fakeClock{}
	rec := &recorder{}
	a := notes.NewAutosaver(notes.NewController(""), rec.save, notes.WithClock(clock))

	a.Edit("h")
	clock.Advance(200 * time.Millisecond)
	a.Edit("he")
	clock.Advance(200 * time.Millisecond)
	a.Edit("hey")
	clock.Advance(499 * time.Millisecond)

	assert.Empty(t, rec.calls())

	clock.Advance(time.Millisecond)

	assert.Equal(t, []string{"hey"}, rec.calls())
	assert.Equal(t, notes.Clean, a.Controller().State())
	assert.Equal(t, "hey", a.Controller().Baseline())
}

func TestAutosaver_FailureIsNotRetried(t *testing.T) {
	clock := &fakeClock{}
	rec := &recorder{err: errors.New("connection refused")}

	var reported []error

	a := notes.NewAutosaver(notes.NewController("A"), rec.save,
		notes.WithClock(clock),
		notes.WithErrorHandler(func(err error) { reported = append(reported, err) }),
	)

	a.Edit("AB")
	clock.Advance(notes.DefaultDebounce)
	clock.Advance(10 * time.Second)

	assert.Equal(t, []string{"AB"}, rec.calls())
	require.Len(t, reported, 1)
	assert.Equal(t, notes.Dirty, a.Controller().State())
	assert.Equal(t, "AB", a.Controller().Draft())

	rec.err = nil

	a.Edit("ABC")
	clock.Advance(notes.DefaultDebounce)

	assert.Equal(t, []string{"AB", "ABC"}, rec.calls())
	assert.Equal(t, notes.Clean, a.Controller().State())
}

func TestAutosaver_EditDuringSave(t *testing.T) {
	clock := &fakeClock{}

	var (
		a     *notes.Autosaver
		saved []string
	)

	save := func(_ context.Context, v string) error {
		saved = append(saved, v)
		if len(saved) == 1 {
			a.Edit("ABC")
			assert.Equal(t, notes.Dirty, a.Controller().State())
		}

		return nil
	}

	a = notes.NewAutosaver(notes.NewController("A"), save, notes.WithClock(clock))

	a.Edit("AB")
	clock.Advance(notes.DefaultDebounce)

	assert.Equal(t, notes.Dirty, a.Controller().State())
	assert.Equal(t, "AB", a.Controller().Baseline())
	assert.Equal(t, "ABC", a.Controller().Draft())

	clock.Advance(notes.DefaultDebounce)

	assert.Equal(t, []string{"AB", "ABC"}, saved)
	assert.Equal(t, notes.Clean, a.Controller().State())
}

func TestAutosaver_ObserveWhileDirty(t *testing.T) {
	clock := &fakeClock{}
	rec := &recorder{}
	a := notes.NewAutosaver(notes.NewController("A"), rec.save, notes.WithClock(clock))

	a.Edit("AB")
	a.Observe("A2")
	clock.Advance(notes.DefaultDebounce)

	assert.Equal(t, []string{"AB"}, rec.calls())
	assert.Equal(t, "AB", a.Controller().Baseline())
}

func TestAutosaver_Flush(t *testing.T) {
	clock := &fakeClock{}
	rec := &recorder{}
	a := notes.NewAutosaver(notes.NewController(""), rec.save, notes.WithClock(clock))

	a.Edit("draft")
	a.Flush()

	assert.Equal(t, []string{"draft"}, rec.calls())

	clock.Advance(notes.DefaultDebounce)
	a.Close()

	assert.Len(t, rec.calls(), 1, "the stopped timer does not fire")
}

func TestAutosaver_SystemClock(t *testing.T) {
	done := make(chan string, 1)
	save := func(_ context.Context, v string) error {
		done <- v
		return nil
	}

	a := notes.NewAutosaver(notes.NewController(""), save, notes.WithDebounce(10*time.Millisecond))
	defer a.Close()

	a.Edit("x")

	select {
	case v := <-done:
		assert.Equal(t, "x", v)
	case <-time.After(2 * time.Second):
		t.Fatal("autosave did not fire")
	}
}

// captureClock hands out timers that cannot be stopped, like a time.Timer
// whose callback has already been scheduled.
type captureClock struct {
	mu  sync.Mutex
	fns []func()
}

type unstoppable struct{}

func (unstoppable) Stop() bool { return false }

func (c *captureClock) AfterFunc(_ time.Duration, f func()) notes.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fns = append(c.fns, f)

	return unstoppable{}
}

func (c *captureClock) fireAll() {
	c.mu.Lock()
	fns := append([]func(){}, c.fns...)
	c.mu.Unlock()

	for _, f := range fns {
		f()
	}
}

func TestAutosaver_RevertDuringSave(t *testing.T) {
	clock := &fakeClock{}

	var (
		a     *notes.Autosaver
		saved []string
	)

	save := func(_ context.Context, v string) error {
		saved = append(saved, v)
		if len(saved) == 1 {
			a.Edit("A")
		}

		return nil
	}

	a = notes.NewAutosaver(notes.NewController("A"), save, notes.WithClock(clock))

	a.Edit("AB")
	clock.Advance(notes.DefaultDebounce)

	assert.Equal(t, notes.Dirty, a.Controller().State())

	clock.Advance(notes.DefaultDebounce)

	assert.Equal(t, []string{"AB", "A"}, saved)
	assert.Equal(t, "A", a.Controller().Baseline())
	assert.Equal(t, notes.Clean, a.Controller().State())
}

func TestAutosaver_TimerAfterCloseDoesNotSave(t *testing.T) {
	clock := &captureClock{}
	rec := &recorder{}
	a := notes.NewAutosaver(notes.NewController("A"), rec.save, notes.WithClock(clock))

	a.Edit("AB")
	a.Close()
	clock.fireAll()

	a.Edit("ABC")
	a.Flush()

	assert.Empty(t, rec.calls())
	assert.Len(t, clock.fns, 1, "no timer is armed after Close")
}

func TestAutosaver_CloseWaitsForSave(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	save := func(_ context.Context, _ string) error {
		close(started)
		<-release

		return nil
	}

	a := notes.NewAutosaver(notes.NewController("A"), save, notes.WithClock(&captureClock{}))
	a.Edit("AB")

	go a.Flush()
	<-started

	closed := make(chan struct{})

	go func() {
		a.Close()
		close(closed)
	}()

	select {
	case <-closed:
		t.Fatal("Close returned with a save in flight")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)

	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not return after the save finished")
	}

	assert.Equal(t, notes.Clean, a.Controller().State())
}
