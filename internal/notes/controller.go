// Package notes keeps a locally edited text field in step with its server
// copy. Saves are debounced, and a value read from the server never replaces
// text the user has not saved yet.
package notes

import "sync"

type State int

const (
	Clean State = iota
	Dirty
	Saving
)

func (s State) String() string {
	switch s {
	case Clean:
		return "clean"
	case Dirty:
		return "dirty"
	case Saving:
		return "saving"
	}

	return "unknown"
}

// Controller tracks one notes field. It is safe for concurrent use.
type Controller struct {
	mu       sync.Mutex
	draft    string
	baseline string
	state    State

	gen      uint64
	seq      uint64
	acked    uint64
	inflight map[uint64]string
}

// NewController starts Clean with server as both draft and baseline.
func NewController(server string) *Controller {
	return &Controller{
		draft:    server,
		baseline: server,
		inflight: make(map[uint64]string),
	}
}

func (c *Controller) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.draft
}

// Baseline is the last value known to be on the server.
func (c *Controller) Baseline() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.baseline
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Edit records a local change and returns its generation. Each edit
// supersedes every earlier generation.
func (c *Controller) Edit(text string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.draft = text
	c.gen++
	c.settle()

	return c.gen
}

// Due reports whether a save should start for the edit of generation gen: no
// later edit happened and the draft is still unsaved.
func (c *Controller) Due(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return gen == c.gen && c.state == Dirty
}

// Begin moves a Dirty controller to Saving. It returns the value to send and
// the sequence number to pass to Complete. ok is false when there is nothing
// to save.
func (c *Controller) Begin() (value string, seq uint64, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Dirty {
		return "", 0, false
	}

	c.seq++
	c.inflight[c.seq] = c.draft
	c.state = Saving

	return c.draft, c.seq, true
}

// Complete settles the save started with seq. A successful save makes the
// value it sent the baseline, unless a later save was already acknowledged.
// A failed save leaves the draft untouched and is not retried.
func (c *Controller) Complete(seq uint64, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sent, ok := c.inflight[seq]
	if !ok {
		return
	}

	delete(c.inflight, seq)

	if err == nil && seq > c.acked {
		c.acked = seq
		c.baseline = sent
	}

	c.settle()
}

// Observe reconciles a value read from the server. A Clean controller adopts
// it as draft and baseline; otherwise only the baseline moves.
func (c *Controller) Observe(server string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if server == c.baseline {
		return
	}

	if c.state == Clean {
		c.draft = server
	}

	c.baseline = server
	c.settle()
}

// settle derives the state from draft, baseline and the saves in flight.
// Saves at or below acked can no longer move the baseline and are ignored. A
// live save carrying anything other than the draft will overwrite the
// baseline, so the draft stays Dirty even when it matches the baseline now.
func (c *Controller) settle() {
	saving, diverging := false, false

	for seq, v := range c.inflight {
		if seq <= c.acked {
			continue
		}

		if v == c.draft {
			saving = true
		} else {
			diverging = true
		}
	}

	switch {
	case c.draft == c.baseline && !diverging:
		c.state = Clean
	case saving:
		c.state = Saving
	default:
		c.state = Dirty
	}
}
