package view

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/dealboard/internal/notes"
)

// NotesEditor is a textarea bound to a notes.Controller. Edits are saved after
// the debounce window and server refreshes never overwrite unsaved text.
type NotesEditor struct {
	area     textarea.Model
	ctrl     *notes.Controller
	save     notes.SaveFunc
	debounce time.Duration
	session  uint64
	err      error
}

type notesDueMsg struct {
	session uint64
	gen     uint64
}

type notesSavedMsg struct {
	session uint64
	seq     uint64
	err     error
}

func NewNotesEditor(server string, save notes.SaveFunc, debounce time.Duration) NotesEditor {
	ta := textarea.New()
	ta.Placeholder = "Notes..."
	ta.ShowLineNumbers = false
	ta.SetWidth(60)
	ta.SetHeight(8)
	ta.SetValue(server)

	return NotesEditor{
		area:     ta,
		ctrl:     notes.NewController(server),
		save:     save,
		debounce: debounce,
		session:  nextSession(),
	}
}

// withServer returns a fresh editor over the first value read from the server.
func (e NotesEditor) withServer(server string) NotesEditor {
	return NewNotesEditor(server, e.save, e.debounce)
}

func (e NotesEditor) Update(msg tea.Msg) (NotesEditor, tea.Cmd) {
	switch msg := msg.(type) {
	case notesDueMsg:
		if msg.session != e.session || !e.ctrl.Due(msg.gen) {
			return e, nil
		}

		return e, e.begin()

	case notesSavedMsg:
		if msg.session != e.session {
			return e, nil
		}

		e.ctrl.Complete(msg.seq, msg.err)
		e.err = msg.err

		return e, nil
	}

	prev := e.area.Value()

	var cmd tea.Cmd
	e.area, cmd = e.area.Update(msg)

	if v := e.area.Value(); v != prev {
		gen := e.ctrl.Edit(v)
		session := e.session

		cmd = tea.Batch(cmd, tea.Tick(e.debounce, func(time.Time) tea.Msg {
			return notesDueMsg{session: session, gen: gen}
		}))
	}

	return e, cmd
}

// begin starts a save of the current draft, if there is one to save.
func (e NotesEditor) begin() tea.Cmd {
	value, seq, ok := e.ctrl.Begin()
	if !ok {
		return nil
	}

	save, session := e.save, e.session

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		return notesSavedMsg{session: session, seq: seq, err: save(ctx, value)}
	}
}

// Observe feeds a freshly fetched server value to the controller and shows it
// when there is no local edit pending.
func (e *NotesEditor) Observe(server string) {
	e.ctrl.Observe(server)

	if e.ctrl.State() == notes.Clean && e.area.Value() != e.ctrl.Draft() {
		e.area.SetValue(e.ctrl.Draft())
	}
}

// Flush saves a pending draft without waiting for the debounce window. The
// result is not reported back; it is used when leaving the screen.
func (e NotesEditor) Flush() tea.Cmd {
	value, seq, ok := e.ctrl.Begin()
	if !ok {
		return nil
	}

	ctrl, save := e.ctrl, e.save

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
		defer cancel()

		ctrl.Complete(seq, save(ctx, value))

		return nil
	}
}

func (e *NotesEditor) Focus() tea.Cmd {
	return e.area.Focus()
}

func (e *NotesEditor) Blur() {
	e.area.Blur()
}

func (e NotesEditor) Focused() bool {
	return e.area.Focused()
}

func (e NotesEditor) State() notes.State {
	return e.ctrl.State()
}

func (e NotesEditor) View() string {
	status := lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("notes: %s", e.ctrl.State()))

	if e.err != nil {
		status += " " + errorStyle(fmt.Sprintf("(save failed: %v)", e.err))
	}

	return lipgloss.JoinVertical(lipgloss.Left, e.area.View(), status)
}
