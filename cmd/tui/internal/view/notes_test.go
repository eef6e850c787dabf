package view

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/dealboard/internal/notes"
)

type recordingSave struct {
	sent []string
	err  error
}

func (r *recordingSave) save(_ context.Context, v string) error {
	r.sent = append(r.sent, v)
	return r.err
}

func typeInto(t *testing.T, e NotesEditor, s string) NotesEditor {
	t.Helper()

	e, _ = e.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})

	return e
}

func TestNotesEditor_SavesLatestEditOnly(t *testing.T) {
	rec := &recordingSave{}
	e := NewNotesEditor("", rec.save, time.Millisecond)
	e.Focus()

	e = typeInto(t, e, "a")
	e = typeInto(t, e, "b")
	assert.Equal(t, notes.Dirty, e.State())

	e, cmd := e.Update(notesDueMsg{session: e.session, gen: 1})
	assert.Nil(t, cmd, "superseded generation must not save")

	e, cmd = e.Update(notesDueMsg{session: e.session, gen: 2})
	require.NotNil(t, cmd)
	assert.Equal(t, notes.Saving, e.State())

	e, _ = e.Update(cmd())
	assert.Equal(t, []string{"ab"}, rec.sent)
	assert.Equal(t, notes.Clean, e.State())
}

func TestNotesEditor_IgnoresOtherSessions(t *testing.T) {
	rec := &recordingSave{}
	e := NewNotesEditor("", rec.save, time.Millisecond)
	e.Focus()

	e = typeInto(t, e, "x")

	e, cmd := e.Update(notesDueMsg{session: e.session + 1, gen: 1})
	assert.Nil(t, cmd)
	assert.Equal(t, notes.Dirty, e.State())
}

func TestNotesEditor_FailedSaveStaysDirty(t *testing.T) {
	rec := &recordingSave{err: errors.New("offline")}
	e := NewNotesEditor("", rec.save, time.Millisecond)
	e.Focus()

	e = typeInto(t, e, "x")

	e, cmd := e.Update(notesDueMsg{session: e.session, gen: 1})
	require.NotNil(t, cmd)

	e, _ = e.Update(cmd())
	assert.Equal(t, notes.Dirty, e.State())
	assert.Contains(t, e.View(), "save failed")
}

func TestNotesEditor_ObserveKeepsUnsavedText(t *testing.T) {
	e := NewNotesEditor("server", (&recordingSave{}).save, time.Millisecond)
	e.Focus()

	e.Observe("server v2")
	assert.Equal(t, "server v2", e.area.Value())

	e = typeInto(t, e, "!")
	e.Observe("server v3")
	assert.Equal(t, "server v2!", e.area.Value())
	assert.Equal(t, "server v3", e.ctrl.Baseline())
}

func TestNotesEditor_RevertDuringSaveIsSaved(t *testing.T) {
	rec := &recordingSave{}
	e := NewNotesEditor("A", rec.save, time.Millisecond)
	e.Focus()

	e = typeInto(t, e, "B")

	e, first := e.Update(notesDueMsg{session: e.session, gen: 1})
	require.NotNil(t, first)

	e, _ = e.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	require.Equal(t, "A", e.area.Value())
	assert.Equal(t, notes.Dirty, e.State())

	e, second := e.Update(notesDueMsg{session: e.session, gen: 2})
	require.NotNil(t, second, "reverted text must still be saved")

	e, _ = e.Update(first())
	e, _ = e.Update(second())

	assert.Equal(t, []string{"AB", "A"}, rec.sent)
	assert.Equal(t, "A", e.ctrl.Baseline())
	assert.Equal(t, notes.Clean, e.State())
}
