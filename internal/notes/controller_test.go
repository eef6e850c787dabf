package notes_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/dealboard/internal/notes"
)

func TestController_ObserveKeepsDirtyDraft(t *testing.T) {
	c := notes.NewController("A")
	c.Edit("AB")
	require.Equal(t, notes.Dirty, c.State())

	c.Observe("A2")

	assert.Equal(t, "AB", c.Draft())
	assert.Equal(t, "A2", c.Baseline())
	assert.Equal(t, notes.Dirty, c.State())
}

func TestController_ObserveAdoptsWhenClean(t *testing.T) {
	c := notes.NewController("A")

	c.Observe("A2")

	assert.Equal(t, "A2", c.Draft())
	assert.Equal(t, "A2", c.Baseline())
	assert.Equal(t, notes.Clean, c.State())
}

func TestController_ObserveSameBaselineIsNoop(t *testing.T) {
	c := notes.NewController("A")
	c.Edit("AB")

	c.Observe("A")

	assert.Equal(t, "AB", c.Draft())
	assert.Equal(t, notes.Dirty, c.State())
}

func TestController_ObserveMatchingDraftCleans(t *testing.T) {
	c := notes.NewController("A")
	c.Edit("AB")

	c.Observe("AB")

	assert.Equal(t, notes.Clean, c.State())
}

func TestController_SaveCycle(t *testing.T) {
	c := notes.NewController("")
	gen := c.Edit("call Friday")

	require.True(t, c.Due(gen))

	value, seq, ok := c.Begin()
	require.True(t, ok)
	assert.Equal(t, "call Friday", value)
	assert.Equal(t, notes.Saving, c.State())
	assert.False(t, c.Due(gen), "a save is already in flight")

	c.Complete(seq, nil)

	assert.Equal(t, notes.Clean, c.State())
	assert.Equal(t, "call Friday", c.Baseline())
}

func TestController_EditDuringSave(t *testing.T) {
	c := notes.NewController("A")
	c.Edit("AB")

	_, seq, ok := c.Begin()
	require.True(t, ok)

	c.Edit("ABC")
	assert.Equal(t, notes.Dirty, c.State())

	c.Complete(seq, nil)

	assert.Equal(t, notes.Dirty, c.State())
	assert.Equal(t, "AB", c.Baseline(), "the sent value becomes the baseline")
	assert.Equal(t, "ABC", c.Draft())
}

func TestController_FailedSave(t *testing.T) {
	c := notes.NewController("A")
	gen := c.Edit("AB")

	_, seq, _ := c.Begin()
	c.Complete(seq, errors.New("503"))

	assert.Equal(t, notes.Dirty, c.State())
	assert.Equal(t, "AB", c.Draft())
	assert.Equal(t, "A", c.Baseline())
	assert.True(t, c.Due(gen), "the same edit can be saved again on the next cycle")
}

func TestController_OutOfOrderCompletion(t *testing.T) {
	c := notes.NewController("")
	c.Edit("one")
	_, first, _ := c.Begin()

	c.Edit("one two")
	_, second, _ := c.Begin()

	c.Complete(second, nil)
	assert.Equal(t, notes.Clean, c.State())

	c.Complete(first, nil)

	assert.Equal(t, "one two", c.Baseline(), "an older ack never moves the baseline back")
	assert.Equal(t, notes.Clean, c.State())
}

func TestController_StaleGenerationNotDue(t *testing.T) {
	c := notes.NewController("")
	first := c.Edit("a")
	second := c.Edit("ab")

	assert.False(t, c.Due(first))
	assert.True(t, c.Due(second))
}

func TestController_RevertToBaseline(t *testing.T) {
	c := notes.NewController("A")
	gen := c.Edit("AB")
	c.Edit("A")

	assert.Equal(t, notes.Clean, c.State())
	assert.False(t, c.Due(gen))

	_, _, ok := c.Begin()
	assert.False(t, ok)
}

func TestController_RevertDuringSave(t *testing.T) {
	c := notes.NewController("A")
	c.Edit("AB")

	_, first, ok := c.Begin()
	require.True(t, ok)

	gen := c.Edit("A")

	require.Equal(t, notes.Dirty, c.State())
	require.True(t, c.Due(gen))

	value, second, ok := c.Begin()
	require.True(t, ok)
	assert.Equal(t, "A", value)

	c.Complete(first, nil)
	assert.Equal(t, "AB", c.Baseline())
	assert.Equal(t, notes.Saving, c.State())

	c.Complete(second, nil)
	assert.Equal(t, "A", c.Baseline())
	assert.Equal(t, notes.Clean, c.State())
}

func TestController_RevertAfterSaveLands(t *testing.T) {
	c := notes.NewController("A")
	c.Edit("AB")

	_, seq, ok := c.Begin()
	require.True(t, ok)

	gen := c.Edit("A")
	c.Complete(seq, nil)

	assert.Equal(t, "AB", c.Baseline())
	assert.Equal(t, notes.Dirty, c.State())
	assert.True(t, c.Due(gen))
}

func TestController_UnknownSeqIgnored(t *testing.T) {
	c := notes.NewController("A")
	c.Edit("AB")

	c.Complete(42, nil)

	assert.Equal(t, "A", c.Baseline())
	assert.Equal(t, notes.Dirty, c.State())
}
