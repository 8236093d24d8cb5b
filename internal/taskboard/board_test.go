package taskboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBoard_PreservesOrderAndDedupes(t *testing.T) {
	b := NewBoard("pkg/example.py", []string{"alpha", "beta", "alpha", "gamma"})

	assert.Equal(t, "pkg/example.py", b.File())
	assert.Equal(t, 3, b.Len())

	statuses := b.Statuses()
	assert.Equal(t, "alpha", statuses[0].Function)
	assert.Equal(t, "beta", statuses[1].Function)
	assert.Equal(t, "gamma", statuses[2].Function)
	for _, s := range statuses {
		assert.Equal(t, TaskPending, s.State)
	}
}

func TestBoard_Transitions(t *testing.T) {
	b := NewBoard("f.py", []string{"a", "b", "c"})

	b.MarkSucceeded("a", "Doc for a.", 0.002)
	b.MarkTimedOut("b", "deadline exceeded")
	b.MarkFailed("c", "bad response")

	statuses := b.Statuses()
	assert.Equal(t, TaskSucceeded, statuses[0].State)
	assert.Equal(t, TaskTimedOut, statuses[1].State)
	assert.Equal(t, TaskFailed, statuses[2].State)
	assert.Equal(t, 2, b.FailedCount())
}

func TestBoard_TerminalStatesAreSticky(t *testing.T) {
	b := NewBoard("f.py", []string{"a"})

	b.MarkTimedOut("a", "deadline exceeded")
	// A late completion for an already resolved task must not flip it.
	b.MarkSucceeded("a", "too late", 0.01)

	statuses := b.Statuses()
	assert.Equal(t, TaskTimedOut, statuses[0].State)
	assert.Empty(t, b.Succeeded())
}

func TestBoard_UnknownFunctionIsIgnored(t *testing.T) {
	b := NewBoard("f.py", []string{"a"})
	b.MarkSucceeded("nope", "text", 0.1)
	assert.Empty(t, b.Succeeded())
}

func TestBoard_SucceededCarriesResultAndCost(t *testing.T) {
	b := NewBoard("f.py", []string{"a", "b"})
	b.MarkSucceeded("b", "Doc for b.", 0.004)
	b.MarkFailed("a", "boom")

	done := b.Succeeded()
	assert.Len(t, done, 1)
	assert.Equal(t, "b", done[0].Function)
	assert.Equal(t, "Doc for b.", done[0].Result)
	assert.Equal(t, 0.004, done[0].Cost)
}

func TestBoard_FinalizeRequiresAllResolved(t *testing.T) {
	b := NewBoard("f.py", []string{"a", "b"})
	b.MarkSucceeded("a", "doc", 0)

	b.Finalize()
	assert.False(t, b.Finalized())
	assert.False(t, b.AllResolved())

	b.MarkFailed("b", "boom")
	assert.True(t, b.AllResolved())
	b.Finalize()
	assert.True(t, b.Finalized())
}

func TestBoard_EmptyBoardResolvesImmediately(t *testing.T) {
	b := NewBoard("f.py", nil)
	assert.True(t, b.AllResolved())
	b.Finalize()
	assert.True(t, b.Finalized())
}
