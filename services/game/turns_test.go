package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTurnStateHappyPath(t *testing.T) {
	ts := NewTurnState()
	assert.Equal(t, PhaseAwaitingDraw, ts.Phase)

	assert.NoError(t, ts.RecordDraw(10, 20))
	assert.Equal(t, PhaseCardsDrawn, ts.Phase)

	assert.NoError(t, ts.SelectCard(20))
	assert.Equal(t, PhaseCardSelected, ts.Phase)
	assert.Equal(t, 20, ts.Selected)

	assert.NoError(t, ts.RecordOutcome())
	assert.Equal(t, PhaseOutcomeRecorded, ts.Phase)
}

func TestTurnStateDoubleDraw(t *testing.T) {
	ts := NewTurnState()
	assert.NoError(t, ts.RecordDraw(1, 2))
	assert.Error(t, ts.RecordDraw(3, 4))

	// First draw untouched
	assert.Equal(t, 1, ts.Card1)
	assert.Equal(t, 2, ts.Card2)
}

func TestTurnStateSelectInvalidCard(t *testing.T) {
	ts := NewTurnState()
	assert.NoError(t, ts.RecordDraw(1, 2))

	err := ts.SelectCard(99)
	assert.ErrorIs(t, err, ErrInvalidSelection)
	assert.Equal(t, PhaseCardsDrawn, ts.Phase)
	assert.Equal(t, 0, ts.Selected)
}

func TestTurnStateSelectBeforeDraw(t *testing.T) {
	ts := NewTurnState()
	assert.Error(t, ts.SelectCard(1))
	assert.Error(t, ts.RecordOutcome())
}

func TestResetSelectionAllowsRetry(t *testing.T) {
	ts := NewTurnState()
	assert.NoError(t, ts.RecordDraw(1, 2))
	assert.NoError(t, ts.SelectCard(1))

	// A failed discard write unwinds the selection so the command can rerun
	ts.ResetSelection()
	assert.Equal(t, PhaseCardsDrawn, ts.Phase)
	assert.Equal(t, 0, ts.Selected)

	assert.NoError(t, ts.SelectCard(2))
	assert.Equal(t, 2, ts.Selected)
}

func TestResetSelectionNoOpAfterOutcome(t *testing.T) {
	ts := NewTurnState()
	ts.RecordDraw(1, 2)
	ts.SelectCard(1)
	ts.RecordOutcome()

	ts.ResetSelection()
	assert.Equal(t, PhaseOutcomeRecorded, ts.Phase)
	assert.Equal(t, 1, ts.Selected)
}

func TestHasSelection(t *testing.T) {
	ts := NewTurnState()
	assert.False(t, ts.HasSelection())

	ts.RecordDraw(1, 2)
	assert.False(t, ts.HasSelection())

	ts.SelectCard(1)
	assert.True(t, ts.HasSelection())

	ts.RecordOutcome()
	assert.True(t, ts.HasSelection())
}

func TestNextPlayerCyclic(t *testing.T) {
	order := []string{"a", "b", "c", "d"}
	all := map[string]bool{"a": true, "b": true, "c": true, "d": true}

	assert.Equal(t, "b", NextPlayer(order, "a", all))
	assert.Equal(t, "c", NextPlayer(order, "b", all))
	assert.Equal(t, "a", NextPlayer(order, "d", all))
}

func TestNextPlayerSkipsIneligible(t *testing.T) {
	order := []string{"a", "b", "c", "d"}
	eligible := map[string]bool{"a": true, "c": true, "d": true}

	// b dropped out: rotation becomes a, c, d, a, ...
	assert.Equal(t, "c", NextPlayer(order, "a", eligible))
	assert.Equal(t, "d", NextPlayer(order, "c", eligible))
	assert.Equal(t, "a", NextPlayer(order, "d", eligible))
}

func TestNextPlayerCurrentRemoved(t *testing.T) {
	// Holder was removed from the order entirely: scan starts at the front
	order := []string{"b", "c", "d"}
	eligible := map[string]bool{"c": true, "d": true}

	assert.Equal(t, "c", NextPlayer(order, "a", eligible))
}

func TestNextPlayerNobodyEligible(t *testing.T) {
	order := []string{"a", "b"}

	assert.Equal(t, "", NextPlayer(order, "a", map[string]bool{}))
	assert.Equal(t, "", NextPlayer([]string{}, "a", map[string]bool{"a": true}))
}

func TestNextPlayerSoloRoom(t *testing.T) {
	order := []string{"a"}
	eligible := map[string]bool{"a": true}

	// A single eligible player keeps the turn forever
	assert.Equal(t, "a", NextPlayer(order, "a", eligible))
}
