package game

import (
	"sort"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func sortedCopy(ids []int) []int {
	out := make([]int, len(ids))
	copy(out, ids)
	sort.Ints(out)
	return out
}

func TestShuffleKeepsMultiset(t *testing.T) {
	ids := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	want := sortedCopy(ids)

	Shuffle(ids)

	assert.Equal(t, want, sortedCopy(ids))
}

func TestDrawNFromDrawPile(t *testing.T) {
	p := &Piles{Draw: []int{5, 6, 7, 8}, Discard: []int{}}

	drawn := p.DrawN(2)

	assert.Equal(t, []int{5, 6}, drawn)
	assert.Equal(t, []int{7, 8}, p.Draw)
	assert.Empty(t, p.Discard)
}

func TestDrawNReshufflesDiscard(t *testing.T) {
	p := &Piles{Draw: []int{1}, Discard: []int{2, 3, 4}}

	drawn := p.DrawN(2)

	assert.Len(t, drawn, 2)
	assert.NotEqual(t, drawn[0], drawn[1])
	assert.Len(t, p.Draw, 2)
	assert.Empty(t, p.Discard)

	// Nothing lost, nothing duplicated
	remaining := append(sortedCopy(drawn), p.Draw...)
	assert.Equal(t, []int{1, 2, 3, 4}, sortedCopy(remaining))
}

func TestDrawNShortSupply(t *testing.T) {
	p := &Piles{Draw: []int{9}, Discard: []int{}}

	drawn := p.DrawN(2)

	assert.Equal(t, []int{9}, drawn)
	assert.Empty(t, p.Draw)
}

func TestPilesInvariantAcrossOperations(t *testing.T) {
	p := &Piles{Draw: []int{1, 2, 3, 4, 5, 6}, Discard: []int{}}
	want := []int{1, 2, 3, 4, 5, 6}

	// Repeated draw-2/discard-both cycles must never lose or duplicate a card
	for i := 0; i < 20; i++ {
		drawn := p.DrawN(2)
		assert.Len(t, drawn, 2)
		for _, id := range drawn {
			p.Add(id)
		}

		all := append(sortedCopy(p.Draw), p.Discard...)
		assert.Equal(t, want, sortedCopy(all), "cycle %d", i)
	}
}

func TestAddAppendsToDiscard(t *testing.T) {
	p := &Piles{Draw: []int{}, Discard: []int{1}}

	p.Add(2)

	assert.Equal(t, []int{1, 2}, p.Discard)
}

func TestDiscardCardsSingleWrite(t *testing.T) {
	db, mock := setupMockDB(t)

	// Both ids of a turn land in the discard pile through one update
	mock.ExpectQuery(`SELECT \* FROM "game_decks"`).
		WillReturnRows(sqlmock.NewRows([]string{"room_id", "draw_pile", "discard_pile"}).
			AddRow("r1", []byte(`[3,4]`), []byte(`[9]`)))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "game_decks" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, DiscardCards(db, "r1", 1, 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDiscardCardsNoIDs(t *testing.T) {
	db, mock := setupMockDB(t)

	assert.NoError(t, DiscardCards(db, "r1"))

	// Nothing touched the database
	assert.NoError(t, mock.ExpectationsWereMet())
}
