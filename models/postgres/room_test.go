package postgres

import (
	game_constants "Pineapple/constants/game"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateRoomCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := generateRoomCode(game_constants.RoomCodeLength)
		assert.Len(t, code, game_constants.RoomCodeLength)
		for _, ch := range code {
			assert.True(t, strings.ContainsRune(game_constants.RoomCodeCharset, ch),
				"character %q outside the join-code alphabet", ch)
		}
	}
}

func TestRoomCodeCharsetExcludesAmbiguous(t *testing.T) {
	for _, ch := range "01IO" {
		assert.False(t, strings.ContainsRune(game_constants.RoomCodeCharset, ch))
	}
}

func TestSetExpansionListKeepsCore(t *testing.T) {
	var r Room

	r.SetExpansionList([]string{"spicy", "party"})
	assert.Equal(t, []string{"core", "spicy", "party"}, r.ExpansionList())

	r.SetExpansionList([]string{"core", "spicy"})
	assert.Equal(t, []string{"core", "spicy"}, r.ExpansionList())

	r.SetExpansionList(nil)
	assert.Equal(t, []string{"core"}, r.ExpansionList())
}

func TestTurnOrderRoundTrip(t *testing.T) {
	var r Room

	r.SetTurnOrderList([]string{"p1", "p2", "p3"})
	assert.Equal(t, []string{"p1", "p2", "p3"}, r.TurnOrderList())

	r.SetTurnOrderList(nil)
	assert.Empty(t, r.TurnOrderList())
}

func TestVoterMapTallies(t *testing.T) {
	var v KickVote

	v.SetVoterMap(map[string]string{
		"a": KickBallotKick,
		"b": KickBallotKick,
		"c": KickBallotKeep,
	})

	assert.Equal(t, 2, v.VotesFor)
	assert.Equal(t, 1, v.VotesAgainst)

	voters := v.VoterMap()
	assert.Equal(t, KickBallotKick, voters["a"])
	assert.Equal(t, KickBallotKeep, voters["c"])
}
