package socketio_utils

import (
	"Pineapple/services/game"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BuildRoomState assembles the full snapshot unicast to a joining connection
// and broadcast after lobby-level changes: the room row, every membership,
// the turn history and the pending kick vote (tallies only, individual
// ballots stay server-side).
func BuildRoomState(db *gorm.DB, roomID string) (gin.H, error) {
	room, err := game.GetRoom(db, roomID)
	if err != nil {
		return nil, err
	}

	players, err := game.GetRoomPlayers(db, roomID)
	if err != nil {
		return nil, err
	}

	turnLog, err := game.GetTurnLogs(db, roomID)
	if err != nil {
		return nil, err
	}

	state := gin.H{
		"room": gin.H{
			"room_id":                room.RoomID,
			"room_code":              room.RoomCode,
			"host_player_id":         room.HostPlayerID,
			"status":                 room.Status,
			"expansions":             room.ExpansionList(),
			"turn_order":             room.TurnOrderList(),
			"current_turn_player_id": room.CurrentTurnPlayerID,
			"turn_number":            room.TurnNumber,
		},
		"players":  players,
		"turn_log": turnLog,
	}

	pending, err := game.PendingKickVote(db, roomID)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		state["active_kick_vote"] = gin.H{
			"vote_id":          pending.VoteID,
			"target_player_id": pending.TargetPlayerID,
			"initiated_by":     pending.InitiatedBy,
			"votes_for":        pending.VotesFor,
			"votes_against":    pending.VotesAgainst,
			"status":           pending.Status,
		}
	}

	return state, nil
}
