package handlers

import (
	game_constants "Pineapple/constants/game"
	"Pineapple/models/postgres"
	"Pineapple/services/game"
	"Pineapple/services/redis"
	socketio_types "Pineapple/services/socket_io/types"
	socketio_utils "Pineapple/services/socket_io/utils"
	roomsync "Pineapple/sync"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// HandleInitiateKick opens a bounded-time group vote to remove a player. The
// initiator's ballot is pre-recorded as kick and the 60-second timer is armed
// as a serialized command against the room.
func HandleInitiateKick(redisClient *redis.RedisClient, client *socket.Socket,
	db *gorm.DB, playerID string, sio *socketio_types.SocketServer,
	registry *roomsync.RoomRegistry) func(args ...interface{}) {
	return func(args ...interface{}) {
		data, ok := eventData(args)
		if !ok {
			client.Emit("error", gin.H{"message": "Missing kick data"})
			return
		}
		roomID := getString(data, "room_id")
		targetID := getString(data, "target_player_id")
		if targetID == "" {
			client.Emit("error", gin.H{"message": "Missing target player"})
			return
		}

		registry.WithRoom(roomID, func() {
			if _, err := socketio_utils.ValidateRoomAndPlayer(db, client, roomID, playerID); err != nil {
				return
			}

			vote, err := game.InitiateKickVote(db, roomID, playerID, targetID)
			if err != nil {
				log.Printf("[KICK-ERROR] Could not initiate vote in room %s: %v", roomID, err)
				emitGameError(client, err, "Failed to initiate kick vote")
				return
			}

			sio.BroadcastToRoom(roomID, "kick_vote_initiated", gin.H{
				"vote_id":          vote.VoteID,
				"target_player_id": targetID,
				"initiated_by":     playerID,
			})

			voteID := vote.VoteID
			registry.ScheduleVoteResolution(roomID, voteID, game_constants.KickVoteDuration, func() {
				resolveVoteLocked(db, sio, registry, roomID, voteID)
			})

			log.Printf("[KICK] Vote %s opened against %s in room %s", vote.VoteID, targetID, roomID)
		})
	}
}

// HandleCastKickVote records one ballot. Duplicate or late ballots are
// silently ignored. When every eligible voter has spoken the vote resolves
// early and the timer is cancelled.
func HandleCastKickVote(redisClient *redis.RedisClient, client *socket.Socket,
	db *gorm.DB, playerID string, sio *socketio_types.SocketServer,
	registry *roomsync.RoomRegistry) func(args ...interface{}) {
	return func(args ...interface{}) {
		data, ok := eventData(args)
		if !ok {
			client.Emit("error", gin.H{"message": "Missing vote data"})
			return
		}
		roomID := getString(data, "room_id")
		voteID := getString(data, "vote_id")
		ballot := getString(data, "vote")
		if ballot != postgres.KickBallotKick && ballot != postgres.KickBallotKeep {
			client.Emit("error", gin.H{"message": "Invalid ballot"})
			return
		}

		registry.WithRoom(roomID, func() {
			if _, err := socketio_utils.ValidateRoomAndPlayer(db, client, roomID, playerID); err != nil {
				return
			}

			vote, recorded, allVoted, err := game.CastKickVote(db, voteID, playerID, ballot)
			if err != nil {
				log.Printf("[KICK-ERROR] Could not cast ballot on vote %s: %v", voteID, err)
				client.Emit("error", gin.H{"message": "Failed to cast vote"})
				return
			}
			if !recorded {
				// Duplicate or late ballot, nothing changed so nothing to announce
				return
			}

			sio.BroadcastToRoom(roomID, "kick_vote_update", gin.H{
				"vote_id":       vote.VoteID,
				"votes_for":     vote.VotesFor,
				"votes_against": vote.VotesAgainst,
			})

			if allVoted && vote.Status == postgres.KickVoteStatusPending {
				registry.CancelVoteResolution(roomID, voteID)
				resolveVoteLocked(db, sio, registry, roomID, voteID)
			}
		})
	}
}

// resolveVoteLocked settles a vote and broadcasts the result. Callers must
// hold the room lock (either directly inside WithRoom or through the
// registry's timer dispatch). A vote that was already settled by the other
// trigger is left alone.
func resolveVoteLocked(db *gorm.DB, sio *socketio_types.SocketServer,
	registry *roomsync.RoomRegistry, roomID, voteID string) {

	vote, resolvedNow, err := game.ResolveKickVote(db, voteID)
	if err != nil {
		log.Printf("[KICK-ERROR] Could not resolve vote %s: %v", voteID, err)
		return
	}
	if !resolvedNow {
		return
	}

	sio.BroadcastToRoom(roomID, "kick_vote_resolved", gin.H{
		"vote_id":          vote.VoteID,
		"target_player_id": vote.TargetPlayerID,
		"result":           vote.Status,
	})

	log.Printf("[KICK] Vote %s resolved: %s", voteID, vote.Status)

	if vote.Status != postgres.KickVoteStatusKicked {
		return
	}

	// If the kicked player held the turn, the in-flight turn is abandoned
	// without a record and play moves on immediately.
	room, err := game.GetRoom(db, roomID)
	if err != nil {
		log.Printf("[KICK-ERROR] Could not load room %s: %v", roomID, err)
		return
	}
	if room.CurrentTurnPlayerID != nil && *room.CurrentTurnPlayerID == vote.TargetPlayerID {
		registry.ClearTurnState(roomID)

		next, turnNumber, err := game.AdvanceTurn(db, roomID)
		if err != nil {
			log.Printf("[KICK-ERROR] Could not advance turn: %v", err)
			return
		}
		if next != "" {
			sio.BroadcastToRoom(roomID, "turn_started", gin.H{
				"player_id":   next,
				"turn_number": turnNumber,
			})
		}
	}
}
