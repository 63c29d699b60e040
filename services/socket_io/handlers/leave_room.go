package handlers

import (
	"Pineapple/models/postgres"
	redis_models "Pineapple/models/redis"
	"Pineapple/services/game"
	"Pineapple/services/redis"
	socketio_types "Pineapple/services/socket_io/types"
	roomsync "Pineapple/sync"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// HandleLeaveRoom removes a player from their room on explicit request.
// Disconnects go through the same path (see HandleDisconnecting).
func HandleLeaveRoom(redisClient *redis.RedisClient, client *socket.Socket,
	db *gorm.DB, playerID string, sio *socketio_types.SocketServer,
	registry *roomsync.RoomRegistry) func(args ...interface{}) {
	return func(args ...interface{}) {
		data, ok := eventData(args)
		if !ok {
			client.Emit("error", gin.H{"message": "Missing room ID"})
			return
		}

		roomID := getString(data, "room_id")
		log.Printf("[LEAVE] Player %s leaving room %s", playerID, roomID)

		// Only honor the leave if it matches the session we recorded on join
		session, err := redisClient.GetRoomSession(playerID)
		if err != nil || session.RoomID != roomID {
			log.Printf("[LEAVE-WARN] No matching session for player %s in room %s", playerID, roomID)
			return
		}

		handlePlayerLeave(redisClient, db, sio, registry, roomID, playerID)
		client.Leave(socket.Room(roomID))
	}
}

// HandleDisconnecting treats a dropped transport exactly like an explicit
// leave and removes the connection from the server map.
func HandleDisconnecting(redisClient *redis.RedisClient, client *socket.Socket,
	db *gorm.DB, playerID string, sio *socketio_types.SocketServer,
	registry *roomsync.RoomRegistry) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[DISCONNECT] Player %s disconnecting, Socket ID: %s", playerID, client.Id())

		session, err := redisClient.GetRoomSession(playerID)
		if err == nil {
			handlePlayerLeave(redisClient, db, sio, registry, session.RoomID, playerID)
		}

		sio.RemoveConnection(playerID)
	}
}

// handlePlayerLeave is the shared membership-exit path: deactivate the row,
// drop the player from the rotation, end the game when the room empties and
// hand the turn onward when the leaver held it. An abandoned turn that
// already had a selection is logged as passed; an earlier one is discarded
// silently.
func handlePlayerLeave(redisClient *redis.RedisClient, db *gorm.DB,
	sio *socketio_types.SocketServer, registry *roomsync.RoomRegistry,
	roomID, playerID string) {

	registry.WithRoom(roomID, func() {
		room, err := game.GetRoom(db, roomID)
		if err != nil {
			log.Printf("[LEAVE-ERROR] Could not load room %s: %v", roomID, err)
			return
		}

		wasCurrentTurn := room.CurrentTurnPlayerID != nil && *room.CurrentTurnPlayerID == playerID

		gameEnded, err := game.RemovePlayerFromRoom(db, roomID, playerID)
		if err != nil {
			log.Printf("[LEAVE-ERROR] Could not remove player %s: %v", playerID, err)
			return
		}

		if err := redisClient.DeleteRoomSession(playerID); err != nil {
			log.Printf("[LEAVE-WARN] Could not delete room session: %v", err)
		}
		presence := &redis_models.PlayerPresence{
			PlayerID: playerID,
			Status:   redis_models.StatusOffline,
			LastPing: time.Now().Unix(),
		}
		if err := redisClient.SavePlayerPresence(presence); err != nil {
			log.Printf("[LEAVE-WARN] Could not update presence: %v", err)
		}

		sio.BroadcastToRoom(roomID, "player_left", gin.H{"player_id": playerID})

		if gameEnded {
			log.Printf("[LEAVE] Last active player left, room %s ended", roomID)
			sio.BroadcastToRoom(roomID, "game_ended", gin.H{"room_id": roomID})
			registry.Drop(roomID)
			return
		}

		if wasCurrentTurn {
			ts := registry.TurnState(roomID)
			if ts != nil && ts.HasSelection() {
				_, err := game.LogTurn(db, roomID, playerID, ts.Card1, ts.Card2, ts.Selected,
					postgres.OutcomePassed, room.TurnNumber)
				if err != nil {
					log.Printf("[LEAVE-ERROR] Could not log abandoned turn: %v", err)
				}
			}
			registry.ClearTurnState(roomID)

			next, turnNumber, err := game.AdvanceTurn(db, roomID)
			if err != nil {
				log.Printf("[LEAVE-ERROR] Could not advance turn: %v", err)
				return
			}
			if next != "" {
				sio.BroadcastToRoom(roomID, "turn_started", gin.H{
					"player_id":   next,
					"turn_number": turnNumber,
				})
			}
		}
	})
}
