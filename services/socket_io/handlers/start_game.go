package handlers

import (
	"Pineapple/services/game"
	"Pineapple/services/redis"
	socketio_types "Pineapple/services/socket_io/types"
	roomsync "Pineapple/sync"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// HandleStartGame moves a lobby into play: deck built over the selected
// expansions, active members shuffled into the rotation, first turn handed
// out. Host only.
func HandleStartGame(redisClient *redis.RedisClient, client *socket.Socket,
	db *gorm.DB, playerID string, sio *socketio_types.SocketServer,
	registry *roomsync.RoomRegistry) func(args ...interface{}) {
	return func(args ...interface{}) {
		data, ok := eventData(args)
		if !ok {
			client.Emit("error", gin.H{"message": "Missing room ID"})
			return
		}

		roomID := getString(data, "room_id")
		log.Printf("[START] Player %s starting game in room %s", playerID, roomID)

		registry.WithRoom(roomID, func() {
			room, err := game.StartGame(db, roomID, playerID)
			if err != nil {
				log.Printf("[START-ERROR] Could not start game in room %s: %v", roomID, err)
				emitGameError(client, err, "Cannot start game")
				return
			}

			sio.BroadcastToRoom(roomID, "game_started", gin.H{
				"turn_order":        room.TurnOrderList(),
				"current_player_id": *room.CurrentTurnPlayerID,
			})
			sio.BroadcastToRoom(roomID, "turn_started", gin.H{
				"player_id":   *room.CurrentTurnPlayerID,
				"turn_number": room.TurnNumber,
			})

			log.Printf("[START-SUCCESS] Room %s started, first turn: %s", roomID, *room.CurrentTurnPlayerID)
		})
	}
}
