package handlers

import (
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

// HandleUpdateExpansions lets the host change the card pools while the room
// is still in the lobby. The base pool is always re-added when omitted.
func HandleUpdateExpansions(redisClient *redis.RedisClient, client *socket.Socket,
	db *gorm.DB, playerID string, sio *socketio_types.SocketServer,
	registry *roomsync.RoomRegistry) func(args ...interface{}) {
	return func(args ...interface{}) {
		data, ok := eventData(args)
		if !ok {
			client.Emit("error", gin.H{"message": "Missing expansion data"})
			return
		}
		roomID := getString(data, "room_id")
		expansions := getStringSlice(data, "expansions")

		registry.WithRoom(roomID, func() {
			_, err := game.UpdateExpansions(db, roomID, playerID, expansions)
			if err != nil {
				log.Printf("[EXPANSIONS-ERROR] Update failed in room %s: %v", roomID, err)
				emitGameError(client, err, "Only the host can change expansions in the lobby")
				return
			}

			state, err := socketio_utils.BuildRoomState(db, roomID)
			if err != nil {
				log.Printf("[EXPANSIONS-ERROR] Could not build room state: %v", err)
				return
			}
			sio.BroadcastToRoom(roomID, "room_state", state)

			log.Printf("[EXPANSIONS] Room %s expansions updated by %s", roomID, playerID)
		})
	}
}
