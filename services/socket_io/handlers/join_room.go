package handlers

import (
	redis_models "Pineapple/models/redis"
	"Pineapple/services/game"
	"Pineapple/services/redis"
	socketio_types "Pineapple/services/socket_io/types"
	socketio_utils "Pineapple/services/socket_io/utils"
	roomsync "Pineapple/sync"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// HandleJoinRoom joins a connection to a room found by its short code. The
// membership row is created or reactivated, the socket joins the room
// channel, the rest of the room learns about the newcomer and the joining
// connection alone receives the full room snapshot.
func HandleJoinRoom(redisClient *redis.RedisClient, client *socket.Socket,
	db *gorm.DB, playerID string, sio *socketio_types.SocketServer,
	registry *roomsync.RoomRegistry) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[JOIN] HandleJoinRoom started - Player: %s, Socket ID: %s", playerID, client.Id())

		data, ok := eventData(args)
		if !ok {
			log.Printf("[JOIN-ERROR] Missing payload for player %s", playerID)
			client.Emit("error", gin.H{"message": "Missing join data"})
			return
		}

		roomCode := strings.ToUpper(getString(data, "room_code"))
		displayName := getString(data, "display_name")
		if roomCode == "" || displayName == "" {
			client.Emit("error", gin.H{"message": "Room code and display name are required"})
			return
		}

		var photoURL *string
		if photo := getString(data, "photo_url"); photo != "" {
			photoURL = &photo
		}

		room, err := game.FindRoomByCode(db, roomCode)
		if err != nil {
			log.Printf("[JOIN-ERROR] Room lookup failed for code %s: %v", roomCode, err)
			emitGameError(client, err, "Room not found. Check the code and try again.")
			return
		}

		registry.WithRoom(room.RoomID, func() {
			if _, err := game.CreateOrGetPlayer(db, playerID, displayName, photoURL); err != nil {
				log.Printf("[JOIN-ERROR] Player upsert failed: %v", err)
				client.Emit("error", gin.H{"message": "Failed to join room"})
				return
			}

			membership, err := game.AddPlayerToRoom(db, room.RoomID, playerID, displayName, photoURL)
			if err != nil {
				log.Printf("[JOIN-ERROR] Player %s rejected from room %s: %v", playerID, room.RoomID, err)
				emitGameError(client, err, "Failed to join room")
				return
			}

			client.Join(socket.Room(room.RoomID))

			session := &redis_models.RoomSession{
				PlayerID: playerID,
				RoomID:   room.RoomID,
				SocketID: string(client.Id()),
				JoinedAt: time.Now().Unix(),
			}
			if err := redisClient.SaveRoomSession(session); err != nil {
				log.Printf("[JOIN-WARN] Could not save room session: %v", err)
			}
			presence := &redis_models.PlayerPresence{
				PlayerID: playerID,
				Status:   redis_models.StatusPlaying,
				LastPing: time.Now().Unix(),
				SocketID: string(client.Id()),
			}
			if err := redisClient.SavePlayerPresence(presence); err != nil {
				log.Printf("[JOIN-WARN] Could not save presence: %v", err)
			}

			sio.BroadcastToRoom(room.RoomID, "player_joined", membership)

			state, err := socketio_utils.BuildRoomState(db, room.RoomID)
			if err != nil {
				log.Printf("[JOIN-ERROR] Could not build room state: %v", err)
				return
			}
			client.Emit("room_state", state)

			log.Printf("[JOIN-SUCCESS] Player %s joined room %s (%s)", playerID, room.RoomID, roomCode)
		})
	}
}
