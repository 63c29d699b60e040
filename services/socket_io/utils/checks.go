package socketio_utils

import (
	"Pineapple/models/postgres"
	"Pineapple/services/game"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// VerifyPlayerConnection checks the socket.io handshake for the bare player
// identifier this system authenticates with. There is no token: the client
// presents the opaque player_id it stored at first contact.
func VerifyPlayerConnection(client *socket.Socket) (success bool, playerID string) {
	authData, ok := client.Handshake().Auth.(map[string]interface{})
	if !ok {
		log.Println("No auth data provided in handshake!")
		client.Emit("error", gin.H{"message": "Authentication failed: missing auth data"})
		return false, ""
	}

	playerID, exists := authData["player_id"].(string)
	if !exists || playerID == "" {
		log.Println("No player_id provided in handshake!")
		client.Emit("error", gin.H{"message": "Authentication failed: missing player_id"})
		return false, ""
	}

	return true, playerID
}

// ValidateRoomAndPlayer loads the room and confirms the caller is an active
// member. Emits the error to the requesting socket itself, so callers just
// return on a non-nil error.
func ValidateRoomAndPlayer(db *gorm.DB, client *socket.Socket, roomID, playerID string) (*postgres.Room, error) {
	room, err := game.GetRoom(db, roomID)
	if err != nil {
		log.Printf("[CHECK-ERROR] Room %s not found for player %s: %v", roomID, playerID, err)
		client.Emit("error", gin.H{"message": "Room not found"})
		return nil, err
	}

	var count int64
	err = db.Model(&postgres.RoomPlayer{}).
		Where("room_id = ? AND player_id = ? AND is_active = ?", roomID, playerID, true).
		Count(&count).Error
	if err != nil {
		log.Printf("[CHECK-ERROR] Database error: %v", err)
		client.Emit("error", gin.H{"message": "Database error"})
		return nil, err
	}

	if count == 0 {
		log.Printf("[CHECK-ERROR] Player %s is NOT in room %s", playerID, roomID)
		client.Emit("error", gin.H{"message": "You must join the room first"})
		return nil, fmt.Errorf("player not in room")
	}

	return room, nil
}

// RequireCurrentTurn additionally checks that the caller holds the turn and
// that the game is running.
func RequireCurrentTurn(db *gorm.DB, client *socket.Socket, roomID, playerID string) (*postgres.Room, error) {
	room, err := ValidateRoomAndPlayer(db, client, roomID, playerID)
	if err != nil {
		return nil, err
	}

	if room.Status != postgres.RoomStatusInProgress {
		client.Emit("error", gin.H{"message": "Game is not in progress"})
		return nil, game.ErrGameNotInProgress
	}

	if room.CurrentTurnPlayerID == nil || *room.CurrentTurnPlayerID != playerID {
		client.Emit("error", gin.H{"message": "Not your turn"})
		return nil, game.ErrNotYourTurn
	}

	return room, nil
}
