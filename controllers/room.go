package controllers

import (
	game_constants "Pineapple/constants/game"
	"Pineapple/models/postgres"
	"Pineapple/services/game"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"
)

type createRoomRequest struct {
	PlayerID    string   `json:"player_id"`
	DisplayName string   `json:"display_name" binding:"required"`
	PhotoURL    *string  `json:"photo_url"`
	Expansions  []string `json:"expansions"`
}

// @Summary Creates a new room
// @Description Creates the host player if needed, opens a room in the lobby state and returns its join code
// @Tags rooms
// @Accept json
// @Produce json
// @Param request body controllers.createRoomRequest true "Host and expansion selection"
// @Success 200 {object} object{room=object,player=object,room_code=string}
// @Failure 400 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /rooms [post]
func CreateRoom(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createRoomRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Display name is required"})
			return
		}

		host, err := game.CreateOrGetPlayer(db, req.PlayerID, req.DisplayName, req.PhotoURL)
		if err != nil {
			log.Printf("Error creating host player: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create room"})
			return
		}

		room := postgres.Room{
			HostPlayerID: host.PlayerID,
			Status:       postgres.RoomStatusLobby,
		}
		room.SetExpansionList(req.Expansions)
		room.SetTurnOrderList(nil)

		if err := db.Create(&room).Error; err != nil {
			log.Printf("Error creating room: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create room"})
			return
		}

		// The host joins their own room immediately
		if _, err := game.AddPlayerToRoom(db, room.RoomID, host.PlayerID, req.DisplayName, req.PhotoURL); err != nil {
			log.Printf("Error adding host to room: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create room"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"room":      room,
			"player":    host,
			"room_code": room.RoomCode,
		})
	}
}

type joinRoomRequest struct {
	RoomCode    string  `json:"room_code" binding:"required"`
	PlayerID    string  `json:"player_id"`
	DisplayName string  `json:"display_name" binding:"required"`
	PhotoURL    *string `json:"photo_url"`
}

// @Summary Joins a room by code
// @Description Validates the join (ban, name, capacity) and creates or reactivates the membership
// @Tags rooms
// @Accept json
// @Produce json
// @Param request body controllers.joinRoomRequest true "Join request"
// @Success 200 {object} object{room=object,player=object,players=array}
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /rooms/join [post]
func JoinRoom(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req joinRoomRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Room code and display name are required"})
			return
		}

		room, err := game.FindRoomByCode(db, strings.ToUpper(req.RoomCode))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found. Check the code and try again."})
			return
		}
		if room.Status == postgres.RoomStatusEnded {
			c.JSON(http.StatusBadRequest, gin.H{"error": "This game has ended."})
			return
		}

		player, err := game.CreateOrGetPlayer(db, req.PlayerID, req.DisplayName, req.PhotoURL)
		if err != nil {
			log.Printf("Error upserting player: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join room"})
			return
		}

		if _, err := game.AddPlayerToRoom(db, room.RoomID, player.PlayerID, req.DisplayName, req.PhotoURL); err != nil {
			switch {
			case errors.Is(err, game.ErrBanned):
				c.JSON(http.StatusForbidden, gin.H{"error": "You have been banned from this room."})
			case errors.Is(err, game.ErrNameTaken):
				c.JSON(http.StatusForbidden, gin.H{"error": "That name is already taken. Choose another."})
			case errors.Is(err, game.ErrRoomFull):
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("This room is full. Maximum %d players.", game_constants.MaxRoomPlayers)})
			default:
				log.Printf("Error joining room: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join room"})
			}
			return
		}

		players, err := game.GetRoomPlayers(db, room.RoomID)
		if err != nil {
			log.Printf("Error loading room players: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join room"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"room":    room,
			"player":  player,
			"players": players,
		})
	}
}

// @Summary Gives info of a room
// @Description Given a room id, returns the room, its players and its turn history
// @Tags rooms
// @Produce json
// @Param room_id path string true "Id of the room wanted"
// @Success 200 {object} object{room=object,players=array,turn_log=array}
// @Failure 404 {object} object{error=string}
// @Router /rooms/{room_id} [get]
func GetRoomInfo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID := c.Param("room_id")

		room, err := game.GetRoom(db, roomID)
		if err != nil {
			if errors.Is(err, game.ErrRoomNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}

		players, err := game.GetRoomPlayers(db, roomID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		turnLog, err := game.GetTurnLogs(db, roomID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"room":     room,
			"players":  players,
			"turn_log": turnLog,
		})
	}
}

type updateExpansionsRequest struct {
	PlayerID   string   `json:"player_id" binding:"required"`
	Expansions []string `json:"expansions"`
}

// @Summary Updates a room's expansions
// @Description Host-only, lobby-only; the core pool is always kept
// @Tags rooms
// @Accept json
// @Produce json
// @Param room_id path string true "Id of the room"
// @Param request body controllers.updateExpansionsRequest true "New expansion set"
// @Success 200 {object} object{room=object}
// @Failure 403 {object} object{error=string}
// @Router /rooms/{room_id}/expansions [put]
func UpdateRoomExpansions(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID := c.Param("room_id")

		var req updateExpansionsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Player id is required"})
			return
		}

		room, err := game.UpdateExpansions(db, roomID, req.PlayerID, req.Expansions)
		if err != nil {
			switch {
			case errors.Is(err, game.ErrRoomNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			case errors.Is(err, game.ErrNotHost), errors.Is(err, game.ErrGameAlreadyStarted):
				c.JSON(http.StatusForbidden, gin.H{"error": "Only the host can change expansions in the lobby"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"room": room})
	}
}

// @Summary Join QR code
// @Description Returns a PNG QR code pointing at the client join page for a room code
// @Tags rooms
// @Produce png
// @Param room_code path string true "Join code of the room"
// @Success 200 {file} file
// @Failure 404 {object} object{error=string}
// @Router /rooms/code/{room_code}/qr [get]
func GetRoomJoinQR(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		roomCode := strings.ToUpper(c.Param("room_code"))

		room, err := game.FindRoomByCode(db, roomCode)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}
		if room.Status == postgres.RoomStatusEnded {
			c.JSON(http.StatusNotFound, gin.H{"error": "This game has ended."})
			return
		}

		base := os.Getenv("CLIENT_BASE_URL")
		if base == "" {
			base = "http://localhost:5173"
		}
		joinURL := fmt.Sprintf("%s/join?code=%s", base, room.RoomCode)

		png, err := qrcode.Encode(joinURL, qrcode.Medium, 256)
		if err != nil {
			log.Printf("Error encoding QR for room %s: %v", room.RoomID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code"})
			return
		}

		c.Data(http.StatusOK, "image/png", png)
	}
}

// @Summary Game detail
// @Description Full turn-by-turn record of one game: selected cards and player names
// @Tags games
// @Produce json
// @Param room_id path string true "Id of the room"
// @Success 200 {object} object{room=object,players=array,turns=array}
// @Failure 404 {object} object{error=string}
// @Router /games/{room_id}/detail [get]
func GetGameDetail(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID := c.Param("room_id")

		room, err := game.GetRoom(db, roomID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}

		var turns []map[string]interface{}
		err = db.Raw(`
			SELECT tl.*, c.card_type, c.card_text, c.expansion,
			       p.display_name AS player_name
			FROM turn_logs tl
			LEFT JOIN cards c ON tl.card_selected = c.card_id
			LEFT JOIN players p ON tl.player_id = p.player_id
			WHERE tl.room_id = ?
			ORDER BY tl.turn_number ASC
		`, roomID).Scan(&turns).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		players, err := game.GetRoomPlayers(db, roomID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"room":    room,
			"players": players,
			"turns":   turns,
		})
	}
}
