package controllers

import (
	game_constants "Pineapple/constants/game"
	"Pineapple/models/postgres"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Gives info of a player
// @Tags players
// @Produce json
// @Param player_id path string true "Id of the player wanted"
// @Success 200 {object} object{player=object}
// @Failure 404 {object} object{error=string}
// @Router /players/{player_id} [get]
func GetPlayer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID := c.Param("player_id")

		var player postgres.Player
		if err := db.Where("player_id = ?", playerID).First(&player).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Player not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"player": player})
	}
}

type updatePlayerRequest struct {
	DisplayName string  `json:"display_name" binding:"required"`
	PhotoURL    *string `json:"photo_url"`
}

// @Summary Updates a player's profile
// @Description Changes the display name and photo. Names already in use inside the player's active room are rejected at join time, not here.
// @Tags players
// @Accept json
// @Produce json
// @Param player_id path string true "Id of the player"
// @Param request body controllers.updatePlayerRequest true "New profile fields"
// @Success 200 {object} object{player=object}
// @Failure 404 {object} object{error=string}
// @Router /players/{player_id} [put]
func UpdatePlayer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID := c.Param("player_id")

		var req updatePlayerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Display name is required"})
			return
		}

		var player postgres.Player
		if err := db.Where("player_id = ?", playerID).First(&player).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Player not found"})
			return
		}

		player.DisplayName = req.DisplayName
		if req.PhotoURL != nil {
			player.PhotoURL = req.PhotoURL
		}

		if err := db.Save(&player).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"player": player})
	}
}

// @Summary Player game history
// @Description Games the player took part in that actually got going. Rooms with fewer than three recorded turns are left out.
// @Tags players
// @Produce json
// @Param player_id path string true "Id of the player"
// @Success 200 {object} object{games=array}
// @Router /players/{player_id}/history [get]
func GetPlayerHistory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID := c.Param("player_id")

		var games []map[string]interface{}
		err := db.Raw(`
			SELECT r.room_id, r.room_code, r.status, r.created_at, r.turn_number,
			       COUNT(DISTINCT tl.log_id)      AS total_turns,
			       COUNT(DISTINCT rp2.player_id)  AS total_players
			FROM rooms r
			JOIN room_players rp ON rp.room_id = r.room_id AND rp.player_id = ?
			LEFT JOIN turn_logs tl ON tl.room_id = r.room_id
			LEFT JOIN room_players rp2 ON rp2.room_id = r.room_id
			GROUP BY r.room_id
			HAVING COUNT(DISTINCT tl.log_id) >= ?
			ORDER BY r.created_at DESC
		`, playerID, game_constants.MinTurnsForHistory).Scan(&games).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"games": games})
	}
}
