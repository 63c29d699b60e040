package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Usage analytics (admin)
// @Description Aggregate numbers over all games: totals, averages and per-expansion play counts
// @Tags admin
// @Produce json
// @Success 200 {object} object{totals=object,by_expansion=array}
// @Router /admin/analytics [get]
func AdminAnalytics(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var totals struct {
			TotalGames        int64   `json:"total_games"`
			FinishedGames     int64   `json:"finished_games"`
			TotalPlayers      int64   `json:"total_players"`
			TotalTurns        int64   `json:"total_turns"`
			AvgTurnsPerRoom   float64 `json:"avg_turns_per_room"`
			AvgPlayersPerRoom float64 `json:"avg_players_per_room"`
		}

		err := db.Raw(`
			SELECT
				(SELECT COUNT(*) FROM rooms)                                  AS total_games,
				(SELECT COUNT(*) FROM rooms WHERE status = 'ended')           AS finished_games,
				(SELECT COUNT(*) FROM players)                                AS total_players,
				(SELECT COUNT(*) FROM turn_logs)                              AS total_turns,
				COALESCE((SELECT AVG(cnt) FROM (
					SELECT COUNT(*) AS cnt FROM turn_logs GROUP BY room_id
				) t), 0)                                                      AS avg_turns_per_room,
				COALESCE((SELECT AVG(cnt) FROM (
					SELECT COUNT(*) AS cnt FROM room_players GROUP BY room_id
				) t), 0)                                                      AS avg_players_per_room
		`).Scan(&totals).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var byExpansion []map[string]interface{}
		err = db.Raw(`
			SELECT c.expansion, COUNT(*) AS times_played
			FROM turn_logs tl
			JOIN cards c ON tl.card_selected = c.card_id
			GROUP BY c.expansion
			ORDER BY times_played DESC
		`).Scan(&byExpansion).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"totals":       totals,
			"by_expansion": byExpansion,
		})
	}
}
