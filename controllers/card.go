package controllers

import (
	"Pineapple/models/postgres"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func validCardType(t string) bool {
	switch t {
	case postgres.CardTypeTruth, postgres.CardTypeDare,
		postgres.CardTypeChallenge, postgres.CardTypeGroup:
		return true
	}
	return false
}

// @Summary Lists playable cards
// @Description Active cards only, optionally filtered by a comma-separated expansions query
// @Tags cards
// @Produce json
// @Param expansions query string false "Comma-separated expansion names"
// @Success 200 {object} object{cards=array}
// @Router /cards [get]
func ListCards(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Where("is_active = ?", true)

		if raw := c.Query("expansions"); raw != "" {
			var expansions []string
			for _, e := range strings.Split(raw, ",") {
				if e = strings.TrimSpace(e); e != "" {
					expansions = append(expansions, e)
				}
			}
			if len(expansions) > 0 {
				query = query.Where("expansion IN ?", expansions)
			}
		}

		var cards []postgres.Card
		if err := query.Order("card_id ASC").Find(&cards).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"cards": cards})
	}
}

type suggestionRequest struct {
	PlayerID  *string `json:"player_id"`
	CardType  string  `json:"card_type" binding:"required"`
	CardText  string  `json:"card_text" binding:"required"`
	Expansion string  `json:"expansion"`
}

// @Summary Submits a card suggestion
// @Description Players propose new cards; they land in an admin review queue and never enter play directly
// @Tags cards
// @Accept json
// @Produce json
// @Param request body controllers.suggestionRequest true "Suggested card"
// @Success 200 {object} object{suggestion=object}
// @Failure 400 {object} object{error=string}
// @Router /suggestions [post]
func CreateSuggestion(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req suggestionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Card type and text are required"})
			return
		}
		if !validCardType(req.CardType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid card type"})
			return
		}

		suggestion := postgres.CardSuggestion{
			PlayerID:  req.PlayerID,
			CardType:  req.CardType,
			CardText:  req.CardText,
			Expansion: req.Expansion,
			Status:    postgres.SuggestionStatusNew,
		}
		if suggestion.Expansion == "" {
			suggestion.Expansion = "core"
		}

		if err := db.Create(&suggestion).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"suggestion": suggestion})
	}
}

// @Summary Lists all cards (admin)
// @Description Full catalog, inactive cards included
// @Tags admin
// @Produce json
// @Success 200 {object} object{cards=array}
// @Router /admin/cards [get]
func AdminListCards(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var cards []postgres.Card
		if err := db.Order("card_id ASC").Find(&cards).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"cards": cards})
	}
}

type cardRequest struct {
	CardType  string `json:"card_type" binding:"required"`
	CardText  string `json:"card_text" binding:"required"`
	Expansion string `json:"expansion"`
	IsActive  *bool  `json:"is_active"`
}

// @Summary Creates a card (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Param request body controllers.cardRequest true "New card"
// @Success 200 {object} object{card=object}
// @Failure 400 {object} object{error=string}
// @Router /admin/cards [post]
func AdminCreateCard(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req cardRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Card type and text are required"})
			return
		}
		if !validCardType(req.CardType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid card type"})
			return
		}

		card := postgres.Card{
			CardType:  req.CardType,
			CardText:  req.CardText,
			Expansion: req.Expansion,
			IsActive:  true,
		}
		if card.Expansion == "" {
			card.Expansion = "core"
		}
		if req.IsActive != nil {
			card.IsActive = *req.IsActive
		}

		if err := db.Create(&card).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"card": card})
	}
}

// @Summary Updates a card (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Param card_id path int true "Id of the card"
// @Param request body controllers.cardRequest true "Updated card fields"
// @Success 200 {object} object{card=object}
// @Failure 404 {object} object{error=string}
// @Router /admin/cards/{card_id} [put]
func AdminUpdateCard(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		cardID := c.Param("card_id")

		var card postgres.Card
		if err := db.Where("card_id = ?", cardID).First(&card).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}

		var req cardRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Card type and text are required"})
			return
		}
		if !validCardType(req.CardType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid card type"})
			return
		}

		card.CardType = req.CardType
		card.CardText = req.CardText
		if req.Expansion != "" {
			card.Expansion = req.Expansion
		}
		if req.IsActive != nil {
			card.IsActive = *req.IsActive
		}

		if err := db.Save(&card).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"card": card})
	}
}

// @Summary Deactivates a card (admin)
// @Description Soft delete: turn logs keep referencing the card, new decks stop including it
// @Tags admin
// @Produce json
// @Param card_id path int true "Id of the card"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Router /admin/cards/{card_id} [delete]
func AdminDeleteCard(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		cardID := c.Param("card_id")

		result := db.Model(&postgres.Card{}).
			Where("card_id = ?", cardID).
			Update("is_active", false)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Card deactivated"})
	}
}

// @Summary Lists card suggestions (admin)
// @Tags admin
// @Produce json
// @Param status query string false "Filter by review status (new, accepted, rejected)"
// @Success 200 {object} object{suggestions=array}
// @Router /admin/suggestions [get]
func AdminListSuggestions(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Order("created_at ASC")
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}

		var suggestions []postgres.CardSuggestion
		if err := query.Find(&suggestions).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
	}
}

type reviewSuggestionRequest struct {
	Accept bool `json:"accept"`
}

// @Summary Reviews a card suggestion (admin)
// @Description Accepting copies the suggestion into the card catalog
// @Tags admin
// @Accept json
// @Produce json
// @Param suggestion_id path string true "Id of the suggestion"
// @Param request body controllers.reviewSuggestionRequest true "Review decision"
// @Success 200 {object} object{suggestion=object}
// @Failure 404 {object} object{error=string}
// @Router /admin/suggestions/{suggestion_id} [put]
func AdminReviewSuggestion(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		suggestionID := c.Param("suggestion_id")

		var req reviewSuggestionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review payload"})
			return
		}

		var suggestion postgres.CardSuggestion
		if err := db.Where("suggestion_id = ?", suggestionID).First(&suggestion).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Suggestion not found"})
			return
		}
		if suggestion.Status != postgres.SuggestionStatusNew {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Suggestion already reviewed"})
			return
		}

		now := time.Now()
		suggestion.ReviewedAt = &now
		if req.Accept {
			suggestion.Status = postgres.SuggestionStatusAccepted
			card := postgres.Card{
				CardType:  suggestion.CardType,
				CardText:  suggestion.CardText,
				Expansion: suggestion.Expansion,
				IsActive:  true,
			}
			if err := db.Create(&card).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
		} else {
			suggestion.Status = postgres.SuggestionStatusRejected
		}

		if err := db.Save(&suggestion).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"suggestion": suggestion})
	}
}
