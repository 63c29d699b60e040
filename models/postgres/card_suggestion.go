package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Suggestion review states
const (
	SuggestionStatusNew      = "new"
	SuggestionStatusAccepted = "accepted"
	SuggestionStatusRejected = "rejected"
)

/*
 * 'CardSuggestion' is a player-submitted card idea waiting for admin review.
 * PlayerID is nullable: anonymous suggestions are allowed.
 */
type CardSuggestion struct {
	SuggestionID string     `gorm:"primaryKey;size:36;not null" json:"suggestion_id"`
	PlayerID     *string    `gorm:"size:36" json:"player_id"`
	CardType     string     `gorm:"size:20;not null" json:"card_type"`
	CardText     string     `gorm:"size:500;not null" json:"card_text"`
	Expansion    string     `gorm:"size:50;not null;default:core" json:"expansion"`
	Status       string     `gorm:"size:20;not null;default:new" json:"status"`
	CreatedAt    time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	ReviewedAt   *time.Time `json:"reviewed_at"`
}

func (s *CardSuggestion) BeforeCreate(tx *gorm.DB) (err error) {
	if s.SuggestionID == "" {
		s.SuggestionID = uuid.NewString()
	}
	return nil
}
