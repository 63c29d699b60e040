package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Turn outcomes
const (
	OutcomeCompleted = "completed"
	OutcomePassed    = "passed"
)

/*
 * 'TurnLog' is an immutable append-only record of one finished (or abandoned)
 * turn. The game never reads it back for decisions; history and analytics do.
 */
type TurnLog struct {
	LogID        string    `gorm:"primaryKey;size:36;not null" json:"log_id"`
	RoomID       string    `gorm:"size:36;not null;index:idx_turn_logs_room" json:"room_id"`
	PlayerID     string    `gorm:"size:36;not null" json:"player_id"`
	CardDrawn1   int       `gorm:"not null" json:"card_drawn_1"`
	CardDrawn2   int       `gorm:"not null" json:"card_drawn_2"`
	CardSelected int       `gorm:"not null" json:"card_selected"`
	Outcome      string    `gorm:"size:20;not null" json:"outcome"`
	TurnNumber   int       `gorm:"not null" json:"turn_number"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	Room   Room   `gorm:"foreignKey:RoomID" json:"-"`
	Player Player `gorm:"foreignKey:PlayerID" json:"-"`
}

func (t *TurnLog) BeforeCreate(tx *gorm.DB) (err error) {
	if t.LogID == "" {
		t.LogID = uuid.NewString()
	}
	return nil
}
