package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*
 * 'Player' is a device-scoped identity: no password, no email verification,
 * just an opaque id the client stores locally. It is referenced by
 * Room (as host), RoomPlayer, TurnLog and CardSuggestion.
 */
type Player struct {
	PlayerID    string    `gorm:"primaryKey;size:36;not null" json:"player_id"`
	DisplayName string    `gorm:"size:50;not null" json:"display_name"`
	PhotoURL    *string   `gorm:"size:255" json:"photo_url"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	RoomPlayers []RoomPlayer `gorm:"foreignKey:PlayerID" json:"-"`
	TurnLogs    []TurnLog    `gorm:"foreignKey:PlayerID" json:"-"`
}

func (p *Player) BeforeCreate(tx *gorm.DB) (err error) {
	if p.PlayerID == "" {
		p.PlayerID = uuid.NewString()
	}
	return nil
}
