package postgres

import (
	"time"
)

/*
 * 'RoomPlayer' is one row per player that has ever joined a room. Rows are
 * never deleted: leaving toggles IsActive, kick votes toggle IsKicked and
 * bump KickCount. KickCount >= 2 is a permanent ban from this room.
 */
type RoomPlayer struct {
	// NOTE: composite primary key definition
	RoomID      string    `gorm:"primaryKey;size:36;not null" json:"room_id"`
	PlayerID    string    `gorm:"primaryKey;size:36;not null;index" json:"player_id"`
	DisplayName string    `gorm:"size:50;not null" json:"display_name"`
	PhotoURL    *string   `gorm:"size:255" json:"photo_url"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	IsKicked    bool      `gorm:"default:false" json:"is_kicked"`
	KickCount   int       `gorm:"default:0" json:"kick_count"`
	JoinedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"joined_at"`

	Room   Room   `gorm:"foreignKey:RoomID" json:"-"`
	Player Player `gorm:"foreignKey:PlayerID" json:"-"`
}
