package postgres

import (
	game_constants "Pineapple/constants/game"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Room status values. A room moves lobby -> in_progress -> ended and never back.
const (
	RoomStatusLobby      = "lobby"
	RoomStatusInProgress = "in_progress"
	RoomStatusEnded      = "ended"
)

/*
 * 'Room' defines one game session. Players find it through the short RoomCode.
 * Expansions and TurnOrder are ordered jsonb lists; TurnOrder is fixed at game
 * start and only mutated by membership changes (leave/kick/late join).
 */
type Room struct {
	RoomID              string         `gorm:"primaryKey;size:36;not null" json:"room_id"`
	RoomCode            string         `gorm:"size:10;not null;uniqueIndex:idx_rooms_code" json:"room_code"`
	HostPlayerID        string         `gorm:"size:36;not null;index:idx_rooms_host" json:"host_player_id"`
	Status              string         `gorm:"size:20;not null;default:lobby;index:idx_rooms_status" json:"status"`
	Expansions          datatypes.JSON `gorm:"type:jsonb;default:'[\"core\"]'" json:"expansions"`
	TurnOrder           datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"turn_order"`
	CurrentTurnPlayerID *string        `gorm:"size:36" json:"current_turn_player_id"`
	TurnNumber          int            `gorm:"default:0" json:"turn_number"`
	CreatedAt           time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	EndedAt             *time.Time     `json:"ended_at"`

	Host        Player       `gorm:"foreignKey:HostPlayerID" json:"-"`
	RoomPlayers []RoomPlayer `gorm:"foreignKey:RoomID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// Random room code generation over the ambiguity-free alphabet
func generateRoomCode(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = game_constants.RoomCodeCharset[rand.Intn(len(game_constants.RoomCodeCharset))]
	}
	return string(b)
}

// Ensure the code is unique among rooms that are still joinable. Codes of
// ended rooms may be reused.
func (r *Room) BeforeCreate(tx *gorm.DB) (err error) {
	if r.RoomID == "" {
		r.RoomID = uuid.NewString()
	}
	if r.RoomCode != "" {
		return nil
	}
	for {
		newCode := generateRoomCode(game_constants.RoomCodeLength)
		var existing Room
		if err := tx.Where("room_code = ? AND status != ?", newCode, RoomStatusEnded).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				r.RoomCode = newCode
				return nil
			}
			return err
		}
		// Collision with a live room, try again
	}
}

// ExpansionList decodes the jsonb expansions column.
func (r *Room) ExpansionList() []string {
	var out []string
	if err := json.Unmarshal(r.Expansions, &out); err != nil {
		return []string{game_constants.BaseExpansion}
	}
	return out
}

// SetExpansionList encodes the expansion set, always keeping the base tag.
func (r *Room) SetExpansionList(expansions []string) {
	hasCore := false
	for _, e := range expansions {
		if e == game_constants.BaseExpansion {
			hasCore = true
			break
		}
	}
	if !hasCore {
		expansions = append([]string{game_constants.BaseExpansion}, expansions...)
	}
	data, _ := json.Marshal(expansions)
	r.Expansions = datatypes.JSON(data)
}

// TurnOrderList decodes the jsonb turn_order column.
func (r *Room) TurnOrderList() []string {
	var out []string
	if err := json.Unmarshal(r.TurnOrder, &out); err != nil {
		return nil
	}
	return out
}

// SetTurnOrderList encodes the rotation.
func (r *Room) SetTurnOrderList(order []string) {
	if order == nil {
		order = []string{}
	}
	data, _ := json.Marshal(order)
	r.TurnOrder = datatypes.JSON(data)
}
