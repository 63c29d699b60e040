package postgres

import (
	"encoding/json"

	"gorm.io/datatypes"
)

/*
 * 'GameDeck' holds the two disjoint card piles of a room. Built exactly once
 * at game start; every draw/discard rewrites the jsonb piles. The multiset
 * union of both piles never changes after the build.
 */
type GameDeck struct {
	RoomID      string         `gorm:"primaryKey;size:36;not null" json:"room_id"`
	DrawPile    datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"draw_pile"`
	DiscardPile datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"discard_pile"`

	Room Room `gorm:"foreignKey:RoomID" json:"-"`
}

func (d *GameDeck) DrawPileList() []int {
	var out []int
	if err := json.Unmarshal(d.DrawPile, &out); err != nil {
		return nil
	}
	return out
}

func (d *GameDeck) DiscardPileList() []int {
	var out []int
	if err := json.Unmarshal(d.DiscardPile, &out); err != nil {
		return nil
	}
	return out
}

func (d *GameDeck) SetPiles(draw, discard []int) {
	if draw == nil {
		draw = []int{}
	}
	if discard == nil {
		discard = []int{}
	}
	drawData, _ := json.Marshal(draw)
	discardData, _ := json.Marshal(discard)
	d.DrawPile = datatypes.JSON(drawData)
	d.DiscardPile = datatypes.JSON(discardData)
}
