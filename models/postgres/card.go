package postgres

// Card types shown to players
const (
	CardTypeTruth     = "truth"
	CardTypeDare      = "dare"
	CardTypeChallenge = "challenge"
	CardTypeGroup     = "group"
)

/*
 * 'Card' is one entry of the card catalog. Inactive cards stay in the table
 * (turn logs reference them) but are excluded from new decks.
 */
type Card struct {
	CardID    int    `gorm:"primaryKey;autoIncrement" json:"card_id"`
	CardType  string `gorm:"size:20;not null" json:"card_type"`
	CardText  string `gorm:"size:500;not null" json:"card_text"`
	Expansion string `gorm:"size:50;not null;default:core;index:idx_cards_expansion" json:"expansion"`
	IsActive  bool   `gorm:"default:true" json:"is_active"`
}
