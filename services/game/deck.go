package game

import (
	"Pineapple/models/postgres"
	"fmt"
	"math/rand"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Piles is the in-memory form of a room's deck: the draw pile is consumed
// from the front, the discard pile appended at the back. Both are disjoint
// and their multiset union stays constant across any sequence of operations.
type Piles struct {
	Draw    []int
	Discard []int
}

// Shuffle applies a uniform Fisher-Yates permutation in place.
func Shuffle(ids []int) {
	for i := len(ids) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		ids[i], ids[j] = ids[j], ids[i]
	}
}

// DrawN removes and returns up to n card ids from the front of the draw pile.
// When the draw pile runs short, the discard pile is folded back in and the
// combined pile reshuffled first. Returns fewer than n ids only when the
// total supply across both piles is smaller than n.
func (p *Piles) DrawN(n int) []int {
	if len(p.Draw) < n {
		combined := append(p.Draw, p.Discard...)
		Shuffle(combined)
		p.Draw = combined
		p.Discard = []int{}
	}

	if n > len(p.Draw) {
		n = len(p.Draw)
	}
	drawn := make([]int, n)
	copy(drawn, p.Draw[:n])
	p.Draw = p.Draw[n:]
	return drawn
}

// Add appends a card id to the discard pile. Not idempotent: discarding the
// same id twice duplicates it, callers discard each drawn card exactly once.
func (p *Piles) Add(cardID int) {
	p.Discard = append(p.Discard, cardID)
}

// BuildDeck collects every active card in the requested expansions, shuffles
// them into a fresh draw pile and upserts the room's deck row with an empty
// discard pile. Returns ErrEmptyPool when no cards match; the caller must not
// start a game in that case.
func BuildDeck(db *gorm.DB, roomID string, expansions []string) error {
	var cardIDs []int
	err := db.Model(&postgres.Card{}).
		Where("expansion IN ? AND is_active = ?", expansions, true).
		Pluck("card_id", &cardIDs).Error
	if err != nil {
		return fmt.Errorf("error loading card pool: %v", err)
	}

	if len(cardIDs) == 0 {
		return ErrEmptyPool
	}

	Shuffle(cardIDs)

	deck := postgres.GameDeck{RoomID: roomID}
	deck.SetPiles(cardIDs, []int{})

	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "room_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"draw_pile", "discard_pile"}),
	}).Create(&deck).Error
	if err != nil {
		return fmt.Errorf("error saving deck: %v", err)
	}
	return nil
}

// DrawCards draws n card ids from the room's deck, reshuffling the discard
// pile back in when needed, and persists the updated piles. When the total
// supply across both piles is smaller than n it fails with
// ErrInsufficientCards and leaves the deck untouched.
func DrawCards(db *gorm.DB, roomID string, n int) ([]int, error) {
	var deck postgres.GameDeck
	if err := db.Where("room_id = ?", roomID).First(&deck).Error; err != nil {
		return nil, fmt.Errorf("error loading deck: %v", err)
	}

	piles := Piles{Draw: deck.DrawPileList(), Discard: deck.DiscardPileList()}
	if len(piles.Draw)+len(piles.Discard) < n {
		return nil, ErrInsufficientCards
	}
	drawn := piles.DrawN(n)

	deck.SetPiles(piles.Draw, piles.Discard)
	err := db.Model(&postgres.GameDeck{}).Where("room_id = ?", roomID).
		Updates(map[string]interface{}{
			"draw_pile":    deck.DrawPile,
			"discard_pile": deck.DiscardPile,
		}).Error
	if err != nil {
		return nil, fmt.Errorf("error saving deck: %v", err)
	}

	return drawn, nil
}

// DiscardCards appends card ids to the room's discard pile in one write, so
// a turn's two drawn cards land in the pile together or not at all.
func DiscardCards(db *gorm.DB, roomID string, cardIDs ...int) error {
	if len(cardIDs) == 0 {
		return nil
	}

	var deck postgres.GameDeck
	if err := db.Where("room_id = ?", roomID).First(&deck).Error; err != nil {
		return fmt.Errorf("error loading deck: %v", err)
	}

	piles := Piles{Draw: deck.DrawPileList(), Discard: deck.DiscardPileList()}
	for _, id := range cardIDs {
		piles.Add(id)
	}

	deck.SetPiles(piles.Draw, piles.Discard)
	err := db.Model(&postgres.GameDeck{}).Where("room_id = ?", roomID).
		Update("discard_pile", deck.DiscardPile).Error
	if err != nil {
		return fmt.Errorf("error saving deck: %v", err)
	}
	return nil
}

// GetCardByID looks a card up in the catalog.
func GetCardByID(db *gorm.DB, cardID int) (*postgres.Card, error) {
	var card postgres.Card
	if err := db.Where("card_id = ?", cardID).First(&card).Error; err != nil {
		return nil, fmt.Errorf("error loading card %d: %v", cardID, err)
	}
	return &card, nil
}

// GetCardsByIDs looks up several cards at once, preserving the requested order.
func GetCardsByIDs(db *gorm.DB, cardIDs []int) ([]postgres.Card, error) {
	var cards []postgres.Card
	if err := db.Where("card_id IN ?", cardIDs).Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("error loading cards: %v", err)
	}

	byID := make(map[int]postgres.Card, len(cards))
	for _, c := range cards {
		byID[c.CardID] = c
	}
	ordered := make([]postgres.Card, 0, len(cardIDs))
	for _, id := range cardIDs {
		if c, ok := byID[id]; ok {
			ordered = append(ordered, c)
		}
	}
	return ordered, nil
}
