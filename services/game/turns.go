package game

import (
	"Pineapple/models/postgres"
	"fmt"

	"gorm.io/gorm"
)

// TurnPhase is the per-turn lifecycle of the current turn holder.
type TurnPhase string

const (
	PhaseAwaitingDraw    TurnPhase = "awaiting_draw"
	PhaseCardsDrawn      TurnPhase = "cards_drawn"
	PhaseCardSelected    TurnPhase = "card_selected"
	PhaseOutcomeRecorded TurnPhase = "outcome_recorded"
)

// TurnState is the ephemeral state of the turn in flight: the two drawn card
// ids and the selected one. It lives in the room registry, never in storage,
// and is discarded when the turn ends or the holder leaves. An interrupted
// turn after a process restart is treated as abandoned.
type TurnState struct {
	Card1    int
	Card2    int
	Selected int
	Phase    TurnPhase
}

// NewTurnState returns a state awaiting the holder's draw.
func NewTurnState() *TurnState {
	return &TurnState{Phase: PhaseAwaitingDraw}
}

// RecordDraw transitions AwaitingDraw -> CardsDrawn.
func (ts *TurnState) RecordDraw(card1, card2 int) error {
	if ts.Phase != PhaseAwaitingDraw {
		return fmt.Errorf("cards already drawn this turn")
	}
	ts.Card1 = card1
	ts.Card2 = card2
	ts.Phase = PhaseCardsDrawn
	return nil
}

// SelectCard transitions CardsDrawn -> CardSelected. The selection must be
// one of the two drawn ids.
func (ts *TurnState) SelectCard(cardID int) error {
	if ts.Phase != PhaseCardsDrawn {
		return fmt.Errorf("no cards drawn")
	}
	if cardID != ts.Card1 && cardID != ts.Card2 {
		return ErrInvalidSelection
	}
	ts.Selected = cardID
	ts.Phase = PhaseCardSelected
	return nil
}

// RecordOutcome transitions CardSelected -> OutcomeRecorded.
func (ts *TurnState) RecordOutcome() error {
	if ts.Phase != PhaseCardSelected {
		return fmt.Errorf("no card selected")
	}
	ts.Phase = PhaseOutcomeRecorded
	return nil
}

// ResetSelection unwinds a selection whose downstream write failed, putting
// the holder back in CardsDrawn so the command can be retried. Only valid
// before the outcome is recorded; any other phase is left untouched.
func (ts *TurnState) ResetSelection() {
	if ts.Phase == PhaseCardSelected {
		ts.Selected = 0
		ts.Phase = PhaseCardsDrawn
	}
}

// HasSelection reports whether the holder already locked in a card. Used by
// the leave path: an abandoned turn with a selection is logged as passed.
func (ts *TurnState) HasSelection() bool {
	return ts.Phase == PhaseCardSelected || ts.Phase == PhaseOutcomeRecorded
}

// NextPlayer walks the rotation cyclically starting just after currentID and
// returns the first eligible entry. When currentID is not in the order (the
// holder just left), the scan starts from position 0. Returns "" when nobody
// is eligible.
func NextPlayer(order []string, currentID string, eligible map[string]bool) string {
	if len(order) == 0 {
		return ""
	}

	currentIndex := -1
	for i, id := range order {
		if id == currentID {
			currentIndex = i
			break
		}
	}

	for i := 1; i <= len(order); i++ {
		candidate := order[(currentIndex+i)%len(order)]
		if eligible[candidate] {
			return candidate
		}
	}
	return ""
}

// EligiblePlayers returns the set of active, non-kicked members of a room.
func EligiblePlayers(db *gorm.DB, roomID string) (map[string]bool, error) {
	var ids []string
	err := db.Model(&postgres.RoomPlayer{}).
		Where("room_id = ? AND is_active = ? AND is_kicked = ?", roomID, true, false).
		Pluck("player_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("error loading active players: %v", err)
	}

	eligible := make(map[string]bool, len(ids))
	for _, id := range ids {
		eligible[id] = true
	}
	return eligible, nil
}

// AdvanceTurn moves the room to the next eligible player and bumps the turn
// counter. Returns "" as the next player id when nobody in the rotation is
// eligible; membership handling is expected to end the game in that case.
func AdvanceTurn(db *gorm.DB, roomID string) (string, int, error) {
	var room postgres.Room
	if err := db.Where("room_id = ?", roomID).First(&room).Error; err != nil {
		return "", 0, fmt.Errorf("error loading room: %v", err)
	}

	eligible, err := EligiblePlayers(db, roomID)
	if err != nil {
		return "", 0, err
	}

	currentID := ""
	if room.CurrentTurnPlayerID != nil {
		currentID = *room.CurrentTurnPlayerID
	}

	next := NextPlayer(room.TurnOrderList(), currentID, eligible)
	turnNumber := room.TurnNumber + 1

	if next == "" {
		return "", turnNumber, nil
	}

	err = db.Model(&postgres.Room{}).Where("room_id = ?", roomID).
		Updates(map[string]interface{}{
			"current_turn_player_id": next,
			"turn_number":            turnNumber,
		}).Error
	if err != nil {
		return "", 0, fmt.Errorf("error advancing turn: %v", err)
	}

	return next, turnNumber, nil
}

// LogTurn appends an immutable record of one finished turn.
func LogTurn(db *gorm.DB, roomID, playerID string, card1, card2, selected int,
	outcome string, turnNumber int) (*postgres.TurnLog, error) {

	entry := postgres.TurnLog{
		RoomID:       roomID,
		PlayerID:     playerID,
		CardDrawn1:   card1,
		CardDrawn2:   card2,
		CardSelected: selected,
		Outcome:      outcome,
		TurnNumber:   turnNumber,
	}
	if err := db.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("error logging turn: %v", err)
	}
	return &entry, nil
}
