package game

import (
	"Pineapple/models/postgres"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// InitiateKickVote creates a pending vote against targetID with the
// initiator's ballot pre-recorded as "kick". Fails with
// ErrVoteAlreadyInProgress when the room already has a pending vote, and with
// ErrTargetNotInRoom when the target is not an active member: a vote against
// an absent id would occupy the room's single pending slot for nothing.
func InitiateKickVote(db *gorm.DB, roomID, initiatorID, targetID string) (*postgres.KickVote, error) {
	var pendingCount int64
	err := db.Model(&postgres.KickVote{}).
		Where("room_id = ? AND status = ?", roomID, postgres.KickVoteStatusPending).
		Count(&pendingCount).Error
	if err != nil {
		return nil, fmt.Errorf("error checking pending votes: %v", err)
	}
	if pendingCount > 0 {
		return nil, ErrVoteAlreadyInProgress
	}

	var targetCount int64
	err = db.Model(&postgres.RoomPlayer{}).
		Where("room_id = ? AND player_id = ? AND is_active = ? AND is_kicked = ?",
			roomID, targetID, true, false).
		Count(&targetCount).Error
	if err != nil {
		return nil, fmt.Errorf("error checking vote target: %v", err)
	}
	if targetCount == 0 {
		return nil, ErrTargetNotInRoom
	}

	vote := postgres.KickVote{
		RoomID:         roomID,
		TargetPlayerID: targetID,
		InitiatedBy:    initiatorID,
		Status:         postgres.KickVoteStatusPending,
	}
	vote.SetVoterMap(map[string]string{initiatorID: postgres.KickBallotKick})

	if err := db.Create(&vote).Error; err != nil {
		return nil, fmt.Errorf("error creating kick vote: %v", err)
	}
	return &vote, nil
}

// CastKickVote records one ballot. Duplicate ballots and ballots on a
// resolved vote are silently ignored, not errors; recorded reports whether
// this call actually changed the tallies so callers only announce real
// updates. allVoted reports whether every currently eligible voter has now
// cast a ballot, in which case the caller resolves the vote early.
func CastKickVote(db *gorm.DB, voteID, voterID, ballot string) (vote *postgres.KickVote, recorded bool, allVoted bool, err error) {
	var loaded postgres.KickVote
	if err := db.Where("vote_id = ?", voteID).First(&loaded).Error; err != nil {
		return nil, false, false, fmt.Errorf("error loading kick vote: %v", err)
	}
	vote = &loaded

	if vote.Status != postgres.KickVoteStatusPending {
		return vote, false, false, nil
	}

	voters := vote.VoterMap()
	if _, alreadyVoted := voters[voterID]; alreadyVoted {
		return vote, false, false, nil
	}

	voters[voterID] = ballot
	vote.SetVoterMap(voters)

	err = db.Model(&postgres.KickVote{}).Where("vote_id = ?", voteID).
		Updates(map[string]interface{}{
			"voters":        vote.Voters,
			"votes_for":     vote.VotesFor,
			"votes_against": vote.VotesAgainst,
		}).Error
	if err != nil {
		return nil, false, false, fmt.Errorf("error saving ballot: %v", err)
	}

	eligible, err := EligibleVoters(db, vote.RoomID, vote.TargetPlayerID)
	if err != nil {
		return nil, false, false, err
	}

	allVoted = true
	for _, id := range eligible {
		if _, ok := voters[id]; !ok {
			allVoted = false
			break
		}
	}

	return vote, true, allVoted, nil
}

// EligibleVoters lists the active, non-kicked members of a room excluding the
// vote target. The resolution threshold is computed over this set, so
// abstentions count against removal.
func EligibleVoters(db *gorm.DB, roomID, targetID string) ([]string, error) {
	var ids []string
	err := db.Model(&postgres.RoomPlayer{}).
		Where("room_id = ? AND is_active = ? AND is_kicked = ? AND player_id != ?",
			roomID, true, false, targetID).
		Pluck("player_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("error loading eligible voters: %v", err)
	}
	return ids, nil
}

// KickThreshold is the strict majority of the eligible voter count.
func KickThreshold(eligibleCount int) int {
	return eligibleCount/2 + 1
}

// ResolveKickVote settles a pending vote: kicked when votes_for reaches the
// strict majority of eligible voters, stayed otherwise. On kicked the target
// is marked kicked/inactive, their kick count incremented and their id
// removed from the rotation. Safe to call from both the timer and the
// all-voted path: an already-resolved vote is returned unchanged with
// resolvedNow = false.
func ResolveKickVote(db *gorm.DB, voteID string) (vote *postgres.KickVote, resolvedNow bool, err error) {
	var loaded postgres.KickVote
	if err := db.Where("vote_id = ?", voteID).First(&loaded).Error; err != nil {
		return nil, false, fmt.Errorf("error loading kick vote: %v", err)
	}
	vote = &loaded

	if vote.Status != postgres.KickVoteStatusPending {
		return vote, false, nil
	}

	eligible, err := EligibleVoters(db, vote.RoomID, vote.TargetPlayerID)
	if err != nil {
		return nil, false, err
	}

	result := postgres.KickVoteStatusStayed
	if vote.VotesFor >= KickThreshold(len(eligible)) {
		result = postgres.KickVoteStatusKicked
	}

	now := time.Now()
	err = db.Model(&postgres.KickVote{}).Where("vote_id = ?", voteID).
		Updates(map[string]interface{}{
			"status":      result,
			"resolved_at": now,
		}).Error
	if err != nil {
		return nil, false, fmt.Errorf("error resolving kick vote: %v", err)
	}
	vote.Status = result
	vote.ResolvedAt = &now

	if result == postgres.KickVoteStatusKicked {
		if err := applyKickPenalty(db, vote.RoomID, vote.TargetPlayerID); err != nil {
			return nil, false, err
		}
	}

	return vote, true, nil
}

// applyKickPenalty marks the target's membership and drops them from the
// rotation. Reaching KickBanThreshold kicks bans them from this room forever.
func applyKickPenalty(db *gorm.DB, roomID, targetID string) error {
	err := db.Model(&postgres.RoomPlayer{}).
		Where("room_id = ? AND player_id = ?", roomID, targetID).
		Updates(map[string]interface{}{
			"is_kicked":  true,
			"is_active":  false,
			"kick_count": gorm.Expr("kick_count + 1"),
		}).Error
	if err != nil {
		return fmt.Errorf("error updating kicked membership: %v", err)
	}

	var room postgres.Room
	if err := db.Where("room_id = ?", roomID).First(&room).Error; err != nil {
		return fmt.Errorf("error loading room: %v", err)
	}

	order := room.TurnOrderList()
	filtered := make([]string, 0, len(order))
	for _, id := range order {
		if id != targetID {
			filtered = append(filtered, id)
		}
	}
	room.SetTurnOrderList(filtered)

	err = db.Model(&postgres.Room{}).Where("room_id = ?", roomID).
		Update("turn_order", room.TurnOrder).Error
	if err != nil {
		return fmt.Errorf("error updating turn order: %v", err)
	}
	return nil
}

// PendingKickVote returns the room's pending vote, or nil when there is none.
func PendingKickVote(db *gorm.DB, roomID string) (*postgres.KickVote, error) {
	var vote postgres.KickVote
	err := db.Where("room_id = ? AND status = ?", roomID, postgres.KickVoteStatusPending).
		First(&vote).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("error loading pending vote: %v", err)
	}
	return &vote, nil
}
