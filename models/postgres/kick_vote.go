package postgres

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Kick vote lifecycle: pending -> kicked | stayed (terminal)
const (
	KickVoteStatusPending = "pending"
	KickVoteStatusKicked  = "kicked"
	KickVoteStatusStayed  = "stayed"
)

// Ballot choices
const (
	KickBallotKick = "kick"
	KickBallotKeep = "keep"
)

/*
 * 'KickVote' is a bounded-time group ballot to remove a player. Voters is a
 * jsonb map player_id -> kick|keep; the VotesFor/VotesAgainst tallies are
 * recomputed from it on every write so they can never drift apart.
 * At most one pending vote may exist per room.
 */
type KickVote struct {
	VoteID         string         `gorm:"primaryKey;size:36;not null" json:"vote_id"`
	RoomID         string         `gorm:"size:36;not null;index:idx_kick_votes_room" json:"room_id"`
	TargetPlayerID string         `gorm:"size:36;not null" json:"target_player_id"`
	InitiatedBy    string         `gorm:"size:36;not null" json:"initiated_by"`
	Voters         datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"-"`
	VotesFor       int            `gorm:"default:0" json:"votes_for"`
	VotesAgainst   int            `gorm:"default:0" json:"votes_against"`
	Status         string         `gorm:"size:20;not null;default:pending" json:"status"`
	CreatedAt      time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	ResolvedAt     *time.Time     `json:"resolved_at"`

	Room Room `gorm:"foreignKey:RoomID" json:"-"`
}

func (v *KickVote) BeforeCreate(tx *gorm.DB) (err error) {
	if v.VoteID == "" {
		v.VoteID = uuid.NewString()
	}
	return nil
}

// VoterMap decodes the jsonb ballot map.
func (v *KickVote) VoterMap() map[string]string {
	out := make(map[string]string)
	if err := json.Unmarshal(v.Voters, &out); err != nil {
		return map[string]string{}
	}
	return out
}

// SetVoterMap encodes the ballots and recomputes both tallies.
func (v *KickVote) SetVoterMap(voters map[string]string) {
	votesFor, votesAgainst := 0, 0
	for _, ballot := range voters {
		switch ballot {
		case KickBallotKick:
			votesFor++
		case KickBallotKeep:
			votesAgainst++
		}
	}
	data, _ := json.Marshal(voters)
	v.Voters = datatypes.JSON(data)
	v.VotesFor = votesFor
	v.VotesAgainst = votesAgainst
}
