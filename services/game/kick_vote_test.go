package game

import (
	"testing"
	"time"

	"Pineapple/models/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestKickThreshold(t *testing.T) {
	// Strict majority of the eligible voters
	assert.Equal(t, 2, KickThreshold(2))
	assert.Equal(t, 2, KickThreshold(3))
	assert.Equal(t, 3, KickThreshold(4))
	assert.Equal(t, 3, KickThreshold(5))
	assert.Equal(t, 4, KickThreshold(6))
	assert.Equal(t, 9, KickThreshold(16))
}

func TestKickThresholdFivePlayerRoom(t *testing.T) {
	// Room of 5 with one target: 4 eligible voters, 3 kicks needed
	threshold := KickThreshold(4)
	assert.Equal(t, 3, threshold)

	assert.Less(t, 2, threshold, "two kick ballots must not pass")
	assert.GreaterOrEqual(t, 3, threshold, "three kick ballots must pass")
}

func kickVoteRow(votesFor, votesAgainst int, voters, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"vote_id", "room_id", "target_player_id", "initiated_by",
		"voters", "votes_for", "votes_against", "status",
	}).AddRow("v1", "r1", "target", "alice", []byte(voters), votesFor, votesAgainst, status)
}

func TestInitiateKickVotePresetsInitiatorBallot(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "kick_votes"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "room_players"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "kick_votes"`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectCommit()

	vote, err := InitiateKickVote(db, "r1", "alice", "target")
	assert.NoError(t, err)
	assert.Equal(t, postgres.KickVoteStatusPending, vote.Status)
	assert.Equal(t, postgres.KickBallotKick, vote.VoterMap()["alice"])
	assert.Equal(t, 1, vote.VotesFor)
	assert.Equal(t, 0, vote.VotesAgainst)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInitiateKickVoteAlreadyPending(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "kick_votes"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := InitiateKickVote(db, "r1", "alice", "target")
	assert.ErrorIs(t, err, ErrVoteAlreadyInProgress)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInitiateKickVoteTargetNotInRoom(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "kick_votes"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "room_players"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, err := InitiateKickVote(db, "r1", "alice", "stranger")
	assert.ErrorIs(t, err, ErrTargetNotInRoom)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCastKickVoteRecordsAndDetectsAllVoted(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "kick_votes"`).
		WillReturnRows(kickVoteRow(1, 0, `{"alice":"kick"}`, postgres.KickVoteStatusPending))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "kick_votes" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT "player_id" FROM "room_players"`).
		WillReturnRows(sqlmock.NewRows([]string{"player_id"}).
			AddRow("alice").AddRow("bob"))

	vote, recorded, allVoted, err := CastKickVote(db, "v1", "bob", postgres.KickBallotKick)
	assert.NoError(t, err)
	assert.True(t, recorded)
	assert.True(t, allVoted, "last eligible voter triggers early resolution")
	assert.Equal(t, 2, vote.VotesFor)
	assert.Equal(t, 0, vote.VotesAgainst)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCastKickVoteWaitsForRemainingVoters(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "kick_votes"`).
		WillReturnRows(kickVoteRow(1, 0, `{"alice":"kick"}`, postgres.KickVoteStatusPending))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "kick_votes" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT "player_id" FROM "room_players"`).
		WillReturnRows(sqlmock.NewRows([]string{"player_id"}).
			AddRow("alice").AddRow("bob").AddRow("carol"))

	_, recorded, allVoted, err := CastKickVote(db, "v1", "bob", postgres.KickBallotKeep)
	assert.NoError(t, err)
	assert.True(t, recorded)
	assert.False(t, allVoted)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCastKickVoteDuplicateBallotIgnored(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "kick_votes"`).
		WillReturnRows(kickVoteRow(1, 0, `{"alice":"kick"}`, postgres.KickVoteStatusPending))

	vote, recorded, allVoted, err := CastKickVote(db, "v1", "alice", postgres.KickBallotKeep)
	assert.NoError(t, err)
	assert.False(t, recorded)
	assert.False(t, allVoted)

	// Original ballot untouched
	assert.Equal(t, postgres.KickBallotKick, vote.VoterMap()["alice"])
	assert.Equal(t, 1, vote.VotesFor)

	// No write happened
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCastKickVoteOnResolvedVoteIgnored(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "kick_votes"`).
		WillReturnRows(kickVoteRow(3, 1, `{}`, postgres.KickVoteStatusKicked))

	vote, recorded, allVoted, err := CastKickVote(db, "v1", "dave", postgres.KickBallotKick)
	assert.NoError(t, err)
	assert.False(t, recorded)
	assert.False(t, allVoted)
	assert.Equal(t, postgres.KickVoteStatusKicked, vote.Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveKickVoteStayedBelowThreshold(t *testing.T) {
	db, mock := setupMockDB(t)

	// 2 kick ballots against 4 eligible voters: threshold 3 not reached
	mock.ExpectQuery(`SELECT \* FROM "kick_votes"`).
		WillReturnRows(kickVoteRow(2, 1, `{}`, postgres.KickVoteStatusPending))
	mock.ExpectQuery(`SELECT "player_id" FROM "room_players"`).
		WillReturnRows(sqlmock.NewRows([]string{"player_id"}).
			AddRow("alice").AddRow("bob").AddRow("carol").AddRow("dave"))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "kick_votes" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	vote, resolvedNow, err := ResolveKickVote(db, "v1")
	assert.NoError(t, err)
	assert.True(t, resolvedNow)
	assert.Equal(t, postgres.KickVoteStatusStayed, vote.Status)
	assert.NotNil(t, vote.ResolvedAt)

	// No membership penalty was applied
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveKickVoteKickedAppliesPenalty(t *testing.T) {
	db, mock := setupMockDB(t)

	// 3 kick ballots against 4 eligible voters: threshold 3 reached
	mock.ExpectQuery(`SELECT \* FROM "kick_votes"`).
		WillReturnRows(kickVoteRow(3, 1, `{}`, postgres.KickVoteStatusPending))
	mock.ExpectQuery(`SELECT "player_id" FROM "room_players"`).
		WillReturnRows(sqlmock.NewRows([]string{"player_id"}).
			AddRow("alice").AddRow("bob").AddRow("carol").AddRow("dave"))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "kick_votes" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Membership penalty and rotation removal
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "room_players" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "rooms"`).
		WillReturnRows(sqlmock.NewRows([]string{"room_id", "turn_order"}).
			AddRow("r1", []byte(`["alice","target","bob"]`)))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "rooms" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	vote, resolvedNow, err := ResolveKickVote(db, "v1")
	assert.NoError(t, err)
	assert.True(t, resolvedNow)
	assert.Equal(t, postgres.KickVoteStatusKicked, vote.Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveKickVoteAlreadyResolved(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "kick_votes"`).
		WillReturnRows(kickVoteRow(2, 2, `{}`, postgres.KickVoteStatusStayed))

	vote, resolvedNow, err := ResolveKickVote(db, "v1")
	assert.NoError(t, err)
	assert.False(t, resolvedNow, "timer losing the race must not resolve twice")
	assert.Equal(t, postgres.KickVoteStatusStayed, vote.Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRejoinAfterTwoKicksIsBanned(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "room_players"`).
		WillReturnRows(sqlmock.NewRows([]string{
			"room_id", "player_id", "display_name", "is_active", "is_kicked", "kick_count",
		}).AddRow("r1", "target", "mallory", false, true, 2))

	_, err := AddPlayerToRoom(db, "r1", "target", "mallory", nil)
	assert.ErrorIs(t, err, ErrBanned)

	assert.NoError(t, mock.ExpectationsWereMet())
}
