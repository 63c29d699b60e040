package game

import "errors"

// Request-local validation failures. Every one of these is reported back to
// the single requesting connection and never mutates room state.
var (
	ErrNotYourTurn           = errors.New("not your turn")
	ErrInvalidSelection      = errors.New("invalid card selection")
	ErrInsufficientCards     = errors.New("not enough cards in deck")
	ErrEmptyPool             = errors.New("no cards match the selected expansions")
	ErrBanned                = errors.New("player is banned from this room")
	ErrNameTaken             = errors.New("display name already taken")
	ErrVoteAlreadyInProgress = errors.New("a kick vote is already in progress")
	ErrRoomNotFound          = errors.New("room not found")
	ErrRoomFull              = errors.New("room is full")
	ErrGameAlreadyStarted    = errors.New("game already started")
	ErrGameNotInProgress     = errors.New("game is not in progress")
	ErrNotHost               = errors.New("only the host can do that")
	ErrNoActivePlayers       = errors.New("no active players in room")
	ErrTargetNotInRoom       = errors.New("target is not an active member of this room")
)
