package sync

import (
	"Pineapple/services/game"
	"sync"
	"time"
)

// roomEntry is the in-process state of one live room: the lock that
// serializes its commands, the ephemeral state of the turn in flight and the
// pending kick-vote timer.
type roomEntry struct {
	mu        sync.Mutex
	turnState *game.TurnState
	voteTimer *time.Timer
	voteID    string
}

// RoomRegistry serializes all commands targeting the same room and owns the
// room's ephemeral state. Commands for different rooms run in parallel.
// Entries are created on demand and dropped when a room ends, so the map only
// ever holds live rooms.
type RoomRegistry struct {
	mu    sync.RWMutex
	rooms map[string]*roomEntry
}

func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{
		rooms: make(map[string]*roomEntry),
	}
}

func (r *RoomRegistry) entry(roomID string) *roomEntry {
	r.mu.RLock()
	e, ok := r.rooms[roomID]
	r.mu.RUnlock()
	if ok {
		return e
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.rooms[roomID]; ok {
		return e
	}
	e = &roomEntry{}
	r.rooms[roomID] = e
	return e
}

// WithRoom runs fn while holding the room's lock. Every mutating command for
// a room (including the kick-vote timer callback) goes through here, so no
// two commands for one room ever interleave their validate-mutate-broadcast
// cycle. The turn-state and vote-timer accessors below must only be called
// from inside fn.
func (r *RoomRegistry) WithRoom(roomID string, fn func()) {
	e := r.entry(roomID)
	e.mu.Lock()
	defer e.mu.Unlock()
	fn()
}

// TurnState returns the room's in-flight turn state, or nil.
func (r *RoomRegistry) TurnState(roomID string) *game.TurnState {
	return r.entry(roomID).turnState
}

// SetTurnState installs the ephemeral state for a fresh turn.
func (r *RoomRegistry) SetTurnState(roomID string, ts *game.TurnState) {
	r.entry(roomID).turnState = ts
}

// ClearTurnState discards the in-flight turn.
func (r *RoomRegistry) ClearTurnState(roomID string) {
	r.entry(roomID).turnState = nil
}

// ScheduleVoteResolution arms the bounded kick-vote timer. The callback is
// dispatched through WithRoom so the timeout resolution is just another
// serialized command against the room; a callback that loses the race with
// an early resolution finds the vote already settled and does nothing.
func (r *RoomRegistry) ScheduleVoteResolution(roomID, voteID string, d time.Duration, fn func()) {
	e := r.entry(roomID)
	if e.voteTimer != nil {
		e.voteTimer.Stop()
	}
	e.voteID = voteID
	e.voteTimer = time.AfterFunc(d, func() {
		r.WithRoom(roomID, fn)
	})
}

// CancelVoteResolution stops the timer after an early resolution. A timer
// that already fired and is waiting on the room lock is harmless, see above.
func (r *RoomRegistry) CancelVoteResolution(roomID, voteID string) {
	e := r.entry(roomID)
	if e.voteID != voteID || e.voteTimer == nil {
		return
	}
	e.voteTimer.Stop()
	e.voteTimer = nil
	e.voteID = ""
}

// Drop removes a room's entry once it has ended. Any armed timer is stopped.
func (r *RoomRegistry) Drop(roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.rooms[roomID]; ok {
		if e.voteTimer != nil {
			e.voteTimer.Stop()
		}
		delete(r.rooms, roomID)
	}
}
