package sync

import (
	"testing"
	"time"

	"Pineapple/services/game"

	"github.com/stretchr/testify/assert"
)

func TestWithRoomSerializesSameRoom(t *testing.T) {
	r := NewRoomRegistry()

	const workers = 8
	const iterations = 200

	counter := 0
	done := make(chan struct{})

	for w := 0; w < workers; w++ {
		go func() {
			for i := 0; i < iterations; i++ {
				r.WithRoom("room-1", func() {
					counter++
				})
			}
			done <- struct{}{}
		}()
	}
	for w := 0; w < workers; w++ {
		<-done
	}

	assert.Equal(t, workers*iterations, counter)
}

func TestWithRoomDifferentRoomsDoNotBlock(t *testing.T) {
	r := NewRoomRegistry()

	blocked := make(chan struct{})
	release := make(chan struct{})

	go r.WithRoom("room-a", func() {
		close(blocked)
		<-release
	})
	<-blocked

	ran := make(chan struct{})
	go r.WithRoom("room-b", func() {
		close(ran)
	})

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("command on a different room was blocked")
	}
	close(release)
}

func TestTurnStateLifecycle(t *testing.T) {
	r := NewRoomRegistry()

	assert.Nil(t, r.TurnState("room-1"))

	ts := game.NewTurnState()
	r.WithRoom("room-1", func() {
		r.SetTurnState("room-1", ts)
	})
	assert.Same(t, ts, r.TurnState("room-1"))

	r.WithRoom("room-1", func() {
		r.ClearTurnState("room-1")
	})
	assert.Nil(t, r.TurnState("room-1"))
}

func TestScheduleVoteResolutionFires(t *testing.T) {
	r := NewRoomRegistry()

	fired := make(chan struct{})
	r.WithRoom("room-1", func() {
		r.ScheduleVoteResolution("room-1", "vote-1", 10*time.Millisecond, func() {
			close(fired)
		})
	})

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("vote timer never fired")
	}
}

func TestCancelVoteResolution(t *testing.T) {
	r := NewRoomRegistry()

	fired := make(chan struct{})
	r.WithRoom("room-1", func() {
		r.ScheduleVoteResolution("room-1", "vote-1", 20*time.Millisecond, func() {
			close(fired)
		})
		r.CancelVoteResolution("room-1", "vote-1")
	})

	select {
	case <-fired:
		t.Fatal("cancelled vote timer still fired")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestCancelVoteResolutionIgnoresOtherVote(t *testing.T) {
	r := NewRoomRegistry()

	fired := make(chan struct{})
	r.WithRoom("room-1", func() {
		r.ScheduleVoteResolution("room-1", "vote-1", 10*time.Millisecond, func() {
			close(fired)
		})
		// Stale id from an earlier vote must not cancel the live timer
		r.CancelVoteResolution("room-1", "vote-0")
	})

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("timer was cancelled by a stale vote id")
	}
}

func TestDropStopsTimer(t *testing.T) {
	r := NewRoomRegistry()

	fired := make(chan struct{})
	r.WithRoom("room-1", func() {
		r.ScheduleVoteResolution("room-1", "vote-1", 20*time.Millisecond, func() {
			close(fired)
		})
	})
	r.Drop("room-1")

	select {
	case <-fired:
		t.Fatal("dropped room's vote timer still fired")
	case <-time.After(100 * time.Millisecond):
	}

	assert.Nil(t, r.TurnState("room-1"))
}
