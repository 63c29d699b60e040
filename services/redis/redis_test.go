package redis

import (
	"os"
	"testing"
	"time"

	redis_models "Pineapple/models/redis"

	"github.com/stretchr/testify/assert"
)

// Tests in this file need a reachable Redis; they skip otherwise.
func testClient(t *testing.T) *RedisClient {
	addr := os.Getenv("REDIS_URL")
	if addr == "" {
		addr = "localhost:6379"
	}
	rc, err := InitRedis(addr, 0)
	if err != nil {
		t.Skipf("Redis not reachable at %s: %v", addr, err)
	}
	t.Cleanup(func() { CloseRedis(rc) })
	return rc
}

func TestRoomSessionRoundTrip(t *testing.T) {
	rc := testClient(t)

	session := &redis_models.RoomSession{
		PlayerID: "test-player-session",
		RoomID:   "test-room",
		SocketID: "sock-1",
		JoinedAt: time.Now().Unix(),
	}
	defer rc.DeleteRoomSession(session.PlayerID)

	assert.NoError(t, rc.SaveRoomSession(session))

	got, err := rc.GetRoomSession(session.PlayerID)
	assert.NoError(t, err)
	assert.Equal(t, session.RoomID, got.RoomID)
	assert.Equal(t, session.SocketID, got.SocketID)

	roomID, err := rc.GetPlayerCurrentRoom(session.PlayerID)
	assert.NoError(t, err)
	assert.Equal(t, "test-room", roomID)
}

func TestDeleteRoomSession(t *testing.T) {
	rc := testClient(t)

	session := &redis_models.RoomSession{
		PlayerID: "test-player-delete",
		RoomID:   "test-room",
		JoinedAt: time.Now().Unix(),
	}
	assert.NoError(t, rc.SaveRoomSession(session))
	assert.NoError(t, rc.DeleteRoomSession(session.PlayerID))

	_, err := rc.GetRoomSession(session.PlayerID)
	assert.Error(t, err)
}

func TestPlayerPresenceRoundTrip(t *testing.T) {
	rc := testClient(t)

	presence := &redis_models.PlayerPresence{
		PlayerID: "test-player-presence",
		Status:   redis_models.StatusPlaying,
		LastPing: time.Now().Unix(),
		SocketID: "sock-2",
	}
	defer rc.CleanupKeys([]string{"presence:test-player-presence"})

	assert.NoError(t, rc.SavePlayerPresence(presence))

	got, err := rc.GetPlayerPresence(presence.PlayerID)
	assert.NoError(t, err)
	assert.Equal(t, redis_models.StatusPlaying, got.Status)
}
