package redis_utils

import "fmt"

// FormatRoomSessionKey builds the key holding a player's current room session.
// Key format: "session:{player_id}"
func FormatRoomSessionKey(playerID string) string {
	return fmt.Sprintf("session:%s", playerID)
}

// FormatPresenceKey builds the key holding a player's presence record.
// Key format: "presence:{player_id}"
func FormatPresenceKey(playerID string) string {
	return fmt.Sprintf("presence:%s", playerID)
}
