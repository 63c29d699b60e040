package redis

// RoomSession tracks which room (and socket) a player currently occupies.
// Written on join, removed on leave/disconnect, so a reconnecting client can
// be routed back and a dangling disconnect can be cleaned up.
type RoomSession struct {
	PlayerID string `json:"player_id"`
	RoomID   string `json:"room_id"`
	SocketID string `json:"socket_id"` // For direct messaging
	JoinedAt int64  `json:"joined_at"` // Unix timestamp
}
