package redis

type PlayerStatus string

const (
	StatusOnline  PlayerStatus = "online"
	StatusPlaying PlayerStatus = "playing"
	StatusOffline PlayerStatus = "offline"
)

type PlayerPresence struct {
	PlayerID string       `json:"player_id"`
	Status   PlayerStatus `json:"status"`
	LastPing int64        `json:"last_ping"` // Unix timestamp
	SocketID string       `json:"socket_id"`
}
