package redis

import (
	redis_models "Pineapple/models/redis"
	redis_utils "Pineapple/services/redis/utils"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient handles Redis operations
type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(Addr string, DB int) *RedisClient {
	var client *redis.Client
	if Addr != "localhost:6379" {
		log.Println("Connecting to remote Redis...")
		opt, err := redis.ParseURL(Addr)
		if err != nil {
			panic("Error parsing Redis URL")
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: Addr,
			DB:   DB,
		})
	}
	return &RedisClient{
		client: client,
		ctx:    context.Background(),
	}
}

// SaveRoomSession stores which room a player is currently connected to.
// Key format: "session:{player_id}"
// TTL: 24 hours
func (rc *RedisClient) SaveRoomSession(session *redis_models.RoomSession) error {
	key := redis_utils.FormatRoomSessionKey(session.PlayerID)
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("error marshaling session data: %v", err)
	}
	return rc.client.Set(rc.ctx, key, data, 24*time.Hour).Err()
}

// GetRoomSession retrieves a player's current room session
func (rc *RedisClient) GetRoomSession(playerID string) (*redis_models.RoomSession, error) {
	key := redis_utils.FormatRoomSessionKey(playerID)
	data, err := rc.client.Get(rc.ctx, key).Bytes()
	if err != nil {
		return nil, fmt.Errorf("error getting session data: %v", err)
	}

	var session redis_models.RoomSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("error unmarshaling session data: %v", err)
	}
	return &session, nil
}

// DeleteRoomSession removes a player's room session
func (rc *RedisClient) DeleteRoomSession(playerID string) error {
	key := redis_utils.FormatRoomSessionKey(playerID)
	if err := rc.client.Del(rc.ctx, key).Err(); err != nil {
		return fmt.Errorf("error deleting session data: %v", err)
	}
	return nil
}

// GetPlayerCurrentRoom retrieves the current room of a player
// by extracting it from the player's session
func (rc *RedisClient) GetPlayerCurrentRoom(playerID string) (string, error) {
	session, err := rc.GetRoomSession(playerID)
	if err != nil {
		return "", fmt.Errorf("error getting player's current room: %v", err)
	}
	return session.RoomID, nil
}

// SavePlayerPresence stores a player's presence record.
// Key format: "presence:{player_id}"
// TTL: 24 hours
func (rc *RedisClient) SavePlayerPresence(presence *redis_models.PlayerPresence) error {
	key := redis_utils.FormatPresenceKey(presence.PlayerID)
	data, err := json.Marshal(presence)
	if err != nil {
		return fmt.Errorf("error marshaling presence data: %v", err)
	}
	return rc.client.Set(rc.ctx, key, data, 24*time.Hour).Err()
}

// GetPlayerPresence retrieves a player's presence record
func (rc *RedisClient) GetPlayerPresence(playerID string) (*redis_models.PlayerPresence, error) {
	key := redis_utils.FormatPresenceKey(playerID)
	data, err := rc.client.Get(rc.ctx, key).Bytes()
	if err != nil {
		return nil, fmt.Errorf("error getting presence data: %v", err)
	}

	var presence redis_models.PlayerPresence
	if err := json.Unmarshal(data, &presence); err != nil {
		return nil, fmt.Errorf("error unmarshaling presence data: %v", err)
	}
	return &presence, nil
}

// CleanupKeys removes the specified keys from Redis
func (rc *RedisClient) CleanupKeys(keys []string) error {
	for _, key := range keys {
		if err := rc.client.Del(rc.ctx, key).Err(); err != nil {
			return fmt.Errorf("failed to cleanup Redis key %s: %v", key, err)
		}
	}
	return nil
}
