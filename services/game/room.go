package game

import (
	game_constants "Pineapple/constants/game"
	"Pineapple/models/postgres"
	"fmt"
	"math/rand"
	"time"

	"gorm.io/gorm"
)

// FindRoomByCode resolves a join code to its room. Codes of ended rooms may
// have been reused, so live rooms win.
func FindRoomByCode(db *gorm.DB, code string) (*postgres.Room, error) {
	var room postgres.Room
	err := db.Where("room_code = ?", code).
		Order("created_at DESC").First(&room).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("error loading room: %v", err)
	}
	return &room, nil
}

// GetRoom loads a room by id.
func GetRoom(db *gorm.DB, roomID string) (*postgres.Room, error) {
	var room postgres.Room
	if err := db.Where("room_id = ?", roomID).First(&room).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("error loading room: %v", err)
	}
	return &room, nil
}

// GetRoomPlayers lists every membership row of a room, ever.
func GetRoomPlayers(db *gorm.DB, roomID string) ([]postgres.RoomPlayer, error) {
	var players []postgres.RoomPlayer
	err := db.Where("room_id = ?", roomID).Order("joined_at ASC").Find(&players).Error
	if err != nil {
		return nil, fmt.Errorf("error loading room players: %v", err)
	}
	return players, nil
}

// GetActivePlayers lists the currently present, non-kicked members.
func GetActivePlayers(db *gorm.DB, roomID string) ([]postgres.RoomPlayer, error) {
	var players []postgres.RoomPlayer
	err := db.Where("room_id = ? AND is_active = ? AND is_kicked = ?", roomID, true, false).
		Order("joined_at ASC").Find(&players).Error
	if err != nil {
		return nil, fmt.Errorf("error loading active players: %v", err)
	}
	return players, nil
}

// CreateOrGetPlayer upserts the device-scoped player identity, refreshing the
// display name and (when provided) the photo.
func CreateOrGetPlayer(db *gorm.DB, playerID, displayName string, photoURL *string) (*postgres.Player, error) {
	if playerID != "" {
		var existing postgres.Player
		err := db.Where("player_id = ?", playerID).First(&existing).Error
		if err == nil {
			existing.DisplayName = displayName
			if photoURL != nil {
				existing.PhotoURL = photoURL
			}
			if err := db.Save(&existing).Error; err != nil {
				return nil, fmt.Errorf("error updating player: %v", err)
			}
			return &existing, nil
		}
		if err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("error loading player: %v", err)
		}
	}

	player := postgres.Player{
		PlayerID:    playerID,
		DisplayName: displayName,
		PhotoURL:    photoURL,
	}
	if err := db.Create(&player).Error; err != nil {
		return nil, fmt.Errorf("error creating player: %v", err)
	}
	return &player, nil
}

// AddPlayerToRoom creates or reactivates a membership row. Validation order:
// ban check, active-name uniqueness (case-sensitive), room capacity. When the
// game is already running and the player is not in the rotation yet, they are
// appended at the tail: late joiners never jump the current turn.
func AddPlayerToRoom(db *gorm.DB, roomID, playerID, displayName string, photoURL *string) (*postgres.RoomPlayer, error) {
	var existing postgres.RoomPlayer
	err := db.Where("room_id = ? AND player_id = ?", roomID, playerID).First(&existing).Error
	found := err == nil
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("error loading membership: %v", err)
	}

	if found && existing.KickCount >= game_constants.KickBanThreshold {
		return nil, ErrBanned
	}

	var nameCount int64
	err = db.Model(&postgres.RoomPlayer{}).
		Where("room_id = ? AND display_name = ? AND player_id != ? AND is_active = ?",
			roomID, displayName, playerID, true).
		Count(&nameCount).Error
	if err != nil {
		return nil, fmt.Errorf("error checking display names: %v", err)
	}
	if nameCount > 0 {
		return nil, ErrNameTaken
	}

	if !found || !existing.IsActive {
		active, err := GetActivePlayers(db, roomID)
		if err != nil {
			return nil, err
		}
		if len(active) >= game_constants.MaxRoomPlayers {
			return nil, ErrRoomFull
		}
	}

	if found {
		updates := map[string]interface{}{
			"is_active":    true,
			"display_name": displayName,
		}
		if photoURL != nil {
			updates["photo_url"] = *photoURL
		}
		err = db.Model(&postgres.RoomPlayer{}).
			Where("room_id = ? AND player_id = ?", roomID, playerID).
			Updates(updates).Error
		if err != nil {
			return nil, fmt.Errorf("error reactivating membership: %v", err)
		}
	} else {
		membership := postgres.RoomPlayer{
			RoomID:      roomID,
			PlayerID:    playerID,
			DisplayName: displayName,
			PhotoURL:    photoURL,
			IsActive:    true,
		}
		if err := db.Create(&membership).Error; err != nil {
			return nil, fmt.Errorf("error creating membership: %v", err)
		}
	}

	// Tail-insert into the rotation of a running game
	room, err := GetRoom(db, roomID)
	if err != nil {
		return nil, err
	}
	if room.Status == postgres.RoomStatusInProgress {
		order := room.TurnOrderList()
		inOrder := false
		for _, id := range order {
			if id == playerID {
				inOrder = true
				break
			}
		}
		if !inOrder {
			room.SetTurnOrderList(append(order, playerID))
			err = db.Model(&postgres.Room{}).Where("room_id = ?", roomID).
				Update("turn_order", room.TurnOrder).Error
			if err != nil {
				return nil, fmt.Errorf("error updating turn order: %v", err)
			}
		}
	}

	var membership postgres.RoomPlayer
	err = db.Where("room_id = ? AND player_id = ?", roomID, playerID).First(&membership).Error
	if err != nil {
		return nil, fmt.Errorf("error reloading membership: %v", err)
	}
	return &membership, nil
}

// RemovePlayerFromRoom deactivates a membership and drops the player from the
// rotation. When this leaves a running game without active members the room
// is ended; the caller broadcasts the terminal event.
func RemovePlayerFromRoom(db *gorm.DB, roomID, playerID string) (gameEnded bool, err error) {
	err = db.Model(&postgres.RoomPlayer{}).
		Where("room_id = ? AND player_id = ?", roomID, playerID).
		Update("is_active", false).Error
	if err != nil {
		return false, fmt.Errorf("error deactivating membership: %v", err)
	}

	room, err := GetRoom(db, roomID)
	if err != nil {
		return false, err
	}

	order := room.TurnOrderList()
	filtered := make([]string, 0, len(order))
	for _, id := range order {
		if id != playerID {
			filtered = append(filtered, id)
		}
	}
	room.SetTurnOrderList(filtered)
	err = db.Model(&postgres.Room{}).Where("room_id = ?", roomID).
		Update("turn_order", room.TurnOrder).Error
	if err != nil {
		return false, fmt.Errorf("error updating turn order: %v", err)
	}

	active, err := GetActivePlayers(db, roomID)
	if err != nil {
		return false, err
	}

	if len(active) == 0 && room.Status == postgres.RoomStatusInProgress {
		if err := EndRoom(db, roomID); err != nil {
			return false, err
		}
		return true, nil
	}

	return false, nil
}

// EndRoom transitions a room to its terminal state.
func EndRoom(db *gorm.DB, roomID string) error {
	err := db.Model(&postgres.Room{}).Where("room_id = ?", roomID).
		Updates(map[string]interface{}{
			"status":   postgres.RoomStatusEnded,
			"ended_at": time.Now(),
		}).Error
	if err != nil {
		return fmt.Errorf("error ending room: %v", err)
	}
	return nil
}

// StartGame builds the deck over the room's expansions, shuffles the active
// members into the rotation and hands the first turn to its head. Host only,
// lobby only, at least one active member.
func StartGame(db *gorm.DB, roomID, requesterID string) (*postgres.Room, error) {
	room, err := GetRoom(db, roomID)
	if err != nil {
		return nil, err
	}
	if room.HostPlayerID != requesterID {
		return nil, ErrNotHost
	}
	if room.Status != postgres.RoomStatusLobby {
		return nil, ErrGameAlreadyStarted
	}

	active, err := GetActivePlayers(db, roomID)
	if err != nil {
		return nil, err
	}
	if len(active) < game_constants.MinPlayersToStart {
		return nil, ErrNoActivePlayers
	}

	if err := BuildDeck(db, roomID, room.ExpansionList()); err != nil {
		return nil, err
	}

	order := make([]string, len(active))
	for i, p := range active {
		order[i] = p.PlayerID
	}
	rand.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	room.SetTurnOrderList(order)
	first := order[0]
	err = db.Model(&postgres.Room{}).Where("room_id = ?", roomID).
		Updates(map[string]interface{}{
			"status":                 postgres.RoomStatusInProgress,
			"turn_order":             room.TurnOrder,
			"current_turn_player_id": first,
			"turn_number":            1,
		}).Error
	if err != nil {
		return nil, fmt.Errorf("error starting game: %v", err)
	}

	return GetRoom(db, roomID)
}

// UpdateExpansions replaces the room's expansion set. Host only, lobby only;
// the base tag is always re-added when omitted.
func UpdateExpansions(db *gorm.DB, roomID, requesterID string, expansions []string) (*postgres.Room, error) {
	room, err := GetRoom(db, roomID)
	if err != nil {
		return nil, err
	}
	if room.HostPlayerID != requesterID {
		return nil, ErrNotHost
	}
	if room.Status != postgres.RoomStatusLobby {
		return nil, ErrGameAlreadyStarted
	}

	room.SetExpansionList(expansions)
	err = db.Model(&postgres.Room{}).Where("room_id = ?", roomID).
		Update("expansions", room.Expansions).Error
	if err != nil {
		return nil, fmt.Errorf("error updating expansions: %v", err)
	}

	return GetRoom(db, roomID)
}

// GetTurnLogs returns a room's turn history in play order.
func GetTurnLogs(db *gorm.DB, roomID string) ([]postgres.TurnLog, error) {
	var logs []postgres.TurnLog
	err := db.Where("room_id = ?", roomID).Order("turn_number ASC").Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("error loading turn logs: %v", err)
	}
	return logs, nil
}
