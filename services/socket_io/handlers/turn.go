package handlers

import (
	game_constants "Pineapple/constants/game"
	"Pineapple/models/postgres"
	"Pineapple/services/game"
	"Pineapple/services/redis"
	socketio_types "Pineapple/services/socket_io/types"
	socketio_utils "Pineapple/services/socket_io/utils"
	roomsync "Pineapple/sync"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// HandleDrawCards draws the turn holder's two cards. The cards are revealed
// only to the holder; the rest of the room learns nothing until a card is
// selected.
func HandleDrawCards(redisClient *redis.RedisClient, client *socket.Socket,
	db *gorm.DB, playerID string, sio *socketio_types.SocketServer,
	registry *roomsync.RoomRegistry) func(args ...interface{}) {
	return func(args ...interface{}) {
		data, ok := eventData(args)
		if !ok {
			client.Emit("error", gin.H{"message": "Missing room ID"})
			return
		}
		roomID := getString(data, "room_id")

		registry.WithRoom(roomID, func() {
			if _, err := socketio_utils.RequireCurrentTurn(db, client, roomID, playerID); err != nil {
				return
			}

			if registry.TurnState(roomID) != nil {
				client.Emit("error", gin.H{"message": "Cards already drawn this turn"})
				return
			}

			ids, err := game.DrawCards(db, roomID, game_constants.TurnHandSize)
			if err != nil {
				log.Printf("[DRAW-ERROR] Draw failed in room %s: %v", roomID, err)
				emitGameError(client, err, "Failed to draw cards")
				return
			}

			cards, err := game.GetCardsByIDs(db, ids)
			if err != nil {
				log.Printf("[DRAW-ERROR] Card lookup failed: %v", err)
				client.Emit("error", gin.H{"message": "Failed to draw cards"})
				return
			}

			ts := game.NewTurnState()
			if err := ts.RecordDraw(ids[0], ids[1]); err != nil {
				client.Emit("error", gin.H{"message": err.Error()})
				return
			}
			registry.SetTurnState(roomID, ts)

			// Unicast: only the turn holder sees the drawn cards
			client.Emit("cards_drawn", gin.H{
				"player_id": playerID,
				"cards":     cards,
			})

			log.Printf("[DRAW] Player %s drew %d cards in room %s", playerID, len(ids), roomID)
		})
	}
}

// HandleSelectCard locks in one of the two drawn cards. Both cards go to the
// discard pile; the chosen one is broadcast for display only.
func HandleSelectCard(redisClient *redis.RedisClient, client *socket.Socket,
	db *gorm.DB, playerID string, sio *socketio_types.SocketServer,
	registry *roomsync.RoomRegistry) func(args ...interface{}) {
	return func(args ...interface{}) {
		data, ok := eventData(args)
		if !ok {
			client.Emit("error", gin.H{"message": "Missing selection data"})
			return
		}
		roomID := getString(data, "room_id")
		cardID, hasCard := getInt(data, "card_id")
		if !hasCard {
			client.Emit("error", gin.H{"message": "Missing card ID"})
			return
		}

		registry.WithRoom(roomID, func() {
			if _, err := socketio_utils.RequireCurrentTurn(db, client, roomID, playerID); err != nil {
				return
			}

			ts := registry.TurnState(roomID)
			if ts == nil {
				client.Emit("error", gin.H{"message": "No cards drawn"})
				return
			}

			if err := ts.SelectCard(cardID); err != nil {
				emitGameError(client, err, err.Error())
				return
			}

			card, err := game.GetCardByID(db, cardID)
			if err != nil {
				log.Printf("[SELECT-ERROR] Card lookup failed: %v", err)
				ts.ResetSelection()
				client.Emit("error", gin.H{"message": "Failed to select card"})
				return
			}

			// Both drawn cards are consumed, the selected one included. A
			// failed write unwinds the selection so the holder can retry
			// with the piles untouched.
			if err := game.DiscardCards(db, roomID, ts.Card1, ts.Card2); err != nil {
				log.Printf("[SELECT-ERROR] Discard failed: %v", err)
				ts.ResetSelection()
				client.Emit("error", gin.H{"message": "Failed to select card"})
				return
			}

			sio.BroadcastToRoom(roomID, "card_selected", gin.H{
				"player_id": playerID,
				"card":      card,
			})

			log.Printf("[SELECT] Player %s selected card %d in room %s", playerID, cardID, roomID)
		})
	}
}

// HandleCompleteTurn records whether the holder completed or passed on the
// selected card and appends the immutable turn record.
func HandleCompleteTurn(redisClient *redis.RedisClient, client *socket.Socket,
	db *gorm.DB, playerID string, sio *socketio_types.SocketServer,
	registry *roomsync.RoomRegistry) func(args ...interface{}) {
	return func(args ...interface{}) {
		data, ok := eventData(args)
		if !ok {
			client.Emit("error", gin.H{"message": "Missing outcome data"})
			return
		}
		roomID := getString(data, "room_id")
		outcome := getString(data, "outcome")
		if outcome != postgres.OutcomeCompleted && outcome != postgres.OutcomePassed {
			client.Emit("error", gin.H{"message": "Invalid outcome"})
			return
		}

		registry.WithRoom(roomID, func() {
			room, err := socketio_utils.RequireCurrentTurn(db, client, roomID, playerID)
			if err != nil {
				return
			}

			ts := registry.TurnState(roomID)
			if ts == nil || ts.Phase != game.PhaseCardSelected {
				client.Emit("error", gin.H{"message": "No card selected"})
				return
			}

			// Phase moves forward only once the record is durable, so a
			// failed insert leaves the command retryable.
			_, err = game.LogTurn(db, roomID, playerID, ts.Card1, ts.Card2, ts.Selected,
				outcome, room.TurnNumber)
			if err != nil {
				log.Printf("[COMPLETE-ERROR] Could not log turn: %v", err)
				client.Emit("error", gin.H{"message": "Failed to complete turn"})
				return
			}

			if err := ts.RecordOutcome(); err != nil {
				client.Emit("error", gin.H{"message": err.Error()})
				return
			}

			card, err := game.GetCardByID(db, ts.Selected)
			if err != nil {
				log.Printf("[COMPLETE-ERROR] Card lookup failed: %v", err)
				client.Emit("error", gin.H{"message": "Failed to complete turn"})
				return
			}

			sio.BroadcastToRoom(roomID, "turn_ended", gin.H{
				"player_id": playerID,
				"outcome":   outcome,
				"card":      card,
			})

			log.Printf("[COMPLETE] Player %s finished turn %d in room %s (%s)",
				playerID, room.TurnNumber, roomID, outcome)
		})
	}
}

// HandleEndTurn clears the turn in flight and hands the rotation to the next
// eligible player.
func HandleEndTurn(redisClient *redis.RedisClient, client *socket.Socket,
	db *gorm.DB, playerID string, sio *socketio_types.SocketServer,
	registry *roomsync.RoomRegistry) func(args ...interface{}) {
	return func(args ...interface{}) {
		data, ok := eventData(args)
		if !ok {
			client.Emit("error", gin.H{"message": "Missing room ID"})
			return
		}
		roomID := getString(data, "room_id")

		registry.WithRoom(roomID, func() {
			if _, err := socketio_utils.RequireCurrentTurn(db, client, roomID, playerID); err != nil {
				return
			}

			ts := registry.TurnState(roomID)
			if ts == nil || ts.Phase != game.PhaseOutcomeRecorded {
				client.Emit("error", gin.H{"message": "Turn is not finished"})
				return
			}

			registry.ClearTurnState(roomID)

			next, turnNumber, err := game.AdvanceTurn(db, roomID)
			if err != nil {
				log.Printf("[END-TURN-ERROR] Could not advance turn: %v", err)
				client.Emit("error", gin.H{"message": "Failed to end turn"})
				return
			}
			if next == "" {
				// Membership handling ends the game before this can happen
				log.Printf("[END-TURN-ERROR] No eligible next player in room %s", roomID)
				client.Emit("error", gin.H{"message": "No eligible next player"})
				return
			}

			sio.BroadcastToRoom(roomID, "turn_started", gin.H{
				"player_id":   next,
				"turn_number": turnNumber,
			})

			log.Printf("[END-TURN] Room %s advanced to player %s (turn %d)", roomID, next, turnNumber)
		})
	}
}
