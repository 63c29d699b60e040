package handlers

import (
	"Pineapple/services/game"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// eventData extracts the payload object every command carries as its first
// argument.
func eventData(args []interface{}) (map[string]interface{}, bool) {
	if len(args) < 1 {
		return nil, false
	}
	data, ok := args[0].(map[string]interface{})
	return data, ok
}

func getString(data map[string]interface{}, key string) string {
	v, _ := data[key].(string)
	return v
}

// getInt handles the float64 that socket.io's JSON decoding produces for
// numbers.
func getInt(data map[string]interface{}, key string) (int, bool) {
	switch v := data[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}

func getStringSlice(data map[string]interface{}, key string) []string {
	raw, ok := data[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// emitGameError reports a request-local validation failure back to the single
// requesting connection. Unknown errors get a generic message so downstream
// I/O failures read as "the command did not happen".
func emitGameError(client *socket.Socket, err error, fallback string) {
	message := fallback
	switch {
	case errors.Is(err, game.ErrNotYourTurn):
		message = "Not your turn"
	case errors.Is(err, game.ErrInvalidSelection):
		message = "Invalid card selection"
	case errors.Is(err, game.ErrInsufficientCards):
		message = "Not enough cards in deck"
	case errors.Is(err, game.ErrEmptyPool):
		message = "No cards match the selected expansions"
	case errors.Is(err, game.ErrBanned):
		message = "You have been banned from this room."
	case errors.Is(err, game.ErrNameTaken):
		message = "That name is already taken. Choose another."
	case errors.Is(err, game.ErrVoteAlreadyInProgress):
		message = "A kick vote is already in progress"
	case errors.Is(err, game.ErrTargetNotInRoom):
		message = "That player is not in this room"
	case errors.Is(err, game.ErrRoomNotFound):
		message = "Room not found"
	case errors.Is(err, game.ErrRoomFull):
		message = "This room is full."
	case errors.Is(err, game.ErrGameAlreadyStarted):
		message = "Game already started"
	case errors.Is(err, game.ErrGameNotInProgress):
		message = "Game is not in progress"
	case errors.Is(err, game.ErrNotHost):
		message = "Only the host can do that"
	case errors.Is(err, game.ErrNoActivePlayers):
		message = "Need at least 1 player to start"
	}
	client.Emit("error", gin.H{"message": message})
}
