package game_constants

import "time"

// Room limits
const MaxRoomPlayers = 16
const MinPlayersToStart = 1

// Turn flow
const TurnHandSize = 2

// Kick votes
const KickVoteDuration = 60 * time.Second
const KickBanThreshold = 2

// Room join codes: 5 chars, no ambiguous characters (0/O, 1/I)
const RoomCodeLength = 5
const RoomCodeCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Card pools
const BaseExpansion = "core"

// A game only shows up in a player's history once it has this many turns
const MinTurnsForHistory = 3
