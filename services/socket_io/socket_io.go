package socket_io

import (
	"Pineapple/services/redis"
	"Pineapple/services/socket_io/handlers"
	socketio_types "Pineapple/services/socket_io/types"
	socketio_utils "Pineapple/services/socket_io/utils"
	roomsync "Pineapple/sync"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

type MySocketServer socketio_types.SocketServer

// Start mounts the socket.io server on the gin router and registers the
// realtime command handlers. Each connection authenticates with the bare
// player_id from its handshake; every room-scoped command is serialized
// through the shared room registry.
func (sio *MySocketServer) Start(router *gin.Engine, db *gorm.DB,
	redisClient *redis.RedisClient, registry *roomsync.RoomRegistry) {

	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	// NOTE: higher ping interval and timeout to 1) reduce network load and 2) support slower networks
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	c.SetMaxHttpBufferSize(1000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})

	sio.PlayerConnections = make(map[string]*socket.Socket)

	sio.Sio_server = socket.NewServer(nil, nil)
	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)

		success, playerID := socketio_utils.VerifyPlayerConnection(client)
		if !success {
			return
		}

		(*socketio_types.SocketServer)(sio).AddConnection(playerID, client)
		log.Printf("Socket connected: %s (player %s)", client.Id(), playerID)

		server := (*socketio_types.SocketServer)(sio)

		// Membership
		client.On("join_room", handlers.HandleJoinRoom(redisClient, client, db, playerID, server, registry))
		client.On("leave_room", handlers.HandleLeaveRoom(redisClient, client, db, playerID, server, registry))
		client.On("disconnecting", handlers.HandleDisconnecting(redisClient, client, db, playerID, server, registry))

		// Lobby
		client.On("start_game", handlers.HandleStartGame(redisClient, client, db, playerID, server, registry))
		client.On("update_expansions", handlers.HandleUpdateExpansions(redisClient, client, db, playerID, server, registry))

		// Turn flow
		client.On("draw_cards", handlers.HandleDrawCards(redisClient, client, db, playerID, server, registry))
		client.On("select_card", handlers.HandleSelectCard(redisClient, client, db, playerID, server, registry))
		client.On("complete_turn", handlers.HandleCompleteTurn(redisClient, client, db, playerID, server, registry))
		client.On("end_turn", handlers.HandleEndTurn(redisClient, client, db, playerID, server, registry))

		// Kick votes
		client.On("initiate_kick", handlers.HandleInitiateKick(redisClient, client, db, playerID, server, registry))
		client.On("cast_kick_vote", handlers.HandleCastKickVote(redisClient, client, db, playerID, server, registry))
	})

	router.POST("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))
	router.GET("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))

	log.Println("Socket server started")
}

// Close shuts the socket.io server down.
func (sio *MySocketServer) Close() {
	if sio.Sio_server != nil {
		sio.Sio_server.Close(nil)
	}
}
