package routes

import (
	"Pineapple/controllers"
	"Pineapple/middleware"
	"Pineapple/services/redis"
	"Pineapple/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, redisClient *redis.RedisClient) {
	router.Use(utils.ErrorHandler())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	// Rooms
	api.POST("/rooms", controllers.CreateRoom(db))
	api.POST("/rooms/join", controllers.JoinRoom(db))
	api.GET("/rooms/:room_id", controllers.GetRoomInfo(db))
	api.PUT("/rooms/:room_id/expansions", controllers.UpdateRoomExpansions(db))
	api.GET("/rooms/code/:room_code/qr", controllers.GetRoomJoinQR(db))

	// Games
	api.GET("/games/:room_id/detail", controllers.GetGameDetail(db))

	// Players
	api.GET("/players/:player_id", controllers.GetPlayer(db))
	api.PUT("/players/:player_id", controllers.UpdatePlayer(db))
	api.GET("/players/:player_id/history", controllers.GetPlayerHistory(db))

	// Cards
	api.GET("/cards", controllers.ListCards(db))
	api.POST("/suggestions", controllers.CreateSuggestion(db))

	// Admin surface, behind a session (or shared key) gate
	api.POST("/admin/login", controllers.AdminLogin)

	admin := api.Group("/admin")
	admin.Use(middleware.AdminRequired)
	{
		admin.DELETE("/logout", controllers.AdminLogout)

		admin.GET("/cards", controllers.AdminListCards(db))
		admin.POST("/cards", controllers.AdminCreateCard(db))
		admin.PUT("/cards/:card_id", controllers.AdminUpdateCard(db))
		admin.DELETE("/cards/:card_id", controllers.AdminDeleteCard(db))

		admin.GET("/suggestions", controllers.AdminListSuggestions(db))
		admin.PUT("/suggestions/:suggestion_id", controllers.AdminReviewSuggestion(db))

		admin.GET("/analytics", controllers.AdminAnalytics(db))
	}
}
