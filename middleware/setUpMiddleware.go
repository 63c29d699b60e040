package middleware

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// SetUpMiddleware installs CORS and the cookie session store used by the
// admin surface.
func SetUpMiddleware(r *gin.Engine) {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "X-Admin-Key")
	r.Use(cors.New(corsConfig))

	key := os.Getenv("SESSION_KEY")
	if key == "" {
		key = "dev-session-key"
	}
	store := cookie.NewStore([]byte(key))
	r.Use(sessions.Sessions("pineapple_session", store))
}
