package http

import (
	"time"

	"mines_backend/internal/http/handlers"
	"mines_backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the game API, the room feed and the health probes.
func RegisterRoutes(r *gin.Engine, h *handlers.Handler, health *handlers.HealthHandler, apiRateLimit int, apiRateWindow time.Duration) {
	// Health checks (no rate limiting)
	r.GET("/health", health.Health)
	r.GET("/healthz", health.Liveness)
	r.GET("/readyz", health.Readiness)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(apiRateLimit, apiRateWindow))
	{
		v1.GET("/games/info", h.GamesInfo)
		v1.POST("/games", h.StartGame)
		v1.GET("/games/:id", h.GetGame)
		v1.POST("/games/:id/reveal", h.Reveal)
		v1.POST("/games/:id/cashout", h.Cashout)

		v1.POST("/rooms", h.CreateRoom)
		v1.GET("/rooms/:code", h.GetRoom)
		v1.POST("/rooms/:code/join", h.JoinRoom)
		v1.POST("/rooms/:code/games", h.StartGameInRoom)
		v1.GET("/rooms/:code/cashouts", h.RoomCashouts)
	}

	// Live room event feed
	r.GET("/ws/rooms/:code", h.RoomFeed)
}
