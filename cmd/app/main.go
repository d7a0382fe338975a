package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mines_backend/internal/config"
	"mines_backend/internal/db"
	"mines_backend/internal/game"
	httpServer "mines_backend/internal/http"
	"mines_backend/internal/http/handlers"
	"mines_backend/internal/http/middleware"
	"mines_backend/internal/logger"
	"mines_backend/internal/repository"
	"mines_backend/internal/service"
	"mines_backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var version = "dev"

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	var pool *pgxpool.Pool
	var gameArchive *repository.GameArchive
	var roomArchive *repository.RoomArchive
	if cfg.DatabaseURL != "" {
		pool = db.Connect(cfg.DatabaseURL)
		defer pool.Close()
		gameArchive = repository.NewGameArchive(pool)
		roomArchive = repository.NewRoomArchive(pool)
	} else {
		logger.Warn("DATABASE_URL not set, archive disabled")
	}

	games := service.NewGameService(service.GameConfig{
		GridSize:    cfg.GridSize,
		MaxGridSize: cfg.MaxGridSize,
		HouseEdge:   cfg.HouseEdge,
		MinBet:      cfg.MinBet,
		MaxBet:      cfg.MaxBet,
		MaxMines:    cfg.MaxMines,
	}, game.NewMineField(), gameArchive)
	rooms := service.NewRoomService(games, service.NewTimerScheduler(), roomArchive)

	hub := ws.NewHub()
	games.SetNotifier(hub)
	rooms.SetNotifier(hub)

	r := gin.Default()

	// CORS for production (frontend on different domain)
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	middleware.InitRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := handlers.NewHandler(games, rooms, hub)
	health := handlers.NewHealthHandler(pool, games, rooms, version)
	httpServer.RegisterRoutes(r, h, health, cfg.APIRateLimit, time.Duration(cfg.APIRateWindowSeconds)*time.Second)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
