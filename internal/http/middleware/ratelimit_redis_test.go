package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"mines_backend/internal/game"
	"mines_backend/internal/http/handlers"
	"mines_backend/internal/service"
	"mines_backend/internal/ws"

	"github.com/gin-gonic/gin"
)

// Integration-style test: runs only if REDIS_ADDR env is set. The limiter
// fronts a real game start route, so the allowed requests must actually
// create games and the overflow request must be rejected before reaching
// the handler.
func TestRedisRateLimit_GameStarts(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set; skipping integration test")
	}
	db := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			db = n
		}
	}

	InitRedisRateLimiter(addr, os.Getenv("REDIS_PASSWORD"), db)

	games := service.NewGameService(service.GameConfig{}, game.NewMineFieldSeeded(1), nil)
	rooms := service.NewRoomService(games, nil, nil)
	h := handlers.NewHandler(games, rooms, ws.NewHub())

	const maxRequests = 2
	r := gin.New()
	r.POST("/api/v1/games", RedisRateLimit(maxRequests, 2*time.Second), h.StartGame)

	srv := httptest.NewServer(r)
	defer srv.Close()

	const body = `{"bet_amount": 10, "num_mines": 3}`

	for i := 0; i < maxRequests; i++ {
		res, err := http.Post(srv.URL+"/api/v1/games", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		res.Body.Close()
		if res.StatusCode != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, res.StatusCode)
		}
	}
	if got := games.ActiveGamesCount(); got != maxRequests {
		t.Errorf("expected %d games started, got %d", maxRequests, got)
	}

	res, err := http.Post(srv.URL+"/api/v1/games", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", res.StatusCode)
	}
	if got := games.ActiveGamesCount(); got != maxRequests {
		t.Errorf("blocked request still created a game: %d", got)
	}
}
