package config

import (
	"os"
	"strconv"

	"mines_backend/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Game engine
	GridSize    int
	MaxGridSize int
	HouseEdge   float64
	MinBet      float64
	MaxBet      float64
	MaxMines    int

	// Rate limiting
	APIRateLimit         int
	APIRateWindowSeconds int

	LogLevel string
	LogJSON  bool
}

// Load reads configuration from the environment, with a .env file as
// fallback. DATABASE_URL is optional: without it the server runs with the
// game archive disabled.
func Load() *Config {
	_ = godotenv.Load()

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	gridSize := 25 // 5x5 board
	if v := os.Getenv("GRID_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 1 {
			gridSize = n
		}
	}

	houseEdge := 0.97
	if v := os.Getenv("HOUSE_EDGE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 && f <= 1 {
			houseEdge = f
		} else {
			logger.Warn("ignoring invalid HOUSE_EDGE", "value", v)
		}
	}

	maxGridSize := 100
	if v := os.Getenv("MAX_GRID_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= gridSize {
			maxGridSize = n
		}
	}
	if maxGridSize < gridSize {
		maxGridSize = gridSize
	}

	maxMines := gridSize - 1
	if v := os.Getenv("MAX_MINES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n < gridSize {
			maxMines = n
		}
	}

	minBet := 1.0
	if v := os.Getenv("MIN_BET"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			minBet = f
		}
	}

	maxBet := 100000.0
	if v := os.Getenv("MAX_BET"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			maxBet = f
		}
	}

	apiRateLimit := 60
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateLimit = n
		}
	}

	apiRateWindow := 60
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateWindow = n
		}
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			redisDB = n
		}
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return &Config{
		AppPort:              port,
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		RedisAddr:            os.Getenv("REDIS_ADDR"),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		RedisDB:              redisDB,
		GridSize:             gridSize,
		MaxGridSize:          maxGridSize,
		HouseEdge:            houseEdge,
		MinBet:               minBet,
		MaxBet:               maxBet,
		MaxMines:             maxMines,
		APIRateLimit:         apiRateLimit,
		APIRateWindowSeconds: apiRateWindow,
		LogLevel:             logLevel,
		LogJSON:              os.Getenv("LOG_JSON") == "true",
	}
}
