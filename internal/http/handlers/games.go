package handlers

import (
	"net/http"
	"strconv"

	"mines_backend/internal/game"

	"github.com/gin-gonic/gin"
)

// StartGameRequest starts a game; grid_size 0 means the configured default.
type StartGameRequest struct {
	BetAmount float64 `json:"bet_amount" binding:"required,gt=0"`
	NumMines  int     `json:"num_mines" binding:"required,min=1"`
	GridSize  int     `json:"grid_size" binding:"omitempty,min=2"`
}

// RevealRequest names the cell to open. Pointer so cell 0 survives binding.
type RevealRequest struct {
	Cell *int `json:"cell" binding:"required"`
}

// StartGame starts a room-less game.
func (h *Handler) StartGame(c *gin.Context) {
	var req StartGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	snap, err := h.Games.StartGame(c.Request.Context(), req.BetAmount, req.NumMines, req.GridSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, snap)
}

// GetGame returns the session snapshot.
func (h *Handler) GetGame(c *gin.Context) {
	snap, err := h.Games.GetGame(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Reveal opens one cell of the addressed game.
func (h *Handler) Reveal(c *gin.Context) {
	var req RevealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	snap, err := h.Games.Reveal(c.Request.Context(), c.Param("id"), *req.Cell)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, snap)
}

// Cashout ends the addressed game at its current multiplier.
func (h *Handler) Cashout(c *gin.Context) {
	res, err := h.Games.Cashout(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GamesInfo returns the engine configuration and the multiplier curve for a
// mine count, so clients can show the full risk table up front.
func (h *Handler) GamesInfo(c *gin.Context) {
	cfg := h.Games.Config()

	numMines := game.MinMines
	if v, ok := c.GetQuery("num_mines"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > cfg.MaxMines {
			c.JSON(http.StatusBadRequest, gin.H{"error": "num_mines must be between 1 and max_mines"})
			return
		}
		numMines = n
	}

	c.JSON(http.StatusOK, gin.H{
		"grid_size":     cfg.GridSize,
		"max_grid_size": cfg.MaxGridSize,
		"house_edge":    cfg.HouseEdge,
		"min_bet":       cfg.MinBet,
		"max_bet":       cfg.MaxBet,
		"max_mines":     cfg.MaxMines,
		"num_mines":     numMines,
		"multipliers":   game.MultiplierTable(cfg.GridSize, numMines, cfg.HouseEdge),
	})
}
