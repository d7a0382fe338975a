package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CreateRoomRequest configures the auto-close countdown. Pointer so an
// explicit zero (close on the next timer tick) survives binding.
type CreateRoomRequest struct {
	TimeoutMinutes *int `json:"timeout_minutes" binding:"required,min=0"`
}

type JoinRoomRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// CreateRoom opens a room and starts its closure countdown.
func (h *Handler) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	view, err := h.Rooms.CreateRoom(c.Request.Context(), *req.TimeoutMinutes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// GetRoom returns the room behind a code, open or closed.
func (h *Handler) GetRoom(c *gin.Context) {
	view, err := h.Rooms.GetRoom(c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// JoinRoom adds a user to an open room; joining twice is a no-op.
func (h *Handler) JoinRoom(c *gin.Context) {
	var req JoinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	view, err := h.Rooms.JoinRoom(c.Param("code"), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// StartGameInRoom starts a game inside an open room.
func (h *Handler) StartGameInRoom(c *gin.Context) {
	var req StartGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	snap, err := h.Rooms.StartGameInRoom(c.Request.Context(), c.Param("code"), req.BetAmount, req.NumMines, req.GridSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, snap)
}

// RoomCashouts lists every game's current value, highest first.
func (h *Handler) RoomCashouts(c *gin.Context) {
	cashouts, err := h.Rooms.GameCashouts(c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cashouts": cashouts})
}
