package handlers

import (
	"errors"
	"net/http"

	"mines_backend/internal/domain"
	"mines_backend/internal/service"
	"mines_backend/internal/ws"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Games *service.GameService
	Rooms *service.RoomService
	Hub   *ws.Hub
}

func NewHandler(games *service.GameService, rooms *service.RoomService, hub *ws.Hub) *Handler {
	return &Handler{
		Games: games,
		Rooms: rooms,
		Hub:   hub,
	}
}

// respondError maps the domain error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidArgument), errors.Is(err, domain.ErrInvalidMove):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrNoGames):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidState):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrCodesExhausted):
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
