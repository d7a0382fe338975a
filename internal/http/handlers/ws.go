package handlers

import (
	"net/http"

	"mines_backend/internal/logger"
	"mines_backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// RoomFeed upgrades to a websocket and streams the room's live events
// (game_started, game_finished, cashout, room_closed).
func (h *Handler) RoomFeed(c *gin.Context) {
	view, err := h.Rooms.GetRoom(c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("ws upgrade failed", "code", view.Code, "error", err)
		return
	}

	client := ws.NewClient(view.ID, conn, h.Hub)
	client.Run()
}
