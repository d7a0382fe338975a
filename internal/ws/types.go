package ws

// Event is the envelope broadcast to room subscribers. Type carries the
// service-level event name (game_started, game_finished, cashout,
// room_closed).
type Event struct {
	Type    string `json:"type"`
	RoomID  string `json:"room_id"`
	Payload any    `json:"payload,omitempty"`
}
