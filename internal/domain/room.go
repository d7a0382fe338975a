package domain

import "time"

// RoomCashout is one entry of the aggregate room cashout listing,
// ordered by amount descending.
type RoomCashout struct {
	GameID string  `json:"game_id"`
	Amount float64 `json:"amount"`
}

// RoomRecord is the archive row for a room. Written on creation and
// updated when the room closes.
type RoomRecord struct {
	ID             int64     `db:"id" json:"id"`
	RoomID         string    `db:"room_id" json:"room_id"`
	Code           string    `db:"code" json:"code"`
	TimeoutMinutes int       `db:"timeout_minutes" json:"timeout_minutes"`
	Closed         bool      `db:"closed" json:"closed"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
