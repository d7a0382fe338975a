package domain

import "time"

// CashoutResult is what a successful cashout returns to the caller.
type CashoutResult struct {
	GameID        string  `json:"game_id"`
	BetAmount     float64 `json:"bet_amount"`
	CashoutAmount float64 `json:"cashout_amount"`
	GameState     string  `json:"game_state"`
}

// GameRecord is the archive row written once a game reaches a terminal state.
// The live session stays in memory; this is history only.
type GameRecord struct {
	ID         int64     `db:"id" json:"id"`
	GameID     string    `db:"game_id" json:"game_id"`
	RoomID     *string   `db:"room_id" json:"room_id,omitempty"`
	GridSize   int       `db:"grid_size" json:"grid_size"`
	MinesCount int       `db:"mines_count" json:"mines_count"`
	BetAmount  float64   `db:"bet_amount" json:"bet_amount"`
	Multiplier float64   `db:"multiplier" json:"multiplier"`
	WinAmount  float64   `db:"win_amount" json:"win_amount"`
	State      string    `db:"state" json:"state"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
