package repository

import (
	"context"

	"mines_backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// GameArchive stores terminal game records.
type GameArchive struct {
	db *pgxpool.Pool
}

func NewGameArchive(db *pgxpool.Pool) *GameArchive {
	return &GameArchive{db: db}
}

// Insert writes one finished game row.
func (r *GameArchive) Insert(ctx context.Context, rec *domain.GameRecord) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO games (game_id, room_id, grid_size, mines_count, bet_amount, multiplier, win_amount, state)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		rec.GameID,
		rec.RoomID,
		rec.GridSize,
		rec.MinesCount,
		rec.BetAmount,
		rec.Multiplier,
		rec.WinAmount,
		rec.State,
	).Scan(&rec.ID)
}

// GetByRoom returns the archived games of a room, newest first.
func (r *GameArchive) GetByRoom(ctx context.Context, roomID string, limit int) ([]*domain.GameRecord, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, game_id, room_id, grid_size, mines_count, bet_amount, multiplier, win_amount, state, created_at
		 FROM games
		 WHERE room_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		roomID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.GameRecord
	for rows.Next() {
		rec := &domain.GameRecord{}
		if err := rows.Scan(
			&rec.ID,
			&rec.GameID,
			&rec.RoomID,
			&rec.GridSize,
			&rec.MinesCount,
			&rec.BetAmount,
			&rec.Multiplier,
			&rec.WinAmount,
			&rec.State,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, rows.Err()
}
