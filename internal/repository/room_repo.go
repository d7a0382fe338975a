package repository

import (
	"context"

	"mines_backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RoomArchive stores room lifecycle records.
type RoomArchive struct {
	db *pgxpool.Pool
}

func NewRoomArchive(db *pgxpool.Pool) *RoomArchive {
	return &RoomArchive{db: db}
}

// Insert writes the row for a freshly created room.
func (r *RoomArchive) Insert(ctx context.Context, rec *domain.RoomRecord) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO rooms (room_id, code, timeout_minutes, closed)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		rec.RoomID,
		rec.Code,
		rec.TimeoutMinutes,
		rec.Closed,
	).Scan(&rec.ID)
}

// MarkClosed flags the room row as closed.
func (r *RoomArchive) MarkClosed(ctx context.Context, roomID string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE rooms SET closed = TRUE WHERE room_id = $1`,
		roomID,
	)
	return err
}

// GetByCode returns the newest archived room with the given code.
func (r *RoomArchive) GetByCode(ctx context.Context, code string) (*domain.RoomRecord, error) {
	rec := &domain.RoomRecord{}
	err := r.db.QueryRow(ctx,
		`SELECT id, room_id, code, timeout_minutes, closed, created_at
		 FROM rooms
		 WHERE code = $1
		 ORDER BY created_at DESC
		 LIMIT 1`,
		code,
	).Scan(&rec.ID, &rec.RoomID, &rec.Code, &rec.TimeoutMinutes, &rec.Closed, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	return rec, nil
}
