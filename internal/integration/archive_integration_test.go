package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"mines_backend/internal/domain"
	"mines_backend/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "internal", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := db.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

func connectDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)
	applyMigrations(t, db)
	return db
}

func TestRoomArchive_Insert_MarkClosed_GetByCode(t *testing.T) {
	db := connectDB(t)
	archive := repository.NewRoomArchive(db)

	rec := &domain.RoomRecord{
		RoomID:         uuid.New().String(),
		Code:           "123456",
		TimeoutMinutes: 5,
	}
	if err := archive.Insert(context.Background(), rec); err != nil {
		t.Fatalf("insert room: %v", err)
	}
	if rec.ID == 0 {
		t.Fatal("insert did not backfill the row id")
	}

	if err := archive.MarkClosed(context.Background(), rec.RoomID); err != nil {
		t.Fatalf("mark closed: %v", err)
	}

	got, err := archive.GetByCode(context.Background(), rec.Code)
	if err != nil {
		t.Fatalf("get by code: %v", err)
	}
	if got.RoomID != rec.RoomID {
		t.Errorf("room id: got %s want %s", got.RoomID, rec.RoomID)
	}
	if !got.Closed {
		t.Error("room should be marked closed")
	}
}

func TestGameArchive_Insert_GetByRoom(t *testing.T) {
	db := connectDB(t)
	games := repository.NewGameArchive(db)
	rooms := repository.NewRoomArchive(db)

	roomID := uuid.New().String()
	if err := rooms.Insert(context.Background(), &domain.RoomRecord{
		RoomID:         roomID,
		Code:           "654321",
		TimeoutMinutes: 5,
	}); err != nil {
		t.Fatalf("insert room: %v", err)
	}

	rec := &domain.GameRecord{
		GameID:     uuid.New().String(),
		RoomID:     &roomID,
		GridSize:   25,
		MinesCount: 3,
		BetAmount:  10,
		Multiplier: 1.23,
		WinAmount:  12.3,
		State:      "CASHED_OUT",
	}
	if err := games.Insert(context.Background(), rec); err != nil {
		t.Fatalf("insert game: %v", err)
	}

	got, err := games.GetByRoom(context.Background(), roomID, 10)
	if err != nil {
		t.Fatalf("get by room: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 game, got %d", len(got))
	}
	if got[0].GameID != rec.GameID {
		t.Errorf("game id: got %s want %s", got[0].GameID, rec.GameID)
	}
	if got[0].State != "CASHED_OUT" || got[0].WinAmount != 12.3 {
		t.Errorf("row mismatch: %+v", got[0])
	}
}
