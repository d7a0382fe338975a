package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"mines_backend/internal/domain"
	"mines_backend/internal/game"
	"mines_backend/internal/logger"
	"mines_backend/internal/repository"

	"github.com/google/uuid"
)

const (
	roomCodeSpace   = 1000000 // 6-digit codes
	roomCodeRetries = 10
)

// RoomService owns the room registry and each room's one-shot closure timer.
// Codes are unique among rooms that are still open; a closed room keeps its
// code until a new room claims it.
type RoomService struct {
	games     *GameService
	scheduler Scheduler
	archive   *repository.RoomArchive // nil disables archiving
	notifier  RoomNotifier            // nil disables live events

	mu     sync.RWMutex
	rooms  map[string]*game.Room // by id
	byCode map[string]*game.Room // latest room per code

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewRoomService wires the room registry to the session registry and the
// closure scheduler.
func NewRoomService(games *GameService, scheduler Scheduler, archive *repository.RoomArchive) *RoomService {
	if scheduler == nil {
		scheduler = NewTimerScheduler()
	}
	return &RoomService{
		games:     games,
		scheduler: scheduler,
		archive:   archive,
		rooms:     make(map[string]*game.Room),
		byCode:    make(map[string]*game.Room),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetNotifier wires the live event sink. Must be called before serving.
func (s *RoomService) SetNotifier(n RoomNotifier) { s.notifier = n }

// CreateRoom opens a room with a fresh code and schedules its closure after
// timeoutMinutes. A zero timeout closes the room as soon as the timer fires.
func (s *RoomService) CreateRoom(ctx context.Context, timeoutMinutes int) (game.RoomView, error) {
	if timeoutMinutes < 0 {
		return game.RoomView{}, fmt.Errorf("%w: timeout must not be negative", domain.ErrInvalidArgument)
	}

	s.mu.Lock()
	code, err := s.generateCodeLocked()
	if err != nil {
		s.mu.Unlock()
		return game.RoomView{}, err
	}
	room := game.NewRoom(uuid.New().String(), code, timeoutMinutes)
	s.rooms[room.ID()] = room
	s.byCode[code] = room
	s.mu.Unlock()

	s.recordRoom(room)
	roomsCreated.Inc()
	logger.Info("room created", "room_id", room.ID(), "code", code, "timeout_minutes", timeoutMinutes)

	roomID := room.ID()
	s.scheduler.ScheduleOnce(time.Duration(timeoutMinutes)*time.Minute, func() {
		s.CloseRoom(roomID)
	})

	return room.View(), nil
}

// generateCodeLocked draws 6-digit codes until one is free among open rooms,
// giving up after a bounded number of collisions. Caller holds s.mu.
func (s *RoomService) generateCodeLocked() (string, error) {
	for attempt := 0; attempt < roomCodeRetries; attempt++ {
		s.rngMu.Lock()
		code := fmt.Sprintf("%06d", s.rng.Intn(roomCodeSpace))
		s.rngMu.Unlock()

		if existing, ok := s.byCode[code]; !ok || existing.Closed() {
			return code, nil
		}
	}
	return "", fmt.Errorf("%w: gave up after %d attempts", domain.ErrCodesExhausted, roomCodeRetries)
}

// JoinRoom adds the user to the room behind the code. Joining twice is a
// no-op; a closed room rejects the join.
func (s *RoomService) JoinRoom(code, userID string) (game.RoomView, error) {
	room, err := s.byCodeLookup(code)
	if err != nil {
		return game.RoomView{}, err
	}
	if err := room.Join(userID); err != nil {
		return game.RoomView{}, err
	}
	logger.Info("user joined room", "code", code, "user_id", userID)
	return room.View(), nil
}

// StartGameInRoom creates a session inside the room. The attach happens
// under the room's own lock, so a start racing the closure timer either
// commits while the room is still open or fails whole with an invalid state
// error - never a game attached to a closed room.
func (s *RoomService) StartGameInRoom(ctx context.Context, code string, betAmount float64, numMines, gridSize int) (game.Snapshot, error) {
	room, err := s.byCodeLookup(code)
	if err != nil {
		return game.Snapshot{}, err
	}

	sess, err := s.games.NewSessionForRoom(room.ID(), betAmount, numMines, gridSize)
	if err != nil {
		return game.Snapshot{}, err
	}
	if err := room.Attach(sess); err != nil {
		// Room closed between lookup and attach; the session was never
		// registered, so it simply never existed.
		return game.Snapshot{}, err
	}
	s.games.Register(sess)

	snap := sess.Snapshot()
	if s.notifier != nil {
		s.notifier.NotifyRoom(room.ID(), EventGameStarted, snap)
	}
	logger.Info("game started in room", "code", code, "game_id", sess.ID())

	return snap, nil
}

// CloseRoom flips the room to closed. Timer-invoked, but also safe to call
// explicitly; closing twice is a no-op.
func (s *RoomService) CloseRoom(roomID string) {
	s.mu.RLock()
	room, ok := s.rooms[roomID]
	s.mu.RUnlock()
	if !ok {
		return
	}

	if !room.Close() {
		return
	}

	roomsClosed.Inc()
	logger.Info("room closed", "room_id", roomID, "code", room.Code())

	if s.archive != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.archive.MarkClosed(ctx, roomID); err != nil {
				logger.Error("failed to archive room closure", "room_id", roomID, "error", err)
			}
		}()
	}
	if s.notifier != nil {
		s.notifier.NotifyRoom(roomID, EventRoomClosed, room.View())
	}
}

// GetRoom returns a view of the room behind the code, open or closed.
func (s *RoomService) GetRoom(code string) (game.RoomView, error) {
	room, err := s.byCodeLookup(code)
	if err != nil {
		return game.RoomView{}, err
	}
	return room.View(), nil
}

// GameCashouts lists bet times current multiplier for every game ever
// started in the room, sorted by amount descending.
func (s *RoomService) GameCashouts(code string) ([]domain.RoomCashout, error) {
	room, err := s.byCodeLookup(code)
	if err != nil {
		return nil, err
	}
	return room.Cashouts()
}

func (s *RoomService) byCodeLookup(code string) (*game.Room, error) {
	s.mu.RLock()
	room, ok := s.byCode[code]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: room %s", domain.ErrNotFound, code)
	}
	return room, nil
}

func (s *RoomService) recordRoom(room *game.Room) {
	if s.archive == nil {
		return
	}
	rec := room.Record()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.archive.Insert(ctx, rec); err != nil {
			logger.Error("failed to archive room", "room_id", rec.RoomID, "error", err)
		}
	}()
}

// OpenRoomsCount reports how many registered rooms are still open.
func (s *RoomService) OpenRoomsCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, room := range s.rooms {
		if !room.Closed() {
			n++
		}
	}
	return n
}
