package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"mines_backend/internal/domain"
	"mines_backend/internal/game"
	"mines_backend/internal/logger"
	"mines_backend/internal/repository"

	"github.com/google/uuid"
)

const (
	// Terminal sessions are kept around for this long so clients can still
	// fetch final boards and rooms can aggregate them.
	finishedRetention = time.Hour
	sweepInterval     = 5 * time.Minute
)

// GameConfig holds the knobs of the game engine.
type GameConfig struct {
	GridSize    int
	MaxGridSize int
	HouseEdge   float64
	MinBet      float64
	MaxBet      float64
	MaxMines    int
}

// RoomNotifier receives live room events for fan-out to subscribed clients.
type RoomNotifier interface {
	NotifyRoom(roomID, event string, payload any)
}

// Room event names broadcast through RoomNotifier.
const (
	EventGameStarted  = "game_started"
	EventGameFinished = "game_finished"
	EventCashout      = "cashout"
	EventRoomClosed   = "room_closed"
)

// GameService owns the live session registry: every in-flight game keyed by
// id. Sessions guard themselves; the registry lock only protects the map.
type GameService struct {
	cfg      GameConfig
	field    *game.MineField
	archive  *repository.GameArchive // nil disables archiving
	notifier RoomNotifier            // nil disables live events

	mu       sync.RWMutex
	sessions map[string]*game.Session
}

// NewGameService creates the session registry and starts the background
// sweep of old finished games.
func NewGameService(cfg GameConfig, field *game.MineField, archive *repository.GameArchive) *GameService {
	if cfg.GridSize <= 0 {
		cfg.GridSize = game.DefaultGridSize
	}
	if cfg.HouseEdge <= 0 || cfg.HouseEdge > 1 {
		cfg.HouseEdge = game.DefaultHouseEdge
	}
	if cfg.MaxGridSize <= 0 {
		cfg.MaxGridSize = game.DefaultMaxGridSize
	}
	if cfg.MaxGridSize < cfg.GridSize {
		cfg.MaxGridSize = cfg.GridSize
	}
	if cfg.MaxMines <= 0 || cfg.MaxMines >= cfg.GridSize {
		cfg.MaxMines = cfg.GridSize - 1
	}
	if field == nil {
		field = game.NewMineField()
	}

	s := &GameService{
		cfg:      cfg,
		field:    field,
		archive:  archive,
		sessions: make(map[string]*game.Session),
	}

	go s.sweepFinished()

	return s
}

// SetNotifier wires the live event sink. Must be called before serving.
func (s *GameService) SetNotifier(n RoomNotifier) { s.notifier = n }

// Config returns the engine configuration.
func (s *GameService) Config() GameConfig { return s.cfg }

// StartGame starts a room-less game and registers it for moves and cashout.
// A gridSize of 0 means the configured default.
func (s *GameService) StartGame(ctx context.Context, betAmount float64, numMines, gridSize int) (game.Snapshot, error) {
	sess, err := s.NewSessionForRoom("", betAmount, numMines, gridSize)
	if err != nil {
		return game.Snapshot{}, err
	}
	s.Register(sess)

	gamesStarted.WithLabelValues("solo").Inc()
	logger.Info("game started", "game_id", sess.ID(), "bet", betAmount, "mines", numMines)

	return sess.Snapshot(), nil
}

// NewSessionForRoom builds a session without registering it. Room starts use
// this so the session becomes visible only after the room accepted it; call
// Register once it did.
func (s *GameService) NewSessionForRoom(roomID string, betAmount float64, numMines, gridSize int) (*game.Session, error) {
	if gridSize == 0 {
		gridSize = s.cfg.GridSize
	}
	// Bound caller-supplied grids: Generate allocates O(gridSize).
	if gridSize < 2 || gridSize > s.cfg.MaxGridSize {
		return nil, fmt.Errorf("%w: grid size must be between 2 and %d", domain.ErrInvalidArgument, s.cfg.MaxGridSize)
	}
	if err := s.validateBet(betAmount); err != nil {
		return nil, err
	}
	if numMines > s.cfg.MaxMines {
		return nil, fmt.Errorf("%w: mines count exceeds maximum %d", domain.ErrInvalidArgument, s.cfg.MaxMines)
	}

	mines, err := s.field.Generate(gridSize, numMines)
	if err != nil {
		return nil, err
	}

	return game.NewSession(uuid.New().String(), roomID, betAmount, gridSize, mines, s.cfg.HouseEdge)
}

// Register adds a session to the reveal/cashout index.
func (s *GameService) Register(sess *game.Session) {
	s.mu.Lock()
	s.sessions[sess.ID()] = sess
	s.mu.Unlock()

	if sess.RoomID() != "" {
		gamesStarted.WithLabelValues("room").Inc()
	}
}

// GetGame returns a snapshot of the addressed session.
func (s *GameService) GetGame(gameID string) (game.Snapshot, error) {
	sess, err := s.lookup(gameID)
	if err != nil {
		return game.Snapshot{}, err
	}
	return sess.Snapshot(), nil
}

// Reveal opens a cell in the addressed session.
func (s *GameService) Reveal(ctx context.Context, gameID string, cell int) (game.Snapshot, error) {
	sess, err := s.lookup(gameID)
	if err != nil {
		return game.Snapshot{}, err
	}

	snap, err := sess.Reveal(cell)
	if err != nil {
		return game.Snapshot{}, err
	}

	if snap.State == game.StateLost {
		minesHit.Inc()
	} else {
		cellsRevealed.Inc()
	}

	if snap.State.Terminal() {
		s.recordFinished(sess)
		s.notify(sess, EventGameFinished, snap)
	}

	return snap, nil
}

// Cashout consumes the addressed session at its current multiplier.
func (s *GameService) Cashout(ctx context.Context, gameID string) (domain.CashoutResult, error) {
	sess, err := s.lookup(gameID)
	if err != nil {
		return domain.CashoutResult{}, err
	}

	res, err := sess.Cashout()
	if err != nil {
		return domain.CashoutResult{}, err
	}

	cashouts.Inc()
	logger.Info("game cashed out", "game_id", gameID, "amount", res.CashoutAmount)

	s.recordFinished(sess)
	s.notify(sess, EventCashout, res)

	return res, nil
}

func (s *GameService) lookup(gameID string) (*game.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[gameID]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: game %s", domain.ErrNotFound, gameID)
	}
	return sess, nil
}

func (s *GameService) validateBet(bet float64) error {
	if bet <= 0 {
		return fmt.Errorf("%w: bet must be positive", domain.ErrInvalidArgument)
	}
	if s.cfg.MinBet > 0 && bet < s.cfg.MinBet {
		return fmt.Errorf("%w: bet below minimum %v", domain.ErrInvalidArgument, s.cfg.MinBet)
	}
	if s.cfg.MaxBet > 0 && bet > s.cfg.MaxBet {
		return fmt.Errorf("%w: bet exceeds maximum %v", domain.ErrInvalidArgument, s.cfg.MaxBet)
	}
	return nil
}

// recordFinished writes the archive row off the request path.
func (s *GameService) recordFinished(sess *game.Session) {
	if s.archive == nil {
		return
	}
	rec := sess.Record()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.archive.Insert(ctx, rec); err != nil {
			logger.Error("failed to archive game", "game_id", rec.GameID, "error", err)
		}
	}()
}

func (s *GameService) notify(sess *game.Session, event string, payload any) {
	if s.notifier == nil || sess.RoomID() == "" {
		return
	}
	s.notifier.NotifyRoom(sess.RoomID(), event, payload)
}

// sweepFinished drops terminal sessions past the retention window. Room
// cashout listings keep working: rooms hold their own session references.
func (s *GameService) sweepFinished() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		s.mu.Lock()
		for id, sess := range s.sessions {
			snap := sess.Snapshot()
			if snap.FinishedAt != nil && now.Sub(*snap.FinishedAt) > finishedRetention {
				delete(s.sessions, id)
			}
		}
		s.mu.Unlock()
	}
}

// ActiveGamesCount reports registry size, for readiness output.
func (s *GameService) ActiveGamesCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
