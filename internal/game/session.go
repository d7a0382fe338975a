package game

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"mines_backend/internal/domain"
)

// State of a session. Every state other than IN_PROGRESS is absorbing.
type State string

const (
	StateInProgress State = "IN_PROGRESS"
	StateWon        State = "WON"
	StateLost       State = "LOST"
	StateCashedOut  State = "CASHED_OUT"
)

// Terminal reports whether the state can no longer change.
func (s State) Terminal() bool { return s != StateInProgress }

// Session is a single mines game: a bet, a hidden mine layout and the set of
// cells revealed so far. Every mutation goes through the per-session lock, so
// concurrent Reveal and Cashout calls on the same session observe a single
// total order and exactly one of two racing cashouts wins.
type Session struct {
	id         string
	roomID     string // empty for room-less games
	betAmount  float64
	gridSize   int
	houseEdge  float64
	mines      map[int]bool
	minesCount int
	revealed   []int
	state      State
	multiplier float64
	createdAt  time.Time
	finishedAt *time.Time

	mu sync.RWMutex
}

// Snapshot is a consistent point-in-time view of a session, safe to hand to
// callers. Mine positions stay hidden until the session is terminal.
type Snapshot struct {
	ID             string     `json:"id"`
	RoomID         string     `json:"room_id,omitempty"`
	BetAmount      float64    `json:"bet_amount"`
	GridSize       int        `json:"grid_size"`
	MinesCount     int        `json:"mines_count"`
	Mines          []int      `json:"mines,omitempty"`
	Revealed       []int      `json:"revealed"`
	State          State      `json:"state"`
	Multiplier     float64    `json:"multiplier"`
	NextMultiplier float64    `json:"next_multiplier"`
	CreatedAt      time.Time  `json:"created_at"`
	FinishedAt     *time.Time `json:"finished_at,omitempty"`
}

// NewSession constructs an in-progress session over the given mine layout.
// The layout comes from MineField.Generate; callers own id uniqueness.
func NewSession(id, roomID string, betAmount float64, gridSize int, mines []int, houseEdge float64) (*Session, error) {
	if betAmount <= 0 {
		return nil, fmt.Errorf("%w: bet must be positive", domain.ErrInvalidArgument)
	}
	if len(mines) >= gridSize {
		return nil, fmt.Errorf("%w: mines count must be below grid size", domain.ErrInvalidArgument)
	}

	mineSet := make(map[int]bool, len(mines))
	for _, m := range mines {
		if m < 0 || m >= gridSize {
			return nil, fmt.Errorf("%w: mine cell %d out of range", domain.ErrInvalidArgument, m)
		}
		mineSet[m] = true
	}
	if len(mineSet) != len(mines) {
		return nil, fmt.Errorf("%w: duplicate mine cells", domain.ErrInvalidArgument)
	}

	return &Session{
		id:         id,
		roomID:     roomID,
		betAmount:  betAmount,
		gridSize:   gridSize,
		houseEdge:  houseEdge,
		mines:      mineSet,
		minesCount: len(mineSet),
		revealed:   []int{},
		state:      StateInProgress,
		multiplier: 1.0,
		createdAt:  time.Now(),
	}, nil
}

// ID returns the session's immutable identifier.
func (s *Session) ID() string { return s.id }

// RoomID returns the owning room id, or "" for room-less games.
func (s *Session) RoomID() string { return s.roomID }

// CreatedAt returns the creation timestamp.
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// Reveal opens one cell. A mine ends the game as LOST with the multiplier
// frozen at its last value; a safe cell bumps the multiplier, and opening the
// last safe cell wins the game.
func (s *Session) Reveal(cell int) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return Snapshot{}, fmt.Errorf("%w: game is not in progress", domain.ErrInvalidState)
	}
	if cell < 0 || cell >= s.gridSize {
		return Snapshot{}, fmt.Errorf("%w: cell %d out of range", domain.ErrInvalidMove, cell)
	}
	for _, c := range s.revealed {
		if c == cell {
			return Snapshot{}, fmt.Errorf("%w: cell %d already revealed", domain.ErrInvalidMove, cell)
		}
	}

	if s.mines[cell] {
		s.finish(StateLost)
		return s.snapshotLocked(), nil
	}

	safeCells := s.gridSize - s.minesCount
	if len(s.revealed)+1 > safeCells {
		return Snapshot{}, fmt.Errorf("%w: revealed cells exceed %d", domain.ErrInvariant, safeCells)
	}

	s.revealed = append(s.revealed, cell)
	s.multiplier = MultiplierFor(s.gridSize, s.minesCount, len(s.revealed), s.houseEdge)

	if len(s.revealed) == safeCells {
		s.finish(StateWon)
	}

	return s.snapshotLocked(), nil
}

// Cashout ends the game at the current multiplier. It is consumed exactly
// once: any later call fails with an invalid state error, never a silent
// no-op, so callers can tell "already done" from "succeeded".
func (s *Session) Cashout() (domain.CashoutResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return domain.CashoutResult{}, fmt.Errorf("%w: game is not in progress", domain.ErrInvalidState)
	}

	amount := s.betAmount * s.multiplier
	s.finish(StateCashedOut)

	return domain.CashoutResult{
		GameID:        s.id,
		BetAmount:     s.betAmount,
		CashoutAmount: amount,
		GameState:     string(StateCashedOut),
	}, nil
}

func (s *Session) finish(state State) {
	s.state = state
	now := time.Now()
	s.finishedAt = &now
}

// CurrentValue returns bet times the current multiplier, regardless of state.
// Lost games keep reporting their last pre-explosion value; the room cashout
// listing deliberately preserves that behavior.
func (s *Session) CurrentValue() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.betAmount * s.multiplier
}

// Terminal reports whether the session reached an absorbing state.
func (s *Session) Terminal() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Terminal()
}

// Snapshot returns a consistent view of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		ID:             s.id,
		RoomID:         s.roomID,
		BetAmount:      s.betAmount,
		GridSize:       s.gridSize,
		MinesCount:     s.minesCount,
		Revealed:       append([]int{}, s.revealed...),
		State:          s.state,
		Multiplier:     s.multiplier,
		NextMultiplier: MultiplierFor(s.gridSize, s.minesCount, len(s.revealed)+1, s.houseEdge),
		CreatedAt:      s.createdAt,
		FinishedAt:     s.finishedAt,
	}

	// Only reveal mines once the game is over; sorted, so repeated reads of
	// the same finished game return identical output.
	if s.state.Terminal() {
		mines := make([]int, 0, s.minesCount)
		for m := range s.mines {
			mines = append(mines, m)
		}
		sort.Ints(mines)
		snap.Mines = mines
	}

	return snap
}

// Record converts the session into its archive row.
func (s *Session) Record() *domain.GameRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec := &domain.GameRecord{
		GameID:     s.id,
		GridSize:   s.gridSize,
		MinesCount: s.minesCount,
		BetAmount:  s.betAmount,
		Multiplier: s.multiplier,
		State:      string(s.state),
		CreatedAt:  s.createdAt,
	}
	if s.roomID != "" {
		roomID := s.roomID
		rec.RoomID = &roomID
	}
	if s.state == StateCashedOut || s.state == StateWon {
		rec.WinAmount = s.betAmount * s.multiplier
	}
	return rec
}
