package game

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"mines_backend/internal/domain"
)

// Room groups sessions behind a shareable code and stops accepting joins and
// new games once closed. One lock guards both the closed flag and the games
// list, so a closure racing a game start can never attach a game to a room
// that is already closed.
type Room struct {
	id             string
	code           string
	timeoutMinutes int
	createdAt      time.Time

	mu      sync.RWMutex
	closed  bool
	members []string // opaque external user ids
	games   []*Session
}

// RoomView is a point-in-time view of a room.
type RoomView struct {
	ID             string    `json:"id"`
	Code           string    `json:"code"`
	TimeoutMinutes int       `json:"timeout_minutes"`
	Closed         bool      `json:"closed"`
	Members        []string  `json:"members"`
	Games          []string  `json:"games"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewRoom creates an open room. Scheduling the closure timer is the room
// service's job.
func NewRoom(id, code string, timeoutMinutes int) *Room {
	return &Room{
		id:             id,
		code:           code,
		timeoutMinutes: timeoutMinutes,
		createdAt:      time.Now(),
		members:        []string{},
		games:          []*Session{},
	}
}

// ID returns the room's immutable identifier.
func (r *Room) ID() string { return r.id }

// Code returns the human-shareable room code.
func (r *Room) Code() string { return r.code }

// TimeoutMinutes returns the configured auto-close delay.
func (r *Room) TimeoutMinutes() int { return r.timeoutMinutes }

// Join adds the user to the room. Joining twice is a no-op; joining a closed
// room is an error.
func (r *Room) Join(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return fmt.Errorf("%w: room %s is closed", domain.ErrInvalidState, r.code)
	}
	for _, m := range r.members {
		if m == userID {
			return nil
		}
	}
	r.members = append(r.members, userID)
	return nil
}

// Attach appends a session to the room, failing if the room has closed in
// the meantime. The check and the append happen under the same lock that
// Close takes, which is what makes start-vs-closure races safe.
func (r *Room) Attach(s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return fmt.Errorf("%w: room %s is closed", domain.ErrInvalidState, r.code)
	}
	r.games = append(r.games, s)
	return nil
}

// Close flips the room to closed. It reports whether this call did the flip;
// closing an already-closed room is a no-op.
func (r *Room) Close() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return false
	}
	r.closed = true
	return true
}

// Closed reports whether the room no longer accepts joins or games.
func (r *Room) Closed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.closed
}

// Cashouts lists bet times current multiplier for every game ever started in
// the room, sorted by amount descending with ties kept in insertion order.
// Games are valued identically whatever their state, matching the game's
// original payout listing semantics.
func (r *Room) Cashouts() ([]domain.RoomCashout, error) {
	r.mu.RLock()
	games := append([]*Session{}, r.games...)
	r.mu.RUnlock()

	if len(games) == 0 {
		return nil, fmt.Errorf("%w: room %s", domain.ErrNoGames, r.code)
	}

	cashouts := make([]domain.RoomCashout, 0, len(games))
	for _, g := range games {
		cashouts = append(cashouts, domain.RoomCashout{
			GameID: g.ID(),
			Amount: g.CurrentValue(),
		})
	}

	sort.SliceStable(cashouts, func(i, j int) bool {
		return cashouts[i].Amount > cashouts[j].Amount
	})
	return cashouts, nil
}

// View returns a consistent view of the room.
func (r *Room) View() RoomView {
	r.mu.RLock()
	defer r.mu.RUnlock()

	gameIDs := make([]string, 0, len(r.games))
	for _, g := range r.games {
		gameIDs = append(gameIDs, g.ID())
	}

	return RoomView{
		ID:             r.id,
		Code:           r.code,
		TimeoutMinutes: r.timeoutMinutes,
		Closed:         r.closed,
		Members:        append([]string{}, r.members...),
		Games:          gameIDs,
		CreatedAt:      r.createdAt,
	}
}

// Record converts the room into its archive row.
func (r *Room) Record() *domain.RoomRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return &domain.RoomRecord{
		RoomID:         r.id,
		Code:           r.code,
		TimeoutMinutes: r.timeoutMinutes,
		Closed:         r.closed,
		CreatedAt:      r.createdAt,
	}
}
