package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"mines_backend/internal/domain"
	"mines_backend/internal/game"
)

func newTestGameService(seed int64) *GameService {
	return NewGameService(GameConfig{
		GridSize:  25,
		HouseEdge: game.DefaultHouseEdge,
		MinBet:    1,
		MaxBet:    1000,
	}, game.NewMineFieldSeeded(seed), nil)
}

// knownMines replays the seeded generator to learn the layout the service
// will deal to its first game.
func knownMines(t *testing.T, seed int64, gridSize, numMines int) map[int]bool {
	t.Helper()
	mines, err := game.NewMineFieldSeeded(seed).Generate(gridSize, numMines)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	set := make(map[int]bool, len(mines))
	for _, m := range mines {
		set[m] = true
	}
	return set
}

func TestGameService_StartGame(t *testing.T) {
	s := newTestGameService(1)

	snap, err := s.StartGame(context.Background(), 10, 3, 0)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if snap.State != game.StateInProgress {
		t.Errorf("expected IN_PROGRESS, got %s", snap.State)
	}
	if snap.GridSize != 25 || snap.MinesCount != 3 {
		t.Errorf("unexpected board: grid=%d mines=%d", snap.GridSize, snap.MinesCount)
	}
	if snap.Multiplier != 1.0 {
		t.Errorf("fresh multiplier should be 1.0, got %v", snap.Multiplier)
	}

	got, err := s.GetGame(snap.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != snap.ID {
		t.Errorf("lookup returned wrong game: %s", got.ID)
	}
}

func TestGameService_StartGame_Validation(t *testing.T) {
	s := newTestGameService(1)

	cases := []struct {
		name  string
		bet   float64
		mines int
		grid  int
	}{
		{"zero bet", 0, 3, 0},
		{"below minimum", 0.5, 3, 0},
		{"above maximum", 5000, 3, 0},
		{"too many mines", 10, 25, 0},
		{"negative mines", 10, -1, 0},
		{"one-cell grid", 10, 1, 1},
		{"oversized grid", 10, 3, 100_000_000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := s.StartGame(context.Background(), tc.bet, tc.mines, tc.grid); !errors.Is(err, domain.ErrInvalidArgument) {
				t.Errorf("expected invalid argument, got %v", err)
			}
		})
	}
}

func TestGameService_GridSizeCap(t *testing.T) {
	s := NewGameService(GameConfig{
		GridSize:    25,
		MaxGridSize: 49,
		HouseEdge:   game.DefaultHouseEdge,
	}, game.NewMineFieldSeeded(1), nil)

	if _, err := s.StartGame(context.Background(), 10, 3, 49); err != nil {
		t.Errorf("grid at the cap should start: %v", err)
	}
	if _, err := s.StartGame(context.Background(), 10, 3, 50); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("grid above the cap: expected invalid argument, got %v", err)
	}
}

func TestGameService_UnknownGame(t *testing.T) {
	s := newTestGameService(1)

	if _, err := s.GetGame("missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("get: expected not found, got %v", err)
	}
	if _, err := s.Reveal(context.Background(), "missing", 0); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("reveal: expected not found, got %v", err)
	}
	if _, err := s.Cashout(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("cashout: expected not found, got %v", err)
	}
}

func TestGameService_RevealAndCashout(t *testing.T) {
	const seed = 42
	s := newTestGameService(seed)
	mines := knownMines(t, seed, 25, 3)

	snap, err := s.StartGame(context.Background(), 10, 3, 0)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	// Open one cell that is known to be safe.
	safe := -1
	for cell := 0; cell < 25; cell++ {
		if !mines[cell] {
			safe = cell
			break
		}
	}
	snap, err = s.Reveal(context.Background(), snap.ID, safe)
	if err != nil {
		t.Fatalf("reveal: %v", err)
	}
	if snap.State != game.StateInProgress || snap.Multiplier <= 1.0 {
		t.Fatalf("after safe reveal: state=%s multiplier=%v", snap.State, snap.Multiplier)
	}

	res, err := s.Cashout(context.Background(), snap.ID)
	if err != nil {
		t.Fatalf("cashout: %v", err)
	}
	if want := 10 * snap.Multiplier; res.CashoutAmount != want {
		t.Errorf("amount: got %v want %v", res.CashoutAmount, want)
	}

	if _, err := s.Cashout(context.Background(), snap.ID); !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("second cashout: expected invalid state, got %v", err)
	}
}

func TestGameService_RevealMine(t *testing.T) {
	const seed = 42
	s := newTestGameService(seed)
	mines := knownMines(t, seed, 25, 3)

	snap, err := s.StartGame(context.Background(), 10, 3, 0)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	mine := -1
	for cell := range mines {
		mine = cell
		break
	}
	snap, err = s.Reveal(context.Background(), snap.ID, mine)
	if err != nil {
		t.Fatalf("reveal: %v", err)
	}
	if snap.State != game.StateLost {
		t.Errorf("expected LOST, got %s", snap.State)
	}
	if _, err := s.Cashout(context.Background(), snap.ID); !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("cashout after loss: expected invalid state, got %v", err)
	}
}

func TestGameService_ConcurrentCashoutsExactlyOneWins(t *testing.T) {
	const seed = 42
	s := newTestGameService(seed)
	mines := knownMines(t, seed, 25, 3)

	snap, err := s.StartGame(context.Background(), 10, 3, 0)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	for cell := 0; cell < 25; cell++ {
		if !mines[cell] {
			if _, err := s.Reveal(context.Background(), snap.ID, cell); err != nil {
				t.Fatalf("reveal: %v", err)
			}
			break
		}
	}

	const callers = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Cashout(context.Background(), snap.ID); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if wins != 1 {
		t.Errorf("expected exactly one winning cashout, got %d", wins)
	}
}
