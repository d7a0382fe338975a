package game

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"mines_backend/internal/domain"
)

// MineField produces randomized mine layouts. The source is seedable so tests
// can replay exact boards. rand.Rand is not safe for concurrent use, hence
// the mutex.
type MineField struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewMineField creates a generator seeded from the wall clock.
func NewMineField() *MineField {
	return NewMineFieldSeeded(time.Now().UnixNano())
}

// NewMineFieldSeeded creates a generator with a fixed seed.
func NewMineFieldSeeded(seed int64) *MineField {
	return &MineField{rng: rand.New(rand.NewSource(seed))}
}

// Generate returns numMines distinct cell indices in [0, gridSize), sampled
// uniformly without replacement via a partial Fisher-Yates shuffle.
func (f *MineField) Generate(gridSize, numMines int) ([]int, error) {
	if gridSize <= 0 {
		return nil, fmt.Errorf("%w: grid size must be positive", domain.ErrInvalidArgument)
	}
	if numMines < 0 || numMines >= gridSize {
		return nil, fmt.Errorf("%w: mines count must be between 0 and %d", domain.ErrInvalidArgument, gridSize-1)
	}

	f.mu.Lock()
	perm := f.rng.Perm(gridSize)
	f.mu.Unlock()

	mines := make([]int, numMines)
	copy(mines, perm[:numMines])
	return mines, nil
}
