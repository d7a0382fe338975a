package game

import "math"

const (
	DefaultGridSize    = 25 // 5x5 board
	DefaultMaxGridSize = 100
	DefaultHouseEdge   = 0.97
	MinMines           = 1
)

// MultiplierFor maps the number of safely revealed cells to a payout
// multiplier: the inverse probability of surviving that many picks,
// discounted by the house edge.
//
// Multiplier = houseEdge * product of (totalRemaining / safeRemaining)
// over each reveal. 1.0 at zero reveals, never below 1.0, floored to
// 2 decimal places.
func MultiplierFor(gridSize, numMines, revealed int, houseEdge float64) float64 {
	if revealed <= 0 {
		return 1.0
	}

	safeCells := gridSize - numMines
	if revealed > safeCells {
		revealed = safeCells
	}

	multiplier := 1.0
	for i := 0; i < revealed; i++ {
		totalRemaining := float64(gridSize - i)
		safeRemaining := float64(safeCells - i)
		if safeRemaining <= 0 {
			break
		}
		multiplier *= totalRemaining / safeRemaining
	}

	multiplier *= houseEdge
	multiplier = math.Max(multiplier, 1.0)

	return math.Floor(multiplier*100) / 100
}

// MultiplierTable returns the multiplier for every possible reveal count at
// the given mine count, for clients that want to show the full risk curve.
func MultiplierTable(gridSize, numMines int, houseEdge float64) []float64 {
	safeCells := gridSize - numMines
	table := make([]float64, safeCells)
	for reveals := 1; reveals <= safeCells; reveals++ {
		table[reveals-1] = MultiplierFor(gridSize, numMines, reveals, houseEdge)
	}
	return table
}
