package domain

import "errors"

// Error taxonomy shared by the game engine, the services and the HTTP layer.
// Callers match with errors.Is; wrapping with fmt.Errorf("%w: ...") keeps the
// sentinel reachable.
var (
	// ErrInvalidArgument - malformed input (non-positive bet, mine count out of range).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound - unknown game or room id/code.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState - operation not legal in the entity's current state
	// (game not in progress, room already closed, cashout already consumed).
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidMove - move references an out-of-range or already revealed cell.
	ErrInvalidMove = errors.New("invalid move")

	// ErrCodesExhausted - room code generation collided too many times.
	ErrCodesExhausted = errors.New("room code space exhausted")

	// ErrNoGames - aggregate query over a room with no games.
	ErrNoGames = errors.New("no games in room")

	// ErrInvariant - internal bookkeeping violation. Should be unreachable.
	ErrInvariant = errors.New("invariant violation")
)
