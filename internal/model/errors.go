package model

import "errors"

// Move precondition failures. All are detected before the board is touched,
// so a failed move never leaves partial state behind.
var (
	// ErrNoPiece: the source square is empty.
	ErrNoPiece = errors.New("no piece at source square")
	// ErrOutOfTurn: the mover's side is not the side to move.
	ErrOutOfTurn = errors.New("not your turn")
	// ErrWrongOwner: the piece at the source square belongs to the other side.
	ErrWrongOwner = errors.New("piece belongs to the other side")
	// ErrIllegalDestination: the destination is not among the piece's moves.
	ErrIllegalDestination = errors.New("destination not reachable by piece")

	// ErrNotInGame: the player is not seated at this game.
	ErrNotInGame = errors.New("player not in game")
	// ErrGameFull: both seats are taken.
	ErrGameFull = errors.New("game is full")
)
