package model

// Engine enforces the rules of play over one board: whose turn it is, which
// moves a piece may make, and what events a move produces. One Engine drives
// one game; nothing here is safe for concurrent use.
type Engine struct {
	board  *Board
	toMove Side
}

// NewEngine starts a game from the standard initial position, white to move.
func NewEngine() *Engine {
	return &Engine{board: NewBoard(), toMove: SideWhite}
}

// NewEngineWithBoard starts a game from an arbitrary position. The engine
// takes ownership of the board.
func NewEngineWithBoard(b *Board, toMove Side) *Engine {
	return &Engine{board: b, toMove: toMove}
}

// ToMove is the side whose turn it is.
func (e *Engine) ToMove() Side {
	return e.toMove
}

// PieceAt exposes board occupancy for rendering and inspection.
func (e *Engine) PieceAt(sq Square) (Piece, bool) {
	return e.board.PieceAt(sq)
}

// Board returns the live board. Callers must treat it as read-only; only the
// engine mutates it.
func (e *Engine) Board() *Board {
	return e.board
}

// Move validates and applies the move from->to for player. On success the
// board is updated, the turn passes to the other side, and the returned
// events describe what happened: PieceMoved always, followed by PieceCaptured
// when the destination held an enemy piece. On failure nothing changes and
// one of ErrNoPiece, ErrOutOfTurn, ErrWrongOwner or ErrIllegalDestination is
// returned.
//
// Move checks the destination against the piece's pseudo-legal moves only; it
// does not verify that the mover's king is safe afterwards. Callers that need
// full legality must take the destination from PossibleMoves first.
func (e *Engine) Move(player Player, from, to Square) ([]Event, error) {
	piece, ok := e.board.PieceAt(from)
	if !ok {
		return nil, ErrNoPiece
	}
	if player.Side != e.toMove {
		return nil, ErrOutOfTurn
	}
	if piece.Side != player.Side {
		return nil, ErrWrongOwner
	}
	if !containsSquare(piece.PseudoMoves(from, e.board), to) {
		return nil, ErrIllegalDestination
	}

	// Pseudo-moves never target friendly pieces, so any occupant is a capture.
	captured, isCapture := e.board.PieceAt(to)

	e.board.MovePiece(from, to)
	e.toMove = e.toMove.Opponent()

	events := []Event{PieceMoved{Piece: piece, From: from, To: to}}
	if isCapture {
		events = append(events, PieceCaptured{Piece: captured, Square: to})
	}
	return events, nil
}

// PossibleMoves lists the fully legal destinations for the piece at sq: its
// pseudo-legal moves minus any that would leave its own king attacked. Each
// candidate is tried on a clone of the live board, which is never mutated.
// An empty square yields no moves.
func (e *Engine) PossibleMoves(sq Square) []Square {
	piece, ok := e.board.PieceAt(sq)
	if !ok {
		return []Square{}
	}
	legal := []Square{}
	for _, to := range piece.PseudoMoves(sq, e.board) {
		sim := e.board.Clone()
		sim.MovePiece(sq, to)
		if !IsKingChecked(sim, piece.Side) {
			legal = append(legal, to)
		}
	}
	return legal
}

// IsKingChecked reports whether side's king square is covered by any enemy
// piece's pseudo-legal moves on b. A board holding no king for side is never
// in check.
func IsKingChecked(b *Board, side Side) bool {
	kingSq, ok := b.KingSquare(side)
	if !ok {
		return false
	}
	for _, sq := range b.SquaresBySide(side.Opponent()) {
		attacker, _ := b.PieceAt(sq)
		if containsSquare(attacker.PseudoMoves(sq, b), kingSq) {
			return true
		}
	}
	return false
}

func containsSquare(squares []Square, sq Square) bool {
	for _, s := range squares {
		if s == sq {
			return true
		}
	}
	return false
}
