package model

// Board maps occupied squares to pieces. At most one piece stands on a
// square, and a piece stands on exactly one square. The board validates
// nothing: move legality is the Engine's job.
type Board struct {
	pieces map[Square]Piece
}

func NewEmptyBoard() *Board {
	return &Board{pieces: make(map[Square]Piece)}
}

var backRank = []PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard sets up the standard initial position, white on ranks 1 and 2.
func NewBoard() *Board {
	b := NewEmptyBoard()
	for file := FileA; file <= FileH; file++ {
		b.Place(NewPiece(SideWhite, backRank[file]), Square{File: file, Rank: 1})
		b.Place(NewPiece(SideWhite, Pawn), Square{File: file, Rank: 2})
		b.Place(NewPiece(SideBlack, Pawn), Square{File: file, Rank: 7})
		b.Place(NewPiece(SideBlack, backRank[file]), Square{File: file, Rank: 8})
	}
	return b
}

// PieceAt looks up the piece on a square, if any.
func (b *Board) PieceAt(sq Square) (Piece, bool) {
	p, ok := b.pieces[sq]
	return p, ok
}

func (b *Board) Empty(sq Square) bool {
	_, occupied := b.pieces[sq]
	return !occupied
}

// Place puts a piece on a square, replacing any previous occupant.
func (b *Board) Place(p Piece, at Square) {
	b.pieces[at] = p
}

// MovePiece relocates whatever piece occupies from to to, removing the from
// entry and overwriting any piece previously at to. Callers guarantee from is
// occupied; moving from an empty square is a no-op.
func (b *Board) MovePiece(from, to Square) {
	p, ok := b.pieces[from]
	if !ok {
		return
	}
	delete(b.pieces, from)
	b.pieces[to] = p
}

// Clone returns an independent copy of the board. Pieces are values, so
// mutating the clone never touches the original.
func (b *Board) Clone() *Board {
	clone := &Board{pieces: make(map[Square]Piece, len(b.pieces))}
	for sq, p := range b.pieces {
		clone.pieces[sq] = p
	}
	return clone
}

// KingSquare locates side's king. ok is false when no such king is on the
// board.
func (b *Board) KingSquare(side Side) (Square, bool) {
	for sq, p := range b.pieces {
		if p.Kind == King && p.Side == side {
			return sq, true
		}
	}
	return Square{}, false
}

// SquaresBySide lists the squares occupied by side's pieces.
func (b *Board) SquaresBySide(side Side) []Square {
	squares := []Square{}
	for sq, p := range b.pieces {
		if p.Side == side {
			squares = append(squares, sq)
		}
	}
	return squares
}

// Occupied lists every occupied square.
func (b *Board) Occupied() []Square {
	squares := make([]Square, 0, len(b.pieces))
	for sq := range b.pieces {
		squares = append(squares, sq)
	}
	return squares
}
