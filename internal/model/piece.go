package model

import "github.com/google/uuid"

// Side is one of the two players of a game.
type Side string

const (
	SideWhite Side = "white"
	SideBlack Side = "black"
)

func (s Side) Opponent() Side {
	if s == SideWhite {
		return SideBlack
	}
	return SideWhite
}

type PieceKind string

const (
	King   PieceKind = "king"
	Queen  PieceKind = "queen"
	Rook   PieceKind = "rook"
	Bishop PieceKind = "bishop"
	Knight PieceKind = "knight"
	Pawn   PieceKind = "pawn"
)

// Piece is a chessman. Pieces are immutable: identity, side and kind never
// change, and a piece carries no position of its own. Where a piece stands is
// the Board's business.
type Piece struct {
	ID   uuid.UUID `json:"id"`
	Side Side      `json:"side"`
	Kind PieceKind `json:"kind"`
}

func NewPiece(side Side, kind PieceKind) Piece {
	return Piece{ID: uuid.New(), Side: side, Kind: kind}
}

type offset struct {
	df, dr int
}

var (
	rookDirs   = []offset{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs = []offset{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

	knightOffsets = []offset{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
	kingOffsets   = []offset{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

type moveGenerator func(p Piece, from Square, b *Board) []Square

var generators = map[PieceKind]moveGenerator{
	Pawn:   pawnMoves,
	Knight: knightMoves,
	Bishop: bishopMoves,
	Rook:   rookMoves,
	Queen:  queenMoves,
	King:   kingMoves,
}

// PseudoMoves lists every square the piece could move to from the given
// square by its movement pattern alone: board boundaries and occupancy are
// respected, whether the move leaves the piece's own king attacked is not.
// The board is never mutated.
func (p Piece) PseudoMoves(from Square, b *Board) []Square {
	gen, ok := generators[p.Kind]
	if !ok {
		return nil
	}
	return gen(p, from, b)
}

// slidingMoves walks each direction one square at a time, stopping at the
// board edge or the first occupied square. An occupied square is a
// destination only when it holds an enemy piece.
func slidingMoves(p Piece, from Square, b *Board, dirs []offset) []Square {
	moves := []Square{}
	for _, dir := range dirs {
		for target := from.step(dir.df, dir.dr); target.InBounds(); target = target.step(dir.df, dir.dr) {
			occupant, occupied := b.PieceAt(target)
			if !occupied {
				moves = append(moves, target)
				continue
			}
			if occupant.Side != p.Side {
				moves = append(moves, target)
			}
			break
		}
	}
	return moves
}

// stepperMoves enumerates a fixed offset set, keeping in-bounds squares that
// are empty or hold an enemy piece.
func stepperMoves(p Piece, from Square, b *Board, offsets []offset) []Square {
	moves := []Square{}
	for _, off := range offsets {
		target := from.step(off.df, off.dr)
		if !target.InBounds() {
			continue
		}
		if occupant, occupied := b.PieceAt(target); occupied && occupant.Side == p.Side {
			continue
		}
		moves = append(moves, target)
	}
	return moves
}

func rookMoves(p Piece, from Square, b *Board) []Square {
	return slidingMoves(p, from, b, rookDirs)
}

func bishopMoves(p Piece, from Square, b *Board) []Square {
	return slidingMoves(p, from, b, bishopDirs)
}

func queenMoves(p Piece, from Square, b *Board) []Square {
	return append(bishopMoves(p, from, b), rookMoves(p, from, b)...)
}

func knightMoves(p Piece, from Square, b *Board) []Square {
	return stepperMoves(p, from, b, knightOffsets)
}

func kingMoves(p Piece, from Square, b *Board) []Square {
	return stepperMoves(p, from, b, kingOffsets)
}

// pawnStartRank is the rank a side's pawns start on; only from there may a
// pawn advance two squares.
func pawnStartRank(side Side) Rank {
	if side == SideWhite {
		return 2
	}
	return 7
}

// pawnMoves concatenates three independent sub-rules: single advance onto an
// empty square, double advance from the start rank through an empty
// intermediate, and diagonal capture onto an enemy piece.
func pawnMoves(p Piece, from Square, b *Board) []Square {
	dir := 1
	if p.Side == SideBlack {
		dir = -1
	}
	moves := []Square{}

	one := from.step(0, dir)
	if one.InBounds() && b.Empty(one) {
		moves = append(moves, one)
	}

	two := from.step(0, 2*dir)
	if from.Rank == pawnStartRank(p.Side) && b.Empty(one) && b.Empty(two) {
		moves = append(moves, two)
	}

	for _, df := range []int{-1, 1} {
		target := from.step(df, dir)
		if !target.InBounds() {
			continue
		}
		if occupant, occupied := b.PieceAt(target); occupied && occupant.Side != p.Side {
			moves = append(moves, target)
		}
	}
	return moves
}
