package model

import "fmt"

// File is a column on the board, a through h.
type File int

const (
	FileA File = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

// Rank is a row on the board, 1 through 8. Rank 1 is white's back rank.
type Rank int

// Square identifies one cell of the 8x8 board. Two squares are equal when
// their file and rank are equal.
type Square struct {
	File File `json:"file"`
	Rank Rank `json:"rank"`
}

func NewSquare(file File, rank Rank) Square {
	return Square{File: file, Rank: rank}
}

// InBounds reports whether the square lies on the board.
func (s Square) InBounds() bool {
	return s.File >= FileA && s.File <= FileH && s.Rank >= 1 && s.Rank <= 8
}

// step returns the square offset from s by df files and dr ranks. The result
// may be off the board; callers check InBounds.
func (s Square) step(df, dr int) Square {
	return Square{File: s.File + File(df), Rank: s.Rank + Rank(dr)}
}

func (f File) String() string {
	return fmt.Sprintf("%c", 'a'+int(f))
}

// String renders the square in algebraic notation, e.g. "e4".
func (s Square) String() string {
	return fmt.Sprintf("%s%d", s.File, s.Rank)
}

// ParseSquare parses algebraic notation, e.g. "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return Square{}, fmt.Errorf("invalid square %q", s)
	}
	sq := Square{File: File(s[0] - 'a'), Rank: Rank(s[1] - '0')}
	if !sq.InBounds() {
		return Square{}, fmt.Errorf("invalid square %q", s)
	}
	return sq, nil
}
