package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func white() Player { return Player{ID: "w", Side: SideWhite} }
func black() Player { return Player{ID: "b", Side: SideBlack} }

func TestMoveFailsOnEmptySourceSquare(t *testing.T) {
	e := NewEngine()

	_, err := e.Move(white(), sq("d4"), sq("d5"))

	assert.ErrorIs(t, err, ErrNoPiece)
	assert.Equal(t, SideWhite, e.ToMove())
}

func TestMoveFailsOutOfTurn(t *testing.T) {
	e := NewEngine()

	_, err := e.Move(black(), sq("e7"), sq("e5"))

	assert.ErrorIs(t, err, ErrOutOfTurn)
	assert.Equal(t, SideWhite, e.ToMove())
	// Board untouched.
	p, ok := e.PieceAt(sq("e7"))
	require.True(t, ok)
	assert.Equal(t, Pawn, p.Kind)
	assert.True(t, e.Board().Empty(sq("e5")))
}

func TestMoveFailsForWrongOwner(t *testing.T) {
	e := NewEngine()

	_, err := e.Move(white(), sq("e7"), sq("e5"))

	assert.ErrorIs(t, err, ErrWrongOwner)
	assert.Equal(t, SideWhite, e.ToMove())
}

func TestMoveFailsOnIllegalDestination(t *testing.T) {
	e := NewEngine()

	_, err := e.Move(white(), sq("e2"), sq("e5"))

	assert.ErrorIs(t, err, ErrIllegalDestination)
	assert.Equal(t, SideWhite, e.ToMove())
	assert.True(t, e.Board().Empty(sq("e5")))
}

func TestMoveAppliesAndAlternatesTurn(t *testing.T) {
	e := NewEngine()

	events, err := e.Move(white(), sq("e2"), sq("e4"))
	require.NoError(t, err)
	assert.Equal(t, SideBlack, e.ToMove())

	require.Len(t, events, 1)
	moved, ok := events[0].(PieceMoved)
	require.True(t, ok)
	assert.Equal(t, Pawn, moved.Piece.Kind)
	assert.Equal(t, sq("e2"), moved.From)
	assert.Equal(t, sq("e4"), moved.To)

	assert.True(t, e.Board().Empty(sq("e2")))
	p, ok := e.PieceAt(sq("e4"))
	require.True(t, ok)
	assert.Equal(t, moved.Piece.ID, p.ID)

	_, err = e.Move(black(), sq("e7"), sq("e5"))
	require.NoError(t, err)
	assert.Equal(t, SideWhite, e.ToMove())
}

func TestMoveEmitsCaptureEventIffEnemyOnDestination(t *testing.T) {
	b := NewEmptyBoard()
	rook := place(b, SideWhite, Rook, "d4")
	victim := place(b, SideBlack, Pawn, "d7")
	e := NewEngineWithBoard(b, SideWhite)

	events, err := e.Move(white(), sq("d4"), sq("d7"))
	require.NoError(t, err)

	require.Len(t, events, 2)
	moved, ok := events[0].(PieceMoved)
	require.True(t, ok, "PieceMoved comes first")
	assert.Equal(t, rook.ID, moved.Piece.ID)

	captured, ok := events[1].(PieceCaptured)
	require.True(t, ok)
	assert.Equal(t, victim.ID, captured.Piece.ID)
	assert.Equal(t, sq("d7"), captured.Square)

	// The captured pawn is gone: only the rook remains.
	assert.Len(t, e.Board().Occupied(), 1)
}

func TestQuietMoveEmitsNoCaptureEvent(t *testing.T) {
	b := NewEmptyBoard()
	place(b, SideWhite, Rook, "d4")
	place(b, SideBlack, Pawn, "d7")
	e := NewEngineWithBoard(b, SideWhite)

	events, err := e.Move(white(), sq("d4"), sq("d6"))
	require.NoError(t, err)

	require.Len(t, events, 1)
	_, ok := events[0].(PieceMoved)
	assert.True(t, ok)
	assert.Len(t, e.Board().Occupied(), 2)
}

func TestMoveRoundTripRestoresOccupancy(t *testing.T) {
	b := NewEmptyBoard()
	wrook := place(b, SideWhite, Rook, "a1")
	brook := place(b, SideBlack, Rook, "h1")
	e := NewEngineWithBoard(b, SideWhite)

	_, err := e.Move(white(), sq("a1"), sq("a4"))
	require.NoError(t, err)
	_, err = e.Move(black(), sq("h1"), sq("h4"))
	require.NoError(t, err)
	_, err = e.Move(white(), sq("a4"), sq("a1"))
	require.NoError(t, err)
	_, err = e.Move(black(), sq("h4"), sq("h1"))
	require.NoError(t, err)

	p, ok := e.PieceAt(sq("a1"))
	require.True(t, ok)
	assert.Equal(t, wrook.ID, p.ID)
	p, ok = e.PieceAt(sq("h1"))
	require.True(t, ok)
	assert.Equal(t, brook.ID, p.ID)
	assert.Equal(t, SideWhite, e.ToMove())
	assert.Len(t, e.Board().Occupied(), 2)
}

func TestPossibleMovesEmptySquare(t *testing.T) {
	e := NewEngine()
	assert.Empty(t, e.PossibleMoves(sq("d4")))
}

func TestPossibleMovesExcludesKingExposingMoves(t *testing.T) {
	// The white knight on c3 is pinned by the bishop on a5: every knight move
	// uncovers the a5-e1 diagonal.
	b := NewEmptyBoard()
	place(b, SideWhite, King, "e1")
	knight := place(b, SideWhite, Knight, "c3")
	place(b, SideBlack, Bishop, "a5")
	place(b, SideBlack, King, "h8")
	e := NewEngineWithBoard(b, SideWhite)

	assert.NotEmpty(t, knight.PseudoMoves(sq("c3"), b), "the pin is not a pattern restriction")
	assert.Empty(t, e.PossibleMoves(sq("c3")))
}

func TestPossibleMovesKeepsKingSafeMoves(t *testing.T) {
	// Same pin, but capturing the bishop or blocking the diagonal stays legal.
	b := NewEmptyBoard()
	place(b, SideWhite, King, "e1")
	place(b, SideWhite, Queen, "d2")
	place(b, SideBlack, Bishop, "a5")
	place(b, SideBlack, King, "h8")
	e := NewEngineWithBoard(b, SideWhite)

	moves := e.PossibleMoves(sq("d2"))
	assert.Contains(t, moves, sq("a5"), "capturing the attacker is legal")
	assert.Contains(t, moves, sq("c3"), "staying on the pin diagonal is legal")
	assert.NotContains(t, moves, sq("d7"), "leaving the diagonal exposes the king")
}

func TestPossibleMovesSimulationNeverMutatesLiveBoard(t *testing.T) {
	b := NewEmptyBoard()
	place(b, SideWhite, King, "e1")
	place(b, SideWhite, Rook, "d4")
	place(b, SideBlack, Pawn, "d7")
	e := NewEngineWithBoard(b, SideWhite)

	before := len(e.Board().Occupied())
	e.PossibleMoves(sq("d4"))

	assert.Len(t, e.Board().Occupied(), before)
	p, ok := e.PieceAt(sq("d4"))
	require.True(t, ok)
	assert.Equal(t, Rook, p.Kind)
	p, ok = e.PieceAt(sq("d7"))
	require.True(t, ok)
	assert.Equal(t, Pawn, p.Kind)
}

// Move itself only checks pseudo-legality: a king-exposing move goes through.
// Full legality belongs to PossibleMoves; the Game aggregate pre-filters with
// it before calling Move.
func TestMoveDoesNotEnforceKingSafety(t *testing.T) {
	b := NewEmptyBoard()
	place(b, SideWhite, King, "e1")
	place(b, SideWhite, Knight, "c3")
	place(b, SideBlack, Bishop, "a5")
	place(b, SideBlack, King, "h8")
	e := NewEngineWithBoard(b, SideWhite)

	_, err := e.Move(white(), sq("c3"), sq("b5"))

	require.NoError(t, err)
	assert.True(t, IsKingChecked(e.Board(), SideWhite))
}

func TestIsKingChecked(t *testing.T) {
	b := NewEmptyBoard()
	place(b, SideWhite, King, "e1")
	place(b, SideBlack, Rook, "e8")

	assert.True(t, IsKingChecked(b, SideWhite))
	assert.False(t, IsKingChecked(b, SideBlack), "no black king on the board")

	// Block the file and the check disappears.
	place(b, SideWhite, Bishop, "e4")
	assert.False(t, IsKingChecked(b, SideWhite))
}

func TestIsKingCheckedInitialPosition(t *testing.T) {
	b := NewBoard()
	assert.False(t, IsKingChecked(b, SideWhite))
	assert.False(t, IsKingChecked(b, SideBlack))
}

func TestPossibleMovesMatchesPseudoMovesWhenKingAbsent(t *testing.T) {
	// Without a king to protect, the legality filter passes everything.
	b := NewEmptyBoard()
	rook := place(b, SideWhite, Rook, "d4")
	e := NewEngineWithBoard(b, SideWhite)

	assert.Empty(t, cmp.Diff(rook.PseudoMoves(sq("d4"), b), e.PossibleMoves(sq("d4")), sortSquares))
}
