package model

// EventKind discriminates domain events for consumers that receive them as
// JSON.
type EventKind string

const (
	EventPieceMoved    EventKind = "pieceMoved"
	EventPieceCaptured EventKind = "pieceCaptured"
)

// Event is an immutable record of something that happened on the board.
// Events are produced only by a successful Engine.Move, in order: the move
// itself, then the capture if one occurred.
type Event interface {
	EventKind() EventKind
}

// PieceMoved records a piece relocating from one square to another.
type PieceMoved struct {
	Piece Piece  `json:"piece"`
	From  Square `json:"from"`
	To    Square `json:"to"`
}

func (PieceMoved) EventKind() EventKind { return EventPieceMoved }

// PieceCaptured records a piece being removed from the board on the square it
// stood on.
type PieceCaptured struct {
	Piece  Piece  `json:"piece"`
	Square Square `json:"square"`
}

func (PieceCaptured) EventKind() EventKind { return EventPieceCaptured }
