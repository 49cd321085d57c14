package model

// MoveRequest is the move payload a client sends over the websocket.
type MoveRequest struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

// SimpleMove is a from/to pair, used for the last-move highlight in game
// state snapshots.
type SimpleMove struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}
