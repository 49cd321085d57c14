package model

// Player identifies who is moving. The side is the only thing the engine
// cares about; the ID ties a seat to a connected client.
type Player struct {
	ID   string
	Side Side
}

// ClientPlayer is the client-facing view of a seat.
type ClientPlayer struct {
	ID   string `json:"name"`
	Side Side   `json:"side"`
}

// MatchFoundEvent notifies a queued player that a game has been created for
// them.
type MatchFoundEvent struct {
	GameID string `json:"gameId"`
	Side   Side   `json:"side"`
}
