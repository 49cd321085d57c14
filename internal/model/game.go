package model

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/arbiterhq/arbiter-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

// The connections for a specific game
type GameConnections struct {
	connections map[string]*websocket.Conn // playerID -> connection
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*websocket.Conn),
	}
}

// Game seats two players at one Engine and fans the engine's events out to
// connected clients. The Game is the in-process collaborator the rules core
// is written for: it authorizes who may move, pre-filters requested moves
// through PossibleMoves so a served game never admits a king-exposing move,
// and derives its captured/last-move bookkeeping purely from emitted events.
type Game struct {
	ID          string
	mu          sync.Mutex
	engine      *Engine
	white       ClientPlayer
	black       ClientPlayer
	captured    CapturedPieces
	lastMove    *SimpleMove
	history     []Event
	connections *GameConnections
}

// CapturedPieces groups removed pieces by the side that lost them.
type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

// SquareView pairs an occupied square with its piece for rendering.
type SquareView struct {
	Square Square `json:"square"`
	Piece  Piece  `json:"piece"`
}

// GameState is the client-facing snapshot broadcast after every move.
type GameState struct {
	Board          []SquareView   `json:"board"`
	ToMove         Side           `json:"toMove"`
	IsCheck        bool           `json:"isCheck"`
	LastMove       *SimpleMove    `json:"lastMove"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	Players        struct {
		White ClientPlayer `json:"white"`
		Black ClientPlayer `json:"black"`
	} `json:"players"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:          id,
		engine:      NewEngine(),
		captured:    CapturedPieces{White: []Piece{}, Black: []Piece{}},
		history:     []Event{},
		connections: NewGameConnections(),
	}
}

// AddPlayer seats a player. The first to join plays white, the second black.
func (g *Game) AddPlayer(playerID string) (Side, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.white.ID == "" {
		g.white = ClientPlayer{ID: playerID, Side: SideWhite}
		return SideWhite, nil
	}
	if g.black.ID == "" {
		g.black = ClientPlayer{ID: playerID, Side: SideBlack}
		return SideBlack, nil
	}
	return "", ErrGameFull
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.isPlayerInGame(playerID)
}

func (g *Game) isPlayerInGame(playerID string) bool {
	if g.white.ID != "" && g.white.ID == playerID {
		return true
	}
	if g.black.ID != "" && g.black.ID == playerID {
		return true
	}
	return false
}

func (g *Game) CanSpectate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.canSpectate()
}

func (g *Game) canSpectate() bool {
	return g.white.ID == "" || g.black.ID == ""
}

func (g *Game) sideOf(playerID string) (Side, bool) {
	if g.white.ID != "" && g.white.ID == playerID {
		return SideWhite, true
	}
	if g.black.ID != "" && g.black.ID == playerID {
		return SideBlack, true
	}
	return "", false
}

// MakeMove plays the requested move for playerID. The destination is checked
// against PossibleMoves before the engine is asked to apply it, so moves that
// would expose the mover's king are rejected here with ErrIllegalDestination.
func (g *Game) MakeMove(playerID string, req MoveRequest) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	side, seated := g.sideOf(playerID)
	if !seated {
		return ErrNotInGame
	}
	if side != g.engine.ToMove() {
		return ErrOutOfTurn
	}
	if _, ok := g.engine.PieceAt(req.From); !ok {
		return ErrNoPiece
	}
	if !containsSquare(g.engine.PossibleMoves(req.From), req.To) {
		return ErrIllegalDestination
	}

	events, err := g.engine.Move(Player{ID: playerID, Side: side}, req.From, req.To)
	if err != nil {
		return err
	}
	g.applyEvents(events)

	go g.broadcastEvents(events)
	go g.broadcastState()

	return nil
}

func (g *Game) applyEvents(events []Event) {
	for _, ev := range events {
		g.history = append(g.history, ev)
		switch e := ev.(type) {
		case PieceMoved:
			g.lastMove = &SimpleMove{From: e.From, To: e.To}
		case PieceCaptured:
			switch e.Piece.Side {
			case SideWhite:
				g.captured.White = append(g.captured.White, e.Piece)
			case SideBlack:
				g.captured.Black = append(g.captured.Black, e.Piece)
			}
		}
	}
}

// History returns the events emitted so far, oldest first.
func (g *Game) History() []Event {
	g.mu.Lock()
	defer g.mu.Unlock()

	history := make([]Event, len(g.history))
	copy(history, g.history)
	return history
}

// PossibleMoves lists legal destinations for the piece at sq, for move
// previews.
func (g *Game) PossibleMoves(sq Square) []Square {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.engine.PossibleMoves(sq)
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshotState()
}

func (g *Game) snapshotState() GameState {
	board := g.engine.Board()
	view := []SquareView{}
	for _, sq := range board.Occupied() {
		piece, _ := board.PieceAt(sq)
		view = append(view, SquareView{Square: sq, Piece: piece})
	}

	state := GameState{
		Board:          view,
		ToMove:         g.engine.ToMove(),
		IsCheck:        IsKingChecked(board, g.engine.ToMove()),
		LastMove:       g.lastMove,
		CapturedPieces: g.captured,
	}
	state.Players.White = g.white
	state.Players.Black = g.black
	return state
}

func (g *Game) RegisterConnection(playerID string, conn *websocket.Conn) error {
	g.mu.Lock()
	isAuthorized := g.isPlayerInGame(playerID) || g.canSpectate()
	g.mu.Unlock()

	if !isAuthorized {
		return ErrNotInGame
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// Keep the existing connection and reject the new one.
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		conn.Close()
		return nil
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()

	// Send the joiner the current state.
	go g.broadcastState()
	return nil
}

func (g *Game) UnregisterConnection(playerID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	delete(g.connections.connections, playerID)
}

type eventEnvelope struct {
	Kind  EventKind `json:"kind"`
	Event Event     `json:"event"`
}

func (g *Game) broadcastEvents(events []Event) {
	envelopes := make([]eventEnvelope, 0, len(events))
	for _, ev := range events {
		envelopes = append(envelopes, eventEnvelope{Kind: ev.EventKind(), Event: ev})
	}
	payload, err := json.Marshal(envelopes)
	if err != nil {
		log.Printf("failed to marshal events: %v", err)
		return
	}
	g.broadcast(ws.Message{Type: ws.MessageTypeEvents, Payload: payload})
}

func (g *Game) broadcastState() {
	g.mu.Lock()
	state := g.snapshotState()
	g.mu.Unlock()

	payload, err := json.Marshal(state)
	if err != nil {
		log.Printf("failed to marshal game state: %v", err)
		return
	}
	g.broadcast(ws.Message{Type: ws.MessageTypeGameState, Payload: payload})
}

func (g *Game) broadcast(msg ws.Message) {
	// Snapshot the connections so writes happen without holding the lock.
	g.connections.mu.RLock()
	activeConnections := make(map[string]*websocket.Conn, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		activeConnections[playerID] = conn
	}
	g.connections.mu.RUnlock()

	for playerID, conn := range activeConnections {
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("failed to send %s to player %s: %v", msg.Type, playerID, err)
			g.connections.mu.Lock()
			delete(g.connections.connections, playerID)
			g.connections.mu.Unlock()
		}
	}
}
