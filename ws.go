// ws.go
//
// Copyright (C) 2026 Iron Fox Games
//
// This file implements a live match session over a WebSocket
// connection: one match per connection, with an optional bot
// opponent replying inline and the finished match archived to the
// store when one is configured.

package gridpoker

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	// Origin policy is enforced by the outer CORS/auth layer
	CheckOrigin: func(r *http.Request) bool { return true },
}

// archiveTimeout bounds the Datastore write on match completion
const archiveTimeout = 10 * time.Second

// SessionCommand is a client-to-server message
type SessionCommand struct {
	Action     string          `json:"action"` // "new", "play" or "pass"
	Seed       int64           `json:"seed,omitempty"`
	WithBot    bool            `json:"withBot,omitempty"`
	PlayerName string          `json:"playerName,omitempty"`
	Placements []CardPlacement `json:"placements,omitempty"`
}

// SessionError is the error payload of a server message
type SessionError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SessionMessage is a server-to-client message
type SessionMessage struct {
	Type  string        `json:"type"` // "view" or "error"
	View  *MatchView    `json:"view,omitempty"`
	Error *SessionError `json:"error,omitempty"`
}

// MatchView is the client-facing snapshot of a match, pushed after
// every committed turn
type MatchView struct {
	Version       string   `json:"version"`
	Board         []string `json:"board"`
	Blocked       []int    `json:"blocked"`
	Hand          []string `json:"hand"`
	DeckRemaining int      `json:"deckRemaining"`
	PlayerScore   int      `json:"playerScore"`
	OpponentScore int      `json:"opponentScore"`
	PlayerToMove  int      `json:"playerToMove"`
	TurnCount     int      `json:"turnCount"`
	Complete      bool     `json:"complete"`
	ObjectiveMet  bool     `json:"objectiveMet"`
	LastTurn      *Turn    `json:"lastTurn,omitempty"`
}

// MatchSession owns one connection and at most one in-progress match
type MatchSession struct {
	mu         sync.Mutex
	conn       *websocket.Conn
	match      *Match
	bot        *BotWrapper
	store      *MatchStore
	playerName string
	archived   bool
}

// ServeMatchSession returns the WebSocket endpoint handler. The store
// may be nil, in which case finished matches are not archived.
func ServeMatchSession(store *MatchStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("ws upgrade: %v", err)
			return
		}
		defer conn.Close()
		session := &MatchSession{conn: conn, store: store}
		session.run()
	}
}

// run is the per-connection read loop
func (s *MatchSession) run() {
	for {
		var cmd SessionCommand
		if err := s.conn.ReadJSON(&cmd); err != nil {
			return
		}
		s.handleCommand(cmd)
	}
}

func (s *MatchSession) handleCommand(cmd SessionCommand) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch cmd.Action {
	case "new":
		s.startMatch(cmd)
	case "play":
		s.commitPlayerTurn(cmd.Placements)
	case "pass":
		s.commitPlayerTurn(nil)
	default:
		s.sendError("unknown_action", "unknown action "+cmd.Action)
	}
}

func (s *MatchSession) startMatch(cmd SessionCommand) {
	var rng *rand.Rand
	if cmd.Seed != 0 {
		rng = rand.New(rand.NewSource(cmd.Seed))
	}
	config := DefaultGameConfig()
	s.bot = nil
	if cmd.WithBot {
		config = DefaultBotGameConfig()
		s.bot = NewHighScoreBot()
	}
	s.match = NewGame(config, rng)
	s.playerName = cmd.PlayerName
	s.archived = false
	s.sendView()
}

func (s *MatchSession) commitPlayerTurn(placements []CardPlacement) {
	if s.match == nil {
		s.sendError("no_match", "no match in progress")
		return
	}
	if err := s.match.DoPlayerTurn(placements, nil); err != nil {
		s.sendError("illegal_play", err.Error())
		return
	}
	if s.bot != nil && !s.match.IsMatchComplete() {
		botPlacements := s.bot.GeneratePlay(s.match)
		if err := s.match.DoBotTurn(botPlacements, nil); err != nil {
			log.Printf("bot turn rejected: %v", err)
		}
	}
	s.sendView()
	s.archiveIfComplete()
}

// archiveIfComplete persists the finished match exactly once
func (s *MatchSession) archiveIfComplete() {
	if s.store == nil || s.archived || !s.match.IsMatchComplete() {
		return
	}
	s.archived = true
	record := NewMatchRecord(s.match, s.playerName, s.opponentName())
	ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
	defer cancel()
	if id, err := s.store.Archive(ctx, record); err != nil {
		log.Printf("archiving match: %v", err)
	} else {
		log.Printf("archived match %d", id)
	}
}

func (s *MatchSession) opponentName() string {
	if s.bot != nil {
		return "Bot"
	}
	return ""
}

func (s *MatchSession) sendView() {
	match := s.match
	board := match.BuildBoardFromTurns()
	codes := make([]string, BoardSize)
	for idx, tile := range board {
		if tile != nil {
			codes[idx] = tile.Card.String()
		}
	}
	blocked := make([]int, 0)
	for idx := range match.BoardModifiers.BlockedCells() {
		blocked = append(blocked, idx)
	}
	sort.Ints(blocked)
	hand := make([]string, len(match.PlayerHand))
	for i, c := range match.PlayerHand {
		hand[i] = c.String()
	}
	player, opponent := match.CalculateScores()
	view := &MatchView{
		Version:       ProtocolVersion,
		Board:         codes,
		Blocked:       blocked,
		Hand:          hand,
		DeckRemaining: len(match.Deck),
		PlayerScore:   player,
		OpponentScore: opponent,
		PlayerToMove:  match.PlayerToMove(),
		TurnCount:     len(match.Turns),
		Complete:      match.IsMatchComplete(),
		ObjectiveMet:  match.IsObjectiveMet(),
	}
	if len(match.Turns) > 0 {
		view.LastTurn = &match.Turns[len(match.Turns)-1]
	}
	s.send(SessionMessage{Type: "view", View: view})
}

func (s *MatchSession) sendError(code, message string) {
	s.send(SessionMessage{Type: "error", Error: &SessionError{Code: code, Message: message}})
}

func (s *MatchSession) send(msg SessionMessage) {
	if err := s.conn.WriteJSON(msg); err != nil {
		log.Printf("ws write: %v", err)
	}
}
