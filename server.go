// server.go
//
// Copyright (C) 2026 Iron Fox Games
//
// This file implements a compact HTTP service layer that receives
// JSON encoded requests and returns JSON encoded responses. The
// handlers are pure request-to-response functions; routing, CORS and
// authorization live in the go-app main package.

package gridpoker

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ProtocolVersion is reported in every response header
const ProtocolVersion = "1.0"

// PlacementsRequest asks for the legal placement tiles on a board.
// The board is a flat list of BoardSize card codes ("" for an empty
// tile). When WorkingTile is present the request is for tiles that
// extend an in-progress line; otherwise for the first card of a hand.
type PlacementsRequest struct {
	Board       []string `json:"board"`
	Blocked     []int    `json:"blocked"`
	WorkingTile *int     `json:"workingTile,omitempty"`
	Direction   string   `json:"direction,omitempty"`
	Limit       int      `json:"limit"`
}

// PlacementsResponse lists the legal tile indices
type PlacementsResponse struct {
	Version string `json:"version"`
	Count   int    `json:"count"`
	Tiles   []int  `json:"tiles"`
}

// ScoreRequest asks for the classification and score of five cards.
// Multipliers, when present, is parallel to Cards; a value above 1 is
// a hand multiplier on that card's tile.
type ScoreRequest struct {
	Cards       []string `json:"cards"`
	Multipliers []int    `json:"multipliers,omitempty"`
}

// ScoreResponse is the full classification of the requested hand
type ScoreResponse struct {
	Version            string   `json:"version"`
	HandName           string   `json:"handName"`
	SpecialHandName    string   `json:"specialHandName,omitempty"`
	Score              int      `json:"score"`
	ScoreWithModifiers int      `json:"scoreWithModifiers"`
	ScoredCards        []string `json:"scoredCards"`
}

// parseBoard rebuilds a board from a flat list of card codes
func parseBoard(codes []string) (*Board, error) {
	if len(codes) != BoardSize {
		return nil, fmt.Errorf("invalid board: must be %v tiles, got %v", BoardSize, len(codes))
	}
	board := &Board{}
	for idx, code := range codes {
		if code == "" {
			continue
		}
		card, err := ParseCard(code)
		if err != nil {
			return nil, fmt.Errorf("invalid card '%s' at tile %v", code, idx)
		}
		board.PlaceTile(idx, card, -1)
	}
	return board, nil
}

// HandlePlacementsRequest handles an incoming placements request
func HandlePlacementsRequest(w http.ResponseWriter, req PlacementsRequest) {
	board, err := parseBoard(req.Board)
	if err != nil {
		http.Error(w, err.Error()+"\n", http.StatusBadRequest)
		return
	}
	blocked := make(map[int]bool, len(req.Blocked))
	for _, idx := range req.Blocked {
		if idx < 0 || idx >= BoardSize {
			http.Error(w, fmt.Sprintf("invalid blocked tile %v\n", idx), http.StatusBadRequest)
			return
		}
		blocked[idx] = true
	}
	limit := req.Limit
	if limit <= 0 || limit > HandSize {
		limit = HandSize
	}
	var tiles []int
	if req.WorkingTile == nil {
		tiles = FindValidPlacementTilesForFirstCardOfHand(board, blocked)
	} else {
		working := *req.WorkingTile
		if working < 0 || working >= BoardSize {
			http.Error(w, "invalid working tile\n", http.StatusBadRequest)
			return
		}
		var direction Direction
		switch req.Direction {
		case "horizontal":
			direction = Horizontal
		case "vertical":
			direction = Vertical
		default:
			msg := "Invalid direction. Must be 'horizontal' or 'vertical'.\n"
			http.Error(w, msg, http.StatusBadRequest)
			return
		}
		tiles = FindValidPlacementTilesAfterHavingAlreadyPlacedSomeCards(
			board, blocked, working, direction, limit)
	}
	if tiles == nil {
		tiles = []int{}
	}
	result := PlacementsResponse{
		Version: ProtocolVersion,
		Count:   len(tiles),
		Tiles:   tiles,
	}
	if err := json.NewEncoder(w).Encode(result); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// HandleScoreRequest handles an incoming score request
func HandleScoreRequest(w http.ResponseWriter, req ScoreRequest) {
	if len(req.Cards) != HandSize {
		msg := fmt.Sprintf("Invalid hand. Must be %v cards.\n", HandSize)
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	cards := make([]Card, HandSize)
	for i, code := range req.Cards {
		card, err := ParseCard(code)
		if err != nil {
			http.Error(w, err.Error()+"\n", http.StatusBadRequest)
			return
		}
		cards[i] = card
	}
	if len(req.Multipliers) != 0 && len(req.Multipliers) != HandSize {
		msg := fmt.Sprintf("Invalid multipliers. Must be %v values.\n", HandSize)
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	modifiers := make([]BoardModifier, HandSize)
	for i, m := range req.Multipliers {
		if m > 1 {
			modifiers[i] = &HandMultiplier{Multiplier: m}
		}
	}
	identity := Analyze(cards)
	if identity == HandInvalid {
		http.Error(w, "Cards do not form a valid hand.\n", http.StatusBadRequest)
		return
	}
	classification, err := ScoreHand(cards, modifiers, identity)
	if err != nil {
		http.Error(w, err.Error()+"\n", http.StatusBadRequest)
		return
	}
	scored := make([]string, len(classification.ScoredCards))
	for i, c := range classification.ScoredCards {
		scored[i] = c.String()
	}
	result := ScoreResponse{
		Version:            ProtocolVersion,
		HandName:           classification.HandName.String(),
		SpecialHandName:    classification.SpecialHandName.String(),
		Score:              classification.Score,
		ScoreWithModifiers: classification.ScoreWithModifiers,
		ScoredCards:        scored,
	}
	if err := json.NewEncoder(w).Encode(result); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
