// game.go
//
// Copyright (C) 2026 Iron Fox Games
//
// This file implements the Match class: the turn-based engine that
// owns the deck, the hands, the modifier grid and the turn history.
// The turn history is the source of truth; the board occupancy is
// always rebuilt from it, never stored.

package gridpoker

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// Sentinel errors returned by the turn commit. They all indicate a
// caller bug or an illegal play, never an internal failure.
var (
	ErrMatchComplete    = errors.New("match is already complete")
	ErrNotPlayersTurn   = errors.New("it is not the player's turn")
	ErrNotBotsTurn      = errors.New("it is not the bot's turn")
	ErrTileOccupied     = errors.New("tile is already occupied")
	ErrTileBlocked      = errors.New("tile is blocked")
	ErrCardNotInHand    = errors.New("card is not in the hand")
	ErrCardsNotInLine   = errors.New("placed cards do not form a single line")
	ErrHandNotFiveCards = errors.New("played line does not span five cards")
	ErrInvalidHand      = errors.New("played line is not a recognized hand")
)

// TurnKind discriminates played turns from passes
type TurnKind int

const (
	TurnPlay TurnKind = iota
	TurnNoPlay
)

// CardPlacement is one card dropped on one tile. OriginalCard is the
// card as held in the hand; Card is the card as placed (they differ
// only when a powerup transformed the card on the way down).
type CardPlacement struct {
	BoardIndex   int  `json:"boardIndex"`
	Card         Card `json:"card"`
	OriginalCard Card `json:"originalCard"`
}

// NewCardPlacement places a hand card unchanged
func NewCardPlacement(idx int, card Card) CardPlacement {
	return CardPlacement{BoardIndex: idx, Card: card, OriginalCard: card}
}

// TileUpdate sets or clears one board tile. A nil Card clears it.
type TileUpdate struct {
	BoardIndex int   `json:"boardIndex"`
	Card       *Card `json:"card,omitempty"`
}

// PowerupUsage records one powerup applied during a turn, as the tile
// updates it caused. Pre updates apply before the turn's placements,
// post updates after, so replaying the history reproduces the board.
type PowerupUsage struct {
	Name            string       `json:"name"`
	PreTileUpdates  []TileUpdate `json:"preTileUpdates,omitempty"`
	PostTileUpdates []TileUpdate `json:"postTileUpdates,omitempty"`
}

// ModifierPlacement assigns a modifier to a tile in a level configuration
type ModifierPlacement struct {
	BoardIndex int
	Modifier   BoardModifier
}

// Objective is an optional match goal: reach the target total score
type Objective struct {
	TargetScore int `json:"targetScore"`
}

// Turn is one committed entry of the match history. Everything needed
// to rebuild the board and recompute the scores lives here.
type Turn struct {
	Kind            TurnKind        `json:"kind"`
	CardPlacements  []CardPlacement `json:"cardPlacements,omitempty"`
	PowerupUsages   []PowerupUsage  `json:"powerupUsages,omitempty"`
	ModifiersUsed   []BoardModifier `json:"-"`
	Score           int             `json:"score"`
	HandName        HandName        `json:"handName"`
	SpecialHandName SpecialHand     `json:"specialHandName"`
	BaseHands       []HandName      `json:"baseHands,omitempty"`
	ScoredCards     []Card          `json:"scoredCards,omitempty"`
	// Fallout of burning food after this turn
	TilesBurned     []int `json:"tilesBurned,omitempty"`
	ScoreLossAmount int   `json:"scoreLossAmount"`
}

// GameConfig describes a level: the fixed board contents, the hazards
// and the completion conditions. It is immutable once a match starts.
type GameConfig struct {
	WithBot        bool
	PlaceAnchor    bool
	StartingBoard  []CardPlacement
	BoardModifiers []ModifierPlacement
	CustomDeck     []Card
	TurnLimit      int        // 0 for no limit
	Objective      *Objective // nil for none
}

// Match is a container for an in-progress match. The Turns list is
// authoritative: boards handed out by BuildBoardFromTurns are derived
// snapshots. The modifier grid evolves independently of the history
// (hazards tick between turns).
type Match struct {
	Config         GameConfig
	Turns          []Turn
	Deck           Deck
	PlayerHand     []Card
	OpponentHand   []Card
	BoardModifiers ModifierGrid
	// One-shot score multiplier armed by the extra-servings powerup,
	// consumed by the next play commit
	ExtraServingsMultiplier int

	rng        *rand.Rand
	classifier *Classifier
}

// NewGame starts a match from a level configuration. A nil rng seeds
// from the clock; pass a seeded source for reproducible matches.
func NewGame(config GameConfig, rng *rand.Rand) *Match {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	var deck Deck
	if len(config.CustomDeck) > 0 {
		deck = NewCustomDeck(config.CustomDeck)
	} else {
		deck = NewStandardDeck()
		deck.Shuffle(rng)
	}
	match := &Match{
		Config:                  config,
		Deck:                    deck,
		ExtraServingsMultiplier: 1,
		rng:                     rng,
		classifier:              NewClassifier(0),
	}
	// Modifiers are deep-copied so matches never share hazard state
	// with the level configuration
	for _, mp := range config.BoardModifiers {
		match.BoardModifiers.Add(mp.BoardIndex, cloneModifier(mp.Modifier))
	}
	match.refillHand(&match.PlayerHand)
	if config.WithBot {
		match.refillHand(&match.OpponentHand)
	}
	return match
}

// refillHand draws from the deck until the hand is full or the deck
// is empty
func (match *Match) refillHand(hand *[]Card) {
	for len(*hand) < HandSize {
		card, ok := match.Deck.Draw()
		if !ok {
			return
		}
		*hand = append(*hand, card)
	}
}

// PlayerToMove returns 0 if it is the player's turn, 1 for the bot.
// The turn parity of the history decides; there is no separate field
// to fall out of sync.
func (match *Match) PlayerToMove() int {
	if !match.Config.WithBot {
		return 0
	}
	return len(match.Turns) % 2
}

// BuildBoardFromTurns replays the history into a fresh board. The
// anchor wild and the starting board apply first (turn -1), then each
// turn's powerup pre-updates, placements and post-updates in order.
// Live modifiers are overlaid onto the surviving tiles.
func (match *Match) BuildBoardFromTurns() *Board {
	board := &Board{}
	if match.Config.PlaceAnchor {
		board.PlaceTile(AnchorIndex, NewWild(), -1)
	}
	for _, p := range match.Config.StartingBoard {
		board.PlaceTile(p.BoardIndex, p.Card, -1)
	}
	for turnIdx, turn := range match.Turns {
		for _, pu := range turn.PowerupUsages {
			applyTileUpdates(board, pu.PreTileUpdates, turnIdx)
		}
		for _, p := range turn.CardPlacements {
			board.PlaceTile(p.BoardIndex, p.Card, turnIdx)
		}
		for _, pu := range turn.PowerupUsages {
			applyTileUpdates(board, pu.PostTileUpdates, turnIdx)
		}
	}
	for idx := range board {
		if board[idx] != nil {
			board[idx].Modifiers = match.BoardModifiers[idx]
		}
	}
	return board
}

// applyTileUpdates sets and clears tiles as recorded by a powerup
func applyTileUpdates(board *Board, updates []TileUpdate, turnIdx int) {
	for _, u := range updates {
		if u.BoardIndex < 0 || u.BoardIndex >= BoardSize {
			continue
		}
		if u.Card == nil {
			board[u.BoardIndex] = nil
			continue
		}
		board[u.BoardIndex] = &BoardTile{Card: *u.Card, PlacedOnTurn: turnIdx}
	}
}

// ArmExtraServings arms the one-shot score multiplier for the next
// played hand. It stacks multiplicatively if armed more than once.
func (match *Match) ArmExtraServings(multiplier int) {
	if multiplier > 1 {
		match.ExtraServingsMultiplier *= multiplier
	}
}

// FindHandIncludingAnchors resolves the full five-card line of a
// play: the placed cards plus the board cards (anchors) they connect
// through. The placements must sit on one row or one column; gaps
// between them must be anchors; the contiguous run containing them
// must span exactly five cards. The returned placements are in board
// order along the line.
func FindHandIncludingAnchors(board *Board, placements []CardPlacement) ([]CardPlacement, Direction, error) {
	if len(placements) == 0 {
		return nil, Horizontal, ErrCardsNotInLine
	}
	x0, y0 := BoardCoords(placements[0].BoardIndex)
	sameRow, sameCol := true, true
	for _, p := range placements[1:] {
		x, y := BoardCoords(p.BoardIndex)
		sameRow = sameRow && y == y0
		sameCol = sameCol && x == x0
	}
	if !sameRow && !sameCol {
		return nil, Horizontal, ErrCardsNotInLine
	}
	// A lone card commits to whichever direction yields a full line
	if sameRow {
		if line, err := lineThroughPlacements(board, placements, Horizontal); err == nil {
			return line, Horizontal, nil
		} else if !sameCol {
			return nil, Horizontal, err
		}
	}
	line, err := lineThroughPlacements(board, placements, Vertical)
	return line, Vertical, err
}

// lineThroughPlacements walks the contiguous run of placed and board
// cards containing the placements along one direction
func lineThroughPlacements(board *Board, placements []CardPlacement, direction Direction) ([]CardPlacement, error) {
	dx, dy := direction.delta()
	placed := make(map[int]CardPlacement, len(placements))
	loX, loY := BoardCoords(placements[0].BoardIndex)
	hiX, hiY := loX, loY
	for _, p := range placements {
		placed[p.BoardIndex] = p
		x, y := BoardCoords(p.BoardIndex)
		if x*dx+y*dy < loX*dx+loY*dy {
			loX, loY = x, y
		}
		if x*dx+y*dy > hiX*dx+hiY*dy {
			hiX, hiY = x, y
		}
	}
	// Gaps between the extreme placements must be anchors
	for x, y := loX, loY; x != hiX || y != hiY; x, y = x+dx, y+dy {
		idx := BoardIndex(x, y)
		if _, ok := placed[idx]; !ok && !board.IsOccupied(x, y) {
			return nil, ErrCardsNotInLine
		}
	}
	// Extend through adjoining anchors, backward then forward
	for board.IsOccupied(loX-dx, loY-dy) {
		loX, loY = loX-dx, loY-dy
	}
	for board.IsOccupied(hiX+dx, hiY+dy) {
		hiX, hiY = hiX+dx, hiY+dy
	}
	span := (hiX-loX)*dx + (hiY-loY)*dy + 1
	if span != HandSize {
		return nil, ErrHandNotFiveCards
	}
	line := make([]CardPlacement, 0, HandSize)
	for i := 0; i < HandSize; i++ {
		x, y := loX+dx*i, loY+dy*i
		idx := BoardIndex(x, y)
		if p, ok := placed[idx]; ok {
			line = append(line, p)
			continue
		}
		if !board.IsOccupied(x, y) {
			return nil, ErrCardsNotInLine
		}
		anchor := board[idx].Card
		line = append(line, CardPlacement{BoardIndex: idx, Card: anchor, OriginalCard: anchor})
	}
	return line, nil
}

// FindWallGroup returns the connected group of breakable walls that
// share the starting wall's unlock requirement, found by flood fill
// over the four-neighbor adjacency. The starting wall is included.
func FindWallGroup(grid *ModifierGrid, start *BreakableWall) []*BreakableWall {
	if start == nil {
		return nil
	}
	group := []*BreakableWall{start}
	seen := map[int]bool{start.BoardIndex: true}
	queue := []int{start.BoardIndex}
	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		x, y := BoardCoords(idx)
		for _, n := range neighborIndices(x, y) {
			if seen[n] {
				continue
			}
			wall := grid.WallAt(n)
			if wall == nil || !wall.SameRequirement(start) {
				continue
			}
			seen[n] = true
			group = append(group, wall)
			queue = append(queue, n)
		}
	}
	return group
}

// neighborIndices returns the in-bounds four-neighbors of (x, y)
func neighborIndices(x, y int) []int {
	neighbors := make([]int, 0, 4)
	for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		nx, ny := x+d[0], y+d[1]
		if nx < 0 || nx >= BoardDimension || ny < 0 || ny >= BoardDimension {
			continue
		}
		neighbors = append(neighbors, BoardIndex(nx, ny))
	}
	return neighbors
}

// DoPlayerTurn commits the player's turn: a played line, or a pass
// when placements is empty. Hazards tick after the commit.
func (match *Match) DoPlayerTurn(placements []CardPlacement, powerups []PowerupUsage) error {
	if match.IsMatchComplete() {
		return ErrMatchComplete
	}
	if match.PlayerToMove() != 0 {
		return ErrNotPlayersTurn
	}
	return match.commitTurn(placements, powerups, &match.PlayerHand)
}

// DoBotTurn commits the bot's turn; see DoPlayerTurn
func (match *Match) DoBotTurn(placements []CardPlacement, powerups []PowerupUsage) error {
	if match.IsMatchComplete() {
		return ErrMatchComplete
	}
	if !match.Config.WithBot || match.PlayerToMove() != 1 {
		return ErrNotBotsTurn
	}
	return match.commitTurn(placements, powerups, &match.OpponentHand)
}

// commitTurn validates a turn in full before mutating any state, then
// applies it: consumes hand cards and tile modifiers, breaks wall
// groups, scores the line, refills the hand, appends the history
// entry and ticks the hazards.
func (match *Match) commitTurn(placements []CardPlacement, powerups []PowerupUsage, hand *[]Card) error {
	if len(placements) == 0 {
		match.Turns = append(match.Turns, Turn{Kind: TurnNoPlay, PowerupUsages: powerups})
		match.TickModifiers(nil)
		return nil
	}
	if len(placements) > HandSize {
		return fmt.Errorf("%d placements exceed the hand size", len(placements))
	}
	board := match.BuildBoardFromTurns()
	turnIdx := len(match.Turns)
	for _, pu := range powerups {
		applyTileUpdates(board, pu.PreTileUpdates, turnIdx)
	}
	blocked := match.BoardModifiers.BlockedCells()
	seen := make(map[int]bool, len(placements))
	for _, p := range placements {
		if p.BoardIndex < 0 || p.BoardIndex >= BoardSize {
			return fmt.Errorf("placement index %d out of range", p.BoardIndex)
		}
		if seen[p.BoardIndex] || board[p.BoardIndex] != nil {
			return ErrTileOccupied
		}
		if blocked[p.BoardIndex] {
			return ErrTileBlocked
		}
		seen[p.BoardIndex] = true
	}
	if !handContains(*hand, placements) {
		return ErrCardNotInHand
	}
	line, _, err := FindHandIncludingAnchors(board, placements)
	if err != nil {
		return err
	}
	lineCards := make([]Card, HandSize)
	lineMods := make([]BoardModifier, HandSize)
	for i, p := range line {
		lineCards[i] = p.Card
		// Typed-nil guard: only assign through the interface when a
		// multiplier is actually present
		if hm := match.BoardModifiers.MultiplierAt(p.BoardIndex); hm != nil {
			lineMods[i] = hm
		}
	}
	identity := match.classifier.Analyze(lineCards)
	if identity == HandInvalid {
		return ErrInvalidHand
	}
	classification, err := ScoreHand(lineCards, lineMods, identity)
	if err != nil {
		return err
	}
	// All validation has passed; mutations start here
	for _, p := range placements {
		removeCard(hand, p.OriginalCard)
	}
	var modifiersUsed []BoardModifier
	for _, p := range placements {
		// Covering a burning food defuses it
		if bf := match.BoardModifiers.BurningAt(p.BoardIndex); bf != nil {
			match.BoardModifiers.Remove(p.BoardIndex, bf)
			modifiersUsed = append(modifiersUsed, bf)
		}
	}
	// Multipliers are consumed from every tile of the scored line,
	// anchors included, since every line tile took part in the score
	for _, p := range line {
		if hm := match.BoardModifiers.MultiplierAt(p.BoardIndex); hm != nil {
			match.BoardModifiers.Remove(p.BoardIndex, hm)
			modifiersUsed = append(modifiersUsed, hm)
		}
	}
	match.breakWalls(placements, &modifiersUsed)
	score := classification.ScoreWithModifiers * match.ExtraServingsMultiplier
	match.ExtraServingsMultiplier = 1
	match.refillHand(hand)
	match.Turns = append(match.Turns, Turn{
		Kind:            TurnPlay,
		CardPlacements:  placements,
		PowerupUsages:   powerups,
		ModifiersUsed:   modifiersUsed,
		Score:           score,
		HandName:        classification.HandName,
		SpecialHandName: classification.SpecialHandName,
		BaseHands:       classification.BaseHandNames,
		ScoredCards:     classification.ScoredCards,
	})
	justPlayed := make(map[int]Card, len(placements))
	for _, p := range placements {
		justPlayed[p.BoardIndex] = p.Card
	}
	match.TickModifiers(justPlayed)
	return nil
}

// breakWalls checks every placed card against the walls on its four
// neighbors. A matching card de-reinforces a reinforced wall group,
// or removes an unreinforced one; each group reacts at most once per
// turn.
func (match *Match) breakWalls(placements []CardPlacement, modifiersUsed *[]BoardModifier) {
	processed := make(map[*BreakableWall]bool)
	for _, p := range placements {
		x, y := BoardCoords(p.BoardIndex)
		for _, n := range neighborIndices(x, y) {
			wall := match.BoardModifiers.WallAt(n)
			if wall == nil || processed[wall] || !wall.Matches(p.Card) {
				continue
			}
			group := FindWallGroup(&match.BoardModifiers, wall)
			for _, w := range group {
				processed[w] = true
				if w.Reinforced {
					w.Reinforced = false
					continue
				}
				match.BoardModifiers.Remove(w.BoardIndex, w)
				*modifiersUsed = append(*modifiersUsed, w)
			}
		}
	}
}

// handContains reports whether the hand covers the placements'
// original cards as a multiset
func handContains(hand []Card, placements []CardPlacement) bool {
	remaining := make([]Card, len(hand))
	copy(remaining, hand)
	for _, p := range placements {
		found := false
		for i, c := range remaining {
			if c == p.OriginalCard {
				remaining[i] = remaining[len(remaining)-1]
				remaining = remaining[:len(remaining)-1]
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// removeCard removes one matching card from the hand
func removeCard(hand *[]Card, card Card) {
	for i, c := range *hand {
		if c == card {
			*hand = append((*hand)[:i], (*hand)[i+1:]...)
			return
		}
	}
}

// TickModifiers advances the burning-food hazards by one turn: every
// counter decrements, and expired hazards burn their tile and spread.
// Spread is driven by an explicit worklist, never recursion: a burnt
// neighbor card records its point value as score loss on the turn
// just committed, a neighboring hazard cascades immediately, an
// already-burnt tile stops the fire, and anything else, walls
// included, is cleared and left burnt.
func (match *Match) TickModifiers(justPlayed map[int]Card) {
	var queue []int
	for idx := range match.BoardModifiers {
		bf := match.BoardModifiers.BurningAt(idx)
		if bf == nil {
			continue
		}
		bf.ExpiresIn--
		if bf.ExpiresIn <= 0 {
			queue = append(queue, idx)
		}
	}
	if len(queue) == 0 {
		return
	}
	board := match.BuildBoardFromTurns()
	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		bf := match.BoardModifiers.BurningAt(idx)
		if bf == nil {
			continue
		}
		match.BoardModifiers.Remove(idx, bf)
		match.burnTile(board, idx, justPlayed)
		x, y := BoardCoords(idx)
		for _, n := range neighborIndices(x, y) {
			if match.BoardModifiers.IsBurned(n) {
				continue
			}
			if nbf := match.BoardModifiers.BurningAt(n); nbf != nil {
				// Early cascade: a neighboring hazard expires at once
				if nbf.ExpiresIn > 0 {
					nbf.ExpiresIn = 0
					queue = append(queue, n)
				}
				continue
			}
			match.burnTile(board, n, justPlayed)
		}
	}
}

// burnTile marks a tile burnt and, if a card sits on it, records the
// score loss on the turn just committed
func (match *Match) burnTile(board *Board, idx int, justPlayed map[int]Card) {
	if match.BoardModifiers.IsBurned(idx) {
		return
	}
	// Standing modifiers are destroyed by the fire: a wall or a
	// multiplier is cleared and the tile marked burnt in its place
	if w := match.BoardModifiers.WallAt(idx); w != nil {
		match.BoardModifiers.Remove(idx, w)
	}
	if hm := match.BoardModifiers.MultiplierAt(idx); hm != nil {
		match.BoardModifiers.Remove(idx, hm)
	}
	match.BoardModifiers.Add(idx, &BurnedTile{})
	card, present := justPlayed[idx]
	if !present {
		if board[idx] == nil {
			return
		}
		card = board[idx].Card
	}
	if len(match.Turns) == 0 {
		return
	}
	last := &match.Turns[len(match.Turns)-1]
	last.TilesBurned = append(last.TilesBurned, idx)
	last.ScoreLossAmount += card.PointValue()
}

// IsMatchComplete reports whether the match has ended: the turn limit
// was reached, the objective was met, the deck and the hand to move
// ran dry, or both sides passed in succession (a single pass ends a
// solo match).
func (match *Match) IsMatchComplete() bool {
	if match.Config.TurnLimit > 0 && len(match.Turns) >= match.Config.TurnLimit {
		return true
	}
	if match.Config.Objective != nil {
		player, _ := match.CalculateScores()
		if player >= match.Config.Objective.TargetScore {
			return true
		}
	}
	n := len(match.Turns)
	if match.Config.WithBot {
		if n >= 2 && match.Turns[n-1].Kind == TurnNoPlay && match.Turns[n-2].Kind == TurnNoPlay {
			return true
		}
	} else if n >= 1 && match.Turns[n-1].Kind == TurnNoPlay {
		return true
	}
	if len(match.Deck) == 0 {
		hand := match.PlayerHand
		if match.Config.WithBot && match.PlayerToMove() == 1 {
			hand = match.OpponentHand
		}
		if len(hand) == 0 {
			return true
		}
	}
	return false
}

// IsObjectiveMet reports whether the player has reached the
// configured target score
func (match *Match) IsObjectiveMet() bool {
	if match.Config.Objective == nil {
		return false
	}
	player, _ := match.CalculateScores()
	return player >= match.Config.Objective.TargetScore
}

// CalculateScores folds the turn history into the two running totals.
// Each turn contributes its score minus its burn losses, attributed
// by turn parity; a running total is clamped at zero after every
// turn, so an early disaster cannot leave a side in debt.
func (match *Match) CalculateScores() (player, opponent int) {
	for i, turn := range match.Turns {
		delta := turn.Score - turn.ScoreLossAmount
		if match.Config.WithBot && i%2 == 1 {
			opponent += delta
			if opponent < 0 {
				opponent = 0
			}
			continue
		}
		player += delta
		if player < 0 {
			player = 0
		}
	}
	return player, opponent
}
