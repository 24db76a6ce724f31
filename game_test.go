// game_test.go
//
// Copyright (C) 2026 Iron Fox Games
//
// Tests for the match engine

package gridpoker

import (
	"math/rand"
	"testing"
)

// royalDeck authors a deck whose first hand completes a royal flush
// through the anchor wild
func royalDeck() []Card {
	return []Card{
		NewCard(10, Spades),
		NewCard(Jack, Spades),
		NewCard(Queen, Spades),
		NewCard(King, Spades),
		NewCard(2, Clubs),
	}
}

// royalPlacements plays the four spades vertically through the anchor
func royalPlacements() []CardPlacement {
	return []CardPlacement{
		NewCardPlacement(BoardIndex(6, 4), NewCard(10, Spades)),
		NewCardPlacement(BoardIndex(6, 5), NewCard(Jack, Spades)),
		NewCardPlacement(BoardIndex(6, 7), NewCard(Queen, Spades)),
		NewCardPlacement(BoardIndex(6, 8), NewCard(King, Spades)),
	}
}

func TestNewGameIsDeterministic(t *testing.T) {
	matchA := NewGame(DefaultGameConfig(), rand.New(rand.NewSource(7)))
	matchB := NewGame(DefaultGameConfig(), rand.New(rand.NewSource(7)))
	if len(matchA.PlayerHand) != HandSize {
		t.Fatalf("Player hand has %v cards, expected %v", len(matchA.PlayerHand), HandSize)
	}
	for i := range matchA.PlayerHand {
		if matchA.PlayerHand[i] != matchB.PlayerHand[i] {
			t.Errorf("Hands dealt with the same seed differ at %v", i)
		}
	}
}

func TestAnchorPlacement(t *testing.T) {
	match := NewGame(DefaultGameConfig(), rand.New(rand.NewSource(1)))
	board := match.BuildBoardFromTurns()
	tile := board[AnchorIndex]
	if tile == nil || !tile.Card.IsWild() {
		t.Fatalf("Center tile does not hold the anchor wild")
	}
	if board.NumTiles() != 1 {
		t.Errorf("Fresh board has %v tiles, expected 1", board.NumTiles())
	}
}

func TestPlayTurnThroughAnchor(t *testing.T) {
	config := DefaultGameConfig()
	config.CustomDeck = royalDeck()
	match := NewGame(config, rand.New(rand.NewSource(1)))
	if err := match.DoPlayerTurn(royalPlacements(), nil); err != nil {
		t.Fatalf("Legal play rejected: %v", err)
	}
	turn := match.Turns[0]
	if turn.HandName != HandRoyalFlush {
		t.Errorf("Played hand classified as %v, expected %v", turn.HandName, HandRoyalFlush)
	}
	if turn.Score != 6250 {
		t.Errorf("Played hand scored %v, expected 6250", turn.Score)
	}
	player, _ := match.CalculateScores()
	if player != 6250 {
		t.Errorf("Player total is %v, expected 6250", player)
	}
	// The played cards left the hand; the deck had nothing to refill with
	if len(match.PlayerHand) != 1 {
		t.Errorf("Player hand has %v cards after the play, expected 1", len(match.PlayerHand))
	}
	board := match.BuildBoardFromTurns()
	if board.NumTiles() != 5 {
		t.Errorf("Board has %v tiles after the play, expected 5", board.NumTiles())
	}
}

func TestBoardRebuildIsIdempotent(t *testing.T) {
	config := DefaultGameConfig()
	config.CustomDeck = royalDeck()
	match := NewGame(config, rand.New(rand.NewSource(1)))
	if err := match.DoPlayerTurn(royalPlacements(), nil); err != nil {
		t.Fatalf("Legal play rejected: %v", err)
	}
	first := match.BuildBoardFromTurns()
	second := match.BuildBoardFromTurns()
	for idx := range first {
		a, b := first[idx], second[idx]
		if (a == nil) != (b == nil) {
			t.Fatalf("Rebuilt boards differ at %v", idx)
		}
		if a != nil && (a.Card != b.Card || a.PlacedOnTurn != b.PlacedOnTurn) {
			t.Fatalf("Rebuilt boards differ at %v: %v vs %v", idx, a, b)
		}
	}
}

func TestPlayValidation(t *testing.T) {
	config := DefaultGameConfig()
	config.CustomDeck = royalDeck()
	match := NewGame(config, rand.New(rand.NewSource(1)))
	// Placing on the occupied anchor
	err := match.DoPlayerTurn([]CardPlacement{
		NewCardPlacement(AnchorIndex, NewCard(10, Spades)),
	}, nil)
	if err != ErrTileOccupied {
		t.Errorf("Got %v, expected %v", err, ErrTileOccupied)
	}
	// Playing a card that is not in the hand
	placements := royalPlacements()
	placements[0] = NewCardPlacement(BoardIndex(6, 4), NewCard(10, Hearts))
	if err := match.DoPlayerTurn(placements, nil); err != ErrCardNotInHand {
		t.Errorf("Got %v, expected %v", err, ErrCardNotInHand)
	}
	// Placements that do not line up
	placements = royalPlacements()
	placements[3] = NewCardPlacement(BoardIndex(7, 8), NewCard(King, Spades))
	if err := match.DoPlayerTurn(placements, nil); err != ErrCardsNotInLine {
		t.Errorf("Got %v, expected %v", err, ErrCardsNotInLine)
	}
	// A line short of five cards
	placements = royalPlacements()[:2]
	if err := match.DoPlayerTurn(placements, nil); err != ErrHandNotFiveCards {
		t.Errorf("Got %v, expected %v", err, ErrHandNotFiveCards)
	}
	// Nothing was committed by the rejected plays
	if len(match.Turns) != 0 {
		t.Errorf("Rejected plays left %v turns in the history", len(match.Turns))
	}
	if len(match.PlayerHand) != HandSize {
		t.Errorf("Rejected plays consumed hand cards")
	}
}

func TestPassEndsSoloMatch(t *testing.T) {
	match := NewGame(DefaultGameConfig(), rand.New(rand.NewSource(1)))
	if match.IsMatchComplete() {
		t.Fatalf("Fresh match reported complete")
	}
	if err := match.DoPlayerTurn(nil, nil); err != nil {
		t.Fatalf("Pass rejected: %v", err)
	}
	if !match.IsMatchComplete() {
		t.Errorf("Solo match did not end after a pass")
	}
}

func TestTurnParity(t *testing.T) {
	match := NewGame(DefaultBotGameConfig(), rand.New(rand.NewSource(1)))
	if err := match.DoBotTurn(nil, nil); err != ErrNotBotsTurn {
		t.Errorf("Got %v, expected %v", err, ErrNotBotsTurn)
	}
	if err := match.DoPlayerTurn(nil, nil); err != nil {
		t.Fatalf("Player pass rejected: %v", err)
	}
	if err := match.DoPlayerTurn(nil, nil); err != ErrNotPlayersTurn {
		t.Errorf("Got %v, expected %v", err, ErrNotPlayersTurn)
	}
	if err := match.DoBotTurn(nil, nil); err != nil {
		t.Fatalf("Bot pass rejected: %v", err)
	}
	// Both sides passed in succession
	if !match.IsMatchComplete() {
		t.Errorf("Match did not end after both sides passed")
	}
}

func TestTurnLimit(t *testing.T) {
	config := DefaultBotGameConfig()
	config.TurnLimit = 1
	match := NewGame(config, rand.New(rand.NewSource(1)))
	if err := match.DoPlayerTurn(nil, nil); err != nil {
		t.Fatalf("Pass rejected: %v", err)
	}
	if !match.IsMatchComplete() {
		t.Errorf("Match did not end at the turn limit")
	}
	if err := match.DoBotTurn(nil, nil); err != ErrMatchComplete {
		t.Errorf("Got %v, expected %v", err, ErrMatchComplete)
	}
}

func TestWallBlocksAndBreaks(t *testing.T) {
	wallIdx := BoardIndex(6, 9)
	config := DefaultGameConfig()
	config.CustomDeck = royalDeck()
	config.BoardModifiers = []ModifierPlacement{
		{BoardIndex: wallIdx, Modifier: &BreakableWall{
			RequiredRank: AnyRequirement,
			RequiredSuit: Spades,
			BoardIndex:   wallIdx,
		}},
	}
	match := NewGame(config, rand.New(rand.NewSource(1)))
	if !match.BoardModifiers.BlockedCells()[wallIdx] {
		t.Fatalf("Wall tile is not blocked")
	}
	// Placing onto the wall tile is rejected outright
	err := match.DoPlayerTurn([]CardPlacement{
		NewCardPlacement(wallIdx, NewCard(10, Spades)),
	}, nil)
	if err != ErrTileBlocked {
		t.Fatalf("Got %v, expected %v", err, ErrTileBlocked)
	}
	// The king lands at (6, 8), adjacent to the wall, and matches its
	// suit requirement
	if err := match.DoPlayerTurn(royalPlacements(), nil); err != nil {
		t.Fatalf("Legal play rejected: %v", err)
	}
	if match.BoardModifiers.WallAt(wallIdx) != nil {
		t.Errorf("Matching adjacent card did not break the wall")
	}
	if match.BoardModifiers.BlockedCells()[wallIdx] {
		t.Errorf("Broken wall still blocks its tile")
	}
}

func TestReinforcedWallDegradesFirst(t *testing.T) {
	wallIdx := BoardIndex(6, 9)
	config := DefaultGameConfig()
	config.CustomDeck = royalDeck()
	config.BoardModifiers = []ModifierPlacement{
		{BoardIndex: wallIdx, Modifier: &BreakableWall{
			RequiredRank: AnyRequirement,
			RequiredSuit: AnyRequirement,
			Reinforced:   true,
			BoardIndex:   wallIdx,
		}},
	}
	match := NewGame(config, rand.New(rand.NewSource(1)))
	if err := match.DoPlayerTurn(royalPlacements(), nil); err != nil {
		t.Fatalf("Legal play rejected: %v", err)
	}
	wall := match.BoardModifiers.WallAt(wallIdx)
	if wall == nil {
		t.Fatalf("Reinforced wall was removed outright")
	}
	if wall.Reinforced {
		t.Errorf("Reinforced wall did not degrade")
	}
}

func TestFindWallGroup(t *testing.T) {
	var grid ModifierGrid
	shared := func(idx int) *BreakableWall {
		return &BreakableWall{RequiredRank: 5, RequiredSuit: AnyRequirement, BoardIndex: idx}
	}
	a, b := shared(BoardIndex(3, 3)), shared(BoardIndex(4, 3))
	other := &BreakableWall{RequiredRank: 9, RequiredSuit: AnyRequirement, BoardIndex: BoardIndex(5, 3)}
	grid.Add(a.BoardIndex, a)
	grid.Add(b.BoardIndex, b)
	grid.Add(other.BoardIndex, other)
	group := FindWallGroup(&grid, a)
	if len(group) != 2 {
		t.Fatalf("Wall group has %v members, expected 2", len(group))
	}
	// The group is symmetric regardless of the starting wall
	group = FindWallGroup(&grid, b)
	if len(group) != 2 {
		t.Errorf("Wall group from the other end has %v members, expected 2", len(group))
	}
}

func TestBurningFoodSpread(t *testing.T) {
	config := GameConfig{
		StartingBoard: []CardPlacement{
			NewCardPlacement(BoardIndex(1, 0), NewCard(5, Hearts)),
		},
		BoardModifiers: []ModifierPlacement{
			{BoardIndex: BoardIndex(0, 0), Modifier: &BurningFood{ExpiresIn: 1}},
		},
	}
	match := NewGame(config, rand.New(rand.NewSource(1)))
	if err := match.DoPlayerTurn(nil, nil); err != nil {
		t.Fatalf("Pass rejected: %v", err)
	}
	// The hazard expired, burning its own tile and both neighbors
	for _, idx := range []int{BoardIndex(0, 0), BoardIndex(1, 0), BoardIndex(0, 1)} {
		if !match.BoardModifiers.IsBurned(idx) {
			t.Errorf("Tile %v was not burnt", idx)
		}
	}
	// The burnt card charges its point value to the turn
	turn := match.Turns[0]
	if turn.ScoreLossAmount != 50 {
		t.Errorf("Score loss is %v, expected 50", turn.ScoreLossAmount)
	}
	if len(turn.TilesBurned) != 1 || turn.TilesBurned[0] != BoardIndex(1, 0) {
		t.Errorf("Burnt tiles are %v, expected the card tile only", turn.TilesBurned)
	}
	// A negative turn never drags the total below zero
	if player, _ := match.CalculateScores(); player != 0 {
		t.Errorf("Player total is %v, expected clamping to 0", player)
	}
}

func TestBurningFoodCascade(t *testing.T) {
	config := GameConfig{
		BoardModifiers: []ModifierPlacement{
			{BoardIndex: BoardIndex(0, 0), Modifier: &BurningFood{ExpiresIn: 1}},
			{BoardIndex: BoardIndex(1, 0), Modifier: &BurningFood{ExpiresIn: 5}},
		},
	}
	match := NewGame(config, rand.New(rand.NewSource(1)))
	if err := match.DoPlayerTurn(nil, nil); err != nil {
		t.Fatalf("Pass rejected: %v", err)
	}
	// The neighboring hazard expires early and spreads in the same tick
	for _, idx := range []int{BoardIndex(0, 0), BoardIndex(1, 0), BoardIndex(2, 0), BoardIndex(1, 1)} {
		if !match.BoardModifiers.IsBurned(idx) {
			t.Errorf("Tile %v was not burnt by the cascade", idx)
		}
	}
	if match.BoardModifiers.BurningAt(BoardIndex(1, 0)) != nil {
		t.Errorf("Cascaded hazard is still on the board")
	}
}

func TestFireDestroysAdjacentWall(t *testing.T) {
	wallIdx := BoardIndex(1, 0)
	config := GameConfig{
		BoardModifiers: []ModifierPlacement{
			{BoardIndex: BoardIndex(0, 0), Modifier: &BurningFood{ExpiresIn: 1}},
			{BoardIndex: wallIdx, Modifier: &BreakableWall{
				RequiredRank: AnyRequirement,
				RequiredSuit: AnyRequirement,
				BoardIndex:   wallIdx,
			}},
		},
	}
	match := NewGame(config, rand.New(rand.NewSource(1)))
	if err := match.DoPlayerTurn(nil, nil); err != nil {
		t.Fatalf("Pass rejected: %v", err)
	}
	// The fire clears the wall and leaves its tile burnt
	if match.BoardModifiers.WallAt(wallIdx) != nil {
		t.Errorf("Wall survived the fire")
	}
	if !match.BoardModifiers.IsBurned(wallIdx) {
		t.Errorf("Wall tile was not burnt")
	}
	if !match.BoardModifiers.BlockedCells()[wallIdx] {
		t.Errorf("Burnt wall tile no longer blocks placement")
	}
}

func TestDefusingBurningFood(t *testing.T) {
	// Covering a burning food with a card defuses it
	config := DefaultGameConfig()
	config.CustomDeck = royalDeck()
	config.BoardModifiers = []ModifierPlacement{
		{BoardIndex: BoardIndex(6, 4), Modifier: &BurningFood{ExpiresIn: 1}},
	}
	match := NewGame(config, rand.New(rand.NewSource(1)))
	if err := match.DoPlayerTurn(royalPlacements(), nil); err != nil {
		t.Fatalf("Legal play rejected: %v", err)
	}
	if match.BoardModifiers.BurningAt(BoardIndex(6, 4)) != nil {
		t.Errorf("Covered hazard was not defused")
	}
	if match.BoardModifiers.IsBurned(BoardIndex(6, 4)) {
		t.Errorf("Defused hazard still burnt its tile")
	}
	if match.Turns[0].ScoreLossAmount != 0 {
		t.Errorf("Defused hazard charged a score loss")
	}
}

func TestHandMultiplierOnPlayedTile(t *testing.T) {
	config := DefaultGameConfig()
	config.CustomDeck = royalDeck()
	config.BoardModifiers = []ModifierPlacement{
		{BoardIndex: BoardIndex(6, 8), Modifier: &HandMultiplier{Multiplier: 2}},
	}
	match := NewGame(config, rand.New(rand.NewSource(1)))
	if err := match.DoPlayerTurn(royalPlacements(), nil); err != nil {
		t.Fatalf("Legal play rejected: %v", err)
	}
	if got := match.Turns[0].Score; got != 12500 {
		t.Errorf("Multiplied royal flush scored %v, expected 12500", got)
	}
	// The multiplier is consumed by the play
	if match.BoardModifiers.MultiplierAt(BoardIndex(6, 8)) != nil {
		t.Errorf("Hand multiplier survived the play")
	}
}

func TestHandMultiplierOnAnchorTileIsConsumed(t *testing.T) {
	config := DefaultGameConfig()
	config.CustomDeck = royalDeck()
	config.BoardModifiers = []ModifierPlacement{
		{BoardIndex: AnchorIndex, Modifier: &HandMultiplier{Multiplier: 2}},
	}
	match := NewGame(config, rand.New(rand.NewSource(1)))
	if err := match.DoPlayerTurn(royalPlacements(), nil); err != nil {
		t.Fatalf("Legal play rejected: %v", err)
	}
	// The anchor sits in the scored line, so its multiplier applies
	if got := match.Turns[0].Score; got != 12500 {
		t.Errorf("Multiplied royal flush scored %v, expected 12500", got)
	}
	// A multiplier that scored a line is spent, anchor tile or not
	if match.BoardModifiers.MultiplierAt(AnchorIndex) != nil {
		t.Errorf("Anchor multiplier survived the play")
	}
}

func TestPlayTransformedJoker(t *testing.T) {
	// A joker leaves the hand as the originalCard of a placement whose
	// card a powerup transformed on the way down
	config := DefaultGameConfig()
	config.CustomDeck = []Card{
		NewCard(10, Spades),
		NewCard(Jack, Spades),
		NewCard(Queen, Spades),
		NewJoker(),
		NewCard(2, Clubs),
	}
	match := NewGame(config, rand.New(rand.NewSource(1)))
	placements := royalPlacements()
	placements[3] = CardPlacement{
		BoardIndex:   BoardIndex(6, 8),
		Card:         NewCard(King, Spades),
		OriginalCard: NewJoker(),
	}
	if err := match.DoPlayerTurn(placements, nil); err != nil {
		t.Fatalf("Transformed joker play rejected: %v", err)
	}
	if match.Turns[0].HandName != HandRoyalFlush {
		t.Errorf("Played hand classified as %v, expected %v",
			match.Turns[0].HandName, HandRoyalFlush)
	}
	for _, c := range match.PlayerHand {
		if c.IsJoker() {
			t.Errorf("Played joker is still in the hand")
		}
	}
}

func TestExtraServings(t *testing.T) {
	config := DefaultGameConfig()
	config.CustomDeck = royalDeck()
	match := NewGame(config, rand.New(rand.NewSource(1)))
	match.ArmExtraServings(3)
	if err := match.DoPlayerTurn(royalPlacements(), nil); err != nil {
		t.Fatalf("Legal play rejected: %v", err)
	}
	if got := match.Turns[0].Score; got != 18750 {
		t.Errorf("Boosted royal flush scored %v, expected 18750", got)
	}
	if match.ExtraServingsMultiplier != 1 {
		t.Errorf("Extra servings multiplier was not consumed")
	}
}

func TestObjectiveCompletesMatch(t *testing.T) {
	config := DefaultGameConfig()
	config.CustomDeck = royalDeck()
	config.Objective = &Objective{TargetScore: 5000}
	match := NewGame(config, rand.New(rand.NewSource(1)))
	if err := match.DoPlayerTurn(royalPlacements(), nil); err != nil {
		t.Fatalf("Legal play rejected: %v", err)
	}
	if !match.IsObjectiveMet() {
		t.Errorf("Objective was not met at 6250 points")
	}
	if !match.IsMatchComplete() {
		t.Errorf("Match did not complete on meeting the objective")
	}
}

func TestCalculateScoresClampsPerTurn(t *testing.T) {
	match := &Match{
		Turns: []Turn{
			{Kind: TurnPlay, Score: 100, ScoreLossAmount: 300},
			{Kind: TurnPlay, Score: 50},
		},
	}
	player, opponent := match.CalculateScores()
	if player != 50 {
		t.Errorf("Player total is %v, expected 50 (clamped per turn)", player)
	}
	if opponent != 0 {
		t.Errorf("Opponent total is %v, expected 0", opponent)
	}
}

func TestGeneratePlaysFindsRoyal(t *testing.T) {
	config := DefaultGameConfig()
	config.CustomDeck = royalDeck()
	match := NewGame(config, rand.New(rand.NewSource(1)))
	plays := GeneratePlays(match)
	if len(plays) == 0 {
		t.Fatalf("No plays generated on a fresh board")
	}
	best := NewHighScoreBot().PickPlay(match, plays)
	if best == nil {
		t.Fatalf("High-score bot passed with plays available")
	}
	if best.HandName != HandRoyalFlush || best.Score != 6250 {
		t.Errorf("Best play is %v for %v, expected the royal flush for 6250",
			best.HandName, best.Score)
	}
	if err := match.DoPlayerTurn(best.Placements, nil); err != nil {
		t.Errorf("Generated play rejected: %v", err)
	}
}
