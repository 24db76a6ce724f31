// board_test.go
//
// Copyright (C) 2026 Iron Fox Games
//
// Tests for the board and the placement validator

package gridpoker

import (
	"testing"
)

func TestBoardIndexCoordsRoundTrip(t *testing.T) {
	for idx := 0; idx < BoardSize; idx++ {
		x, y := BoardCoords(idx)
		if BoardIndex(x, y) != idx {
			t.Errorf("Index %v round-tripped to %v", idx, BoardIndex(x, y))
		}
	}
	if AnchorIndex != BoardIndex(6, 6) {
		t.Errorf("Anchor index %v is not the center tile", AnchorIndex)
	}
}

func TestCanPlaceCardsNeedsAnAnchor(t *testing.T) {
	board := &Board{}
	// An empty board has no anchors, so no line is playable
	if CanPlaceCards(board, nil, 4, 6, Horizontal, HandSize, nil, nil) {
		t.Errorf("Placed cards on an empty board")
	}
}

func TestCanPlaceCardsBracketing(t *testing.T) {
	board := &Board{}
	board.PlaceTile(AnchorIndex, NewWild(), -1)
	// A line ending just before an occupied tile would join into a
	// run longer than a hand
	board.PlaceTile(BoardIndex(9, 6), NewCard(2, Clubs), 0)
	if CanPlaceCards(board, nil, 4, 6, Horizontal, HandSize, nil, nil) {
		t.Errorf("Accepted a line that joins into a longer run")
	}
}

func TestCanPlaceCardsRejectsBlockedCell(t *testing.T) {
	board := &Board{}
	board.PlaceTile(AnchorIndex, NewWild(), -1)
	blocked := map[int]bool{BoardIndex(5, 6): true}
	if CanPlaceCards(board, blocked, 4, 6, Horizontal, HandSize, nil, nil) {
		t.Errorf("Accepted a line through a blocked cell")
	}
	if !CanPlaceCards(board, nil, 4, 6, Horizontal, HandSize, nil, nil) {
		t.Errorf("Rejected a legal line")
	}
}

func TestCanPlaceCardsRejectsPerpendicularNeighbor(t *testing.T) {
	board := &Board{}
	board.PlaceTile(AnchorIndex, NewWild(), -1)
	// A card above one of the open cells would gain an accidental
	// second line
	board.PlaceTile(BoardIndex(5, 5), NewCard(2, Clubs), 0)
	if CanPlaceCards(board, nil, 4, 6, Horizontal, HandSize, nil, nil) {
		t.Errorf("Accepted a line with an occupied perpendicular neighbor")
	}
}

func TestCanPlaceCardsRespectsLimit(t *testing.T) {
	board := &Board{}
	board.PlaceTile(AnchorIndex, NewWild(), -1)
	// Four open cells in the line, but only three cards left in hand
	if CanPlaceCards(board, nil, 4, 6, Horizontal, 3, nil, nil) {
		t.Errorf("Accepted a line needing more cards than the hand holds")
	}
	if !CanPlaceCards(board, nil, 4, 6, Horizontal, 4, nil, nil) {
		t.Errorf("Rejected a line exactly matching the hand size")
	}
}

func TestFirstCardPlacements(t *testing.T) {
	board := &Board{}
	board.PlaceTile(AnchorIndex, NewWild(), -1)
	tiles := FindValidPlacementTilesForFirstCardOfHand(board, nil)
	expected := []int{
		BoardIndex(6, 5),
		BoardIndex(5, 6),
		BoardIndex(7, 6),
		BoardIndex(6, 7),
	}
	if len(tiles) != len(expected) {
		t.Fatalf("Got %v first-card tiles %v, expected %v", len(tiles), tiles, expected)
	}
	for _, idx := range expected {
		if !containsInt(tiles, idx) {
			t.Errorf("First-card tiles %v are missing %v", tiles, idx)
		}
	}
}

func TestExtensionPlacements(t *testing.T) {
	board := &Board{}
	board.PlaceTile(AnchorIndex, NewWild(), -1)
	// First card dropped at (7, 6), committed to horizontal
	tiles := FindValidPlacementTilesAfterHavingAlreadyPlacedSomeCards(
		board, nil, BoardIndex(7, 6), Horizontal, 4)
	expected := []int{
		BoardIndex(3, 6), BoardIndex(4, 6), BoardIndex(5, 6),
		BoardIndex(7, 6), BoardIndex(8, 6), BoardIndex(9, 6), BoardIndex(10, 6),
	}
	if len(tiles) != len(expected) {
		t.Fatalf("Got extension tiles %v, expected %v", tiles, expected)
	}
	for i, idx := range expected {
		if tiles[i] != idx {
			t.Errorf("Extension tile %v is %v, expected %v", i, tiles[i], idx)
		}
	}
}

func TestFindValidPlayLocations(t *testing.T) {
	board := &Board{}
	board.PlaceTile(AnchorIndex, NewWild(), -1)
	locations := FindValidPlayLocations(board, nil, HandSize)
	// Five alignments per direction through the single anchor
	if len(locations) != 10 {
		t.Fatalf("Got %v play locations, expected 10", len(locations))
	}
	for _, loc := range locations {
		if len(loc.OccupiedTiles) != 1 || loc.OccupiedTiles[0] != AnchorIndex {
			t.Errorf("Play location does not anchor on the center: %v", loc)
		}
		if len(loc.UnoccupiedTiles) != HandSize-1 {
			t.Errorf("Play location has %v open tiles, expected %v",
				len(loc.UnoccupiedTiles), HandSize-1)
		}
		// Open tiles are ordered closest to the anchor first
		for i := 1; i < len(loc.UnoccupiedTiles); i++ {
			if abs(loc.UnoccupiedTiles[i]-AnchorIndex) < abs(loc.UnoccupiedTiles[i-1]-AnchorIndex) {
				t.Errorf("Open tiles %v are not sorted by distance", loc.UnoccupiedTiles)
				break
			}
		}
	}
}

func TestModifierGridBlockedCells(t *testing.T) {
	var grid ModifierGrid
	grid.Add(10, &BreakableWall{RequiredRank: AnyRequirement, RequiredSuit: AnyRequirement, BoardIndex: 10})
	grid.Add(20, &BurnedTile{})
	grid.Add(30, &HandMultiplier{Multiplier: 2})
	grid.Add(40, &NullModifier{})
	blocked := grid.BlockedCells()
	if !blocked[10] || !blocked[20] {
		t.Errorf("Walls and burnt tiles must block placement: %v", blocked)
	}
	if blocked[30] || blocked[40] {
		t.Errorf("Multipliers and null modifiers must not block placement: %v", blocked)
	}
}
