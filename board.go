// board.go
//
// Copyright (C) 2026 Iron Fox Games
//
// This file implements the board projection and the placement
// validator: the pure functions that decide which tiles are legal
// for a first card or for extending an in-progress line.

package gridpoker

import (
	"fmt"
	"sort"
	"strings"
)

// BoardDimension is the side length of the square board
const BoardDimension = 13

// BoardSize is the total number of board tiles
const BoardSize = BoardDimension * BoardDimension

// HandSize is the number of cards in a hand, and therefore the exact
// length of every played line
const HandSize = 5

// AnchorIndex is the center tile that receives the starting wild card
const AnchorIndex = BoardDimension/2 + BoardDimension*(BoardDimension/2)

// Direction of a card line on the board
type Direction int

const (
	Horizontal Direction = iota
	Vertical
)

// String returns "horizontal" or "vertical"
func (d Direction) String() string {
	if d == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// delta returns the per-cell step of a direction
func (d Direction) delta() (dx, dy int) {
	if d == Vertical {
		return 0, 1
	}
	return 1, 0
}

// BoardTile is an occupied board position. A nil tile is unoccupied.
type BoardTile struct {
	Card         Card
	PlacedOnTurn int // -1 for pre-placed starting-board cards
	Modifiers    []BoardModifier
}

// Board is the derived 13x13 occupancy projection, indexed by
// idx = x + BoardDimension*y. It is always rebuilt from the turn
// history (see Match.BuildBoardFromTurns), never stored.
type Board [BoardSize]*BoardTile

// BoardIndex converts (x, y) coordinates to a flat tile index
func BoardIndex(x, y int) int {
	return x + BoardDimension*y
}

// BoardCoords converts a flat tile index back to (x, y) coordinates
func BoardCoords(idx int) (x, y int) {
	return idx % BoardDimension, idx / BoardDimension
}

// IsOccupied returns true if the given coordinate holds a card.
// Out-of-range coordinates are never occupied.
func (board *Board) IsOccupied(x, y int) bool {
	if x < 0 || x >= BoardDimension || y < 0 || y >= BoardDimension {
		return false
	}
	return board[BoardIndex(x, y)] != nil
}

// isBlocked returns true if the given coordinate is in the blocked
// set. Out-of-range coordinates are never blocked.
func isBlocked(blocked map[int]bool, x, y int) bool {
	if x < 0 || x >= BoardDimension || y < 0 || y >= BoardDimension {
		return false
	}
	return blocked[BoardIndex(x, y)]
}

// NumTiles returns the number of occupied tiles
func (board *Board) NumTiles() int {
	count := 0
	for _, tile := range board {
		if tile != nil {
			count++
		}
	}
	return count
}

// PlaceTile puts a card on an unoccupied tile.
// Returns false if the index is invalid or the tile is occupied.
func (board *Board) PlaceTile(idx int, card Card, turn int) bool {
	if idx < 0 || idx >= BoardSize || board[idx] != nil {
		return false
	}
	board[idx] = &BoardTile{Card: card, PlacedOnTurn: turn}
	return true
}

// String renders the board for logs and the CLI simulator.
// Unoccupied tiles are shown as dots.
func (board *Board) String() string {
	var sb strings.Builder
	for y := 0; y < BoardDimension; y++ {
		sb.WriteString(fmt.Sprintf("%2d ", y))
		for x := 0; x < BoardDimension; x++ {
			tile := board[BoardIndex(x, y)]
			if tile == nil {
				sb.WriteString("  . ")
			} else {
				sb.WriteString(fmt.Sprintf("%3s ", tile.Card))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// BoardPlayLocation describes one legal 5-cell line through an
// occupied anchor: the tiles a player would have to cover and the
// anchors already in place.
type BoardPlayLocation struct {
	UnoccupiedTiles []int // sorted by distance from the anchor, closest first
	OccupiedTiles   []int
}

// CanPlaceCards walks HandSize consecutive cells from (xStart, yStart)
// along the given direction and decides whether they form a legal
// line of play. This is the single source of truth for line legality.
//
// The walk fails if any cell is out of bounds or blocked, if the cell
// immediately before the first cell or after the last cell is already
// occupied (a play must not join into a run longer than HandSize), or
// if an unoccupied cell has an occupied perpendicular neighbor (a new
// card must not create an accidental second line). It succeeds only
// if the line contains at least one occupied cell, at least one
// unoccupied cell, and no more unoccupied cells than limit (the
// number of cards left in the hand).
//
// When outUnoccupied/outOccupied are non-nil, the visited cell
// indices are appended to them in walk order.
func CanPlaceCards(
	board *Board,
	blocked map[int]bool,
	xStart, yStart int,
	direction Direction,
	limit int,
	outUnoccupied, outOccupied *[]int,
) bool {
	dx, dy := direction.delta()
	// The cells bracketing the line must be free
	if board.IsOccupied(xStart-dx, yStart-dy) {
		return false
	}
	if board.IsOccupied(xStart+dx*HandSize, yStart+dy*HandSize) {
		return false
	}
	occupied, unoccupied := 0, 0
	for i := 0; i < HandSize; i++ {
		x, y := xStart+dx*i, yStart+dy*i
		if x < 0 || x >= BoardDimension || y < 0 || y >= BoardDimension {
			return false
		}
		if isBlocked(blocked, x, y) {
			return false
		}
		idx := BoardIndex(x, y)
		if board[idx] != nil {
			occupied++
			if outOccupied != nil {
				*outOccupied = append(*outOccupied, idx)
			}
			continue
		}
		// A new card here must not butt against a perpendicular neighbor
		if board.IsOccupied(x+dy, y+dx) || board.IsOccupied(x-dy, y-dx) {
			return false
		}
		unoccupied++
		if outUnoccupied != nil {
			*outUnoccupied = append(*outUnoccupied, idx)
		}
	}
	return occupied >= 1 && unoccupied >= 1 && unoccupied <= limit
}

// FindValidPlacementTilesForFirstCardOfHand returns the deduplicated
// set of tiles where the first card of a fresh hand may be dropped:
// for every occupied anchor and every alignment of a 5-cell line
// through it, the open neighbor(s) of the anchor inside a legal line.
func FindValidPlacementTilesForFirstCardOfHand(board *Board, blocked map[int]bool) []int {
	valid := make(map[int]bool)
	for y := 0; y < BoardDimension; y++ {
		for x := 0; x < BoardDimension; x++ {
			if !board.IsOccupied(x, y) {
				continue
			}
			for _, direction := range []Direction{Horizontal, Vertical} {
				dx, dy := direction.delta()
				for offset := 0; offset < HandSize; offset++ {
					if !CanPlaceCards(board, blocked,
						x-dx*offset, y-dy*offset, direction, HandSize, nil, nil) {
						continue
					}
					// Edge alignments yield one candidate neighbor of the
					// anchor; middle alignments yield both
					if offset > 0 && !board.IsOccupied(x-dx, y-dy) {
						valid[BoardIndex(x-dx, y-dy)] = true
					}
					if offset < HandSize-1 && !board.IsOccupied(x+dx, y+dy) {
						valid[BoardIndex(x+dx, y+dy)] = true
					}
				}
			}
		}
	}
	return sortedIndexSet(valid)
}

// FindValidPlacementTilesAfterHavingAlreadyPlacedSomeCards returns
// the unoccupied tiles that can legally extend an in-progress line.
// The scan is restricted to the direction committed to by the first
// placed card, anchored on that card's tile.
func FindValidPlacementTilesAfterHavingAlreadyPlacedSomeCards(
	board *Board,
	blocked map[int]bool,
	workingTilePosition int,
	direction Direction,
	limit int,
) []int {
	wx, wy := BoardCoords(workingTilePosition)
	dx, dy := direction.delta()
	valid := make(map[int]bool)
	for offset := 0; offset < HandSize; offset++ {
		var unoccupied []int
		if !CanPlaceCards(board, blocked,
			wx-dx*offset, wy-dy*offset, direction, limit, &unoccupied, nil) {
			continue
		}
		for _, idx := range unoccupied {
			valid[idx] = true
		}
	}
	return sortedIndexSet(valid)
}

// FindValidPlayLocations enumerates every legal line of play on the
// board: one BoardPlayLocation per occupied anchor per alignment per
// direction. Unoccupied tiles are sorted by absolute index distance
// from the anchor, closest first.
func FindValidPlayLocations(board *Board, blocked map[int]bool, limit int) []BoardPlayLocation {
	var locations []BoardPlayLocation
	for y := 0; y < BoardDimension; y++ {
		for x := 0; x < BoardDimension; x++ {
			if !board.IsOccupied(x, y) {
				continue
			}
			anchor := BoardIndex(x, y)
			for _, direction := range []Direction{Horizontal, Vertical} {
				dx, dy := direction.delta()
				for offset := 0; offset < HandSize; offset++ {
					var unoccupied, occupied []int
					if !CanPlaceCards(board, blocked,
						x-dx*offset, y-dy*offset, direction, limit,
						&unoccupied, &occupied) {
						continue
					}
					sort.Slice(unoccupied, func(i, j int) bool {
						return abs(unoccupied[i]-anchor) < abs(unoccupied[j]-anchor)
					})
					locations = append(locations, BoardPlayLocation{
						UnoccupiedTiles: unoccupied,
						OccupiedTiles:   occupied,
					})
				}
			}
		}
	}
	return locations
}

// sortedIndexSet flattens a tile index set to a sorted slice
func sortedIndexSet(set map[int]bool) []int {
	indices := make([]int, 0, len(set))
	for idx := range set {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	return indices
}
