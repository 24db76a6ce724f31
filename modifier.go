// modifier.go
//
// Copyright (C) 2026 Iron Fox Games
//
// This file implements the board tile modifiers (breakable walls,
// hand multipliers, burning food, burned tiles) and the modifier
// grid that overlays the board.

package gridpoker

// BoardModifier is the sum type of tile modifiers. Concrete modifiers
// are small structs stored behind pointers in the grid so that
// lifecycle mutations (de-reinforcing a wall, ticking a burn timer)
// are visible everywhere the modifier is referenced. Dispatch is by
// type switch, never by downcast chains.
type BoardModifier interface {
	modifierTag()
}

// AnyRequirement marks a wall requirement that any rank or suit satisfies
const AnyRequirement = -1

// BreakableWall blocks its tile until a card matching its rank/suit
// requirement is played adjacent to it. Walls sharing the same
// requirement form connected groups that break (or de-reinforce)
// together; see FindWallGroup.
type BreakableWall struct {
	RequiredRank int // AnyRequirement matches every rank
	RequiredSuit int // AnyRequirement matches every suit
	Reinforced   bool
	BoardIndex   int
}

// HandMultiplier multiplies the score of a hand whose scored cards
// cover its tile. Multiple multipliers stack multiplicatively.
type HandMultiplier struct {
	Multiplier int
}

// BurningFood is an expiring hazard: when its counter reaches zero it
// burns its own tile and spreads to the four neighbors.
type BurningFood struct {
	ExpiresIn int
}

// BurnedTile marks a tile (or the card sitting on it) as burnt.
// Burnt tiles refuse card placement and block further fire spread.
type BurnedTile struct{}

// NullModifier is the no-op member of the union, used by level
// configurations for empty modifier slots.
type NullModifier struct{}

func (*BreakableWall) modifierTag()  {}
func (*HandMultiplier) modifierTag() {}
func (*BurningFood) modifierTag()    {}
func (*BurnedTile) modifierTag()     {}
func (*NullModifier) modifierTag()   {}

// Matches returns true if the played card satisfies the wall's unlock
// requirement. Wild cards satisfy any requirement.
func (w *BreakableWall) Matches(c Card) bool {
	if c.IsWild() {
		return true
	}
	if w.RequiredRank != AnyRequirement && w.RequiredRank != c.Rank {
		return false
	}
	if w.RequiredSuit != AnyRequirement && w.RequiredSuit != c.Suit {
		return false
	}
	return true
}

// SameRequirement returns true if two walls share the same unlock
// requirement and therefore belong to the same breakable group
func (w *BreakableWall) SameRequirement(other *BreakableWall) bool {
	return w.RequiredRank == other.RequiredRank && w.RequiredSuit == other.RequiredSuit
}

// ModifierGrid holds the ordered modifier lists for every board tile.
// It is mutable, independent of the turn history: hazards evolve on
// their own between turns.
type ModifierGrid [BoardSize][]BoardModifier

// Add appends a modifier to the tile's list (list order is application order)
func (g *ModifierGrid) Add(idx int, m BoardModifier) {
	if idx < 0 || idx >= BoardSize || m == nil {
		return
	}
	if _, ok := m.(*NullModifier); ok {
		return
	}
	g[idx] = append(g[idx], m)
}

// Remove deletes one modifier from the tile's list, preserving order
func (g *ModifierGrid) Remove(idx int, m BoardModifier) {
	if idx < 0 || idx >= BoardSize {
		return
	}
	list := g[idx]
	for i, existing := range list {
		if existing == m {
			g[idx] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// WallAt returns the breakable wall on a tile, if any
func (g *ModifierGrid) WallAt(idx int) *BreakableWall {
	if idx < 0 || idx >= BoardSize {
		return nil
	}
	for _, m := range g[idx] {
		if w, ok := m.(*BreakableWall); ok {
			return w
		}
	}
	return nil
}

// BurningAt returns the burning-food hazard on a tile, if any
func (g *ModifierGrid) BurningAt(idx int) *BurningFood {
	if idx < 0 || idx >= BoardSize {
		return nil
	}
	for _, m := range g[idx] {
		if b, ok := m.(*BurningFood); ok {
			return b
		}
	}
	return nil
}

// MultiplierAt returns the hand multiplier on a tile, if any
func (g *ModifierGrid) MultiplierAt(idx int) *HandMultiplier {
	if idx < 0 || idx >= BoardSize {
		return nil
	}
	for _, m := range g[idx] {
		if h, ok := m.(*HandMultiplier); ok {
			return h
		}
	}
	return nil
}

// IsBurned returns true if the tile carries a BurnedTile marker
func (g *ModifierGrid) IsBurned(idx int) bool {
	if idx < 0 || idx >= BoardSize {
		return false
	}
	for _, m := range g[idx] {
		if _, ok := m.(*BurnedTile); ok {
			return true
		}
	}
	return false
}

// BlockedCells returns the set of tiles that refuse card placement:
// tiles with an unbroken wall or a burnt tile marker
func (g *ModifierGrid) BlockedCells() map[int]bool {
	blocked := make(map[int]bool)
	for idx := range g {
		if g.WallAt(idx) != nil || g.IsBurned(idx) {
			blocked[idx] = true
		}
	}
	return blocked
}

// cloneModifier deep-copies a modifier so that matches never share
// mutable modifier state with the level configuration or each other
func cloneModifier(m BoardModifier) BoardModifier {
	switch mod := m.(type) {
	case *BreakableWall:
		clone := *mod
		return &clone
	case *HandMultiplier:
		clone := *mod
		return &clone
	case *BurningFood:
		clone := *mod
		return &clone
	case *BurnedTile:
		return &BurnedTile{}
	case *NullModifier:
		return &NullModifier{}
	}
	return nil
}
