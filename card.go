// card.go
//
// Copyright (C) 2026 Iron Fox Games
//
// This file implements the Card value type, its ordering and
// point values, and string parsing/formatting for cards.

package gridpoker

import (
	"fmt"
	"sort"
	"strings"
)

// CardKind distinguishes regular cards from the three special kinds.
type CardKind int

const (
	// CardRegular is an ordinary rank+suit card
	CardRegular CardKind = iota
	// CardJoker is a hand-slot placeholder; it is always replaced by a
	// real card before reaching the classifier
	CardJoker
	// CardWild stands in for any rank+suit during classification and scoring
	CardWild
	// CardCrown has a real rank but no suit; it matches any suit for
	// flush and straight-flush checks only
	CardCrown
)

// Suit constants. NoSuit is carried by wilds, jokers and crowns.
const (
	NoSuit = iota
	Clubs
	Diamonds
	Hearts
	Spades
)

// Rank constants for the face cards. An Ace (rank 1) can be high
// for straight purposes: ranks 10, 11, 12, 13, 1 form a straight.
const (
	Ace   = 1
	Jack  = 11
	Queen = 12
	King  = 13
)

// AcePointValue is the point value of an Ace, above the King's 130
const AcePointValue = 140

// Card is an immutable card value. Wilds and jokers have rank 0 and
// suit 0 and differ only by kind; crowns have a real rank and suit 0.
// Equality is by (rank, suit, kind), i.e. plain == on the struct.
type Card struct {
	Rank int      // 1..13, or 0 for wild/joker
	Suit int      // 1..4, or 0 for wild/joker/crown
	Kind CardKind // regular/joker/wild/crown
}

// NewCard returns a regular card with the given rank and suit
func NewCard(rank, suit int) Card {
	return Card{Rank: rank, Suit: suit, Kind: CardRegular}
}

// NewWild returns a wild card
func NewWild() Card {
	return Card{Kind: CardWild}
}

// NewJoker returns a joker placeholder card
func NewJoker() Card {
	return Card{Kind: CardJoker}
}

// NewCrown returns a crown card with the given rank
func NewCrown(rank int) Card {
	return Card{Rank: rank, Kind: CardCrown}
}

// IsWild returns true for wild cards
func (c Card) IsWild() bool {
	return c.Kind == CardWild
}

// IsJoker returns true for joker placeholder cards
func (c Card) IsJoker() bool {
	return c.Kind == CardJoker
}

// PointValue returns the per-card score contribution: rank times 10,
// except that the Ace is the highest-value rank at 140
func (c Card) PointValue() int {
	if c.Rank == Ace {
		return AcePointValue
	}
	return c.Rank * 10
}

// Less orders cards by rank, then suit
func (c Card) Less(other Card) bool {
	if c.Rank != other.Rank {
		return c.Rank < other.Rank
	}
	return c.Suit < other.Suit
}

// suitRankLess is the classifier sort order: suit first, then rank.
// Wilds (suit 0, rank 0) sort to the front, which is what the
// wild-count prefix logic in the classifier and scorer relies on.
func suitRankLess(a, b Card) bool {
	if a.Suit != b.Suit {
		return a.Suit < b.Suit
	}
	if a.Rank != b.Rank {
		return a.Rank < b.Rank
	}
	return a.Kind < b.Kind
}

// sortedBySuitRank returns a copy of cards in classifier sort order
func sortedBySuitRank(cards []Card) []Card {
	sorted := make([]Card, len(cards))
	copy(sorted, cards)
	sort.Slice(sorted, func(i, j int) bool {
		return suitRankLess(sorted[i], sorted[j])
	})
	return sorted
}

// suitIds are the one-letter suit identifiers used in card strings
var suitIds = [5]string{"*", "c", "d", "h", "s"}

// rankIds are the rank identifiers used in card strings
var rankIds = [14]string{
	"", "A", "2", "3", "4", "5", "6", "7",
	"8", "9", "10", "J", "Q", "K",
}

// String formats a Card compactly: "Ah", "10c", "W" (wild),
// "?" (joker), "K*" (crown king)
func (c Card) String() string {
	switch c.Kind {
	case CardWild:
		return "W"
	case CardJoker:
		return "?"
	case CardCrown:
		if c.Rank < 1 || c.Rank > 13 {
			return "!*"
		}
		return rankIds[c.Rank] + "*"
	}
	if c.Rank < 1 || c.Rank > 13 || c.Suit < Clubs || c.Suit > Spades {
		return "!"
	}
	return rankIds[c.Rank] + suitIds[c.Suit]
}

// ParseCard parses the format produced by Card.String
func ParseCard(s string) (Card, error) {
	switch s {
	case "W":
		return NewWild(), nil
	case "?":
		return NewJoker(), nil
	}
	if len(s) < 2 {
		return Card{}, fmt.Errorf("invalid card %q", s)
	}
	rankId, suitId := s[:len(s)-1], s[len(s)-1:]
	rank := -1
	for r, id := range rankIds {
		if id == rankId && r > 0 {
			rank = r
			break
		}
	}
	if rank == -1 {
		return Card{}, fmt.Errorf("invalid card rank %q", s)
	}
	if suitId == "*" {
		return NewCrown(rank), nil
	}
	for suit, id := range suitIds {
		if id == suitId && suit > 0 {
			return NewCard(rank, suit), nil
		}
	}
	return Card{}, fmt.Errorf("invalid card suit %q", s)
}

// ParseCards parses a space-separated list of card strings
func ParseCards(s string) ([]Card, error) {
	fields := strings.Fields(s)
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}
