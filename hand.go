// hand.go
//
// Copyright (C) 2026 Iron Fox Games
//
// This file implements the hand classifier: mapping five cards
// (including wildcards) to a poker-style hand category.

package gridpoker

import (
	"strings"
	"sync"

	"github.com/hashicorp/golang-lru/simplelru"
)

// HandName is a hand category. The declaration order is the category
// strength order used when picking the best wildcard substitution:
// a later name always beats an earlier one.
type HandName int

const (
	HandInvalid HandName = iota
	HandSingleton
	HandOnePair
	HandTwoPair
	HandThreeOfAKind
	HandStraight
	HandFlush
	HandFullHouse
	HandFourOfAKind
	HandStraightFlush
	HandFiveOfAKind
	// HandRoyalFlush is the ace-high straight flush; it ranks above
	// every other category, including five of a kind
	HandRoyalFlush
)

var handNames = [...]string{
	"Invalid", "Singleton", "One Pair", "Two Pair", "Three of a Kind",
	"Straight", "Flush", "Full House", "Four of a Kind",
	"Straight Flush", "Five of a Kind", "Royal Flush",
}

// String returns the display name of a hand category
func (h HandName) String() string {
	if h < 0 || int(h) >= len(handNames) {
		return "Unknown"
	}
	return handNames[h]
}

// SpecialHand is a bonus label layered on top of a base hand category
// when the exact rank pattern matches a reference hand. It never
// replaces the base category (the royal flush upgrade is handled by
// the scorer through HandRoyalFlush).
type SpecialHand int

const (
	SpecialNone SpecialHand = iota
	SpecialLowball
	SpecialPaiGow
	SpecialWheel
	SpecialBroadway
	SpecialSteelWheel
	SpecialRoyalFlush
	SpecialQuadDeuces
	SpecialQuadAces
	SpecialQuintAces
)

var specialHandNames = [...]string{
	"", "Lowball", "Pai Gow", "Wheel", "Broadway", "Steel Wheel",
	"Royal Flush", "Quad Deuces", "Quad Aces", "Quint Aces",
}

// String returns the display name of a special hand label
func (s SpecialHand) String() string {
	if s < 0 || int(s) >= len(specialHandNames) {
		return ""
	}
	return specialHandNames[s]
}

// Evaluate classifies five concrete cards (no wilds, no jokers) into
// a base hand category. The precedence chain is load-bearing: a flush
// that is also a straight must report a straight flush, never a flush.
func Evaluate(cards []Card) HandName {
	if len(cards) != HandSize {
		return HandInvalid
	}
	var counts [14]int
	for _, c := range cards {
		if c.Rank < 1 || c.Rank > 13 {
			return HandInvalid
		}
		counts[c.Rank]++
	}
	// f0 and f1 are the two largest rank counts, descending
	f0, f1 := 0, 0
	for r := 1; r <= 13; r++ {
		if c := counts[r]; c > f0 {
			f0, f1 = c, f0
		} else if c > f1 {
			f1 = c
		}
	}
	flush := isFlush(cards)
	straight := isStraight(&counts)
	switch {
	case f0 == 5:
		return HandFiveOfAKind
	case flush && straight:
		return HandStraightFlush
	case f0 == 4:
		return HandFourOfAKind
	case f0 == 3 && f1 == 2:
		return HandFullHouse
	case flush:
		return HandFlush
	case straight:
		return HandStraight
	case f0 == 3:
		return HandThreeOfAKind
	case f0 == 2 && f1 == 2:
		return HandTwoPair
	case f0 == 2:
		return HandOnePair
	}
	return HandSingleton
}

// isFlush returns true if every card shares one suit. Crowns (suit 0)
// count as matching any suit.
func isFlush(cards []Card) bool {
	flushSuit := NoSuit
	for _, c := range cards {
		if c.Suit == NoSuit {
			continue
		}
		if flushSuit == NoSuit {
			flushSuit = c.Suit
			continue
		}
		if c.Suit != flushSuit {
			return false
		}
	}
	return true
}

// isStraight returns true for five distinct consecutive ranks,
// including the ace-high special case 10-J-Q-K-A
func isStraight(counts *[14]int) bool {
	lo, hi, distinct := 0, 0, 0
	for r := 1; r <= 13; r++ {
		if counts[r] == 0 {
			continue
		}
		if counts[r] > 1 {
			return false
		}
		if lo == 0 {
			lo = r
		}
		hi = r
		distinct++
	}
	if distinct != HandSize {
		return false
	}
	if hi-lo == HandSize-1 {
		return true
	}
	// Ace high: 10-J-Q-K-A
	return counts[Ace] == 1 && counts[10] == 1 &&
		counts[Jack] == 1 && counts[Queen] == 1 && counts[King] == 1
}

// Analyze classifies five cards, resolving any wildcards to the
// strongest achievable category. It returns HandInvalid (a value, not
// an error) when the cards cannot form any recognized category: wrong
// count, an unresolved joker, or duplicate identical real cards.
func Analyze(cards []Card) HandName {
	if len(cards) != HandSize {
		return HandInvalid
	}
	hand := sortedBySuitRank(cards)
	wilds := 0
	for _, c := range hand {
		if c.IsJoker() {
			// Jokers are placeholders that must be resolved before
			// classification
			return HandInvalid
		}
		if c.IsWild() {
			wilds++
		}
	}
	distinct := make(map[Card]bool, HandSize)
	for _, c := range hand {
		if !c.IsWild() {
			distinct[c] = true
		}
	}
	if len(distinct)+wilds != HandSize {
		return HandInvalid
	}
	if wilds == 0 {
		return Evaluate(hand)
	}
	return bestHandFromCombinations(hand, wilds)
}

// bestHandFromCombinations resolves wildcards. Hands with three or
// more wilds collapse to a handful of outcomes that can be decided
// from the real cards alone; one and two wilds are brute-forced over
// the 52-card substitution set.
func bestHandFromCombinations(hand []Card, wilds int) HandName {
	switch {
	case wilds >= 4:
		// Any single card extends to a straight flush
		return HandStraightFlush
	case wilds == 3:
		a, b := hand[3], hand[4]
		if a.Rank == b.Rank {
			return HandFiveOfAKind
		}
		if suitsCompatible(a, b) && straightReachable(a.Rank, b.Rank) {
			return HandStraightFlush
		}
		return HandFourOfAKind
	case wilds == 2:
		best := HandInvalid
		trial := make([]Card, HandSize)
		copy(trial, hand)
		for _, c1 := range allRegularCards {
			trial[0] = c1
			for _, c2 := range allRegularCards {
				trial[1] = c2
				if h := Evaluate(trial); h > best {
					best = h
				}
			}
		}
		return best
	}
	// One wild
	best := HandInvalid
	trial := make([]Card, HandSize)
	copy(trial, hand)
	for _, c := range allRegularCards {
		trial[0] = c
		if h := Evaluate(trial); h > best {
			best = h
		}
	}
	return best
}

// suitsCompatible returns true if two cards could share a flush suit;
// crowns match any suit
func suitsCompatible(a, b Card) bool {
	return a.Suit == b.Suit || a.Suit == NoSuit || b.Suit == NoSuit
}

// straightReachable returns true if two ranks can sit in one 5-card
// straight, allowing the ace to pair with 10..K
func straightReachable(r1, r2 int) bool {
	if abs(r1-r2) <= HandSize-1 {
		return true
	}
	return (r1 == Ace && r2 >= 10) || (r2 == Ace && r1 >= 10)
}

// Classifier wraps Analyze with an LRU cache keyed by the sorted card
// list. Wildcard resolution is a brute-force search, so repeated
// queries for the same hand (UI previews, the service layer) are
// worth caching.
type Classifier struct {
	mu    sync.Mutex
	cache *simplelru.LRU
}

// DefaultClassifierCacheSize is the default LRU capacity
const DefaultClassifierCacheSize = 4096

// NewClassifier returns a classifier with an LRU cache of the given
// capacity (0 selects the default)
func NewClassifier(cacheSize int) *Classifier {
	if cacheSize <= 0 {
		cacheSize = DefaultClassifierCacheSize
	}
	cache, err := simplelru.NewLRU(cacheSize, nil)
	if err != nil {
		// Only reachable with a non-positive size
		panic(err)
	}
	return &Classifier{cache: cache}
}

// Analyze classifies a hand, consulting the cache first
func (cl *Classifier) Analyze(cards []Card) HandName {
	key := handKey(cards)
	cl.mu.Lock()
	if cached, ok := cl.cache.Get(key); ok {
		cl.mu.Unlock()
		return cached.(HandName)
	}
	cl.mu.Unlock()
	result := Analyze(cards)
	cl.mu.Lock()
	cl.cache.Add(key, result)
	cl.mu.Unlock()
	return result
}

// handKey builds the canonical cache key for a hand
func handKey(cards []Card) string {
	sorted := sortedBySuitRank(cards)
	var sb strings.Builder
	for _, c := range sorted {
		sb.WriteString(c.String())
		sb.WriteByte(' ')
	}
	return sb.String()
}
