// score.go
//
// Copyright (C) 2026 Iron Fox Games
//
// This file implements the hand scorer: picking the wildcard
// substitution that maximizes the score of an already-classified
// hand, and computing that score with tile modifiers applied.

package gridpoker

import (
	"fmt"
	"log"
	"sort"
)

// baseHandValue is the fixed point value added per hand category,
// before per-card values and modifiers. Monotonically increasing
// with hand strength.
var baseHandValue = [...]int{
	HandInvalid:       0,
	HandSingleton:     1000,
	HandOnePair:       1500,
	HandTwoPair:       1750,
	HandThreeOfAKind:  2000,
	HandStraight:      2250,
	HandFlush:         2600,
	HandFullHouse:     3000,
	HandFourOfAKind:   3600,
	HandStraightFlush: 4500,
	HandFiveOfAKind:   5250,
	HandRoyalFlush:    5650,
}

// BaseHandValue returns the base point value of a hand category
func BaseHandValue(h HandName) int {
	if h < 0 || int(h) >= len(baseHandValue) {
		return 0
	}
	return baseHandValue[h]
}

// HandClassification is the immutable result of scoring a hand.
// It is never mutated after creation.
type HandClassification struct {
	Score              int         // modifier-free score
	ScoreWithModifiers int         // score with tile multipliers applied
	HandName           HandName    // category, upgraded to RoyalFlush where applicable
	SpecialHandName    SpecialHand // bonus label, or SpecialNone
	BaseHandNames      []HandName  // underlying base categories
	ScoredCards        []Card      // cards that contributed to the score
}

// slotPair is one (card, tile modifier) slot of a candidate hand.
// Substitution replaces card; original and wild are preserved so the
// result can be presented without leaking the chosen substitution.
type slotPair struct {
	card     Card
	original Card
	wild     bool
	modifier BoardModifier
}

// FourJokerModifierPermutations enumerates the assignments of four
// wild-slot modifiers to the four substituted cards
var FourJokerModifierPermutations = permutations(4)

// FiveJokerModifierPermutations enumerates the assignments of five
// wild-slot modifiers to the five substituted cards
var FiveJokerModifierPermutations = permutations(5)

// royalRanks is the ace-high straight-flush rank set
var royalRanks = [HandSize]int{10, Jack, Queen, King, Ace}

// ScoreHand finds the wildcard substitution consistent with the given
// hand identity that maximizes the final score, and computes that
// score. The cards and modifiers slices are parallel: modifiers[i]
// is the tile modifier under cards[i] (nil for none).
//
// A length mismatch, an unresolved joker, or an identity no
// substitution can reach are caller bugs and are returned as errors.
func ScoreHand(cards []Card, modifiers []BoardModifier, identity HandName) (HandClassification, error) {
	if len(cards) != HandSize {
		return HandClassification{}, fmt.Errorf("scoring requires %d cards, got %d", HandSize, len(cards))
	}
	if len(modifiers) != len(cards) {
		return HandClassification{}, fmt.Errorf(
			"card/modifier mismatch: %d cards, %d modifiers", len(cards), len(modifiers))
	}
	if identity == HandInvalid {
		return HandClassification{}, fmt.Errorf("cannot score an invalid hand")
	}
	pairs := make([]slotPair, HandSize)
	for i, c := range cards {
		if c.IsJoker() {
			return HandClassification{}, fmt.Errorf("unresolved joker in scored hand")
		}
		pairs[i] = slotPair{card: c, original: c, wild: c.IsWild(), modifier: modifiers[i]}
	}
	// Same sort order as the classifier, so the wild prefix lines up
	sort.SliceStable(pairs, func(i, j int) bool {
		return suitRankLess(pairs[i].card, pairs[j].card)
	})
	wilds := 0
	for _, p := range pairs {
		if p.wild {
			wilds++
		}
	}
	candidates := scoreCandidates(pairs, wilds, identity)
	if len(candidates) == 0 {
		return HandClassification{}, fmt.Errorf(
			"no substitution of %d wilds reaches %v", wilds, identity)
	}
	var (
		bestName   HandName
		bestScore  = -1
		bestMods   = -1
		bestScored []slotPair
		bestCand   []slotPair
	)
	for _, cand := range candidates {
		name, score, withMods, scored := scoreCandidate(cand, identity)
		if score > bestScore || (score == bestScore && withMods > bestMods) {
			bestName, bestScore, bestMods, bestScored = name, score, withMods, scored
			bestCand = cand
		}
	}
	scoredCards := make([]Card, len(bestScored))
	for i, s := range bestScored {
		if s.wild {
			// Present a generic wild marker rather than the substitution
			scoredCards[i] = NewWild()
		} else {
			scoredCards[i] = s.original
		}
	}
	return HandClassification{
		Score:              bestScore,
		ScoreWithModifiers: bestMods,
		HandName:           bestName,
		SpecialHandName:    specialHandFor(bestCand, bestName),
		BaseHandNames:      []HandName{identity},
		ScoredCards:        scoredCards,
	}, nil
}

// scoreCandidates enumerates every substitution of the wild slots
// that still evaluates to the given identity, with modifiers carried
// along unchanged per slot
func scoreCandidates(pairs []slotPair, wilds int, identity HandName) [][]slotPair {
	switch wilds {
	case 0:
		return [][]slotPair{pairs}
	case 1:
		var candidates [][]slotPair
		for _, c := range allRegularCards {
			if cand, ok := substituted(pairs, identity, c); ok {
				candidates = append(candidates, cand)
			}
		}
		return candidates
	case 2:
		// Both orderings are enumerated: the two slots carry
		// different tile modifiers, and the modifier follows the
		// slot, not the card
		var candidates [][]slotPair
		for _, c1 := range allRegularCards {
			for _, c2 := range allRegularCards {
				if cand, ok := substituted(pairs, identity, c1, c2); ok {
					candidates = append(candidates, cand)
				}
			}
		}
		return candidates
	case 3:
		switch identity {
		case HandStraightFlush:
			return straightFlushCandidates(pairs, wilds)
		case HandFiveOfAKind, HandFourOfAKind:
			return forceRankCandidates(pairs, wilds)
		}
		// Unoptimized path; no known game configuration reaches it
		log.Printf("warning: brute-force scoring of %v with 3 wilds", identity)
		var candidates [][]slotPair
		for _, c1 := range allRegularCards {
			for _, c2 := range allRegularCards {
				for _, c3 := range allRegularCards {
					if cand, ok := substituted(pairs, identity, c1, c2, c3); ok {
						candidates = append(candidates, cand)
					}
				}
			}
		}
		return candidates
	case 4:
		switch identity {
		case HandStraightFlush:
			return straightFlushCandidates(pairs, wilds)
		case HandFiveOfAKind:
			return forceRankCandidates(pairs, wilds)
		}
		log.Printf("warning: cannot enumerate %v with 4 wilds", identity)
		return nil
	}
	// Five wilds: the fixed royal-flush template is the only hand
	if identity != HandStraightFlush {
		log.Printf("warning: cannot enumerate %v with 5 wilds", identity)
		return nil
	}
	var candidates [][]slotPair
	for _, perm := range FiveJokerModifierPermutations {
		cand := clonePairs(pairs)
		for i, p := range perm {
			cand[i].card = NewCard(royalRanks[p], Spades)
		}
		candidates = append(candidates, cand)
	}
	return candidates
}

// substituted replaces the first len(subs) slots (the wild prefix)
// and keeps the hand only if it still evaluates to the identity
func substituted(pairs []slotPair, identity HandName, subs ...Card) ([]slotPair, bool) {
	cand := clonePairs(pairs)
	for i, c := range subs {
		cand[i].card = c
	}
	if evaluatePairs(cand) != identity {
		return nil, false
	}
	return cand, true
}

// straightFlushCandidates enumerates straight-flush templates for
// hands with 3 or 4 wilds. Candidate straight starts are searched
// from 10 (the ace-high royal run) down to 1; every real card must
// appear in the template and all real suits must be compatible.
// For 4 wilds, all 24 assignments of wild-slot modifiers to the
// substituted cards are enumerated.
func straightFlushCandidates(pairs []slotPair, wilds int) [][]slotPair {
	reals := pairs[wilds:]
	suit := Clubs
	for _, r := range reals {
		if !suitsCompatible(r.card, reals[0].card) {
			return nil
		}
		if r.card.Suit != NoSuit {
			suit = r.card.Suit
		}
	}
	var candidates [][]slotPair
	for start := 10; start >= 1; start-- {
		ranks := straightRanks(start)
		missing := ranks[:0:0]
		usable := true
		for _, rank := range ranks {
			held := false
			for _, r := range reals {
				if r.card.Rank == rank {
					held = true
					break
				}
			}
			if !held {
				missing = append(missing, rank)
			}
		}
		if len(missing) != wilds {
			continue
		}
		for _, r := range reals {
			if !containsInt(ranks, r.card.Rank) {
				usable = false
				break
			}
		}
		if !usable {
			continue
		}
		perms := [][]int{{0, 1, 2}}
		if wilds == 4 {
			perms = FourJokerModifierPermutations
		}
		for _, perm := range perms {
			cand := clonePairs(pairs)
			for i, p := range perm {
				cand[i].card = NewCard(missing[p], suit)
			}
			candidates = append(candidates, cand)
		}
	}
	return candidates
}

// straightRanks returns the five ranks of the straight starting at
// the given rank; start 10 is the ace-high run
func straightRanks(start int) []int {
	ranks := make([]int, 0, HandSize)
	for i := 0; i < HandSize; i++ {
		rank := start + i
		if rank > King {
			rank = Ace
		}
		ranks = append(ranks, rank)
	}
	return ranks
}

// forceRankCandidates forces every wild to the best real card's rank,
// producing the four- or five-of-a-kind that three-plus wilds always
// dominate to
func forceRankCandidates(pairs []slotPair, wilds int) [][]slotPair {
	reals := pairs[wilds:]
	best := reals[0].card
	for _, r := range reals[1:] {
		if r.card.PointValue() > best.PointValue() {
			best = r.card
		}
	}
	usedSuits := make(map[int]bool)
	for _, r := range reals {
		if r.card.Rank == best.Rank {
			usedSuits[r.card.Suit] = true
		}
	}
	cand := clonePairs(pairs)
	suit := Clubs
	for i := 0; i < wilds; i++ {
		for suit < Spades && usedSuits[suit] {
			suit++
		}
		usedSuits[suit] = true
		cand[i].card = NewCard(best.Rank, suit)
	}
	return [][]slotPair{cand}
}

// scoreCandidate computes the score of one fully substituted hand.
// Only the matching-rank cards score for pair/trip/quad categories;
// the single best card scores for a singleton; every card scores for
// the rest. Hand multipliers on scored cards stack multiplicatively
// into the with-modifiers total.
func scoreCandidate(cand []slotPair, identity HandName) (HandName, int, int, []slotPair) {
	name := identity
	if identity == HandStraightFlush && hasRanks(cand, royalRanks[:]...) {
		name = HandRoyalFlush
	}
	sorted := make([]slotPair, len(cand))
	copy(sorted, cand)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].card.Less(sorted[j].card)
	})
	var scored []slotPair
	switch name {
	case HandSingleton:
		best := sorted[0]
		for _, s := range sorted[1:] {
			if s.card.PointValue() > best.card.PointValue() {
				best = s
			}
		}
		scored = []slotPair{best}
	case HandOnePair, HandTwoPair, HandThreeOfAKind, HandFourOfAKind:
		var counts [14]int
		for _, s := range sorted {
			counts[s.card.Rank]++
		}
		for _, s := range sorted {
			if counts[s.card.Rank] >= 2 {
				scored = append(scored, s)
			}
		}
	default:
		scored = sorted
	}
	score := BaseHandValue(name)
	for _, s := range scored {
		score += s.card.PointValue()
	}
	withMods := score
	for _, s := range scored {
		if hm, ok := s.modifier.(*HandMultiplier); ok {
			withMods *= hm.Multiplier
		}
	}
	return name, score, withMods, scored
}

// specialHandFor matches the full substituted hand against the fixed
// reference hands that earn a bonus label
func specialHandFor(hand []slotPair, name HandName) SpecialHand {
	var counts [14]int
	for _, s := range hand {
		counts[s.card.Rank]++
	}
	switch {
	case name == HandRoyalFlush:
		return SpecialRoyalFlush
	case name == HandStraightFlush && hasRanks(hand, 1, 2, 3, 4, 5):
		return SpecialSteelWheel
	case name == HandStraight && hasRanks(hand, 1, 2, 3, 4, 5):
		return SpecialWheel
	case name == HandStraight && hasRanks(hand, 1, 10, 11, 12, 13):
		return SpecialBroadway
	case name == HandFiveOfAKind && counts[Ace] >= 2:
		return SpecialQuintAces
	case name == HandFourOfAKind && counts[Ace] >= 2:
		return SpecialQuadAces
	case name == HandFourOfAKind && counts[2] >= 2:
		return SpecialQuadDeuces
	case name == HandSingleton && hasRanks(hand, 1, 2, 3, 4, 6):
		return SpecialLowball
	case name == HandSingleton && hasRanks(hand, 2, 3, 4, 5, 7):
		return SpecialPaiGow
	}
	return SpecialNone
}

// hasRanks returns true if the slots' ranks are exactly the given
// multiset (each listed rank once)
func hasRanks(slots []slotPair, ranks ...int) bool {
	if len(slots) != len(ranks) {
		return false
	}
	var counts [14]int
	for _, s := range slots {
		if s.card.Rank < 1 || s.card.Rank > 13 {
			return false
		}
		counts[s.card.Rank]++
	}
	for _, r := range ranks {
		counts[r]--
	}
	for _, c := range counts {
		if c != 0 {
			return false
		}
	}
	return true
}

// evaluatePairs evaluates the cards of a candidate hand
func evaluatePairs(pairs []slotPair) HandName {
	cards := make([]Card, len(pairs))
	for i, p := range pairs {
		cards[i] = p.card
	}
	return Evaluate(cards)
}

// clonePairs copies a candidate hand so substitutions do not alias
func clonePairs(pairs []slotPair) []slotPair {
	clone := make([]slotPair, len(pairs))
	copy(clone, pairs)
	return clone
}
