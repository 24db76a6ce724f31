// bot.go
//
// Copyright (C) 2026 Iron Fox Games
//
// This file implements the automatic opponent: play generation over
// the legal play locations, and pluggable strategies for picking one.

package gridpoker

import (
	"fmt"
	"sort"
)

// BotPlay is one fully resolved candidate play: the placements to
// commit and the score they would earn.
type BotPlay struct {
	Placements []CardPlacement
	Score      int
	HandName   HandName
}

// Bot is an interface for automatic players that implement a playing
// strategy to pick a play given the list of legal candidates. A nil
// result means pass.
type Bot interface {
	PickPlay(match *Match, plays []BotPlay) *BotPlay
}

// BotWrapper wraps a Bot implementation
type BotWrapper struct {
	Bot
}

// GeneratePlay generates the legal candidate plays, then asks the
// wrapped bot to pick one. An empty result means pass.
func (bw *BotWrapper) GeneratePlay(match *Match) []CardPlacement {
	plays := GeneratePlays(match)
	if play := bw.PickPlay(match, plays); play != nil {
		return play.Placements
	}
	return nil
}

// HandToMove returns the hand of the side whose turn it is
func (match *Match) HandToMove() []Card {
	if match.PlayerToMove() == 1 {
		return match.OpponentHand
	}
	return match.PlayerHand
}

// GeneratePlays enumerates every legal play for the side to move:
// for each legal play location, every arrangement of hand cards over
// its open tiles that classifies as a valid hand. Scores include
// tile multipliers but not the one-shot extra-servings multiplier.
func GeneratePlays(match *Match) []BotPlay {
	hand := match.HandToMove()
	if len(hand) == 0 {
		return nil
	}
	board := match.BuildBoardFromTurns()
	blocked := match.BoardModifiers.BlockedCells()
	locations := FindValidPlayLocations(board, blocked, len(hand))
	var plays []BotPlay
	seenLines := make(map[string]bool)
	for _, loc := range locations {
		open := len(loc.UnoccupiedTiles)
		if open > len(hand) {
			continue
		}
		// Overlapping alignments rediscover the same line; skip repeats
		key := lineKey(loc.UnoccupiedTiles)
		if seenLines[key] {
			continue
		}
		seenLines[key] = true
		for _, arr := range arrangements(len(hand), open) {
			placements := make([]CardPlacement, open)
			for i, handIdx := range arr {
				placements[i] = NewCardPlacement(loc.UnoccupiedTiles[i], hand[handIdx])
			}
			line, _, err := FindHandIncludingAnchors(board, placements)
			if err != nil {
				continue
			}
			cards := make([]Card, HandSize)
			mods := make([]BoardModifier, HandSize)
			for i, p := range line {
				cards[i] = p.Card
				if hm := match.BoardModifiers.MultiplierAt(p.BoardIndex); hm != nil {
					mods[i] = hm
				}
			}
			identity := match.classifier.Analyze(cards)
			if identity == HandInvalid {
				continue
			}
			classification, err := ScoreHand(cards, mods, identity)
			if err != nil {
				continue
			}
			plays = append(plays, BotPlay{
				Placements: placements,
				Score:      classification.ScoreWithModifiers,
				HandName:   classification.HandName,
			})
		}
	}
	return plays
}

// lineKey canonicalizes a set of open tiles for deduplication
func lineKey(tiles []int) string {
	sorted := make([]int, len(tiles))
	copy(sorted, tiles)
	sort.Ints(sorted)
	return fmt.Sprint(sorted)
}

// arrangements returns every ordered selection of k distinct indices
// from 0..n-1
func arrangements(n, k int) [][]int {
	var result [][]int
	used := make([]bool, n)
	current := make([]int, 0, k)
	var generate func()
	generate = func() {
		if len(current) == k {
			arr := make([]int, k)
			copy(arr, current)
			result = append(result, arr)
			return
		}
		for i := 0; i < n; i++ {
			if used[i] {
				continue
			}
			used[i] = true
			current = append(current, i)
			generate()
			current = current[:len(current)-1]
			used[i] = false
		}
	}
	generate()
	return result
}

// HighScoreBot implements a simple strategy: it always picks the
// highest-scoring play available, or passes if there is none
type HighScoreBot struct {
}

// NewHighScoreBot returns a wrapped HighScoreBot
func NewHighScoreBot() *BotWrapper {
	return &BotWrapper{Bot: &HighScoreBot{}}
}

// NewPassBot returns a wrapped PassBot
func NewPassBot() *BotWrapper {
	return &BotWrapper{Bot: &PassBot{}}
}

// PickPlay for a HighScoreBot picks the highest scoring play
func (bot *HighScoreBot) PickPlay(match *Match, plays []BotPlay) *BotPlay {
	if len(plays) == 0 {
		return nil
	}
	best := 0
	for i := 1; i < len(plays); i++ {
		if plays[i].Score > plays[best].Score {
			best = i
		}
	}
	return &plays[best]
}

// PassBot never plays; it exists for scripted matches and tests
type PassBot struct {
}

// PickPlay for a PassBot always passes
func (bot *PassBot) PickPlay(match *Match, plays []BotPlay) *BotPlay {
	return nil
}
