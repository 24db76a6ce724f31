// main.go
//
// Copyright (C) 2026 Iron Fox Games

// Example main program for exercising the gridpoker module

package main

import (
	"flag"
	"fmt"
	"math/rand"

	gridpoker "github.com/IronFoxGames/IFG-BaseProject-sub001"
)

// Simulate a single match between two bots and return their scores
func simulateMatch(seed int64, verbose bool) (scoreA, scoreB int) {

	// Wrap fmt.Printf
	var p func(string, ...interface{}) (int, error)
	if verbose {
		p = fmt.Printf
	} else {
		p = func(format string, a ...interface{}) (int, error) { return 0, nil }
	}
	rng := rand.New(rand.NewSource(seed))
	match := gridpoker.NewGame(gridpoker.DefaultBotGameConfig(), rng)
	botA := gridpoker.NewHighScoreBot()
	botB := gridpoker.NewHighScoreBot()
	for {
		var bot *gridpoker.BotWrapper
		if match.PlayerToMove() == 0 {
			bot = botA
		} else {
			bot = botB
		}
		placements := bot.GeneratePlay(match)
		var err error
		if match.PlayerToMove() == 0 {
			err = match.DoPlayerTurn(placements, nil)
		} else {
			err = match.DoBotTurn(placements, nil)
		}
		if err != nil {
			p("Turn rejected: %v\n", err)
			break
		}
		if turn := match.Turns[len(match.Turns)-1]; turn.Kind == gridpoker.TurnPlay {
			p("Turn %v: %v for %v points\n",
				len(match.Turns), turn.HandName, turn.Score)
		} else {
			p("Turn %v: pass\n", len(match.Turns))
		}
		p("%v\n", match.BuildBoardFromTurns())
		if match.IsMatchComplete() {
			p("Match over!\n\n")
			break
		}
	}
	scoreA, scoreB = match.CalculateScores()
	return // scoreA, scoreB
}

func main() {
	num := flag.Int("n", 10, "Number of matches to simulate")
	seed := flag.Int64("seed", 1, "Random seed of the first match")
	quiet := flag.Bool("q", false, "Suppress output of board state and turns")
	flag.Parse()
	var winsA, winsB int
	for i := 0; i < *num; i++ {
		scoreA, scoreB := simulateMatch(*seed+int64(i), !*quiet)
		if scoreA > scoreB {
			winsA++
		} else {
			if scoreB > scoreA {
				winsB++
			}
		}
	}
	fmt.Printf("%v matches were played.\n"+
		"Bot A won %v matches, and Bot B won %v matches; %v matches were draws.\n",
		*num, winsA, winsB, *num-winsA-winsB)
}
