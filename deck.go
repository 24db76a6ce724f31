// deck.go
//
// Copyright (C) 2026 Iron Fox Games
//
// This file contains the deck construction and shuffling logic.
// The deck is a LIFO stack: cards are drawn by popping the tail.

package gridpoker

import (
	"math/rand"
	"strings"
)

// DeckJokerCount is the number of jokers in a standard deck
const DeckJokerCount = 2

// Deck is a stack of cards yet to be drawn and dealt in a match
type Deck []Card

// NewStandardDeck returns the default 54-card deck: the 52 rank/suit
// combinations plus two jokers, in a fixed unshuffled order
func NewStandardDeck() Deck {
	deck := make(Deck, 0, 52+DeckJokerCount)
	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Ace; rank <= King; rank++ {
			deck = append(deck, NewCard(rank, suit))
		}
	}
	for i := 0; i < DeckJokerCount; i++ {
		deck = append(deck, NewJoker())
	}
	return deck
}

// NewCustomDeck copies an authored card list into a deck, reversed so
// that popping the tail draws the cards in authored order
func NewCustomDeck(cards []Card) Deck {
	deck := make(Deck, len(cards))
	for i, c := range cards {
		deck[len(cards)-1-i] = c
	}
	return deck
}

// Shuffle randomizes the deck in place with a Fisher-Yates shuffle,
// using the supplied generator so that matches are reproducible
func (deck Deck) Shuffle(rng *rand.Rand) {
	for i := len(deck) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
}

// Draw pops one card from the tail of the deck.
// Returns false if the deck is empty.
func (deck *Deck) Draw() (Card, bool) {
	if deck == nil || len(*deck) == 0 {
		return Card{}, false
	}
	last := len(*deck) - 1
	card := (*deck)[last]
	*deck = (*deck)[:last]
	return card, true
}

// String returns a readable representation of the remaining deck
func (deck Deck) String() string {
	if len(deck) == 0 {
		return "Empty"
	}
	var sb strings.Builder
	for i, c := range deck {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(c.String())
	}
	return sb.String()
}

// allRegularCards is the 52-card substitution set used when resolving
// wildcards; deck jokers are never substitution candidates
var allRegularCards = initRegularCards()

func initRegularCards() []Card {
	cards := make([]Card, 0, 52)
	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Ace; rank <= King; rank++ {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}
