// store.go
//
// Copyright (C) 2026 Iron Fox Games
//
// This file implements the completed-match archive on Google Cloud
// Datastore. The engine never touches the store; the service layer
// projects a finished Match into a MatchRecord and persists it here.

package gridpoker

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/datastore"
)

// matchRecordKind is the Datastore entity kind for archived matches
const matchRecordKind = "MatchRecord"

// HandTally counts how often one hand category was played in a match
type HandTally struct {
	HandName string `json:"handName"`
	Count    int    `json:"count"`
}

// MatchRecord is the flat, serializable projection of a finished
// match. It carries everything the meta-game needs (scores, hand
// statistics, completion state) and nothing it does not (the full
// turn history stays with the client).
type MatchRecord struct {
	PlayerName    string      `json:"playerName"`
	OpponentName  string      `json:"opponentName,omitempty"`
	PlayerScore   int         `json:"playerScore"`
	OpponentScore int         `json:"opponentScore"`
	TurnCount     int         `json:"turnCount"`
	HandTallies   []HandTally `json:"handTallies,omitempty"`
	ObjectiveMet  bool        `json:"objectiveMet"`
	Timestamp     time.Time   `json:"timestamp"`
}

// NewMatchRecord projects a match into its archive record
func NewMatchRecord(match *Match, playerName, opponentName string) *MatchRecord {
	player, opponent := match.CalculateScores()
	tallies := make(map[HandName]int)
	for _, turn := range match.Turns {
		if turn.Kind == TurnPlay {
			tallies[turn.HandName]++
		}
	}
	record := &MatchRecord{
		PlayerName:    playerName,
		OpponentName:  opponentName,
		PlayerScore:   player,
		OpponentScore: opponent,
		TurnCount:     len(match.Turns),
		ObjectiveMet:  match.IsObjectiveMet(),
		Timestamp:     time.Now().UTC(),
	}
	for name := HandSingleton; name <= HandRoyalFlush; name++ {
		if count := tallies[name]; count > 0 {
			record.HandTallies = append(record.HandTallies,
				HandTally{HandName: name.String(), Count: count})
		}
	}
	return record
}

// MatchStore archives finished matches in Datastore
type MatchStore struct {
	client *datastore.Client
}

// NewMatchStore connects to the Datastore project
func NewMatchStore(ctx context.Context, projectID string) (*MatchStore, error) {
	client, err := datastore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("connecting to datastore: %w", err)
	}
	return &MatchStore{client: client}, nil
}

// Archive persists a match record and returns its assigned id
func (s *MatchStore) Archive(ctx context.Context, record *MatchRecord) (int64, error) {
	key := datastore.IncompleteKey(matchRecordKind, nil)
	key, err := s.client.Put(ctx, key, record)
	if err != nil {
		return 0, fmt.Errorf("archiving match: %w", err)
	}
	return key.ID, nil
}

// Get fetches an archived match record by id
func (s *MatchStore) Get(ctx context.Context, id int64) (*MatchRecord, error) {
	var record MatchRecord
	key := datastore.IDKey(matchRecordKind, id, nil)
	if err := s.client.Get(ctx, key, &record); err != nil {
		return nil, fmt.Errorf("fetching match %d: %w", id, err)
	}
	return &record, nil
}

// Recent returns the most recently archived match records
func (s *MatchStore) Recent(ctx context.Context, limit int) ([]*MatchRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	query := datastore.NewQuery(matchRecordKind).Order("-Timestamp").Limit(limit)
	var records []*MatchRecord
	if _, err := s.client.GetAll(ctx, query, &records); err != nil {
		return nil, fmt.Errorf("listing matches: %w", err)
	}
	return records, nil
}

// Close releases the underlying client
func (s *MatchStore) Close() error {
	return s.client.Close()
}
