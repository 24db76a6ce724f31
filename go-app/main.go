// go-app/main.go
//
// Copyright (C) 2026 Iron Fox Games
//
// App Engine main package for the match rules service

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime"

	gridpoker "github.com/IronFoxGames/IFG-BaseProject-sub001"
)

// Bearer authorization token, if any
var ACCESS_KEY string

// Corresponding Authorization header (or "" if no auth required)
var AUTH_HEADER string

// Allowed access control (CORS) origins
var ALLOWED_ORIGINS string = "*" // Default to all origins allowed

func validate(w http.ResponseWriter, r *http.Request, req any) bool {
	// Set CORS headers
	header := w.Header()
	header.Set("Access-Control-Allow-Origin", ALLOWED_ORIGINS)
	header.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	// Handle preflight OPTIONS request
	if r.Method == "OPTIONS" {
		// Returning false simply causes the handler to return the response headers
		return false
	}

	// We only accept POST requests
	if r.Method != "POST" {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return false
	}
	// Check for a bearer authorization token,
	// which must match the environment variable
	// ACCESS_KEY, if present
	if AUTH_HEADER != "" {
		authHeader := r.Header.Get("Authorization")
		if authHeader != AUTH_HEADER {
			http.Error(w,
				fmt.Sprintf(
					"Authorization header mismatch: got '%s'",
					authHeader,
				),
				http.StatusUnauthorized,
			)
			return false
		}
	}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		// Not valid JSON
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func placementsHandler(w http.ResponseWriter, r *http.Request) {
	var req gridpoker.PlacementsRequest
	if !validate(w, r, &req) {
		return
	}
	gridpoker.HandlePlacementsRequest(w, req)
}

func scoreHandler(w http.ResponseWriter, r *http.Request) {
	var req gridpoker.ScoreRequest
	if !validate(w, r, &req) {
		return
	}
	gridpoker.HandleScoreRequest(w, req)
}

func warmupHandler(w http.ResponseWriter, r *http.Request) {
	// No concrete action required
	log.Println("Warmup request received")
}

func main() {
	// Log to Google App Engine
	log.SetOutput(os.Stderr)
	log.Printf("Match rules service starting, Go version %s", runtime.Version())
	config := gridpoker.LoadServerConfig()
	// Figure out the authorization header, if required
	ACCESS_KEY = config.AccessKey
	if ACCESS_KEY != "" {
		AUTH_HEADER = "Bearer " + ACCESS_KEY
	}
	ALLOWED_ORIGINS = config.AllowedOrigins
	if ALLOWED_ORIGINS != "*" {
		log.Printf("Allowed CORS origins: %s", ALLOWED_ORIGINS)
	} else {
		log.Printf("No ALLOWED_ORIGINS specified, allowing all")
	}
	// Connect the match archive, if configured
	var store *gridpoker.MatchStore
	if config.DatastoreProject != "" {
		var err error
		store, err = gridpoker.NewMatchStore(context.Background(), config.DatastoreProject)
		if err != nil {
			log.Fatalf("Unable to connect to Datastore: %v", err)
		}
		defer store.Close()
		log.Printf("Archiving matches to project %s", config.DatastoreProject)
	}
	// Set up a dummy warmup handler
	http.HandleFunc("/_ah/warmup", warmupHandler)
	// Set up the actual service handlers
	http.HandleFunc("/placements", placementsHandler)
	http.HandleFunc("/score", scoreHandler)
	http.HandleFunc("/ws", gridpoker.ServeMatchSession(store))
	log.Printf("Listening on port %s", config.Port)
	// Start the server loop
	if err := http.ListenAndServe(":"+config.Port, nil); err != nil {
		log.Fatal(err)
	}
}
