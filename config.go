// config.go
//
// Copyright (C) 2026 Iron Fox Games
//
// This file implements environment-based configuration for the
// service binaries, and the built-in level presets.

package gridpoker

import (
	"os"

	"github.com/joho/godotenv"
)

// ServerConfig holds the environment-driven settings of the service.
// All fields are optional; the zero value runs an open local server
// without persistence.
type ServerConfig struct {
	Port             string
	AccessKey        string
	AllowedOrigins   string
	DatastoreProject string
}

// LoadServerConfig reads the server configuration from a .env file
// (if present) and the process environment. Environment variables win
// over the .env file, which is godotenv's default behavior.
func LoadServerConfig() ServerConfig {
	// A missing .env file is the normal production case
	_ = godotenv.Load()
	config := ServerConfig{
		Port:             os.Getenv("PORT"),
		AccessKey:        os.Getenv("ACCESS_KEY"),
		AllowedOrigins:   os.Getenv("ALLOWED_ORIGINS"),
		DatastoreProject: os.Getenv("DATASTORE_PROJECT"),
	}
	if config.Port == "" {
		config.Port = "8080"
	}
	if config.AllowedOrigins == "" {
		config.AllowedOrigins = "*"
	}
	return config
}

// DefaultGameConfig is the standard single-player level: anchored
// center wild, shuffled standard deck, no hazards, no turn limit
func DefaultGameConfig() GameConfig {
	return GameConfig{
		PlaceAnchor: true,
	}
}

// DefaultBotGameConfig is the standard player-versus-bot level
func DefaultBotGameConfig() GameConfig {
	return GameConfig{
		WithBot:     true,
		PlaceAnchor: true,
	}
}
