// Package config loads CLI configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds the settings shared by every command.
type Config struct {
	// APIBaseURL is the backend's base address.
	APIBaseURL string
	// CredentialPath is the bbolt file the session credential persists in.
	CredentialPath string
	// ListenAddr is the demo backend's listen address.
	ListenAddr string
}

// Load reads configuration from the environment. A .env file in the
// working directory is merged in when present; real environment
// variables win.
func Load() Config {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	return Config{
		APIBaseURL:     getEnv("CINEFEED_API_URL", "http://localhost:8080"),
		CredentialPath: getEnv("CINEFEED_CREDENTIALS", defaultCredentialPath()),
		ListenAddr:     getEnv("CINEFEED_LISTEN", ":8080"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultCredentialPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "cinefeed-credentials.db"
	}
	return filepath.Join(home, ".cinefeed", "credentials.db")
}
