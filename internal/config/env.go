package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnvFiles loads .env and .env.local from the working directory when present.
// Existing process environment variables are not overwritten, so .env.local
// only fills keys .env left unset.
func LoadEnvFiles() []string {
	var loaded []string
	for _, envPath := range []string{".env", ".env.local"} {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			slog.Warn("Failed to load environment file", "path", envPath, "error", err)
			continue
		}
		loaded = append(loaded, envPath)
	}
	return loaded
}
