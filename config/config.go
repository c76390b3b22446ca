package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Store backend selectors for Config.StoreBackend.
const (
	BackendMemory   = "memory"
	BackendSupabase = "supabase"
	BackendSheets   = "sheets"
)

// Config carries everything the service reads from the environment.
type Config struct {
	Port         string
	StoreBackend string

	SupabaseURL       string
	SupabaseKey       string
	SupabaseJWTSecret string

	SpreadsheetID         string
	GoogleCredentialsFile string
}

// Load reads the environment, honoring a .env file when present, and
// validates that the selected store backend has what it needs.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:                  getenv("PORT", "8080"),
		StoreBackend:          getenv("STORE_BACKEND", BackendMemory),
		SupabaseURL:           os.Getenv("SUPABASE_URL"),
		SupabaseKey:           os.Getenv("SUPABASE_SERVICE_KEY"),
		SupabaseJWTSecret:     os.Getenv("SUPABASE_JWT_SECRET"),
		SpreadsheetID:         os.Getenv("GOOGLE_SPREADSHEET_ID"),
		GoogleCredentialsFile: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
	}

	switch cfg.StoreBackend {
	case BackendMemory:
	case BackendSupabase:
		if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
			return cfg, fmt.Errorf("SUPABASE_URL and SUPABASE_SERVICE_KEY must be set for the supabase backend")
		}
	case BackendSheets:
		if cfg.SpreadsheetID == "" {
			return cfg, fmt.Errorf("GOOGLE_SPREADSHEET_ID must be set for the sheets backend")
		}
	default:
		return cfg, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
