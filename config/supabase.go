package config

import (
	"fmt"

	supa "github.com/supabase-community/supabase-go"
)

// NewSupabaseClient builds the Supabase client for the hosted relational
// backend. The caller owns the client and injects it where needed.
func NewSupabaseClient(cfg Config) (*supa.Client, error) {
	client, err := supa.NewClient(cfg.SupabaseURL, cfg.SupabaseKey, nil)
	if err != nil {
		return nil, fmt.Errorf("initializing supabase client: %w", err)
	}
	return client, nil
}
