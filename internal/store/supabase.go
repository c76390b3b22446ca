package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"

	"certcraft/api-gateway/models"
)

const templatesTable = "templates"

var errEmptyInsert = errors.New("insert returned no rows")

// Supabase is a Gateway backed by a Supabase table. Rows are filtered by
// user_id so one user can never see or delete another user's templates.
type Supabase struct {
	client *supa.Client
}

// NewSupabase wraps an initialized Supabase client.
func NewSupabase(client *supa.Client) *Supabase {
	return &Supabase{client: client}
}

func (s *Supabase) Create(_ context.Context, ownerID, name string, canvas models.CanvasData, excel models.ExcelData) (*models.Template, error) {
	now := time.Now().UTC()
	record := map[string]interface{}{
		"user_id":     ownerID,
		"name":        name,
		"canvas_data": canvas,
		"excel_data":  excel,
		"created_at":  now,
		"updated_at":  now,
	}

	body, _, err := s.client.From(templatesTable).
		Insert(record, false, "", "representation", "").
		Execute()
	if err != nil {
		return nil, &PersistenceError{Op: "create", Err: err}
	}

	var results []models.Template
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, &PersistenceError{Op: "create", Err: err}
	}
	if len(results) == 0 {
		return nil, &PersistenceError{Op: "create", Err: errEmptyInsert}
	}
	return &results[0], nil
}

func (s *Supabase) List(_ context.Context, ownerID string) ([]models.Template, error) {
	body, _, err := s.client.From(templatesTable).
		Select("*", "", false).
		Eq("user_id", ownerID).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, &PersistenceError{Op: "list", Err: err}
	}

	var templates []models.Template
	if err := json.Unmarshal(body, &templates); err != nil {
		return nil, &PersistenceError{Op: "list", Err: err}
	}
	return templates, nil
}

func (s *Supabase) Delete(_ context.Context, id, ownerID string) error {
	// Check the (id, owner) pair exists first: a filtered DELETE on a row the
	// owner cannot see succeeds silently, and the contract wants ErrNotFound.
	body, _, err := s.client.From(templatesTable).
		Select("id", "", false).
		Eq("id", id).
		Eq("user_id", ownerID).
		Execute()
	if err != nil {
		return &PersistenceError{Op: "delete", Err: err}
	}
	var matches []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &matches); err != nil {
		return &PersistenceError{Op: "delete", Err: err}
	}
	if len(matches) == 0 {
		return ErrNotFound
	}

	_, _, err = s.client.From(templatesTable).
		Delete("", "").
		Eq("id", id).
		Eq("user_id", ownerID).
		Execute()
	if err != nil {
		return &PersistenceError{Op: "delete", Err: err}
	}
	return nil
}
