// Package store persists certificate templates. Two hosted backends (a
// Supabase table and a Google Sheets spreadsheet) and an in-memory backend
// expose the same owner-scoped create/list/delete contract; picking one is a
// deployment decision.
package store

import (
	"context"
	"errors"
	"fmt"

	"certcraft/api-gateway/models"
)

// ErrNotFound is returned by Delete when no record matches the (id, owner)
// pair. An existing record under a different owner is indistinguishable from
// a missing one.
var ErrNotFound = errors.New("template not found")

// PersistenceError wraps a transport or auth failure talking to a backend.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Gateway is the template persistence contract. List returns the owner's
// templates newest first. Every operation is scoped to the owner.
type Gateway interface {
	Create(ctx context.Context, ownerID, name string, canvas models.CanvasData, excel models.ExcelData) (*models.Template, error)
	List(ctx context.Context, ownerID string) ([]models.Template, error)
	Delete(ctx context.Context, id, ownerID string) error
}
