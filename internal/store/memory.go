package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"certcraft/api-gateway/models"
)

// Memory is a Gateway backed by process memory. It is the default backend for
// local development and the reference implementation for the gateway
// contract tests.
type Memory struct {
	mu        sync.Mutex
	templates []models.Template
	now       func() time.Time
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{now: time.Now}
}

func (m *Memory) Create(_ context.Context, ownerID, name string, canvas models.CanvasData, excel models.ExcelData) (*models.Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	tpl := models.Template{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		Name:       name,
		CanvasData: canvas,
		ExcelData:  excel,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	m.templates = append(m.templates, tpl)
	return &tpl, nil
}

func (m *Memory) List(_ context.Context, ownerID string) ([]models.Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []models.Template{}
	for _, tpl := range m.templates {
		if tpl.OwnerID == ownerID {
			out = append(out, tpl)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *Memory) Delete(_ context.Context, id, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, tpl := range m.templates {
		if tpl.ID == id && tpl.OwnerID == ownerID {
			m.templates = append(m.templates[:i], m.templates[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
