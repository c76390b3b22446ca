// Package generate holds the per-user certificate generation sessions: one
// selected template, its fill state, and the current row search.
package generate

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"certcraft/api-gateway/internal/fill"
	"certcraft/api-gateway/models"
)

// ErrNoSession is returned when a session id does not exist or belongs to a
// different owner.
var ErrNoSession = errors.New("generation session not found")

// ErrNoSuchRow is returned when a result row index is out of range.
var ErrNoSuchRow = errors.New("search result row not found")

// Session is the ephemeral state of one "generate certificates" run against a
// selected template. It lives only in memory. Requests for the same session
// arrive on concurrent goroutines, so all mutable state sits behind the
// session mutex; callers only ever see copies.
type Session struct {
	mu             sync.Mutex
	id             string
	ownerID        string
	template       models.Template
	fields         fill.State
	searchTerm     string
	results        [][]string
	resultsVisible bool
}

// View is a point-in-time snapshot of a session, safe to serialize while the
// session keeps changing.
type View struct {
	ID             string          `json:"id"`
	Template       models.Template `json:"template"`
	Fields         fill.State      `json:"field_values"`
	SearchTerm     string          `json:"search_term"`
	Results        [][]string      `json:"results,omitempty"`
	ResultsVisible bool            `json:"results_visible"`
}

// ID returns the session id. It is fixed at Open.
func (s *Session) ID() string {
	return s.id
}

// Template returns the session's template. It is fixed at Open.
func (s *Session) Template() models.Template {
	return s.template
}

// Snapshot returns a consistent copy of the session state.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		ID:             s.id,
		Template:       s.template,
		Fields:         s.fieldsCopy(),
		SearchTerm:     s.searchTerm,
		Results:        s.resultsCopy(),
		ResultsVisible: s.resultsVisible,
	}
}

// FieldValues returns a copy of the current fill state.
func (s *Session) FieldValues() fill.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fieldsCopy()
}

// Search filters the template's spreadsheet rows by term and returns the new
// result set and its visibility.
func (s *Session) Search(term string) ([][]string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchTerm = term
	s.results, s.resultsVisible = fill.SearchRows(s.template.ExcelData.Rows, term)
	return s.resultsCopy(), s.resultsVisible
}

// SelectRow applies the result row at index to the fill state and clears the
// search, mirroring a user picking a row from the dropdown. It returns the
// fill state after the merge.
func (s *Session) SelectRow(index int) (fill.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.resultsVisible || index < 0 || index >= len(s.results) {
		return nil, ErrNoSuchRow
	}
	fill.ApplyRow(s.template.CanvasData, s.template.ExcelData.Columns, s.results[index], s.fields)
	s.searchTerm = ""
	s.results = nil
	s.resultsVisible = false
	return s.fieldsCopy(), nil
}

// SetField records a manual edit of one element's display value and returns
// the fill state after the edit.
func (s *Session) SetField(elementID, value string) fill.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fields[fill.Key(elementID)] = value
	return s.fieldsCopy()
}

// fieldsCopy must be called with the session mutex held.
func (s *Session) fieldsCopy() fill.State {
	out := make(fill.State, len(s.fields))
	for k, v := range s.fields {
		out[k] = v
	}
	return out
}

// resultsCopy must be called with the session mutex held.
func (s *Session) resultsCopy() [][]string {
	if s.results == nil {
		return nil
	}
	out := make([][]string, len(s.results))
	copy(out, s.results)
	return out
}

// Manager owns all live sessions. Its mutex guards the map; each session
// guards its own state.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager returns an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Open starts a session for a template. The fill state is always rebuilt from
// the template's literal field texts: selecting a template never inherits
// values from a previous session.
func (m *Manager) Open(ownerID string, tpl models.Template) *Session {
	s := &Session{
		id:       uuid.NewString(),
		ownerID:  ownerID,
		template: tpl,
		fields:   fill.NewState(tpl.CanvasData),
	}
	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()
	return s
}

// Get returns the session with the given id, scoped to its owner.
func (m *Manager) Get(id, ownerID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok || s.ownerID != ownerID {
		return nil, ErrNoSession
	}
	return s, nil
}

// Close discards a session. Unknown ids are ignored.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// DropTemplate closes every session pinned to the given template, so deleting
// a template returns its users to the selection list instead of leaving them
// on a dangling session.
func (m *Manager) DropTemplate(templateID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		if s.template.ID == templateID {
			delete(m.sessions, id)
		}
	}
}
