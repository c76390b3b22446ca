// Package fill computes the display value of every canvas element during a
// certificate generation session, either from manual edits or from a selected
// spreadsheet row.
package fill

import (
	"strings"

	"certcraft/api-gateway/models"
)

// State maps element keys ("element_<id>") to the current display value for
// one generation session. It is never persisted.
type State map[string]string

// Key returns the state key for an element id.
func Key(elementID string) string {
	return "element_" + elementID
}

// NewState seeds a fresh state from the literal text of every canvas element.
func NewState(canvas models.CanvasData) State {
	s := make(State, len(canvas.Elements))
	for _, el := range canvas.Elements {
		s[Key(el.ID)] = el.Text
	}
	return s
}

// Display returns the current value for an element: the state entry if it is
// non-empty, otherwise the element's literal text.
func Display(el models.TextElement, s State) string {
	if v := s[Key(el.ID)]; v != "" {
		return v
	}
	return el.Text
}

// CellAt returns the cell at index i, or "" when the row is too short.
func CellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// ApplyRow overwrites the state entry of every element whose mapped column
// resolves to a non-empty cell in row. Duplicate headers resolve to the first
// positional match. Elements with no mapping, an unresolvable mapping, or an
// empty source cell keep their previous value: applying a second row merges
// over the first rather than replacing it wholesale.
func ApplyRow(canvas models.CanvasData, columns []string, row []string, s State) {
	for _, el := range canvas.Elements {
		if el.MappedColumn == "" {
			continue
		}
		idx := indexOf(columns, el.MappedColumn)
		if idx < 0 {
			continue
		}
		if cell := CellAt(row, idx); cell != "" {
			s[Key(el.ID)] = cell
		}
	}
}

// SearchRows returns the rows containing term as a case-insensitive substring
// in any cell, preserving row order, along with whether results should be
// shown at all. A blank term means "no active search", not "everything
// matches", so it reports false with no rows.
func SearchRows(rows [][]string, term string) ([][]string, bool) {
	if strings.TrimSpace(term) == "" {
		return nil, false
	}
	needle := strings.ToLower(term)
	matched := [][]string{}
	for _, row := range rows {
		for _, cell := range row {
			if strings.Contains(strings.ToLower(cell), needle) {
				matched = append(matched, row)
				break
			}
		}
	}
	return matched, true
}

func indexOf(list []string, want string) int {
	for i, v := range list {
		if v == want {
			return i
		}
	}
	return -1
}
