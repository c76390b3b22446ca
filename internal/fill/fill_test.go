package fill

import (
	"reflect"
	"testing"

	"certcraft/api-gateway/models"
)

func canvasWith(elements ...models.TextElement) models.CanvasData {
	c := models.NewCanvasData()
	c.Elements = elements
	return c
}

func TestNewStateSeedsLiteralText(t *testing.T) {
	canvas := canvasWith(
		models.TextElement{ID: "a", Text: "Recipient"},
		models.TextElement{ID: "b", Text: ""},
	)

	got := NewState(canvas)
	want := State{"element_a": "Recipient", "element_b": ""}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NewState = %v, want %v", got, want)
	}
}

func TestDisplay(t *testing.T) {
	el := models.TextElement{ID: "a", Text: "literal"}

	tests := []struct {
		name  string
		state State
		want  string
	}{
		{"entry present", State{"element_a": "from row"}, "from row"},
		{"entry empty falls back", State{"element_a": ""}, "literal"},
		{"entry missing falls back", State{}, "literal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Display(el, tt.state); got != tt.want {
				t.Errorf("Display = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCellAt(t *testing.T) {
	row := []string{"x", "y"}

	tests := []struct {
		i    int
		want string
	}{
		{0, "x"},
		{1, "y"},
		{2, ""},
		{-1, ""},
	}
	for _, tt := range tests {
		if got := CellAt(row, tt.i); got != tt.want {
			t.Errorf("CellAt(%d) = %q, want %q", tt.i, got, tt.want)
		}
	}
}

func TestApplyRowMergesInsteadOfReplacing(t *testing.T) {
	canvas := canvasWith(
		models.TextElement{ID: "f1", Text: "A", MappedColumn: "colX"},
		models.TextElement{ID: "f2", Text: "B", MappedColumn: "colY"},
	)
	columns := []string{"colX", "colY"}
	state := State{"element_f1": "A", "element_f2": "B"}

	// colY is empty in the new row: f2 keeps its prior value.
	ApplyRow(canvas, columns, []string{"Z", ""}, state)

	want := State{"element_f1": "Z", "element_f2": "B"}
	if !reflect.DeepEqual(state, want) {
		t.Errorf("state after ApplyRow = %v, want %v", state, want)
	}
}

func TestApplyRowSkipsUnmappedAndUnresolvable(t *testing.T) {
	canvas := canvasWith(
		models.TextElement{ID: "plain", Text: "keep"},
		models.TextElement{ID: "stale", Text: "keep too", MappedColumn: "gone"},
		models.TextElement{ID: "short", Text: "also keep", MappedColumn: "colB"},
	)
	columns := []string{"colA", "colB"}
	state := NewState(canvas)

	// Row is shorter than the header: colB reads as empty.
	ApplyRow(canvas, columns, []string{"value"}, state)

	want := State{
		"element_plain": "keep",
		"element_stale": "keep too",
		"element_short": "also keep",
	}
	if !reflect.DeepEqual(state, want) {
		t.Errorf("state after ApplyRow = %v, want %v", state, want)
	}
}

func TestApplyRowDuplicateHeaderFirstMatchWins(t *testing.T) {
	canvas := canvasWith(models.TextElement{ID: "f", Text: "", MappedColumn: "Name"})
	columns := []string{"Name", "Name"}
	state := NewState(canvas)

	ApplyRow(canvas, columns, []string{"first", "second"}, state)

	if got := state["element_f"]; got != "first" {
		t.Errorf("duplicate header resolved to %q, want %q", got, "first")
	}
}

func TestSearchRows(t *testing.T) {
	rows := [][]string{
		{"Alice", "alice@example.com"},
		{"Bob", "bob@example.com"},
		{"Carol", "ALICE is my manager"},
	}

	tests := []struct {
		name        string
		term        string
		wantRows    int
		wantVisible bool
	}{
		{"empty term hides results", "", 0, false},
		{"whitespace term hides results", "   ", 0, false},
		{"case-folded substring", "alice", 2, true},
		{"no match still visible", "zzz", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, visible := SearchRows(rows, tt.term)
			if visible != tt.wantVisible {
				t.Errorf("visible = %v, want %v", visible, tt.wantVisible)
			}
			if len(got) != tt.wantRows {
				t.Errorf("got %d rows, want %d", len(got), tt.wantRows)
			}
		})
	}
}

func TestSearchRowsPreservesOrder(t *testing.T) {
	rows := [][]string{{"b", "match"}, {"a", "match"}}
	got, _ := SearchRows(rows, "match")
	if got[0][0] != "b" || got[1][0] != "a" {
		t.Errorf("result order %v does not preserve row order", got)
	}
}
