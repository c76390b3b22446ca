package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"certcraft/api-gateway/models"
)

const (
	templatesSheet = "Templates"
	templatesRange = templatesSheet + "!A:F"
)

// SheetStore is a Gateway that keeps each template as one row of a Google
// Sheets spreadsheet: id, owner, name, JSON canvas, JSON spreadsheet
// snapshot, created-at. List and Delete are full-table scans, which is fine
// at the data sizes a single user produces.
type SheetStore struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewSheetStore builds a Gateway on the given spreadsheet. Credentials come
// through the standard Google API client options.
func NewSheetStore(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*SheetStore, error) {
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, &PersistenceError{Op: "connect", Err: err}
	}
	return &SheetStore{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// EnsureSheet creates the Templates tab with its header row if the
// spreadsheet does not have one yet.
func (s *SheetStore) EnsureSheet(ctx context.Context) error {
	doc, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return &PersistenceError{Op: "init", Err: err}
	}
	for _, sheet := range doc.Sheets {
		if sheet.Properties.Title == templatesSheet {
			return nil
		}
	}

	_, err = s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: templatesSheet},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return &PersistenceError{Op: "init", Err: err}
	}

	header := &sheets.ValueRange{
		Values: [][]interface{}{{"ID", "User ID", "Name", "Canvas Data", "Excel Data", "Created At"}},
	}
	_, err = s.svc.Spreadsheets.Values.Update(s.spreadsheetID, templatesSheet+"!A1:F1", header).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return &PersistenceError{Op: "init", Err: err}
	}
	return nil
}

func (s *SheetStore) Create(ctx context.Context, ownerID, name string, canvas models.CanvasData, excel models.ExcelData) (*models.Template, error) {
	now := time.Now().UTC()
	tpl := models.Template{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		Name:       name,
		CanvasData: canvas,
		ExcelData:  excel,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	canvasJSON, err := json.Marshal(canvas)
	if err != nil {
		return nil, &PersistenceError{Op: "create", Err: err}
	}
	excelJSON, err := json.Marshal(excel)
	if err != nil {
		return nil, &PersistenceError{Op: "create", Err: err}
	}

	row := &sheets.ValueRange{Values: [][]interface{}{{
		tpl.ID, tpl.OwnerID, tpl.Name, string(canvasJSON), string(excelJSON), tpl.CreatedAt.Format(time.RFC3339),
	}}}
	_, err = s.svc.Spreadsheets.Values.Append(s.spreadsheetID, templatesRange, row).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return nil, &PersistenceError{Op: "create", Err: err}
	}
	return &tpl, nil
}

func (s *SheetStore) List(ctx context.Context, ownerID string) ([]models.Template, error) {
	rows, err := s.rows(ctx)
	if err != nil {
		return nil, err
	}

	templates := []models.Template{}
	for i := 1; i < len(rows); i++ { // row 0 is the header
		tpl, ok := decodeRow(rows[i])
		if ok && tpl.OwnerID == ownerID {
			templates = append(templates, tpl)
		}
	}
	sort.SliceStable(templates, func(i, j int) bool {
		return templates[i].CreatedAt.After(templates[j].CreatedAt)
	})
	return templates, nil
}

func (s *SheetStore) Delete(ctx context.Context, id, ownerID string) error {
	rows, err := s.rows(ctx)
	if err != nil {
		return err
	}

	rowIndex := -1
	for i := 1; i < len(rows); i++ {
		if cellString(rows[i], 0) == id && cellString(rows[i], 1) == ownerID {
			rowIndex = i
			break
		}
	}
	if rowIndex == -1 {
		return ErrNotFound
	}

	sheetID, err := s.sheetID(ctx)
	if err != nil {
		return err
	}
	_, err = s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(rowIndex),
					EndIndex:   int64(rowIndex + 1),
				},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return &PersistenceError{Op: "delete", Err: err}
	}
	return nil
}

func (s *SheetStore) rows(ctx context.Context) ([][]interface{}, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, templatesRange).Context(ctx).Do()
	if err != nil {
		return nil, &PersistenceError{Op: "scan", Err: err}
	}
	return resp.Values, nil
}

func (s *SheetStore) sheetID(ctx context.Context) (int64, error) {
	doc, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return 0, &PersistenceError{Op: "scan", Err: err}
	}
	for _, sheet := range doc.Sheets {
		if sheet.Properties.Title == templatesSheet {
			return sheet.Properties.SheetId, nil
		}
	}
	return 0, &PersistenceError{Op: "scan", Err: fmt.Errorf("sheet %q missing", templatesSheet)}
}

// decodeRow turns one spreadsheet row back into a template. Rows with
// unparseable JSON payloads are skipped rather than failing the whole list.
func decodeRow(row []interface{}) (models.Template, bool) {
	tpl := models.Template{
		ID:      cellString(row, 0),
		OwnerID: cellString(row, 1),
		Name:    cellString(row, 2),
	}
	if tpl.ID == "" {
		return tpl, false
	}
	if err := json.Unmarshal([]byte(cellString(row, 3)), &tpl.CanvasData); err != nil {
		return tpl, false
	}
	if err := json.Unmarshal([]byte(cellString(row, 4)), &tpl.ExcelData); err != nil {
		return tpl, false
	}
	if ts, err := time.Parse(time.RFC3339, cellString(row, 5)); err == nil {
		tpl.CreatedAt = ts
		tpl.UpdatedAt = ts
	}
	return tpl, true
}

func cellString(row []interface{}, i int) string {
	if i >= len(row) {
		return ""
	}
	s, _ := row[i].(string)
	return s
}
