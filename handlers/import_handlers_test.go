package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

func uploadRequest(t *testing.T, user string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", "roster.xlsx")
	if err != nil {
		t.Fatalf("building multipart form: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("writing multipart form: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing multipart form: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/spreadsheets/import", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("X-Test-User", user)
	return req
}

func workbookBytes(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	header := []interface{}{"Name", "Course"}
	row := []interface{}{"Alice", "Go 101"}
	if err := f.SetSheetRow("Sheet1", "A1", &header); err != nil {
		t.Fatalf("building fixture workbook: %v", err)
	}
	if err := f.SetSheetRow("Sheet1", "A2", &row); err != nil {
		t.Fatalf("building fixture workbook: %v", err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("writing fixture workbook: %v", err)
	}
	return buf.Bytes()
}

func TestImportSpreadsheet(t *testing.T) {
	app, _ := newTestApp(t)

	payload := doJSON(t, app, uploadRequest(t, "user-a", workbookBytes(t)), fiber.StatusOK)
	data := payload["data"].(map[string]interface{})

	if data["selected_sheet"] != "Sheet1" {
		t.Errorf("selected_sheet = %v, want auto-selected Sheet1", data["selected_sheet"])
	}
	sheets := data["sheets"].([]interface{})
	if len(sheets) != 1 {
		t.Fatalf("got %d sheets, want 1", len(sheets))
	}
	sheet := sheets[0].(map[string]interface{})
	cols := sheet["columns"].([]interface{})
	if len(cols) != 2 || cols[0] != "Name" {
		t.Errorf("columns = %v", cols)
	}
}

func TestImportSpreadsheetRejectsGarbage(t *testing.T) {
	app, _ := newTestApp(t)
	doJSON(t, app, uploadRequest(t, "user-a", []byte("not a workbook")), fiber.StatusBadRequest)
}

func TestImportSpreadsheetRequiresFile(t *testing.T) {
	app, _ := newTestApp(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/spreadsheets/import", strings.NewReader(""))
	req.Header.Set("X-Test-User", "user-a")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
