package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"certcraft/api-gateway/internal/store"
	"certcraft/api-gateway/models"
)

// newTestApp wires the handlers onto a Fiber app backed by the in-memory
// store. Auth is stubbed: the X-Test-User header becomes the caller identity.
func newTestApp(t *testing.T) (*fiber.App, *ApplicationHandler) {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	h := NewApplicationHandler(log, store.NewMemory())

	app := fiber.New()
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		// Copy the header value: fiber returns zero-copy strings aliasing
		// the request buffer, which fasthttp reuses for later requests.
		if id := strings.Clone(c.Get("X-Test-User")); id != "" {
			c.Locals("user", models.User{ID: id, Email: id + "@example.com"})
		}
		return c.Next()
	})

	api.Post("/spreadsheets/import", h.ImportSpreadsheet)
	api.Post("/templates", h.CreateTemplate)
	api.Get("/templates", h.ListTemplates)
	api.Delete("/templates/:id", h.DeleteTemplate)

	sessions := api.Group("/generate/sessions")
	sessions.Post("", h.OpenSession)
	sessions.Post("/:id/search", h.SearchSessionRows)
	sessions.Post("/:id/rows/:index", h.SelectSessionRow)
	sessions.Patch("/:id/fields", h.SetSessionField)
	sessions.Get("/:id/preview", h.PreviewSession)
	sessions.Post("/:id/export", h.ExportSession)
	sessions.Delete("/:id", h.CloseSession)

	return app, h
}

func jsonRequest(t *testing.T, method, target, user string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	return req
}

func doJSON(t *testing.T, app *fiber.App, req *http.Request, wantStatus int) map[string]interface{} {
	t.Helper()
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("%s %s: status %d, want %d (body %s)", req.Method, req.URL.Path, resp.StatusCode, wantStatus, raw)
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return payload
}

func testCanvasBody() map[string]interface{} {
	return map[string]interface{}{
		"width":           800,
		"height":          600,
		"backgroundColor": "#ffffff",
		"elements": []map[string]interface{}{{
			"id":           "name",
			"text":         "Your Name",
			"x":            100,
			"y":            50,
			"width":        200,
			"height":       40,
			"fontSize":     20,
			"fontFamily":   "Arial",
			"color":        "#000000",
			"mappedColumn": "Name",
		}},
	}
}

func testExcelBody() map[string]interface{} {
	return map[string]interface{}{
		"columns":       []string{"Name", "Course"},
		"data":          [][]string{{"Alice", "Go 101"}, {"Bob", ""}},
		"selectedSheet": "Sheet1",
	}
}

func createTemplate(t *testing.T, app *fiber.App, user, name string) string {
	t.Helper()
	payload := doJSON(t, app, jsonRequest(t, http.MethodPost, "/api/v1/templates", user, map[string]interface{}{
		"name":        name,
		"canvas_data": testCanvasBody(),
		"excel_data":  testExcelBody(),
	}), fiber.StatusCreated)

	data := payload["data"].(map[string]interface{})
	id, _ := data["id"].(string)
	if id == "" {
		t.Fatal("create response has no template id")
	}
	return id
}
