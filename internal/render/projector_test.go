package render

import (
	"reflect"
	"testing"

	"certcraft/api-gateway/models"
)

func TestPreviewScalesEveryGeometricQuantity(t *testing.T) {
	canvas := models.CanvasData{
		Width:           800,
		Height:          600,
		BackgroundColor: "#336699",
		Elements: []models.TextElement{{
			ID:       "f",
			Text:     "hello",
			X:        100,
			Y:        50,
			Width:    200,
			Height:   40,
			FontSize: 20,
			Color:    "#000000",
		}},
	}

	got := Preview(canvas)

	if got.Width != 480 || got.Height != 360 {
		t.Errorf("canvas scaled to %gx%g, want 480x360", got.Width, got.Height)
	}
	el := got.Elements[0]
	if el.X != 60 || el.Y != 30 || el.Width != 120 || el.Height != 24 || el.FontSize != 12 {
		t.Errorf("element geometry = {x:%g y:%g w:%g h:%g fs:%g}, want {60 30 120 24 12}",
			el.X, el.Y, el.Width, el.Height, el.FontSize)
	}
	if el.Text != "hello" || el.Color != "#000000" {
		t.Errorf("non-geometric attributes changed: %+v", el)
	}
}

func TestExportSourceIsUnscaled(t *testing.T) {
	canvas := models.CanvasData{
		Width:  800,
		Height: 600,
		Elements: []models.TextElement{
			{ID: "f", X: 100, Y: 50, Width: 200, Height: 40, FontSize: 20},
		},
	}

	got := ExportSource(canvas)
	if !reflect.DeepEqual(got, canvas) {
		t.Errorf("ExportSource = %+v, want identical to input", got)
	}
}

func TestProjectionsDoNotAliasTheCanvas(t *testing.T) {
	canvas := models.CanvasData{
		Width:    800,
		Height:   600,
		Elements: []models.TextElement{{ID: "f", X: 10}},
	}

	preview := Preview(canvas)
	exported := ExportSource(canvas)
	preview.Elements[0].X = 999
	exported.Elements[0].X = 888

	if canvas.Elements[0].X != 10 {
		t.Errorf("projection mutated the source canvas: x=%g", canvas.Elements[0].X)
	}
}
