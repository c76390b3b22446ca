// Package render derives the two presentations of a certificate canvas: the
// reduced-scale on-screen preview and the full-scale export source. Both are
// pure functions of the same canvas, so they cannot drift apart.
package render

import "certcraft/api-gateway/models"

// PreviewScale is the single display scale factor applied to every geometric
// quantity of the preview. It is shared, not per-element.
const PreviewScale = 0.6

// Preview returns a copy of the canvas with position, size and font size
// multiplied by PreviewScale. Colors, text and mappings are untouched.
func Preview(c models.CanvasData) models.CanvasData {
	out := clone(c)
	out.Width *= PreviewScale
	out.Height *= PreviewScale
	for i := range out.Elements {
		el := &out.Elements[i]
		el.X *= PreviewScale
		el.Y *= PreviewScale
		el.Width *= PreviewScale
		el.Height *= PreviewScale
		el.FontSize *= PreviewScale
	}
	return out
}

// ExportSource returns an independent copy of the canvas at full scale. It is
// the only input the export pipeline sees.
func ExportSource(c models.CanvasData) models.CanvasData {
	return clone(c)
}

func clone(c models.CanvasData) models.CanvasData {
	out := c
	out.Elements = make([]models.TextElement, len(c.Elements))
	copy(out.Elements, c.Elements)
	return out
}
