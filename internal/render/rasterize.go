package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"sync"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"certcraft/api-gateway/internal/fill"
	"certcraft/api-gateway/models"
)

var (
	fontOnce sync.Once
	fontErr  error
	fonts    [4]*sfnt.Font // indexed by bold | italic<<1
)

func loadFonts() {
	sources := [4][]byte{goregular.TTF, gobold.TTF, goitalic.TTF, gobolditalic.TTF}
	for i, ttf := range sources {
		fonts[i], fontErr = opentype.Parse(ttf)
		if fontErr != nil {
			return
		}
	}
}

func faceFor(el models.TextElement) (font.Face, error) {
	fontOnce.Do(loadFonts)
	if fontErr != nil {
		return nil, fontErr
	}
	idx := 0
	if el.IsBold {
		idx |= 1
	}
	if el.IsItalic {
		idx |= 2
	}
	return opentype.NewFace(fonts[idx], &opentype.FaceOptions{
		Size:    el.FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Rasterize draws the export-source canvas with the given fill state into a
// full-scale bitmap: background color, then the background image scaled to
// cover, then each element's text centered, word-wrapped and clipped to its
// box, in element order. Each element renders its fill.Display value.
func Rasterize(canvas models.CanvasData, values fill.State) (*image.RGBA, error) {
	w, h := int(canvas.Width), int(canvas.Height)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("degenerate canvas size %dx%d", w, h)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	bg := parseHexColor(canvas.BackgroundColor, color.RGBA{255, 255, 255, 255})
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	if canvas.BackgroundImage != "" {
		if err := drawCover(img, canvas.BackgroundImage); err != nil {
			return nil, err
		}
	}

	for _, el := range canvas.Elements {
		if err := drawElement(img, el, fill.Display(el, values)); err != nil {
			return nil, err
		}
	}
	return img, nil
}

// drawCover decodes a data-URI image and draws it scaled to cover the whole
// canvas, centered, like CSS background-size: cover.
func drawCover(dst *image.RGBA, dataURI string) error {
	_, payload, ok := strings.Cut(dataURI, ",")
	if !ok {
		return fmt.Errorf("malformed background image data URI")
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return fmt.Errorf("decoding background image: %w", err)
	}
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("decoding background image: %w", err)
	}

	db, sb := dst.Bounds(), src.Bounds()
	sx := float64(db.Dx()) / float64(sb.Dx())
	sy := float64(db.Dy()) / float64(sb.Dy())
	scale := sx
	if sy > sx {
		scale = sy
	}
	sw := int(float64(sb.Dx()) * scale)
	sh := int(float64(sb.Dy()) * scale)
	off := image.Pt((db.Dx()-sw)/2, (db.Dy()-sh)/2)
	target := image.Rect(off.X, off.Y, off.X+sw, off.Y+sh)
	xdraw.CatmullRom.Scale(dst, target, src, sb, xdraw.Over, nil)
	return nil
}

// drawElement renders one element's text into its own bitmap and composites
// it at the element position. Text is centered both ways, wrapped on word
// boundaries, and whatever overflows the box is cut off.
func drawElement(dst *image.RGBA, el models.TextElement, text string) error {
	ew, eh := int(el.Width), int(el.Height)
	if ew <= 0 || eh <= 0 || text == "" {
		return nil
	}

	face, err := faceFor(el)
	if err != nil {
		return err
	}
	defer face.Close()

	box := image.NewRGBA(image.Rect(0, 0, ew, eh))
	col := image.NewUniform(parseHexColor(el.Color, color.RGBA{0, 0, 0, 255}))

	lines := wrapText(face, text, fixed.I(ew))
	metrics := face.Metrics()
	lineHeight := metrics.Height
	blockHeight := lineHeight.Mul(fixed.I(len(lines)))
	top := (fixed.I(eh) - blockHeight) / 2
	if top < 0 {
		top = 0
	}

	d := font.Drawer{Dst: box, Src: col, Face: face}
	for i, line := range lines {
		width := d.MeasureString(line)
		x := (fixed.I(ew) - width) / 2
		if x < 0 {
			x = 0
		}
		d.Dot = fixed.Point26_6{
			X: x,
			Y: top + lineHeight.Mul(fixed.I(i)) + metrics.Ascent,
		}
		d.DrawString(line)
	}

	pos := image.Pt(int(el.X), int(el.Y))
	draw.Draw(dst, image.Rectangle{Min: pos, Max: pos.Add(image.Pt(ew, eh))}, box, image.Point{}, draw.Over)
	return nil
}

// wrapText splits text greedily into lines no wider than maxWidth. A single
// word wider than the box stays on its own line and gets clipped.
func wrapText(face font.Face, text string, maxWidth fixed.Int26_6) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	d := font.Drawer{Face: face}
	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if d.MeasureString(candidate) > maxWidth {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}
	return append(lines, current)
}

func parseHexColor(s string, fallback color.RGBA) color.RGBA {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return fallback
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return fallback
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
