// Package export encodes a rasterized certificate as a downloadable PNG,
// JPEG or PDF byte stream.
package export

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/jung-kurt/gofpdf"
)

// Formats supported by Encode.
const (
	FormatPDF = "pdf"
	FormatPNG = "png"
	FormatJPG = "jpg"
)

const jpegQuality = 90

// ExportError indicates encoding the certificate bitmap failed.
type ExportError struct {
	Format string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("exporting certificate as %s: %v", e.Format, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// Filename returns the download name for a format, e.g. "certificate.pdf".
func Filename(format string) string {
	return "certificate." + format
}

// ContentType returns the MIME type for a format.
func ContentType(format string) string {
	switch format {
	case FormatPDF:
		return "application/pdf"
	case FormatJPG:
		return "image/jpeg"
	default:
		return "image/png"
	}
}

// Encode serializes the bitmap in the requested format. PDF pages are sized
// exactly to the bitmap with zero margins; orientation is landscape when the
// bitmap is wider than tall.
func Encode(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, &ExportError{Format: format, Err: err}
		}
	case FormatJPG:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, &ExportError{Format: format, Err: err}
		}
	case FormatPDF:
		if err := encodePDF(&buf, img); err != nil {
			return nil, &ExportError{Format: format, Err: err}
		}
	default:
		return nil, &ExportError{Format: format, Err: fmt.Errorf("unsupported format")}
	}
	return buf.Bytes(), nil
}

// pageLayout picks the PDF orientation and portrait-form page size for a
// bitmap. gofpdf takes the size in portrait form and swaps it for landscape,
// so the resulting page always matches the bitmap exactly.
func pageLayout(w, h int) (orientation string, size gofpdf.SizeType) {
	orientation = "P"
	if w > h {
		orientation = "L"
		w, h = h, w
	}
	return orientation, gofpdf.SizeType{Wd: float64(w), Ht: float64(h)}
}

func encodePDF(buf *bytes.Buffer, img image.Image) error {
	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		return err
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	orientation, size := pageLayout(w, h)

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "pt",
		Size:           size,
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("certificate", opts, &pngBuf)
	pdf.ImageOptions("certificate", 0, 0, float64(w), float64(h), false, opts, 0, "")
	return pdf.Output(buf)
}
