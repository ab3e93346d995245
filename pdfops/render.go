package pdfops

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"

	"github.com/gen2brain/go-fitz"
)

// DefaultDPI is the rendering resolution used when the caller does not
// specify one.
const DefaultDPI = 150

// RenderPage rasterizes a single 1-based page to a PNG at the given DPI
// and returns it base64-encoded. Rasterization is delegated to MuPDF via
// go-fitz. dpi <= 0 selects DefaultDPI.
func RenderPage(path string, page, dpi int) (Rendered, error) {
	if dpi <= 0 {
		dpi = DefaultDPI
	}

	doc, err := fitz.New(path)
	if err != nil {
		return Rendered{}, fmt.Errorf("pdfops: opening %s for rendering: %w", path, err)
	}
	defer doc.Close()

	if err := checkPage(page, doc.NumPage()); err != nil {
		return Rendered{}, err
	}

	img, err := doc.ImageDPI(page-1, float64(dpi))
	if err != nil {
		return Rendered{}, fmt.Errorf("pdfops: rendering page %d: %w", page, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Rendered{}, fmt.Errorf("pdfops: encoding page %d: %w", page, err)
	}

	bounds := img.Bounds()
	return Rendered{
		Page:   page,
		DPI:    dpi,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Format: "png",
		Data:   base64.StdEncoding.EncodeToString(buf.Bytes()),
	}, nil
}
