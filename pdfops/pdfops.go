// Package pdfops implements the PDF extraction operations exposed by the
// pdfscholar MCP server. Every operation is a thin delegation to an
// underlying PDF library: the text layer and document objects come from
// github.com/ledongthuc/pdf, image extraction from github.com/pdfcpu/pdfcpu,
// and page rasterization from github.com/gen2brain/go-fitz (MuPDF).
//
// Page numbers are 1-based at this package's surface. A page value of 0
// means "the whole document" for operations that accept it.
package pdfops

import (
	"errors"
	"fmt"
	"time"

	"github.com/ledongthuc/pdf"
)

// Sentinel errors for extraction failure conditions.
var (
	ErrPageOutOfRange = errors.New("pdfops: page out of range")
	ErrNotPDF         = errors.New("pdfops: not a PDF file")
)

// Metadata holds the document information dictionary plus derived fields.
// Date fields keep the raw PDF date string (e.g. "D:20240131120000Z") so
// callers see exactly what the document carries; the Time fields hold the
// parsed equivalents, zero when the raw string is absent or malformed.
type Metadata struct {
	Title            string    `json:"title"`
	Author           string    `json:"author"`
	Subject          string    `json:"subject"`
	Keywords         string    `json:"keywords"`
	Creator          string    `json:"creator"`
	Producer         string    `json:"producer"`
	CreationDate     string    `json:"creation_date"`
	ModificationDate string    `json:"modification_date"`
	CreationTime     time.Time `json:"creation_time,omitzero"`
	ModificationTime time.Time `json:"modification_time,omitzero"`
	PageCount        int       `json:"page_count"`
	Encrypted        bool      `json:"encrypted"`
	FileSize         int64     `json:"file_size"`
}

// PageText is the extracted text layer of a single page.
type PageText struct {
	Page int    `json:"page"`
	Text string `json:"text"`
}

// Word is a positioned text run in top-down page coordinates
// (origin at the top-left corner, Y grows downward).
type Word struct {
	S        string  `json:"s"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	W        float64 `json:"w"`
	FontSize float64 `json:"font_size"`
}

// TextBlock is a group of adjacent text lines with its bounding box in
// top-down page coordinates.
type TextBlock struct {
	Text string  `json:"text"`
	X0   float64 `json:"x0"`
	Y0   float64 `json:"y0"`
	X1   float64 `json:"x1"`
	Y1   float64 `json:"y1"`
}

// Image describes one embedded image extracted from the document.
// Data holds the image bytes encoded as base64.
type Image struct {
	Page   int    `json:"page"`
	Index  int    `json:"index"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
	Data   string `json:"data"`
}

// Annotation is a single page annotation (comment, highlight, link, ...).
type Annotation struct {
	Page     int        `json:"page"`
	Type     string     `json:"type"`
	Content  string     `json:"content"`
	Author   string     `json:"author"`
	Rect     [4]float64 `json:"rect"`
	Created  string     `json:"created"`
	Modified string     `json:"modified"`
}

// Table is a table-like structure detected on a page.
type Table struct {
	Page int        `json:"page"`
	Rows [][]string `json:"rows"`
	X0   float64    `json:"x0"`
	Y0   float64    `json:"y0"`
	X1   float64    `json:"x1"`
	Y1   float64    `json:"y1"`
}

// Rendered is a rasterized page encoded as a base64 PNG.
type Rendered struct {
	Page   int    `json:"page"`
	DPI    int    `json:"dpi"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
	Data   string `json:"data"`
}

// openReader opens the PDF at path with the text-layer reader.
// The returned close function must be called when done.
func openReader(path string) (*pdf.Reader, func() error, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("pdfops: opening %s: %w", path, err)
	}
	return r, f.Close, nil
}

// PageCount returns the number of pages of the PDF at path.
func PageCount(path string) (int, error) {
	r, closeFn, err := openReader(path)
	if err != nil {
		return 0, err
	}
	total := r.NumPage()
	if err := closeFn(); err != nil {
		return 0, err
	}
	return total, nil
}

// checkPage validates a 1-based page number against the page count.
func checkPage(page, total int) error {
	if page < 1 || page > total {
		return fmt.Errorf("%w: page %d of %d", ErrPageOutOfRange, page, total)
	}
	return nil
}

// pageRange resolves the optional page argument: 0 means all pages.
func pageRange(page, total int) ([]int, error) {
	if page == 0 {
		all := make([]int, total)
		for i := range all {
			all[i] = i + 1
		}
		return all, nil
	}
	if err := checkPage(page, total); err != nil {
		return nil, err
	}
	return []int{page}, nil
}
