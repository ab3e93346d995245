package pdfops

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractText extracts the embedded text layer. page selects a single
// 1-based page; 0 extracts every page. Only the text layer is read;
// scanned (image-only) documents yield empty pages.
func ExtractText(path string, page int) ([]PageText, error) {
	r, closeFn, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	pages, err := pageRange(page, r.NumPage())
	if err != nil {
		return nil, err
	}

	// Font objects are shared across pages; resolving each once avoids
	// re-parsing encodings on every page.
	fonts := make(map[string]*pdf.Font)

	out := make([]PageText, 0, len(pages))
	for _, n := range pages {
		p := r.Page(n)
		if p.V.IsNull() {
			out = append(out, PageText{Page: n})
			continue
		}
		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				f := p.Font(name)
				fonts[name] = &f
			}
		}
		text, err := p.GetPlainText(fonts)
		if err != nil {
			return nil, fmt.Errorf("pdfops: extracting text from page %d: %w", n, err)
		}
		out = append(out, PageText{Page: n, Text: strings.TrimSpace(text)})
	}
	return out, nil
}

// PageWords returns the positioned text runs of a single 1-based page in
// top-down coordinates, along with the page width and height.
func PageWords(path string, page int) ([]Word, float64, float64, error) {
	r, closeFn, err := openReader(path)
	if err != nil {
		return nil, 0, 0, err
	}
	defer closeFn()

	if err := checkPage(page, r.NumPage()); err != nil {
		return nil, 0, 0, err
	}

	p := r.Page(page)
	if p.V.IsNull() {
		return nil, 0, 0, nil
	}

	width, height := pageSize(p)

	content := p.Content()
	words := make([]Word, 0, len(content.Text))
	for _, t := range content.Text {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		words = append(words, Word{
			S:        t.S,
			X:        t.X,
			Y:        height - t.Y, // flip to top-down
			W:        t.W,
			FontSize: t.FontSize,
		})
	}
	return words, width, height, nil
}

// PageBlocks groups the positioned text of a single page into lines and
// blocks with bounding boxes, the unit the academic reading-order pass
// works on.
func PageBlocks(path string, page int) ([]TextBlock, float64, error) {
	words, width, _, err := PageWords(path, page)
	if err != nil {
		return nil, 0, err
	}
	return GroupBlocks(words), width, nil
}

// pageSize returns the media box dimensions of a page, following the
// Parent chain when the box is inherited.
func pageSize(p pdf.Page) (width, height float64) {
	node := p.V
	for !node.IsNull() {
		box := node.Key("MediaBox")
		if !box.IsNull() && box.Len() == 4 {
			width = box.Index(2).Float64() - box.Index(0).Float64()
			height = box.Index(3).Float64() - box.Index(1).Float64()
			return width, height
		}
		node = node.Key("Parent")
	}
	// US Letter in points, the common fallback.
	return 612, 792
}

// line is an intermediate grouping of words sharing a baseline.
type line struct {
	words    []Word
	y        float64
	fontSize float64
}

// GroupBlocks turns positioned words into text blocks. Words whose
// baselines sit within half a font size of each other form a line;
// consecutive lines closer than 1.8x the font size form a block.
// Exported so the grouping can be tested on synthetic input.
func GroupBlocks(words []Word) []TextBlock {
	if len(words) == 0 {
		return nil
	}

	sorted := make([]Word, len(words))
	copy(sorted, words)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y < sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var lines []line
	for _, w := range sorted {
		size := w.FontSize
		if size <= 0 {
			size = 10
		}
		if n := len(lines); n > 0 && abs(w.Y-lines[n-1].y) <= size/2 {
			lines[n-1].words = append(lines[n-1].words, w)
			continue
		}
		lines = append(lines, line{words: []Word{w}, y: w.Y, fontSize: size})
	}

	var blocks []TextBlock
	var current []line
	flush := func() {
		if len(current) == 0 {
			return
		}
		blocks = append(blocks, linesToBlock(current))
		current = nil
	}

	for i, ln := range lines {
		if i > 0 {
			prev := lines[i-1]
			if ln.y-prev.y > 1.8*maxFloat(prev.fontSize, ln.fontSize) {
				flush()
			}
		}
		current = append(current, ln)
	}
	flush()

	return blocks
}

func linesToBlock(lines []line) TextBlock {
	var b strings.Builder
	block := TextBlock{
		X0: lines[0].words[0].X,
		Y0: lines[0].y - lines[0].fontSize,
		Y1: lines[0].y,
	}

	for i, ln := range lines {
		sort.Slice(ln.words, func(a, b int) bool { return ln.words[a].X < ln.words[b].X })
		for j, w := range ln.words {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(w.S)
			if w.X < block.X0 {
				block.X0 = w.X
			}
			if w.X+w.W > block.X1 {
				block.X1 = w.X + w.W
			}
		}
		if i < len(lines)-1 {
			b.WriteByte('\n')
		}
		if top := ln.y - ln.fontSize; top < block.Y0 {
			block.Y0 = top
		}
		if ln.y > block.Y1 {
			block.Y1 = ln.y
		}
	}

	block.Text = strings.TrimSpace(b.String())
	return block
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
