// Package academic post-processes extracted PDF content for research
// papers: column-aware reading order, math formula preservation, section
// and citation detection, and sentence-based chunking. All functions are
// pure; callers feed them output from the pdfops package.
package academic

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/inkwell-labs/pdfscholar/pdfops"
)

// mathPatterns match LaTeX fragments and loose math symbols that survive
// text extraction. Matched spans are lifted out before cleanup so the
// whitespace normalization cannot mangle them.
var mathPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$[^$]+\$`),
	regexp.MustCompile(`\$\$[^$]+\$\$`),
	regexp.MustCompile(`(?s)\\begin\{equation\}.*?\\end\{equation\}`),
	regexp.MustCompile(`(?s)\\begin\{align\}.*?\\end\{align\}`),
	regexp.MustCompile(`[∑∏∫∮∆∇α-ωΑ-Ω≤≥≠±∞]`),
}

var (
	reRunsOfSpace   = regexp.MustCompile(`\s+`)
	reMissingSpace  = regexp.MustCompile(`([a-z])([A-Z])`)
	reHyphenBreak   = regexp.MustCompile(`(\w)-\s+(\w)`)
	rePunctSpacing  = regexp.MustCompile(`\s+([.,;:])`)
	reDoubleNewline = regexp.MustCompile(`\n\s*\n`)
)

// PageResult is the processed text of one page.
type PageResult struct {
	ProcessedText string   `json:"processed_text"`
	MathFormulas  []string `json:"math_formulas"`
	Page          int      `json:"page"`
	BlockCount    int      `json:"block_count"`
}

// ProcessBlocks arranges a page's text blocks into reading order, lifts
// math formulas out, and cleans up the text.
func ProcessBlocks(blocks []pdfops.TextBlock, page int) PageResult {
	sorted := SortReadingOrder(blocks)

	var sb strings.Builder
	var formulas []string
	for _, block := range sorted {
		text, f := ExtractFormulas(block.Text, formulas)
		formulas = f
		sb.WriteString(CleanText(text))
		sb.WriteString("\n\n")
	}

	return PageResult{
		ProcessedText: strings.TrimSpace(sb.String()),
		MathFormulas:  formulas,
		Page:          page,
		BlockCount:    len(blocks),
	}
}

// SortReadingOrder orders blocks the way a reader scans an academic page.
// When blocks start in both the left and right thirds of the page the
// layout is treated as two columns and the columns are merged by vertical
// position; otherwise blocks are simply sorted top to bottom.
func SortReadingOrder(blocks []pdfops.TextBlock) []pdfops.TextBlock {
	if len(blocks) == 0 {
		return blocks
	}

	pageWidth := 0.0
	for _, b := range blocks {
		if b.X1 > pageWidth {
			pageWidth = b.X1
		}
	}
	leftThird := pageWidth / 3
	rightThird := 2 * pageWidth / 3

	var left, right []pdfops.TextBlock
	for _, b := range blocks {
		switch {
		case b.X0 < leftThird:
			left = append(left, b)
		case b.X0 > rightThird:
			right = append(right, b)
		}
	}

	if len(left) == 0 || len(right) == 0 {
		out := append([]pdfops.TextBlock(nil), blocks...)
		sort.SliceStable(out, func(i, j int) bool { return out[i].Y0 < out[j].Y0 })
		return out
	}

	sort.SliceStable(left, func(i, j int) bool { return left[i].Y0 < left[j].Y0 })
	sort.SliceStable(right, func(i, j int) bool { return right[i].Y0 < right[j].Y0 })

	out := make([]pdfops.TextBlock, 0, len(left)+len(right))
	li, ri := 0, 0
	for li < len(left) && ri < len(right) {
		if left[li].Y0 < right[ri].Y0 {
			out = append(out, left[li])
			li++
		} else {
			out = append(out, right[ri])
			ri++
		}
	}
	out = append(out, left[li:]...)
	out = append(out, right[ri:]...)
	return out
}

// ExtractFormulas replaces math spans in text with numbered placeholders
// and appends the spans to formulas. Placeholder numbering continues from
// the formulas already collected for the page.
func ExtractFormulas(text string, formulas []string) (string, []string) {
	processed := text
	for _, pat := range mathPatterns {
		for _, match := range pat.FindAllString(text, -1) {
			formulas = append(formulas, match)
			placeholder := fmt.Sprintf("[MATH_FORMULA_%d]", len(formulas))
			processed = strings.ReplaceAll(processed, match, placeholder)
		}
	}
	return processed, formulas
}

// CleanText normalizes text extracted from a PDF: collapses whitespace,
// restores spaces lost at case boundaries, rejoins hyphenated line breaks,
// and tightens punctuation spacing.
func CleanText(text string) string {
	text = reRunsOfSpace.ReplaceAllString(text, " ")
	text = reMissingSpace.ReplaceAllString(text, "$1 $2")
	text = reHyphenBreak.ReplaceAllString(text, "${1}${2}")
	text = rePunctSpacing.ReplaceAllString(text, "$1")
	text = reDoubleNewline.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
