package mcp

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/localrivet/gomcp/server"

	"github.com/inkwell-labs/pdfscholar/academic"
	"github.com/inkwell-labs/pdfscholar/pdfops"
)

// processedPages runs the academic reading-order pipeline over the given
// page, or over the whole document when page is 0.
func processedPages(path string, page int) ([]academic.PageResult, error) {
	if page != 0 {
		blocks, _, err := pdfops.PageBlocks(path, page)
		if err != nil {
			return nil, err
		}
		return []academic.PageResult{academic.ProcessBlocks(blocks, page)}, nil
	}

	total, err := pdfops.PageCount(path)
	if err != nil {
		return nil, err
	}
	pages := make([]academic.PageResult, 0, total)
	for p := 1; p <= total; p++ {
		blocks, _, err := pdfops.PageBlocks(path, p)
		if err != nil {
			return nil, err
		}
		pages = append(pages, academic.ProcessBlocks(blocks, p))
	}
	return pages, nil
}

// rawText extracts the plain text layer of the whole document.
func rawText(path string) (string, error) {
	pages, err := pdfops.ExtractText(path, 0)
	if err != nil {
		return "", err
	}
	parts := make([]string, len(pages))
	for i, pt := range pages {
		parts[i] = pt.Text
	}
	return strings.Join(parts, "\n"), nil
}

// registerAcademicTools registers the research-paper analysis tools.
func (s *Server) registerAcademicTools(srv server.Server) {
	srv.Tool("extract_academic_text", "Extract text with proper academic reading order and formatting", func(ctx *server.Context, args struct {
		FilePath string `json:"file_path" description:"Path or name of a loaded PDF"`
		Page     *int   `json:"page" description:"Page number to process, whole document when omitted"`
	}) (string, error) {
		doc, err := s.resolve(args.FilePath)
		if err != nil {
			return "", err
		}

		if args.Page != nil {
			pages, err := processedPages(doc.Path, *args.Page)
			if err != nil {
				return "", err
			}
			res := pages[0]
			out := fmt.Sprintf("Page %d processed text:\n%s", res.Page, res.ProcessedText)
			if len(res.MathFormulas) > 0 {
				out += fmt.Sprintf("\n\nMath formulas found: %d", len(res.MathFormulas))
				for i, formula := range res.MathFormulas {
					if i == 3 {
						break
					}
					out += fmt.Sprintf("\n  Formula %d: %s", i+1, formula)
				}
			}
			return out, nil
		}

		pages, err := processedPages(doc.Path, 0)
		if err != nil {
			return "", err
		}
		var sb strings.Builder
		for _, res := range pages {
			sb.WriteString(res.ProcessedText)
			sb.WriteString("\n\n")
		}
		full := preview(strings.TrimSpace(sb.String()), 2000)
		return fmt.Sprintf("Full document processed:\n\n%s", full), nil
	})

	srv.Tool("detect_sections", "Detect and extract academic paper sections", func(ctx *server.Context, args struct {
		FilePath string `json:"file_path" description:"Path or name of a loaded PDF"`
	}) (string, error) {
		doc, err := s.resolve(args.FilePath)
		if err != nil {
			return "", err
		}
		text, err := rawText(doc.Path)
		if err != nil {
			return "", err
		}
		secs := academic.DetectSections(text)
		if secs.Total == 0 {
			return "No academic sections detected in this PDF.", nil
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "Detected %d academic sections:\n\n", secs.Total)
		for _, name := range secs.Found {
			sec := secs.Sections[name]
			fmt.Fprintf(&sb, "**%s** (%d words)\n%s\n\n", strings.ToUpper(name), sec.WordCount, preview(sec.Content, 200))
		}
		return strings.TrimSpace(sb.String()), nil
	})

	srv.Tool("extract_abstract", "Extract the abstract from an academic paper", func(ctx *server.Context, args struct {
		FilePath string `json:"file_path" description:"Path or name of a loaded PDF"`
	}) (string, error) {
		doc, err := s.resolve(args.FilePath)
		if err != nil {
			return "", err
		}
		text, err := rawText(doc.Path)
		if err != nil {
			return "", err
		}
		abs := academic.ExtractAbstract(text)
		if !abs.Found {
			return "No abstract found in this PDF.", nil
		}
		out := fmt.Sprintf("Abstract (%d words):\n\n%s", abs.WordCount, abs.Abstract)
		if abs.Method != "" {
			out += fmt.Sprintf("\n\n[Extracted using %s method]", abs.Method)
		}
		return out, nil
	})

	srv.Tool("extract_key_sections", "Extract key academic sections optimized for agent understanding", func(ctx *server.Context, args struct {
		FilePath string `json:"file_path" description:"Path or name of a loaded PDF"`
	}) (string, error) {
		doc, err := s.resolve(args.FilePath)
		if err != nil {
			return "", err
		}
		text, err := rawText(doc.Path)
		if err != nil {
			return "", err
		}
		key := academic.KeySections(academic.DetectSections(text))
		if len(key) == 0 {
			return "No key academic sections found.", nil
		}
		return formatKeySections(key), nil
	})

	srv.Tool("extract_citations", "Extract citations and references from the academic paper", func(ctx *server.Context, args struct {
		FilePath string `json:"file_path" description:"Path or name of a loaded PDF"`
	}) (string, error) {
		doc, err := s.resolve(args.FilePath)
		if err != nil {
			return "", err
		}
		report, err := citationReport(doc.Path)
		if err != nil {
			return "", err
		}
		return formatCitationReport(report), nil
	})

	srv.Tool("chunk_content", "Break PDF content into agent-friendly chunks", func(ctx *server.Context, args struct {
		FilePath  string `json:"file_path" description:"Path or name of a loaded PDF"`
		ChunkSize *int   `json:"chunk_size" description:"Maximum characters per chunk, defaults to 1000"`
	}) (string, error) {
		doc, err := s.resolve(args.FilePath)
		if err != nil {
			return "", err
		}
		size := s.cfg.ChunkSize
		if args.ChunkSize != nil {
			size = *args.ChunkSize
		}
		pages, err := processedPages(doc.Path, 0)
		if err != nil {
			return "", err
		}
		return formatChunks(academic.ChunkPages(pages, size)), nil
	})

	srv.Tool("analyze_document_structure", "Analyze the overall structure and characteristics of the academic document", func(ctx *server.Context, args struct {
		FilePath string `json:"file_path" description:"Path or name of a loaded PDF"`
	}) (string, error) {
		doc, err := s.resolve(args.FilePath)
		if err != nil {
			return "", err
		}
		text, err := rawText(doc.Path)
		if err != nil {
			return "", err
		}
		secs := academic.DetectSections(text)
		report := academic.AnalyzeCitations(text, referencesContent(secs))
		return formatStructureAnalysis(
			academic.Summarize(secs),
			academic.SummarizeCitations(report),
			doc.Meta.PageCount,
		), nil
	})
}

// citationReport builds the full citation analysis of a document.
func citationReport(path string) (academic.CitationReport, error) {
	text, err := rawText(path)
	if err != nil {
		return academic.CitationReport{}, err
	}
	secs := academic.DetectSections(text)
	return academic.AnalyzeCitations(text, referencesContent(secs)), nil
}

func referencesContent(secs academic.Sections) string {
	if sec, ok := secs.Sections["references"]; ok {
		return sec.Content
	}
	return ""
}

// preview truncates s to at most n bytes, backing up to a rune boundary so
// the cut never yields invalid UTF-8.
func preview(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}

func formatKeySections(key map[string]string) string {
	var sb strings.Builder
	sb.WriteString("Key sections extracted for analysis:\n\n")
	for _, name := range []string{"abstract", "introduction", "methods", "results", "conclusion"} {
		content, ok := key[name]
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "**%s**\n%s\n\n---\n\n", strings.ToUpper(name), content)
	}
	return strings.TrimSpace(sb.String())
}

func formatCitationReport(report academic.CitationReport) string {
	var sb strings.Builder
	sb.WriteString("Citation Analysis:\n")
	fmt.Fprintf(&sb, "- In-text citations: %d\n", report.CitationCount)
	fmt.Fprintf(&sb, "- Reference list entries: %d\n", report.ReferenceCount)
	fmt.Fprintf(&sb, "- Citation style: %s\n\n", report.Style)

	if len(report.InText) > 0 {
		sb.WriteString("Sample in-text citations:\n")
		for i, c := range report.InText {
			if i == 5 {
				break
			}
			fmt.Fprintf(&sb, "  %s - %s\n", c.Citation, c.Type)
		}
	}
	if len(report.References) > 0 {
		sb.WriteString("\nFirst few references:\n")
		for i, ref := range report.References {
			if i == 3 {
				break
			}
			fmt.Fprintf(&sb, "  [%d] %s\n", ref.Number, preview(ref.RawText, 100))
		}
	}
	return strings.TrimSpace(sb.String())
}

func formatChunks(chunks []academic.Chunk) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Content chunked into %d segments:\n\n", len(chunks))
	for i, chunk := range chunks {
		if i == 5 {
			break
		}
		fmt.Fprintf(&sb, "**Chunk %d** (Pages %d-%d, %d words)\n", chunk.ID+1, chunk.PageStart, chunk.PageEnd, chunk.WordCount)
		fmt.Fprintf(&sb, "%s\n\n", preview(chunk.Text, 200))
	}
	if len(chunks) > 5 {
		fmt.Fprintf(&sb, "... and %d more chunks\n", len(chunks)-5)
	}
	return strings.TrimSpace(sb.String())
}

func formatStructureAnalysis(summary academic.Summary, cits academic.CitationSummary, pageCount int) string {
	var sb strings.Builder
	sb.WriteString("Document Structure Analysis:\n\n")
	fmt.Fprintf(&sb, "**Document Type**: %s\n", summary.EstimatedStructure)
	fmt.Fprintf(&sb, "**Total Pages**: %d\n", pageCount)
	fmt.Fprintf(&sb, "**Academic Sections Found**: %d\n\n", summary.TotalSections)

	sb.WriteString("**Section Coverage**:\n")
	coverage := []struct {
		name    string
		present bool
	}{
		{"Abstract", summary.HasAbstract},
		{"Introduction", summary.HasIntroduction},
		{"Methods", summary.HasMethods},
		{"Results", summary.HasResults},
		{"Discussion", summary.HasDiscussion},
		{"Conclusion", summary.HasConclusion},
		{"References", summary.HasReferences},
	}
	for _, c := range coverage {
		if c.present {
			fmt.Fprintf(&sb, "  + %s\n", c.name)
		}
	}

	sb.WriteString("\n**Citation Profile**:\n")
	fmt.Fprintf(&sb, "  - Total citations: %d\n", cits.TotalCitations)
	fmt.Fprintf(&sb, "  - Reference count: %d\n", cits.TotalReferences)
	fmt.Fprintf(&sb, "  - Citation style: %s\n", cits.Style)

	if cits.ReferenceYears.MinYear != nil {
		fmt.Fprintf(&sb, "  - Reference span: %d-%d\n", *cits.ReferenceYears.MinYear, *cits.ReferenceYears.MaxYear)
		fmt.Fprintf(&sb, "  - Recent refs (2015+): %d\n", cits.ReferenceYears.RecentReferences)
	}
	return strings.TrimSpace(sb.String())
}
