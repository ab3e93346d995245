package mcp

import (
	"io"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-labs/pdfscholar/academic"
	"github.com/inkwell-labs/pdfscholar/config"
	"github.com/inkwell-labs/pdfscholar/document"
	"github.com/inkwell-labs/pdfscholar/pdfops"
)

func testServer() *Server {
	log := logrus.New()
	log.SetOutput(io.Discard)
	store := document.NewStoreWithReader(func(path string) (pdfops.Metadata, error) {
		return pdfops.Metadata{PageCount: 1}, nil
	})
	cfg := &config.Config{
		Transport:    config.TransportStdio,
		DefaultDPI:   150,
		ChunkSize:    1000,
		PreviewBytes: 200,
	}
	return New(cfg, store, log)
}

func TestTemplateRenderDefaultsOptionalArgs(t *testing.T) {
	got, err := summarizePrompt.Render(map[string]string{"file_path": "paper.pdf"})
	require.NoError(t, err)
	assert.Contains(t, got, "paper.pdf")
	assert.Contains(t, got, "focusing on general")
}

func TestTemplateRenderMissingRequiredArg(t *testing.T) {
	_, err := summarizePrompt.Render(map[string]string{"focus": "results"})
	assert.ErrorIs(t, err, ErrMissingArgument)
	assert.Contains(t, err.Error(), "file_path")

	_, err = methodologyPrompt.Render(nil)
	assert.ErrorIs(t, err, ErrMissingArgument)
}

func TestTemplateRenderExplicitArgs(t *testing.T) {
	got, err := summarizePrompt.Render(map[string]string{
		"file_path": "thesis.pdf",
		"focus":     "methodology",
	})
	require.NoError(t, err)
	assert.Contains(t, got, "thesis.pdf")
	assert.Contains(t, got, "focusing on methodology")
	assert.NotContains(t, got, "{{")
}

func TestFocusInstructionFallsBackToGeneral(t *testing.T) {
	assert.Equal(t, focusInstructions["general"], focusInstruction("unheard-of"))
	assert.Equal(t, focusInstructions["results"], focusInstruction("results"))
}

func TestBuildSummarizeContent(t *testing.T) {
	meta := pdfops.Metadata{Title: "On Things", Author: "A. Writer", PageCount: 12}
	key := map[string]string{
		"abstract": "We study things.",
		"results":  "Things hold.",
	}
	cits := academic.CitationSummary{TotalCitations: 7, TotalReferences: 3}

	got := buildSummarizeContent(meta, key, cits, "results")
	assert.Contains(t, got, "focusing on results")
	assert.Contains(t, got, focusInstructions["results"])
	assert.Contains(t, got, "- Title: On Things")
	assert.Contains(t, got, "- Citations: 7 in-text, 3 references")
	assert.Contains(t, got, "**ABSTRACT:**\nWe study things.")
	assert.Contains(t, got, "**RESULTS:**\nThings hold.")
	assert.NotContains(t, got, "**METHODS:**")
}

func TestBuildSummarizeContentMissingMetadata(t *testing.T) {
	got := buildSummarizeContent(pdfops.Metadata{}, nil, academic.CitationSummary{}, "general")
	assert.Contains(t, got, "- Title: N/A")
	assert.Contains(t, got, "- Author: N/A")
}

func TestBuildMethodologyContent(t *testing.T) {
	got := buildMethodologyContent("We ran a survey of 200 participants.")
	assert.Contains(t, got, "We ran a survey of 200 participants.")
	assert.Contains(t, got, "1. Research design and approach")

	fallback := buildMethodologyContent("")
	assert.Contains(t, fallback, "Methods section not clearly identified")
}

func TestRenderPromptUnknownName(t *testing.T) {
	s := testServer()
	_, err := s.RenderPrompt("no_such_prompt", map[string]string{"file_path": "x.pdf"})
	assert.Error(t, err)
}

func TestRenderPromptValidatesBeforeResolving(t *testing.T) {
	s := testServer()
	_, err := s.RenderPrompt("summarize_academic_paper", nil)
	assert.ErrorIs(t, err, ErrMissingArgument)
}

func TestRenderPromptDocumentNotFound(t *testing.T) {
	s := testServer()
	_, err := s.RenderPrompt("summarize_academic_paper", map[string]string{"file_path": "never-loaded"})
	assert.ErrorIs(t, err, document.ErrNotFound)
}

func TestRenderSummaryPromptDefaultsFocus(t *testing.T) {
	s := testServer()
	// Validation and focus defaulting run before document resolution, so an
	// omitted focus must fall through to the not-found condition, not to a
	// missing-argument error.
	_, err := s.renderSummaryPrompt("never-loaded", nil)
	assert.ErrorIs(t, err, document.ErrNotFound)
	assert.NotErrorIs(t, err, ErrMissingArgument)
}

func TestRenderSummaryPromptMissingFilePath(t *testing.T) {
	s := testServer()
	focus := "results"
	_, err := s.renderSummaryPrompt("", &focus)
	assert.ErrorIs(t, err, ErrMissingArgument)
}

func TestRenderMethodologyPromptDocumentNotFound(t *testing.T) {
	s := testServer()
	_, err := s.renderMethodologyPrompt("never-loaded")
	assert.ErrorIs(t, err, document.ErrNotFound)
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", preview("short", 10))
	assert.Equal(t, "0123456789...", preview("0123456789abcdef", 10))
}

func TestPreviewKeepsRuneBoundary(t *testing.T) {
	// "日" is three bytes; a cut at 4 lands mid-rune and must back up.
	got := preview("日本語テキスト", 4)
	assert.Equal(t, "日...", got)
	assert.True(t, utf8.ValidString(got))
}

func TestFormatChunks(t *testing.T) {
	chunks := make([]academic.Chunk, 7)
	for i := range chunks {
		chunks[i] = academic.Chunk{ID: i, Text: "some text", PageStart: 1, PageEnd: 1, WordCount: 2}
	}
	got := formatChunks(chunks)
	assert.Contains(t, got, "Content chunked into 7 segments")
	assert.Contains(t, got, "**Chunk 5**")
	assert.NotContains(t, got, "**Chunk 6**")
	assert.Contains(t, got, "... and 2 more chunks")
}

func TestFormatCitationReport(t *testing.T) {
	report := academic.CitationReport{
		InText: []academic.Citation{
			{Citation: "(Smith, 2020)", Type: "author_year"},
		},
		References: []academic.Reference{
			{Number: 1, RawText: "Smith, J. (2020). A long and winding paper title."},
		},
		CitationCount:  1,
		ReferenceCount: 1,
		Style:          "apa_harvard",
	}
	got := formatCitationReport(report)
	assert.Contains(t, got, "- In-text citations: 1")
	assert.Contains(t, got, "- Citation style: apa_harvard")
	assert.Contains(t, got, "(Smith, 2020) - author_year")
	assert.Contains(t, got, "[1] Smith, J. (2020).")
}

func TestFormatStructureAnalysis(t *testing.T) {
	min, max := 2016, 2022
	got := formatStructureAnalysis(
		academic.Summary{
			HasAbstract:        true,
			HasMethods:         true,
			TotalSections:      4,
			EstimatedStructure: "academic_paper",
		},
		academic.CitationSummary{
			TotalCitations:  10,
			TotalReferences: 5,
			Style:           "numbered",
			ReferenceYears: academic.YearStats{
				MinYear: &min, MaxYear: &max, YearRange: 6, RecentReferences: 5,
			},
		},
		9,
	)
	assert.Contains(t, got, "**Document Type**: academic_paper")
	assert.Contains(t, got, "**Total Pages**: 9")
	assert.Contains(t, got, "+ Abstract")
	assert.Contains(t, got, "+ Methods")
	assert.NotContains(t, got, "+ Results")
	assert.Contains(t, got, "- Reference span: 2016-2022")
}

func TestFormatKeySectionsOrder(t *testing.T) {
	key := map[string]string{
		"results":  "things hold",
		"abstract": "we study",
	}
	got := formatKeySections(key)
	iAbstract := strings.Index(got, "**ABSTRACT**")
	iResults := strings.Index(got, "**RESULTS**")
	require.GreaterOrEqual(t, iAbstract, 0)
	require.GreaterOrEqual(t, iResults, 0)
	assert.Less(t, iAbstract, iResults)
}
