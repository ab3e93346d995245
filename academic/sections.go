package academic

import (
	"math"
	"regexp"
	"strings"
)

// sectionPatterns map canonical section names to header patterns, in
// matching priority order. Headers are matched per line, case-insensitively.
var sectionPatterns = []struct {
	name     string
	patterns []*regexp.Regexp
}{
	{"abstract", compilePatterns(
		`^abstract\s*$`,
		`^\d+\.\s*abstract`,
	)},
	{"introduction", compilePatterns(
		`^introduction\s*$`,
		`^\d+\.\s*introduction`,
	)},
	{"methods", compilePatterns(
		`^methods?\s*$`,
		`^methodology\s*$`,
		`^\d+\.\s*methods?`,
		`^\d+\.\s*methodology`,
	)},
	{"results", compilePatterns(
		`^results?\s*$`,
		`^findings\s*$`,
		`^\d+\.\s*results?`,
		`^\d+\.\s*findings`,
	)},
	{"discussion", compilePatterns(
		`^discussion\s*$`,
		`^\d+\.\s*discussion`,
	)},
	{"conclusion", compilePatterns(
		`^conclusions?\s*$`,
		`^\d+\.\s*conclusions?`,
	)},
	{"references", compilePatterns(
		`^references\s*$`,
		`^bibliography\s*$`,
		`^\d+\.\s*references`,
	)},
}

func compilePatterns(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		out[i] = regexp.MustCompile(`(?i)` + expr)
	}
	return out
}

// Section is one detected paper section.
type Section struct {
	Content   string `json:"content"`
	LineStart int    `json:"line_start"`
	LineEnd   int    `json:"line_end"`
	WordCount int    `json:"word_count"`
}

// Sections is the result of header detection over a whole document.
type Sections struct {
	Sections map[string]Section `json:"sections"`
	Found    []string           `json:"sections_found"`
	Total    int                `json:"total_sections"`
}

// DetectSections scans the document text line by line for academic section
// headers and collects the content between them. A section detected twice
// keeps its last occurrence.
func DetectSections(text string) Sections {
	lines := strings.Split(text, "\n")

	sections := make(map[string]Section)
	var found []string
	current := ""
	var content []string

	save := func(endLine int) {
		if current == "" || len(content) == 0 {
			return
		}
		if _, seen := sections[current]; !seen {
			found = append(found, current)
		}
		joined := strings.Join(content, "\n")
		sections[current] = Section{
			Content:   strings.TrimSpace(joined),
			LineStart: endLine - len(content),
			LineEnd:   endLine - 1,
			WordCount: len(strings.Fields(joined)),
		}
	}

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if name := matchSectionHeader(line); name != "" {
			save(i)
			current = name
			content = content[:0]
			continue
		}
		if current != "" {
			content = append(content, line)
		}
	}
	save(len(lines))

	return Sections{
		Sections: sections,
		Found:    found,
		Total:    len(sections),
	}
}

func matchSectionHeader(line string) string {
	for _, sp := range sectionPatterns {
		for _, pat := range sp.patterns {
			if pat.MatchString(line) {
				return sp.name
			}
		}
	}
	return ""
}

// Abstract is the result of abstract extraction.
type Abstract struct {
	Abstract  string `json:"abstract"`
	WordCount int    `json:"word_count,omitempty"`
	Found     bool   `json:"found"`
	Method    string `json:"method,omitempty"`
}

// abstractKeywords gate the heuristic fallback: an early paragraph of
// abstract-like length must mention at least one of these.
var abstractKeywords = []string{"study", "research", "analysis", "investigation"}

// ExtractAbstract returns the abstract section when header detection found
// one. Otherwise it falls back to scanning the first five paragraphs for
// one of abstract-like length that mentions research vocabulary.
func ExtractAbstract(text string) Abstract {
	secs := DetectSections(text)
	if abs, ok := secs.Sections["abstract"]; ok {
		return Abstract{Abstract: abs.Content, WordCount: abs.WordCount, Found: true}
	}

	paragraphs := strings.Split(text, "\n\n")
	if len(paragraphs) > 5 {
		paragraphs = paragraphs[:5]
	}
	for _, para := range paragraphs {
		words := len(strings.Fields(para))
		if words <= 50 || words >= 300 {
			continue
		}
		lower := strings.ToLower(para)
		for _, kw := range abstractKeywords {
			if strings.Contains(lower, kw) {
				return Abstract{
					Abstract:  strings.TrimSpace(para),
					WordCount: words,
					Found:     true,
					Method:    "heuristic",
				}
			}
		}
	}
	return Abstract{Found: false}
}

// prioritySections are the sections most useful to a reader, in order.
var prioritySections = []string{"abstract", "introduction", "methods", "results", "conclusion"}

const keySectionWordLimit = 500

// KeySections returns the priority sections of a document, each truncated
// to keySectionWordLimit words.
func KeySections(secs Sections) map[string]string {
	key := make(map[string]string)
	for _, name := range prioritySections {
		sec, ok := secs.Sections[name]
		if !ok {
			continue
		}
		content := sec.Content
		if words := strings.Fields(content); len(words) > keySectionWordLimit {
			content = strings.Join(words[:keySectionWordLimit], " ") + "... [truncated]"
		}
		key[name] = content
	}
	return key
}

// SectionStat is the size of one section relative to the whole document.
type SectionStat struct {
	WordCount  int     `json:"word_count"`
	Percentage float64 `json:"percentage"`
}

// Summary describes the detected document structure.
type Summary struct {
	HasAbstract        bool                   `json:"has_abstract"`
	HasIntroduction    bool                   `json:"has_introduction"`
	HasMethods         bool                   `json:"has_methods"`
	HasResults         bool                   `json:"has_results"`
	HasDiscussion      bool                   `json:"has_discussion"`
	HasConclusion      bool                   `json:"has_conclusion"`
	HasReferences      bool                   `json:"has_references"`
	TotalSections      int                    `json:"total_sections"`
	EstimatedStructure string                 `json:"estimated_structure"`
	SectionStatistics  map[string]SectionStat `json:"section_statistics"`
}

// Summarize classifies the document from its detected sections. Four or
// more recognized sections counts as an academic paper.
func Summarize(secs Sections) Summary {
	has := func(name string) bool {
		_, ok := secs.Sections[name]
		return ok
	}

	structure := "other_document"
	if secs.Total >= 4 {
		structure = "academic_paper"
	}

	totalWords := 0
	for _, sec := range secs.Sections {
		totalWords += sec.WordCount
	}
	stats := make(map[string]SectionStat, len(secs.Sections))
	for name, sec := range secs.Sections {
		pct := 0.0
		if totalWords > 0 {
			pct = math.Round(float64(sec.WordCount)/float64(totalWords)*1000) / 10
		}
		stats[name] = SectionStat{WordCount: sec.WordCount, Percentage: pct}
	}

	return Summary{
		HasAbstract:        has("abstract"),
		HasIntroduction:    has("introduction"),
		HasMethods:         has("methods"),
		HasResults:         has("results"),
		HasDiscussion:      has("discussion"),
		HasConclusion:      has("conclusion"),
		HasReferences:      has("references"),
		TotalSections:      secs.Total,
		EstimatedStructure: structure,
		SectionStatistics:  stats,
	}
}
