package academic

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// inTextPatterns match citations inside running text: author-year forms
// first, then numbered brackets and bracket lists.
var inTextPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\(([A-Z][a-z]+ et al\.?, \d{4}[a-z]?)\)`),
	regexp.MustCompile(`\(([A-Z][a-z]+ & [A-Z][a-z]+, \d{4}[a-z]?)\)`),
	regexp.MustCompile(`\(([A-Z][a-z]+, \d{4}[a-z]?)\)`),
	regexp.MustCompile(`\[(\d+)\]`),
	regexp.MustCompile(`\[(\d+)-(\d+)\]`),
	regexp.MustCompile(`\[(\d+,\s*\d+(?:,\s*\d+)*)\]`),
}

var (
	reNumberedCite  = regexp.MustCompile(`^\[\d+\]`)
	reAuthorCite    = regexp.MustCompile(`^\([A-Z]`)
	reRefNumbered   = regexp.MustCompile(`^\[\d+\]`)
	reRefDotted     = regexp.MustCompile(`^\d+\.`)
	reRefAuthor     = regexp.MustCompile(`^[A-Z][a-z]+,`)
	reRefYear       = regexp.MustCompile(`\((\d{4}[a-z]?)\)`)
	reRefDOI        = regexp.MustCompile(`(?i)doi[:\s]*(10\.\d+/[^\s]+)`)
	reRefURL        = regexp.MustCompile(`https?://[^\s]+`)
	reLeadingRefNum = regexp.MustCompile(`^\[\d+\]\s*`)
	reLeadingDotted = regexp.MustCompile(`^\d+\.\s*`)
)

const citationContextRadius = 50

// Citation is one in-text citation with its surrounding context.
type Citation struct {
	Citation string `json:"citation"`
	Position int    `json:"position"`
	Context  string `json:"context"`
	Type     string `json:"type"`
}

// Reference is one parsed entry of the reference list.
type Reference struct {
	Number     int    `json:"reference_number"`
	RawText    string `json:"raw_text"`
	Year       string `json:"year"`
	DOI        string `json:"doi,omitempty"`
	URL        string `json:"url,omitempty"`
	AuthorsRaw string `json:"authors_raw,omitempty"`
}

// CitationReport combines in-text citations with the parsed reference list.
type CitationReport struct {
	InText         []Citation  `json:"in_text_citations"`
	References     []Reference `json:"references"`
	CitationCount  int         `json:"citation_count"`
	ReferenceCount int         `json:"reference_count"`
	Style          string      `json:"citation_style"`
}

// AnalyzeCitations finds in-text citations in text and parses the
// reference list out of the references section content, which may be
// empty when no such section was detected.
func AnalyzeCitations(text, referencesContent string) CitationReport {
	inText := FindCitations(text)
	refs := ParseReferences(referencesContent)
	return CitationReport{
		InText:         inText,
		References:     refs,
		CitationCount:  len(inText),
		ReferenceCount: len(refs),
		Style:          DetectStyle(inText),
	}
}

// FindCitations locates in-text citations, deduplicated by citation text
// and ordered by position.
func FindCitations(text string) []Citation {
	var all []Citation
	for _, pat := range inTextPatterns {
		for _, loc := range pat.FindAllStringIndex(text, -1) {
			cite := text[loc[0]:loc[1]]
			all = append(all, Citation{
				Citation: cite,
				Position: loc[0],
				Context:  contextAround(text, loc[0], loc[1]),
				Type:     classifyCitation(cite),
			})
		}
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].Position < all[j].Position })

	seen := make(map[string]bool)
	unique := all[:0]
	for _, c := range all {
		if seen[c.Citation] {
			continue
		}
		seen[c.Citation] = true
		unique = append(unique, c)
	}
	return unique
}

// contextAround slices the text around a match, nudging the cut points
// back to rune boundaries.
func contextAround(text string, start, end int) string {
	lo := start - citationContextRadius
	if lo < 0 {
		lo = 0
	}
	hi := end + citationContextRadius
	if hi > len(text) {
		hi = len(text)
	}
	for lo > 0 && !utf8.RuneStart(text[lo]) {
		lo--
	}
	for hi < len(text) && !utf8.RuneStart(text[hi]) {
		hi++
	}
	return text[lo:hi]
}

func classifyCitation(citation string) string {
	switch {
	case reNumberedCite.MatchString(citation):
		return "numbered"
	case reAuthorCite.MatchString(citation):
		return "author_year"
	default:
		return "other"
	}
}

// DetectStyle reports the predominant citation style of a paper.
func DetectStyle(citations []Citation) string {
	if len(citations) == 0 {
		return "unknown"
	}
	numbered, authorYear := 0, 0
	for _, c := range citations {
		switch c.Type {
		case "numbered":
			numbered++
		case "author_year":
			authorYear++
		}
	}
	switch {
	case numbered > authorYear:
		return "numbered"
	case authorYear > numbered:
		return "apa_harvard"
	default:
		return "mixed"
	}
}

// ParseReferences splits the content of a references section into entries
// and parses year, DOI, URL, and the raw author run out of each. Lines
// that do not open a new entry continue the previous one.
func ParseReferences(content string) []Reference {
	var refs []Reference
	current := ""
	number := 0

	flush := func() {
		if ref, ok := parseReference(current, number); ok {
			refs = append(refs, ref)
		}
	}

	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if reRefNumbered.MatchString(line) || reRefDotted.MatchString(line) || reRefAuthor.MatchString(line) {
			flush()
			current = line
			number++
		} else if current != "" {
			current += " " + line
		}
	}
	flush()

	return refs
}

// parseReference extracts the components of a single reference entry.
// Entries shorter than 20 characters are noise and rejected.
func parseReference(text string, number int) (Reference, bool) {
	text = strings.TrimSpace(text)
	if len(text) < 20 {
		return Reference{}, false
	}

	ref := Reference{Number: number, RawText: text}

	if m := reRefYear.FindStringSubmatchIndex(text); m != nil {
		ref.Year = text[m[2]:m[3]]
		authors := strings.TrimSpace(text[:m[0]])
		authors = reLeadingRefNum.ReplaceAllString(authors, "")
		authors = reLeadingDotted.ReplaceAllString(authors, "")
		ref.AuthorsRaw = authors
	}
	if m := reRefDOI.FindStringSubmatch(text); m != nil {
		ref.DOI = m[1]
	}
	if m := reRefURL.FindString(text); m != "" {
		ref.URL = m
	}

	return ref, true
}

// YearStats summarizes the publication years of a reference list.
type YearStats struct {
	MinYear          *int `json:"min_year"`
	MaxYear          *int `json:"max_year"`
	YearRange        int  `json:"year_range"`
	RecentReferences int  `json:"recent_references"`
}

const recentYearCutoff = 2015

// ReferenceYears extracts the year spread of a reference list. Year
// suffixes like 2020a are counted under their base year.
func ReferenceYears(refs []Reference) YearStats {
	var years []int
	for _, ref := range refs {
		if len(ref.Year) < 4 {
			continue
		}
		if y, err := strconv.Atoi(ref.Year[:4]); err == nil {
			years = append(years, y)
		}
	}
	if len(years) == 0 {
		return YearStats{}
	}

	minYear, maxYear, recent := years[0], years[0], 0
	for _, y := range years {
		if y < minYear {
			minYear = y
		}
		if y > maxYear {
			maxYear = y
		}
		if y >= recentYearCutoff {
			recent++
		}
	}
	return YearStats{
		MinYear:          &minYear,
		MaxYear:          &maxYear,
		YearRange:        maxYear - minYear,
		RecentReferences: recent,
	}
}

// CitationSummary condenses a citation report for quick inspection.
type CitationSummary struct {
	TotalCitations  int       `json:"total_citations"`
	TotalReferences int       `json:"total_references"`
	Style           string    `json:"citation_style"`
	HasBibliography bool      `json:"has_bibliography"`
	HeavilyCited    bool      `json:"heavily_cited"`
	ReferenceYears  YearStats `json:"reference_years"`
}

// SummarizeCitations builds the condensed view of a citation report. More
// than 20 in-text citations marks a paper as heavily cited.
func SummarizeCitations(report CitationReport) CitationSummary {
	return CitationSummary{
		TotalCitations:  report.CitationCount,
		TotalReferences: report.ReferenceCount,
		Style:           report.Style,
		HasBibliography: report.ReferenceCount > 0,
		HeavilyCited:    report.CitationCount > 20,
		ReferenceYears:  ReferenceYears(report.References),
	}
}
