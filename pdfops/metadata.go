package pdfops

import (
	"os"
	"strings"
	"time"
)

// ReadMetadata extracts the document information dictionary along with the
// page count, encryption flag, and file size. Missing Info entries come back
// as empty strings, matching what the document itself carries.
func ReadMetadata(path string) (Metadata, error) {
	var meta Metadata

	fi, err := os.Stat(path)
	if err != nil {
		return meta, err
	}

	r, closeFn, err := openReader(path)
	if err != nil {
		return meta, err
	}
	defer closeFn()

	trailer := r.Trailer()
	info := trailer.Key("Info")

	meta.Title = info.Key("Title").Text()
	meta.Author = info.Key("Author").Text()
	meta.Subject = info.Key("Subject").Text()
	meta.Keywords = info.Key("Keywords").Text()
	meta.Creator = info.Key("Creator").Text()
	meta.Producer = info.Key("Producer").Text()
	meta.CreationDate = info.Key("CreationDate").Text()
	meta.ModificationDate = info.Key("ModDate").Text()
	meta.parseDates()
	meta.PageCount = r.NumPage()
	meta.Encrypted = !trailer.Key("Encrypt").IsNull()
	meta.FileSize = fi.Size()

	return meta, nil
}

// parseDates fills the parsed time fields from the raw PDF date strings.
func (m *Metadata) parseDates() {
	m.CreationTime = parsePDFDate(m.CreationDate)
	m.ModificationTime = parsePDFDate(m.ModificationDate)
}

// parsePDFDate parses a PDF date string such as "D:20240131120000+02'00'"
// into a time.Time. It tolerates the truncated forms the spec allows
// (date only, date and hour, and so on). Returns the zero time when the
// string cannot be parsed.
func parsePDFDate(s string) time.Time {
	s = strings.TrimPrefix(s, "D:")
	if s == "" {
		return time.Time{}
	}

	// Normalize the timezone suffix: +02'00' -> +0200.
	if i := strings.IndexAny(s, "+-Z"); i >= 0 {
		tz := strings.ReplaceAll(s[i:], "'", "")
		if tz == "Z" {
			tz = "+0000"
		}
		s = s[:i] + tz
	}

	layouts := []string{
		"20060102150405-0700",
		"20060102150405",
		"200601021504",
		"2006010215",
		"20060102",
		"200601",
		"2006",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
