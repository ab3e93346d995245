package pdfops

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParsePDFDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{
			name: "full with timezone",
			in:   "D:20240131120000+02'00'",
			want: time.Date(2024, 1, 31, 12, 0, 0, 0, time.FixedZone("", 2*60*60)),
		},
		{
			name: "zulu",
			in:   "D:20230601090000Z",
			want: time.Date(2023, 6, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "date only",
			in:   "D:19991231",
			want: time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "year only",
			in:   "D:2015",
			want: time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "no prefix",
			in:   "20200715103000",
			want: time.Date(2020, 7, 15, 10, 30, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parsePDFDate(tt.in)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestMetadataParseDates(t *testing.T) {
	m := Metadata{
		CreationDate:     "D:20230601090000Z",
		ModificationDate: "garbage",
	}
	m.parseDates()
	assert.True(t, m.CreationTime.Equal(time.Date(2023, 6, 1, 9, 0, 0, 0, time.UTC)))
	assert.True(t, m.ModificationTime.IsZero())
}

func TestParsePDFDateInvalid(t *testing.T) {
	for _, in := range []string{"", "D:", "not a date", "D:20241"} {
		assert.True(t, parsePDFDate(in).IsZero(), "expected zero time for %q", in)
	}
}
