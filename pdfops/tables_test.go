package pdfops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// word builds a positioned word with a 10pt font.
func word(s string, x, y float64) Word {
	return Word{S: s, X: x, Y: y, W: float64(len(s)) * 5, FontSize: 10}
}

func TestDetectTablesSimpleGrid(t *testing.T) {
	// Three rows, three aligned columns.
	words := []Word{
		word("Name", 50, 100), word("Size", 200, 100), word("Date", 350, 100),
		word("a.pdf", 50, 115), word("12kB", 200, 115), word("2024", 350, 115),
		word("b.pdf", 50, 130), word("90kB", 200, 130), word("2023", 350, 130),
	}

	tables := DetectTables(words)
	require.Len(t, tables, 1)

	tab := tables[0]
	require.Len(t, tab.Rows, 3)
	assert.Equal(t, []string{"Name", "Size", "Date"}, tab.Rows[0])
	assert.Equal(t, []string{"a.pdf", "12kB", "2024"}, tab.Rows[1])
	assert.Equal(t, []string{"b.pdf", "90kB", "2023"}, tab.Rows[2])
}

func TestDetectTablesIgnoresProse(t *testing.T) {
	// A paragraph: words flow with small gaps, no columns.
	words := []Word{
		word("This", 50, 100), word("is", 75, 100), word("plain", 89, 100),
		word("prose", 120, 100),
		word("wrapping", 50, 115), word("onto", 98, 115), word("lines.", 123, 115),
	}
	assert.Empty(t, DetectTables(words))
}

func TestDetectTablesMisalignedColumnsSplit(t *testing.T) {
	// Second pair of rows has shifted columns: two separate runs, each below
	// the minimum row count once broken up... the first pair still qualifies.
	words := []Word{
		word("k1", 50, 100), word("v1", 200, 100),
		word("k2", 50, 115), word("v2", 200, 115),
		word("x", 120, 130), word("y", 300, 130),
	}

	tables := DetectTables(words)
	require.Len(t, tables, 1)
	assert.Len(t, tables[0].Rows, 2)
}

func TestDetectTablesMergesAdjacentWordsIntoCell(t *testing.T) {
	words := []Word{
		word("First", 50, 100), word("name", 78, 100), word("Count", 250, 100),
		word("Ada", 50, 115), word("Lovelace", 72, 115), word("42", 250, 115),
	}

	tables := DetectTables(words)
	require.Len(t, tables, 1)
	assert.Equal(t, []string{"First name", "Count"}, tables[0].Rows[0])
	assert.Equal(t, []string{"Ada Lovelace", "42"}, tables[0].Rows[1])
}

func TestDetectTablesEmptyInput(t *testing.T) {
	assert.Nil(t, DetectTables(nil))
}
