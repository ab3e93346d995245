package academic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSentences(t *testing.T) {
	got := SplitSentences("First one. Second two! Third three? No end")
	assert.Equal(t, []string{"First one.", "Second two!", "Third three?", "No end"}, got)
}

func TestSplitSentencesKeepsClosingQuote(t *testing.T) {
	got := SplitSentences(`He said "stop." Then left.`)
	assert.Equal(t, []string{`He said "stop."`, "Then left."}, got)
}

func TestSplitSentencesNoSplitWithoutSpace(t *testing.T) {
	got := SplitSentences("Version 1.2 shipped. Done.")
	assert.Equal(t, []string{"Version 1.2 shipped.", "Done."}, got)
}

func TestSplitSentencesEmpty(t *testing.T) {
	assert.Empty(t, SplitSentences(""))
	assert.Empty(t, SplitSentences("   "))
}

func TestChunkPagesSplitsAtSentenceBoundaries(t *testing.T) {
	pages := []PageResult{
		{ProcessedText: "Alpha beta gamma. Delta epsilon zeta.", Page: 1},
		{ProcessedText: "Eta theta iota.", Page: 2},
	}

	chunks := ChunkPages(pages, 40)
	require.Len(t, chunks, 2)

	assert.Equal(t, 0, chunks[0].ID)
	assert.Equal(t, "Alpha beta gamma. Delta epsilon zeta.", chunks[0].Text)
	assert.Equal(t, 1, chunks[0].PageStart)
	assert.Equal(t, 1, chunks[0].PageEnd)
	assert.Equal(t, 6, chunks[0].WordCount)

	assert.Equal(t, 1, chunks[1].ID)
	assert.Equal(t, "Eta theta iota.", chunks[1].Text)
	assert.Equal(t, 2, chunks[1].PageStart)
	assert.Equal(t, 2, chunks[1].PageEnd)
}

func TestChunkPagesSpansPages(t *testing.T) {
	pages := []PageResult{
		{ProcessedText: "Short start.", Page: 1},
		{ProcessedText: "Short end.", Page: 2},
	}

	chunks := ChunkPages(pages, 0)
	require.Len(t, chunks, 1)
	assert.Equal(t, "Short start. Short end.", chunks[0].Text)
	assert.Equal(t, 1, chunks[0].PageStart)
	assert.Equal(t, 2, chunks[0].PageEnd)
}

func TestChunkPagesEmpty(t *testing.T) {
	assert.Empty(t, ChunkPages(nil, 100))
	assert.Empty(t, ChunkPages([]PageResult{{ProcessedText: "", Page: 1}}, 100))
}
