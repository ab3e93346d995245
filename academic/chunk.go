package academic

import (
	"strings"
	"unicode"
)

// DefaultChunkSize is the target chunk length in characters.
const DefaultChunkSize = 1000

// Chunk is one agent-sized slice of document text with its page span.
type Chunk struct {
	ID        int    `json:"chunk_id"`
	Text      string `json:"text"`
	PageStart int    `json:"page_start"`
	PageEnd   int    `json:"page_end"`
	WordCount int    `json:"word_count"`
}

// ChunkPages splits processed page text into chunks of at most chunkSize
// characters, cutting only at sentence boundaries. A chunkSize of zero or
// less uses DefaultChunkSize.
func ChunkPages(pages []PageResult, chunkSize int) []Chunk {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	var chunks []Chunk
	current := ""
	pageStart, pageEnd := 0, 0

	for _, page := range pages {
		for _, sentence := range SplitSentences(page.ProcessedText) {
			if current == "" {
				current = sentence
				pageStart, pageEnd = page.Page, page.Page
				continue
			}
			if len(current)+len(sentence)+1 > chunkSize {
				chunks = append(chunks, makeChunk(len(chunks), current, pageStart, pageEnd))
				current = sentence
				pageStart, pageEnd = page.Page, page.Page
				continue
			}
			current += " " + sentence
			pageEnd = page.Page
		}
	}
	if current != "" {
		chunks = append(chunks, makeChunk(len(chunks), current, pageStart, pageEnd))
	}

	return chunks
}

func makeChunk(id int, text string, pageStart, pageEnd int) Chunk {
	text = strings.TrimSpace(text)
	return Chunk{
		ID:        id,
		Text:      text,
		PageStart: pageStart,
		PageEnd:   pageEnd,
		WordCount: len(strings.Fields(text)),
	}
}

// SplitSentences splits text after sentence-ending punctuation followed by
// whitespace. Trailing quotes and brackets stay attached to their sentence.
func SplitSentences(text string) []string {
	var sentences []string
	runes := []rune(text)
	start := 0

	for i := 0; i < len(runes); i++ {
		if runes[i] != '.' && runes[i] != '!' && runes[i] != '?' {
			continue
		}
		end := i + 1
		for end < len(runes) && (runes[end] == '"' || runes[end] == '\'' || runes[end] == ')' || runes[end] == ']') {
			end++
		}
		if end < len(runes) && !unicode.IsSpace(runes[end]) {
			continue
		}
		sentence := strings.TrimSpace(string(runes[start:end]))
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
		for end < len(runes) && unicode.IsSpace(runes[end]) {
			end++
		}
		start = end
		i = end - 1
	}

	if rest := strings.TrimSpace(string(runes[start:])); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}
