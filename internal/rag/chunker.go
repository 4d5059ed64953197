// Package rag holds the pure parts of the retrieval pipeline: chunking,
// prompt assembly and parsing of generated receipts.
package rag

import "strings"

const (
	DefaultChunkSize    = 800
	DefaultChunkOverlap = 120
)

// Normalize trims text and collapses every whitespace run to a single space.
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Chunk splits the normalized text into windows of chunkSize runes where each
// window starts overlap runes before the previous one ended. The final window
// always ends at the end of the text.
func Chunk(text string, chunkSize, overlap int) []string {
	normalized := Normalize(text)
	if normalized == "" {
		return []string{}
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	step := chunkSize - overlap
	if step < 1 {
		step = 1
	}

	runes := []rune(normalized)
	chunks := make([]string, 0, len(runes)/step+1)
	for start := 0; ; start += step {
		end := start + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return chunks
}
