package loader

import (
	"strings"
	"unicode/utf8"
)

// separators tried in order when looking for a cut point, from the most
// meaningful boundary to the least.
var separators = []string{"\n\n", "\n", " "}

// SplitText splits text into overlapping chunks of at most chunkSize
// bytes, preferring paragraph, line and word boundaries over hard cuts.
// Consecutive chunks share roughly overlap bytes of context.
func SplitText(text string, chunkSize, overlap int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = defaultChunkOverlap
	}
	if len(text) <= chunkSize {
		return []string{text}
	}

	var chunks []string
	pos := 0
	for pos < len(text) {
		end := pos + chunkSize
		if end >= len(text) {
			if chunk := strings.TrimSpace(text[pos:]); chunk != "" {
				chunks = append(chunks, chunk)
			}
			break
		}

		cut := findBoundary(text, pos, end)
		if chunk := strings.TrimSpace(text[pos:cut]); chunk != "" {
			chunks = append(chunks, chunk)
		}

		// Step back by the overlap, but always make progress.
		next := runeStart(text, cut-overlap)
		if next <= pos {
			next = cut
		}
		pos = next
	}
	return chunks
}

// findBoundary returns the cut position for a chunk starting at start
// with a hard limit at limit, scanning backwards for a separator.
func findBoundary(text string, start, limit int) int {
	window := text[start:limit]
	for _, sep := range separators {
		if idx := strings.LastIndex(window, sep); idx > 0 {
			return start + idx
		}
	}
	// Hard cut: never split a multi-byte rune.
	limit = runeStart(text, limit)
	if limit <= start {
		_, n := utf8.DecodeRuneInString(text[start:])
		limit = start + n
	}
	return limit
}

// runeStart walks i back to the nearest rune boundary.
func runeStart(text string, i int) int {
	for i > 0 && !utf8.RuneStart(text[i]) {
		i--
	}
	return i
}
