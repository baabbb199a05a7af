// Package semantic scores how close a resume reads to a job description.
package semantic

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxChunkLength bounds the rune length a chunk grows to before a new one starts.
const MaxChunkLength = 300

var sentenceBoundary = regexp.MustCompile(`[.!?]+`)

// Chunk groups the sentences of text into chunks of at most MaxChunkLength
// runes. A sentence longer than the limit becomes a chunk of its own. Text
// without any sentence yields the text itself.
func Chunk(text string) []string {
	var (
		chunks  []string
		current string
	)

	for _, sentence := range sentenceBoundary.Split(text, -1) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}

		if utf8.RuneCountInString(current)+utf8.RuneCountInString(sentence) < MaxChunkLength {
			current += " " + sentence
			continue
		}

		if current != "" {
			chunks = append(chunks, strings.TrimSpace(current))
		}
		current = sentence
	}

	if current != "" {
		chunks = append(chunks, strings.TrimSpace(current))
	}

	if len(chunks) == 0 {
		return []string{text}
	}
	return chunks
}
