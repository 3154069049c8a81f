package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// RepairSentence verifies that sentence is a verbatim substring of the
// article and tries to recover the true article text when it is not. The
// model is instructed to copy sentences character-for-character, but it
// sometimes normalizes quotes or collapses whitespace, which would make the
// highlight sink's exact-match search fail silently.
//
// Returns the article's own substring on success, or "" when the sentence
// cannot be located (the caller falls back to the cleaned claim text).
func RepairSentence(article, sentence string) string {
	sentence = strings.TrimSpace(sentence)
	if sentence == "" {
		return ""
	}

	if strings.Contains(article, sentence) {
		return sentence
	}

	// Whitespace- and case-insensitive locate, mapped back to the
	// article's original runes.
	normArticle, offsets := normalizeWithOffsets(article)
	normSentence, _ := normalizeWithOffsets(sentence)
	if normSentence == "" {
		return ""
	}

	idx := strings.Index(normArticle, normSentence)
	if idx < 0 {
		return ""
	}

	start := offsets[idx]
	end := offsets[idx+len(normSentence)-1]
	_, size := utf8.DecodeRuneInString(article[end:])
	return strings.TrimSpace(article[start : end+size])
}

// normalizeWithOffsets lowercases text and collapses whitespace runs into
// single spaces, recording for every byte of the normalized string the byte
// offset of its origin in the input.
func normalizeWithOffsets(text string) (string, []int) {
	var b strings.Builder
	var offsets []int

	lastSpace := true
	for i, r := range text {
		if unicode.IsSpace(r) {
			if !lastSpace {
				b.WriteByte(' ')
				offsets = append(offsets, i)
				lastSpace = true
			}
			continue
		}
		lastSpace = false
		lower := unicode.ToLower(r)
		start := b.Len()
		b.WriteRune(lower)
		for j := start; j < b.Len(); j++ {
			offsets = append(offsets, i)
		}
	}

	norm := strings.TrimRight(b.String(), " ")
	return norm, offsets[:len(norm)]
}
