package text

import (
	"strings"
	"unicode/utf8"
)

/*
 * the visible channel: words are separated by ' ' only, and every word holding
 * a non-whitespace character takes one payload bit. for 1 the first visible
 * character gets wrapped with delimiters, for 0 the word is left untouched.
 * nothing ever reads these bits back.
 */
func Emphasize(s string, payloadBits []byte) string {
	words := strings.Split(s, " ")
	idx := 0
	for i, w := range words {
		if idx >= len(payloadBits) {
			break
		}
		pos := strings.IndexFunc(w, func(r rune) bool { return !IsWhitespace(r) })
		if pos < 0 {
			continue
		}
		if payloadBits[idx] == 1 {
			_, size := utf8.DecodeRuneInString(w[pos:])
			words[i] = w[:pos] + EmphasisDelimiter + w[pos:pos+size] + EmphasisDelimiter + w[pos+size:]
		}
		idx++
	}
	return strings.Join(words, " ")
}

// StripEmphasis removes every delimiter, wherever it is.
func StripEmphasis(s string) string {
	return strings.ReplaceAll(s, EmphasisDelimiter, "")
}
