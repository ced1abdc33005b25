package text

import (
	"fmt"
	"strings"
)

func isMarker(r rune) bool {
	return r == ZeroWidthSpace || r == ZeroWidthNonJoiner
}

// CheckHost refuses host text which would make the output ambiguous.
func CheckHost(host string) error {
	if strings.ContainsRune(host, ZeroWidthSpace) || strings.ContainsRune(host, ZeroWidthNonJoiner) {
		return fmt.Errorf("%w: zero-width marker", ErrHostConflict)
	}
	if strings.Contains(host, EmphasisDelimiter) {
		return fmt.Errorf("%w: %q delimiter", ErrHostConflict, EmphasisDelimiter)
	}
	return nil
}

/*
 * EmbedDense places the bits right after the carriers of the host text.
 * every character of the host is kept as is, whitespace never carries data.
 * bits are the 0/1 values produced by the bit serializer.
 */
func EmbedDense(host string, bits []byte) (string, error) {
	if err := CheckHost(host); err != nil {
		return "", err
	}
	runes := []rune(host)
	alloc, err := Allocate(runes, len(bits))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	// every marker takes 3 bytes in utf-8
	sb.Grow(len(host) + len(bits)*3)

	bitIndex, n := 0, 0
	for _, r := range runes {
		sb.WriteRune(r)
		if IsWhitespace(r) {
			continue
		}
		count := alloc.Count(n)
		n++
		for _, b := range bits[bitIndex : bitIndex+count] {
			if b == 1 {
				sb.WriteRune(ZeroWidthNonJoiner)
			} else {
				sb.WriteRune(ZeroWidthSpace)
			}
		}
		bitIndex += count
	}
	return sb.String(), nil
}

/*
 * ExtractDense collects marker runs following the carriers.
 * the text must be free of emphasis delimiters already.
 * a marker which does not follow a carrier is taken as a carrier itself,
 * exactly like any other visible character.
 */
func ExtractDense(s string) []byte {
	runes := []rune(s)
	bits := []byte{}

	i := 0
	for i < len(runes) {
		if IsWhitespace(runes[i]) {
			i++
			continue
		}
		// skip the carrier itself
		i++
		for i < len(runes) && isMarker(runes[i]) {
			if runes[i] == ZeroWidthNonJoiner {
				bits = append(bits, 1)
			} else {
				bits = append(bits, 0)
			}
			i++
		}
	}
	return bits
}

// StripMarkers returns the host text as it was before embedding.
func StripMarkers(s string) string {
	return strings.Map(func(r rune) rune {
		if isMarker(r) {
			return -1
		}
		return r
	}, s)
}
