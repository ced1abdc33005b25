package text

const (
	ZeroWidthSpace     = '\u200b' // bit 0
	ZeroWidthNonJoiner = '\u200c' // bit 1

	// wraps the first letter of a word in the visible channel
	EmphasisDelimiter = "**"
)
