package nlp

import (
	"strings"
	"unicode"
)

// TokenizeTweet splits social-media text into tokens. Hashtag and mention
// tokens stay atomic; for everything else, leading and trailing punctuation
// is split off into tokens of its own, the way tweet-aware tokenizers do.
// Most punctuation never reaches this point because the cleaning passes run
// first.
func TokenizeTweet(text string) []string {
	var tokens []string
	for _, field := range strings.Fields(text) {
		if field[0] == '#' || field[0] == '@' {
			tokens = append(tokens, field)
			continue
		}

		runes := []rune(field)
		start := 0
		for start < len(runes) && isTokenPunct(runes[start]) {
			start++
		}
		end := len(runes)
		for end > start && isTokenPunct(runes[end-1]) {
			end--
		}

		for i := 0; i < start; i++ {
			tokens = append(tokens, string(runes[i]))
		}
		if end > start {
			tokens = append(tokens, string(runes[start:end]))
		}
		for i := end; i < len(runes); i++ {
			tokens = append(tokens, string(runes[i]))
		}
	}
	return tokens
}

func isTokenPunct(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
