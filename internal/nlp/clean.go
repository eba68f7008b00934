package nlp

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Cleaning passes, applied in this order to the full text before
// tokenization. The allow-list keeps Latin letters (incl. the extended
// Latin range), digits, '#', '@', '*', '_' and space; everything else
// becomes a space. Mentions and hashtags survive the allow-list pass and
// are removed afterwards.
var (
	reURL        = regexp.MustCompile(`\w+://[\w-]+(\.[\w-]+)*(?:(?:/[^\s/]*))*`)
	reTags       = regexp.MustCompile(`<[^>]+>`)
	reNonAllowed = regexp.MustCompile(`[^A-Za-zÀ-ž0-9#@*_ ]`)
	reWhitespace = regexp.MustCompile(`\s+`)
	reMention    = regexp.MustCompile(`@[A-Za-z0-9À-ž*_]+`)
	reHashtag    = regexp.MustCompile(`#[A-Za-z0-9À-ž*_]+`)
)

// CleanText strips URLs, markup, disallowed characters, isolated single
// characters, mentions and hashtags from a tweet text.
func CleanText(text string) string {
	text = reURL.ReplaceAllString(text, "")
	text = reTags.ReplaceAllString(text, " ")
	text = reNonAllowed.ReplaceAllString(text, " ")
	text = dropSingleChars(text)
	text = reWhitespace.ReplaceAllString(text, " ")
	text = reMention.ReplaceAllString(text, " ")
	text = reHashtag.ReplaceAllString(text, " ")
	return text
}

// dropSingleChars blanks out letters (basic and extended Latin) that stand
// alone between word boundaries. Go's regexp \b is ASCII-only, so the
// boundary check runs over runes instead.
func dropSingleChars(text string) string {
	runes := []rune(text)
	out := make([]rune, len(runes))
	for i, r := range runes {
		if isSingleLetter(r) && !isWordRune(runes, i-1) && !isWordRune(runes, i+1) {
			out[i] = ' '
			continue
		}
		out[i] = r
	}
	return string(out)
}

func isSingleLetter(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= 'À' && r <= 'ž')
}

func isWordRune(runes []rune, i int) bool {
	if i < 0 || i >= len(runes) {
		return false
	}
	r := runes[i]
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// CleanAndStem cleans and tokenizes a tweet text, drops stopwords, party
// names and short tokens, and returns the stemmed and the cleaned (surface
// form) version, each space-joined.
func CleanAndStem(text string) (stemmed, cleaned string) {
	tokens := TokenizeTweet(CleanText(text))

	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		// acronyms and filler drop out here
		if utf8.RuneCountInString(tok) <= 3 {
			continue
		}
		if IsStopword(tok) {
			continue
		}
		kept = append(kept, tok)
	}

	stems := make([]string, len(kept))
	for i, tok := range kept {
		stems[i] = Stem(tok)
	}

	return strings.Join(stems, " "), strings.Join(kept, " ")
}
