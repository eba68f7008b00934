package nlp

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Stem reduces a German word to its CISTEM stem (Weissweiler & Fraser,
// 2017). The algorithm lowercases, folds umlauts, strips a leading "ge"
// prefix from long words, protects "sch"/"ei"/"ie" and doubled characters
// behind placeholders, then iteratively removes inflection suffixes. The
// "t" suffix is only removed from words that were lowercase on input,
// which keeps noun inflection intact.
func Stem(word string) string {
	if word == "" {
		return word
	}

	firstRune, _ := utf8.DecodeRuneInString(word)
	upper := unicode.IsUpper(firstRune)

	word = strings.ToLower(word)
	word = umlautFolder.Replace(word)

	if utf8.RuneCountInString(word) >= 6 && strings.HasPrefix(word, "ge") {
		word = word[2:]
	}

	word = strings.ReplaceAll(word, "sch", "$")
	word = strings.ReplaceAll(word, "ei", "%")
	word = strings.ReplaceAll(word, "ie", "&")
	word = foldDoubles(word)

	for utf8.RuneCountInString(word) > 3 {
		if utf8.RuneCountInString(word) > 5 {
			if trimmed, ok := trimSuffix(word, "em", "er"); ok {
				word = trimmed
				continue
			}
			if trimmed, ok := trimSuffix(word, "nd"); ok {
				word = trimmed
				continue
			}
		}
		if !upper {
			if trimmed, ok := trimSuffix(word, "t"); ok {
				word = trimmed
				continue
			}
		}
		if trimmed, ok := trimSuffix(word, "e", "s", "n"); ok {
			word = trimmed
			continue
		}
		break
	}

	word = unfoldDoubles(word)
	word = strings.ReplaceAll(word, "$", "sch")
	word = strings.ReplaceAll(word, "%", "ei")
	word = strings.ReplaceAll(word, "&", "ie")

	return word
}

var umlautFolder = strings.NewReplacer("ü", "u", "ö", "o", "ä", "a", "ß", "ss")

func trimSuffix(word string, suffixes ...string) (string, bool) {
	for _, suf := range suffixes {
		if strings.HasSuffix(word, suf) {
			return word[:len(word)-len(suf)], true
		}
	}
	return word, false
}

// foldDoubles replaces each pair of identical adjacent runes with the rune
// followed by '*'.
func foldDoubles(word string) string {
	runes := []rune(word)
	var b strings.Builder
	for i := 0; i < len(runes); {
		if i+1 < len(runes) && runes[i] == runes[i+1] {
			b.WriteRune(runes[i])
			b.WriteByte('*')
			i += 2
		} else {
			b.WriteRune(runes[i])
			i++
		}
	}
	return b.String()
}

// unfoldDoubles reverses foldDoubles.
func unfoldDoubles(word string) string {
	runes := []rune(word)
	var b strings.Builder
	for i := 0; i < len(runes); {
		if i+1 < len(runes) && runes[i+1] == '*' {
			b.WriteRune(runes[i])
			b.WriteRune(runes[i])
			i += 2
		} else {
			b.WriteRune(runes[i])
			i++
		}
	}
	return b.String()
}
