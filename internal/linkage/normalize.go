package linkage

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrMalformedName is returned for registry names that lack the expected
// "Last, First" comma separator.
var ErrMalformedName = errors.New("malformed registry name")

// titleSubstrings are removed from names by literal substring deletion.
// This is deliberately not word-boundary aware: a name that merely contains
// one of these as a substring gets partially stripped too. The matching
// downstream was tuned against exactly this behavior.
var titleSubstrings = []string{"Dr", "Prof", ".", " von"}

// profileSubstrings are additionally removed from profile display names.
var profileSubstrings = []string{"MdB", "(", ")", ","}

var diacriticStripper = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// stripDiacritics transliterates accented Latin letters to their base form.
func stripDiacritics(s string) string {
	// ß has no combining decomposition
	s = strings.ReplaceAll(s, "ß", "ss")
	out, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		return s
	}
	return out
}

// emoji code point blocks: emoticons, symbols & pictographs, transport &
// map symbols, regional indicators (flags).
var emojiRanges = &unicode.RangeTable{
	R32: []unicode.Range32{
		{Lo: 0x1F1E0, Hi: 0x1F1FF, Stride: 1},
		{Lo: 0x1F300, Hi: 0x1F5FF, Stride: 1},
		{Lo: 0x1F600, Hi: 0x1F64F, Stride: 1},
		{Lo: 0x1F680, Hi: 0x1F6FF, Stride: 1},
	},
}

func stripEmoji(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.Is(emojiRanges, r) {
			return -1
		}
		return r
	}, s)
}

func stripTitles(s string) string {
	for _, t := range titleSubstrings {
		s = strings.ReplaceAll(s, t, "")
	}
	return s
}

// NamePair is a normalized (first, last) token pair of a registry name.
type NamePair struct {
	First string
	Last  string
}

// TokenizeRealName canonicalizes a registry name in "Last, First[, titles]"
// format into a comparable (first, last) token pair. Double surnames keep
// only their first part; titles are stripped from the first-name segment.
func TokenizeRealName(name string) (NamePair, error) {
	parts := strings.SplitN(name, ", ", 2)
	if len(parts) < 2 {
		return NamePair{}, fmt.Errorf("%w: %q", ErrMalformedName, name)
	}
	lastSeg, firstSeg := parts[0], parts[1]

	lastTokens := strings.Fields(lastSeg)
	if len(lastTokens) == 0 {
		return NamePair{}, fmt.Errorf("%w: empty last name in %q", ErrMalformedName, name)
	}
	last := stripDiacritics(strings.ToLower(lastTokens[0]))

	firstSeg = stripTitles(firstSeg)
	firstSeg = stripDiacritics(firstSeg)
	firstTokens := strings.Fields(firstSeg)
	if len(firstTokens) == 0 {
		return NamePair{}, fmt.Errorf("%w: empty first name in %q", ErrMalformedName, name)
	}
	first := strings.ToLower(firstTokens[0])

	return NamePair{First: first, Last: last}, nil
}

// TokenizeRealNames normalizes a whole registry snapshot, preserving input
// order. The first malformed name aborts the run.
func TokenizeRealNames(names []string) ([]NamePair, error) {
	pairs := make([]NamePair, 0, len(names))
	for _, name := range names {
		p, err := TokenizeRealName(name)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

// NormalizeProfileName canonicalizes a free-text profile display name for
// containment comparison against registry name tokens.
func NormalizeProfileName(name string) string {
	name = stripTitles(name)
	for _, t := range profileSubstrings {
		name = strings.ReplaceAll(name, t, "")
	}
	name = strings.TrimSpace(name)
	name = stripEmoji(name)
	name = stripDiacritics(name)
	return strings.ToLower(name)
}
