package nlp

import (
	"encoding/json"
	"os"
	"strings"
)

// TranslationTable maps a stemmed token to the original surface forms it
// was produced from, with occurrence counts. It is built once from the full
// cleaned+stemmed corpus and read-only afterwards; the most frequent
// original is used to present a human-readable word for a stemmed feature.
type TranslationTable map[string]map[string]int

// NewTranslationTable creates an empty translation table
func NewTranslationTable() TranslationTable {
	return make(TranslationTable)
}

// Add counts one (stem, original) co-occurrence.
func (tt TranslationTable) Add(stem, original string) {
	inner, ok := tt[stem]
	if !ok {
		inner = make(map[string]int)
		tt[stem] = inner
	}
	inner[original]++
}

// AddRow counts the pairwise (stem, original) co-occurrences of one row's
// derived columns. Both strings are space-joined token sequences of equal
// length by construction.
func (tt TranslationTable) AddRow(textStemmed, textCleaned string) {
	stems := strings.Fields(textStemmed)
	originals := strings.Fields(textCleaned)
	for i := 0; i < len(stems) && i < len(originals); i++ {
		tt.Add(stems[i], originals[i])
	}
}

// Best returns the most frequent original surface form for a stem. Ties
// break to the lexicographically smallest original so lookups are
// deterministic. ok is false for stems never seen.
func (tt TranslationTable) Best(stem string) (string, bool) {
	inner, ok := tt[stem]
	if !ok || len(inner) == 0 {
		return "", false
	}
	best := ""
	bestCount := -1
	for original, count := range inner {
		if count > bestCount || (count == bestCount && original < best) {
			best = original
			bestCount = count
		}
	}
	return best, true
}

// Merge adds all counts of other into the table.
func (tt TranslationTable) Merge(other TranslationTable) {
	for stem, inner := range other {
		for original, count := range inner {
			existing, ok := tt[stem]
			if !ok {
				existing = make(map[string]int)
				tt[stem] = existing
			}
			existing[original] += count
		}
	}
}

// SaveTranslationTable persists the table as a nested JSON document.
func SaveTranslationTable(path string, tt TranslationTable) error {
	data, err := json.Marshal(tt)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadTranslationTable reads a table persisted by SaveTranslationTable.
func LoadTranslationTable(path string) (TranslationTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tt TranslationTable
	if err := json.Unmarshal(data, &tt); err != nil {
		return nil, err
	}
	return tt, nil
}
