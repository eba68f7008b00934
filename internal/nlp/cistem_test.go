package nlp

import "testing"

func TestStem(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"", ""},
		{"lauf", "lauf"},
		{"gelaufen", "lauf"},
		{"schönes", "schon"},
		{"kleiner", "klei"},
		{"Angst", "angst"},
		{"reden", "red"},
		{"Wollen", "woll"},
		{"Klimaschutz", "klimaschutz"},
		{"Bäume", "baum"},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := Stem(tt.word); got != tt.want {
				t.Errorf("Stem(%q) = %q, want %q", tt.word, got, tt.want)
			}
		})
	}
}

func TestStemUppercaseKeepsTSuffix(t *testing.T) {
	// The "t" suffix is only stripped from words that were lowercase on
	// input.
	lower := Stem("kommt")
	upper := Stem("Kommt")
	if lower == upper {
		t.Errorf("expected case-sensitive t-stripping, got %q for both", lower)
	}
}
