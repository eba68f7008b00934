package linkage

import (
	"errors"
	"testing"
)

func TestTokenizeRealName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		first string
		last  string
	}{
		{
			name:  "plain name",
			input: "Schmidt, Bernd",
			first: "bernd",
			last:  "schmidt",
		},
		{
			name:  "umlaut stripped",
			input: "Müller, Anna",
			first: "anna",
			last:  "muller",
		},
		{
			name:  "doctor title removed",
			input: "Schmidt, Dr. Bernd",
			first: "bernd",
			last:  "schmidt",
		},
		{
			name:  "professor and nobility particle removed",
			input: "Bismarck, Prof. Otto von",
			first: "otto",
			last:  "bismarck",
		},
		{
			name:  "double surname keeps first part",
			input: "Leutheusser-Schnarrenberger Meier, Sabine",
			first: "sabine",
			last:  "leutheusser-schnarrenberger",
		},
		{
			name:  "only first token of first names",
			input: "Merkel, Angela Dorothea",
			first: "angela",
			last:  "merkel",
		},
		{
			name:  "sharp s transliterated",
			input: "Straßmann, Jürgen",
			first: "jurgen",
			last:  "strassmann",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair, err := TokenizeRealName(tt.input)
			if err != nil {
				t.Fatalf("TokenizeRealName(%q) errored: %v", tt.input, err)
			}
			if pair.First != tt.first || pair.Last != tt.last {
				t.Errorf("TokenizeRealName(%q) = (%q, %q), want (%q, %q)",
					tt.input, pair.First, pair.Last, tt.first, tt.last)
			}
		})
	}
}

func TestTokenizeRealNameMissingComma(t *testing.T) {
	_, err := TokenizeRealName("Angela Merkel")
	if !errors.Is(err, ErrMalformedName) {
		t.Fatalf("Expected ErrMalformedName, got: %v", err)
	}
}

func TestTokenizeRealNamesAbortsOnFirstMalformed(t *testing.T) {
	_, err := TokenizeRealNames([]string{"Schmidt, Bernd", "no separator"})
	if !errors.Is(err, ErrMalformedName) {
		t.Fatalf("Expected ErrMalformedName, got: %v", err)
	}
}

func TestNormalizeProfileName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain profile",
			input: "Anna Müller MdB",
			want:  "anna muller",
		},
		{
			name:  "title and punctuation",
			input: "Dr. Bernd Schmidt",
			want:  "bernd schmidt",
		},
		{
			name:  "parentheses and commas",
			input: "Schmidt, Bernd (SPD)",
			want:  "schmidt bernd spd",
		},
		{
			name:  "emoji stripped",
			input: "Anna Müller \U0001F1E9\U0001F1EA\U0001F600",
			want:  "anna muller ",
		},
		{
			name:  "substring title strip corrupts contained titles",
			input: "Drachenberg Profit",
			want:  "achenberg it", // literal "Dr"/"Prof" deletion, by contract
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeProfileName(tt.input); got != tt.want {
				t.Errorf("NormalizeProfileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
