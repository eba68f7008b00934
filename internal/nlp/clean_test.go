package nlp

import (
	"strings"
	"testing"
)

func TestCleanAndStem(t *testing.T) {
	stemmed, cleaned := CleanAndStem("Super Rede @abc123 zum Thema #Klimaschutz! http://t.co/xyz")

	if cleaned != "Super Rede Thema" {
		t.Errorf("cleaned = %q, want %q", cleaned, "Super Rede Thema")
	}
	for _, banned := range []string{"@", "#", "http", "Klimaschutz", "abc123"} {
		if strings.Contains(cleaned, banned) {
			t.Errorf("cleaned %q still contains %q", cleaned, banned)
		}
	}
	for _, tok := range strings.Fields(cleaned) {
		if len([]rune(tok)) <= 3 {
			t.Errorf("cleaned contains short token %q", tok)
		}
	}
	if stemmed != "super red thema" {
		t.Errorf("stemmed = %q, want %q", stemmed, "super red thema")
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "url removed",
			input: "siehe https://example.com/a/b hier",
			want:  "siehe hier",
		},
		{
			name:  "html tags removed",
			input: "ein <b>fetter</b> Text",
			want:  "ein fetter Text",
		},
		{
			name:  "special characters replaced",
			input: "Klima, Schutz & Wandel!",
			want:  "Klima Schutz Wandel ",
		},
		{
			name:  "single characters removed",
			input: "a schönes b Wochenende",
			want:  " schönes Wochenende",
		},
		{
			name:  "consecutive single characters removed",
			input: "a b c Ende",
			want:  " Ende",
		},
		{
			name:  "single accented character removed",
			input: "ein é Test",
			want:  "ein Test",
		},
		{
			name:  "letter digit pair kept",
			input: "Artikel a1 gilt",
			want:  "Artikel a1 gilt",
		},
		{
			name:  "mention and hashtag removed",
			input: "Danke @regsprecher für #Transparenz",
			want:  "Danke für ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanText(tt.input)
			if strings.Join(strings.Fields(got), " ") != strings.Join(strings.Fields(tt.want), " ") {
				t.Errorf("CleanText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanAndStemDropsPartyNames(t *testing.T) {
	_, cleaned := CleanAndStem("Grüne Politik gegen LINKE Vorschläge")
	if strings.Contains(cleaned, "Grüne") || strings.Contains(strings.ToLower(cleaned), "linke") {
		t.Errorf("party names not dropped: %q", cleaned)
	}
	if !strings.Contains(cleaned, "Politik") || !strings.Contains(cleaned, "Vorschläge") {
		t.Errorf("content words lost: %q", cleaned)
	}
}

func TestTokenizeTweet(t *testing.T) {
	tokens := TokenizeTweet("Super Rede #Klima @wer so")
	want := []string{"Super", "Rede", "#Klima", "@wer", "so"}
	if len(tokens) != len(want) {
		t.Fatalf("TokenizeTweet = %v, want %v", tokens, want)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Errorf("token %d = %q, want %q", i, tokens[i], want[i])
		}
	}
}

func TestTokenizeTweetSplitsPunctuation(t *testing.T) {
	tokens := TokenizeTweet("*wichtig* _kursiv_")
	want := []string{"*", "wichtig", "*", "_", "kursiv", "_"}
	if len(tokens) != len(want) {
		t.Fatalf("TokenizeTweet = %v, want %v", tokens, want)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Errorf("token %d = %q, want %q", i, tokens[i], want[i])
		}
	}
}
