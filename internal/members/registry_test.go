package members

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	doc := `[
		{"real_name": "Müller, Anna", "party": "SPD"},
		{"real_name": "Schmidt, Bernd", "party": "FDP *"}
	]`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	names, parties, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry failed: %v", err)
	}
	if len(names) != 2 || len(parties) != 2 {
		t.Fatalf("Expected 2 entries, got %d/%d", len(names), len(parties))
	}
	if names[0] != "Müller, Anna" || parties[1] != "FDP *" {
		t.Errorf("Entries out of order: %v %v", names, parties)
	}
}

func TestLoadRegistryBadDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	if err := os.WriteFile(path, []byte(`{"not": "an array"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := LoadRegistry(path); err == nil {
		t.Error("Expected parse error")
	}
}
