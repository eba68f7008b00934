package members

import (
	"encoding/json"
	"fmt"
	"os"
)

// RegistryEntry is one scraped parliament registry row.
type RegistryEntry struct {
	RealName string `json:"real_name"`
	Party    string `json:"party"`
}

// LoadRegistry reads a registry document: an ordered JSON array of member
// entries as scraped from the parliament listing. The order defines the
// dense linkage index.
func LoadRegistry(path string) (names []string, parties []string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read registry: %w", err)
	}

	var entries []RegistryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, nil, fmt.Errorf("failed to parse registry: %w", err)
	}

	names = make([]string, len(entries))
	parties = make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.RealName
		parties[i] = e.Party
	}
	return names, parties, nil
}
