package members

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/bundestweets/bundestweets/internal/models"
)

// Snapshot is a member registry snapshot: a mapping from the dense linkage
// index to the merged member/account record. It is written by the scraper
// after linkage and read by the aggregation layer at startup.
type Snapshot map[int]models.MemberAccount

// Records returns the snapshot records in index order.
func (s Snapshot) Records() []models.MemberAccount {
	indices := make([]int, 0, len(s))
	for i := range s {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	out := make([]models.MemberAccount, 0, len(s))
	for _, i := range indices {
		out = append(out, s[i])
	}
	return out
}

// Seated returns the records whose members still hold a seat, in index
// order. Resigned, deceased and mandate-declined members are dropped.
func (s Snapshot) Seated() []models.MemberAccount {
	var out []models.MemberAccount
	for _, rec := range s.Records() {
		if rec.IsSeated() {
			out = append(out, rec)
		}
	}
	return out
}

// Save persists the snapshot as a JSON document. Each record is flattened:
// the account profile bag is merged with the member fields, so consumers
// see one flat object per index.
func Save(path string, snap Snapshot) error {
	doc := make(map[string]map[string]interface{}, len(snap))
	for idx, rec := range snap {
		entry := make(map[string]interface{}, len(rec.Profile)+3)
		for k, v := range rec.Profile {
			entry[k] = v
		}
		entry["real_name"] = rec.RealName
		entry["party"] = rec.Party
		if rec.ScreenName != "" {
			entry["screen_name"] = rec.ScreenName
		}
		doc[strconv.Itoa(idx)] = entry
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal member snapshot: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load reads a snapshot persisted by Save.
func Load(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read member snapshot: %w", err)
	}
	return Parse(data)
}

// Parse parses a member snapshot document.
func Parse(data []byte) (Snapshot, error) {
	var doc map[string]map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse member snapshot: %w", err)
	}

	snap := make(Snapshot, len(doc))
	for key, entry := range doc {
		idx, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("snapshot index %q is not an integer", key)
		}

		rec := models.MemberAccount{}
		if v, ok := entry["real_name"].(string); ok {
			rec.RealName = v
		}
		if v, ok := entry["party"].(string); ok {
			rec.Party = v
		}
		if v, ok := entry["screen_name"].(string); ok {
			rec.ScreenName = v
		}

		profile := make(map[string]interface{})
		for k, v := range entry {
			switch k {
			case "real_name", "party", "screen_name":
			default:
				profile[k] = v
			}
		}
		if len(profile) > 0 {
			rec.Profile = profile
		}
		snap[idx] = rec
	}
	return snap, nil
}

// HandleIndex maps every linked account handle to its member record.
func (s Snapshot) HandleIndex() map[string]models.MemberAccount {
	idx := make(map[string]models.MemberAccount)
	for _, rec := range s {
		if rec.Matched() {
			idx[rec.ScreenName] = rec
		}
	}
	return idx
}
