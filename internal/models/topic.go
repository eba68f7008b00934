package models

import "strings"

// Topic is a named set of keywords representing a discussion theme. The
// persisted set comes from a precomputed topic-model result; ad-hoc topics
// entered at runtime get append-assigned IDs in a session overlay.
type Topic struct {
	ID       int      `json:"id"`
	Keywords []string `json:"keywords"`
}

// Label is the display name of the topic: its keywords space-joined.
func (t Topic) Label() string {
	return strings.Join(t.Keywords, " ")
}

// KeywordSet returns the lowercased keyword set used for intersection
// scoring. Scores are invariant to the casing of the keyword list.
func (t Topic) KeywordSet() map[string]struct{} {
	set := make(map[string]struct{}, len(t.Keywords))
	for _, kw := range t.Keywords {
		set[strings.ToLower(kw)] = struct{}{}
	}
	return set
}
