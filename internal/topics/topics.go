package topics

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/bundestweets/bundestweets/internal/models"
)

// Set is the persisted topic collection loaded from a precomputed
// topic-model result. It is read-only; ad-hoc user keywords go through an
// Overlay and never touch the persisted set.
type Set struct {
	topics []models.Topic
}

// LoadSet reads a topic result document: a JSON mapping from stringified
// topic id to an ordered keyword list.
func LoadSet(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read topic file: %w", err)
	}
	return ParseSet(data)
}

// ParseSet parses a topic result document.
func ParseSet(data []byte) (*Set, error) {
	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse topic file: %w", err)
	}

	topics := make([]models.Topic, 0, len(raw))
	for key, keywords := range raw {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("topic id %q is not an integer", key)
		}
		topics = append(topics, models.Topic{ID: id, Keywords: keywords})
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].ID < topics[j].ID })

	return &Set{topics: topics}, nil
}

// Topics returns the persisted topics in id order.
func (s *Set) Topics() []models.Topic {
	out := make([]models.Topic, len(s.topics))
	copy(out, s.topics)
	return out
}

// Overlay starts a session-scoped view of the topic set that can be
// extended with user-entered keyword groups.
func (s *Set) Overlay() *Overlay {
	return &Overlay{base: s}
}

// Overlay is a request-scoped extension of a persisted topic Set. Added
// topics get append-assigned ids and live only as long as the overlay.
type Overlay struct {
	base  *Set
	extra []models.Topic
}

// Add appends a user-entered keyword group and returns the new topic.
func (o *Overlay) Add(keywords []string) models.Topic {
	t := models.Topic{
		ID:       len(o.base.topics) + len(o.extra),
		Keywords: keywords,
	}
	o.extra = append(o.extra, t)
	return t
}

// Topics returns the persisted topics followed by the session additions.
func (o *Overlay) Topics() []models.Topic {
	out := make([]models.Topic, 0, len(o.base.topics)+len(o.extra))
	out = append(out, o.base.topics...)
	out = append(out, o.extra...)
	return out
}
