package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/bundestweets/bundestweets/internal/models"
)

// FileScorer serves offensive probabilities from a precomputed JSON
// document mapping tweet id to probability. The document is produced by an
// external classifier run.
type FileScorer struct {
	probas map[int64]float64
}

// LoadFileScorer reads a probability document.
func LoadFileScorer(path string) (*FileScorer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse probability document: %w", err)
	}

	probas := make(map[int64]float64, len(raw))
	for key, proba := range raw {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad tweet id %q in probability document: %w", key, err)
		}
		probas[id] = proba
	}
	return &FileScorer{probas: probas}, nil
}

// Score returns the precomputed probability for every tweet present in the
// document.
func (s *FileScorer) Score(_ context.Context, tweets []models.Tweet) (map[int64]float64, error) {
	out := make(map[int64]float64)
	for _, tw := range tweets {
		if proba, ok := s.probas[tw.ID]; ok {
			out[tw.ID] = proba
		}
	}
	return out, nil
}
