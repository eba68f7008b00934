package enrich

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/bundestweets/bundestweets/internal/models"
	"github.com/bundestweets/bundestweets/internal/nlp"
	"github.com/bundestweets/bundestweets/internal/store"
	"github.com/bundestweets/bundestweets/pkg/logging"
	"github.com/bundestweets/bundestweets/pkg/telemetry"
)

// Scorer assigns an offensive-language probability in [0,1] to tweets.
// Tweets absent from the returned map stay unscored. The model itself lives
// outside this repository; implementations only attach its output.
type Scorer interface {
	Score(ctx context.Context, tweets []models.Tweet) (map[int64]float64, error)
}

// Pass is one incremental enrichment run over the corpus: clean and stem
// every row whose derived text columns are missing, extend the stem
// translation table, and attach offensive probabilities when a scorer is
// configured.
type Pass struct {
	store           *store.Store
	scorer          Scorer
	translationPath string
	logger          *zap.Logger
}

// NewPass creates an enrichment pass. scorer may be nil.
func NewPass(st *store.Store, scorer Scorer, translationPath string) *Pass {
	return &Pass{
		store:           st,
		scorer:          scorer,
		translationPath: translationPath,
		logger:          logging.WithComponent("enrich"),
	}
}

// Run executes the pass. It is idempotent: a second run over an already
// enriched corpus finds no unprocessed rows and changes nothing.
func (p *Pass) Run(ctx context.Context) error {
	ctx, span := telemetry.StartSpan(ctx, "enrich.run")
	defer span.End()

	if err := p.store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	tweets, err := p.store.ReadUnprocessed(ctx)
	if err != nil {
		return fmt.Errorf("failed to read unprocessed tweets: %w", err)
	}
	p.logger.Info("Enrichment pass started", zap.Int("unprocessed", len(tweets)))

	table, err := p.loadTable()
	if err != nil {
		return err
	}

	var stemmedValues, cleanedValues []store.DerivedValue
	var processed []models.Tweet
	for _, tw := range tweets {
		// Rows without text keep null derived columns.
		if !tw.HasText() {
			continue
		}
		stemmed, cleaned := nlp.CleanAndStem(tw.Text.String)
		table.AddRow(stemmed, cleaned)
		stemmedValues = append(stemmedValues, store.DerivedValue{ID: tw.ID, Value: stemmed})
		cleanedValues = append(cleanedValues, store.DerivedValue{ID: tw.ID, Value: cleaned})
		processed = append(processed, tw)
	}

	if err := p.store.UpdateDerivedColumn(ctx, "text_stemmed", stemmedValues); err != nil {
		return fmt.Errorf("failed to write stemmed texts: %w", err)
	}
	if err := p.store.UpdateDerivedColumn(ctx, "text_cleaned", cleanedValues); err != nil {
		return fmt.Errorf("failed to write cleaned texts: %w", err)
	}

	if p.translationPath != "" && len(processed) > 0 {
		if err := nlp.SaveTranslationTable(p.translationPath, table); err != nil {
			return fmt.Errorf("failed to save translation table: %w", err)
		}
	}

	if p.scorer != nil {
		if err := p.score(ctx, processed); err != nil {
			return err
		}
	}

	p.logger.Info("Enrichment pass finished",
		zap.Int("enriched", len(processed)),
		zap.Int("stems", len(table)))
	return nil
}

func (p *Pass) loadTable() (nlp.TranslationTable, error) {
	if p.translationPath == "" {
		return nlp.NewTranslationTable(), nil
	}
	table, err := nlp.LoadTranslationTable(p.translationPath)
	if os.IsNotExist(err) {
		return nlp.NewTranslationTable(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load translation table: %w", err)
	}
	return table, nil
}

func (p *Pass) score(ctx context.Context, tweets []models.Tweet) error {
	ctx, span := telemetry.StartSpan(ctx, "enrich.score")
	defer span.End()

	if len(tweets) == 0 {
		return nil
	}

	probas, err := p.scorer.Score(ctx, tweets)
	if err != nil {
		return fmt.Errorf("failed to score tweets: %w", err)
	}

	values := make([]store.DerivedValue, 0, len(probas))
	for _, tw := range tweets {
		proba, ok := probas[tw.ID]
		if !ok {
			continue
		}
		if proba < 0 || proba > 1 {
			return fmt.Errorf("probability %f for tweet %d out of range", proba, tw.ID)
		}
		values = append(values, store.DerivedValue{ID: tw.ID, Value: proba})
	}

	if err := p.store.UpdateDerivedColumn(ctx, "offensive_proba", values); err != nil {
		return fmt.Errorf("failed to write offensive probabilities: %w", err)
	}
	p.logger.Info("Attached offensive probabilities", zap.Int("scored", len(values)))
	return nil
}
