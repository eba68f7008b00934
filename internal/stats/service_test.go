package stats

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/bundestweets/bundestweets/internal/cache"
	"github.com/bundestweets/bundestweets/internal/models"
	"github.com/bundestweets/bundestweets/internal/store"
	"github.com/bundestweets/bundestweets/pkg/config"
)

func openTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	cfg := &config.DatabaseConfig{
		Driver: "sqlite",
		Path:   "file:" + t.Name() + "?mode=memory&cache=shared",
	}
	st, err := store.Open(cfg, "ERROR")
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()
	if err := st.EnsureSchema(ctx); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return NewService(st, testSnapshot(), cache.NewMemory()), st
}

func TestServiceDatasetRebuildsOnNewRows(t *testing.T) {
	svc, st := openTestService(t)
	ctx := context.Background()

	ds, key1, err := svc.Dataset(ctx)
	if err != nil {
		t.Fatalf("Dataset failed: %v", err)
	}
	if len(ds.Rows) != 0 {
		t.Errorf("Expected empty dataset, got %d rows", len(ds.Rows))
	}

	if _, err := st.InsertIfAbsent(ctx, []models.Tweet{
		{ID: 1, Username: "anna_m", Text: sql.NullString{String: "hallo", Valid: true}},
	}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	ds, key2, err := svc.Dataset(ctx)
	if err != nil {
		t.Fatalf("Dataset failed: %v", err)
	}
	if key2 == key1 {
		t.Errorf("Snapshot key did not change after insert")
	}
	if len(ds.Rows) != 1 {
		t.Errorf("Dataset not rebuilt, got %d rows", len(ds.Rows))
	}
}

func TestServiceCached(t *testing.T) {
	svc, st := openTestService(t)
	ctx := context.Background()

	if _, err := st.InsertIfAbsent(ctx, []models.Tweet{
		{ID: 1, Username: "anna_m", Text: sql.NullString{String: "hallo", Valid: true}},
	}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	calls := 0
	compute := func(ds *Dataset) (interface{}, error) {
		calls++
		return MemberStats(ds.Rows), nil
	}

	data, err := svc.Cached(ctx, "member-stats", compute)
	if err != nil {
		t.Fatalf("Cached failed: %v", err)
	}
	var stats []MemberActivity
	if err := json.Unmarshal(data, &stats); err != nil {
		t.Fatalf("Result not valid JSON: %v", err)
	}
	if len(stats) != 1 || stats[0].Name != "Müller, Anna" {
		t.Errorf("Unexpected result: %+v", stats)
	}

	if _, err := svc.Cached(ctx, "member-stats", compute); err != nil {
		t.Fatalf("Cached failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected 1 compute call, got %d", calls)
	}

	// A new corpus snapshot invalidates the cached aggregation.
	if _, err := st.InsertIfAbsent(ctx, []models.Tweet{
		{ID: 2, Username: "anna_m", Text: sql.NullString{String: "nochmal", Valid: true}},
	}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if _, err := svc.Cached(ctx, "member-stats", compute); err != nil {
		t.Fatalf("Cached failed: %v", err)
	}
	if calls != 2 {
		t.Errorf("Expected recompute after corpus change, got %d calls", calls)
	}
}
