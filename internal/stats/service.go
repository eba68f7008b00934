package stats

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/bundestweets/bundestweets/internal/cache"
	"github.com/bundestweets/bundestweets/internal/members"
	"github.com/bundestweets/bundestweets/internal/store"
	"github.com/bundestweets/bundestweets/pkg/logging"
)

// Service owns the member snapshot, the corpus store handle and the
// aggregation cache. Aggregations are cached per corpus snapshot key and
// recomputed only when the underlying corpus changes.
type Service struct {
	store  *store.Store
	snap   members.Snapshot
	cache  cache.Cache
	logger *zap.Logger

	mu      sync.Mutex
	key     string
	dataset *Dataset
}

// NewService creates the aggregation service
func NewService(st *store.Store, snap members.Snapshot, c cache.Cache) *Service {
	return &Service{
		store:  st,
		snap:   snap,
		cache:  c,
		logger: logging.WithComponent("stats"),
	}
}

// Dataset returns the joined dataset for the current corpus snapshot,
// rebuilding it when the corpus changed since the last call. The returned
// key identifies the snapshot the dataset was built from.
func (s *Service) Dataset(ctx context.Context) (*Dataset, string, error) {
	key, err := s.store.SnapshotKey(ctx)
	if err != nil {
		return nil, "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dataset != nil && s.key == key {
		return s.dataset, key, nil
	}

	tweets, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, "", err
	}
	s.dataset = BuildDataset(s.snap, tweets)
	s.key = key
	s.logger.Info("Rebuilt linked dataset",
		zap.String("snapshot", key),
		zap.Int("rows", len(s.dataset.Rows)),
		zap.Int("members", len(s.dataset.Members)))

	return s.dataset, key, nil
}

// Invalidate drops the in-memory dataset. The next call to Dataset
// rereads the corpus regardless of the snapshot key.
func (s *Service) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dataset = nil
	s.key = ""
}

// Cached runs an aggregation with snapshot-keyed caching: the result is
// serialized once per (name, corpus snapshot) pair.
func (s *Service) Cached(ctx context.Context, name string, compute func(*Dataset) (interface{}, error)) ([]byte, error) {
	ds, key, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}

	cacheKey := "stats:" + name + "@" + key
	if data, ok := s.cache.Get(ctx, cacheKey); ok {
		return data, nil
	}

	result, err := compute(ds)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, cacheKey, data)
	return data, nil
}
