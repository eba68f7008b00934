package scraper

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/bundestweets/bundestweets/internal/members"
	"github.com/bundestweets/bundestweets/internal/store"
	"github.com/bundestweets/bundestweets/pkg/logging"
)

// Run scrapes tweets for every linked member of the snapshot, starting at
// startIndex. The first unrecoverable error aborts the whole run and names
// the index it happened at, so a restart can resume from there.
func Run(ctx context.Context, client *Client, st *store.Store, snap members.Snapshot, startIndex int, since time.Time) error {
	logger := logging.WithComponent("scraper")

	indexes := make([]int, 0, len(snap))
	for i := range snap {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)

	for _, i := range indexes {
		if i < startIndex {
			continue
		}
		rec := snap[i]
		if !rec.Matched() {
			continue
		}

		tweets, err := client.UserTweets(ctx, rec.ScreenName, since)
		if err != nil {
			return fmt.Errorf("scrape aborted at index %d (%s): %w", i, rec.ScreenName, err)
		}

		inserted, err := st.InsertIfAbsent(ctx, tweets)
		if err != nil {
			return fmt.Errorf("scrape aborted at index %d (%s): %w", i, rec.ScreenName, err)
		}

		logger.Info("Scraped member",
			zap.Int("index", i),
			zap.String("screen_name", rec.ScreenName),
			zap.Int("fetched", len(tweets)),
			zap.Int64("inserted", inserted))
	}

	return nil
}
