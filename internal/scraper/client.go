package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bundestweets/bundestweets/internal/models"
	"github.com/bundestweets/bundestweets/pkg/config"
	"github.com/bundestweets/bundestweets/pkg/logging"
	"github.com/bundestweets/bundestweets/pkg/telemetry"
)

// Client talks to the tweet HTTP API. Rate-limit responses are absorbed by
// sleeping a fixed interval and retrying the same request, so no page is
// ever dropped; any other failure is returned to the caller.
type Client struct {
	http     *http.Client
	baseURL  string
	listID   string
	wait     time.Duration
	pageSize int
	logger   *zap.Logger
}

// New creates a new scraper client
func New(cfg *config.ScraperConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("scraper_url is required")
	}

	logger := logging.GetLogger().With(zap.String("component", "scraper-client"))

	client := &Client{
		http:     &http.Client{Timeout: 30 * time.Second},
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		listID:   cfg.ListID,
		wait:     cfg.RateLimitWait,
		pageSize: cfg.PageSize,
		logger:   logger,
	}

	logger.Info("Scraper client initialized",
		zap.String("url", cfg.BaseURL),
		zap.String("list_id", cfg.ListID))

	return client, nil
}

// tweetPayload is the wire form of one tweet.
type tweetPayload struct {
	ID        int64    `json:"id"`
	Permalink string   `json:"permalink"`
	Username  string   `json:"username"`
	To        string   `json:"to"`
	Text      string   `json:"text"`
	Date      string   `json:"date"`
	Retweets  int      `json:"retweets"`
	Favorites int      `json:"favorites"`
	Mentions  []string `json:"mentions"`
	Hashtags  []string `json:"hashtags"`
}

func (p tweetPayload) toModel() (models.Tweet, error) {
	date, err := time.Parse(time.RFC3339, p.Date)
	if err != nil {
		return models.Tweet{}, fmt.Errorf("bad date for tweet %d: %w", p.ID, err)
	}

	tw := models.Tweet{
		ID:        p.ID,
		Permalink: p.Permalink,
		Username:  p.Username,
		Date:      date.UTC(),
		Retweets:  p.Retweets,
		Favorites: p.Favorites,
		Mentions:  strings.Join(p.Mentions, " "),
		Hashtags:  strings.Join(p.Hashtags, " "),
	}
	if p.To != "" {
		tw.RespTo.String = p.To
		tw.RespTo.Valid = true
	}
	if p.Text != "" {
		tw.Text.String = p.Text
		tw.Text.Valid = true
	}
	return tw, nil
}

// ListAccounts fetches the member accounts of the configured Twitter list.
func (c *Client) ListAccounts(ctx context.Context) ([]models.Account, error) {
	ctx, span := telemetry.StartSpan(ctx, "scraper.list_accounts")
	defer span.End()

	endpoint := fmt.Sprintf("%s/lists/%s/members", c.baseURL, c.listID)
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	var response struct {
		Users []map[string]interface{} `json:"users"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account list: %w", err)
	}

	accounts := make([]models.Account, 0, len(response.Users))
	for _, raw := range response.Users {
		acc := models.Account{Raw: raw}
		if v, ok := raw["screen_name"].(string); ok {
			acc.ScreenName = v
		}
		if v, ok := raw["name"].(string); ok {
			acc.DisplayName = v
		}
		accounts = append(accounts, acc)
	}

	return accounts, nil
}

// UserTweets fetches all tweets of one account newer than since, walking
// pages until an empty one comes back.
func (c *Client) UserTweets(ctx context.Context, screenName string, since time.Time) ([]models.Tweet, error) {
	ctx, span := telemetry.StartSpan(ctx, "scraper.user_tweets")
	defer span.End()

	var tweets []models.Tweet
	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("screen_name", screenName)
		q.Set("since", since.Format("2006-01-02"))
		q.Set("count", strconv.Itoa(c.pageSize))
		q.Set("page", strconv.Itoa(page))

		endpoint := fmt.Sprintf("%s/tweets?%s", c.baseURL, q.Encode())
		body, err := c.get(ctx, endpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch tweets for %s: %w", screenName, err)
		}

		var payloads []tweetPayload
		if err := json.Unmarshal(body, &payloads); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tweets for %s: %w", screenName, err)
		}
		if len(payloads) == 0 {
			break
		}

		for _, p := range payloads {
			tw, err := p.toModel()
			if err != nil {
				return nil, err
			}
			tweets = append(tweets, tw)
		}
		if len(payloads) < c.pageSize {
			break
		}
	}

	return tweets, nil
}

// get performs one GET request. On HTTP 429 it waits the configured
// interval and retries the same URL; context cancellation aborts the wait.
func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, err
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			c.logger.Warn("Rate limited, waiting before retry",
				zap.Duration("wait", c.wait),
				zap.String("url", endpoint))
			select {
			case <-time.After(c.wait):
				continue
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		}

		return body, nil
	}
}
