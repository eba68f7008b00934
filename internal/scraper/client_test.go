package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bundestweets/bundestweets/pkg/config"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(&config.ScraperConfig{
		BaseURL:       srv.URL,
		ListID:        "12345",
		RateLimitWait: 10 * time.Millisecond,
		PageSize:      2,
	})
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	return client
}

func TestListAccounts(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/lists/12345/members" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"users": []map[string]interface{}{
				{"screen_name": "anna_m", "name": "Dr. Anna Müller MdB", "location": "Berlin"},
				{"screen_name": "bschmidt", "name": "Bernd Schmidt"},
			},
		})
	}))

	accounts, err := client.ListAccounts(context.Background())
	if err != nil {
		t.Fatalf("ListAccounts failed: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("Expected 2 accounts, got %d", len(accounts))
	}
	if accounts[0].ScreenName != "anna_m" || accounts[0].DisplayName != "Dr. Anna Müller MdB" {
		t.Errorf("Account fields wrong: %+v", accounts[0])
	}
	if accounts[0].Raw["location"] != "Berlin" {
		t.Errorf("Raw profile bag not passed through: %+v", accounts[0].Raw)
	}
}

func TestUserTweetsPagination(t *testing.T) {
	pages := map[string][]map[string]interface{}{
		"1": {
			{"id": 1, "username": "anna_m", "text": "eins", "date": "2020-05-01T10:00:00Z"},
			{"id": 2, "username": "anna_m", "text": "zwei", "date": "2020-05-02T10:00:00Z", "to": "bschmidt"},
		},
		"2": {
			{"id": 3, "username": "anna_m", "date": "2020-05-03T10:00:00Z"},
		},
	}
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("since"); got != "2020-05-01" {
			t.Errorf("since = %q", got)
		}
		json.NewEncoder(w).Encode(pages[r.URL.Query().Get("page")])
	}))

	since := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)
	tweets, err := client.UserTweets(context.Background(), "anna_m", since)
	if err != nil {
		t.Fatalf("UserTweets failed: %v", err)
	}
	if len(tweets) != 3 {
		t.Fatalf("Expected 3 tweets across pages, got %d", len(tweets))
	}
	if !tweets[1].RespTo.Valid || tweets[1].RespTo.String != "bschmidt" {
		t.Errorf("Reply target not mapped: %+v", tweets[1])
	}
	if tweets[2].Text.Valid {
		t.Errorf("Media-only tweet should have null text: %+v", tweets[2])
	}
}

func TestRateLimitRetriesSameRequest(t *testing.T) {
	var calls int32
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": 1, "username": "anna_m", "text": "endlich", "date": "2020-05-01T10:00:00Z"},
		})
	}))

	tweets, err := client.UserTweets(context.Background(), "anna_m", time.Now())
	if err != nil {
		t.Fatalf("UserTweets failed: %v", err)
	}
	if len(tweets) != 1 {
		t.Errorf("Rate-limited page was dropped, got %d tweets", len(tweets))
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Errorf("Expected 3 attempts, got %d", calls)
	}
}

func TestRateLimitWaitHonorsContext(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	client.wait = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.UserTweets(ctx, "anna_m", time.Now())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected context deadline error, got %v", err)
	}
}

func TestServerErrorIsFatal(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := client.UserTweets(context.Background(), "anna_m", time.Now())
	if err == nil {
		t.Fatal("Expected error on HTTP 500")
	}
}
