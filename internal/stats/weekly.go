package stats

import (
	"sort"
	"time"
)

// LastWeekWindow locates the most recent completed Monday-to-Sunday week
// relative to latest. The returned window is [start, end): start is that
// week's Monday at midnight, end the following Monday. A latest timestamp
// in the middle of a week selects the previous calendar week, never the
// current partial one.
func LastWeekWindow(latest time.Time) (start, end time.Time) {
	midnight := time.Date(latest.Year(), latest.Month(), latest.Day(), 0, 0, 0, 0, latest.Location())
	daysSinceMonday := (int(latest.Weekday()) + 6) % 7
	thisMonday := midnight.AddDate(0, 0, -daysSinceMonday)
	return thisMonday.AddDate(0, 0, -7), thisMonday
}

// Ranking is one member's aggregate value inside a window.
type Ranking struct {
	Name  string `json:"name"`
	Party string `json:"party"`
	Value int    `json:"value"`
}

// TopActive ranks members by tweet count inside the given rows.
func TopActive(rows []Row, n int) []Ranking {
	return topBy(rows, n, func(Row) int { return 1 })
}

// TopRetweets ranks members by retweets received.
func TopRetweets(rows []Row, n int) []Ranking {
	return topBy(rows, n, func(r Row) int { return r.Retweets })
}

// TopFavorites ranks members by favorites received.
func TopFavorites(rows []Row, n int) []Ranking {
	return topBy(rows, n, func(r Row) int { return r.Favorites })
}

func topBy(rows []Row, n int, value func(Row) int) []Ranking {
	type key struct {
		name  string
		party string
	}
	sums := make(map[key]int)
	for _, r := range rows {
		sums[key{r.RealName, r.Party}] += value(r)
	}

	out := make([]Ranking, 0, len(sums))
	for k, v := range sums {
		out = append(out, Ranking{Name: k.name, Party: k.party, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// TopTweetsByFavorites returns the n most favorited tweets in the rows.
func TopTweetsByFavorites(rows []Row, n int) []Row {
	return topTweets(rows, n, func(r Row) int { return r.Favorites })
}

// TopTweetsByRetweets returns the n most retweeted tweets in the rows.
func TopTweetsByRetweets(rows []Row, n int) []Row {
	return topTweets(rows, n, func(r Row) int { return r.Retweets })
}

func topTweets(rows []Row, n int, value func(Row) int) []Row {
	sorted := make([]Row, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool {
		if value(sorted[i]) != value(sorted[j]) {
			return value(sorted[i]) > value(sorted[j])
		}
		return sorted[i].ID < sorted[j].ID
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
