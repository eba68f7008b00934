package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bundestweets/bundestweets/internal/stats"
	"github.com/bundestweets/bundestweets/internal/topics"
)

// topicView is the public JSON form of one keyword group.
type topicView struct {
	ID       int      `json:"id"`
	Label    string   `json:"label"`
	Keywords []string `json:"keywords"`
}

func (r *Router) listTopics(c *gin.Context) {
	list := r.topicSet.Topics()
	out := make([]topicView, len(list))
	for i, t := range list {
		out[i] = topicView{ID: t.ID, Label: t.Label(), Keywords: t.Keywords}
	}
	c.JSON(http.StatusOK, out)
}

// timelineRequest optionally extends the persisted topics with user-entered
// keyword groups for this request only.
type timelineRequest struct {
	Keywords [][]string `json:"keywords"`
}

func (r *Router) topicTimeline(c *gin.Context) {
	overlay := r.topicSet.Overlay()
	if c.Request.Method == http.MethodPost {
		var req timelineRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		for _, kw := range req.Keywords {
			if len(kw) == 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "empty keyword group"})
				return
			}
			overlay.Add(kw)
		}
	}

	ds, _, err := r.service.Dataset(c.Request.Context())
	if err != nil {
		r.fail(c, "timeline", err)
		return
	}

	// Only enriched rows carry a word set.
	var wordsets []topics.WordSet
	var dates []time.Time
	for _, row := range ds.Rows {
		if !row.TextCleaned.Valid {
			continue
		}
		wordsets = append(wordsets, topics.NewWordSet(row.TextCleaned.String))
		dates = append(dates, row.Date)
	}

	from, to, err := timelineRange(c, ds)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	points := topics.MonthlyTimeline(overlay.Topics(), wordsets, dates, from, to)
	c.JSON(http.StatusOK, points)
}

// timelineRange reads the from/to query parameters (YYYY-MM); missing
// bounds default to the year up to and including the latest post's month.
// The to bound always covers its whole month, so the newest bucket counts
// posts rather than reporting zero.
func timelineRange(c *gin.Context, ds *stats.Dataset) (from, to time.Time, err error) {
	latest, ok := ds.LatestDate()
	if !ok {
		latest = time.Now().UTC()
	}
	latestMonth := time.Date(latest.Year(), latest.Month(), 1, 0, 0, 0, 0, time.UTC)
	from = latestMonth.AddDate(-1, 0, 0)
	to = wholeMonth(latestMonth)

	if v := c.Query("from"); v != "" {
		from, err = time.Parse("2006-01", v)
		if err != nil {
			return from, to, fmt.Errorf("bad from month %q", v)
		}
	}
	if v := c.Query("to"); v != "" {
		to, err = time.Parse("2006-01", v)
		if err != nil {
			return from, to, fmt.Errorf("bad to month %q", v)
		}
		to = wholeMonth(to)
	}
	if to.Before(from) {
		return from, to, fmt.Errorf("to month precedes from month")
	}
	return from, to, nil
}

// wholeMonth extends the first instant of a month to its last included
// instant.
func wholeMonth(month time.Time) time.Time {
	return month.AddDate(0, 1, 0).Add(-time.Second)
}
