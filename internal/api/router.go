package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bundestweets/bundestweets/internal/stats"
	"github.com/bundestweets/bundestweets/internal/topics"
	"github.com/bundestweets/bundestweets/pkg/logging"
	"github.com/bundestweets/bundestweets/pkg/telemetry"
)

// Router wires the aggregation layer into HTTP routes
type Router struct {
	service   *stats.Service
	topicSet  *topics.Set
	threshold float64
	logger    *zap.Logger
}

// NewRouter creates a new API router
func NewRouter(service *stats.Service, topicSet *topics.Set, offensiveThreshold float64) *Router {
	return &Router{
		service:   service,
		topicSet:  topicSet,
		threshold: offensiveThreshold,
		logger:    logging.GetLogger().With(zap.String("component", "api-router")),
	}
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	api := engine.Group("/api")
	api.GET("/stats/monthly", r.monthlyStats)
	api.GET("/stats/members", r.memberStats)
	api.GET("/stats/member-counts", r.memberCounts)
	api.GET("/stats/weekly", r.weeklyReport)
	api.GET("/stats/responses", r.responseGraph)

	api.GET("/topics", r.listTopics)
	api.GET("/topics/timeline", r.topicTimeline)
	api.POST("/topics/timeline", r.topicTimeline)

	api.GET("/offensive/tweets", r.offensiveTweets)
	api.GET("/offensive/parties", r.offensivePerParty)
	api.GET("/offensive/responding", r.offensiveResponding)
}

func (r *Router) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"service": "bundestweets-api",
	})
}

// cached serves one snapshot-cached aggregation as raw JSON.
func (r *Router) cached(c *gin.Context, name string, compute func(*stats.Dataset) (interface{}, error)) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api."+name)
	defer span.End()

	data, err := r.service.Cached(ctx, name, compute)
	if err != nil {
		r.fail(c, name, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func (r *Router) fail(c *gin.Context, name string, err error) {
	if errors.Is(err, stats.ErrOffensiveUnavailable) {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "offensive-language scores are not available for this corpus",
		})
		return
	}
	r.logger.Error("Aggregation failed", zap.String("endpoint", name), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func (r *Router) monthlyStats(c *gin.Context) {
	r.cached(c, "monthly", func(ds *stats.Dataset) (interface{}, error) {
		return stats.MonthlyStats(ds.Rows), nil
	})
}

func (r *Router) memberStats(c *gin.Context) {
	r.cached(c, "members", func(ds *stats.Dataset) (interface{}, error) {
		return stats.MemberStats(ds.Rows), nil
	})
}

func (r *Router) memberCounts(c *gin.Context) {
	r.cached(c, "member-counts", func(ds *stats.Dataset) (interface{}, error) {
		return stats.MemberCounts(ds), nil
	})
}

// weeklyReport is the last completed calendar week in one response: member
// rankings plus the standout tweets.
type weeklyReport struct {
	Start        time.Time       `json:"start"`
	End          time.Time       `json:"end"`
	MostActive   []stats.Ranking `json:"most_active"`
	MostRetweets []stats.Ranking `json:"most_retweets"`
	MostLiked    []stats.Ranking `json:"most_liked"`
	TopRetweeted []tweetView     `json:"top_retweeted"`
	TopLiked     []tweetView     `json:"top_liked"`
}

func (r *Router) weeklyReport(c *gin.Context) {
	r.cached(c, "weekly", func(ds *stats.Dataset) (interface{}, error) {
		latest, ok := ds.LatestDate()
		if !ok {
			return weeklyReport{}, nil
		}
		start, end := stats.LastWeekWindow(latest)
		rows := ds.WindowRows(start, end)

		return weeklyReport{
			Start:        start,
			End:          end,
			MostActive:   stats.TopActive(rows, 10),
			MostRetweets: stats.TopRetweets(rows, 10),
			MostLiked:    stats.TopFavorites(rows, 10),
			TopRetweeted: tweetViews(stats.TopTweetsByRetweets(rows, 3)),
			TopLiked:     tweetViews(stats.TopTweetsByFavorites(rows, 3)),
		}, nil
	})
}

func (r *Router) responseGraph(c *gin.Context) {
	r.cached(c, "responses", func(ds *stats.Dataset) (interface{}, error) {
		return stats.ResponseGraph(ds), nil
	})
}
