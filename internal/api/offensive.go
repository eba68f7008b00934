package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bundestweets/bundestweets/internal/stats"
)

func (r *Router) offensiveThreshold(c *gin.Context) float64 {
	if v := c.Query("threshold"); v != "" {
		if t, err := strconv.ParseFloat(v, 64); err == nil && t >= 0 && t <= 1 {
			return t
		}
	}
	return r.threshold
}

func (r *Router) offensiveTweets(c *gin.Context) {
	threshold := r.offensiveThreshold(c)
	name := "offensive-tweets@" + strconv.FormatFloat(threshold, 'f', -1, 64)
	r.cached(c, name, func(ds *stats.Dataset) (interface{}, error) {
		off, err := stats.OffensiveTweets(ds.ContentRows(), threshold)
		if err != nil {
			return nil, err
		}
		return tweetViews(off), nil
	})
}

func (r *Router) offensivePerParty(c *gin.Context) {
	threshold := r.offensiveThreshold(c)
	name := "offensive-parties@" + strconv.FormatFloat(threshold, 'f', -1, 64)
	r.cached(c, name, func(ds *stats.Dataset) (interface{}, error) {
		off, err := stats.OffensiveTweets(ds.ContentRows(), threshold)
		if err != nil {
			return nil, err
		}
		return stats.OffensivePerParty(off, ds.Rows), nil
	})
}

func (r *Router) offensiveResponding(c *gin.Context) {
	threshold := r.offensiveThreshold(c)
	name := "offensive-responding@" + strconv.FormatFloat(threshold, 'f', -1, 64)
	r.cached(c, name, func(ds *stats.Dataset) (interface{}, error) {
		off, err := stats.OffensiveTweets(ds.ContentRows(), threshold)
		if err != nil {
			return nil, err
		}
		return stats.OffensiveRespondingSplit(off, ds), nil
	})
}
