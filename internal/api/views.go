package api

import (
	"time"

	"github.com/bundestweets/bundestweets/internal/stats"
)

// tweetView is the public JSON form of one linked tweet.
type tweetView struct {
	ID        int64     `json:"id"`
	Permalink string    `json:"permalink"`
	Name      string    `json:"name"`
	Party     string    `json:"party"`
	Username  string    `json:"username"`
	RespTo    string    `json:"resp_to,omitempty"`
	Text      string    `json:"text"`
	Date      time.Time `json:"date"`
	Retweets  int       `json:"retweets"`
	Favorites int       `json:"favorites"`
}

func newTweetView(r stats.Row) tweetView {
	v := tweetView{
		ID:        r.ID,
		Permalink: r.Permalink,
		Name:      r.RealName,
		Party:     r.Party,
		Username:  r.Username,
		Date:      r.Date,
		Retweets:  r.Retweets,
		Favorites: r.Favorites,
	}
	if r.RespTo.Valid {
		v.RespTo = r.RespTo.String
	}
	if r.Text.Valid {
		v.Text = r.Text.String
	}
	return v
}

func tweetViews(rows []stats.Row) []tweetView {
	out := make([]tweetView, len(rows))
	for i, r := range rows {
		out[i] = newTweetView(r)
	}
	return out
}
