package models

import (
	"database/sql"
	"strings"
	"time"
)

// Tweet represents a single scraped tweet. The tweet's external ID is the
// primary key; rows are never overwritten after insertion, only the derived
// columns are filled in by later enrichment passes.
type Tweet struct {
	ID        int64          `gorm:"primaryKey;autoIncrement:false;column:id" json:"id"`
	Permalink string         `gorm:"type:text;column:permalink" json:"permalink"`
	Username  string         `gorm:"type:text;column:username" json:"username"`
	RespTo    sql.NullString `gorm:"type:text;column:resp_to" json:"resp_to"`
	Text      sql.NullString `gorm:"type:text;column:text" json:"text"`
	Date      time.Time      `gorm:"column:date" json:"date"`
	Retweets  int            `gorm:"column:retweets" json:"retweets"`
	Favorites int            `gorm:"column:favorites" json:"favorites"`
	Mentions  string         `gorm:"type:text;column:mentions" json:"mentions"`
	Hashtags  string         `gorm:"type:text;column:hashtags" json:"hashtags"`

	// Derived columns, null until an enrichment pass has run
	TextStemmed    sql.NullString  `gorm:"type:text;column:text_stemmed" json:"text_stemmed"`
	TextCleaned    sql.NullString  `gorm:"type:text;column:text_cleaned" json:"text_cleaned"`
	OffensiveProba sql.NullFloat64 `gorm:"column:offensive_proba" json:"offensive_proba"`
}

// TableName specifies the table name for Tweet
func (Tweet) TableName() string {
	return "tweets"
}

// HasText reports whether the tweet carries any text content. Pure-media
// tweets have a null text column and are excluded from content statistics.
func (t *Tweet) HasText() bool {
	return t.Text.Valid
}

// MentionsList returns the space-delimited mentions column as a slice.
// strip controls whether the leading '@' is removed from each token.
func (t *Tweet) MentionsList(strip bool) []string {
	if t.Mentions == "" {
		return nil
	}
	parts := strings.Fields(t.Mentions)
	if strip {
		for i, p := range parts {
			if len(p) > 0 && p[0] == '@' {
				parts[i] = p[1:]
			}
		}
	}
	return parts
}

// HashtagsList returns the space-delimited hashtags column as a slice.
func (t *Tweet) HashtagsList() []string {
	if t.Hashtags == "" {
		return nil
	}
	return strings.Fields(t.Hashtags)
}
