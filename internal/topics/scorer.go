package topics

import (
	"strings"
	"time"

	"github.com/bundestweets/bundestweets/internal/models"
)

// WordSet is a post's text reduced to a lowercase word set.
type WordSet map[string]struct{}

// NewWordSet builds the word set of a text.
func NewWordSet(text string) WordSet {
	fields := strings.Fields(strings.ToLower(text))
	set := make(WordSet, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// Intersect counts how many of the topic's keywords occur in the word set.
// Keyword casing is irrelevant.
func Intersect(topic models.Topic, words WordSet) int {
	count := 0
	for kw := range topic.KeywordSet() {
		if _, ok := words[kw]; ok {
			count++
		}
	}
	return count
}

// Intersections computes the full intersection matrix: one row per post,
// one column per topic.
func Intersections(topicList []models.Topic, wordsets []WordSet) [][]int {
	keywordSets := make([]map[string]struct{}, len(topicList))
	for j, t := range topicList {
		keywordSets[j] = t.KeywordSet()
	}

	matrix := make([][]int, len(wordsets))
	for i, words := range wordsets {
		row := make([]int, len(topicList))
		for j, set := range keywordSets {
			for kw := range set {
				if _, ok := words[kw]; ok {
					row[j]++
				}
			}
		}
		matrix[i] = row
	}
	return matrix
}

// TimelinePoint is one long-form row of a topic timeline: the monthly
// bucket, the topic label (its keywords space-joined) and the summed
// intersection count.
type TimelinePoint struct {
	Date     time.Time `json:"date"`
	Keywords string    `json:"keywords"`
	Tweets   int       `json:"tweets"`
}

// MonthlyTimeline buckets per-post intersection counts into calendar
// months over [from, to] and reshapes wide (one column per topic) to long
// (one row per date and topic). Months inside the range with no posts are
// kept and reported as zero. dates runs parallel to wordsets.
func MonthlyTimeline(topicList []models.Topic, wordsets []WordSet, dates []time.Time, from, to time.Time) []TimelinePoint {
	matrix := Intersections(topicList, wordsets)

	type bucket struct {
		year  int
		month time.Month
	}
	sums := make(map[bucket][]int)
	for i, d := range dates {
		if d.Before(from) || d.After(to) {
			continue
		}
		b := bucket{d.Year(), d.Month()}
		row, ok := sums[b]
		if !ok {
			row = make([]int, len(topicList))
			sums[b] = row
		}
		for j, v := range matrix[i] {
			row[j] += v
		}
	}

	var points []TimelinePoint
	cursor := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cursor.After(end) {
		row := sums[bucket{cursor.Year(), cursor.Month()}]
		for j, t := range topicList {
			v := 0
			if row != nil {
				v = row[j]
			}
			points = append(points, TimelinePoint{
				Date:     cursor,
				Keywords: t.Label(),
				Tweets:   v,
			})
		}
		cursor = cursor.AddDate(0, 1, 0)
	}
	return points
}
