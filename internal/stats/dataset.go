package stats

import (
	"time"

	"github.com/bundestweets/bundestweets/internal/members"
	"github.com/bundestweets/bundestweets/internal/models"
)

// PartyList is the fixed party order used by the dashboard.
var PartyList = []string{
	"CDU/CSU", "SPD", "Bündnis 90/Die Grünen", "FDP", "Die Linke", "AfD", "fraktionslos",
}

// Row is one tweet joined with its author's member record.
type Row struct {
	models.Tweet
	RealName string
	Party    string
}

// Dataset is the linked dataset all aggregations run on: the seated member
// records of a snapshot joined with their tweets. Members carrying a
// historical marker are excluded entirely, together with their tweets.
type Dataset struct {
	Members []models.MemberAccount
	Rows    []Row
}

// BuildDataset joins a member snapshot with the tweet corpus by account
// handle.
func BuildDataset(snap members.Snapshot, tweets []models.Tweet) *Dataset {
	byUser := make(map[string][]models.Tweet)
	for _, tw := range tweets {
		byUser[tw.Username] = append(byUser[tw.Username], tw)
	}

	ds := &Dataset{}
	for _, rec := range snap.Seated() {
		ds.Members = append(ds.Members, rec)
		if !rec.Matched() {
			continue
		}
		for _, tw := range byUser[rec.ScreenName] {
			ds.Rows = append(ds.Rows, Row{
				Tweet:    tw,
				RealName: rec.RealName,
				Party:    rec.Party,
			})
		}
	}
	return ds
}

// ContentRows returns the rows that carry text. Pure-media tweets are
// excluded from all content statistics.
func (d *Dataset) ContentRows() []Row {
	var out []Row
	for _, r := range d.Rows {
		if r.HasText() {
			out = append(out, r)
		}
	}
	return out
}

// LatestDate returns the newest tweet timestamp in the dataset. ok is
// false for an empty dataset.
func (d *Dataset) LatestDate() (time.Time, bool) {
	var latest time.Time
	found := false
	for _, r := range d.Rows {
		if !found || r.Date.After(latest) {
			latest = r.Date
			found = true
		}
	}
	return latest, found
}

// WindowRows returns the rows with start <= date < end.
func (d *Dataset) WindowRows(start, end time.Time) []Row {
	var out []Row
	for _, r := range d.Rows {
		if !r.Date.Before(start) && r.Date.Before(end) {
			out = append(out, r)
		}
	}
	return out
}

// HandleIndex maps every handle present in the dataset's member list to
// its member record.
func (d *Dataset) HandleIndex() map[string]models.MemberAccount {
	idx := make(map[string]models.MemberAccount)
	for _, rec := range d.Members {
		if rec.Matched() {
			idx[rec.ScreenName] = rec
		}
	}
	return idx
}
