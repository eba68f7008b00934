package stats

import (
	"sort"
)

// MonthlyPartyCount is one (month, party) bucket of the tweet timeline.
type MonthlyPartyCount struct {
	Month string `json:"month"` // YYYY-MM
	Party string `json:"party"`
	Count int    `json:"count"`
}

// MonthlyStats counts content tweets per month and party.
func MonthlyStats(rows []Row) []MonthlyPartyCount {
	type key struct {
		month string
		party string
	}
	counts := make(map[key]int)
	for _, r := range rows {
		if !r.HasText() {
			continue
		}
		counts[key{r.Date.Format("2006-01"), r.Party}]++
	}

	out := make([]MonthlyPartyCount, 0, len(counts))
	for k, c := range counts {
		out = append(out, MonthlyPartyCount{Month: k.month, Party: k.party, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Party < out[j].Party
	})
	return out
}

// PartyPresence counts representatives of one party in one population:
// "twitter" (members with a linked account) or "parliament" (members
// holding a seat in the snapshot).
type PartyPresence struct {
	Where string `json:"where"`
	Party string `json:"party"`
	Count int    `json:"count"`
}

// MemberCounts counts representatives per party for both populations. The
// member list is already restricted to seated members.
func MemberCounts(ds *Dataset) []PartyPresence {
	twitter := make(map[string]int)
	parliament := make(map[string]int)
	for _, rec := range ds.Members {
		parliament[rec.Party]++
		if rec.Matched() {
			twitter[rec.Party]++
		}
	}

	var out []PartyPresence
	for _, party := range PartyList {
		if c := twitter[party]; c > 0 {
			out = append(out, PartyPresence{Where: "twitter", Party: party, Count: c})
		}
	}
	for _, party := range PartyList {
		if c := parliament[party]; c > 0 {
			out = append(out, PartyPresence{Where: "parliament", Party: party, Count: c})
		}
	}
	return out
}

// MemberActivity is one member's lifetime tweet count and its share of the
// whole corpus.
type MemberActivity struct {
	Name     string  `json:"name"`
	Party    string  `json:"party"`
	Count    int     `json:"count"`
	Fraction float64 `json:"fraction"`
}

// MemberStats counts content tweets per member, sorted descending.
func MemberStats(rows []Row) []MemberActivity {
	type key struct {
		name  string
		party string
	}
	counts := make(map[key]int)
	total := 0
	for _, r := range rows {
		if !r.HasText() {
			continue
		}
		counts[key{r.RealName, r.Party}]++
		total++
	}

	out := make([]MemberActivity, 0, len(counts))
	for k, c := range counts {
		activity := MemberActivity{Name: k.name, Party: k.party, Count: c}
		if total > 0 {
			activity.Fraction = float64(c) / float64(total)
		}
		out = append(out, activity)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}
