package stats

import (
	"errors"
	"sort"
)

// ErrOffensiveUnavailable is returned when the offensive-probability
// column was never populated. Consumers treat the feature as unavailable
// instead of failing.
var ErrOffensiveUnavailable = errors.New("offensive probabilities not computed")

// OffensiveTweets returns the content rows whose offensive probability
// reaches the threshold, newest first.
func OffensiveTweets(rows []Row, threshold float64) ([]Row, error) {
	any := false
	var out []Row
	for _, r := range rows {
		if !r.OffensiveProba.Valid {
			continue
		}
		any = true
		if r.OffensiveProba.Float64 >= threshold {
			out = append(out, r)
		}
	}
	if !any {
		return nil, ErrOffensiveUnavailable
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// PartyOffensive is one party's offensive tweet count, absolute and as a
// fraction of that party's total content tweets.
type PartyOffensive struct {
	Party    string  `json:"party"`
	Count    int     `json:"count"`
	Fraction float64 `json:"fraction"`
}

// OffensivePerParty aggregates offensive rows per party against the full
// content row set.
func OffensivePerParty(offensive, all []Row) []PartyOffensive {
	offCounts := make(map[string]int)
	for _, r := range offensive {
		offCounts[r.Party]++
	}
	totals := make(map[string]int)
	for _, r := range all {
		if r.HasText() {
			totals[r.Party]++
		}
	}

	var out []PartyOffensive
	for _, party := range PartyList {
		total := totals[party]
		if total == 0 {
			continue
		}
		count := offCounts[party]
		out = append(out, PartyOffensive{
			Party:    party,
			Count:    count,
			Fraction: float64(count) / float64(total),
		})
	}
	return out
}

// RespondingSplit partitions offensive tweets into replies to other
// members and everything else.
type RespondingSplit struct {
	Responding         int     `json:"responding"`
	Other              int     `json:"other"`
	RespondingFraction float64 `json:"responding_fraction"`
}

// OffensiveRespondingSplit reports how many offensive tweets are part of
// an argument between members.
func OffensiveRespondingSplit(offensive []Row, ds *Dataset) RespondingSplit {
	handles := ds.HandleIndex()

	split := RespondingSplit{}
	for _, r := range offensive {
		if r.RespTo.Valid && r.RespTo.String != r.Username {
			if _, ok := handles[r.RespTo.String]; ok {
				split.Responding++
				continue
			}
		}
		split.Other++
	}
	if total := split.Responding + split.Other; total > 0 {
		split.RespondingFraction = float64(split.Responding) / float64(total)
	}
	return split
}
