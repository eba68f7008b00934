package stats

import (
	"sort"
)

// ResponseEdge is a directed reply count between two linked members, with
// the party affiliation attached to both endpoints for aggregation by
// party pair.
type ResponseEdge struct {
	Source      string `json:"source"`
	SourceParty string `json:"source_party"`
	Target      string `json:"target"`
	TargetParty string `json:"target_party"`
	Count       int    `json:"count"`
}

// ResponseGraph counts directed replies between members of the dataset.
// Only replies whose target handle belongs to a linked member count;
// self-replies are excluded.
func ResponseGraph(ds *Dataset) []ResponseEdge {
	handles := ds.HandleIndex()

	type key struct {
		source string
		target string
	}
	type endpoint struct {
		sourceParty string
		targetParty string
	}
	counts := make(map[key]int)
	parties := make(map[key]endpoint)

	for _, r := range ds.Rows {
		if !r.RespTo.Valid {
			continue
		}
		target := r.RespTo.String
		if target == r.Username {
			continue
		}
		rec, ok := handles[target]
		if !ok {
			continue
		}
		k := key{source: r.RealName, target: rec.RealName}
		counts[k]++
		parties[k] = endpoint{sourceParty: r.Party, targetParty: rec.Party}
	}

	out := make([]ResponseEdge, 0, len(counts))
	for k, c := range counts {
		p := parties[k]
		out = append(out, ResponseEdge{
			Source:      k.source,
			SourceParty: p.sourceParty,
			Target:      k.target,
			TargetParty: p.targetParty,
			Count:       c,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].Source != out[j].Source {
			return out[i].Source < out[j].Source
		}
		return out[i].Target < out[j].Target
	})
	return out
}
