package stats

import (
	"database/sql"
	"errors"
	"testing"
	"time"
)

func offRow(id int64, name, party, user string, proba float64, date time.Time) Row {
	r := row(id, name, party, user, "text", date)
	r.OffensiveProba = sql.NullFloat64{Float64: proba, Valid: true}
	return r
}

func TestOffensiveTweets(t *testing.T) {
	base := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)
	rows := []Row{
		offRow(1, "A", "SPD", "a", 0.9, base),
		offRow(2, "B", "FDP", "b", 0.4, base.AddDate(0, 0, 1)),
		offRow(3, "B", "FDP", "b", 0.85, base.AddDate(0, 0, 2)),
		row(4, "C", "AfD", "c", "unscored", base),
	}

	off, err := OffensiveTweets(rows, 0.8)
	if err != nil {
		t.Fatalf("OffensiveTweets failed: %v", err)
	}
	if len(off) != 2 {
		t.Fatalf("Expected 2 offensive rows, got %+v", off)
	}
	if off[0].ID != 3 || off[1].ID != 1 {
		t.Errorf("Expected newest first, got %d, %d", off[0].ID, off[1].ID)
	}
}

func TestOffensiveTweetsUnavailable(t *testing.T) {
	rows := []Row{
		row(1, "A", "SPD", "a", "never scored", time.Now()),
	}
	_, err := OffensiveTweets(rows, 0.8)
	if !errors.Is(err, ErrOffensiveUnavailable) {
		t.Errorf("Expected ErrOffensiveUnavailable, got %v", err)
	}
}

func TestOffensivePerParty(t *testing.T) {
	now := time.Now()
	all := []Row{
		row(1, "A", "SPD", "a", "x", now),
		row(2, "A", "SPD", "a", "y", now),
		row(3, "B", "FDP", "b", "z", now),
		row(4, "B", "FDP", "b", "w", now),
	}
	offensive := []Row{all[0]}

	per := OffensivePerParty(offensive, all)
	if len(per) != 2 {
		t.Fatalf("Expected 2 parties, got %+v", per)
	}

	// PartyList order: SPD before FDP
	spd := per[0]
	if spd.Party != "SPD" || spd.Count != 1 || spd.Fraction != 0.5 {
		t.Errorf("SPD wrong: %+v", spd)
	}
	fdp := per[1]
	if fdp.Party != "FDP" || fdp.Count != 0 || fdp.Fraction != 0 {
		t.Errorf("FDP wrong: %+v", fdp)
	}
}

func TestOffensiveRespondingSplit(t *testing.T) {
	snap := testSnapshot()
	ds := BuildDataset(snap, nil)

	mkRow := func(id int64, user, respTo string) Row {
		r := offRow(id, "A", "SPD", user, 0.9, time.Now())
		if respTo != "" {
			r.RespTo = sql.NullString{String: respTo, Valid: true}
		}
		return r
	}
	offensive := []Row{
		mkRow(1, "anna_m", "bschmidt"), // reply to another member
		mkRow(2, "anna_m", "anna_m"),   // self-reply
		mkRow(3, "anna_m", "fremd"),    // reply outside parliament
		mkRow(4, "anna_m", ""),         // not a reply
	}

	split := OffensiveRespondingSplit(offensive, ds)
	if split.Responding != 1 || split.Other != 3 {
		t.Errorf("Split wrong: %+v", split)
	}
	if split.RespondingFraction != 0.25 {
		t.Errorf("Fraction = %f, want 0.25", split.RespondingFraction)
	}
}
