package members

import (
	"path/filepath"
	"testing"

	"github.com/bundestweets/bundestweets/internal/models"
)

func testSnapshot() Snapshot {
	return Snapshot{
		0: {
			Member:     models.Member{RealName: "Müller, Anna", Party: "SPD"},
			ScreenName: "anna_m",
			Profile:    map[string]interface{}{"followers_count": float64(1200)},
		},
		1: {
			Member: models.Member{RealName: "Schmidt, Bernd", Party: "FDP *"},
		},
		2: {
			Member:     models.Member{RealName: "Meier, Clara", Party: "CDU/CSU"},
			ScreenName: "cmeier",
		},
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twitter_members.json")

	if err := Save(path, testSnapshot()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(loaded) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(loaded))
	}
	first := loaded[0]
	if first.RealName != "Müller, Anna" || first.Party != "SPD" || first.ScreenName != "anna_m" {
		t.Errorf("Record 0 mismatch: %+v", first)
	}
	if first.Profile["followers_count"] != float64(1200) {
		t.Errorf("Profile bag lost: %+v", first.Profile)
	}
	if rec := loaded[1]; rec.Matched() {
		t.Errorf("Unmatched member gained an account: %+v", loaded[1])
	}
}

func TestSnapshotRecordsOrdered(t *testing.T) {
	recs := testSnapshot().Records()
	if recs[0].RealName != "Müller, Anna" || recs[2].RealName != "Meier, Clara" {
		t.Errorf("Records not in index order: %+v", recs)
	}
}

func TestSnapshotSeatedExcludesMarkerMembers(t *testing.T) {
	seated := testSnapshot().Seated()
	if len(seated) != 2 {
		t.Fatalf("Expected 2 seated members, got %d", len(seated))
	}
	for _, rec := range seated {
		if rec.RealName == "Schmidt, Bernd" {
			t.Errorf("Resigned member counted as seated")
		}
	}
}

func TestHandleIndex(t *testing.T) {
	idx := testSnapshot().HandleIndex()
	if len(idx) != 2 {
		t.Fatalf("Expected 2 handles, got %d", len(idx))
	}
	if idx["anna_m"].Party != "SPD" {
		t.Errorf("Handle index wrong: %+v", idx["anna_m"])
	}
}
