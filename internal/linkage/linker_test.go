package linkage

import (
	"errors"
	"testing"

	"github.com/bundestweets/bundestweets/internal/models"
)

func TestLink(t *testing.T) {
	names := []string{"Müller, Anna", "Schmidt, Bernd"}
	parties := []string{"SPD", "FDP"}
	accounts := []models.Account{
		{ScreenName: "anna_m", DisplayName: "Anna Müller MdB", Raw: map[string]interface{}{"followers_count": 1200}},
		{ScreenName: "bschmidt", DisplayName: "Dr. Bernd Schmidt"},
	}

	linked, err := NewLinker().Link(names, parties, accounts)
	if err != nil {
		t.Fatalf("Link failed: %v", err)
	}

	if len(linked) != 2 {
		t.Fatalf("Expected one record per member, got %d", len(linked))
	}

	first := linked[0]
	if first.RealName != "Müller, Anna" || first.Party != "SPD" || first.ScreenName != "anna_m" {
		t.Errorf("Unexpected record for member 0: %+v", first)
	}
	if first.Profile["followers_count"] != 1200 {
		t.Errorf("Profile metadata not carried through: %+v", first.Profile)
	}

	second := linked[1]
	if second.RealName != "Schmidt, Bernd" || second.Party != "FDP" || second.ScreenName != "bschmidt" {
		t.Errorf("Unexpected record for member 1: %+v", second)
	}
}

func TestLinkUnmatchedMemberKeepsMemberFields(t *testing.T) {
	linked, err := NewLinker().Link(
		[]string{"Meier, Clara"},
		[]string{"CDU/CSU"},
		[]models.Account{{ScreenName: "someone", DisplayName: "Jemand Anderes"}},
	)
	if err != nil {
		t.Fatalf("Link failed: %v", err)
	}

	record := linked[0]
	if record.Matched() {
		t.Errorf("Expected no match, got %+v", record)
	}
	if record.RealName != "Meier, Clara" || record.Party != "CDU/CSU" {
		t.Errorf("Member fields lost on no-match: %+v", record)
	}
}

func TestLinkFirstMatchWins(t *testing.T) {
	// Two candidate accounts match; the scan stops at the first.
	linked, err := NewLinker().Link(
		[]string{"Müller, Anna"},
		[]string{"SPD"},
		[]models.Account{
			{ScreenName: "fanpage", DisplayName: "Fans von Anna Müller"},
			{ScreenName: "anna_real", DisplayName: "Anna Müller MdB"},
		},
	)
	if err != nil {
		t.Fatalf("Link failed: %v", err)
	}
	if linked[0].ScreenName != "fanpage" {
		t.Errorf("Expected first-match-wins, got %q", linked[0].ScreenName)
	}
}

func TestLinkMatchedAccountStaysInPool(t *testing.T) {
	// An account whose name contains two members' tokens is claimed twice.
	linked, err := NewLinker().Link(
		[]string{"Müller, Anna", "Anna, Maria"},
		[]string{"SPD", "SPD"},
		[]models.Account{
			{ScreenName: "shared", DisplayName: "Maria Anna Müller"},
		},
	)
	if err != nil {
		t.Fatalf("Link failed: %v", err)
	}
	if linked[0].ScreenName != "shared" || linked[1].ScreenName != "shared" {
		t.Errorf("Expected both members to claim the shared account: %+v", linked)
	}
}

func TestLinkMalformedNameIsFatal(t *testing.T) {
	_, err := NewLinker().Link([]string{"kein Komma"}, []string{"SPD"}, nil)
	if !errors.Is(err, ErrMalformedName) {
		t.Fatalf("Expected ErrMalformedName, got: %v", err)
	}
}
