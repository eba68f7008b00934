package models

import "strings"

// MemberStatus describes the mandate status derived from the party marker
// suffix on the registry page (* resigned, ** deceased, *** declined).
type MemberStatus int

const (
	StatusActive MemberStatus = iota
	StatusResigned
	StatusDeceased
	StatusMandateDeclined
)

// Member represents a real-world parliamentary seat holder as captured in a
// registry snapshot. RealName keeps the registry "Last, First" format.
type Member struct {
	RealName string `json:"real_name"`
	Party    string `json:"party"`
}

// Status parses the marker suffix on the party string.
func (m *Member) Status() MemberStatus {
	switch {
	case strings.HasSuffix(m.Party, "***"):
		return StatusMandateDeclined
	case strings.HasSuffix(m.Party, "**"):
		return StatusDeceased
	case strings.HasSuffix(m.Party, "*"):
		return StatusResigned
	}
	return StatusActive
}

// IsSeated reports whether the member currently holds a seat. Historical
// members keep their marker suffix and are excluded from seat counts.
func (m *Member) IsSeated() bool {
	return m.Status() == StatusActive
}

// Account represents a social-media profile from the account collection.
// Raw carries the profile metadata bag unchanged.
type Account struct {
	ScreenName  string                 `json:"screen_name"`
	DisplayName string                 `json:"name"`
	Raw         map[string]interface{} `json:"-"`
}

// MemberAccount is the merged result of linking a Member to at most one
// Account. An unmatched member keeps the member fields only; ScreenName is
// empty and Profile is nil.
type MemberAccount struct {
	Member
	ScreenName string                 `json:"screen_name,omitempty"`
	Profile    map[string]interface{} `json:"-"`
}

// Matched reports whether an account was linked to this member.
func (ma *MemberAccount) Matched() bool {
	return ma.ScreenName != ""
}
