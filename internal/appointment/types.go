package appointment

import (
	"strings"
	"time"
)

// Raw is a single appointment parsed from one account's calendar export.
type Raw struct {
	Title    string
	Start    time.Time // naive wall-clock time, second precision
	Modified time.Time

	Location     string
	Participants []string // lower-cased, deduplicated, sorted
	Details      string   // plain text with markup removed

	// SourceAccount is the account folder the record was read from.
	SourceAccount string
}

// Key returns the identity of the logical event this record belongs to.
func (r Raw) Key() EventKey {
	return NewEventKey(r.Start, r.Title)
}

// Canonical is one real-world event after deduplication.
type Canonical struct {
	Date         time.Time // midnight of the event's display date
	Title        string
	Members      []string // sorted account identifiers that observed the event
	Location     string
	Participants string
	Topic        string
	Details      string
}

// MemberList renders Members the way the report shows them.
func (c Canonical) MemberList() string {
	return strings.Join(c.Members, ", ")
}

// DateOf returns midnight of t's calendar date, keeping t's location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
