package dedup

import (
	"sort"
	"strings"
	"time"

	"github.com/teemow/weeklycal/internal/appointment"
)

// Options carries the identity settings used while merging.
type Options struct {
	// SelfEmail is the operator's account identifier. In member lists it is
	// replaced by SelfLabel when one is configured.
	SelfEmail string
	SelfLabel string

	// Formatter renders the representative record's participants.
	Formatter appointment.ParticipantFormatter
}

// Stats describes how much a run collapsed.
type Stats struct {
	Input    int // raw records
	Combined int // events after identity grouping
	Output   int // events after supersession
}

// combined is an identity group with the working fields supersession needs.
type combined struct {
	event     appointment.Canonical
	start     time.Time
	modified  time.Time
	baseTitle string
	canceled  bool
}

// Deduplicate merges pool into canonical events. The pool order decides which
// record represents a group, so callers should pass records in aggregation
// order. The result is sorted by start time, then title, then member list.
func Deduplicate(pool []appointment.Raw, opts Options) ([]appointment.Canonical, Stats) {
	groups := combine(pool, opts)
	winners := supersede(groups)

	sort.SliceStable(winners, func(i, j int) bool {
		a, b := winners[i], winners[j]
		if !a.start.Equal(b.start) {
			return a.start.Before(b.start)
		}
		if a.event.Title != b.event.Title {
			return a.event.Title < b.event.Title
		}
		return a.event.MemberList() < b.event.MemberList()
	})

	out := make([]appointment.Canonical, len(winners))
	for i, w := range winners {
		out[i] = w.event
	}

	return out, Stats{Input: len(pool), Combined: len(groups), Output: len(out)}
}

// combine groups records by EventKey, in first-seen order.
func combine(pool []appointment.Raw, opts Options) []*combined {
	index := make(map[appointment.EventKey]*combined)
	members := make(map[appointment.EventKey]map[string]struct{})
	var groups []*combined

	for _, r := range pool {
		key := r.Key()
		g, ok := index[key]
		if !ok {
			g = &combined{
				event: appointment.Canonical{
					Date:         appointment.DateOf(r.Start),
					Title:        r.Title,
					Location:     r.Location,
					Participants: opts.Formatter.Format(r.Participants),
					Topic:        r.Title,
					Details:      r.Details,
				},
				start:     r.Start,
				modified:  r.Modified,
				baseTitle: appointment.BaseTitle(r.Title),
				canceled:  appointment.IsCanceled(r.Title),
			}
			index[key] = g
			members[key] = make(map[string]struct{})
			groups = append(groups, g)
		}
		if r.Modified.After(g.modified) {
			g.modified = r.Modified
		}
		members[key][memberName(r.SourceAccount, opts)] = struct{}{}
	}

	for key, g := range index {
		names := make([]string, 0, len(members[key]))
		for name := range members[key] {
			names = append(names, name)
		}
		sort.Strings(names)
		g.event.Members = names
	}

	return groups
}

// supersede keeps one event per base title: the last modified non-canceled
// event, or the last modified event when every candidate is canceled.
func supersede(groups []*combined) []*combined {
	byBase := make(map[string][]*combined)
	var bases []string
	for _, g := range groups {
		if _, ok := byBase[g.baseTitle]; !ok {
			bases = append(bases, g.baseTitle)
		}
		byBase[g.baseTitle] = append(byBase[g.baseTitle], g)
	}

	winners := make([]*combined, 0, len(bases))
	for _, base := range bases {
		candidates := byBase[base]
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].modified.Before(candidates[j].modified)
		})

		winner := candidates[len(candidates)-1]
		for i := len(candidates) - 1; i >= 0; i-- {
			if !candidates[i].canceled {
				winner = candidates[i]
				break
			}
		}
		winners = append(winners, winner)
	}

	return winners
}

func memberName(account string, opts Options) string {
	if opts.SelfLabel != "" && opts.SelfEmail != "" && strings.EqualFold(account, opts.SelfEmail) {
		return opts.SelfLabel
	}
	return account
}
