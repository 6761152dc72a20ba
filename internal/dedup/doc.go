// Package dedup collapses raw appointments observed by several accounts into
// one canonical event per real-world meeting.
//
// Deduplication runs in two phases:
//
//   - Identity grouping: records sharing an appointment.EventKey (start minute
//     plus lower-cased title) are merged. Descriptive fields come from the first
//     record seen, the member list is the union of source accounts and the
//     modification time is the latest one in the group.
//   - Supersession: merged events sharing an appointment.BaseTitle compete and
//     only one survives. The most recently modified non-canceled event wins; a
//     cancellation only survives when it has no non-canceled sibling.
//
// Supersession deliberately spans different start times, so an edit that moved
// a meeting replaces the original slot.
package dedup
