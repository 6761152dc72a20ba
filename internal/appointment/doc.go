// Package appointment defines the appointment records that flow through a
// weekly report run, together with the pure helpers that operate on them.
//
// A run moves through three shapes:
//
//   - Raw: one event as observed in one account's calendar export
//   - Canonical: one real-world event after deduplication across accounts
//   - the spreadsheet row, rendered from a Canonical by the spreadsheet package
//
// The package also provides the participant formatter, the event identity
// helpers (EventKey, BaseTitle, IsCanceled) and the inclusive date Window
// used to restrict a run to one reporting week.
package appointment
