// Package archive reads calendar data out of an Outlook for Mac archive.
//
// An archive is either the extracted directory tree or the zipped .olm file
// itself; Open returns an fs.FS for both. Inside it, every account folder
// below the accounts directory may hold a Calendar.xml export. Parse turns
// one export into appointment.Raw records, and a Collector walks every
// account folder, applies account exclusions and flattens the results into a
// single pool.
//
// Per-event problems (a missing title, start time or modification date)
// skip the event. A malformed timestamp or broken XML fails the whole file
// with a *ParseError; the collector records that against the account and
// carries on with the others.
package archive
