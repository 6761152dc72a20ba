package archive

import (
	"encoding/xml"
	"errors"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/teemow/weeklycal/internal/appointment"
)

// DefaultFolder is the generic folder name the archive uses for the
// operator's own calendar.
const DefaultFolder = "Calendar"

// reservedTitles are placeholder titles that never describe a real meeting.
var reservedTitles = map[string]struct{}{
	"private event": {},
	"appointment":   {},
	"new event":     {},
}

// ParseOptions controls which events survive parsing.
type ParseOptions struct {
	// IgnorePhrases drops every event whose lower-cased title contains one of
	// the phrases. Matching is plain substring containment.
	IgnorePhrases []string

	// SelfAccount replaces the account name of the DefaultFolder folder.
	SelfAccount string

	// DefaultFolder overrides DefaultFolder when set.
	DefaultFolder string
}

func (o ParseOptions) defaultFolder() string {
	if o.DefaultFolder != "" {
		return o.DefaultFolder
	}
	return DefaultFolder
}

// SourceAccount returns the account identifier recorded for a folder.
func (o ParseOptions) SourceAccount(folder string) string {
	if folder == o.defaultFolder() && o.SelfAccount != "" {
		return o.SelfAccount
	}
	return folder
}

// ParseStats counts what happened to the events of one export.
type ParseStats struct {
	Kept          int `json:"kept"`
	MissingFields int `json:"missing_fields"`
	Reserved      int `json:"reserved"`
	Ignored       int `json:"ignored"`
}

// Add accumulates other into s.
func (s *ParseStats) Add(other ParseStats) {
	s.Kept += other.Kept
	s.MissingFields += other.MissingFields
	s.Reserved += other.Reserved
	s.Ignored += other.Ignored
}

// ParseFile parses the calendar export at name inside fsys.
func ParseFile(fsys fs.FS, name, folder string, opts ParseOptions) ([]appointment.Raw, ParseStats, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, ParseStats{}, err
	}
	defer f.Close()

	return Parse(f, name, folder, opts)
}

// Parse reads every <appointment> element from r. name is used in errors only
// and folder is the account folder the export belongs to.
func Parse(r io.Reader, name, folder string, opts ParseOptions) ([]appointment.Raw, ParseStats, error) {
	var (
		out   []appointment.Raw
		stats ParseStats
	)

	phrases := normalizePhrases(opts.IgnorePhrases)
	account := opts.SourceAccount(folder)

	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, &ParseError{File: name, Err: err}
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != elemAppointment {
			continue
		}

		var doc xmlAppointment
		if err := dec.DecodeElement(&doc, &start); err != nil {
			return nil, stats, &ParseError{File: name, Err: err}
		}

		raw, result, err := convert(doc, name, account, phrases)
		if err != nil {
			return nil, stats, err
		}
		switch result {
		case resultKept:
			stats.Kept++
			out = append(out, raw)
		case resultMissing:
			stats.MissingFields++
		case resultReserved:
			stats.Reserved++
		case resultIgnored:
			stats.Ignored++
		}
	}

	return out, stats, nil
}

type convertResult int

const (
	resultKept convertResult = iota
	resultMissing
	resultReserved
	resultIgnored
)

func convert(doc xmlAppointment, name, account string, phrases []string) (appointment.Raw, convertResult, error) {
	title, hasTitle := doc.Summary.text()
	startText, hasStart := doc.StartTime.text()
	modText, hasMod := doc.ModDate.text()
	if !hasTitle || !hasStart || !hasMod ||
		strings.TrimSpace(title) == "" || strings.TrimSpace(startText) == "" || strings.TrimSpace(modText) == "" {
		return appointment.Raw{}, resultMissing, nil
	}

	start, err := parseTimestamp(name, fieldStartTime, startText)
	if err != nil {
		return appointment.Raw{}, resultMissing, err
	}
	modified, err := parseTimestamp(name, fieldModDate, modText)
	if err != nil {
		return appointment.Raw{}, resultMissing, err
	}

	lower := strings.ToLower(title)
	if _, reserved := reservedTitles[lower]; reserved {
		return appointment.Raw{}, resultReserved, nil
	}
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return appointment.Raw{}, resultIgnored, nil
		}
	}

	raw := appointment.Raw{
		Title:         title,
		Start:         start,
		Modified:      modified,
		SourceAccount: account,
	}
	if loc, ok := doc.Location.text(); ok {
		raw.Location = loc
	}
	if doc.Attendees != nil {
		raw.Participants = attendeeAddresses(doc.Attendees.Attendees)
	}
	if desc, ok := doc.Description.text(); ok {
		raw.Details = StripMarkup(desc)
	}

	return raw, resultKept, nil
}

func parseTimestamp(name, field, value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	t, err := time.Parse(TimestampLayout, v)
	if err != nil {
		return time.Time{}, &ParseError{File: name, Field: field, Value: v, Err: err}
	}
	return t, nil
}

// attendeeAddresses lower-cases, deduplicates and sorts attendee addresses.
func attendeeAddresses(attendees []xmlAttendee) []string {
	seen := make(map[string]struct{}, len(attendees))
	out := make([]string, 0, len(attendees))
	for _, a := range attendees {
		addr := strings.ToLower(strings.TrimSpace(a.Address))
		if addr == "" {
			continue
		}
		if _, dup := seen[addr]; dup {
			continue
		}
		seen[addr] = struct{}{}
		out = append(out, addr)
	}
	if len(out) == 0 {
		return nil
	}
	sort.Strings(out)
	return out
}

func normalizePhrases(phrases []string) []string {
	out := make([]string, 0, len(phrases))
	for _, p := range phrases {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// CalendarPath returns the export path for an account folder.
func CalendarPath(root, folder, file string) string {
	return path.Join(root, folder, file)
}
