package appointment

import (
	"strings"
	"time"
)

const (
	canceledPrefix = "canceled:"
	holdPrefix     = "hold:"
)

// EventKey identifies occurrences of the same event seen by different attendees.
type EventKey struct {
	Minute time.Time
	Title  string
}

// NewEventKey builds the key from a start time and a raw title.
func NewEventKey(start time.Time, title string) EventKey {
	return EventKey{
		Minute: start.Truncate(time.Minute),
		Title:  strings.ToLower(title),
	}
}

// String renders the key as "YYYY-MM-DD HH:MM_title".
func (k EventKey) String() string {
	return k.Minute.Format("2006-01-02 15:04") + "_" + k.Title
}

// BaseTitle strips every "canceled:" and "hold:" marker from the lower-cased
// title, wherever it occurs, and trims the result.
func BaseTitle(title string) string {
	t := strings.ToLower(title)
	t = strings.ReplaceAll(t, canceledPrefix, "")
	t = strings.ReplaceAll(t, holdPrefix, "")
	return strings.TrimSpace(t)
}

// IsCanceled reports whether the title marks a cancellation notice.
func IsCanceled(title string) bool {
	return strings.HasPrefix(strings.ToLower(title), canceledPrefix)
}
