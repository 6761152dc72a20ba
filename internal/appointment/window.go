package appointment

import (
	"fmt"
	"time"
)

// Window is an inclusive range of calendar dates. Time of day is ignored on
// both the bounds and the values tested against them.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow returns a window over the dates of start and end.
func NewWindow(start, end time.Time) (Window, error) {
	w := Window{Start: DateOf(start), End: DateOf(end)}
	if w.End.Before(w.Start) {
		return Window{}, fmt.Errorf("window end %s is before start %s",
			w.End.Format(time.DateOnly), w.Start.Format(time.DateOnly))
	}
	return w, nil
}

// Contains reports whether t falls on a date inside the window.
func (w Window) Contains(t time.Time) bool {
	d := civilDate(t)
	return d >= civilDate(w.Start) && d <= civilDate(w.End)
}

// Restrict returns the records whose own start time lies inside the window.
// The input slice is not modified.
func (w Window) Restrict(pool []Raw) []Raw {
	out := make([]Raw, 0, len(pool))
	for _, r := range pool {
		if w.Contains(r.Start) {
			out = append(out, r)
		}
	}
	return out
}

// String renders the window as "YYYY-MM-DD..YYYY-MM-DD".
func (w Window) String() string {
	return w.Start.Format(time.DateOnly) + ".." + w.End.Format(time.DateOnly)
}

// civilDate compares wall-clock dates without converting between locations.
func civilDate(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
