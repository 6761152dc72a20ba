package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewEventKey(t *testing.T) {
	a := NewEventKey(time.Date(2024, 1, 8, 10, 0, 12, 0, time.UTC), "Team Sync")
	b := NewEventKey(time.Date(2024, 1, 8, 10, 0, 59, 0, time.UTC), "team sync")
	c := NewEventKey(time.Date(2024, 1, 8, 10, 1, 0, 0, time.UTC), "team sync")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, "2024-01-08 10:00_team sync", a.String())
}

func TestBaseTitle(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Team Sync", "team sync"},
		{"Canceled: Team Sync", "team sync"},
		{"HOLD: Team Sync", "team sync"},
		{"Canceled: Hold: Team Sync", "team sync"},
		// Markers are removed wherever they appear.
		{"Review of hold: policy", "review of  policy"},
		{"  spaced  ", "spaced"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BaseTitle(tt.title), tt.title)
	}
}

func TestIsCanceled(t *testing.T) {
	assert.True(t, IsCanceled("Canceled: Team Sync"))
	assert.True(t, IsCanceled("CANCELED:x"))
	assert.False(t, IsCanceled("Team Sync canceled: later"))
	assert.False(t, IsCanceled("Hold: Canceled: Team Sync"))
}
