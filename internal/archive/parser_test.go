package archive

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleExport = `<?xml version="1.0" encoding="UTF-8"?>
<appointments>
  <appointment>
    <OPFCalendarEventCopySummary>Team Sync</OPFCalendarEventCopySummary>
    <OPFCalendarEventCopyStartTime>2024-01-08T10:00:00</OPFCalendarEventCopyStartTime>
    <OPFCalendarEventCopyModDate>2024-01-02T09:30:00</OPFCalendarEventCopyModDate>
    <OPFCalendarEventCopyLocation>Room 4</OPFCalendarEventCopyLocation>
    <OPFCalendarEventCopyAttendeeList>
      <appointmentAttendee OPFCalendarAttendeeAddress="Bob@Partner.org"/>
      <appointmentAttendee OPFCalendarAttendeeAddress="alice@partner.org"/>
      <appointmentAttendee OPFCalendarAttendeeAddress="bob@partner.org"/>
      <appointmentAttendee/>
    </OPFCalendarEventCopyAttendeeList>
    <OPFCalendarEventCopyDescription>&lt;p&gt;Agenda&lt;br/&gt;items &amp;amp; notes&lt;/p&gt;</OPFCalendarEventCopyDescription>
  </appointment>
  <appointment>
    <OPFCalendarEventCopySummary>No start</OPFCalendarEventCopySummary>
    <OPFCalendarEventCopyModDate>2024-01-02T09:30:00</OPFCalendarEventCopyModDate>
  </appointment>
  <appointment>
    <OPFCalendarEventCopySummary>New Event</OPFCalendarEventCopySummary>
    <OPFCalendarEventCopyStartTime>2024-01-09T10:00:00</OPFCalendarEventCopyStartTime>
    <OPFCalendarEventCopyModDate>2024-01-02T09:30:00</OPFCalendarEventCopyModDate>
  </appointment>
  <appointment>
    <OPFCalendarEventCopySummary>Lunch with the Dentist</OPFCalendarEventCopySummary>
    <OPFCalendarEventCopyStartTime>2024-01-09T12:00:00</OPFCalendarEventCopyStartTime>
    <OPFCalendarEventCopyModDate>2024-01-02T09:30:00</OPFCalendarEventCopyModDate>
  </appointment>
  <appointment>
    <OPFCalendarEventCopySummary>Board prep</OPFCalendarEventCopySummary>
    <OPFCalendarEventCopyStartTime>2024-01-10T15:30:45</OPFCalendarEventCopyStartTime>
    <OPFCalendarEventCopyModDate>2024-01-03T08:00:00</OPFCalendarEventCopyModDate>
  </appointment>
</appointments>`

func TestParse(t *testing.T) {
	raws, stats, err := Parse(strings.NewReader(sampleExport), "A/Calendar.xml", "A", ParseOptions{
		IgnorePhrases: []string{"DENTIST"},
	})
	require.NoError(t, err)

	assert.Equal(t, ParseStats{Kept: 2, MissingFields: 1, Reserved: 1, Ignored: 1}, stats)
	require.Len(t, raws, 2)

	sync := raws[0]
	assert.Equal(t, "Team Sync", sync.Title)
	assert.Equal(t, time.Date(2024, 1, 8, 10, 0, 0, 0, time.UTC), sync.Start)
	assert.Equal(t, time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC), sync.Modified)
	assert.Equal(t, "Room 4", sync.Location)
	assert.Equal(t, []string{"alice@partner.org", "bob@partner.org"}, sync.Participants)
	assert.Equal(t, "Agendaitems & notes", sync.Details)
	assert.Equal(t, "A", sync.SourceAccount)

	prep := raws[1]
	assert.Equal(t, "Board prep", prep.Title)
	assert.Empty(t, prep.Location)
	assert.Nil(t, prep.Participants)
	assert.Empty(t, prep.Details)
}

func TestParse_DefaultFolderUsesSelfAccount(t *testing.T) {
	opts := ParseOptions{SelfAccount: "me@example.com"}

	raws, _, err := Parse(strings.NewReader(sampleExport), "Calendar/Calendar.xml", "Calendar", opts)
	require.NoError(t, err)
	require.NotEmpty(t, raws)
	assert.Equal(t, "me@example.com", raws[0].SourceAccount)

	assert.Equal(t, "Work", opts.SourceAccount("Work"))
	assert.Equal(t, "Calendar", ParseOptions{}.SourceAccount("Calendar"))
}

func TestParse_MalformedTimestampIsFatal(t *testing.T) {
	doc := `<appointments><appointment>
	  <OPFCalendarEventCopySummary>Broken</OPFCalendarEventCopySummary>
	  <OPFCalendarEventCopyStartTime>08/01/2024 10:00</OPFCalendarEventCopyStartTime>
	  <OPFCalendarEventCopyModDate>2024-01-02T09:30:00</OPFCalendarEventCopyModDate>
	</appointment></appointments>`

	raws, _, err := Parse(strings.NewReader(doc), "B/Calendar.xml", "B", ParseOptions{})
	require.Error(t, err)
	assert.Nil(t, raws)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "B/Calendar.xml", perr.File)
	assert.Equal(t, fieldStartTime, perr.Field)
	assert.Contains(t, err.Error(), "B/Calendar.xml")
	assert.Contains(t, err.Error(), fieldStartTime)
}

func TestParse_MalformedXML(t *testing.T) {
	_, _, err := Parse(strings.NewReader("<appointments><appointment>"), "C/Calendar.xml", "C", ParseOptions{})

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Empty(t, perr.Field)
}

func TestParse_BlankTitleSkipped(t *testing.T) {
	doc := `<appointments><appointment>
	  <OPFCalendarEventCopySummary>  </OPFCalendarEventCopySummary>
	  <OPFCalendarEventCopyStartTime>2024-01-08T10:00:00</OPFCalendarEventCopyStartTime>
	  <OPFCalendarEventCopyModDate>2024-01-02T09:30:00</OPFCalendarEventCopyModDate>
	</appointment></appointments>`

	raws, stats, err := Parse(strings.NewReader(doc), "x", "A", ParseOptions{})
	require.NoError(t, err)
	assert.Empty(t, raws)
	assert.Equal(t, 1, stats.MissingFields)
}

func TestParse_PhraseMatchIsSubstring(t *testing.T) {
	doc := `<appointments><appointment>
	  <OPFCalendarEventCopySummary>Scatter plot review</OPFCalendarEventCopySummary>
	  <OPFCalendarEventCopyStartTime>2024-01-08T10:00:00</OPFCalendarEventCopyStartTime>
	  <OPFCalendarEventCopyModDate>2024-01-02T09:30:00</OPFCalendarEventCopyModDate>
	</appointment></appointments>`

	raws, stats, err := Parse(strings.NewReader(doc), "x", "A", ParseOptions{IgnorePhrases: []string{"cat", " "}})
	require.NoError(t, err)
	assert.Empty(t, raws)
	assert.Equal(t, 1, stats.Ignored)
}

func TestParseStats_Add(t *testing.T) {
	s := ParseStats{Kept: 1, Ignored: 2}
	s.Add(ParseStats{Kept: 3, MissingFields: 1, Reserved: 4})
	assert.Equal(t, ParseStats{Kept: 4, MissingFields: 1, Reserved: 4, Ignored: 2}, s)
}
