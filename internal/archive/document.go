package archive

// Element and field names of the OLM calendar export referenced by the parser.
const (
	elemAppointment = "appointment"
	fieldStartTime  = "OPFCalendarEventCopyStartTime"
	fieldModDate    = "OPFCalendarEventCopyModDate"
)

// TimestampLayout is the layout of start and modification times in an export.
const TimestampLayout = "2006-01-02T15:04:05"

// xmlText is an optional text element; nil means the element was absent.
type xmlText struct {
	Value string `xml:",chardata"`
}

func (t *xmlText) text() (string, bool) {
	if t == nil {
		return "", false
	}
	return t.Value, true
}

type xmlAttendee struct {
	Address string `xml:"OPFCalendarAttendeeAddress,attr"`
}

type xmlAttendeeList struct {
	Attendees []xmlAttendee `xml:"appointmentAttendee"`
}

// xmlAppointment mirrors the direct children of an <appointment> element.
type xmlAppointment struct {
	Summary     *xmlText         `xml:"OPFCalendarEventCopySummary"`
	StartTime   *xmlText         `xml:"OPFCalendarEventCopyStartTime"`
	ModDate     *xmlText         `xml:"OPFCalendarEventCopyModDate"`
	Location    *xmlText         `xml:"OPFCalendarEventCopyLocation"`
	Attendees   *xmlAttendeeList `xml:"OPFCalendarEventCopyAttendeeList"`
	Description *xmlText         `xml:"OPFCalendarEventCopyDescription"`
}
