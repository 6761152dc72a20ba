package instrumentation

import "strings"

// Cardinality management helpers for metrics.
// Account folder names and operator addresses are unbounded; only their
// bucketed forms are used as labels unless detailed labels are enabled.

// ExtractUserDomain extracts the domain part from an email address.
//
// Example:
//
//	ExtractUserDomain("jane@example.com")  // "example.com"
//	ExtractUserDomain("invalid")           // "unknown"
//	ExtractUserDomain("")                  // "unknown"
func ExtractUserDomain(email string) string {
	if email == "" {
		return StatusUnknown
	}

	parts := strings.Split(email, "@")
	if len(parts) == 2 && parts[1] != "" {
		return strings.ToLower(parts[1])
	}

	return StatusUnknown
}

// Pipeline stages, used as span names ("report.<stage>") and metric labels.
const (
	StageContacts = "contacts"
	StageCollect  = "collect"
	StageWindow   = "window"
	StageDedup    = "dedup"
	StageWrite    = "write"
)

// Event counts recorded per stage in weeklycal_events_total.
const (
	EventsRaw      = "raw"
	EventsInWindow = "in_window"
	EventsCombined = "combined"
	EventsOutput   = "output"
)

// Appointment parse results recorded in weeklycal_appointments_total.
const (
	AppointmentKept          = "kept"
	AppointmentMissingFields = "missing_fields"
	AppointmentReserved      = "reserved_title"
	AppointmentIgnored       = "ignored_phrase"
)
