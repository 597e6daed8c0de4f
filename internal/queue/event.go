// Package queue defines the message payloads exchanged over the broker and
// the background consumer that records dock activity.
package queue

// CheckInEvent is published when a driver checks in against a schedule
// entry. Downstream consumers (gate display, SMS glue) get everything they
// need without querying the primary store.
type CheckInEvent struct {
	EntryID         string `json:"entry_id"`
	Date            string `json:"date"`
	HBL             string `json:"hbl"`
	Container       string `json:"container"`
	AppointmentTime string `json:"appointment_time"`
	CheckInTime     string `json:"check_in_time"`
}

// DockAssignedEvent is published when the reconciler grants a dock door.
type DockAssignedEvent struct {
	EntryID   string `json:"entry_id"`
	Date      string `json:"date"`
	Container string `json:"container"`
	Dock      string `json:"dock"`
	Location  string `json:"location"`
}

// Queue names. Durable, declared idempotently by both ends.
const (
	CheckInQueue      = "schedule.checked_in"
	DockAssignedQueue = "schedule.dock_assigned"
)
