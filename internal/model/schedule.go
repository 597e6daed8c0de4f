package model

import "time"

// StageLocation is the catch-all location for containers that have been
// docked but not yet moved to a physical storage slot. Entries pointing at
// it never occupy the location ledger.
const StageLocation = "stage"

// Entry type tags. Every inbound appointment is classified as either a
// cell container or a pack container.
const (
	TypeCell = "Cell"
	TypePack = "Pack"
)

// Operational status tags shown as a colored indicator on the schedule board.
const (
	StatusFree      = "free"
	StatusUnloading = "unloading"
	StatusHold      = "hold"
)

// ScheduleEntry is one inbound appointment on the dock schedule.
//
// Fields:
//  ID              – opaque unique id, stable for the entry's lifetime.
//  Date            – calendar date in YYYY-MM-DD form.
//  AppointmentTime – display clock string, e.g. "10:30 AM".
//  Dock            – assigned dock label, e.g. "DOCK-04"; empty means unassigned.
//  Location        – assigned storage slot id; StageLocation when not yet stored.
//  HBL             – house bill of lading reference.
//  Container       – container number.
//  Note            – free-text note.
//  CheckInTime     – driver arrival clock in HH:MM; empty means not checked in.
//  Type            – TypeCell or TypePack.
//  Status          – StatusFree, StatusUnloading or StatusHold.
type ScheduleEntry struct {
	ID              string    // schedules.id
	Date            string    // schedules.date
	AppointmentTime string    // schedules.appointment_time
	Dock            string    // schedules.dock
	Location        string    // schedules.location_id
	HBL             string    // schedules.hbl
	Container       string    // schedules.container
	Note            string    // schedules.note
	CheckInTime     string    // schedules.check_in_time
	Type            string    // schedules.type
	Status          string    // schedules.status
	CreatedAt       time.Time // schedules.created_at
	UpdatedAt       time.Time // schedules.updated_at
}

// CheckedIn reports whether a driver has arrived for this entry.
func (e *ScheduleEntry) CheckedIn() bool {
	return e.CheckInTime != ""
}

// HasDock reports whether the entry currently holds a dock.
func (e *ScheduleEntry) HasDock() bool {
	return e.Dock != ""
}

// EffectiveLocation returns the entry's location, falling back to the
// stage catch-all when the field is empty.
func (e *ScheduleEntry) EffectiveLocation() string {
	if e.Location == "" {
		return StageLocation
	}
	return e.Location
}

// SchedulePatch carries a field-level partial update for a schedule entry.
// Nil pointers leave the corresponding field untouched.
type SchedulePatch struct {
	Date            *string
	AppointmentTime *string
	Dock            *string
	Location        *string
	HBL             *string
	Container       *string
	Note            *string
	CheckInTime     *string
	Type            *string
	Status          *string
}

// Apply copies the non-nil patch fields onto the entry.
func (p *SchedulePatch) Apply(e *ScheduleEntry) {
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.AppointmentTime != nil {
		e.AppointmentTime = *p.AppointmentTime
	}
	if p.Dock != nil {
		e.Dock = *p.Dock
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.HBL != nil {
		e.HBL = *p.HBL
	}
	if p.Container != nil {
		e.Container = *p.Container
	}
	if p.Note != nil {
		e.Note = *p.Note
	}
	if p.CheckInTime != nil {
		e.CheckInTime = *p.CheckInTime
	}
	if p.Type != nil {
		e.Type = *p.Type
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
}
