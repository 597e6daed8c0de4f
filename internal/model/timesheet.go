package model

import "time"

// TimesheetEntry records one worker's shift for the timesheet correction form.
//
// Fields:
//  ID           – opaque unique id.
//  Date         – calendar date in YYYY-MM-DD form.
//  EmployeeName – worker's display name.
//  CheckInTime  – shift start clock in HH:MM.
//  CheckOutTime – shift end clock in HH:MM.
//  Location     – work area the shift was spent in.
//  TotalHours   – computed shift length in hours.
type TimesheetEntry struct {
	ID           string    // timesheets.id
	Date         string    // timesheets.date
	EmployeeName string    // timesheets.employee_name
	CheckInTime  string    // timesheets.check_in_time
	CheckOutTime string    // timesheets.check_out_time
	Location     string    // timesheets.location
	TotalHours   float64   // timesheets.total_hours
	CreatedAt    time.Time // timesheets.created_at
	UpdatedAt    time.Time // timesheets.updated_at
}

// TimesheetPatch carries a partial update for a timesheet entry.
type TimesheetPatch struct {
	Date         *string
	EmployeeName *string
	CheckInTime  *string
	CheckOutTime *string
	Location     *string
	TotalHours   *float64
}

// Apply copies the non-nil patch fields onto the entry.
func (p *TimesheetPatch) Apply(e *TimesheetEntry) {
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.EmployeeName != nil {
		e.EmployeeName = *p.EmployeeName
	}
	if p.CheckInTime != nil {
		e.CheckInTime = *p.CheckInTime
	}
	if p.CheckOutTime != nil {
		e.CheckOutTime = *p.CheckOutTime
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.TotalHours != nil {
		e.TotalHours = *p.TotalHours
	}
}
