package model

import "time"

// VASEntry is one value-added-service job (relabeling, kitting, repack)
// scheduled against the warehouse floor.
type VASEntry struct {
	ID              string    // vas.id
	Date            string    // vas.date
	AppointmentTime string    // vas.appointment_time
	Client          string    // vas.client
	ServiceType     string    // vas.service_type
	Quantity        int       // vas.quantity
	Note            string    // vas.note
	CreatedAt       time.Time // vas.created_at
	UpdatedAt       time.Time // vas.updated_at
}

// VASPatch carries a partial update for a VAS entry.
type VASPatch struct {
	Date            *string
	AppointmentTime *string
	Client          *string
	ServiceType     *string
	Quantity        *int
	Note            *string
}

// Apply copies the non-nil patch fields onto the entry.
func (p *VASPatch) Apply(e *VASEntry) {
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.AppointmentTime != nil {
		e.AppointmentTime = *p.AppointmentTime
	}
	if p.Client != nil {
		e.Client = *p.Client
	}
	if p.ServiceType != nil {
		e.ServiceType = *p.ServiceType
	}
	if p.Quantity != nil {
		e.Quantity = *p.Quantity
	}
	if p.Note != nil {
		e.Note = *p.Note
	}
}
