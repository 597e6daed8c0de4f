package model

import "time"

// OutboundEntry is one outbound pickup appointment. It mirrors the inbound
// schedule shape minus dock/location assignment; outbound loads are staged
// by the shipping team rather than assigned through the reconciler.
type OutboundEntry struct {
	ID              string    // outbound.id
	Date            string    // outbound.date
	AppointmentTime string    // outbound.appointment_time
	Carrier         string    // outbound.carrier
	Reference       string    // outbound.reference
	Destination     string    // outbound.destination
	Note            string    // outbound.note
	CreatedAt       time.Time // outbound.created_at
	UpdatedAt       time.Time // outbound.updated_at
}

// OutboundPatch carries a partial update for an outbound entry.
type OutboundPatch struct {
	Date            *string
	AppointmentTime *string
	Carrier         *string
	Reference       *string
	Destination     *string
	Note            *string
}

// Apply copies the non-nil patch fields onto the entry.
func (p *OutboundPatch) Apply(e *OutboundEntry) {
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.AppointmentTime != nil {
		e.AppointmentTime = *p.AppointmentTime
	}
	if p.Carrier != nil {
		e.Carrier = *p.Carrier
	}
	if p.Reference != nil {
		e.Reference = *p.Reference
	}
	if p.Destination != nil {
		e.Destination = *p.Destination
	}
	if p.Note != nil {
		e.Note = *p.Note
	}
}
