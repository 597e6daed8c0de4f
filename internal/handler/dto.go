package handler

import (
	"time"

	"github.com/minsu-han/warehouse-inbound/internal/model"
)

// Wire shapes for the JSON API. The model package keeps plain structs so
// the repositories stay independent of field naming on the wire; handlers
// own the translation in both directions.

type scheduleDTO struct {
	ID              string    `json:"id"`
	Date            string    `json:"date"`
	AppointmentTime string    `json:"appointment_time"`
	Dock            string    `json:"dock"`
	Location        string    `json:"location"`
	HBL             string    `json:"hbl"`
	Container       string    `json:"container"`
	Note            string    `json:"note"`
	CheckInTime     string    `json:"check_in_time"`
	Type            string    `json:"type"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func toScheduleDTO(e model.ScheduleEntry) scheduleDTO {
	return scheduleDTO{
		ID:              e.ID,
		Date:            e.Date,
		AppointmentTime: e.AppointmentTime,
		Dock:            e.Dock,
		Location:        e.Location,
		HBL:             e.HBL,
		Container:       e.Container,
		Note:            e.Note,
		CheckInTime:     e.CheckInTime,
		Type:            e.Type,
		Status:          e.Status,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func toScheduleDTOs(entries []model.ScheduleEntry) []scheduleDTO {
	out := make([]scheduleDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toScheduleDTO(e))
	}
	return out
}

// scheduleWriteDTO carries no dock, location or check-in fields: created
// entries always start unassigned at the stage catch-all, and those
// fields only move through the reconciler endpoints afterwards.
type scheduleWriteDTO struct {
	Date            string `json:"date"`
	AppointmentTime string `json:"appointment_time"`
	HBL             string `json:"hbl"`
	Container       string `json:"container"`
	Note            string `json:"note"`
	Type            string `json:"type"`
	Status          string `json:"status"`
}

func (d scheduleWriteDTO) toEntry() model.ScheduleEntry {
	return model.ScheduleEntry{
		Date:            d.Date,
		AppointmentTime: d.AppointmentTime,
		Location:        model.StageLocation,
		HBL:             d.HBL,
		Container:       d.Container,
		Note:            d.Note,
		Type:            d.Type,
		Status:          d.Status,
	}
}

type schedulePatchDTO struct {
	Date            *string `json:"date"`
	AppointmentTime *string `json:"appointment_time"`
	HBL             *string `json:"hbl"`
	Container       *string `json:"container"`
	Note            *string `json:"note"`
	Type            *string `json:"type"`
	Status          *string `json:"status"`
}

// toPatch deliberately omits dock, location and check-in time: those
// fields only move through the reconciler endpoints.
func (d schedulePatchDTO) toPatch() model.SchedulePatch {
	return model.SchedulePatch{
		Date:            d.Date,
		AppointmentTime: d.AppointmentTime,
		HBL:             d.HBL,
		Container:       d.Container,
		Note:            d.Note,
		Type:            d.Type,
		Status:          d.Status,
	}
}

type timesheetDTO struct {
	ID           string    `json:"id"`
	Date         string    `json:"date"`
	EmployeeName string    `json:"employee_name"`
	CheckInTime  string    `json:"check_in_time"`
	CheckOutTime string    `json:"check_out_time"`
	Location     string    `json:"location"`
	TotalHours   float64   `json:"total_hours"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toTimesheetDTO(e model.TimesheetEntry) timesheetDTO {
	return timesheetDTO{
		ID:           e.ID,
		Date:         e.Date,
		EmployeeName: e.EmployeeName,
		CheckInTime:  e.CheckInTime,
		CheckOutTime: e.CheckOutTime,
		Location:     e.Location,
		TotalHours:   e.TotalHours,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

type outboundDTO struct {
	ID              string    `json:"id"`
	Date            string    `json:"date"`
	AppointmentTime string    `json:"appointment_time"`
	Carrier         string    `json:"carrier"`
	Reference       string    `json:"reference"`
	Destination     string    `json:"destination"`
	Note            string    `json:"note"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func toOutboundDTO(e model.OutboundEntry) outboundDTO {
	return outboundDTO{
		ID:              e.ID,
		Date:            e.Date,
		AppointmentTime: e.AppointmentTime,
		Carrier:         e.Carrier,
		Reference:       e.Reference,
		Destination:     e.Destination,
		Note:            e.Note,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

type vasDTO struct {
	ID              string    `json:"id"`
	Date            string    `json:"date"`
	AppointmentTime string    `json:"appointment_time"`
	Client          string    `json:"client"`
	ServiceType     string    `json:"service_type"`
	Quantity        int       `json:"quantity"`
	Note            string    `json:"note"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func toVASDTO(e model.VASEntry) vasDTO {
	return vasDTO{
		ID:              e.ID,
		Date:            e.Date,
		AppointmentTime: e.AppointmentTime,
		Client:          e.Client,
		ServiceType:     e.ServiceType,
		Quantity:        e.Quantity,
		Note:            e.Note,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

type settingsDTO struct {
	LogoURL   string    `json:"logo_url"`
	UserImage string    `json:"user_image"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toSettingsDTO(s model.Settings) settingsDTO {
	return settingsDTO{LogoURL: s.LogoURL, UserImage: s.UserImage, UpdatedAt: s.UpdatedAt}
}
