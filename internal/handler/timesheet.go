package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/minsu-han/warehouse-inbound/internal/exceldate"
	"github.com/minsu-han/warehouse-inbound/internal/model"
	"github.com/minsu-han/warehouse-inbound/internal/repository"
)

// TimesheetHandler serves the timesheet correction form.
type TimesheetHandler struct {
	Store repository.TimesheetStore
}

func NewTimesheetHandler(store repository.TimesheetStore) *TimesheetHandler {
	return &TimesheetHandler{Store: store}
}

type timesheetWriteDTO struct {
	Date         string   `json:"date"`
	EmployeeName string   `json:"employee_name"`
	CheckInTime  string   `json:"check_in_time"`
	CheckOutTime string   `json:"check_out_time"`
	Location     string   `json:"location"`
	TotalHours   *float64 `json:"total_hours"`
}

type timesheetPatchDTO struct {
	Date         *string  `json:"date"`
	EmployeeName *string  `json:"employee_name"`
	CheckInTime  *string  `json:"check_in_time"`
	CheckOutTime *string  `json:"check_out_time"`
	Location     *string  `json:"location"`
	TotalHours   *float64 `json:"total_hours"`
}

// shiftHours derives the shift length from the in/out clocks. Overnight
// shifts wrap past midnight.
func shiftHours(in, out string) float64 {
	if in == "" || out == "" {
		return 0
	}
	mins := exceldate.ClockToMinutes(out) - exceldate.ClockToMinutes(in)
	if mins < 0 {
		mins += 24 * 60
	}
	return float64(mins) / 60.0
}

// List handles GET /v1/timesheets with an optional ?date= filter.
func (h *TimesheetHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	items, err := h.Store.List(ctx, strings.TrimSpace(c.QueryParam("date")))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	out := make([]timesheetDTO, 0, len(items))
	for _, e := range items {
		out = append(out, toTimesheetDTO(e))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// Create handles POST /v1/timesheets.  When total hours are omitted they
// are derived from the check-in and check-out clocks.
func (h *TimesheetHandler) Create(c echo.Context) error {
	var body timesheetWriteDTO
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(body.Date) == "" || strings.TrimSpace(body.EmployeeName) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date and employee_name required"})
	}

	e := model.TimesheetEntry{
		Date:         strings.TrimSpace(body.Date),
		EmployeeName: strings.TrimSpace(body.EmployeeName),
		CheckInTime:  strings.TrimSpace(body.CheckInTime),
		CheckOutTime: strings.TrimSpace(body.CheckOutTime),
		Location:     strings.TrimSpace(body.Location),
	}
	if body.TotalHours != nil {
		e.TotalHours = *body.TotalHours
	} else {
		e.TotalHours = shiftHours(e.CheckInTime, e.CheckOutTime)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	created, err := h.Store.Create(ctx, e)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusCreated, toTimesheetDTO(created))
}

// Update handles PUT /v1/timesheets/:id.  A clock change without explicit
// total hours recomputes the total from the updated clocks.
func (h *TimesheetHandler) Update(c echo.Context) error {
	var body timesheetPatchDTO
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	patch := model.TimesheetPatch{
		Date:         body.Date,
		EmployeeName: body.EmployeeName,
		CheckInTime:  body.CheckInTime,
		CheckOutTime: body.CheckOutTime,
		Location:     body.Location,
		TotalHours:   body.TotalHours,
	}
	e, err := h.Store.Update(ctx, c.Param("id"), patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "timesheet not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	// A clock change without explicit hours recomputes the total from
	// the clocks now on record.
	if body.TotalHours == nil && (body.CheckInTime != nil || body.CheckOutTime != nil) {
		total := shiftHours(e.CheckInTime, e.CheckOutTime)
		e, err = h.Store.Update(ctx, c.Param("id"), model.TimesheetPatch{TotalHours: &total})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
	}
	return c.JSON(http.StatusOK, toTimesheetDTO(e))
}

// Delete handles DELETE /v1/timesheets/:id.
func (h *TimesheetHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Store.Delete(ctx, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "timesheet not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.NoContent(http.StatusNoContent)
}
