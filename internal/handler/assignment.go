package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/minsu-han/warehouse-inbound/internal/queue"
	"github.com/minsu-han/warehouse-inbound/internal/repository"
	"github.com/minsu-han/warehouse-inbound/internal/schedule"
	"github.com/minsu-han/warehouse-inbound/internal/service"
)

// AssignmentHandler exposes the reconciler transitions: driver check-in,
// dock assignment and location moves.  All three run under the
// reconciler's mutual exclusion so the ledger and the schedule board
// cannot drift apart under concurrent operators.
type AssignmentHandler struct {
	Rec *schedule.Reconciler
	Pub *service.Publisher
	Log zerolog.Logger
}

func NewAssignmentHandler(rec *schedule.Reconciler, pub *service.Publisher, log zerolog.Logger) *AssignmentHandler {
	return &AssignmentHandler{Rec: rec, Pub: pub, Log: log}
}

// CheckIn handles POST /v1/schedules/:id/check-in.  An omitted clock
// defaults to the current wall time.
func (h *AssignmentHandler) CheckIn(c echo.Context) error {
	var body struct {
		Clock string `json:"clock"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	clock := strings.TrimSpace(body.Clock)
	if clock == "" {
		clock = time.Now().Format("15:04")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	e, err := h.Rec.CheckIn(ctx, c.Param("id"), clock)
	if err != nil {
		return h.reconcileError(c, err)
	}

	if err := h.Pub.PublishCheckIn(ctx, queue.CheckInEvent{
		EntryID:         e.ID,
		Date:            e.Date,
		HBL:             e.HBL,
		Container:       e.Container,
		AppointmentTime: e.AppointmentTime,
		CheckInTime:     e.CheckInTime,
	}); err != nil {
		// The check-in itself succeeded; a broker outage only costs the
		// downstream notification.
		h.Log.Warn().Err(err).Str("entry", e.ID).Msg("check-in event publish failed")
	}
	return c.JSON(http.StatusOK, toScheduleDTO(e))
}

// CancelCheckIn handles DELETE /v1/schedules/:id/check-in.  Cancelling
// returns the entry all the way to its pre-arrival state: the dock is
// released and the location resets to stage.
func (h *AssignmentHandler) CancelCheckIn(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	e, err := h.Rec.CancelCheckIn(ctx, c.Param("id"))
	if err != nil {
		return h.reconcileError(c, err)
	}
	return c.JSON(http.StatusOK, toScheduleDTO(e))
}

// AssignDock handles POST /v1/schedules/:id/dock.  The dock is requested
// by number; an occupied or disabled door yields 409, an entry that has
// not checked in yields 422.
func (h *AssignmentHandler) AssignDock(c echo.Context) error {
	var body struct {
		Dock int `json:"dock"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	e, err := h.Rec.AssignDock(ctx, c.Param("id"), body.Dock)
	if err != nil {
		return h.reconcileError(c, err)
	}

	if err := h.Pub.PublishDockAssigned(ctx, queue.DockAssignedEvent{
		EntryID:   e.ID,
		Date:      e.Date,
		Container: e.Container,
		Dock:      e.Dock,
		Location:  e.Location,
	}); err != nil {
		h.Log.Warn().Err(err).Str("entry", e.ID).Msg("dock event publish failed")
	}
	return c.JSON(http.StatusOK, toScheduleDTO(e))
}

// ChangeLocation handles POST /v1/schedules/:id/location.  An empty
// location sends the container back to the stage catch-all.
func (h *AssignmentHandler) ChangeLocation(c echo.Context) error {
	var body struct {
		Location string `json:"location"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	e, err := h.Rec.ChangeLocation(ctx, c.Param("id"), strings.TrimSpace(body.Location))
	if err != nil {
		return h.reconcileError(c, err)
	}
	return c.JSON(http.StatusOK, toScheduleDTO(e))
}

// reconcileError maps reconciler sentinels onto HTTP statuses.
func (h *AssignmentHandler) reconcileError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
	case errors.Is(err, schedule.ErrDockUnavailable):
		return c.JSON(http.StatusConflict, echo.Map{"error": "dock occupied or disabled"})
	case errors.Is(err, schedule.ErrUnknownDock):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no such dock door"})
	case errors.Is(err, schedule.ErrNotCheckedIn):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "driver has not checked in"})
	case errors.Is(err, schedule.ErrNoDock):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "no dock assigned"})
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "operation timed out"})
	default:
		h.Log.Error().Err(err).Msg("reconcile failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
}
