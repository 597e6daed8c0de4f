package handler // handler package contains the inbound schedule endpoints

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/minsu-han/warehouse-inbound/internal/model"
	"github.com/minsu-han/warehouse-inbound/internal/repository"
	"github.com/minsu-han/warehouse-inbound/internal/schedule"
)

// dbTimeout bounds every store call made from a handler.
const dbTimeout = 5 * time.Second

// ScheduleHandler bundles dependencies for the schedule CRUD endpoints.
// Reconciler-driven transitions (check-in, dock, location) live in
// AssignmentHandler; this handler never touches those fields.
type ScheduleHandler struct {
	Store repository.ScheduleStore
	Rec   *schedule.Reconciler
	Log   zerolog.Logger
}

func NewScheduleHandler(store repository.ScheduleStore, rec *schedule.Reconciler, log zerolog.Logger) *ScheduleHandler {
	return &ScheduleHandler{Store: store, Rec: rec, Log: log}
}

// List handles GET /v1/schedules.  With ?date= the result is that day's
// plan ordered by appointment time; without it, all entries newest first.
// Every reload also runs the ledger sweep, so slots referenced by entries
// are re-disabled even after a lost ledger write.
func (h *ScheduleHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Rec.Resync(ctx); err != nil {
		h.Log.Warn().Err(err).Msg("ledger sweep failed")
	}

	items, err := h.Store.List(ctx, strings.TrimSpace(c.QueryParam("date")))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": toScheduleDTOs(items)})
}

// Get handles GET /v1/schedules/:id.
func (h *ScheduleHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	e, err := h.Store.Get(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, toScheduleDTO(e))
}

// CreateBulk handles POST /v1/schedules.  The body carries the full plan
// for one or more dates; any existing entries for those dates are replaced
// rather than merged, so re-submitting a day is an overwrite.
func (h *ScheduleHandler) CreateBulk(c echo.Context) error {
	var body struct {
		Entries []scheduleWriteDTO `json:"entries"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if len(body.Entries) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "entries required"})
	}

	entries := make([]model.ScheduleEntry, 0, len(body.Entries))
	for i, d := range body.Entries {
		if strings.TrimSpace(d.Date) == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "entry date required", "index": i})
		}
		e := d.toEntry()
		if e.Status == "" {
			e.Status = model.StatusFree
		}
		entries = append(entries, e)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	n, err := h.Store.CreateBulk(ctx, entries)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	h.Log.Info().Int("created", n).Msg("schedule bulk create")
	return c.JSON(http.StatusCreated, echo.Map{"created": n})
}

// Update handles PUT /v1/schedules/:id with a partial body.  Dock,
// location and check-in fields are ignored here; they only change through
// the reconciler endpoints so the ledger stays consistent.
func (h *ScheduleHandler) Update(c echo.Context) error {
	var body schedulePatchDTO
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	e, err := h.Store.Update(ctx, c.Param("id"), body.toPatch())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, toScheduleDTO(e))
}

// Delete handles DELETE /v1/schedules/:id and DELETE /v1/schedules?date=.
// With an id it removes one entry; the collection route with ?date=
// clears a whole day.
func (h *ScheduleHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Store.Delete(ctx, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteByDate handles DELETE /v1/schedules?date= and clears every entry
// for the requested day.
func (h *ScheduleHandler) DeleteByDate(c echo.Context) error {
	date := strings.TrimSpace(c.QueryParam("date"))
	if date == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date query parameter required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	n, err := h.Store.DeleteByDate(ctx, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	h.Log.Info().Str("date", date).Int("deleted", n).Msg("schedule day cleared")
	return c.JSON(http.StatusOK, echo.Map{"deleted": n})
}
