package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/minsu-han/warehouse-inbound/internal/ledger"
	"github.com/minsu-han/warehouse-inbound/internal/model"
	"github.com/minsu-han/warehouse-inbound/internal/schedule"
)

// LocationHandler exposes the storage-slot ledger.  All reads come
// straight from the in-memory ledger; mutations persist through its
// backing store but memory stays authoritative when the save fails.
type LocationHandler struct {
	Ledger *ledger.Ledger
	Rec    *schedule.Reconciler
}

func NewLocationHandler(led *ledger.Ledger, rec *schedule.Reconciler) *LocationHandler {
	return &LocationHandler{Ledger: led, Rec: rec}
}

// List handles GET /v1/locations and returns the status of every slot.
func (h *LocationHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"locations": h.Ledger.Statuses()})
}

// Available handles GET /v1/locations/available and returns the sorted
// list of slots currently open for putaway.
func (h *LocationHandler) Available(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"available": h.Ledger.AvailableSlots()})
}

// Toggle handles POST /v1/locations/:id/toggle and flips one slot between
// available and disabled.  Unknown slot ids are created disabled first,
// so toggling an unseeded slot makes it available.
func (h *LocationHandler) Toggle(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" || id == model.StageLocation {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location id"})
	}
	return c.JSON(http.StatusOK, echo.Map{"locations": h.Ledger.Toggle(id)})
}

// SetStatus handles PUT /v1/locations/:id with {"status": ...}.
func (h *LocationHandler) SetStatus(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" || id == model.StageLocation {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location id"})
	}
	var body struct {
		Status model.SlotStatus `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !body.Status.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be available or disabled"})
	}
	h.Ledger.SetStatus(id, body.Status)
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": body.Status})
}

// Reset handles POST /v1/locations/reset and returns every slot to its
// seeded state, then re-marks slots still referenced by the schedule so
// the board and the ledger agree.
func (h *LocationHandler) Reset(c echo.Context) error {
	h.Ledger.Reset()

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	if err := h.Rec.Resync(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "resync failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"locations": h.Ledger.Statuses()})
}
