package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/minsu-han/warehouse-inbound/internal/ledger"
	"github.com/minsu-han/warehouse-inbound/internal/model"
	"github.com/minsu-han/warehouse-inbound/internal/repository"
	"github.com/minsu-han/warehouse-inbound/internal/schedule"
)

// DockHandler exposes the dock door roster: which doors exist, which are
// occupied by a checked-in container and which are administratively
// disabled.
type DockHandler struct {
	Store  repository.ScheduleStore
	Ledger *ledger.Ledger
}

func NewDockHandler(store repository.ScheduleStore, led *ledger.Ledger) *DockHandler {
	return &DockHandler{Store: store, Ledger: led}
}

type dockStatusDTO struct {
	Number   int    `json:"number"`
	Label    string `json:"label"`
	Occupied bool   `json:"occupied"`
	Disabled bool   `json:"disabled"`
}

// List handles GET /v1/docks.  Occupancy is computed over the whole
// schedule rather than stored, so a door freed by deleting its entry
// shows up immediately.
func (h *DockHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	entries, err := h.Store.List(ctx, "")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	occupied := schedule.OccupiedDocks(entries)

	out := make([]dockStatusDTO, 0)
	for _, n := range schedule.DockNumbers() {
		_, occ := occupied[n]
		out = append(out, dockStatusDTO{
			Number:   n,
			Label:    schedule.DockLabel(n),
			Occupied: occ,
			Disabled: h.Ledger.DockStatus(n) == model.SlotDisabled,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"docks": out})
}

// SetStatus handles PUT /v1/docks/:num with {"status": ...} and enables
// or disables one door for maintenance.
func (h *DockHandler) SetStatus(c echo.Context) error {
	n, err := strconv.Atoi(c.Param("num"))
	if err != nil || !schedule.ValidDock(n) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no such dock door"})
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
	h.Ledger.SetDockStatus(n, body.Status)
	return c.JSON(http.StatusOK, echo.Map{"number": n, "status": body.Status})
}
