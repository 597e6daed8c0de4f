package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/minsu-han/warehouse-inbound/internal/model"
	"github.com/minsu-han/warehouse-inbound/internal/repository"
)

// OutboundHandler serves the outbound pickup schedule.  It mirrors the
// inbound schedule's replace-per-date bulk create but has no reconciler:
// outbound loads never hold docks or storage slots.
type OutboundHandler struct {
	Store repository.OutboundStore
}

func NewOutboundHandler(store repository.OutboundStore) *OutboundHandler {
	return &OutboundHandler{Store: store}
}

type outboundWriteDTO struct {
	Date            string `json:"date"`
	AppointmentTime string `json:"appointment_time"`
	Carrier         string `json:"carrier"`
	Reference       string `json:"reference"`
	Destination     string `json:"destination"`
	Note            string `json:"note"`
}

type outboundPatchDTO struct {
	Date            *string `json:"date"`
	AppointmentTime *string `json:"appointment_time"`
	Carrier         *string `json:"carrier"`
	Reference       *string `json:"reference"`
	Destination     *string `json:"destination"`
	Note            *string `json:"note"`
}

// List handles GET /v1/outbound with an optional ?date= filter.
func (h *OutboundHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	items, err := h.Store.List(ctx, strings.TrimSpace(c.QueryParam("date")))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	out := make([]outboundDTO, 0, len(items))
	for _, e := range items {
		out = append(out, toOutboundDTO(e))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// CreateBulk handles POST /v1/outbound, replacing any existing entries
// for the dates present in the body.
func (h *OutboundHandler) CreateBulk(c echo.Context) error {
	var body struct {
		Entries []outboundWriteDTO `json:"entries"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if len(body.Entries) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "entries required"})
	}

	entries := make([]model.OutboundEntry, 0, len(body.Entries))
	for i, d := range body.Entries {
		if strings.TrimSpace(d.Date) == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "entry date required", "index": i})
		}
		entries = append(entries, model.OutboundEntry{
			Date:            d.Date,
			AppointmentTime: d.AppointmentTime,
			Carrier:         d.Carrier,
			Reference:       d.Reference,
			Destination:     d.Destination,
			Note:            d.Note,
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	n, err := h.Store.CreateBulk(ctx, entries)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"created": n})
}

// Update handles PUT /v1/outbound/:id.
func (h *OutboundHandler) Update(c echo.Context) error {
	var body outboundPatchDTO
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	e, err := h.Store.Update(ctx, c.Param("id"), model.OutboundPatch{
		Date:            body.Date,
		AppointmentTime: body.AppointmentTime,
		Carrier:         body.Carrier,
		Reference:       body.Reference,
		Destination:     body.Destination,
		Note:            body.Note,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "outbound entry not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, toOutboundDTO(e))
}

// Delete handles DELETE /v1/outbound/:id.
func (h *OutboundHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Store.Delete(ctx, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "outbound entry not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.NoContent(http.StatusNoContent)
}
