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

// VASHandler serves the value-added-service job schedule.
type VASHandler struct {
	Store repository.VASStore
}

func NewVASHandler(store repository.VASStore) *VASHandler {
	return &VASHandler{Store: store}
}

type vasWriteDTO struct {
	Date            string `json:"date"`
	AppointmentTime string `json:"appointment_time"`
	Client          string `json:"client"`
	ServiceType     string `json:"service_type"`
	Quantity        int    `json:"quantity"`
	Note            string `json:"note"`
}

type vasPatchDTO struct {
	Date            *string `json:"date"`
	AppointmentTime *string `json:"appointment_time"`
	Client          *string `json:"client"`
	ServiceType     *string `json:"service_type"`
	Quantity        *int    `json:"quantity"`
	Note            *string `json:"note"`
}

// List handles GET /v1/vas with an optional ?date= filter.
func (h *VASHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	items, err := h.Store.List(ctx, strings.TrimSpace(c.QueryParam("date")))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	out := make([]vasDTO, 0, len(items))
	for _, e := range items {
		out = append(out, toVASDTO(e))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// CreateBulk handles POST /v1/vas, replacing any existing jobs for the
// dates present in the body.
func (h *VASHandler) CreateBulk(c echo.Context) error {
	var body struct {
		Entries []vasWriteDTO `json:"entries"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if len(body.Entries) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "entries required"})
	}

	entries := make([]model.VASEntry, 0, len(body.Entries))
	for i, d := range body.Entries {
		if strings.TrimSpace(d.Date) == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "entry date required", "index": i})
		}
		entries = append(entries, model.VASEntry{
			Date:            d.Date,
			AppointmentTime: d.AppointmentTime,
			Client:          d.Client,
			ServiceType:     d.ServiceType,
			Quantity:        d.Quantity,
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

// Update handles PUT /v1/vas/:id.
func (h *VASHandler) Update(c echo.Context) error {
	var body vasPatchDTO
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	e, err := h.Store.Update(ctx, c.Param("id"), model.VASPatch{
		Date:            body.Date,
		AppointmentTime: body.AppointmentTime,
		Client:          body.Client,
		ServiceType:     body.ServiceType,
		Quantity:        body.Quantity,
		Note:            body.Note,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "vas job not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, toVASDTO(e))
}

// Delete handles DELETE /v1/vas/:id.
func (h *VASHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Store.Delete(ctx, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "vas job not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.NoContent(http.StatusNoContent)
}
