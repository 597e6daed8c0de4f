package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/minsu-han/warehouse-inbound/internal/repository"
)

// SettingsHandler serves the singleton application settings record.
type SettingsHandler struct {
	Store repository.SettingsStore
}

func NewSettingsHandler(store repository.SettingsStore) *SettingsHandler {
	return &SettingsHandler{Store: store}
}

// Get handles GET /v1/settings.
func (h *SettingsHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	s, err := h.Store.Get(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, toSettingsDTO(s))
}

// Update handles PUT /v1/settings with the full settings payload.
func (h *SettingsHandler) Update(c echo.Context) error {
	var body struct {
		LogoURL   string `json:"logo_url"`
		UserImage string `json:"user_image"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	s, err := h.Store.Update(ctx, strings.TrimSpace(body.LogoURL), strings.TrimSpace(body.UserImage))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, toSettingsDTO(s))
}
