package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/minsu-han/warehouse-inbound/internal/config"
	"github.com/minsu-han/warehouse-inbound/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg config.Config
}

func NewAuthHandler(cfg config.Config) *AuthHandler {
	return &AuthHandler{Cfg: cfg}
}

// ----- DTOs -----

type tokenReq struct {
	Operator string `json:"operator"`
	Key      string `json:"key"`
}

type tokenResp struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

// Token exchanges a shared operator key for a short-lived access token.
// The key is compared against the bcrypt hash from configuration; the
// service holds no user table.
func (h *AuthHandler) Token(c echo.Context) error {
	var req tokenReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Operator = strings.TrimSpace(req.Operator)
	if req.Operator == "" || req.Key == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "operator/key required"})
	}
	if !utils.VerifyKey(h.Cfg.OperatorKeyHash, req.Key) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid operator key"})
	}
	at, err := utils.NewAccessToken(h.Cfg.JWTSecret, req.Operator, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token issue failed"})
	}
	return c.JSON(http.StatusOK, tokenResp{Token: at.Token, Expires: at.Exp})
}
