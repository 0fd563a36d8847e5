package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ashwinbuilds/booking-engine/internal/middleware/auth"
)

type SessionHandler struct {
	secret string
	logger *zap.Logger
}

func NewSessionHandler(secret string, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{secret: secret, logger: logger}
}

// CreateSession handles GET /api/v1/checkout/session. The booking page calls
// this once on load; the token it gets back must accompany every checkout
// mutation.
func (h *SessionHandler) CreateSession(c echo.Context) error {
	token, sessionID, err := auth.IssueSessionToken(h.secret, time.Now())
	if err != nil {
		h.logger.Error("failed to issue session token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "failed to start a booking session",
		})
	}

	h.logger.Debug("booking session issued", zap.String("session_id", sessionID))
	return c.JSON(http.StatusOK, echo.Map{
		"token":  token,
		"header": auth.SessionHeader,
	})
}
