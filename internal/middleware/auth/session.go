package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SessionHeader carries the per-visit token issued by the session endpoint.
// Every checkout mutation must present it; tokens are anonymous and only
// prove the caller went through the session handshake.
const SessionHeader = "X-Booking-Session"

const sessionTTL = 2 * time.Hour

// sessionContextKey is the echo context key for the verified session id.
const sessionContextKey = "booking_session_id"

// SessionConfig holds the configuration for the session middleware.
type SessionConfig struct {
	Secret string
	Logger *zap.Logger
}

// IssueSessionToken mints a signed anonymous session token. The jti doubles
// as the session id checkout attempts are logged under.
func IssueSessionToken(secret string, now time.Time) (token string, sessionID string, err error) {
	sessionID = uuid.NewString()
	claims := jwt.RegisteredClaims{
		ID:        sessionID,
		Subject:   "booking-session",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err = t.SignedString([]byte(secret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, sessionID, nil
}

// SessionMiddleware validates the session token on checkout mutations so a
// plain cross-site form post cannot start or confirm a payment.
func SessionMiddleware(config SessionConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := c.Request().Header.Get(SessionHeader)
			if tokenString == "" {
				config.Logger.Warn("missing session header",
					zap.String("path", c.Request().URL.Path),
					zap.String("method", c.Request().Method))
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "booking session required",
					"code":  "MISSING_SESSION",
				})
			}

			token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(config.Secret), nil
			})
			if err != nil || !token.Valid {
				config.Logger.Warn("session token validation failed",
					zap.Error(err),
					zap.String("path", c.Request().URL.Path))
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "invalid or expired booking session",
					"code":  "INVALID_SESSION",
				})
			}

			claims, ok := token.Claims.(*jwt.RegisteredClaims)
			if !ok || claims.ID == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "invalid session claims",
					"code":  "INVALID_CLAIMS",
				})
			}

			c.Set(sessionContextKey, claims.ID)
			return next(c)
		}
	}
}

// SessionID returns the verified session id set by SessionMiddleware, or an
// empty string on unguarded routes.
func SessionID(c echo.Context) string {
	id, _ := c.Get(sessionContextKey).(string)
	return id
}
