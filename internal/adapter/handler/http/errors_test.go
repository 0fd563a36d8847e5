package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/ashwinbuilds/booking-engine/internal/domain/errors"
)

func runErrorMapping(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, writeCheckoutError(c, "hello@ashwinbuilds.com", err))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestWriteCheckoutError(t *testing.T) {
	t.Run("validation maps to 400 with the field", func(t *testing.T) {
		rec, body := runErrorMapping(t, domainErrors.NewValidationError("customer_email", "must be a valid email address"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_ERROR", body["code"])
		assert.Equal(t, "customer_email", body["field"])
	})

	t.Run("configuration maps to 503 with a contact channel", func(t *testing.T) {
		rec, body := runErrorMapping(t, domainErrors.NewConfigurationError("online payment is not available right now, please contact us to complete your booking"))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "hello@ashwinbuilds.com", body["contact_email"])
	})

	t.Run("gateway unavailable maps to 503", func(t *testing.T) {
		rec, _ := runErrorMapping(t, domainErrors.NewGatewayUnavailableError(errors.New("prime timed out")))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("gateway failure maps to 502", func(t *testing.T) {
		rec, _ := runErrorMapping(t, domainErrors.NewGatewayError("the payment order could not be created, please try again or contact us", errors.New("HTTP 500")))
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})

	t.Run("verification failure maps to 422 and surfaces the payment id", func(t *testing.T) {
		rec, body := runErrorMapping(t, domainErrors.NewVerificationFailedError("pay_123", errors.New("signature mismatch")))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "pay_123", body["payment_id"])
		// The internal cause never reaches the customer.
		assert.NotContains(t, rec.Body.String(), "signature mismatch")
	})

	t.Run("not found maps to 404", func(t *testing.T) {
		rec, _ := runErrorMapping(t, domainErrors.NewAttemptNotFoundError("a1"))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("conflict maps to 409", func(t *testing.T) {
		rec, _ := runErrorMapping(t, domainErrors.NewAttemptConflictError("attempt is cancelled and cannot be confirmed"))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("transient maps to 500", func(t *testing.T) {
		rec, _ := runErrorMapping(t, domainErrors.NewTransientError("failed to load the checkout attempt", errors.New("redis down")))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("unknown error maps to 500 without leaking detail", func(t *testing.T) {
		rec, body := runErrorMapping(t, errors.New("pq: relation does not exist"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "INTERNAL_ERROR", body["code"])
		assert.NotContains(t, rec.Body.String(), "pq:")
	})
}
