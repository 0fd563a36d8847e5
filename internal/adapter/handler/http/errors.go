package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	domainErrors "github.com/ashwinbuilds/booking-engine/internal/domain/errors"
)

// writeCheckoutError maps pipeline errors onto HTTP responses. The type
// decides the status; the message is already customer-safe by construction.
func writeCheckoutError(c echo.Context, contactEmail string, err error) error {
	var ce *domainErrors.CheckoutError
	if !errors.As(err, &ce) {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "something went wrong, please try again",
			"code":  "INTERNAL_ERROR",
		})
	}

	body := echo.Map{
		"error": ce.Message,
		"code":  ce.Type,
	}
	if ce.Field != "" {
		body["field"] = ce.Field
	}
	if ce.PaymentID != "" {
		body["payment_id"] = ce.PaymentID
	}

	switch ce.Type {
	case domainErrors.ErrTypeValidation:
		return c.JSON(http.StatusBadRequest, body)
	case domainErrors.ErrTypeConfiguration, domainErrors.ErrTypeGatewayUnavailable:
		// Payment is off; give the customer a working contact channel.
		if contactEmail != "" {
			body["contact_email"] = contactEmail
		}
		return c.JSON(http.StatusServiceUnavailable, body)
	case domainErrors.ErrTypeGateway:
		return c.JSON(http.StatusBadGateway, body)
	case domainErrors.ErrTypeVerificationFailed:
		return c.JSON(http.StatusUnprocessableEntity, body)
	case domainErrors.ErrTypeAttemptNotFound:
		return c.JSON(http.StatusNotFound, body)
	case domainErrors.ErrTypeAttemptConflict:
		return c.JSON(http.StatusConflict, body)
	default:
		return c.JSON(http.StatusInternalServerError, body)
	}
}
