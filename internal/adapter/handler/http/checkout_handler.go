package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ashwinbuilds/booking-engine/internal/domain/gateway"
	"github.com/ashwinbuilds/booking-engine/internal/usecase"
)

type CheckoutHandler struct {
	checkout     *usecase.CheckoutService
	contactEmail string
	logger       *zap.Logger
}

func NewCheckoutHandler(checkout *usecase.CheckoutService, contactEmail string, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout:     checkout,
		contactEmail: contactEmail,
		logger:       logger,
	}
}

// confirmRequest carries the gateway proof. Only order_id is universal: the
// modal gateway posts payment_id + signature, the embedded-button gateway
// knows nothing beyond its order id (the capture id is obtained server-side
// during verification). The checkout service checks the per-gateway shape.
type confirmRequest struct {
	OrderID   string `json:"order_id" validate:"required"`
	PaymentID string `json:"payment_id,omitempty"`
	Signature string `json:"signature,omitempty"`
}

type failureRequest struct {
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
}

// CreateOrder handles POST /api/v1/checkout/orders
func (h *CheckoutHandler) CreateOrder(c echo.Context) error {
	var req usecase.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	resp, err := h.checkout.CreateOrder(c.Request().Context(), &req)
	if err != nil {
		return writeCheckoutError(c, h.contactEmail, err)
	}

	return c.JSON(http.StatusCreated, resp)
}

// Confirm handles POST /api/v1/checkout/attempts/:id/confirm
func (h *CheckoutHandler) Confirm(c echo.Context) error {
	attemptID := c.Param("id")

	var req confirmRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "order_id is required"})
	}

	result, err := h.checkout.Confirm(c.Request().Context(), attemptID, &gateway.Proof{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
	})
	if err != nil {
		return writeCheckoutError(c, h.contactEmail, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"summary":            result.Summary,
		"invoice":            result.Invoice,
		"saved":              result.Saved,
		"notifications":      result.Outcomes,
		"confirmation_query": result.Params.Encode(),
	})
}

// Cancel handles POST /api/v1/checkout/attempts/:id/cancel
func (h *CheckoutHandler) Cancel(c echo.Context) error {
	attempt, err := h.checkout.Cancel(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeCheckoutError(c, h.contactEmail, err)
	}

	// The intent comes back so the client can re-open the form prefilled.
	return c.JSON(http.StatusOK, echo.Map{
		"attempt_id": attempt.ID,
		"status":     attempt.Status,
		"intent":     attempt.Intent,
	})
}

// ReportFailure handles POST /api/v1/checkout/attempts/:id/failure
func (h *CheckoutHandler) ReportFailure(c echo.Context) error {
	var req failureRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	message, err := h.checkout.Fail(c.Request().Context(), c.Param("id"), &usecase.FailureReport{
		Code:        req.Code,
		Description: req.Description,
	})
	if err != nil {
		return writeCheckoutError(c, h.contactEmail, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": message})
}

// Get handles GET /api/v1/checkout/attempts/:id, the support lookup.
func (h *CheckoutHandler) Get(c echo.Context) error {
	attempt, err := h.checkout.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeCheckoutError(c, h.contactEmail, err)
	}
	return c.JSON(http.StatusOK, attempt)
}
