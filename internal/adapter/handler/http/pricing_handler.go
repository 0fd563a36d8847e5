package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ashwinbuilds/booking-engine/internal/usecase"
)

type PricingHandler struct {
	pricing *usecase.PricingService
}

func NewPricingHandler(pricing *usecase.PricingService) *PricingHandler {
	return &PricingHandler{pricing: pricing}
}

// GetPricing handles GET /api/v1/pricing?region=XX. Unknown regions resolve
// to the default catalog, so this never 404s.
func (h *PricingHandler) GetPricing(c echo.Context) error {
	resolved := h.pricing.Resolve(c.QueryParam("region"))
	return c.JSON(http.StatusOK, resolved)
}
