package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	handlers "github.com/ashwinbuilds/booking-engine/internal/adapter/handler/http"
	"github.com/ashwinbuilds/booking-engine/internal/config"
	"github.com/ashwinbuilds/booking-engine/internal/middleware/auth"
	"github.com/ashwinbuilds/booking-engine/internal/usecase"
)

type Server struct {
	config   *config.Config
	logger   *zap.Logger
	echo     *echo.Echo
	checkout *usecase.CheckoutService
	pricing  *usecase.PricingService
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func NewServer(cfg *config.Config, logger *zap.Logger, checkout *usecase.CheckoutService, pricing *usecase.PricingService) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{validate: validator.New()}

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.Service.ClientURL},
		AllowMethods: []string{echo.GET, echo.POST},
		AllowHeaders: []string{echo.HeaderContentType, auth.SessionHeader},
	}))

	return &Server{
		config:   cfg,
		logger:   logger,
		echo:     e,
		checkout: checkout,
		pricing:  pricing,
	}
}

func (s *Server) Start() error {
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	// Health check
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": s.config.Service.Name,
		})
	})

	checkoutHandler := handlers.NewCheckoutHandler(s.checkout, s.config.Service.ContactEmail, s.logger)
	pricingHandler := handlers.NewPricingHandler(s.pricing)
	sessionHandler := handlers.NewSessionHandler(s.config.Service.SessionSecret, s.logger)

	v1 := s.echo.Group("/api/v1")

	// Public routes: catalog browsing and the session handshake.
	v1.GET("/pricing", pricingHandler.GetPricing)
	v1.GET("/checkout/session", sessionHandler.CreateSession)

	// Checkout mutations require a booking session token, so money-moving
	// calls cannot be triggered by a bare cross-site request.
	sessionConfig := auth.SessionConfig{
		Secret: s.config.Service.SessionSecret,
		Logger: s.logger,
	}
	guarded := v1.Group("/checkout", auth.SessionMiddleware(sessionConfig))
	guarded.POST("/orders", checkoutHandler.CreateOrder)
	guarded.POST("/attempts/:id/confirm", checkoutHandler.Confirm)
	guarded.POST("/attempts/:id/cancel", checkoutHandler.Cancel)
	guarded.POST("/attempts/:id/failure", checkoutHandler.ReportFailure)
	guarded.GET("/attempts/:id", checkoutHandler.Get)
}
