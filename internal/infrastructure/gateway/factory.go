package gateway

import (
	"sync"

	"go.uber.org/zap"

	"github.com/ashwinbuilds/booking-engine/internal/config"
	domainErrors "github.com/ashwinbuilds/booking-engine/internal/domain/errors"
	"github.com/ashwinbuilds/booking-engine/internal/domain/gateway"
	paypalGateway "github.com/ashwinbuilds/booking-engine/internal/infrastructure/gateway/paypal"
	razorpayGateway "github.com/ashwinbuilds/booking-engine/internal/infrastructure/gateway/razorpay"
)

// Factory creates payment gateways based on the gateway kind. Instances are
// cached: each gateway (and its readiness state) is a process-wide
// singleton.
type Factory struct {
	config *config.Config
	logger *zap.Logger

	mu    sync.Mutex
	cache map[gateway.Kind]gateway.PaymentGateway
}

// NewFactory creates a new gateway factory
func NewFactory(cfg *config.Config, logger *zap.Logger) *Factory {
	return &Factory{
		config: cfg,
		logger: logger,
		cache:  make(map[gateway.Kind]gateway.PaymentGateway),
	}
}

// GatewayFor returns the gateway strategy for a kind. Missing or
// placeholder credentials disable the whole payment path for that kind.
func (f *Factory) GatewayFor(kind gateway.Kind) (gateway.PaymentGateway, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if gw, ok := f.cache[kind]; ok {
		return gw, nil
	}

	var (
		gw  gateway.PaymentGateway
		err error
	)
	switch kind {
	case gateway.KindRazorpay:
		gw, err = f.createRazorpayGateway()
	case gateway.KindPayPal:
		gw, err = f.createPayPalGateway()
	default:
		return nil, domainErrors.NewConfigurationError("unsupported payment gateway: " + string(kind))
	}
	if err != nil {
		return nil, err
	}

	f.cache[kind] = gw
	return gw, nil
}

func (f *Factory) createRazorpayGateway() (gateway.PaymentGateway, error) {
	cfg := f.config.Service.Razorpay
	if !cfg.Configured() {
		f.logger.Error("Razorpay credentials missing, payment path disabled")
		return nil, domainErrors.NewConfigurationError(
			"online payment is not available right now, please contact us to complete your booking")
	}
	return razorpayGateway.New(cfg.KeyID, cfg.KeySecret, f.logger), nil
}

func (f *Factory) createPayPalGateway() (gateway.PaymentGateway, error) {
	cfg := f.config.Service.PayPal
	if !cfg.Configured() {
		f.logger.Error("PayPal credentials missing, payment path disabled")
		return nil, domainErrors.NewConfigurationError(
			"online payment is not available right now, please contact us to complete your booking")
	}
	return paypalGateway.New(cfg.ClientID, cfg.Secret, cfg.BaseURL, f.logger), nil
}
