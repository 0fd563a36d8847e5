package usecase

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ashwinbuilds/booking-engine/internal/config"
	"github.com/ashwinbuilds/booking-engine/internal/domain/entity"
	domainErrors "github.com/ashwinbuilds/booking-engine/internal/domain/errors"
	"github.com/ashwinbuilds/booking-engine/internal/domain/gateway"
)

// ResolvedRegion is the pricing view for one region: currency, which
// gateway applies, and the service catalog.
type ResolvedRegion struct {
	Region      string                    `json:"region"`
	Currency    string                    `json:"currency"`
	GatewayKind gateway.Kind              `json:"gateway"`
	Catalog     []entity.ServiceSelection `json:"catalog"`
}

// PricingService resolves an active region to its currency, gateway and
// service catalog. Pure lookup over the static pricing table, no I/O.
type PricingService struct {
	regions       map[string]ResolvedRegion
	defaultRegion string
	logger        *zap.Logger
}

// NewPricingService builds the lookup table. The default region must be one
// of the configured regions: Resolve falls back to it for unknown regions,
// and a fallback to nothing would hand out zero amounts.
func NewPricingService(cfg *config.PricingConfig, logger *zap.Logger) (*PricingService, error) {
	regions := make(map[string]ResolvedRegion, len(cfg.Regions))
	for _, rc := range cfg.Regions {
		catalog := make([]entity.ServiceSelection, 0, len(rc.Services))
		for _, sp := range rc.Services {
			catalog = append(catalog, entity.ServiceSelection{
				Name:          sp.Name,
				TotalAmount:   sp.TotalAmount,
				DepositAmount: sp.DepositAmount,
				Timeline:      sp.Timeline,
			})
		}
		regions[normalizeRegion(rc.Code)] = ResolvedRegion{
			Region:      rc.Code,
			Currency:    rc.Currency,
			GatewayKind: gateway.Kind(rc.Gateway),
			Catalog:     catalog,
		}
	}

	defaultRegion := normalizeRegion(cfg.DefaultRegion)
	if _, ok := regions[defaultRegion]; !ok {
		return nil, fmt.Errorf("pricing: default region %q is not configured", cfg.DefaultRegion)
	}

	return &PricingService{
		regions:       regions,
		defaultRegion: defaultRegion,
		logger:        logger,
	}, nil
}

// Resolve returns the pricing view for a region. An unknown region falls
// back to the default region; the booking flow never dead-ends on a config
// lookup.
func (s *PricingService) Resolve(region string) ResolvedRegion {
	if r, ok := s.regions[normalizeRegion(region)]; ok {
		return r
	}

	if region != "" {
		s.logger.Warn("unknown region, falling back to default",
			zap.String("region", region),
			zap.String("default", s.defaultRegion))
	}
	return s.regions[s.defaultRegion]
}

// FindService looks up a catalog entry by name within a region. The catalog
// is server-authoritative: amounts always come from here, never from the
// client.
func (s *PricingService) FindService(region, name string) (*entity.ServiceSelection, ResolvedRegion, error) {
	resolved := s.Resolve(region)
	for _, svc := range resolved.Catalog {
		if strings.EqualFold(svc.Name, name) {
			selected := svc
			return &selected, resolved, nil
		}
	}
	return nil, resolved, domainErrors.NewValidationError("service",
		"unknown service for this region")
}

func normalizeRegion(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
