package repository

import (
	"context"

	"github.com/ashwinbuilds/booking-engine/internal/domain/model"
)

// PaymentOrderRepository keeps the audit trail of gateway orders
type PaymentOrderRepository interface {
	Create(ctx context.Context, order *model.PaymentOrder) error
	UpdateStatus(ctx context.Context, orderID, status string) error
	GetByOrderID(ctx context.Context, orderID string) (*model.PaymentOrder, error)
}
