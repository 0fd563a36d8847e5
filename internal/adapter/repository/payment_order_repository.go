package repository

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ashwinbuilds/booking-engine/internal/domain/model"
	"github.com/ashwinbuilds/booking-engine/internal/domain/repository"
)

type paymentOrderRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewPaymentOrderRepository creates a new payment order repository
func NewPaymentOrderRepository(db *gorm.DB, logger *zap.Logger) repository.PaymentOrderRepository {
	return &paymentOrderRepository{
		db:     db,
		logger: logger,
	}
}

// Create records the audit copy of a gateway order
func (r *paymentOrderRepository) Create(ctx context.Context, order *model.PaymentOrder) error {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		r.logger.Error("Failed to create payment order",
			zap.String("order_id", order.OrderID),
			zap.Error(err))
		return fmt.Errorf("failed to create payment order: %w", err)
	}
	return nil
}

// UpdateStatus moves an order between created/paid/abandoned
func (r *paymentOrderRepository) UpdateStatus(ctx context.Context, orderID, status string) error {
	result := r.db.WithContext(ctx).
		Model(&model.PaymentOrder{}).
		Where("order_id = ?", orderID).
		Update("status", status)

	if result.Error != nil {
		r.logger.Error("Failed to update payment order status",
			zap.String("order_id", orderID),
			zap.String("status", status),
			zap.Error(result.Error))
		return fmt.Errorf("failed to update payment order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("payment order %s not found", orderID)
	}
	return nil
}

// GetByOrderID retrieves an order by its gateway identifier
func (r *paymentOrderRepository) GetByOrderID(ctx context.Context, orderID string) (*model.PaymentOrder, error) {
	var order model.PaymentOrder

	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&order).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get payment order",
			zap.String("order_id", orderID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get payment order: %w", err)
	}

	return &order, nil
}
