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

type invoiceRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB, logger *zap.Logger) repository.InvoiceRepository {
	return &invoiceRepository{
		db:     db,
		logger: logger,
	}
}

// Create persists a new invoice row. Invoices are append-only; there is no
// update path.
func (r *invoiceRepository) Create(ctx context.Context, invoice *model.Invoice) error {
	if err := r.db.WithContext(ctx).Create(invoice).Error; err != nil {
		r.logger.Error("Failed to create invoice",
			zap.String("invoice_id", invoice.InvoiceID),
			zap.Error(err))
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	return nil
}

// GetByInvoiceID retrieves an invoice by its public identifier
func (r *invoiceRepository) GetByInvoiceID(ctx context.Context, invoiceID string) (*model.Invoice, error) {
	var invoice model.Invoice

	err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		First(&invoice).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get invoice by invoice ID",
			zap.String("invoice_id", invoiceID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	return &invoice, nil
}

// GetByPaymentID retrieves an invoice by the gateway payment id, the
// identifier customers quote when they contact support.
func (r *invoiceRepository) GetByPaymentID(ctx context.Context, paymentID string) (*model.Invoice, error) {
	var invoice model.Invoice

	err := r.db.WithContext(ctx).
		Where("payment_id = ?", paymentID).
		First(&invoice).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get invoice by payment ID",
			zap.String("payment_id", paymentID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	return &invoice, nil
}
