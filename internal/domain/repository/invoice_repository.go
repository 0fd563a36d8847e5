package repository

import (
	"context"

	"github.com/ashwinbuilds/booking-engine/internal/domain/model"
)

// InvoiceRepository persists durable invoice records
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *model.Invoice) error
	GetByInvoiceID(ctx context.Context, invoiceID string) (*model.Invoice, error)
	GetByPaymentID(ctx context.Context, paymentID string) (*model.Invoice, error)
}
