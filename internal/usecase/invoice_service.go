package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ashwinbuilds/booking-engine/internal/domain/entity"
	"github.com/ashwinbuilds/booking-engine/internal/domain/model"
	"github.com/ashwinbuilds/booking-engine/internal/domain/repository"
)

// InvoiceWriter is the ledger-writing contract the checkout flow depends on.
type InvoiceWriter interface {
	Write(ctx context.Context, intent entity.BookingIntent, currency, paymentID, orderID string) (*entity.Invoice, bool)
}

// InvoiceService computes and persists invoices after a verified payment.
type InvoiceService struct {
	invoiceRepo repository.InvoiceRepository
	logger      *zap.Logger
	now         func() time.Time
}

func NewInvoiceService(invoiceRepo repository.InvoiceRepository, logger *zap.Logger) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// Write builds the invoice and attempts one persistence call. If the write
// fails the computed invoice is still returned with saved=false: the
// invoice id is needed downstream for the notification templates and the
// confirmation page even when the durable copy didn't land. The caller is
// responsible for surfacing that degradation.
func (s *InvoiceService) Write(ctx context.Context, intent entity.BookingIntent, currency, paymentID, orderID string) (*entity.Invoice, bool) {
	invoice := entity.NewInvoice(intent, currency, paymentID, orderID, s.now())

	row := &model.Invoice{
		InvoiceID:       invoice.InvoiceID,
		CustomerName:    invoice.CustomerName,
		CustomerEmail:   invoice.CustomerEmail,
		CustomerPhone:   invoice.CustomerPhone,
		ServiceName:     invoice.ServiceName,
		TotalAmount:     invoice.TotalAmount,
		DepositPaid:     invoice.DepositPaid,
		RemainingAmount: invoice.RemainingAmount,
		Status:          invoice.Status,
		Currency:        invoice.Currency,
		PaymentID:       invoice.PaymentID,
		OrderID:         invoice.OrderID,
		InvoiceDate:     invoice.InvoiceDate,
		DueDate:         invoice.DueDate,
	}

	if err := s.invoiceRepo.Create(ctx, row); err != nil {
		s.logger.Error("failed to persist invoice",
			zap.String("invoice_id", invoice.InvoiceID),
			zap.String("payment_id", paymentID),
			zap.Error(err))
		return invoice, false
	}

	s.logger.Info("invoice recorded",
		zap.String("invoice_id", invoice.InvoiceID),
		zap.String("status", invoice.Status),
		zap.Int64("remaining_amount", invoice.RemainingAmount))

	return invoice, true
}
