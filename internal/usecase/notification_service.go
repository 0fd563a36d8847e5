package usecase

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/ashwinbuilds/booking-engine/internal/domain/entity"
)

// BookingMailer sends the three post-payment emails. Implementations are
// fire-and-forget transports; the dispatcher does the bookkeeping.
type BookingMailer interface {
	SendBookingConfirmation(ctx context.Context, invoice *entity.Invoice, intent entity.BookingIntent) error
	SendInvoice(ctx context.Context, invoice *entity.Invoice, intent entity.BookingIntent) error
	SendOwnerAlert(ctx context.Context, invoice *entity.Invoice, intent entity.BookingIntent) error
}

// NotificationDispatcher is the contract the checkout flow depends on.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, invoice *entity.Invoice, intent entity.BookingIntent) entity.NotificationOutcomes
}

// NotificationService fires the customer booking confirmation, the customer
// invoice and the owner new-booking alert. Each send is independent and
// attempted exactly once; one failure never prevents the others.
type NotificationService struct {
	mailer BookingMailer
	logger *zap.Logger
}

func NewNotificationService(mailer BookingMailer, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		mailer: mailer,
		logger: logger,
	}
}

// Dispatch attempts all three sends concurrently and returns only after
// every one has been attempted, so the confirmation summary never sees a
// partial set. Failures are aggregated, not masked.
func (s *NotificationService) Dispatch(ctx context.Context, invoice *entity.Invoice, intent entity.BookingIntent) entity.NotificationOutcomes {
	var outcomes entity.NotificationOutcomes

	sends := []struct {
		channel string
		result  *bool
		send    func(context.Context, *entity.Invoice, entity.BookingIntent) error
	}{
		{entity.ChannelBookingConfirmation, &outcomes.BookingConfirmation, s.mailer.SendBookingConfirmation},
		{entity.ChannelInvoiceEmail, &outcomes.InvoiceEmail, s.mailer.SendInvoice},
		{entity.ChannelOwnerAlert, &outcomes.OwnerAlert, s.mailer.SendOwnerAlert},
	}

	var wg sync.WaitGroup
	for _, n := range sends {
		wg.Add(1)
		go func(channel string, result *bool, send func(context.Context, *entity.Invoice, entity.BookingIntent) error) {
			defer wg.Done()
			if err := send(ctx, invoice, intent); err != nil {
				s.logger.Error("notification send failed",
					zap.String("channel", channel),
					zap.String("invoice_id", invoice.InvoiceID),
					zap.Error(err))
				return
			}
			*result = true
		}(n.channel, n.result, n.send)
	}
	wg.Wait()

	if failed := outcomes.FailedChannels(); len(failed) > 0 {
		s.logger.Warn("some notifications failed",
			zap.String("invoice_id", invoice.InvoiceID),
			zap.Strings("failed_channels", failed))
	}

	return outcomes
}
