package mail

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/ashwinbuilds/booking-engine/internal/config"
	"github.com/ashwinbuilds/booking-engine/internal/domain/entity"
)

// SMTPMailer delivers the post-payment emails over a plain SMTP dialer.
// Each send dials fresh; booking volume is low enough that connection
// reuse is not worth the session bookkeeping.
type SMTPMailer struct {
	cfg    config.EmailConfig
	owner  config.OwnerConfig
	logger *zap.Logger
}

func NewSMTPMailer(cfg config.EmailConfig, owner config.OwnerConfig, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{
		cfg:    cfg,
		owner:  owner,
		logger: logger,
	}
}

// SendBookingConfirmation emails the customer that their booking is locked in.
func (m *SMTPMailer) SendBookingConfirmation(ctx context.Context, invoice *entity.Invoice, intent entity.BookingIntent) error {
	subject := fmt.Sprintf("Booking confirmed: %s", invoice.ServiceName)
	body := bookingConfirmationHTML(invoice, intent)
	return m.send(ctx, invoice.CustomerEmail, subject, body)
}

// SendInvoice emails the customer the deposit invoice with the remaining
// balance and due date.
func (m *SMTPMailer) SendInvoice(ctx context.Context, invoice *entity.Invoice, intent entity.BookingIntent) error {
	subject := fmt.Sprintf("Invoice %s", invoice.InvoiceID)
	body := invoiceHTML(invoice, intent)
	return m.send(ctx, invoice.CustomerEmail, subject, body)
}

// SendOwnerAlert notifies the site owner about the new booking.
func (m *SMTPMailer) SendOwnerAlert(ctx context.Context, invoice *entity.Invoice, intent entity.BookingIntent) error {
	if m.owner.Email == "" {
		return fmt.Errorf("owner email is not configured")
	}
	subject := fmt.Sprintf("New booking: %s from %s", invoice.ServiceName, invoice.CustomerName)
	body := ownerAlertHTML(invoice, intent)
	return m.send(ctx, m.owner.Email, subject, body)
}

func (m *SMTPMailer) send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", msg.FormatAddress(m.cfg.From, m.cfg.FromName))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	m.logger.Debug("email sent",
		zap.String("to", to),
		zap.String("subject", subject))
	return nil
}
