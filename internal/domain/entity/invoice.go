package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Invoice status values. Status is a pure function of the remaining amount.
const (
	InvoiceStatusPaid          = "paid"
	InvoiceStatusPartiallyPaid = "partially_paid"
)

// Invoices fall due one week after the booking deposit.
const invoiceDueAfter = 7 * 24 * time.Hour

// Invoice is the durable record of a completed transaction. It is created
// once after verification succeeds and never updated; corrections are new
// invoices, not patches.
type Invoice struct {
	InvoiceID       string    `json:"invoice_id"`
	CustomerName    string    `json:"customer_name"`
	CustomerEmail   string    `json:"customer_email"`
	CustomerPhone   string    `json:"customer_phone,omitempty"`
	ServiceName     string    `json:"service_name"`
	TotalAmount     int64     `json:"total_amount"`
	DepositPaid     int64     `json:"deposit_paid"`
	RemainingAmount int64     `json:"remaining_amount"`
	Status          string    `json:"status"`
	Currency        string    `json:"currency"`
	PaymentID       string    `json:"payment_id"`
	OrderID         string    `json:"order_id"`
	InvoiceDate     time.Time `json:"invoice_date"`
	DueDate         time.Time `json:"due_date"`
}

// NewInvoice builds an invoice from a verified payment. The remaining
// balance is always computed from the invoice's own total, so
// remaining = total - deposit holds for every invoice by construction.
func NewInvoice(intent BookingIntent, currency, paymentID, orderID string, now time.Time) *Invoice {
	remaining := intent.Service.TotalAmount - intent.Service.DepositAmount
	status := InvoiceStatusPartiallyPaid
	if remaining == 0 {
		status = InvoiceStatusPaid
	}

	return &Invoice{
		InvoiceID:       NewInvoiceID(now),
		CustomerName:    intent.CustomerName,
		CustomerEmail:   intent.CustomerEmail,
		CustomerPhone:   intent.CustomerPhone,
		ServiceName:     intent.Service.Name,
		TotalAmount:     intent.Service.TotalAmount,
		DepositPaid:     intent.Service.DepositAmount,
		RemainingAmount: remaining,
		Status:          status,
		Currency:        currency,
		PaymentID:       paymentID,
		OrderID:         orderID,
		InvoiceDate:     now,
		DueDate:         now.Add(invoiceDueAfter),
	}
}

// NewInvoiceID generates an INV-{timestamp}-{random} identifier. Collisions
// are negligible at human transaction rates.
func NewInvoiceID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("INV-%d-%s", now.UnixMilli(), strings.ToUpper(suffix))
}
