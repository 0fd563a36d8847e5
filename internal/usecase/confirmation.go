package usecase

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/ashwinbuilds/booking-engine/internal/domain/entity"
)

// Severity of the post-payment outcome. A verified payment is never
// reported as critical while anything downstream succeeded: the money
// moved, so the worst honest answer is "confirmed, with caveats".
type Severity string

const (
	SeveritySuccess  Severity = "success"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Summary is the composite post-payment status shown to the customer.
type Summary struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Summarize reduces the ledger and notification outcomes to a single
// severity and a message that names exactly what needs follow-up.
func Summarize(ledgerSaved bool, outcomes entity.NotificationOutcomes) Summary {
	switch {
	case ledgerSaved && outcomes.AllSent():
		return Summary{
			Severity: SeveritySuccess,
			Message:  "Your booking is fully confirmed. A confirmation and invoice are on their way to your inbox.",
		}

	case ledgerSaved && outcomes.AnySent():
		failed := outcomes.FailedChannels()
		return Summary{
			Severity: SeverityWarning,
			Message: fmt.Sprintf(
				"Your booking is confirmed and recorded, but %d of 3 notifications failed (%s). Please double-check your inbox or contact us.",
				len(failed), strings.Join(failed, ", ")),
		}

	case ledgerSaved:
		return Summary{
			Severity: SeverityWarning,
			Message:  "Your booking is confirmed and recorded, but none of the notifications could be sent (booking confirmation, invoice email, owner alert). Please contact us to confirm the details.",
		}

	case outcomes.AllSent():
		return Summary{
			Severity: SeverityWarning,
			Message:  "Your payment went through and notifications were sent, but the invoice could not be recorded on our side. Please contact support so we can reconcile it.",
		}

	case outcomes.AnySent():
		failed := outcomes.FailedChannels()
		return Summary{
			Severity: SeverityWarning,
			Message: fmt.Sprintf(
				"Your payment went through, but the invoice could not be recorded and these notifications failed: %s. Please contact support so we can reconcile it.",
				strings.Join(failed, ", ")),
		}

	default:
		return Summary{
			Severity: SeverityCritical,
			Message:  "Your payment was verified, but we could not record the invoice or send any notification. Please contact us immediately and quote your payment id.",
		}
	}
}

// ConfirmationParams builds the query parameters the confirmation view is
// navigated with.
func ConfirmationParams(invoice *entity.Invoice, outcomes entity.NotificationOutcomes) url.Values {
	emailStatus := "success"
	if !outcomes.AllSent() {
		emailStatus = "warning"
	}

	params := url.Values{}
	params.Set("invoiceId", invoice.InvoiceID)
	params.Set("paymentId", invoice.PaymentID)
	params.Set("service", invoice.ServiceName)
	params.Set("name", invoice.CustomerName)
	params.Set("email", invoice.CustomerEmail)
	params.Set("deposit", strconv.FormatInt(invoice.DepositPaid, 10))
	params.Set("total", strconv.FormatInt(invoice.TotalAmount, 10))
	params.Set("emailStatus", emailStatus)
	return params
}
