package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ashwinbuilds/booking-engine/internal/domain/entity"
)

func TestSummarize(t *testing.T) {
	all := entity.NotificationOutcomes{BookingConfirmation: true, InvoiceEmail: true, OwnerAlert: true}
	none := entity.NotificationOutcomes{}
	partial := entity.NotificationOutcomes{BookingConfirmation: true}

	tests := []struct {
		name     string
		saved    bool
		outcomes entity.NotificationOutcomes
		want     Severity
	}{
		{"ledger saved and all notifications sent", true, all, SeveritySuccess},
		{"ledger saved with partial notifications", true, partial, SeverityWarning},
		{"ledger saved with no notifications", true, none, SeverityWarning},
		{"ledger lost but all notifications sent", false, all, SeverityWarning},
		{"ledger lost with partial notifications", false, partial, SeverityWarning},
		{"everything after verification failed", false, none, SeverityCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.saved, tt.outcomes)
			assert.Equal(t, tt.want, got.Severity)
			assert.NotEmpty(t, got.Message)
		})
	}
}

// Critical is reserved for the nothing-worked case. Any single success after
// verification must downgrade the outcome to a warning at worst.
func TestSummarize_NeverCriticalIfAnythingSucceeded(t *testing.T) {
	for saved := 0; saved < 2; saved++ {
		for mask := 0; mask < 8; mask++ {
			outcomes := entity.NotificationOutcomes{
				BookingConfirmation: mask&1 != 0,
				InvoiceEmail:        mask&2 != 0,
				OwnerAlert:          mask&4 != 0,
			}
			summary := Summarize(saved == 1, outcomes)
			if saved == 1 || outcomes.AnySent() {
				assert.NotEqual(t, SeverityCritical, summary.Severity,
					"saved=%v outcomes=%+v", saved == 1, outcomes)
			} else {
				assert.Equal(t, SeverityCritical, summary.Severity)
			}
		}
	}
}

func TestSummarize_WarningNamesFailedChannels(t *testing.T) {
	summary := Summarize(true, entity.NotificationOutcomes{BookingConfirmation: true, OwnerAlert: true})

	assert.Equal(t, SeverityWarning, summary.Severity)
	assert.Contains(t, summary.Message, entity.ChannelInvoiceEmail)
	assert.NotContains(t, summary.Message, entity.ChannelOwnerAlert)
}

func TestConfirmationParams(t *testing.T) {
	invoice := entity.NewInvoice(entity.BookingIntent{
		CustomerName:  "Asha Rao",
		CustomerEmail: "asha@example.com",
		Service: entity.ServiceSelection{
			Name:          "Business Website",
			TotalAmount:   3500000,
			DepositAmount: 1000000,
		},
	}, "INR", "pay_123", "order_123", time.Now())

	t.Run("all notifications sent", func(t *testing.T) {
		params := ConfirmationParams(invoice, entity.NotificationOutcomes{
			BookingConfirmation: true, InvoiceEmail: true, OwnerAlert: true,
		})

		assert.Equal(t, invoice.InvoiceID, params.Get("invoiceId"))
		assert.Equal(t, "pay_123", params.Get("paymentId"))
		assert.Equal(t, "Business Website", params.Get("service"))
		assert.Equal(t, "Asha Rao", params.Get("name"))
		assert.Equal(t, "asha@example.com", params.Get("email"))
		assert.Equal(t, "1000000", params.Get("deposit"))
		assert.Equal(t, "3500000", params.Get("total"))
		assert.Equal(t, "success", params.Get("emailStatus"))
	})

	t.Run("any failed send flips emailStatus to warning", func(t *testing.T) {
		params := ConfirmationParams(invoice, entity.NotificationOutcomes{
			BookingConfirmation: true, InvoiceEmail: true,
		})

		assert.Equal(t, "warning", params.Get("emailStatus"))
	})
}
