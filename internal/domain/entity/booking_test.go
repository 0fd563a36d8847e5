package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/ashwinbuilds/booking-engine/internal/domain/errors"
)

func validIntent() BookingIntent {
	return BookingIntent{
		CustomerName:  "Asha Rao",
		CustomerEmail: "asha@example.com",
		CustomerPhone: "919876543210",
		Service: ServiceSelection{
			Name:          "Business Website",
			TotalAmount:   3500000,
			DepositAmount: 1000000,
		},
		Region: "IN",
	}
}

func TestBookingIntent_Validate(t *testing.T) {
	t.Run("valid intent", func(t *testing.T) {
		intent := validIntent()
		assert.NoError(t, intent.Validate())
	})

	t.Run("phone is optional", func(t *testing.T) {
		intent := validIntent()
		intent.CustomerPhone = ""
		assert.NoError(t, intent.Validate())
	})

	t.Run("formatted phone numbers are accepted", func(t *testing.T) {
		for _, phone := range []string{"+91 98765 43210", "91-98765-43210", "(91) 98765.43210"} {
			intent := validIntent()
			intent.CustomerPhone = phone
			assert.NoError(t, intent.Validate(), "phone %q", phone)
		}
	})

	tests := []struct {
		name      string
		mutate    func(*BookingIntent)
		wantField string
	}{
		{"missing name", func(b *BookingIntent) { b.CustomerName = "" }, "customer_name"},
		{"missing email", func(b *BookingIntent) { b.CustomerEmail = "" }, "customer_email"},
		{"malformed email", func(b *BookingIntent) { b.CustomerEmail = "not-an-email" }, "customer_email"},
		{"phone too short", func(b *BookingIntent) { b.CustomerPhone = "1234567" }, "customer_phone"},
		{"phone too long", func(b *BookingIntent) { b.CustomerPhone = "1234567890123456" }, "customer_phone"},
		{"phone with leading zero", func(b *BookingIntent) { b.CustomerPhone = "09876543210" }, "customer_phone"},
		{"phone with letters", func(b *BookingIntent) { b.CustomerPhone = "98765abc43" }, "customer_phone"},
		{"zero total", func(b *BookingIntent) { b.Service.TotalAmount = 0 }, "service.total_amount"},
		{"zero deposit", func(b *BookingIntent) { b.Service.DepositAmount = 0 }, "service.deposit_amount"},
		{"deposit above total", func(b *BookingIntent) {
			b.Service.TotalAmount = 1000
			b.Service.DepositAmount = 2000
		}, "service.deposit_amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := validIntent()
			tt.mutate(&intent)

			err := intent.Validate()

			require.Error(t, err)
			var ce *domainErrors.CheckoutError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, domainErrors.ErrTypeValidation, ce.Type)
			assert.Equal(t, tt.wantField, ce.Field)
		})
	}
}

func TestBookingIntent_ContactDigits(t *testing.T) {
	intent := validIntent()
	intent.CustomerPhone = "+91 98765-43210"
	assert.Equal(t, "919876543210", intent.ContactDigits())

	intent.CustomerPhone = ""
	assert.Equal(t, "", intent.ContactDigits())
}
