package entity

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewInvoice(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

	t.Run("partial deposit", func(t *testing.T) {
		intent := validIntent()
		inv := NewInvoice(intent, "INR", "pay_1", "order_1", now)

		assert.Equal(t, int64(2500000), inv.RemainingAmount)
		assert.Equal(t, InvoiceStatusPartiallyPaid, inv.Status)
		assert.Equal(t, now, inv.InvoiceDate)
		assert.Equal(t, now.Add(7*24*time.Hour), inv.DueDate)
		assert.Equal(t, "Asha Rao", inv.CustomerName)
		assert.Equal(t, "pay_1", inv.PaymentID)
		assert.Equal(t, "order_1", inv.OrderID)
	})

	t.Run("full payment", func(t *testing.T) {
		intent := validIntent()
		intent.Service.DepositAmount = intent.Service.TotalAmount
		inv := NewInvoice(intent, "INR", "pay_2", "order_2", now)

		assert.Equal(t, int64(0), inv.RemainingAmount)
		assert.Equal(t, InvoiceStatusPaid, inv.Status)
	})

	// remaining = total - deposit must hold for every invoice, and status
	// must follow from remaining alone.
	t.Run("arithmetic invariant over amount pairs", func(t *testing.T) {
		pairs := []struct{ total, deposit int64 }{
			{100, 1}, {100, 50}, {100, 99}, {100, 100},
			{1500000, 500000}, {50000, 50000},
		}
		for _, p := range pairs {
			intent := validIntent()
			intent.Service.TotalAmount = p.total
			intent.Service.DepositAmount = p.deposit
			inv := NewInvoice(intent, "INR", "pay", "order", now)

			assert.Equal(t, p.total-p.deposit, inv.RemainingAmount)
			if inv.RemainingAmount == 0 {
				assert.Equal(t, InvoiceStatusPaid, inv.Status)
			} else {
				assert.Equal(t, InvoiceStatusPartiallyPaid, inv.Status)
			}
		}
	})
}

func TestNewInvoiceID(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	id := NewInvoiceID(now)

	assert.True(t, strings.HasPrefix(id, "INV-1749983400000-"))
	suffix := strings.TrimPrefix(id, "INV-1749983400000-")
	assert.Len(t, suffix, 8)
	assert.Equal(t, strings.ToUpper(suffix), suffix)

	// Two ids minted at the same instant must still differ.
	assert.NotEqual(t, id, NewInvoiceID(now))
}
