package entity

// Notification channel names as surfaced to the customer when a send fails.
const (
	ChannelBookingConfirmation = "booking confirmation"
	ChannelInvoiceEmail        = "invoice email"
	ChannelOwnerAlert          = "owner alert"
)

// NotificationOutcomes records the per-channel result of the three
// post-payment sends. It is not persisted; it exists only to feed the
// confirmation summary.
type NotificationOutcomes struct {
	BookingConfirmation bool `json:"booking_confirmation"`
	InvoiceEmail        bool `json:"invoice_email"`
	OwnerAlert          bool `json:"owner_alert"`
}

// AllSent reports whether every channel succeeded.
func (o NotificationOutcomes) AllSent() bool {
	return o.BookingConfirmation && o.InvoiceEmail && o.OwnerAlert
}

// AnySent reports whether at least one channel succeeded.
func (o NotificationOutcomes) AnySent() bool {
	return o.BookingConfirmation || o.InvoiceEmail || o.OwnerAlert
}

// FailedChannels lists the channels that failed, in a stable order, so the
// confirmation message can name exactly what to double-check.
func (o NotificationOutcomes) FailedChannels() []string {
	var failed []string
	if !o.BookingConfirmation {
		failed = append(failed, ChannelBookingConfirmation)
	}
	if !o.InvoiceEmail {
		failed = append(failed, ChannelInvoiceEmail)
	}
	if !o.OwnerAlert {
		failed = append(failed, ChannelOwnerAlert)
	}
	return failed
}
