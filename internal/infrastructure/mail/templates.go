package mail

import (
	"fmt"
	"html"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ashwinbuilds/booking-engine/internal/domain/entity"
)

// formatAmount renders a minor-unit amount as a display string with the
// currency symbol. Both supported currencies use two decimal places.
func formatAmount(currency string, minor int64) string {
	major := decimal.NewFromInt(minor).Div(decimal.NewFromInt(100))
	symbol := currency + " "
	switch currency {
	case "INR":
		symbol = "₹"
	case "USD":
		symbol = "$"
	}
	return symbol + major.StringFixed(2)
}

func formatDate(t time.Time) string {
	return t.Format("2 January 2006")
}

// bookingConfirmationHTML is the customer-facing confirmation. Inline styles
// only, for email client compatibility.
func bookingConfirmationHTML(invoice *entity.Invoice, intent entity.BookingIntent) string {
	timeline := intent.Service.Timeline
	if timeline == "" {
		timeline = "to be confirmed"
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
	<meta http-equiv="Content-Type" content="text/html; charset=UTF-8" />
	<meta name="viewport" content="width=device-width, initial-scale=1.0" />
	<title>Booking confirmed</title>
</head>
<body style="margin: 0; padding: 0; font-family: Helvetica, Arial, sans-serif; background-color: #f7f9fc;">
	<table border="0" cellpadding="0" cellspacing="0" width="100%%" style="border-collapse: collapse;">
		<tr>
			<td style="padding: 40px 0;">
				<table align="center" border="0" cellpadding="0" cellspacing="0" width="600" style="border-collapse: collapse; background-color: #1a73e8; border-radius: 8px 8px 0 0;">
					<tr>
						<td align="center" style="padding: 30px 0; color: #ffffff;">
							<h1 style="margin: 0; font-size: 26px; font-weight: 700;">Booking Confirmed</h1>
						</td>
					</tr>
				</table>
				<table align="center" border="0" cellpadding="0" cellspacing="0" width="600" style="border-collapse: collapse; background-color: #ffffff;">
					<tr>
						<td style="padding: 40px 30px; color: #333333; font-size: 16px; line-height: 1.6;">
							<p style="margin-top: 0; margin-bottom: 20px;">Hi <strong>%s</strong>,</p>
							<p style="margin-top: 0; margin-bottom: 20px;">Your deposit has been received and your booking for <strong>%s</strong> is confirmed.</p>
							<table border="0" cellpadding="8" cellspacing="0" width="100%%" style="border-collapse: collapse; background-color: #f3f5ff; border-radius: 8px; margin-bottom: 20px;">
								<tr><td style="color: #666666;">Service</td><td align="right"><strong>%s</strong></td></tr>
								<tr><td style="color: #666666;">Deposit paid</td><td align="right"><strong>%s</strong></td></tr>
								<tr><td style="color: #666666;">Payment reference</td><td align="right">%s</td></tr>
								<tr><td style="color: #666666;">Estimated timeline</td><td align="right">%s</td></tr>
							</table>
							<p style="margin-top: 0; margin-bottom: 20px;">I will reach out within one business day to kick things off. Your invoice follows in a separate email.</p>
							<p style="margin-top: 0; margin-bottom: 0;">Thanks for booking!</p>
						</td>
					</tr>
				</table>
				<table align="center" border="0" cellpadding="0" cellspacing="0" width="600" style="border-collapse: collapse; background-color: #f0f2fa; border-radius: 0 0 8px 8px;">
					<tr>
						<td align="center" style="padding: 20px; color: #666666; font-size: 12px;">
							<p style="margin: 0;">This is an automated message. Please do not reply.</p>
						</td>
					</tr>
				</table>
			</td>
		</tr>
	</table>
</body>
</html>`,
		html.EscapeString(invoice.CustomerName),
		html.EscapeString(invoice.ServiceName),
		html.EscapeString(invoice.ServiceName),
		formatAmount(invoice.Currency, invoice.DepositPaid),
		html.EscapeString(invoice.PaymentID),
		html.EscapeString(timeline))
}

// invoiceHTML is the deposit invoice sent to the customer.
func invoiceHTML(invoice *entity.Invoice, _ entity.BookingIntent) string {
	statusLabel := "Partially Paid"
	balanceRow := fmt.Sprintf(
		`<tr><td style="color: #666666;">Balance due by %s</td><td align="right"><strong>%s</strong></td></tr>`,
		formatDate(invoice.DueDate), formatAmount(invoice.Currency, invoice.RemainingAmount))
	if invoice.Status == entity.InvoiceStatusPaid {
		statusLabel = "Paid in Full"
		balanceRow = ""
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
	<meta http-equiv="Content-Type" content="text/html; charset=UTF-8" />
	<meta name="viewport" content="width=device-width, initial-scale=1.0" />
	<title>Invoice %s</title>
</head>
<body style="margin: 0; padding: 0; font-family: Helvetica, Arial, sans-serif; background-color: #f7f9fc;">
	<table border="0" cellpadding="0" cellspacing="0" width="100%%" style="border-collapse: collapse;">
		<tr>
			<td style="padding: 40px 0;">
				<table align="center" border="0" cellpadding="0" cellspacing="0" width="600" style="border-collapse: collapse; background-color: #202124; border-radius: 8px 8px 0 0;">
					<tr>
						<td style="padding: 30px; color: #ffffff;">
							<h1 style="margin: 0 0 5px 0; font-size: 24px;">Invoice %s</h1>
							<p style="margin: 0; color: #9aa0a6; font-size: 14px;">Issued %s &middot; %s</p>
						</td>
					</tr>
				</table>
				<table align="center" border="0" cellpadding="0" cellspacing="0" width="600" style="border-collapse: collapse; background-color: #ffffff;">
					<tr>
						<td style="padding: 40px 30px; color: #333333; font-size: 16px; line-height: 1.6;">
							<p style="margin-top: 0; margin-bottom: 5px;"><strong>Billed to</strong></p>
							<p style="margin-top: 0; margin-bottom: 20px;">%s<br />%s</p>
							<table border="0" cellpadding="8" cellspacing="0" width="100%%" style="border-collapse: collapse; border-top: 1px solid #e0e0e0;">
								<tr><td>%s</td><td align="right">%s</td></tr>
								<tr style="border-top: 1px solid #e0e0e0;"><td style="color: #666666;">Deposit received</td><td align="right">&minus;%s</td></tr>
								<tr style="border-top: 2px solid #202124;"><td><strong>Remaining balance</strong></td><td align="right"><strong>%s</strong></td></tr>
								%s
							</table>
							<p style="margin-top: 20px; margin-bottom: 0; color: #666666; font-size: 14px;">Payment reference: %s &middot; Order: %s</p>
						</td>
					</tr>
				</table>
				<table align="center" border="0" cellpadding="0" cellspacing="0" width="600" style="border-collapse: collapse; background-color: #f0f2fa; border-radius: 0 0 8px 8px;">
					<tr>
						<td align="center" style="padding: 20px; color: #666666; font-size: 12px;">
							<p style="margin: 0;">Keep this invoice for your records.</p>
						</td>
					</tr>
				</table>
			</td>
		</tr>
	</table>
</body>
</html>`,
		html.EscapeString(invoice.InvoiceID),
		html.EscapeString(invoice.InvoiceID),
		formatDate(invoice.InvoiceDate),
		statusLabel,
		html.EscapeString(invoice.CustomerName),
		html.EscapeString(invoice.CustomerEmail),
		html.EscapeString(invoice.ServiceName),
		formatAmount(invoice.Currency, invoice.TotalAmount),
		formatAmount(invoice.Currency, invoice.DepositPaid),
		formatAmount(invoice.Currency, invoice.RemainingAmount),
		balanceRow,
		html.EscapeString(invoice.PaymentID),
		html.EscapeString(invoice.OrderID))
}

// ownerAlertHTML is the plain internal notification to the site owner.
func ownerAlertHTML(invoice *entity.Invoice, intent entity.BookingIntent) string {
	phone := intent.CustomerPhone
	if phone == "" {
		phone = "not provided"
	}
	brief := intent.ProjectBrief
	if brief == "" {
		brief = "none"
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
	<meta http-equiv="Content-Type" content="text/html; charset=UTF-8" />
	<title>New booking</title>
</head>
<body style="margin: 0; padding: 20px; font-family: Helvetica, Arial, sans-serif; color: #333333; font-size: 15px; line-height: 1.6;">
	<h2 style="margin-top: 0;">New booking received</h2>
	<table border="0" cellpadding="6" cellspacing="0" style="border-collapse: collapse;">
		<tr><td style="color: #666666; padding-right: 20px;">Customer</td><td>%s &lt;%s&gt;</td></tr>
		<tr><td style="color: #666666; padding-right: 20px;">Phone</td><td>%s</td></tr>
		<tr><td style="color: #666666; padding-right: 20px;">Service</td><td>%s</td></tr>
		<tr><td style="color: #666666; padding-right: 20px;">Deposit</td><td>%s of %s total</td></tr>
		<tr><td style="color: #666666; padding-right: 20px;">Invoice</td><td>%s</td></tr>
		<tr><td style="color: #666666; padding-right: 20px;">Payment</td><td>%s</td></tr>
		<tr><td style="color: #666666; padding-right: 20px;">Region</td><td>%s</td></tr>
	</table>
	<h3>Project brief</h3>
	<p style="white-space: pre-wrap;">%s</p>
</body>
</html>`,
		html.EscapeString(invoice.CustomerName),
		html.EscapeString(invoice.CustomerEmail),
		html.EscapeString(phone),
		html.EscapeString(invoice.ServiceName),
		formatAmount(invoice.Currency, invoice.DepositPaid),
		formatAmount(invoice.Currency, invoice.TotalAmount),
		html.EscapeString(invoice.InvoiceID),
		html.EscapeString(invoice.PaymentID),
		html.EscapeString(intent.Region),
		html.EscapeString(brief))
}
