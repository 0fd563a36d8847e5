package model

import (
	"time"
)

// Invoice is the durable invoice row. Amounts are minor currency units.
type Invoice struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	InvoiceID       string    `gorm:"column:invoice_id;uniqueIndex;size:64;not null" json:"invoice_id"`
	CustomerName    string    `gorm:"size:200;not null" json:"customer_name"`
	CustomerEmail   string    `gorm:"size:254;not null;index" json:"customer_email"`
	CustomerPhone   string    `gorm:"size:20" json:"customer_phone,omitempty"`
	ServiceName     string    `gorm:"size:200;not null" json:"service_name"`
	TotalAmount     int64     `gorm:"not null" json:"total_amount"`
	DepositPaid     int64     `gorm:"not null" json:"deposit_paid"`
	RemainingAmount int64     `gorm:"not null" json:"remaining_amount"`
	Status          string    `gorm:"size:32;not null" json:"status"`
	Currency        string    `gorm:"size:3;not null" json:"currency"`
	PaymentID       string    `gorm:"size:100;index" json:"payment_id"`
	OrderID         string    `gorm:"size:100;index" json:"order_id"`
	InvoiceDate     time.Time `gorm:"not null" json:"invoice_date"`
	DueDate         time.Time `gorm:"not null" json:"due_date"`
	CreatedAt       time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt       time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}
