package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// PaymentOrder status values. The row is an audit copy of the gateway-side
// order; only the gateway moves the money, we just track what we asked for.
const (
	PaymentOrderStatusCreated   = "created"
	PaymentOrderStatusPaid      = "paid"
	PaymentOrderStatusAbandoned = "abandoned"
)

// PaymentOrder is the server-side record of a gateway-registered intent to
// pay. One row per checkout attempt; a retry creates a new row.
type PaymentOrder struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   string    `gorm:"column:order_id;uniqueIndex;size:100;not null" json:"order_id"`
	Gateway   string    `gorm:"size:32;not null" json:"gateway"`
	Amount    int64     `gorm:"not null" json:"amount"`
	Currency  string    `gorm:"size:3;not null" json:"currency"`
	Receipt   string    `gorm:"uniqueIndex;size:100;not null" json:"receipt"`
	Status    string    `gorm:"size:32;not null" json:"status"`
	Notes     JSONB     `gorm:"type:jsonb" json:"notes,omitempty"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (PaymentOrder) TableName() string {
	return "payment_orders"
}

// JSONB represents a JSONB database type
type JSONB map[string]interface{}

// Value implements driver.Valuer interface
func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONB) Scan(src interface{}) error {
	if src == nil {
		*j = nil
		return nil
	}

	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		*j = make(JSONB)
		return nil
	}
}
