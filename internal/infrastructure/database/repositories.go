package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ashwinbuilds/booking-engine/internal/adapter/repository"
	domainRepo "github.com/ashwinbuilds/booking-engine/internal/domain/repository"
)

// Repositories holds all database-backed repository instances
type Repositories struct {
	Invoice      domainRepo.InvoiceRepository
	PaymentOrder domainRepo.PaymentOrderRepository
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		Invoice:      repository.NewInvoiceRepository(db, logger),
		PaymentOrder: repository.NewPaymentOrderRepository(db, logger),
	}
}
