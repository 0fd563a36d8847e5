package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ashwinbuilds/booking-engine/internal/domain/model"
)

// Migrate runs database migrations
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	if err := db.AutoMigrate(
		&model.PaymentOrder{},
		&model.Invoice{},
	); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	if err := createCustomIndexes(db); err != nil {
		logger.Error("Failed to create custom indexes", zap.Error(err))
		return err
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// createCustomIndexes creates indexes GORM doesn't handle automatically
func createCustomIndexes(db *gorm.DB) error {
	// Support lookups arrive with a payment id and, occasionally, only an
	// email address.
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_invoices_email_date ON invoices (customer_email, invoice_date DESC)`).Error; err != nil {
		return err
	}
	return nil
}
