package migrations

import (
	"gorm.io/gorm"

	"github.com/fieldserv-inc/fieldserv/internal/infrastructure/persistence/models"
)

func MigrateTicketTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.TicketModel{},
	)
}

func MigrateInvoiceTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.InvoiceModel{},
	)
}

func MigrateSettlementTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.PaymentBatchModel{},
	)
}

func MigrateRatingTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.RatingModel{},
		&models.ContractorReputationModel{},
	)
}

// AutoMigrateAll creates or updates every table. Intended for development and
// tests; production schema changes go through the versioned SQL scripts.
func AutoMigrateAll(db *gorm.DB) error {
	for _, migrate := range []func(*gorm.DB) error{
		MigrateTicketTables,
		MigrateInvoiceTables,
		MigrateSettlementTables,
		MigrateRatingTables,
	} {
		if err := migrate(db); err != nil {
			return err
		}
	}
	return nil
}
