package postgres

import (
	"ordersync/internal/adapters/out/postgres/invoicerepo"
	"ordersync/internal/adapters/out/postgres/orderrepo"
	"ordersync/internal/adapters/out/postgres/projectionrepo"

	"gorm.io/gorm"
)

// MigrateOrderStore creates the order service schema.
func MigrateOrderStore(db *gorm.DB) error {
	return db.AutoMigrate(&orderrepo.OrderDTO{})
}

// MigrateInvoiceStore creates the invoice service schema.
func MigrateInvoiceStore(db *gorm.DB) error {
	return db.AutoMigrate(&projectionrepo.OrderProjectionDTO{}, &invoicerepo.InvoiceDTO{})
}
