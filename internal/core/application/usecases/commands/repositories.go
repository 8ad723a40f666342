// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"
	"errors"

	"ordersync/internal/core/ports"
	"ordersync/internal/pkg/errs"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderProjectionRepoFactory provides access to the projection repository.
	OrderProjectionRepoFactory interface {
		OrderProjectionRepository() ports.OrderProjectionRepository
	}

	// InvoiceRepoFactory provides access to the invoice repository.
	InvoiceRepoFactory interface {
		InvoiceRepository() ports.InvoiceRepository
	}

	// OrderUoW manages transactions on the order service side.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// InvoiceUoW manages transactions on the invoice service side, which owns
	// both the order projection and the invoices.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   projections := uow.OrderProjectionRepository()
	//   invoices := uow.InvoiceRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	InvoiceUoW interface {
		TxManager
		OrderProjectionRepoFactory
		InvoiceRepoFactory
	}

	// InvoiceUoWFactory creates new invoice unit of work instances.
	InvoiceUoWFactory interface {
		Create() InvoiceUoW
	}
)

// internalFault hides storage and channel failures behind a generic error.
// Errors that already belong to the taxonomy pass through unchanged.
func internalFault(err error) error {
	if err == nil {
		return nil
	}
	if errs.IsClientError(err) ||
		errors.Is(err, errs.ErrConflict) ||
		errors.Is(err, errs.ErrInternalFault) {
		return err
	}
	return errs.NewInternalFaultError(err)
}
