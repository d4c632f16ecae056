// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// persistence and post-commit relay notification.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends on the narrowest interface covering the repositories
// it touches.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// DriverRepoFactory provides access to the driver repository within a transaction.
	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	// CustomerRepoFactory provides access to the customer repository within a transaction.
	CustomerRepoFactory interface {
		CustomerRepository() ports.CustomerRepository
	}

	// HistoryRepoFactory provides access to the status history repository within a transaction.
	HistoryRepoFactory interface {
		StatusHistoryRepository() ports.StatusHistoryRepository
	}

	// ProofRepoFactory provides access to the proof of delivery repository within a transaction.
	ProofRepoFactory interface {
		ProofOfDeliveryRepository() ports.ProofOfDeliveryRepository
	}

	// OrderUoW manages transactions for order-only operations such as
	// detail updates.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// DriverUoW manages transactions for driver-only operations.
	DriverUoW interface {
		TxManager
		DriverRepoFactory
	}

	// DriverUoWFactory creates new driver unit of work instances.
	DriverUoWFactory interface {
		Create() DriverUoW
	}

	// CreateOrderUoW manages transactions for order creation: the order row,
	// the customer existence check and the initial history record.
	CreateOrderUoW interface {
		TxManager
		OrderRepoFactory
		CustomerRepoFactory
		HistoryRepoFactory
	}

	// CreateOrderUoWFactory creates new order creation unit of work instances.
	CreateOrderUoWFactory interface {
		Create() CreateOrderUoW
	}

	// LifecycleUoW manages transactions that move an order through its
	// lifecycle: the order row, the bound driver and the history record
	// change together.
	LifecycleUoW interface {
		TxManager
		OrderRepoFactory
		DriverRepoFactory
		HistoryRepoFactory
	}

	// LifecycleUoWFactory creates new lifecycle unit of work instances.
	LifecycleUoWFactory interface {
		Create() LifecycleUoW
	}

	// ProofUoW manages transactions for proof submission, which also
	// auto-delivers the order.
	ProofUoW interface {
		TxManager
		OrderRepoFactory
		DriverRepoFactory
		HistoryRepoFactory
		ProofRepoFactory
	}

	// ProofUoWFactory creates new proof submission unit of work instances.
	ProofUoWFactory interface {
		Create() ProofUoW
	}
)
