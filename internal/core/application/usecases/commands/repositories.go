// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// and persistence.
package commands

import (
	"context"
	"time"

	"dispatch/internal/core/ports"
)

// Clock supplies the current instant to handlers that stamp or compare
// times, keeping eligibility and timestamp decisions testable.
type Clock func() time.Time

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends only on the repositories it actually touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CourierRepoFactory provides access to the courier repository within a transaction.
	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	// CompanyRepoFactory provides access to the company repository within a transaction.
	CompanyRepoFactory interface {
		CompanyRepository() ports.CompanyRepository
	}

	// RatingRepoFactory provides access to the rating repository within a transaction.
	RatingRepoFactory interface {
		RatingRepository() ports.RatingRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CourierUoW manages transactions for courier-only operations.
	CourierUoW interface {
		TxManager
		CourierRepoFactory
	}

	// CourierUoWFactory creates new courier unit of work instances.
	CourierUoWFactory interface {
		Create() CourierUoW
	}

	// CompanyUoW manages transactions for company-only operations.
	CompanyUoW interface {
		TxManager
		CompanyRepoFactory
	}

	// CompanyUoWFactory creates new company unit of work instances.
	CompanyUoWFactory interface {
		Create() CompanyUoW
	}

	// OrderCompanyUoW manages transactions spanning orders and companies,
	// used by order creation to read delivery defaults.
	OrderCompanyUoW interface {
		TxManager
		OrderRepoFactory
		CompanyRepoFactory
	}

	// OrderCompanyUoWFactory creates new order/company unit of work instances.
	OrderCompanyUoWFactory interface {
		Create() OrderCompanyUoW
	}

	// OrderCourierUoW manages transactions spanning orders and couriers,
	// used by acceptance, status updates, and auto-dispatch.
	OrderCourierUoW interface {
		TxManager
		OrderRepoFactory
		CourierRepoFactory
	}

	// OrderCourierUoWFactory creates new order/courier unit of work instances.
	OrderCourierUoWFactory interface {
		Create() OrderCourierUoW
	}

	// RatingUoW manages transactions for rating submission, which touches
	// the rating records, the rated order, and both party aggregates.
	RatingUoW interface {
		TxManager
		OrderRepoFactory
		CourierRepoFactory
		CompanyRepoFactory
		RatingRepoFactory
	}

	// RatingUoWFactory creates new rating unit of work instances.
	RatingUoWFactory interface {
		Create() RatingUoW
	}
)
