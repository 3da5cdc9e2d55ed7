package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. Client code manages
// the transaction lifecycle explicitly: Begin, defer Rollback, Commit.
// Rollback after a successful Commit is a no-op.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// CourierRepository returns a CourierRepository bound to the current transaction.
	CourierRepository() CourierRepository

	// CompanyRepository returns a CompanyRepository bound to the current transaction.
	CompanyRepository() CompanyRepository

	// RatingRepository returns a RatingRepository bound to the current transaction.
	RatingRepository() RatingRepository
}
