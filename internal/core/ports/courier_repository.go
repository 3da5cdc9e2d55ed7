package ports

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Add persists a new courier aggregate to storage.
	Add(ctx context.Context, aggregate *courier.Courier) error

	// Update persists changes to an existing courier aggregate.
	Update(ctx context.Context, aggregate *courier.Courier) error

	// Get retrieves a courier aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetForUpdate retrieves a courier aggregate and locks its row for the
	// rest of the transaction. Read-modify-write sequences on counters or
	// reputation must go through it so concurrent writers serialize instead
	// of overwriting each other.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAllAvailable retrieves every active, verified courier that has
	// switched itself on for work. Schedule checks stay in the domain.
	GetAllAvailable(ctx context.Context) ([]*courier.Courier, error)
}
