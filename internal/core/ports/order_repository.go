package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate without any
	// concurrency guard. Use UpdateInStatus for lifecycle transitions.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateInStatus persists the aggregate only if the stored row is still
	// in expectedStatus, as one conditional write. When another caller moved
	// the order first the write affects no rows and a ConflictError is
	// returned; the caller's change is discarded, never merged.
	UpdateInStatus(ctx context.Context, aggregate *order.Order, expectedStatus order.Status) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByTrackingCode retrieves an order by its public tracking code.
	GetByTrackingCode(ctx context.Context, code kernel.TrackingCode) (*order.Order, error)

	// GetAllPending retrieves every order still waiting for a courier,
	// oldest first.
	GetAllPending(ctx context.Context) ([]*order.Order, error)

	// GetAllByCourier retrieves every order ever assigned to a courier.
	GetAllByCourier(ctx context.Context, courierID kernel.UUID) ([]*order.Order, error)
}
