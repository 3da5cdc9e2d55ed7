package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/rating"
)

// RatingRepository defines the persistence contract for rating records.
// Records are insert-only; the one-per-(order, side) rule is enforced both by
// ExistsForOrder inside the submission transaction and by a unique index on
// (order_id, from_type).
type RatingRepository interface {
	// Add persists a new rating record. A duplicate (orderID, fromType)
	// pair fails with a ConflictError from the unique index.
	Add(ctx context.Context, record *rating.Rating) error

	// ExistsForOrder reports whether the given side already rated the order.
	ExistsForOrder(ctx context.Context, orderID kernel.UUID, fromType rating.PartyKind) (bool, error)

	// GetAllForTarget retrieves every rating received by one party.
	GetAllForTarget(ctx context.Context, toType rating.PartyKind, toID kernel.UUID) ([]*rating.Rating, error)
}
