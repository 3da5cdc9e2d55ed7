package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrListAvailableCouriersQueryIsNotConstructed = errors.New(
	"ListAvailableCouriersQuery must be created via NewListAvailableCouriersQuery constructor",
)

// ListAvailableCouriersQuery retrieves the couriers eligible to take a given
// order, ranked best first by the match engine: rating, then successful
// deliveries, then identity for a stable order.
type ListAvailableCouriersQuery struct {
	orderID       kernel.UUID
	minRating     *float64
	maxDistanceKm *float64

	guard guard.ConstructorGuard
}

// NewListAvailableCouriersQuery creates a query for an order's courier ranking.
func NewListAvailableCouriersQuery(
	orderID kernel.UUID,
	minRating *float64,
	maxDistanceKm *float64,
) (ListAvailableCouriersQuery, error) {
	if err := orderID.Validate(); err != nil {
		return ListAvailableCouriersQuery{}, err
	}
	return ListAvailableCouriersQuery{
		orderID:       orderID,
		minRating:     minRating,
		maxDistanceKm: maxDistanceKm,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListAvailableCouriersQuery) Validate() error {
	return q.guard.Validate(ErrListAvailableCouriersQueryIsNotConstructed)
}

// OrderID returns the order the couriers are ranked for.
func (q ListAvailableCouriersQuery) OrderID() kernel.UUID { return q.orderID }

// MinRating returns the optional rating floor.
func (q ListAvailableCouriersQuery) MinRating() *float64 { return q.minRating }

// MaxDistanceKm returns the optional pickup distance cap.
func (q ListAvailableCouriersQuery) MaxDistanceKm() *float64 { return q.maxDistanceKm }

// ListAvailableCouriersQueryResponse is one ranked courier candidate.
type ListAvailableCouriersQueryResponse struct {
	ID                   kernel.UUID
	Name                 string
	Vehicle              string
	RatingAverage        float64
	RatingCount          int
	SuccessfulDeliveries int
	PickupDistanceKm     *float64
}
