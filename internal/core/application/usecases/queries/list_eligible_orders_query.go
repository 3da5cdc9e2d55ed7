package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrListEligibleOrdersQueryIsNotConstructed = errors.New(
	"ListEligibleOrdersQuery must be created via NewListEligibleOrdersQuery constructor",
)

// ListEligibleOrdersQuery retrieves the pending orders a courier should see,
// ranked by the match engine: priority first, oldest first within a priority.
// MaxDistanceKm optionally drops orders whose pickup is too far from the
// courier's last reported location.
type ListEligibleOrdersQuery struct {
	courierID     kernel.UUID
	maxDistanceKm *float64

	guard guard.ConstructorGuard
}

// NewListEligibleOrdersQuery creates a query for a courier's order feed.
func NewListEligibleOrdersQuery(courierID kernel.UUID, maxDistanceKm *float64) (ListEligibleOrdersQuery, error) {
	if err := courierID.Validate(); err != nil {
		return ListEligibleOrdersQuery{}, err
	}
	return ListEligibleOrdersQuery{
		courierID:     courierID,
		maxDistanceKm: maxDistanceKm,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListEligibleOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListEligibleOrdersQueryIsNotConstructed)
}

// CourierID returns the courier whose feed is requested.
func (q ListEligibleOrdersQuery) CourierID() kernel.UUID { return q.courierID }

// MaxDistanceKm returns the optional pickup distance cap.
func (q ListEligibleOrdersQuery) MaxDistanceKm() *float64 { return q.maxDistanceKm }

// ListEligibleOrdersQueryResponse is one offered order in the courier's feed.
type ListEligibleOrdersQueryResponse struct {
	ID               kernel.UUID
	TrackingCode     string
	Priority         string
	PickupAddress    string
	DeliveryAddress  string
	DeliveryFee      float64
	EstimatedMinutes int
	PickupDistanceKm *float64
	CreatedAt        time.Time
}
