package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCourierStatsQueryIsNotConstructed = errors.New(
	"CourierStatsQuery must be created via NewCourierStatsQuery constructor",
)

// CourierStatsQuery retrieves a courier's delivery performance summary,
// computed over the courier's full order history.
type CourierStatsQuery struct {
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCourierStatsQuery creates a query for a courier's performance summary.
func NewCourierStatsQuery(courierID kernel.UUID) (CourierStatsQuery, error) {
	if err := courierID.Validate(); err != nil {
		return CourierStatsQuery{}, err
	}
	return CourierStatsQuery{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q CourierStatsQuery) Validate() error {
	return q.guard.Validate(ErrCourierStatsQueryIsNotConstructed)
}

// CourierID returns the courier whose summary is requested.
func (q CourierStatsQuery) CourierID() kernel.UUID { return q.courierID }

// CourierStatsQueryResponse is a courier's delivery performance summary.
// Rates are fractions in [0, 1]; averages are whole minutes.
type CourierStatsQueryResponse struct {
	CourierID kernel.UUID

	TotalOrders     int
	ActiveOrders    int
	Delivered       int
	Cancelled       int
	DeliveredLast30 int

	TotalEarnings          float64
	SuccessRate            float64
	OnTimeRate             float64
	AvgDeliveryTimeMinutes float64
}
