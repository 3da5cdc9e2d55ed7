package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// Clock supplies the current time to handlers whose reads depend on it, such
// as working-hours eligibility and trailing windows. Injected so tests can
// pin it.
type Clock func() time.Time

// ListAvailableCouriersQueryHandler ranks couriers for an order through the
// match engine. Eligibility (verified, available, on shift) and ranking are
// domain logic, so this read goes through the repositories rather than SQL.
type ListAvailableCouriersQueryHandler struct {
	orders   ports.OrderRepository
	couriers ports.CourierRepository
	engine   services.MatchEngine
	now      Clock
}

// NewListAvailableCouriersQueryHandler creates a handler for courier rankings.
func NewListAvailableCouriersQueryHandler(
	orders ports.OrderRepository,
	couriers ports.CourierRepository,
	engine services.MatchEngine,
	now Clock,
) ListAvailableCouriersQueryHandler {
	return ListAvailableCouriersQueryHandler{orders: orders, couriers: couriers, engine: engine, now: now}
}

// Handle executes the ranking query for the order's pickup point.
func (h ListAvailableCouriersQueryHandler) Handle(
	ctx context.Context,
	query ListAvailableCouriersQuery,
) ([]ListAvailableCouriersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	target, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	available, err := h.couriers.GetAllAvailable(ctx)
	if err != nil {
		return nil, err
	}

	pickup := target.Details().Pickup.Point()
	ranked := h.engine.CouriersForOrder(available, pickup, h.now(), services.CourierFilter{
		MinRating:     query.MinRating(),
		MaxDistanceKm: query.MaxDistanceKm(),
	})

	responses := make([]ListAvailableCouriersQueryResponse, 0, len(ranked))
	for _, c := range ranked {
		resp := ListAvailableCouriersQueryResponse{
			ID:                   c.ID(),
			Name:                 c.Name(),
			Vehicle:              c.Vehicle().String(),
			RatingAverage:        c.Reputation().Average,
			RatingCount:          c.Reputation().Count,
			SuccessfulDeliveries: c.Counters().Successful,
		}
		if location := c.Location(); location != nil {
			d := h.engine.Distance(*location, pickup)
			resp.PickupDistanceKm = &d
		}
		responses = append(responses, resp)
	}

	return responses, nil
}
