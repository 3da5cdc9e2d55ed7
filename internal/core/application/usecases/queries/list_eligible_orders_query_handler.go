package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// ListEligibleOrdersQueryHandler builds a courier's order feed. Unlike the
// raw-SQL reads, this one goes through the repositories: ranking and distance
// filtering are domain logic owned by the match engine, not the database.
type ListEligibleOrdersQueryHandler struct {
	orders   ports.OrderRepository
	couriers ports.CourierRepository
	engine   services.MatchEngine
}

// NewListEligibleOrdersQueryHandler creates a handler for courier order feeds.
func NewListEligibleOrdersQueryHandler(
	orders ports.OrderRepository,
	couriers ports.CourierRepository,
	engine services.MatchEngine,
) ListEligibleOrdersQueryHandler {
	return ListEligibleOrdersQueryHandler{orders: orders, couriers: couriers, engine: engine}
}

// Handle executes the feed query. The distance filter and the per-order
// distance annotation both need the courier's last reported location; without
// one the feed is returned unfiltered and unannotated.
func (h ListEligibleOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListEligibleOrdersQuery,
) ([]ListEligibleOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	feedCourier, err := h.couriers.Get(ctx, query.CourierID())
	if err != nil {
		return nil, err
	}

	pending, err := h.orders.GetAllPending(ctx)
	if err != nil {
		return nil, err
	}

	location := feedCourier.Location()
	filter := services.OrderFilter{}
	reference := kernel.GeoPoint{}
	if location != nil {
		filter.MaxDistanceKm = query.MaxDistanceKm()
		reference = *location
	}

	ranked := h.engine.OrdersForCourier(pending, reference, filter)

	responses := make([]ListEligibleOrdersQueryResponse, 0, len(ranked))
	for _, o := range ranked {
		resp := ListEligibleOrdersQueryResponse{
			ID:               o.ID(),
			TrackingCode:     o.TrackingCode().String(),
			Priority:         o.Priority().String(),
			PickupAddress:    o.Details().Pickup.Address(),
			DeliveryAddress:  o.Details().Delivery.Address(),
			DeliveryFee:      o.Details().DeliveryFee,
			EstimatedMinutes: o.Details().EstimatedDeliveryMinutes,
			CreatedAt:        o.CreatedAt(),
		}
		if location != nil {
			d := h.engine.Distance(*location, o.Details().Pickup.Point())
			resp.PickupDistanceKm = &d
		}
		responses = append(responses, resp)
	}

	return responses, nil
}
