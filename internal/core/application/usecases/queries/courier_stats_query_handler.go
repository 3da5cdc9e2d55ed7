package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// statsTrailingWindow is the floating window of the DeliveredLast30 counter.
const statsTrailingWindow = 30 * 24 * time.Hour

// CourierStatsQueryHandler summarizes a courier's order history: volume,
// earnings, and delivery performance. Derived timing facts (actual minutes,
// on-time) come from the order aggregate, keeping one definition of each.
type CourierStatsQueryHandler struct {
	orders ports.OrderRepository
	now    Clock
}

// NewCourierStatsQueryHandler creates a handler for courier performance queries.
func NewCourierStatsQueryHandler(orders ports.OrderRepository, now Clock) CourierStatsQueryHandler {
	return CourierStatsQueryHandler{orders: orders, now: now}
}

// Handle executes the summary query. Rates are computed over finished orders;
// a courier with no history gets zeroes, not an error.
func (h CourierStatsQueryHandler) Handle(
	ctx context.Context,
	query CourierStatsQuery,
) (CourierStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return CourierStatsQueryResponse{}, err
	}

	history, err := h.orders.GetAllByCourier(ctx, query.CourierID())
	if err != nil {
		return CourierStatsQueryResponse{}, err
	}

	now := h.now()
	windowStart := now.Add(-statsTrailingWindow)

	resp := CourierStatsQueryResponse{
		CourierID:   query.CourierID(),
		TotalOrders: len(history),
	}

	onTime := 0
	totalMinutes := 0
	timed := 0
	for _, o := range history {
		switch o.Status() {
		case order.Delivered:
			resp.Delivered++
			resp.TotalEarnings += o.Details().DeliveryFee
			if at := o.DeliveredAt(); at != nil && !at.Before(windowStart) && !at.After(now) {
				resp.DeliveredLast30++
			}
			if flag := o.IsOnTime(); flag != nil && *flag {
				onTime++
			}
			if minutes := o.ActualDeliveryTime(); minutes != nil {
				totalMinutes += *minutes
				timed++
			}
		case order.Cancelled:
			resp.Cancelled++
		default:
			resp.ActiveOrders++
		}
	}

	if finished := resp.Delivered + resp.Cancelled; finished > 0 {
		resp.SuccessRate = float64(resp.Delivered) / float64(finished)
	}
	if resp.Delivered > 0 {
		resp.OnTimeRate = float64(onTime) / float64(resp.Delivered)
	}
	if timed > 0 {
		resp.AvgDeliveryTimeMinutes = float64(totalMinutes) / float64(timed)
	}

	return resp, nil
}
