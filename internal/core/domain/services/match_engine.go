package services

import (
	"sort"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// DistanceFunc returns the distance between two points in kilometers.
// The engine treats it as an opaque collaborator; the default adapter is the
// haversine great-circle distance.
type DistanceFunc func(a, b kernel.GeoPoint) float64

// MatchEngine ranks orders for couriers and couriers for orders. It is a
// pure domain service: it reads caller-supplied snapshots, applies filters,
// sorts, and returns new slices. Both rankings are fully deterministic for a
// given input.
type MatchEngine struct {
	distance DistanceFunc
}

// NewMatchEngine creates a MatchEngine using the given distance collaborator.
func NewMatchEngine(distance DistanceFunc) MatchEngine {
	return MatchEngine{distance: distance}
}

// Distance returns the configured distance between two points in kilometers.
func (m MatchEngine) Distance(a, b kernel.GeoPoint) float64 {
	return m.distance(a, b)
}

// OrderFilter narrows OrdersForCourier results. A nil MaxDistanceKm disables
// the distance filter.
type OrderFilter struct {
	MaxDistanceKm *float64
}

// CourierFilter narrows CouriersForOrder results. Nil fields disable the
// corresponding filter.
type CourierFilter struct {
	MinRating     *float64
	MaxDistanceKm *float64
}

// OrdersForCourier returns the pending orders a courier should see, most
// attractive first: priority descending (urgent > high > normal > low), then
// oldest first within a priority. With a distance filter, orders whose pickup
// point is farther than MaxDistanceKm from the courier are dropped.
func (m MatchEngine) OrdersForCourier(
	orders []*order.Order,
	courierLocation kernel.GeoPoint,
	filter OrderFilter,
) []*order.Order {
	matched := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status() != order.Pending {
			continue
		}
		if filter.MaxDistanceKm != nil {
			d := m.distance(courierLocation, o.Details().Pickup.Point())
			if d > *filter.MaxDistanceKm {
				continue
			}
		}
		matched = append(matched, o)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Priority() != matched[j].Priority() {
			return matched[i].Priority().Rank() > matched[j].Priority().Rank()
		}
		return matched[i].CreatedAt().Before(matched[j].CreatedAt())
	})

	return matched
}

// CouriersForOrder returns the couriers eligible to take an order, best
// first: rating descending, ties broken by successful deliveries descending
// and then by ID so the ranking never depends on input order. Couriers that
// fail IsEligibleAt(now), have no reported location when a distance filter is
// set, or fall outside the filters are dropped.
func (m MatchEngine) CouriersForOrder(
	couriers []*courier.Courier,
	pickup kernel.GeoPoint,
	now time.Time,
	filter CourierFilter,
) []*courier.Courier {
	matched := make([]*courier.Courier, 0, len(couriers))
	for _, c := range couriers {
		if !c.IsEligibleAt(now) {
			continue
		}
		if filter.MinRating != nil && c.Reputation().Average < *filter.MinRating {
			continue
		}
		if filter.MaxDistanceKm != nil {
			location := c.Location()
			if location == nil {
				continue
			}
			if m.distance(*location, pickup) > *filter.MaxDistanceKm {
				continue
			}
		}
		matched = append(matched, c)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if a.Reputation().Average != b.Reputation().Average {
			return a.Reputation().Average > b.Reputation().Average
		}
		if a.Counters().Successful != b.Counters().Successful {
			return a.Counters().Successful > b.Counters().Successful
		}
		return a.ID().String() < b.ID().String()
	})

	return matched
}

// BestCourierForOrder returns the top-ranked courier for an order, or nil
// when nobody is eligible. The auto-dispatch job uses it to pick the courier
// it offers the oldest pending order to.
func (m MatchEngine) BestCourierForOrder(
	couriers []*courier.Courier,
	pickup kernel.GeoPoint,
	now time.Time,
	filter CourierFilter,
) *courier.Courier {
	ranked := m.CouriersForOrder(couriers, pickup, now, filter)
	if len(ranked) == 0 {
		return nil
	}
	return ranked[0]
}
