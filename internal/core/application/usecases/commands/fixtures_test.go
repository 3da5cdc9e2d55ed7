package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/company"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

// mondayNoon is 2025-03-10 12:00 UTC, inside the fixture working hours.
var mondayNoon = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func testWaypoint(t *testing.T, address string) order.Waypoint {
	t.Helper()
	point, err := kernel.NewGeoPoint(-23.5505, -46.6333)
	require.NoError(t, err)
	wp, err := order.NewWaypoint(address, point, "")
	require.NoError(t, err)
	return wp
}

func testDetails(t *testing.T) order.Details {
	t.Helper()
	return order.Details{
		CustomerName:             "Maria Silva",
		CustomerPhone:            "+55 11 98888-7777",
		Pickup:                   testWaypoint(t, "Av. Paulista 1000"),
		Delivery:                 testWaypoint(t, "Rua Augusta 500"),
		TotalValue:               79.90,
		DeliveryFee:              8.50,
		Priority:                 order.Normal,
		EstimatedDeliveryMinutes: 30,
	}
}

func pendingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), testDetails(t), mondayNoon.Add(-time.Hour))
	require.NoError(t, err)
	return o
}

func acceptedOrder(t *testing.T, courierID kernel.UUID) *order.Order {
	t.Helper()
	o := pendingOrder(t)
	require.NoError(t, o.Accept(courierID, mondayNoon.Add(-30*time.Minute)))
	return o
}

func deliveredOrder(t *testing.T, courierID kernel.UUID) *order.Order {
	t.Helper()
	o := acceptedOrder(t, courierID)
	require.NoError(t, o.TransitionTo(order.PickedUp, courierID, mondayNoon.Add(-20*time.Minute), ""))
	require.NoError(t, o.TransitionTo(order.Delivered, courierID, mondayNoon.Add(-5*time.Minute), ""))
	return o
}

// newCourierFixture is a freshly registered courier: active, unverified,
// unavailable.
func newCourierFixture(t *testing.T) *courier.Courier {
	t.Helper()
	window, err := courier.NewDayWindow("08:00", "18:00", true)
	require.NoError(t, err)
	schedule, err := courier.NewWeekSchedule(map[time.Weekday]courier.DayWindow{
		time.Monday: window,
	})
	require.NoError(t, err)

	c, err := courier.NewCourier(kernel.NewUUID(), "Carlos Mendes", "+55 11 97777-1234",
		courier.Motorcycle, schedule, mondayNoon.Add(-24*time.Hour))
	require.NoError(t, err)
	return c
}

// eligibleCourier is on shift at mondayNoon: verified, available, Monday
// working hours covering noon.
func eligibleCourier(t *testing.T) *courier.Courier {
	t.Helper()
	c := newCourierFixture(t)
	c.Verify()
	require.NoError(t, c.SetAvailability(true))
	return c
}

func activeCompany(t *testing.T) *company.Company {
	t.Helper()
	location, err := kernel.NewGeoPoint(-23.5505, -46.6333)
	require.NoError(t, err)
	c, err := company.NewCompany(kernel.NewUUID(), "Cantina da Nonna", "+55 11 3333-4444",
		"Rua Oscar Freire 200", location, company.DeliveryConfig{
			MaxDeliveryRadiusKm:    8,
			DeliveryFee:            7.50,
			AverageDeliveryMinutes: 35,
		}, mondayNoon.Add(-48*time.Hour))
	require.NoError(t, err)
	return c
}
