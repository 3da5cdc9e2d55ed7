package queries_test

import (
	"context"
	"math"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/rating"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mondayNoon is 2025-03-10 12:00 UTC, inside the fixture working hours.
var mondayNoon = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func fixedClock(at time.Time) queries.Clock {
	return func() time.Time { return at }
}

func testEngine() services.MatchEngine {
	return services.NewMatchEngine(func(a, b kernel.GeoPoint) float64 {
		return math.Abs(a.Lat()-b.Lat()) + math.Abs(a.Lng()-b.Lng())
	})
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateInStatus(ctx context.Context, o *order.Order, expected order.Status) error {
	args := m.Called(ctx, o, expected)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByTrackingCode(ctx context.Context, code kernel.TrackingCode) (*order.Order, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllPending(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllByCourier(ctx context.Context, courierID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, courierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockCourierRepository struct{ mock.Mock }

func (m *MockCourierRepository) Add(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Update(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetAllAvailable(ctx context.Context) ([]*courier.Courier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*courier.Courier), args.Error(1)
}

type MockRatingRepository struct{ mock.Mock }

func (m *MockRatingRepository) Add(ctx context.Context, r *rating.Rating) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRatingRepository) ExistsForOrder(ctx context.Context, orderID kernel.UUID, fromType rating.PartyKind) (bool, error) {
	args := m.Called(ctx, orderID, fromType)
	return args.Bool(0), args.Error(1)
}

func (m *MockRatingRepository) GetAllForTarget(ctx context.Context, toType rating.PartyKind, toID kernel.UUID) ([]*rating.Rating, error) {
	args := m.Called(ctx, toType, toID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rating.Rating), args.Error(1)
}

func waypointAt(t *testing.T, address string, lat, lng float64) order.Waypoint {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	wp, err := order.NewWaypoint(address, point, "")
	require.NoError(t, err)
	return wp
}

func pendingOrderAt(t *testing.T, priority order.Priority, lat, lng float64, createdAt time.Time) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), order.Details{
		CustomerName:             "Maria Silva",
		CustomerPhone:            "+55 11 98888-7777",
		Pickup:                   waypointAt(t, "Av. Paulista 1000", lat, lng),
		Delivery:                 waypointAt(t, "Rua Augusta 500", lat+0.01, lng+0.01),
		TotalValue:               79.90,
		DeliveryFee:              8.50,
		Priority:                 priority,
		EstimatedDeliveryMinutes: 30,
	}, createdAt)
	require.NoError(t, err)
	return o
}

func eligibleCourier(t *testing.T, name string) *courier.Courier {
	t.Helper()
	window, err := courier.NewDayWindow("08:00", "18:00", true)
	require.NoError(t, err)
	schedule, err := courier.NewWeekSchedule(map[time.Weekday]courier.DayWindow{
		time.Monday: window,
	})
	require.NoError(t, err)

	c, err := courier.NewCourier(kernel.NewUUID(), name, "+55 11 97777-1234",
		courier.Motorcycle, schedule, mondayNoon.Add(-24*time.Hour))
	require.NoError(t, err)
	c.Verify()
	require.NoError(t, c.SetAvailability(true))
	return c
}
