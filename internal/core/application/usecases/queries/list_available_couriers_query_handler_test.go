package queries_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListAvailableCouriersQueryHandler_Handle(t *testing.T) {
	t.Run("ranks by rating and annotates distance", func(t *testing.T) {
		ctx := t.Context()
		target := pendingOrderAt(t, order.Normal, 0, 0, mondayNoon.Add(-time.Hour))

		rookie := eligibleCourier(t, "Rookie")
		veteran := eligibleCourier(t, "Veteran")
		require.NoError(t, veteran.ApplyReputation(courier.Reputation{Average: 4.9, Count: 200}))
		position, err := kernel.NewGeoPoint(0, 0.25)
		require.NoError(t, err)
		require.NoError(t, veteran.UpdateLocation(position, mondayNoon))

		orderRepo := new(MockOrderRepository)
		courierRepo := new(MockCourierRepository)
		orderRepo.On("Get", ctx, target.ID()).Return(target, nil).Once()
		courierRepo.On("GetAllAvailable", ctx).Return([]*courier.Courier{rookie, veteran}, nil).Once()

		query, err := queries.NewListAvailableCouriersQuery(target.ID(), nil, nil)
		require.NoError(t, err)

		handler := queries.NewListAvailableCouriersQueryHandler(
			orderRepo, courierRepo, testEngine(), fixedClock(mondayNoon))
		result, err := handler.Handle(ctx, query)

		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, "Veteran", result[0].Name)
		assert.InDelta(t, 4.9, result[0].RatingAverage, 0.001)
		assert.Equal(t, 200, result[0].RatingCount)
		require.NotNil(t, result[0].PickupDistanceKm)
		assert.InDelta(t, 0.25, *result[0].PickupDistanceKm, 0.0001)
		assert.Equal(t, "Rookie", result[1].Name)
		assert.Nil(t, result[1].PickupDistanceKm)
		assert.Equal(t, "motorcycle", result[0].Vehicle)
	})

	t.Run("min rating filters candidates", func(t *testing.T) {
		ctx := t.Context()
		target := pendingOrderAt(t, order.Normal, 0, 0, mondayNoon.Add(-time.Hour))

		rookie := eligibleCourier(t, "Rookie")
		veteran := eligibleCourier(t, "Veteran")
		require.NoError(t, veteran.ApplyReputation(courier.Reputation{Average: 4.9, Count: 200}))

		orderRepo := new(MockOrderRepository)
		courierRepo := new(MockCourierRepository)
		orderRepo.On("Get", ctx, target.ID()).Return(target, nil).Once()
		courierRepo.On("GetAllAvailable", ctx).Return([]*courier.Courier{rookie, veteran}, nil).Once()

		minRating := 4.0
		query, err := queries.NewListAvailableCouriersQuery(target.ID(), &minRating, nil)
		require.NoError(t, err)

		handler := queries.NewListAvailableCouriersQueryHandler(
			orderRepo, courierRepo, testEngine(), fixedClock(mondayNoon))
		result, err := handler.Handle(ctx, query)

		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "Veteran", result[0].Name)
	})

	t.Run("off shift couriers are excluded", func(t *testing.T) {
		ctx := t.Context()
		target := pendingOrderAt(t, order.Normal, 0, 0, mondayNoon.Add(-time.Hour))
		onlyCourier := eligibleCourier(t, "Carlos")

		orderRepo := new(MockOrderRepository)
		courierRepo := new(MockCourierRepository)
		orderRepo.On("Get", ctx, target.ID()).Return(target, nil).Once()
		courierRepo.On("GetAllAvailable", ctx).Return([]*courier.Courier{onlyCourier}, nil).Once()

		query, err := queries.NewListAvailableCouriersQuery(target.ID(), nil, nil)
		require.NoError(t, err)

		lateEvening := time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC)
		handler := queries.NewListAvailableCouriersQueryHandler(
			orderRepo, courierRepo, testEngine(), fixedClock(lateEvening))
		result, err := handler.Handle(ctx, query)

		require.NoError(t, err)
		assert.Empty(t, result)
	})
}
