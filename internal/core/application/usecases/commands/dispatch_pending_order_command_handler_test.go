package commands_test

import (
	"math"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testEngine() services.MatchEngine {
	return services.NewMatchEngine(func(a, b kernel.GeoPoint) float64 {
		return math.Abs(a.Lat()-b.Lat()) + math.Abs(a.Lng()-b.Lng())
	})
}

func TestDispatchPendingOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	oldest := pendingOrder(t)
	newcomer := eligibleCourier(t)
	veteran := eligibleCourier(t)
	require.NoError(t, veteran.ApplyReputation(courier.Reputation{Average: 4.8, Count: 120}))
	cmd := commands.NewDispatchPendingOrderCommand()

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetAllPending", ctx).Return([]*order.Order{oldest}, nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("GetAllAvailable", ctx).Return([]*courier.Courier{newcomer, veteran}, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("UpdateInStatus", ctx, oldest, order.Pending).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderCourierUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDispatchPendingOrderCommandHandler(factory, testEngine(), fixedClock(mondayNoon))
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Accepted, oldest.Status())
	require.NotNil(t, oldest.CourierID())
	assert.True(t, oldest.CourierID().IsEqual(veteran.ID()))
	orderRepo.AssertExpectations(t)
	courierRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestDispatchPendingOrderCommandHandler_Handle_NoPendingOrders(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewDispatchPendingOrderCommand()

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetAllPending", ctx).Return([]*order.Order{}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderCourierUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDispatchPendingOrderCommandHandler(factory, testEngine(), fixedClock(mondayNoon))
	err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrNoPendingOrders)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestDispatchPendingOrderCommandHandler_Handle_NoEligibleCouriers(t *testing.T) {
	ctx := t.Context()
	oldest := pendingOrder(t)
	offDuty := eligibleCourier(t)
	offDuty.Deactivate()
	cmd := commands.NewDispatchPendingOrderCommand()

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetAllPending", ctx).Return([]*order.Order{oldest}, nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("GetAllAvailable", ctx).Return([]*courier.Courier{offDuty}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderCourierUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDispatchPendingOrderCommandHandler(factory, testEngine(), fixedClock(mondayNoon))
	err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrNoEligibleCouriers)
	assert.Equal(t, order.Pending, oldest.Status())
}

func TestDispatchPendingOrderCommandHandler_Handle_LostRace(t *testing.T) {
	ctx := t.Context()
	oldest := pendingOrder(t)
	testCourier := eligibleCourier(t)
	cmd := commands.NewDispatchPendingOrderCommand()

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)

	conflict := errs.NewConflictError("order", oldest.ID().String())
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetAllPending", ctx).Return([]*order.Order{oldest}, nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("GetAllAvailable", ctx).Return([]*courier.Courier{testCourier}, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("UpdateInStatus", ctx, oldest, order.Pending).Return(conflict).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderCourierUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDispatchPendingOrderCommandHandler(factory, testEngine(), fixedClock(mondayNoon))
	err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
