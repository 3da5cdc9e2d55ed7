package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	owner := activeCompany(t)
	orderID := kernel.NewUUID()
	fee := 12.00
	minutes := 45
	cmd, err := commands.NewCreateOrderCommand(orderID, owner.ID(),
		"Maria Silva", "+55 11 98888-7777",
		testWaypoint(t, "Av. Paulista 1000"), testWaypoint(t, "Rua Augusta 500"),
		79.90, &fee, order.Urgent, &minutes, "leave at the reception")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	companyRepo := new(MockCompanyRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CompanyRepository").Return(companyRepo).Once(),
		companyRepo.On("Get", ctx, owner.ID()).Return(owner, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderCompanyUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(factory, fixedClock(mondayNoon))
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	created := orderRepo.Calls[0].Arguments[1].(*order.Order)
	assert.True(t, created.ID().IsEqual(orderID))
	assert.Equal(t, order.Pending, created.Status())
	assert.Equal(t, order.Urgent, created.Details().Priority)
	assert.InDelta(t, 12.00, created.Details().DeliveryFee, 0.001)
	assert.Equal(t, 45, created.Details().EstimatedDeliveryMinutes)
	assert.NotEmpty(t, created.TrackingCode())
	orderRepo.AssertExpectations(t)
	companyRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_CompanyDefaults(t *testing.T) {
	ctx := t.Context()
	owner := activeCompany(t)
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), owner.ID(),
		"Maria Silva", "+55 11 98888-7777",
		testWaypoint(t, "Av. Paulista 1000"), testWaypoint(t, "Rua Augusta 500"),
		79.90, nil, order.Normal, nil, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	companyRepo := new(MockCompanyRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CompanyRepository").Return(companyRepo).Once(),
		companyRepo.On("Get", ctx, owner.ID()).Return(owner, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderCompanyUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(factory, fixedClock(mondayNoon))
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	created := orderRepo.Calls[0].Arguments[1].(*order.Order)
	assert.InDelta(t, owner.Config().DeliveryFee, created.Details().DeliveryFee, 0.001)
	assert.Equal(t, owner.Config().AverageDeliveryMinutes, created.Details().EstimatedDeliveryMinutes)
}

func TestCreateOrderCommandHandler_Handle_InactiveCompany(t *testing.T) {
	ctx := t.Context()
	owner := activeCompany(t)
	owner.Deactivate()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), owner.ID(),
		"Maria Silva", "+55 11 98888-7777",
		testWaypoint(t, "Av. Paulista 1000"), testWaypoint(t, "Rua Augusta 500"),
		79.90, nil, order.Normal, nil, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	companyRepo := new(MockCompanyRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CompanyRepository").Return(companyRepo).Once(),
		companyRepo.On("Get", ctx, owner.ID()).Return(owner, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderCompanyUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(factory, fixedClock(mondayNoon))
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrForbidden)
	orderRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestCreateOrderCommand_InvalidWaypoint(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(),
		"Maria Silva", "+55 11 98888-7777",
		order.Waypoint{}, testWaypoint(t, "Rua Augusta 500"),
		79.90, nil, order.Normal, nil, "")
	require.Error(t, err)
}
