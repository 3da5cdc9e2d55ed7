package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/company"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateCompanyConfigCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	owner := activeCompany(t)
	radius := 12.0
	cmd, err := commands.NewUpdateCompanyConfigCommand(owner.ID(), company.ConfigPatch{
		MaxDeliveryRadiusKm: &radius,
	})
	require.NoError(t, err)

	companyRepo := new(MockCompanyRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CompanyRepository").Return(companyRepo).Once(),
		companyRepo.On("Get", ctx, owner.ID()).Return(owner, nil).Once(),
		uow.On("CompanyRepository").Return(companyRepo).Once(),
		companyRepo.On("Update", ctx, owner).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCompanyUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateCompanyConfigCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.InDelta(t, 12.0, owner.Config().MaxDeliveryRadiusKm, 0.001)
	assert.InDelta(t, 7.50, owner.Config().DeliveryFee, 0.001)
	companyRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestUpdateCompanyConfigCommandHandler_Handle_InvalidPatch(t *testing.T) {
	ctx := t.Context()
	owner := activeCompany(t)
	radius := -1.0
	cmd, err := commands.NewUpdateCompanyConfigCommand(owner.ID(), company.ConfigPatch{
		MaxDeliveryRadiusKm: &radius,
	})
	require.NoError(t, err)

	companyRepo := new(MockCompanyRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CompanyRepository").Return(companyRepo).Once(),
		companyRepo.On("Get", ctx, owner.ID()).Return(owner, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCompanyUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateCompanyConfigCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.InDelta(t, 8.0, owner.Config().MaxDeliveryRadiusKm, 0.001)
	companyRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateCompanyConfigCommand_EmptyPatch(t *testing.T) {
	_, err := commands.NewUpdateCompanyConfigCommand(kernel.NewUUID(), company.ConfigPatch{})
	require.ErrorIs(t, err, commands.ErrEmptyConfigPatch)
}
