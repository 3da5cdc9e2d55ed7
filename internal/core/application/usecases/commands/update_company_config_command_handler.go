package commands

import (
	"context"
)

// UpdateCompanyConfigCommandHandler applies a typed patch to a company's
// delivery defaults. Validation of the patched result happens on the
// aggregate; an invalid patch leaves the stored configuration unchanged.
type UpdateCompanyConfigCommandHandler struct {
	uowFactory CompanyUoWFactory
}

// NewUpdateCompanyConfigCommandHandler creates a handler for config patches.
func NewUpdateCompanyConfigCommandHandler(uowFactory CompanyUoWFactory) UpdateCompanyConfigCommandHandler {
	return UpdateCompanyConfigCommandHandler{uowFactory: uowFactory}
}

// Handle processes the config patch command.
func (h *UpdateCompanyConfigCommandHandler) Handle(ctx context.Context, cmd UpdateCompanyConfigCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	patched, err := uow.CompanyRepository().Get(ctx, cmd.CompanyID())
	if err != nil {
		return err
	}

	if err = patched.ApplyConfigPatch(cmd.Patch()); err != nil {
		return err
	}

	if err = uow.CompanyRepository().Update(ctx, patched); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
