package commands

import (
	"context"
)

// VerifyCourierCommandHandler marks a courier as verified. Verification is a
// one-way switch; re-verifying an already verified courier is a no-op write.
type VerifyCourierCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewVerifyCourierCommandHandler creates a handler for courier verification.
func NewVerifyCourierCommandHandler(uowFactory CourierUoWFactory) VerifyCourierCommandHandler {
	return VerifyCourierCommandHandler{uowFactory: uowFactory}
}

// Handle processes the verification command.
func (h *VerifyCourierCommandHandler) Handle(ctx context.Context, cmd VerifyCourierCommand) error {
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

	verified, err := uow.CourierRepository().Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	verified.Verify()

	if err = uow.CourierRepository().Update(ctx, verified); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
