package commands

import (
	"context"
)

// SetCourierAvailabilityCommandHandler switches a courier on or off for
// work. The verified-only rule is enforced by the aggregate and surfaces as
// a ForbiddenError.
type SetCourierAvailabilityCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewSetCourierAvailabilityCommandHandler creates a handler for availability changes.
func NewSetCourierAvailabilityCommandHandler(uowFactory CourierUoWFactory) SetCourierAvailabilityCommandHandler {
	return SetCourierAvailabilityCommandHandler{uowFactory: uowFactory}
}

// Handle processes the availability change.
func (h *SetCourierAvailabilityCommandHandler) Handle(ctx context.Context, cmd SetCourierAvailabilityCommand) error {
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

	switching, err := uow.CourierRepository().Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if err = switching.SetAvailability(cmd.Available()); err != nil {
		return err
	}

	if err = uow.CourierRepository().Update(ctx, switching); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
