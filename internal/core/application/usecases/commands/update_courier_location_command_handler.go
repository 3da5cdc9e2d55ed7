package commands

import (
	"context"
)

// UpdateCourierLocationCommandHandler stamps a courier's reported position
// together with its own timestamp.
type UpdateCourierLocationCommandHandler struct {
	uowFactory CourierUoWFactory
	now        Clock
}

// NewUpdateCourierLocationCommandHandler creates a handler for location reports.
func NewUpdateCourierLocationCommandHandler(uowFactory CourierUoWFactory, now Clock) UpdateCourierLocationCommandHandler {
	return UpdateCourierLocationCommandHandler{uowFactory: uowFactory, now: now}
}

// Handle processes the location report.
func (h *UpdateCourierLocationCommandHandler) Handle(ctx context.Context, cmd UpdateCourierLocationCommand) error {
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

	reporting, err := uow.CourierRepository().Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if err = reporting.UpdateLocation(cmd.Location(), h.now()); err != nil {
		return err
	}

	if err = uow.CourierRepository().Update(ctx, reporting); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
