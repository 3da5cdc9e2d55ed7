package commands

import (
	"context"

	"dispatch/internal/pkg/errs"
)

// ErrCourierNotEligible is returned when the accepting courier is inactive,
// unavailable, unverified, or outside working hours.
var ErrCourierNotEligible = errs.NewForbiddenError("courier",
	"courier is not eligible to accept orders right now")

// AcceptOrderCommandHandler handles a courier taking a pending order.
//
// Acceptance is first-wins: the domain transition runs on the loaded
// snapshot, and the write goes through UpdateInStatus guarded by the pending
// status the snapshot was read in. When two couriers race, the loser's write
// affects no rows and surfaces as a ConflictError; nothing of the loser's
// attempt is merged.
type AcceptOrderCommandHandler struct {
	uowFactory OrderCourierUoWFactory
	now        Clock
}

// NewAcceptOrderCommandHandler creates a handler for order acceptance.
func NewAcceptOrderCommandHandler(uowFactory OrderCourierUoWFactory, now Clock) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{uowFactory: uowFactory, now: now}
}

// Handle processes the acceptance command.
func (h *AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
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

	pending, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	accepting, err := uow.CourierRepository().Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	now := h.now()
	if !accepting.IsEligibleAt(now) {
		return ErrCourierNotEligible
	}

	readStatus := pending.Status()
	if err = pending.Accept(accepting.ID(), now); err != nil {
		return err
	}

	if err = uow.OrderRepository().UpdateInStatus(ctx, pending, readStatus); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
