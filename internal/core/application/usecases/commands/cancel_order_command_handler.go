package commands

import (
	"context"

	"dispatch/internal/pkg/errs"
)

// ErrNotOrderParty is returned when the cancelling actor is neither the
// order's company nor its assigned courier.
var ErrNotOrderParty = errs.NewForbiddenError("actor",
	"only the order's company or its assigned courier can cancel it")

// CancelOrderCommandHandler cancels pending or accepted orders.
//
// The write is guarded by the status the order was read in: a cancellation
// racing an acceptance loses cleanly with a ConflictError instead of
// clobbering the courier's acceptance.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	now        Clock
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, now Clock) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{uowFactory: uowFactory, now: now}
}

// Handle processes the cancellation command.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	current, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	isCompany := current.CompanyID().IsEqual(cmd.ActorID())
	isAssignedCourier := current.CourierID() != nil && current.CourierID().IsEqual(cmd.ActorID())
	if !isCompany && !isAssignedCourier {
		return ErrNotOrderParty
	}

	readStatus := current.Status()
	if err = current.Cancel(cmd.ActorID(), cmd.Reason(), h.now()); err != nil {
		return err
	}

	if err = uow.OrderRepository().UpdateInStatus(ctx, current, readStatus); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
