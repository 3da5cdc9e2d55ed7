package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// ErrNotAssignedCourier is returned when a courier tries to advance an order
// assigned to someone else, or to nobody.
var ErrNotAssignedCourier = errs.NewForbiddenError("courier",
	"order is assigned to a different courier")

// UpdateOrderStatusCommandHandler advances an order through the delivery
// flow on behalf of its assigned courier.
//
// The write is guarded by the status the order was read in, so two
// conflicting updates can never both commit. When the order reaches
// delivered, the courier's delivery counters (total, successful, on-time)
// are updated in the same transaction as one combined write.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderCourierUoWFactory
	now        Clock
}

// NewUpdateOrderStatusCommandHandler creates a handler for status updates.
func NewUpdateOrderStatusCommandHandler(uowFactory OrderCourierUoWFactory, now Clock) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{uowFactory: uowFactory, now: now}
}

// Handle processes the status update command.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
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

	if current.CourierID() == nil || !current.CourierID().IsEqual(cmd.CourierID()) {
		return ErrNotAssignedCourier
	}

	readStatus := current.Status()
	if err = current.TransitionTo(cmd.Target(), cmd.CourierID(), h.now(), cmd.Notes()); err != nil {
		return err
	}

	if err = uow.OrderRepository().UpdateInStatus(ctx, current, readStatus); err != nil {
		return err
	}

	if current.Status() == order.Delivered {
		if err = h.recordDelivery(ctx, uow, current); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

// recordDelivery increments the courier's counters under a row lock, so two
// orders delivered concurrently by one courier both land and the full-row
// write cannot revert an availability or location change committed between
// the read and the write.
func (h *UpdateOrderStatusCommandHandler) recordDelivery(
	ctx context.Context,
	uow OrderCourierUoW,
	delivered *order.Order,
) error {
	assigned, err := uow.CourierRepository().GetForUpdate(ctx, *delivered.CourierID())
	if err != nil {
		return err
	}

	onTime := delivered.IsOnTime()
	assigned.RecordDelivery(true, onTime != nil && *onTime)

	return uow.CourierRepository().Update(ctx, assigned)
}
