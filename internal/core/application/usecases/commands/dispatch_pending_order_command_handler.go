package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/services"
)

// Dispatch round outcomes that are expected during quiet periods. Callers
// treat them as "nothing to do", not failures.
var (
	// ErrNoPendingOrders is returned when there is no order waiting for a courier.
	ErrNoPendingOrders = errors.New("no pending orders to dispatch")
	// ErrNoEligibleCouriers is returned when no courier can take the order right now.
	ErrNoEligibleCouriers = errors.New("no eligible couriers for dispatch")
)

// DispatchPendingOrderCommandHandler runs one automatic dispatch round:
// the oldest pending order is accepted on behalf of the best eligible
// courier, ranked by the match engine from the order's pickup point.
//
// The write path is the same guarded acceptance used by manual accepts, so
// a round racing a courier's own acceptance loses with a ConflictError and
// the next round simply moves on.
type DispatchPendingOrderCommandHandler struct {
	uowFactory OrderCourierUoWFactory
	engine     services.MatchEngine
	now        Clock
}

// NewDispatchPendingOrderCommandHandler creates a handler for dispatch rounds.
func NewDispatchPendingOrderCommandHandler(
	uowFactory OrderCourierUoWFactory,
	engine services.MatchEngine,
	now Clock,
) DispatchPendingOrderCommandHandler {
	return DispatchPendingOrderCommandHandler{uowFactory: uowFactory, engine: engine, now: now}
}

// Handle processes one dispatch round.
func (h *DispatchPendingOrderCommandHandler) Handle(ctx context.Context, cmd DispatchPendingOrderCommand) error {
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

	pending, err := uow.OrderRepository().GetAllPending(ctx)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		return ErrNoPendingOrders
	}
	oldest := pending[0]

	available, err := uow.CourierRepository().GetAllAvailable(ctx)
	if err != nil {
		return err
	}

	now := h.now()
	best := h.engine.BestCourierForOrder(
		available, oldest.Details().Pickup.Point(), now, services.CourierFilter{})
	if best == nil {
		return ErrNoEligibleCouriers
	}

	readStatus := oldest.Status()
	if err = oldest.Accept(best.ID(), now); err != nil {
		return err
	}

	if err = uow.OrderRepository().UpdateInStatus(ctx, oldest, readStatus); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
