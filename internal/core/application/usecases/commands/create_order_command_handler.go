package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// ErrCompanyInactive is returned when an inactive company tries to create an order.
var ErrCompanyInactive = errs.NewForbiddenError("company", "inactive companies cannot create orders")

// CreateOrderCommandHandler handles the business logic for order creation.
// The company's delivery configuration supplies the fee and estimate when the
// command leaves them unset.
type CreateOrderCommandHandler struct {
	uowFactory OrderCompanyUoWFactory
	now        Clock
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(uowFactory OrderCompanyUoWFactory, now Clock) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{uowFactory: uowFactory, now: now}
}

// Handle processes the order creation command. The company must exist and be
// active; the created order starts pending with a fresh tracking code.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
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

	owner, err := uow.CompanyRepository().Get(ctx, cmd.CompanyID())
	if err != nil {
		return err
	}
	if !owner.IsActive() {
		return ErrCompanyInactive
	}

	details := order.Details{
		CustomerName:             cmd.CustomerName(),
		CustomerPhone:            cmd.CustomerPhone(),
		Pickup:                   cmd.Pickup(),
		Delivery:                 cmd.Delivery(),
		TotalValue:               cmd.TotalValue(),
		DeliveryFee:              owner.Config().DeliveryFee,
		Priority:                 cmd.Priority(),
		EstimatedDeliveryMinutes: owner.Config().AverageDeliveryMinutes,
		Notes:                    cmd.Notes(),
	}
	if cmd.DeliveryFee() != nil {
		details.DeliveryFee = *cmd.DeliveryFee()
	}
	if cmd.EstimatedMinutes() != nil {
		details.EstimatedDeliveryMinutes = *cmd.EstimatedMinutes()
	}

	newOrder, err := order.NewOrder(cmd.OrderID(), cmd.CompanyID(), details, h.now())
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
