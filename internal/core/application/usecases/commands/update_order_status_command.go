package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand represents the assigned courier advancing an
// order through the delivery flow: picked_up, in_transit, delivered.
// Acceptance and cancellation have their own commands.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID
	target    order.Status
	notes     string

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a command to advance an order's status.
func NewUpdateOrderStatusCommand(
	orderID kernel.UUID,
	courierID kernel.UUID,
	target order.Status,
	notes string,
) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCourierID(courierID),
		cmd.setTarget(target),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order to advance.
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }

// CourierID returns the acting courier.
func (c UpdateOrderStatusCommand) CourierID() kernel.UUID { return c.courierID }

// Target returns the requested status.
func (c UpdateOrderStatusCommand) Target() order.Status { return c.target }

// Notes returns the free-form notes attached to the audit entry.
func (c UpdateOrderStatusCommand) Notes() string { return c.notes }

func (c *UpdateOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateOrderStatusCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	c.courierID = courierID
	return nil
}

func (c *UpdateOrderStatusCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}
