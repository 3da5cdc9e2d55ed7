package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a company's request to create a delivery
// order. DeliveryFee and EstimatedMinutes are optional; when nil the
// company's delivery configuration supplies them.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	companyID kernel.UUID

	customerName  string
	customerPhone string
	pickup        order.Waypoint
	delivery      order.Waypoint

	totalValue       float64
	deliveryFee      *float64
	priority         order.Priority
	estimatedMinutes *int
	notes            string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new delivery order.
// Identity and waypoints are validated here; the remaining business rules
// are enforced by the order aggregate.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	companyID kernel.UUID,
	customerName string,
	customerPhone string,
	pickup order.Waypoint,
	delivery order.Waypoint,
	totalValue float64,
	deliveryFee *float64,
	priority order.Priority,
	estimatedMinutes *int,
	notes string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		customerName:     customerName,
		customerPhone:    customerPhone,
		totalValue:       totalValue,
		deliveryFee:      deliveryFee,
		priority:         priority,
		estimatedMinutes: estimatedMinutes,
		notes:            notes,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCompanyID(companyID),
		cmd.setWaypoints(pickup, delivery),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will carry.
func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }

// CompanyID returns the creating company's identifier.
func (c CreateOrderCommand) CompanyID() kernel.UUID { return c.companyID }

// CustomerName returns the recipient's name.
func (c CreateOrderCommand) CustomerName() string { return c.customerName }

// CustomerPhone returns the recipient's phone.
func (c CreateOrderCommand) CustomerPhone() string { return c.customerPhone }

// Pickup returns the pickup waypoint.
func (c CreateOrderCommand) Pickup() order.Waypoint { return c.pickup }

// Delivery returns the delivery waypoint.
func (c CreateOrderCommand) Delivery() order.Waypoint { return c.delivery }

// TotalValue returns the declared order value.
func (c CreateOrderCommand) TotalValue() float64 { return c.totalValue }

// DeliveryFee returns the requested fee, or nil to use the company default.
func (c CreateOrderCommand) DeliveryFee() *float64 { return c.deliveryFee }

// Priority returns the requested priority.
func (c CreateOrderCommand) Priority() order.Priority { return c.priority }

// EstimatedMinutes returns the requested delivery estimate, or nil to use
// the company default.
func (c CreateOrderCommand) EstimatedMinutes() *int { return c.estimatedMinutes }

// Notes returns the free-form order notes.
func (c CreateOrderCommand) Notes() string { return c.notes }

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCompanyID(companyID kernel.UUID) error {
	if err := companyID.Validate(); err != nil {
		return err
	}
	c.companyID = companyID
	return nil
}

func (c *CreateOrderCommand) setWaypoints(pickup, delivery order.Waypoint) error {
	if err := pickup.Validate(); err != nil {
		return err
	}
	if err := delivery.Validate(); err != nil {
		return err
	}
	c.pickup = pickup
	c.delivery = delivery
	return nil
}
