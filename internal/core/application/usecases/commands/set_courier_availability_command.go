package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrSetCourierAvailabilityCommandIsNotConstructed = errors.New(
	"SetCourierAvailabilityCommand must be created via NewSetCourierAvailabilityCommand constructor",
)

// SetCourierAvailabilityCommand represents a courier switching itself on or
// off for work. Only verified couriers can flip the switch; the rule lives
// on the aggregate.
type SetCourierAvailabilityCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	available bool

	guard guard.ConstructorGuard
}

// NewSetCourierAvailabilityCommand creates a command to change courier availability.
func NewSetCourierAvailabilityCommand(courierID kernel.UUID, available bool) (SetCourierAvailabilityCommand, error) {
	cmd := SetCourierAvailabilityCommand{
		available: available,
		guard:     guard.NewConstructorGuard(),
	}

	if err := cmd.setCourierID(courierID); err != nil {
		return SetCourierAvailabilityCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetCourierAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetCourierAvailabilityCommandIsNotConstructed)
}

// CourierID returns the courier flipping the switch.
func (c SetCourierAvailabilityCommand) CourierID() kernel.UUID { return c.courierID }

// Available returns the requested availability state.
func (c SetCourierAvailabilityCommand) Available() bool { return c.available }

func (c *SetCourierAvailabilityCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	c.courierID = courierID
	return nil
}
