package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrVerifyCourierCommandIsNotConstructed = errors.New(
	"VerifyCourierCommand must be created via NewVerifyCourierCommand constructor",
)

// VerifyCourierCommand represents an administrator confirming a courier's
// documents. Reaching this command is itself the capability check; the core
// never inspects administrator identity.
type VerifyCourierCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewVerifyCourierCommand creates a command to verify a courier.
func NewVerifyCourierCommand(courierID kernel.UUID) (VerifyCourierCommand, error) {
	cmd := VerifyCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setCourierID(courierID); err != nil {
		return VerifyCourierCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c VerifyCourierCommand) Validate() error {
	return c.guard.Validate(ErrVerifyCourierCommandIsNotConstructed)
}

// CourierID returns the courier being verified.
func (c VerifyCourierCommand) CourierID() kernel.UUID { return c.courierID }

func (c *VerifyCourierCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	c.courierID = courierID
	return nil
}
