package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrDispatchPendingOrderCommandIsNotConstructed = errors.New(
	"DispatchPendingOrderCommand must be created via NewDispatchPendingOrderCommand constructor",
)

// DispatchPendingOrderCommand triggers one round of automatic dispatch:
// offer the oldest pending order to the best eligible courier. The periodic
// job issues it on every tick.
type DispatchPendingOrderCommand struct {
	guard guard.ConstructorGuard
}

// NewDispatchPendingOrderCommand creates a command for one dispatch round.
func NewDispatchPendingOrderCommand() DispatchPendingOrderCommand {
	return DispatchPendingOrderCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c DispatchPendingOrderCommand) Validate() error {
	return c.guard.Validate(ErrDispatchPendingOrderCommandIsNotConstructed)
}
