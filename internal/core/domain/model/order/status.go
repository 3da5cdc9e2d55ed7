package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It implements a state
// machine with an exhaustive transition table; anything not in the table is
// rejected with an InvalidTransitionError and leaves the order unchanged.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// Pending is the initial status: the order waits for a courier to accept it.
	Pending

	// Accepted means a courier committed to the order. The courier identity is
	// recorded at this transition and never cleared.
	Accepted

	// PickedUp means the courier collected the order at the pickup address.
	PickedUp

	// InTransit means the order is on its way to the delivery address.
	InTransit

	// Delivered is the successful terminal state. Ratings become possible here.
	Delivered

	// Cancelled is the unsuccessful terminal state, reachable only from
	// Pending and Accepted.
	Cancelled
)

// allowedTransitions is the exhaustive table of legal status changes.
// No entry targets Pending, and the terminal states have no entries at all,
// so every non-initial state is reachable at most once per order.
var allowedTransitions = map[Status][]Status{
	Pending:   {Accepted, Cancelled},
	Accepted:  {PickedUp, Cancelled},
	PickedUp:  {InTransit, Delivered},
	InTransit: {Delivered},
}

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "unknown",
		Pending:       "pending",
		Accepted:      "accepted",
		PickedUp:      "picked_up",
		InTransit:     "in_transit",
		Delivered:     "delivered",
		Cancelled:     "cancelled",
	}
}

// StatusFromString parses the wire form of a status ("pending", "picked_up", ...).
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks the Status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire form of the status. It implements fmt.Stringer and
// is safe to call on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no transition leads out of this status.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo reports whether the table allows moving to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo returns the target status if the table allows the move,
// or an InvalidTransitionError (with the stored state untouched) if not.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return StatusUnknown, err
	}
	if !s.CanTransitionTo(target) {
		return StatusUnknown, errs.NewInvalidTransitionError(s.String(), target.String())
	}
	return target, nil
}
