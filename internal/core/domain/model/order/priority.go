package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Priority controls how prominently a pending order is ranked when offered to
// couriers. It is set at creation and never changes. Higher values always
// outrank lower ones; creation time only breaks ties.
type Priority int

const (
	// PriorityUnknown represents an invalid or undefined priority.
	PriorityUnknown Priority = iota

	// Low priority orders are offered after everything else.
	Low

	// Normal is the default priority.
	Normal

	// High priority orders jump ahead of normal traffic.
	High

	// Urgent orders rank first regardless of age.
	Urgent
)

func getPriorityStrings() map[Priority]string {
	return map[Priority]string{
		PriorityUnknown: "unknown",
		Low:             "low",
		Normal:          "normal",
		High:            "high",
		Urgent:          "urgent",
	}
}

// PriorityFromString parses the wire form of a priority. The empty string
// maps to Normal, matching the creation default.
func PriorityFromString(s string) (Priority, error) {
	if s == "" {
		return Normal, nil
	}
	for p, str := range getPriorityStrings() {
		if str == s && p != PriorityUnknown {
			return p, nil
		}
	}
	return PriorityUnknown, errs.NewValueIsInvalidErrorWithCause("priority",
		fmt.Errorf("%q is not a valid priority", s))
}

// Validate checks the Priority is one of the defined levels.
func (p Priority) Validate() error {
	if p == PriorityUnknown {
		return errs.NewValueIsInvalidErrorWithCause("priority",
			fmt.Errorf("%d is not a valid priority", p))
	}
	if _, ok := getPriorityStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("priority",
			fmt.Errorf("%d is not a valid priority", p))
	}
	return nil
}

// String returns the wire form of the priority.
func (p Priority) String() string {
	if str, ok := getPriorityStrings()[p]; ok {
		return str
	}
	return "unknown"
}

// Rank returns the comparable weight of the priority: urgent > high > normal > low.
func (p Priority) Rank() int {
	return int(p)
}
